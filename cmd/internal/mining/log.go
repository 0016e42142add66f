package mining

import "github.com/op/go-logging"

var log = logging.MustGetLogger("mining")
