package ledger

import "github.com/op/go-logging"

var log = logging.MustGetLogger("ledger")
