package blockchain

import "github.com/op/go-logging"

var log = logging.MustGetLogger("blockchain")
