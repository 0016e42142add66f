package searchindexing

import "github.com/op/go-logging"

var log = logging.MustGetLogger("searchindexing")
