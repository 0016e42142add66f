package handlers

import "github.com/op/go-logging"

var log = logging.MustGetLogger("handlers")
