package resources

import "github.com/op/go-logging"

var log = logging.MustGetLogger("resources")
