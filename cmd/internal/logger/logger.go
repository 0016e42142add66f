package logger

import (
	"os"
	"path/filepath"

	"github.com/jrick/logrotate/rotator"
	"github.com/op/go-logging"
	"github.com/pkg/errors"
)

const (
	defaultThresholdKB = 100 * 1000 // 100 MB logs by default.
	defaultMaxRolls    = 8          // keep 8 last logs by default.
)

var format = logging.MustStringFormatter(
	`%{time:2006-01-02 15:04:05.000} [%{level:.3s}] %{module}: %{message}`,
)

// Init sends every module logger at or above levelName to stderr and, when logFile is not empty,
// to a rotated log file. The returned function closes the log file.
func Init(logFile string, levelName string) (func(), error) {
	level, err := logging.LogLevel(levelName)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid log level %s", levelName)
	}

	backends := []logging.Backend{
		logging.NewBackendFormatter(logging.NewLogBackend(os.Stderr, "", 0), format),
	}
	closeLogFile := func() {}

	if logFile != "" {
		logDir, _ := filepath.Split(logFile)
		// if the logDir is empty then `logFile` is in the cwd and there's no need to create any directory.
		if logDir != "" {
			err := os.MkdirAll(logDir, 0700)
			if err != nil {
				return nil, errors.Errorf("failed to create log directory: %+v", err)
			}
		}

		r, err := rotator.New(logFile, defaultThresholdKB, false, defaultMaxRolls)
		if err != nil {
			return nil, errors.Errorf("failed to create file rotator: %s", err)
		}
		backends = append(backends, logging.NewBackendFormatter(logging.NewLogBackend(r, "", 0), format))
		closeLogFile = func() {
			_ = r.Close()
		}
	}

	leveled := logging.MultiLogger(backends...)
	leveled.SetLevel(level, "")
	logging.SetBackend(leveled)
	return closeLogFile, nil
}
