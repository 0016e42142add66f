package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/op/go-logging"
)

func TestInitWritesLogFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "logs", "ledger.log")

	closeLogFile, err := Init(logFile, "info")
	if err != nil {
		t.Fatalf("Init: %s", err)
	}

	log := logging.MustGetLogger("loggertest")
	log.Infof("block %d mined", 7)
	log.Debugf("below the configured level")
	closeLogFile()

	content, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("ReadFile: %s", err)
	}
	if !strings.Contains(string(content), "loggertest: block 7 mined") {
		t.Errorf("expected the info line in the log file, got %q", content)
	}
	if strings.Contains(string(content), "below the configured level") {
		t.Errorf("debug line written at info level: %q", content)
	}
}

func TestInitRejectsUnknownLevel(t *testing.T) {
	if _, err := Init("", "verbose"); err == nil {
		t.Errorf("expected an error for an unknown level")
	}
}
