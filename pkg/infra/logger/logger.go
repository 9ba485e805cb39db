package logger

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const logDir = "logs"

// NewLogger builds the process logger. Entries are JSON encoded, written
// asynchronously to logs/<serverType>.log and mirrored on stdout.
func NewLogger(serverType string) *logrus.Logger {
	logger := newBaseLogger(os.Getenv("LOG_LEVEL"))

	logFile, err := logFilePath(serverType)
	if err != nil {
		log.Fatalf("invalid log file path: %v", err)
	}
	if err := os.MkdirAll(logDir, 0750); err != nil {
		log.Fatalf("failed to create logs directory: %v", err)
	}

	asyncWriter, err := NewAsyncFileWriter(logFile, 32*1024)
	if err != nil {
		log.Fatalf("failed to initialize async log writer: %v", err)
	}

	logger.SetOutput(asyncWriter)
	logger.AddHook(NewConsoleHook(os.Stdout))

	return logger
}

func newBaseLogger(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime: "time",
			logrus.FieldKeyMsg:  "msg",
		},
	})
	logger.SetLevel(parseLevel(level))
	return logger
}

func parseLevel(level string) logrus.Level {
	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}

func logFilePath(serverType string) (string, error) {
	name := strings.TrimSpace(serverType)
	if name == "" {
		name = "api"
	}
	logFile := filepath.Clean(filepath.Join(logDir, name+".log"))
	if filepath.Dir(logFile) != logDir {
		return "", fmt.Errorf("%q escapes the %s directory", serverType, logDir)
	}
	return logFile, nil
}
