// Package logger configures the process-wide logrus logger.
//
// The terminal belongs to tcell while the game runs, so log output goes to a
// file instead of stdout. Level and format come from the environment.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// DefaultPath is where log output lands when LOG_FILE is unset.
const DefaultPath = "colonyband.log"

// Setup configures the standard logrus logger and returns a close function
// for the log file. Environment variables:
//   - LOG_LEVEL:  debug, info, warn, error (default info)
//   - LOG_FORMAT: json or text (default text)
//   - LOG_FILE:   output path (default colonyband.log)
func Setup() (func() error, error) {
	levelName, ok := os.LookupEnv("LOG_LEVEL")
	if !ok {
		levelName = "info"
	}
	level, err := logrus.ParseLevel(levelName)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	path := os.Getenv("LOG_FILE")
	if path == "" {
		path = DefaultPath
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		// Fall back to discarding rather than fighting tcell for the terminal.
		logrus.SetOutput(io.Discard)
		return func() error { return nil }, err
	}
	logrus.SetOutput(f)
	return f.Close, nil
}
