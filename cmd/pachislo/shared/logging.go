package shared

import (
	"os"

	"github.com/charmbracelet/log"
)

// Level parses a textual log level, defaulting to info.
func Level(s string) log.Level {
	switch s {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// SetupLogger configures a console logger on stderr.
func SetupLogger(level string) *log.Logger {
	logger := log.New(os.Stderr)
	logger.SetLevel(Level(level))
	return logger
}

// SetupFileLogger configures a logger writing to path, for commands that
// own the terminal. The caller closes the returned file.
func SetupFileLogger(path, level string) (*log.Logger, *os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, nil, err
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})
	logger.SetLevel(Level(level))
	return logger, f, nil
}
