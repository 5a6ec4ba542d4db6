package logging

import (
	"os"
	"strings"

	"github.com/phuslu/log"
)

// Config selects the log level and output format
type Config struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "console" or "json"
}

// Setup configures the process-wide logger. Unknown levels fall back to info.
func Setup(cfg Config) {
	logger := log.Logger{
		Level:      parseLevel(cfg.Level),
		TimeFormat: "15:04:05.000",
	}
	if strings.EqualFold(cfg.Format, "json") {
		logger.TimeFormat = ""
		logger.Writer = &log.IOWriter{Writer: os.Stderr}
	} else {
		logger.Writer = &log.ConsoleWriter{
			ColorOutput:    log.IsTerminal(os.Stderr.Fd()),
			QuoteString:    true,
			EndWithMessage: true,
			Writer:         os.Stderr,
		}
	}

	log.DefaultLogger = logger
}

func parseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}
