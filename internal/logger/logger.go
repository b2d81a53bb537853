package logger

import (
	"io"
	"log/slog"
	"os"
)

var Log *slog.Logger

// Init initializes the global logger. Output goes to stderr so that stdout
// stays free for samples and JSON printed by the CLI.
func Init(level string, logFile string) error {
	var writers []io.Writer
	writers = append(writers, os.Stderr)

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return err
		}
		writers = append(writers, f)
	}

	Log = New(io.MultiWriter(writers...), level)
	slog.SetDefault(Log)

	return nil
}

// New builds a text logger at the given level without touching the global.
func New(w io.Writer, level string) *slog.Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(level),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Shorten time format
			if a.Key == slog.TimeKey {
				return slog.String("time", a.Value.Time().Format("15:04:05"))
			}
			return a
		},
	})
	return slog.New(handler)
}

// ParseLevel maps a config string to a slog level. Unknown values mean info.
func ParseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func get() *slog.Logger {
	if Log == nil {
		return slog.Default()
	}
	return Log
}

// Debug logs at debug level
func Debug(msg string, args ...any) {
	get().Debug(msg, args...)
}

// Info logs at info level
func Info(msg string, args ...any) {
	get().Info(msg, args...)
}

// Warn logs at warn level
func Warn(msg string, args ...any) {
	get().Warn(msg, args...)
}
