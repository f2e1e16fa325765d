// Package dlog is the process-wide logging front: a slog logger fanned
// out to a readable text stream on stdout and, when LOG_FILE is set, a
// JSON file for ingestion.
package dlog

import (
	"log/slog"
	"os"

	slogmulti "github.com/samber/slog-multi"
)

var Log *slog.Logger

func init() {
	Log = createLogger()
}

func Info(msg string, args ...any) {
	Log.Info(msg, args...)
}
func Error(msg string, args ...any) {
	Log.Error(msg, args...)
}
func Warn(msg string, args ...any) {
	Log.Warn(msg, args...)
}
func Debug(msg string, args ...any) {
	Log.Debug(msg, args...)
}

func createLogger() *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: level(),
	}

	handlers := []slog.Handler{
		slog.NewTextHandler(os.Stdout, opts),
	}

	if path := os.Getenv("LOG_FILE"); path != "" {
		file, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0600)
		if err != nil {
			panic(err)
		}
		handlers = append(handlers, slog.NewJSONHandler(file, opts))
	}

	return slog.New(slogmulti.Fanout(handlers...))
}

func level() slog.Level {
	if os.Getenv("LOG_DEBUG") != "" {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}
