package config

import (
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// initLog routes the default slog logger to a rotated log file in the data
// directory. Debug level is opt-in through BORED_DEBUG.
func initLog() {
	w := &lumberjack.Logger{
		Filename:   logFilePath,
		MaxSize:    1, // megabytes
		MaxBackups: 3,
	}

	level := slog.LevelInfo
	if os.Getenv("BORED_DEBUG") != "" {
		level = slog.LevelDebug
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	})))
}
