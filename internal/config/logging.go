package config

import (
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"
)

// NewLogger returns a colored debug logger in development and a JSON
// logger otherwise.
func NewLogger() *slog.Logger {
	if Development() {
		return slog.New(
			tint.NewHandler(os.Stderr, &tint.Options{Level: slog.LevelDebug}),
		)
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, nil))
}

// ConfigureMazeLog sets up the logrus logger used by the generator. With
// MAZE_LOG_FILE set, entries are also written to a rotated JSON file.
func ConfigureMazeLog(log *logrus.Logger) error {
	level := logrus.InfoLevel
	if Development() {
		level = logrus.DebugLevel
	}
	log.SetLevel(level)
	log.SetFormatter(&logrus.TextFormatter{ForceColors: Development()})

	filename, ok := os.LookupEnv("MAZE_LOG_FILE")
	if !ok || filename == "" {
		return nil
	}

	hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   filename,
		MaxSize:    50, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Level:      level,
		Formatter:  &logrus.JSONFormatter{},
	})
	if err != nil {
		return err
	}
	log.AddHook(hook)
	return nil
}
