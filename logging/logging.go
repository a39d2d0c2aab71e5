// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

type Options struct {
	Level string
	// "text" or "json"
	Format string
	// Optional log file, rotated by size.
	File       string
	MaxSizeMb  int
	MaxBackups int
	MaxAgeDays int
}

var logger = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: time.RFC3339})
	level, err := logrus.ParseLevel(strings.ToLower(os.Getenv("LOG_LEVEL")))
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)
	return l
}

// Logger returns the shared logger. All component loggers write to it.
func Logger() *logrus.Logger {
	return logger
}

// Component returns a logger entry tagged with the component name.
func Component(name string) *logrus.Entry {
	return logger.WithField("component", name)
}

// Configure applies level, format and output of the shared logger.
func Configure(o Options) error {
	if len(o.Level) > 0 {
		level, err := logrus.ParseLevel(strings.ToLower(o.Level))
		if err != nil {
			return fmt.Errorf("invalid log level: %w", err)
		}
		logger.SetLevel(level)
	}
	switch strings.ToLower(o.Format) {
	case "", "text":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: time.RFC3339})
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
			},
		})
	default:
		return fmt.Errorf("invalid log format %q", o.Format)
	}
	if len(o.File) > 0 {
		logger.SetOutput(io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   o.File,
			MaxSize:    o.MaxSizeMb,
			MaxBackups: o.MaxBackups,
			MaxAge:     o.MaxAgeDays,
			Compress:   true,
		}))
	} else {
		logger.SetOutput(os.Stderr)
	}
	return nil
}
