// Package logger builds the structured logger shared by the server components.
package logger

import (
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New returns a logger for the given level.
// When filename is defined, entries are written to a rotated file instead of stderr.
func New(level, filename string) (*logrus.Logger, error) {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	if level != "" {
		lvl, err := logrus.ParseLevel(level)
		if err != nil {
			return nil, errors.Wrap(err, "could not parse log level")
		}
		l.SetLevel(lvl)
	}

	if filename != "" {
		l.SetFormatter(&logrus.JSONFormatter{})
		l.SetOutput(&lumberjack.Logger{
			Filename:   filename,
			MaxSize:    100, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		})
	}

	return l, nil
}
