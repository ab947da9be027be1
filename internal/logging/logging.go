package logging

import (
	"time"

	"github.com/sirupsen/logrus"
)

var Logger = logrus.New()

func init() {
	Logger.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "message",
		},
	})
	Logger.SetLevel(logrus.InfoLevel)
}

func Info(message string) {
	Logger.Info(message)
}

func Infof(format string, args ...interface{}) {
	Logger.Infof(format, args...)
}

func Warnf(format string, args ...interface{}) {
	Logger.Warnf(format, args...)
}

func Error(err error, message string) {
	entry := logrus.NewEntry(Logger)
	if err != nil {
		entry = entry.WithField("error", err.Error())
	}
	entry.Error(message)
}

func Errorf(format string, args ...interface{}) {
	Logger.Errorf(format, args...)
}

// WithUser tags an entry with the acting user for the audit-friendly logs.
func WithUser(userID uint) *logrus.Entry {
	return Logger.WithField("user_id", userID)
}
