package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// InitLogger configures the global logrus instance. Logs go to the
// given file path, or stdout when the path is empty or unwritable.
func InitLogger(logFilePath string) {
	if logFilePath != "" {
		logFile, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			logrus.Warnf("Failed to open log file (%s), using stdout: %v", logFilePath, err)
			logrus.SetOutput(os.Stdout)
		} else {
			logrus.SetOutput(logFile)
		}
	} else {
		logrus.SetOutput(os.Stdout)
	}

	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetLevel(logrus.InfoLevel)

	logrus.Info("Logger initialized")
}
