// Package log configures logrus for actiondep.
package log

import (
	"github.com/sirupsen/logrus"
	"github.com/suzuki-shunsuke/logrus-error/logerr"
)

func New(version string) *logrus.Entry {
	return logrus.NewEntry(logrus.New()).WithFields(logrus.Fields{
		"actiondep_version": version,
		"program":           "actiondep",
	})
}

// SetLevel changes the log level. An empty level is ignored.
// An invalid level is reported as a warning rather than an error
// because a broken log level must not stop the command.
func SetLevel(level string, logE *logrus.Entry) {
	if level == "" {
		return
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logerr.WithError(logE, err).WithField("log_level", level).Warn("the log level is invalid")
		return
	}
	logE.Logger.SetLevel(lvl)
}
