package vm

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/agenthands/iam/pkg/compiler/lexer"
)

// default diagnostics sink, used when a Machine has no Diag logger
var log = logrus.New()

// SetLogLevel changes the level of the default diagnostics logger.
func SetLogLevel(level logrus.Level) {
	log.Level = level
}

// GetLogLevel returns the level of the default diagnostics logger.
func GetLogLevel() logrus.Level {
	return log.Level
}

// diagf reports a recoverable condition at the given token.
func (m *Machine) diagf(at lexer.Token, format string, args ...interface{}) {
	d := m.Diag
	if d == nil {
		d = log
	}
	d.WithFields(logrus.Fields{
		"line":  at.Line,
		"token": at.Text,
	}).Warn(fmt.Sprintf(format, args...))
}
