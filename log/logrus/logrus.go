// Package logrus sends record events, such as the SafeSet truncation
// warning, to a logrus entry.
package logrus

import (
	"github.com/ianlopshire/go-fixedrecord"
	"github.com/sirupsen/logrus"
)

var _ fixedrecord.Logger = LogrusLogger{}

// LogrusLogger is a fixedrecord.Logger writing to E. Record fields are
// attached with WithFields, so any fields already on E are kept.
type LogrusLogger struct{ E *logrus.Entry }

func (l LogrusLogger) Debug(msg string, f fixedrecord.Fields) { l.with(f).Debug(msg) }
func (l LogrusLogger) Info(msg string, f fixedrecord.Fields)  { l.with(f).Info(msg) }
func (l LogrusLogger) Warn(msg string, f fixedrecord.Fields)  { l.with(f).Warn(msg) }
func (l LogrusLogger) Error(msg string, f fixedrecord.Fields) { l.with(f).Error(msg) }

func (l LogrusLogger) with(f fixedrecord.Fields) *logrus.Entry {
	if len(f) == 0 {
		return l.E
	}
	return l.E.WithFields(logrus.Fields(f))
}
