// Package zap sends record events, such as the SafeSet truncation
// warning, to a *zap.Logger.
package zap

import (
	"sort"

	"github.com/ianlopshire/go-fixedrecord"
	"go.uber.org/zap"
)

var _ fixedrecord.Logger = ZapLogger{}

// ZapLogger is a fixedrecord.Logger writing to L. Record fields become
// zap.Any fields in key order, so the field, value and width of a
// truncation always print in the same order.
//
// Pass it to fixedrecord.New with WithLogger.
type ZapLogger struct{ L *zap.Logger }

func (z ZapLogger) Debug(msg string, f fixedrecord.Fields) { z.L.Debug(msg, zapFields(f)...) }
func (z ZapLogger) Info(msg string, f fixedrecord.Fields)  { z.L.Info(msg, zapFields(f)...) }
func (z ZapLogger) Warn(msg string, f fixedrecord.Fields)  { z.L.Warn(msg, zapFields(f)...) }
func (z ZapLogger) Error(msg string, f fixedrecord.Fields) { z.L.Error(msg, zapFields(f)...) }

func zapFields(f fixedrecord.Fields) []zap.Field {
	if len(f) == 0 {
		return nil
	}
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]zap.Field, len(keys))
	for i, k := range keys {
		out[i] = zap.Any(k, f[k])
	}
	return out
}
