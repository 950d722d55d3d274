// Package zap adapts a *zap.Logger to binser.Logger.
package zap

import (
	"slices"

	"github.com/unkn0wn-root/binser"
	"go.uber.org/zap"
)

var _ binser.Logger = ZapLogger{}

type ZapLogger struct{ L *zap.Logger }

func (z ZapLogger) Debug(msg string, f binser.Fields) { z.L.Debug(msg, zf(f)...) }
func (z ZapLogger) Info(msg string, f binser.Fields)  { z.L.Info(msg, zf(f)...) }
func (z ZapLogger) Warn(msg string, f binser.Fields)  { z.L.Warn(msg, zf(f)...) }
func (z ZapLogger) Error(msg string, f binser.Fields) { z.L.Error(msg, zf(f)...) }

// zf emits fields in key order; errors become zap.NamedError.
func zf(f binser.Fields) []zap.Field {
	if len(f) == 0 {
		return nil
	}
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	out := make([]zap.Field, 0, len(f))
	for _, k := range keys {
		if err, ok := f[k].(error); ok {
			out = append(out, zap.NamedError(k, err))
			continue
		}
		out = append(out, zap.Any(k, f[k]))
	}
	return out
}
