package observability

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var Log *zap.Logger

// InitLogger builds the process-wide logger. Relays are chatty, so the zap
// production defaults (JSON, sampling) are kept as-is.
func InitLogger(serviceName string) {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	base, _ := cfg.Build()
	Log = base.With(zap.String("service", serviceName))
}

// GetLogger returns the process logger, annotated with the ids of the
// active span when the context carries one.
func GetLogger(ctx context.Context) *zap.Logger {
	if Log == nil {
		InitLogger("chat-server")
	}
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		return Log.With(
			zap.String("trace_id", sc.TraceID().String()),
			zap.String("span_id", sc.SpanID().String()),
		)
	}
	return Log
}
