// Package telemetry writes agent events as JSON lines, one object per event,
// correlated by turn ID.
package telemetry

import (
	"context"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Event names.
const (
	EventQueryReceived  = "query_received"
	EventWindowPrepared = "window_prepared"
	EventToolExec       = "tool_exec"
	EventTurnCompleted  = "turn_completed"
)

// Recorder emits events. The zero value and a nil *Recorder drop everything.
type Recorder struct {
	logger *zap.Logger
}

// NewRecorder returns a Recorder writing JSON lines to w. A nil w disables it.
func NewRecorder(w io.Writer) *Recorder {
	if w == nil {
		return &Recorder{}
	}
	encCfg := zapcore.EncoderConfig{
		TimeKey:        "time",
		MessageKey:     "event",
		EncodeTime:     zapcore.RFC3339NanoTimeEncoder,
		EncodeDuration: zapcore.MillisDurationEncoder,
	}
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.Lock(zapcore.AddSync(w)), zapcore.InfoLevel)
	return &Recorder{logger: zap.New(core)}
}

// Enabled reports whether events are written anywhere.
func (r *Recorder) Enabled() bool {
	return r != nil && r.logger != nil
}

// Emit writes one event line carrying the turn ID from ctx, if any.
func (r *Recorder) Emit(ctx context.Context, name string, fields ...zap.Field) {
	if !r.Enabled() {
		return
	}
	if id, ok := TurnIDFromContext(ctx); ok {
		fields = append(fields, zap.String("turn_id", id))
	}
	r.logger.Info(name, fields...)
}

// Sync flushes buffered events.
func (r *Recorder) Sync() error {
	if !r.Enabled() {
		return nil
	}
	return r.logger.Sync()
}
