package telemetry

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"
)

// turnIDKey is the context key type used to store a turn ID.
type turnIDKey struct{}

var turnSeq atomic.Uint64

// NewTurnID returns a process-unique ID for one user query and its tool rounds.
func NewTurnID() string {
	return fmt.Sprintf("turn-%d-%d", time.Now().UnixNano(), turnSeq.Add(1))
}

// WithTurnID returns a child context that carries the provided turn ID.
// If ctx is nil, context.Background() is used
func WithTurnID(ctx context.Context, id string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, turnIDKey{}, id)
}

// TurnIDFromContext returns the turn ID from ctx, if present.
// Returns "", false if the value is missing or empty.
func TurnIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	s, ok := ctx.Value(turnIDKey{}).(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// EnsureTurnID returns ctx unchanged when it already carries a turn ID,
// otherwise a child context with a fresh one.
func EnsureTurnID(ctx context.Context) (context.Context, string) {
	if id, ok := TurnIDFromContext(ctx); ok {
		return ctx, id
	}
	id := NewTurnID()
	return WithTurnID(ctx, id), id
}
