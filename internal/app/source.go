package app

import (
	"context"
	"sync"
)

// Origin names where an answer came from. Cached answers are live answers.
type Origin string

const (
	OriginLive Origin = "live"
	OriginMock Origin = "mock"
)

// SourceTrace records the origin of every answer served under one context.
// A single mock answer marks the whole trace as mock.
type SourceTrace struct {
	mu     sync.Mutex
	origin Origin
}

type traceKey struct{}

// TraceSource returns a context that records where content lookups made
// with it were answered from.
func TraceSource(ctx context.Context) (context.Context, *SourceTrace) {
	t := &SourceTrace{}
	return context.WithValue(ctx, traceKey{}, t), t
}

// Origin reports mock if any lookup fell back to mock data, live if all were
// answered live, and "" if nothing was recorded.
func (t *SourceTrace) Origin() Origin {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.origin
}

func noteOrigin(ctx context.Context, o Origin) {
	t, ok := ctx.Value(traceKey{}).(*SourceTrace)
	if !ok {
		return
	}
	t.mu.Lock()
	if t.origin != OriginMock {
		t.origin = o
	}
	t.mu.Unlock()
}
