// pkg/events/injector.go
// Package events defines the platform boundary for synthesized input.
// Actions describe gestures as sequences of pointer and key events; an
// Injector delivers them to the real platform (CDP input domain, an
// instrumentation bridge) or records them for offline trees and tests.
package events

import (
	"context"
	"sync"

	"golang.org/x/time/rate"

	"github.com/bootstraponline/droiddriver/api/schemas"
)

// PointerAction is the phase of a pointer event.
type PointerAction string

const (
	PointerDown PointerAction = "down"
	PointerUp   PointerAction = "up"
	PointerMove PointerAction = "move"
)

// PointerEvent is one synthesized touch/mouse event.
type PointerEvent struct {
	Action PointerAction
	Pos    schemas.Point
}

// Injector delivers synthesized input to the platform.
type Injector interface {
	// InjectPointer dispatches a single pointer event.
	InjectPointer(ctx context.Context, ev PointerEvent) error
	// InjectKeys types the given text into the focused element.
	InjectKeys(ctx context.Context, text string) error
}

// RateLimited wraps an Injector with a rate limiter so bursts of
// synthesized events do not overrun the platform's input pipeline.
type RateLimited struct {
	inner   Injector
	limiter *rate.Limiter
}

// NewRateLimited paces event injection at eventsPerSecond with a burst of
// one event.
func NewRateLimited(inner Injector, eventsPerSecond float64) *RateLimited {
	return &RateLimited{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(eventsPerSecond), 1),
	}
}

func (r *RateLimited) InjectPointer(ctx context.Context, ev PointerEvent) error {
	if err := r.limiter.Wait(ctx); err != nil {
		return err
	}
	return r.inner.InjectPointer(ctx, ev)
}

func (r *RateLimited) InjectKeys(ctx context.Context, text string) error {
	if err := r.limiter.Wait(ctx); err != nil {
		return err
	}
	return r.inner.InjectKeys(ctx, text)
}

// Recorder is an Injector that captures events instead of delivering
// them. Offline adapters use it so gesture plumbing stays exercisable
// against trees that have no live platform behind them; tests use it to
// assert on the exact event sequence.
type Recorder struct {
	mu       sync.Mutex
	pointers []PointerEvent
	keys     []string
}

func (r *Recorder) InjectPointer(_ context.Context, ev PointerEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pointers = append(r.pointers, ev)
	return nil
}

func (r *Recorder) InjectKeys(_ context.Context, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.keys = append(r.keys, text)
	return nil
}

// Pointers returns a copy of the recorded pointer events.
func (r *Recorder) Pointers() []PointerEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]PointerEvent, len(r.pointers))
	copy(out, r.pointers)
	return out
}

// Keys returns a copy of the recorded key payloads.
func (r *Recorder) Keys() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}
