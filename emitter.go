package domcmp

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Listener receives emitted event arguments.
type Listener func(args ...any)

// MetaFirst and MetaEmpty prefix the meta-event names fired when an event's
// listener count transitions 0->1 and 1->0. Owners use these to lazily
// attach and detach expensive resources:
//
//	em.On(domcmp.MetaFirst+"tick", func(...any) { startTimer() })
//	em.On(domcmp.MetaEmpty+"tick", func(...any) { stopTimer() })
//
// Meta events are not fired for meta events themselves.
const (
	MetaFirst = "first:"
	MetaEmpty = "empty:"
)

type emitterEntry struct {
	fn   Listener
	once bool
}

// Emitter is a minimal ordered publish/subscribe primitive. Emission is
// synchronous over a point-in-time snapshot: a listener subscribing or
// unsubscribing mid-emit does not affect the current delivery pass, and a
// panicking listener is recovered and logged without stopping delivery to
// the remaining listeners.
type Emitter struct {
	mu        sync.Mutex
	listeners map[string][]*emitterEntry
	destroyed bool
	log       *zap.Logger
}

// NewEmitter creates an Emitter. The logger may be nil; a no-op logger is
// substituted.
func NewEmitter(log *zap.Logger) *Emitter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Emitter{
		listeners: make(map[string][]*emitterEntry),
		log:       log,
	}
}

// On registers fn for the named event and returns an idempotent unsubscribe
// closure.
//
// Subscriptions on a destroyed emitter are rejected: the listener is not
// registered, a warning is logged, and a no-op closure is returned.
func (em *Emitter) On(event string, fn Listener) func() {
	return em.subscribe(event, fn, false)
}

// Once registers fn for a single delivery; it is unsubscribed before its
// first invocation runs.
func (em *Emitter) Once(event string, fn Listener) func() {
	return em.subscribe(event, fn, true)
}

func (em *Emitter) subscribe(event string, fn Listener, once bool) func() {
	em.mu.Lock()
	if em.destroyed {
		em.mu.Unlock()
		em.log.Warn("subscription on destroyed emitter rejected", zap.String("event", event))
		return func() {}
	}
	entry := &emitterEntry{fn: fn, once: once}
	em.listeners[event] = append(em.listeners[event], entry)
	first := len(em.listeners[event]) == 1
	em.mu.Unlock()

	if first && !isMetaEvent(event) {
		em.Emit(MetaFirst+event, event)
	}

	var offOnce sync.Once
	return func() {
		offOnce.Do(func() { em.off(event, entry) })
	}
}

func (em *Emitter) off(event string, entry *emitterEntry) {
	em.mu.Lock()
	list := em.listeners[event]
	removed := false
	for i, cand := range list {
		if cand == entry {
			em.listeners[event] = append(list[:i], list[i+1:]...)
			removed = true
			break
		}
	}
	empty := removed && len(em.listeners[event]) == 0
	if empty {
		delete(em.listeners, event)
	}
	em.mu.Unlock()

	if empty && !isMetaEvent(event) {
		em.Emit(MetaEmpty+event, event)
	}
}

// Emit synchronously invokes a snapshot of the current listeners for the
// named event, in subscription order.
func (em *Emitter) Emit(event string, args ...any) {
	em.mu.Lock()
	list := em.listeners[event]
	snapshot := make([]*emitterEntry, len(list))
	copy(snapshot, list)
	em.mu.Unlock()

	for _, entry := range snapshot {
		if entry.once {
			em.off(event, entry)
		}
		em.invoke(event, entry, args)
	}
}

func (em *Emitter) invoke(event string, entry *emitterEntry, args []any) {
	defer func() {
		if r := recover(); r != nil {
			em.log.Warn("event listener panicked",
				zap.String("event", event),
				zap.Any("panic", r))
		}
	}()
	entry.fn(args...)
}

// ListenerCount returns the number of listeners registered for the event.
func (em *Emitter) ListenerCount(event string) int {
	em.mu.Lock()
	defer em.mu.Unlock()
	return len(em.listeners[event])
}

// Destroy drops all listeners and flips the emitter into a terminal state
// in which further subscriptions are rejected. Emit on a destroyed emitter
// is a no-op.
func (em *Emitter) Destroy() {
	em.mu.Lock()
	em.destroyed = true
	em.listeners = make(map[string][]*emitterEntry)
	em.mu.Unlock()
}

// Destroyed reports whether Destroy has been called.
func (em *Emitter) Destroyed() bool {
	em.mu.Lock()
	defer em.mu.Unlock()
	return em.destroyed
}

// Wait blocks until the named event next fires, returning its arguments,
// or until ctx is done. Apply a timeout via context.WithTimeout; callers
// may race multiple waits.
func (em *Emitter) Wait(ctx context.Context, event string) ([]any, error) {
	ch := make(chan []any, 1)
	off := em.Once(event, func(args ...any) {
		ch <- args
	})
	defer off()

	select {
	case args := <-ch:
		return args, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func isMetaEvent(event string) bool {
	return strings.HasPrefix(event, MetaFirst) || strings.HasPrefix(event, MetaEmpty)
}
