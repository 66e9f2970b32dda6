package dom

import (
	"sync"

	"golang.org/x/net/html"
)

// Event is a synthetic DOM event delivered by a Dispatcher.
type Event struct {
	// Type is the event name ("click", "change", ...).
	Type string
	// Target is the node the event was dispatched on.
	Target *html.Node
	// Current is the node whose listener is being invoked (Target or an
	// ancestor reached by bubbling).
	Current *html.Node
	// Detail carries caller-supplied event data.
	Detail any

	stopped bool
}

// StopPropagation prevents the event from bubbling to ancestor listeners.
// Remaining listeners on the current node still run.
func (e *Event) StopPropagation() {
	e.stopped = true
}

// Handler receives dispatched events.
type Handler func(*Event)

type listener struct {
	fn Handler
}

// Dispatcher routes synthetic events to listeners registered per node.
// Events bubble from the target through its ancestors, mirroring DOM
// semantics closely enough for lifecycle and widget tests.
//
// A Dispatcher is safe for concurrent use, though the component runtime
// itself assumes single-goroutine access.
type Dispatcher struct {
	mu        sync.Mutex
	listeners map[*html.Node]map[string][]*listener
}

// NewDispatcher creates an empty Dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{listeners: make(map[*html.Node]map[string][]*listener)}
}

// Listen registers fn for events of the given type on el and returns a
// removal closure. Removal is idempotent.
func (d *Dispatcher) Listen(el *html.Node, event string, fn Handler) func() {
	d.mu.Lock()
	defer d.mu.Unlock()
	byEvent := d.listeners[el]
	if byEvent == nil {
		byEvent = make(map[string][]*listener)
		d.listeners[el] = byEvent
	}
	l := &listener{fn: fn}
	byEvent[event] = append(byEvent[event], l)

	var once sync.Once
	return func() {
		once.Do(func() { d.remove(el, event, l) })
	}
}

func (d *Dispatcher) remove(el *html.Node, event string, l *listener) {
	d.mu.Lock()
	defer d.mu.Unlock()
	byEvent := d.listeners[el]
	if byEvent == nil {
		return
	}
	list := byEvent[event]
	for i, cand := range list {
		if cand == l {
			byEvent[event] = append(list[:i], list[i+1:]...)
			break
		}
	}
	if len(byEvent[event]) == 0 {
		delete(byEvent, event)
	}
	if len(byEvent) == 0 {
		delete(d.listeners, el)
	}
}

// Dispatch delivers an event on el and bubbles it through el's ancestors.
// Listeners run synchronously against a snapshot taken per node, so a
// listener removing itself does not corrupt the delivery pass.
func (d *Dispatcher) Dispatch(el *html.Node, event string, detail any) {
	ev := &Event{Type: event, Target: el, Detail: detail}
	for n := el; n != nil; n = n.Parent {
		if !IsElement(n) && n != el {
			continue
		}
		ev.Current = n
		for _, l := range d.snapshot(n, event) {
			l.fn(ev)
		}
		if ev.stopped {
			return
		}
	}
}

func (d *Dispatcher) snapshot(el *html.Node, event string) []*listener {
	d.mu.Lock()
	defer d.mu.Unlock()
	byEvent := d.listeners[el]
	if byEvent == nil {
		return nil
	}
	list := byEvent[event]
	if len(list) == 0 {
		return nil
	}
	out := make([]*listener, len(list))
	copy(out, list)
	return out
}

// ListenerCount returns the number of listeners registered on el for the
// given event type. Intended for tests and diagnostics.
func (d *Dispatcher) ListenerCount(el *html.Node, event string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.listeners[el][event])
}
