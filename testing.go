package domcmp

import (
	"strings"
	"sync"

	"golang.org/x/net/html"

	"github.com/pthm/domcmp/dom"
)

// TestResult holds a component mounted into a detached container for
// testing, with convenience assertions over the serialized tree.
type TestResult struct {
	Container *html.Node
	Component *Component
}

// TestContainer returns a detached element suitable as a mount target.
func TestContainer() *html.Node {
	el := dom.NewElement("div")
	dom.SetAttr(el, "id", "fixture")
	return el
}

// TestMount mounts a component into a fresh detached container with
// MountReplace and returns a TestResult:
//
//	res, err := domcmp.TestMount(comp)
//	if !res.HTMLContains(`data-ref="body"`) {
//	    t.Fatal("missing body ref")
//	}
func TestMount(c *Component) (*TestResult, error) {
	container := TestContainer()
	if err := c.Mount(container, MountReplace); err != nil {
		return nil, err
	}
	return &TestResult{Container: container, Component: c}, nil
}

// HTML serializes the container subtree.
func (r *TestResult) HTML() string {
	return dom.Render(r.Container)
}

// HTMLContains checks if the serialized tree contains a substring.
func (r *TestResult) HTMLContains(substr string) bool {
	return strings.Contains(r.HTML(), substr)
}

// HTMLContainsAll checks if the serialized tree contains all substrings.
func (r *TestResult) HTMLContainsAll(substrs ...string) bool {
	h := r.HTML()
	for _, s := range substrs {
		if !strings.Contains(h, s) {
			return false
		}
	}
	return true
}

// HTMLContainsAny checks if the serialized tree contains any substring.
func (r *TestResult) HTMLContainsAny(substrs ...string) bool {
	h := r.HTML()
	for _, s := range substrs {
		if strings.Contains(h, s) {
			return true
		}
	}
	return false
}

// EventRecorder captures event names in emission order, for asserting on
// lifecycle sequences across parent/child trees.
type EventRecorder struct {
	mu     sync.Mutex
	events []string
}

// NewEventRecorder creates an empty recorder.
func NewEventRecorder() *EventRecorder {
	return &EventRecorder{}
}

// Record appends name each time the returned listener is invoked.
func (r *EventRecorder) Record(name string) Listener {
	return func(...any) {
		r.mu.Lock()
		r.events = append(r.events, name)
		r.mu.Unlock()
	}
}

// Watch subscribes the recorder to the given events on a component,
// recording each as "<label>:<event>".
func (r *EventRecorder) Watch(label string, c *Component, events ...string) {
	for _, ev := range events {
		c.On(ev, r.Record(label+":"+ev))
	}
}

// Sequence returns the recorded event names in order.
func (r *EventRecorder) Sequence() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	copy(out, r.events)
	return out
}

// Reset clears the recorded sequence.
func (r *EventRecorder) Reset() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}
