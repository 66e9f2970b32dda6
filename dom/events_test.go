package dom

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDispatchBubbles(t *testing.T) {
	root := NewElement("div")
	mid := NewElement("section")
	leaf := NewElement("button")
	root.AppendChild(mid)
	mid.AppendChild(leaf)

	d := NewDispatcher()
	var got []string
	d.Listen(leaf, "click", func(ev *Event) {
		got = append(got, "leaf")
		if ev.Target != leaf || ev.Current != leaf {
			t.Error("leaf listener sees wrong target/current")
		}
	})
	d.Listen(mid, "click", func(ev *Event) {
		got = append(got, "mid")
		if ev.Target != leaf || ev.Current != mid {
			t.Error("mid listener sees wrong target/current")
		}
	})
	d.Listen(root, "click", func(*Event) { got = append(got, "root") })

	d.Dispatch(leaf, "click", nil)

	want := []string{"leaf", "mid", "root"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("bubble order (-want +got):\n%s", diff)
	}
}

func TestStopPropagation(t *testing.T) {
	root := NewElement("div")
	leaf := NewElement("button")
	root.AppendChild(leaf)

	d := NewDispatcher()
	var got []string
	d.Listen(leaf, "click", func(ev *Event) {
		got = append(got, "leaf1")
		ev.StopPropagation()
	})
	// Remaining listeners on the same node still run.
	d.Listen(leaf, "click", func(*Event) { got = append(got, "leaf2") })
	d.Listen(root, "click", func(*Event) { got = append(got, "root") })

	d.Dispatch(leaf, "click", nil)

	want := []string{"leaf1", "leaf2"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("propagation (-want +got):\n%s", diff)
	}
}

func TestListenRemoval(t *testing.T) {
	el := NewElement("button")
	d := NewDispatcher()

	calls := 0
	off := d.Listen(el, "click", func(*Event) { calls++ })
	d.Dispatch(el, "click", nil)
	off()
	off() // idempotent
	d.Dispatch(el, "click", nil)

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if n := d.ListenerCount(el, "click"); n != 0 {
		t.Errorf("ListenerCount = %d, want 0", n)
	}
}

func TestListenerRemovingItselfMidDispatch(t *testing.T) {
	el := NewElement("button")
	d := NewDispatcher()

	var off func()
	first := 0
	off = d.Listen(el, "click", func(*Event) {
		first++
		off()
	})
	second := 0
	d.Listen(el, "click", func(*Event) { second++ })

	d.Dispatch(el, "click", nil)
	d.Dispatch(el, "click", nil)

	if first != 1 {
		t.Errorf("self-removing listener ran %d times, want 1", first)
	}
	if second != 2 {
		t.Errorf("surviving listener ran %d times, want 2", second)
	}
}

func TestDispatchDetail(t *testing.T) {
	el := NewElement("input")
	d := NewDispatcher()

	var got any
	d.Listen(el, "change", func(ev *Event) { got = ev.Detail })
	d.Dispatch(el, "change", "new value")

	if got != "new value" {
		t.Errorf("Detail = %v, want new value", got)
	}
}

func TestEventTypesIndependent(t *testing.T) {
	el := NewElement("button")
	d := NewDispatcher()

	clicks, keys := 0, 0
	d.Listen(el, "click", func(*Event) { clicks++ })
	d.Listen(el, "keydown", func(*Event) { keys++ })

	d.Dispatch(el, "click", nil)

	if clicks != 1 || keys != 0 {
		t.Errorf("clicks=%d keys=%d, want 1 and 0", clicks, keys)
	}
}
