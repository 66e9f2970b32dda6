package ui

import (
	"sync"

	"golang.org/x/net/html"

	"github.com/pthm/domcmp"
	"github.com/pthm/domcmp/dom"
)

// Modal domain events.
const (
	// EventOpen fires after the host has shown the dialog.
	EventOpen = "open"
	// EventClose fires after the host has hidden the dialog.
	EventClose = "close"
)

// ModalHost abstracts the overlay machinery (backdrop, focus trap,
// animation) behind an interface keyed by the mounted root element. The
// widget contributes only template, slot, and event plumbing; a real
// integration injects a host wrapping its dialog service.
type ModalHost interface {
	Show(el *html.Node)
	Hide(el *html.Node)
	IsShown(el *html.Node) bool
}

// HostRegistry is the default ModalHost: a mutex-guarded per-element state
// map that toggles the hidden attribute. It provides no overlay mechanics,
// which keeps the widget testable without a browser.
type HostRegistry struct {
	mu    sync.RWMutex
	shown map[*html.Node]bool
}

// NewHostRegistry creates an empty host registry.
func NewHostRegistry() *HostRegistry {
	return &HostRegistry{shown: make(map[*html.Node]bool)}
}

// Show marks the element shown and clears its hidden attribute.
func (h *HostRegistry) Show(el *html.Node) {
	h.mu.Lock()
	h.shown[el] = true
	h.mu.Unlock()
	dom.RemoveAttr(el, "hidden")
}

// Hide marks the element hidden and sets its hidden attribute.
func (h *HostRegistry) Hide(el *html.Node) {
	h.mu.Lock()
	delete(h.shown, el)
	h.mu.Unlock()
	dom.SetAttr(el, "hidden", "")
}

// IsShown reports whether the element is currently shown.
func (h *HostRegistry) IsShown(el *html.Node) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.shown[el]
}

const modalLayout = `<div class="modal" hidden>
<div class="modal-header"><span data-ref="title"></span><button data-ref="close">&times;</button></div>
<div class="modal-body" data-slot="body"></div>
</div>`

var modalShape = domcmp.RefShape{
	"title": "span",
	"close": "button",
}

// Modal is a dialog shell: a titled frame with a "body" slot for arbitrary
// child components. Show/hide is delegated to the ModalHost; the widget
// never reimplements overlay mechanics.
type Modal struct {
	*domcmp.Component

	host ModalHost
}

// NewModal creates a modal backed by the given host. A nil host gets the
// registry default.
func NewModal(host ModalHost, opts ...domcmp.Option) *Modal {
	if host == nil {
		host = NewHostRegistry()
	}
	m := &Modal{
		Component: domcmp.New(append([]domcmp.Option{domcmp.WithName("modal")}, opts...)...),
		host:      host,
	}
	m.SetLayout(domcmp.HTML(modalLayout), modalShape)
	m.OnConnect(func() {
		closeBtn, err := m.GetRef("close")
		if err != nil {
			return
		}
		_, _ = m.ListenDOM(closeBtn, "click", func(*dom.Event) {
			_ = m.Close()
		})
	})
	m.OnBeforeUnmount(func() {
		if root, err := m.Root(); err == nil && m.host.IsShown(root) {
			m.host.Hide(root)
		}
	})
	return m
}

// Host returns the modal's host.
func (m *Modal) Host() ModalHost {
	return m.host
}

// SetTitle sets the header text. Requires a connection.
func (m *Modal) SetTitle(title string) error {
	el, err := m.GetRef("title")
	if err != nil {
		return err
	}
	dom.SetText(el, title)
	return nil
}

// Open asks the host to show the dialog and emits EventOpen.
func (m *Modal) Open() error {
	root, err := m.Root()
	if err != nil {
		return err
	}
	if m.host.IsShown(root) {
		return nil
	}
	m.host.Show(root)
	m.Emit(EventOpen)
	return nil
}

// Close asks the host to hide the dialog and emits EventClose. Closing a
// dialog that is not shown is a no-op.
func (m *Modal) Close() error {
	root, err := m.Root()
	if err != nil {
		return err
	}
	if !m.host.IsShown(root) {
		return nil
	}
	m.host.Hide(root)
	m.Emit(EventClose)
	return nil
}

// IsOpen reports whether the dialog is currently shown.
func (m *Modal) IsOpen() bool {
	root, err := m.Root()
	if err != nil {
		return false
	}
	return m.host.IsShown(root)
}
