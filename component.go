package domcmp

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/pthm/domcmp/dom"
)

// Lifecycle event names owned by Component. Subclass-style consumers define
// their own domain events alongside these; the lifecycle set is fixed to
// avoid stringly-typed event proliferation.
const (
	// EventBeforeConnect fires with the cloned root before it enters the
	// tree, so observers may mutate the clone first.
	EventBeforeConnect = "beforeConnect"

	// EventConnect fires once refs and slot anchors are resolved and the
	// component has flipped to connected. Carries the live root.
	EventConnect = "connect"

	// EventMount fires after insertion, connection, and slot-children
	// mounting have all completed.
	EventMount = "mount"

	// EventBeforeUnmount fires while refs are still valid and children are
	// still mounted.
	EventBeforeUnmount = "beforeUnmount"

	// EventUnmount fires after the root has been removed from the tree.
	EventUnmount = "unmount"

	// EventCollapse and EventExpand accompany the remembered
	// unmount/remount pair.
	EventCollapse = "collapse"
	EventExpand   = "expand"
)

// Option configures a Component at construction.
type Option func(*Component)

// WithName sets a human-readable name used in logs and diagnostics.
func WithName(name string) Option {
	return func(c *Component) { c.name = name }
}

// WithLogger routes the component's diagnostics through log. The default is
// a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(c *Component) {
		if log != nil {
			c.log = log
		}
	}
}

// WithDispatcher sets the synthetic event dispatcher. Components attached to
// a parent slot inherit the parent's dispatcher unless one was set
// explicitly.
func WithDispatcher(d *dom.Dispatcher) Option {
	return func(c *Component) {
		if d != nil {
			c.dispatcher = d
			c.dispatcherSet = true
		}
	}
}

// WithStrictSlots makes missing-slot conditions errors instead of logged
// warnings. Use for structural templates where a missing anchor is a bug.
func WithStrictSlots() Option {
	return func(c *Component) { c.strictSlots = true }
}

// WithScopeAttrs overrides the attribute names marking refs and slot
// boundaries in this component's templates.
func WithScopeAttrs(refAttr, slotAttr string) Option {
	return func(c *Component) {
		c.refAttr = refAttr
		c.slotAttr = slotAttr
	}
}

// Component binds a template, its refs, its slots, and its lifecycle events
// together. It is the unit of composition: widgets either embed a
// *Component or hold one, register domain events on its emitter, and build
// their behavior on the public API below.
//
// A component is constructed inert (no tree). Mount materializes the
// template, connects it, and mounts any pre-registered slot children.
// Unmount reverses that, depth-first, without forgetting slot assignments,
// so a later Mount restores the same composition.
//
//	list := domcmp.New(domcmp.WithName("list"))
//	list.SetLayout(domcmp.HTML(`<ul data-ref="items"><li data-slot="rows"></li></ul>`), nil)
//	list.AddComponentToSlot("rows", row)
//	err := list.Mount(container, domcmp.MountReplace)
type Component struct {
	id   string
	name string

	layout   Layout
	shape    RefShape
	template *html.Node

	connected bool
	collapsed bool

	root        *html.Node
	refs        map[string]*html.Node
	slotAnchors map[string]*html.Node

	// Back-reference to the owning slot. Identity checks compare ids, not
	// pointers; the handle exists only so Expand can ask for a remount.
	parentID string
	parent   *Component
	slotName string

	slots  *SlotManager
	events *Emitter

	dispatcher    *dom.Dispatcher
	dispatcherSet bool

	connCtx    context.Context
	connCancel context.CancelFunc
	unlisten   []func()

	refAttr     string
	slotAttr    string
	strictSlots bool
	log         *zap.Logger
}

// New creates an inert component. Call SetLayout before the first Mount.
func New(opts ...Option) *Component {
	c := &Component{
		id:  uuid.NewString(),
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.dispatcher == nil {
		c.dispatcher = dom.NewDispatcher()
	}
	c.events = NewEmitter(c.log)
	c.slots = newSlotManager(c, c.strictSlots, c.log)
	return c
}

// ID returns the component's identity, used for slot back-references.
func (c *Component) ID() string {
	return c.id
}

// Name returns the configured name, falling back to the id.
func (c *Component) Name() string {
	if c.name != "" {
		return c.name
	}
	return c.id
}

// Connected reports whether the component currently holds live refs.
func (c *Component) Connected() bool {
	return c.connected
}

// Collapsed reports whether the component is intentionally detached but
// remembers it should re-attach. The flag is orthogonal to connection state
// and survives mount cycles.
func (c *Component) Collapsed() bool {
	return c.collapsed
}

// Parent returns the owning parent component, or nil.
func (c *Component) Parent() *Component {
	return c.parent
}

// SlotName returns the name of the parent slot this component occupies,
// or "" when unassigned.
func (c *Component) SlotName() string {
	return c.slotName
}

// Slots returns the component's slot manager.
func (c *Component) Slots() *SlotManager {
	return c.slots
}

// Events returns the component's emitter for domain events.
func (c *Component) Events() *Emitter {
	return c.events
}

// Dispatcher returns the synthetic event dispatcher in effect.
func (c *Component) Dispatcher() *dom.Dispatcher {
	return c.dispatcher
}

// Context returns the current connection's cancellation context. It is
// cancelled exactly when the component disconnects; nil while disconnected.
func (c *Component) Context() context.Context {
	return c.connCtx
}

// SetLayout configures the template source and an optional ref shape. Pure
// configuration: nothing happens until the first Mount. Replacing the layout
// after a previous mount invalidates the cached template, so the new source
// is compiled lazily on the next Mount.
func (c *Component) SetLayout(l Layout, shape RefShape) {
	c.layout = l
	c.shape = shape
	c.template = nil
}

// Mount materializes the template into container using the given insertion
// mode. Steps, in order: compile-and-cache the template (validating the
// single-root rule), clone it, emit EventBeforeConnect with the clone,
// insert per mode, connect, mount pre-registered slot children, emit
// EventMount.
//
// Mounting an already-connected component is a safe no-op. A contract
// violation during connect rolls the insertion back and is returned.
func (c *Component) Mount(container *html.Node, mode MountMode) error {
	if container == nil || !dom.IsElement(container) {
		return ErrInvalidTarget
	}
	if !mode.valid() {
		return ErrInvalidMode
	}
	if c.connected {
		return nil
	}
	if c.layout == nil {
		return ErrNoLayout
	}
	if c.template == nil {
		tpl, err := compileLayout(c.layout, c)
		if err != nil {
			return err
		}
		c.template = tpl
	}
	clone := dom.Clone(c.template)
	c.events.Emit(EventBeforeConnect, clone)

	switch mode {
	case MountReplace:
		dom.Replace(container, clone)
	case MountAppend:
		dom.Append(container, clone)
	case MountPrepend:
		dom.Prepend(container, clone)
	}

	if err := c.Connect(clone); err != nil {
		dom.Detach(clone)
		return err
	}
	c.collapsed = false
	if err := c.slots.Mount(); err != nil {
		return err
	}
	c.events.Emit(EventMount)
	return nil
}

// Connect resolves refs and slot anchors against root and flips the
// component to connected. Connecting twice without disconnecting is a
// programmer error and fails with ErrAlreadyConnected.
//
// Use Connect directly to adopt an existing subtree (e.g. server-parsed
// markup) without going through Mount.
func (c *Component) Connect(root *html.Node) error {
	if c.connected {
		return ErrAlreadyConnected
	}
	if root == nil || !dom.IsElement(root) {
		return ErrInvalidTarget
	}
	res := WalkScope(root, ScopeOptions{
		RefAttr:     c.refAttr,
		SlotAttr:    c.slotAttr,
		IncludeRoot: true,
	})
	for _, d := range res.Diagnostics {
		switch d.Level {
		case DiagWarn:
			c.log.Warn(d.Message, zap.String("component", c.Name()), zap.String("name", d.Name))
		default:
			c.log.Info(d.Message, zap.String("component", c.Name()), zap.String("name", d.Name))
		}
	}
	if c.shape != nil {
		if err := CheckRefs(res.Refs, c.shape); err != nil {
			return err
		}
	}
	c.refs = res.Refs
	c.slotAnchors = res.Slots
	for _, name := range sortedKeys(res.Slots) {
		c.slots.Register(name)
	}
	c.root = root
	c.connCtx, c.connCancel = context.WithCancel(context.Background())
	c.connected = true
	c.events.Emit(EventConnect, root)
	return nil
}

// Unmount detaches the component from the tree. Order matters: emit
// EventBeforeUnmount, unmount slot children depth-first (a child never
// outlives removal of its own anchor), disconnect (clearing refs and
// cancelling the connection's listeners), physically remove the root, emit
// EventUnmount. Children remain assigned to their slots.
//
// Unmounting a disconnected component is a no-op.
func (c *Component) Unmount() error {
	if !c.connected {
		return nil
	}
	c.events.Emit(EventBeforeUnmount)
	if err := c.slots.Unmount(); err != nil {
		return err
	}
	root := c.root
	c.disconnect()
	dom.Detach(root)
	c.events.Emit(EventUnmount)
	return nil
}

func (c *Component) disconnect() {
	for _, off := range c.unlisten {
		off()
	}
	c.unlisten = nil
	if c.connCancel != nil {
		c.connCancel()
	}
	c.connCtx, c.connCancel = nil, nil
	c.refs = nil
	c.slotAnchors = nil
	c.root = nil
	c.connected = false
}

// Collapse unmounts the component and remembers that it should re-attach:
// a later Expand restores it to the same parent slot without the caller
// re-specifying the target.
func (c *Component) Collapse() error {
	if c.collapsed && !c.connected {
		return nil
	}
	c.collapsed = true
	if err := c.Unmount(); err != nil {
		return err
	}
	c.events.Emit(EventCollapse)
	return nil
}

// Expand re-attaches a collapsed component to its previously assigned
// parent slot. Already-connected components and components with no parent
// slot are left alone (a component cannot self-attach without a target).
func (c *Component) Expand() error {
	c.collapsed = false
	if c.connected {
		return nil
	}
	if c.parent == nil || c.slotName == "" {
		return nil
	}
	if err := c.parent.slots.Mount(c.slotName); err != nil {
		return err
	}
	if c.connected {
		c.events.Emit(EventExpand)
	}
	return nil
}

// Show removes the hidden attribute from the mounted root.
func (c *Component) Show() error {
	if !c.connected {
		return ErrNotConnected
	}
	dom.RemoveAttr(c.root, "hidden")
	return nil
}

// Hide sets the hidden attribute on the mounted root. The component stays
// connected; use Collapse to detach instead.
func (c *Component) Hide() error {
	if !c.connected {
		return ErrNotConnected
	}
	dom.SetAttr(c.root, "hidden", "")
	return nil
}

// Root returns the mounted root element.
func (c *Component) Root() (*html.Node, error) {
	if !c.connected {
		return nil, ErrNotConnected
	}
	return c.root, nil
}

// GetRefs returns a copy of the resolved ref mapping. Valid only while
// connected.
func (c *Component) GetRefs() (map[string]*html.Node, error) {
	if !c.connected {
		return nil, ErrNotConnected
	}
	out := make(map[string]*html.Node, len(c.refs))
	for k, v := range c.refs {
		out[k] = v
	}
	return out, nil
}

// GetRef returns the named ref element.
func (c *Component) GetRef(name string) (*html.Node, error) {
	if !c.connected {
		return nil, ErrNotConnected
	}
	el, ok := c.refs[name]
	if !ok {
		return nil, &MissingRefError{Ref: name}
	}
	return el, nil
}

// HasRef reports whether the named ref resolved in the current connection.
func (c *Component) HasRef(name string) bool {
	return c.connected && c.refs[name] != nil
}

// SlotAnchor returns the live anchor element for the named slot.
func (c *Component) SlotAnchor(name string) (*html.Node, error) {
	if !c.connected {
		return nil, ErrNotConnected
	}
	el, ok := c.slotAnchors[name]
	if !ok {
		return nil, ErrSlotMissing
	}
	return el, nil
}

// AddComponentToSlot assigns children to the named slot, creating the slot
// if absent. When the component is already connected the children are
// mounted immediately.
func (c *Component) AddComponentToSlot(name string, children ...*Component) error {
	return c.slots.Attach(name, children...)
}

// SlotNames returns the registered slot names in registration order.
func (c *Component) SlotNames() []string {
	return c.slots.Names()
}

// ListenDOM attaches a synthetic DOM listener scoped to the current
// connection: the listener is removed the moment the component disconnects,
// so unmounted components never receive stray events. The returned closure
// removes the listener early.
func (c *Component) ListenDOM(el *html.Node, event string, fn dom.Handler) (func(), error) {
	if !c.connected {
		return nil, ErrNotConnected
	}
	off := c.dispatcher.Listen(el, event, fn)
	c.unlisten = append(c.unlisten, off)
	return off, nil
}

// On subscribes to a component event (lifecycle or domain) and returns the
// unsubscribe closure.
func (c *Component) On(event string, fn Listener) func() {
	return c.events.On(event, fn)
}

// Once subscribes for a single delivery.
func (c *Component) Once(event string, fn Listener) func() {
	return c.events.Once(event, fn)
}

// Emit fires a component event synchronously.
func (c *Component) Emit(event string, args ...any) {
	c.events.Emit(event, args...)
}

// Wait blocks until the named component event next fires or ctx is done.
func (c *Component) Wait(ctx context.Context, event string) ([]any, error) {
	return c.events.Wait(ctx, event)
}

// OnConnect subscribes to EventConnect.
func (c *Component) OnConnect(fn func()) func() {
	return c.events.On(EventConnect, func(...any) { fn() })
}

// OnMount subscribes to EventMount.
func (c *Component) OnMount(fn func()) func() {
	return c.events.On(EventMount, func(...any) { fn() })
}

// OnBeforeUnmount subscribes to EventBeforeUnmount.
func (c *Component) OnBeforeUnmount(fn func()) func() {
	return c.events.On(EventBeforeUnmount, func(...any) { fn() })
}

// OnUnmount subscribes to EventUnmount.
func (c *Component) OnUnmount(fn func()) func() {
	return c.events.On(EventUnmount, func(...any) { fn() })
}

// OnCollapse subscribes to EventCollapse.
func (c *Component) OnCollapse(fn func()) func() {
	return c.events.On(EventCollapse, func(...any) { fn() })
}

// OnExpand subscribes to EventExpand.
func (c *Component) OnExpand(fn func()) func() {
	return c.events.On(EventExpand, func(...any) { fn() })
}

func sortedKeys(m map[string]*html.Node) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
