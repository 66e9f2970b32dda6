package domcmp

import (
	"fmt"

	"go.uber.org/zap"
)

// Slot is a named insertion point owned by exactly one component. It tracks
// the child components currently assigned to it, in attachment order.
// Assignment is exclusive: a component belongs to at most one slot of at
// most one parent at any time.
type Slot struct {
	name     string
	children []*Component
}

// Name returns the slot's name.
func (s *Slot) Name() string {
	return s.name
}

// Components returns the assigned children in attachment order.
func (s *Slot) Components() []*Component {
	out := make([]*Component, len(s.children))
	copy(out, s.children)
	return out
}

func (s *Slot) contains(c *Component) bool {
	for _, child := range s.children {
		if child == c {
			return true
		}
	}
	return false
}

func (s *Slot) detach(c *Component) {
	for i, child := range s.children {
		if child == c {
			s.children = append(s.children[:i], s.children[i+1:]...)
			return
		}
	}
}

// SlotManager owns a component's slot registry and propagates mounts and
// unmounts into the live tree once the owner is connected. Slot names may be
// declared up front via Register or discovered lazily from the template's
// boundaries when the owner connects.
//
// In strict mode, mounting into a slot whose name does not resolve to a live
// anchor is an error; by default it degrades to a logged warning and a no-op
// so dynamic or optional slots stay usable.
type SlotManager struct {
	owner  *Component
	slots  map[string]*Slot
	order  []string
	strict bool
	log    *zap.Logger
}

func newSlotManager(owner *Component, strict bool, log *zap.Logger) *SlotManager {
	return &SlotManager{
		owner:  owner,
		slots:  make(map[string]*Slot),
		strict: strict,
		log:    log,
	}
}

// Register creates the named slot if absent and returns it. Idempotent.
func (sm *SlotManager) Register(name string) *Slot {
	if s, ok := sm.slots[name]; ok {
		return s
	}
	s := &Slot{name: name}
	sm.slots[name] = s
	sm.order = append(sm.order, name)
	return s
}

// Get returns the named slot, or nil if it was never registered.
func (sm *SlotManager) Get(name string) *Slot {
	return sm.slots[name]
}

// Names returns the registered slot names in registration order.
func (sm *SlotManager) Names() []string {
	out := make([]string, len(sm.order))
	copy(out, sm.order)
	return out
}

// Attach assigns components to the named slot, creating it if absent.
// Attaching a component already assigned to this slot is a no-op. Attaching
// a component that is assigned to a different slot (of this or any parent)
// is refused with a logged diagnostic: ownership is exclusive, and explicit
// re-parenting requires detaching first (see Remove).
//
// When the owner is already connected, newly attached components are mounted
// into the slot's anchor immediately.
func (sm *SlotManager) Attach(name string, comps ...*Component) error {
	slot := sm.Register(name)
	attached := false
	for _, c := range comps {
		if c == nil {
			continue
		}
		if c.parentID == sm.owner.id && c.slotName == name && slot.contains(c) {
			continue
		}
		if c.parentID != "" {
			sm.log.Warn("refusing to attach component already assigned to a slot",
				zap.String("component", c.Name()),
				zap.String("slot", name),
				zap.String("currentSlot", c.slotName))
			continue
		}
		c.parentID = sm.owner.id
		c.parent = sm.owner
		c.slotName = name
		if !c.dispatcherSet {
			c.dispatcher = sm.owner.dispatcher
		}
		slot.children = append(slot.children, c)
		attached = true
	}
	if attached && sm.owner.Connected() {
		return sm.Mount(name)
	}
	return nil
}

// Remove detaches a child from its slot and unmounts it. The child's
// parent/slot linkage is cleared so it may be reattached elsewhere.
func (sm *SlotManager) Remove(child *Component) error {
	if child == nil || child.parentID != sm.owner.id {
		return nil
	}
	if slot := sm.slots[child.slotName]; slot != nil {
		slot.detach(child)
	}
	err := child.Unmount()
	child.parentID = ""
	child.parent = nil
	child.slotName = ""
	return err
}

// RemoveSlot destroys the named slot: all its children are unmounted and
// detached, then the slot itself is dropped from the registry.
func (sm *SlotManager) RemoveSlot(name string) error {
	slot := sm.slots[name]
	if slot == nil {
		return nil
	}
	for _, child := range slot.Components() {
		if err := sm.Remove(child); err != nil {
			return err
		}
	}
	delete(sm.slots, name)
	for i, n := range sm.order {
		if n == name {
			sm.order = append(sm.order[:i], sm.order[i+1:]...)
			break
		}
	}
	return nil
}

// Mount mounts the assigned children of the named slots into their live
// anchors. With no names, all registered slots are mounted. While the owner
// is not connected this is a no-op: there is nowhere to mount into yet.
//
// Children marked collapsed are skipped; already-connected children are
// left alone (Component.Mount is idempotent).
func (sm *SlotManager) Mount(names ...string) error {
	if !sm.owner.Connected() {
		return nil
	}
	if len(names) == 0 {
		names = sm.Names()
	}
	for _, name := range names {
		slot := sm.slots[name]
		if slot == nil {
			if sm.strict {
				return fmt.Errorf("%w: %q", ErrSlotMissing, name)
			}
			sm.log.Warn("mount into unregistered slot skipped", zap.String("slot", name))
			continue
		}
		anchor := sm.owner.slotAnchors[name]
		if anchor == nil {
			if sm.strict {
				return fmt.Errorf("%w: %q", ErrSlotMissing, name)
			}
			sm.log.Warn("slot has no live anchor, mount skipped", zap.String("slot", name))
			continue
		}
		for _, child := range slot.children {
			if child.Collapsed() {
				continue
			}
			if err := child.Mount(anchor, MountAppend); err != nil {
				return err
			}
		}
	}
	return nil
}

// Unmount unmounts (without detaching) the children of the named slots.
// With no names, all slots are unmounted. Children remain assigned and are
// remounted on the next Mount.
func (sm *SlotManager) Unmount(names ...string) error {
	if len(names) == 0 {
		names = sm.Names()
	}
	for _, name := range names {
		slot := sm.slots[name]
		if slot == nil {
			continue
		}
		for _, child := range slot.children {
			if err := child.Unmount(); err != nil {
				return err
			}
		}
	}
	return nil
}
