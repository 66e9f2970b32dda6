package domcmp

import (
	"fmt"

	"golang.org/x/net/html"

	"github.com/pthm/domcmp/dom"
)

// Default attribute names marking addressable elements and slot boundaries
// inside a template. Both can be overridden per component or per walk.
const (
	DefaultRefAttr  = "data-ref"
	DefaultSlotAttr = "data-slot"
)

// autoSlotPrefix prefixes synthesized names for anonymous slot boundaries.
const autoSlotPrefix = "slot-"

// ScopeOptions configures a scope walk.
type ScopeOptions struct {
	// RefAttr marks an element addressable by name. Empty means DefaultRefAttr.
	RefAttr string
	// SlotAttr marks a slot boundary. Empty means DefaultSlotAttr.
	SlotAttr string
	// IncludeRoot makes the root itself a ref candidate. The root is never
	// treated as a slot boundary of its own scope.
	IncludeRoot bool
}

func (o ScopeOptions) refAttr() string {
	if o.RefAttr == "" {
		return DefaultRefAttr
	}
	return o.RefAttr
}

func (o ScopeOptions) slotAttr() string {
	if o.SlotAttr == "" {
		return DefaultSlotAttr
	}
	return o.SlotAttr
}

// ScopeResult holds the outcome of a scope walk: the component's own refs,
// its slot anchors, and any soft naming conflicts encountered. No ordering
// beyond traversal order is promised.
type ScopeResult struct {
	Refs        map[string]*html.Node
	Slots       map[string]*html.Node
	Diagnostics []Diagnostic
}

// WalkScope traverses the tree under root depth-first in pre-order and
// collects ref elements and slot boundaries belonging to the root's own
// scope. It is a pure function: the tree is not modified.
//
// The boundary rule is the core correctness property: when the walk reaches
// an element marked as a slot boundary it records the boundary and does not
// descend into its descendants. A nested component mounted into that
// boundary manages its own subtree; parent and child sharing one tree must
// never see each other's refs.
//
// Naming conflicts are soft. A ref name seen twice keeps the first match.
// A slot name seen twice, or a blank slot name, lands in an unnamed pool;
// every pooled element receives a synthesized unique name so no insertion
// point is silently dropped.
func WalkScope(root *html.Node, opts ScopeOptions) ScopeResult {
	res := ScopeResult{
		Refs:  make(map[string]*html.Node),
		Slots: make(map[string]*html.Node),
	}
	refAttr, slotAttr := opts.refAttr(), opts.slotAttr()
	var unnamed []*html.Node

	var walk func(n *html.Node, isRoot bool)
	walk = func(n *html.Node, isRoot bool) {
		if dom.IsElement(n) && (!isRoot || opts.IncludeRoot) {
			if name := dom.Attr(n, refAttr); name != "" {
				if _, seen := res.Refs[name]; seen {
					res.Diagnostics = append(res.Diagnostics,
						warnDiag(name, "duplicate ref name, keeping first match"))
				} else {
					res.Refs[name] = n
				}
			}
		}
		if dom.IsElement(n) && !isRoot && dom.HasAttr(n, slotAttr) {
			name := dom.Attr(n, slotAttr)
			switch {
			case name == "":
				unnamed = append(unnamed, n)
			case res.Slots[name] != nil:
				res.Diagnostics = append(res.Diagnostics,
					warnDiag(name, "duplicate slot name, assigning a synthesized name to the later boundary"))
				unnamed = append(unnamed, n)
			default:
				res.Slots[name] = n
			}
			// Boundary: nested components own everything below.
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, false)
		}
	}
	walk(root, true)

	next := 1
	for _, n := range unnamed {
		var name string
		for {
			name = fmt.Sprintf("%s%d", autoSlotPrefix, next)
			next++
			if res.Slots[name] == nil {
				break
			}
		}
		res.Slots[name] = n
		res.Diagnostics = append(res.Diagnostics,
			infoDiag(name, "anonymous slot boundary received a synthesized name"))
	}
	return res
}
