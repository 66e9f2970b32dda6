// Package domcmp is a component runtime over an HTML element tree: it turns
// a template (literal markup, a generator function, or a templ.Component)
// into a live, mountable subtree with named element references ("refs"),
// nested insertion points ("slots"), and a connect/mount/unmount lifecycle
// driven by an event-emitting Component.
//
// # Core Concepts
//
// A template marks addressable elements with data-ref and insertion points
// with data-slot:
//
//	c := domcmp.New(domcmp.WithName("panel"))
//	c.SetLayout(domcmp.HTML(`<section>
//	  <h2 data-ref="title"></h2>
//	  <div data-slot="content"></div>
//	</section>`), domcmp.RefShape{"title": "h2"})
//
// Mount compiles the template once (enforcing a single root element),
// clones it, inserts the clone, and connects: a constrained scope walk
// resolves the component's own refs and slot anchors, stopping at slot
// boundaries so nested components never see each other's refs. The optional
// RefShape is checked at connect time - a missing or wrong-kind ref fails
// the mount before the component is considered connected.
//
// # Composition
//
// Child components are assigned to named slots and follow the parent's
// lifecycle: they mount after the parent's refs exist and unmount before
// those refs are cleared, so children may read parent refs from their own
// connect/disconnect callbacks.
//
//	c.AddComponentToSlot("content", child)
//	err := c.Mount(container, domcmp.MountReplace)
//
// Collapse and Expand form a remembered unmount/remount pair: a collapsed
// component stays assigned to its parent slot and re-attaches there without
// the caller re-specifying the target.
//
// # Events
//
// Every component owns an Emitter carrying the fixed lifecycle events
// (EventConnect, EventMount, ...) plus any domain events its consumers
// define. Emission is synchronous over a snapshot; a panicking listener is
// isolated and logged. Emitter.Wait turns a future event into a blocking
// call with context-based timeout.
//
// Synthetic DOM listeners registered through ListenDOM are scoped to the
// current connection and removed automatically at disconnect, closing the
// classic leaked-listener gap when components are unmounted.
//
// # Design Rationale
//
// The system favors explicitness over magic:
//   - Explicit lifecycle (Mount/Connect/Unmount, no hidden re-renders)
//   - Explicit composition (slots, exclusive child ownership)
//   - Explicit contracts (RefShape checked at connect, not on access)
//   - Soft naming conflicts warn and resolve deterministically; structural
//     and lifecycle errors fail fast
//
// There is no virtual-DOM diffing and no reactive state tracking: changing
// content means re-mounting, which keeps ownership and teardown exact.
package domcmp
