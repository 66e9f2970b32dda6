package domcmp

import (
	"bytes"
	"context"
	"fmt"

	"github.com/a-h/templ"
	"golang.org/x/net/html"

	"github.com/pthm/domcmp/dom"
)

// Layout is the template source for a component: literal markup, a generator
// function, or a templ component. The union is sealed; construct values via
// HTML, LayoutFunc, or Templ. Resolution happens by type switch, never by
// sniffing arbitrary values.
//
// A layout is compiled (parsed to an element tree) lazily on first mount and
// cached; replacing a component's layout invalidates the cache.
type Layout interface {
	isLayout()
}

type htmlLayout struct {
	markup string
}

func (htmlLayout) isLayout() {}

type funcLayout struct {
	fn func(*Component) (any, error)
}

func (funcLayout) isLayout() {}

type templLayout struct {
	tc templ.Component
}

func (templLayout) isLayout() {}

// HTML wraps literal markup as a layout.
func HTML(markup string) Layout {
	return htmlLayout{markup: markup}
}

// LayoutFunc wraps a generator as a layout. The generator receives the
// component and returns either a markup string or a detached *html.Node.
func LayoutFunc(fn func(*Component) (any, error)) Layout {
	return funcLayout{fn: fn}
}

// Templ wraps a templ.Component as a layout. The component is rendered once
// to markup at compile time and parsed like a literal.
func Templ(tc templ.Component) Layout {
	return templLayout{tc: tc}
}

// compileLayout resolves a layout to its single root element. A layout that
// yields zero or multiple top-level elements fails with *LayoutRootError;
// this is enforced at compile (mount) time, not at definition time.
func compileLayout(l Layout, c *Component) (*html.Node, error) {
	switch src := l.(type) {
	case htmlLayout:
		return parseSingleRoot(src.markup)
	case templLayout:
		var buf bytes.Buffer
		if err := src.tc.Render(context.Background(), &buf); err != nil {
			return nil, fmt.Errorf("domcmp: rendering templ layout: %w", err)
		}
		return parseSingleRoot(buf.String())
	case funcLayout:
		out, err := src.fn(c)
		if err != nil {
			return nil, fmt.Errorf("domcmp: layout generator: %w", err)
		}
		switch v := out.(type) {
		case string:
			return parseSingleRoot(v)
		case *html.Node:
			if !dom.IsElement(v) {
				return nil, &LayoutRootError{Roots: 0}
			}
			return v, nil
		default:
			return nil, fmt.Errorf("domcmp: layout generator returned %T, want string or *html.Node", out)
		}
	default:
		return nil, fmt.Errorf("domcmp: unknown layout type %T", l)
	}
}

func parseSingleRoot(markup string) (*html.Node, error) {
	roots, err := dom.ParseFragment(markup)
	if err != nil {
		return nil, fmt.Errorf("domcmp: parsing layout: %w", err)
	}
	if len(roots) != 1 || !dom.IsElement(roots[0]) {
		return nil, &LayoutRootError{Roots: len(roots)}
	}
	return roots[0], nil
}
