package dom

import (
	"strings"
	"testing"
)

func TestParseFragment(t *testing.T) {
	tests := []struct {
		name      string
		markup    string
		wantRoots int
	}{
		{"single element", `<div><span>x</span></div>`, 1},
		{"leading and trailing whitespace", "\n  <p>x</p>\n", 1},
		{"two elements", `<div></div><div></div>`, 2},
		{"meaningful top-level text counts", `hello <div></div>`, 2},
		{"empty", ``, 0},
		{"whitespace only", "  \n ", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roots, err := ParseFragment(tt.markup)
			if err != nil {
				t.Fatalf("ParseFragment: %v", err)
			}
			if len(roots) != tt.wantRoots {
				t.Errorf("got %d roots, want %d", len(roots), tt.wantRoots)
			}
		})
	}
}

func TestCloneIsDeepAndDetached(t *testing.T) {
	roots, err := ParseFragment(`<div class="a"><span data-ref="x">hi</span></div>`)
	if err != nil || len(roots) != 1 {
		t.Fatalf("parse: %v (%d roots)", err, len(roots))
	}
	orig := roots[0]
	parent := NewElement("div")
	parent.AppendChild(orig)

	cp := Clone(orig)
	if cp.Parent != nil || cp.NextSibling != nil {
		t.Error("clone carries tree links")
	}
	if Render(cp) != Render(orig) {
		t.Errorf("clone differs:\n%s\n%s", Render(cp), Render(orig))
	}

	// Mutating the clone must not touch the original.
	SetAttr(cp.FirstChild, "data-ref", "y")
	if Attr(orig.FirstChild, "data-ref") != "x" {
		t.Error("clone shares attribute storage with the original")
	}
}

func TestInsertionHelpers(t *testing.T) {
	container := NewElement("div")
	container.AppendChild(NewElement("hr"))

	Prepend(container, NewElement("header"))
	Append(container, NewElement("footer"))

	var tags []string
	for n := container.FirstChild; n != nil; n = n.NextSibling {
		tags = append(tags, n.Data)
	}
	if got := strings.Join(tags, ","); got != "header,hr,footer" {
		t.Errorf("order = %s, want header,hr,footer", got)
	}

	Replace(container, NewElement("main"))
	if container.FirstChild.Data != "main" || container.FirstChild.NextSibling != nil {
		t.Error("Replace did not leave a sole child")
	}
}

func TestPrependIntoEmpty(t *testing.T) {
	container := NewElement("div")
	Prepend(container, NewElement("p"))
	if container.FirstChild == nil || container.FirstChild.Data != "p" {
		t.Error("Prepend into empty container failed")
	}
}

func TestDetach(t *testing.T) {
	container := NewElement("div")
	child := NewElement("p")
	container.AppendChild(child)

	Detach(child)
	if child.Parent != nil || container.FirstChild != nil {
		t.Error("Detach left tree links")
	}
	Detach(child) // detached node, no-op
	Detach(nil)   // nil, no-op
}

func TestAttrHelpers(t *testing.T) {
	el := NewElement("div")

	if HasAttr(el, "hidden") {
		t.Error("fresh element has attributes")
	}
	SetAttr(el, "hidden", "")
	if !HasAttr(el, "hidden") || Attr(el, "hidden") != "" {
		t.Error("empty-valued attribute not reported as present")
	}
	SetAttr(el, "class", "a")
	SetAttr(el, "class", "b")
	if Attr(el, "class") != "b" {
		t.Error("SetAttr did not replace the existing value")
	}
	RemoveAttr(el, "class")
	if HasAttr(el, "class") {
		t.Error("RemoveAttr left the attribute")
	}
	RemoveAttr(el, "class") // absent, no-op
}

func TestTextAndSetText(t *testing.T) {
	roots, _ := ParseFragment(`<div>a<span>b</span>c</div>`)
	if got := Text(roots[0]); got != "abc" {
		t.Errorf("Text = %q, want abc", got)
	}

	SetText(roots[0], "replaced")
	if got := Text(roots[0]); got != "replaced" {
		t.Errorf("after SetText, Text = %q", got)
	}
	if roots[0].FirstChild.NextSibling != nil {
		t.Error("SetText left extra children")
	}
}

func TestContains(t *testing.T) {
	root := NewElement("div")
	mid := NewElement("section")
	leaf := NewText("x")
	root.AppendChild(mid)
	mid.AppendChild(leaf)
	stranger := NewElement("div")

	if !Contains(root, leaf) || !Contains(root, root) {
		t.Error("Contains misses descendants or self")
	}
	if Contains(root, stranger) {
		t.Error("Contains claims an unrelated node")
	}
}

func TestNewElementNormalizesAtom(t *testing.T) {
	el := NewElement("div")
	if el.DataAtom == 0 {
		t.Error("known tag did not resolve to an atom")
	}
	custom := NewElement("x-widget")
	if custom.Data != "x-widget" {
		t.Errorf("custom tag data = %q", custom.Data)
	}
}
