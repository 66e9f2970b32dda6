// Package dom provides the element-tree substrate for domcmp: fragment
// parsing, cloning, insertion, and attribute helpers over x/net/html nodes,
// plus a synthetic event Dispatcher with bubbling.
//
// There is no browser here. The package exists so that component templates
// resolve to a real mutable tree and so that listener registration and
// teardown are observable in tests.
package dom

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ParseFragment parses markup as it would appear inside a <div> and returns
// the top-level element nodes. Whitespace-only text between roots is
// discarded; meaningful text at the top level counts as a root of its own
// (callers enforcing single-root semantics treat it as a violation).
func ParseFragment(markup string) ([]*html.Node, error) {
	ctx := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(markup), ctx)
	if err != nil {
		return nil, err
	}
	var roots []*html.Node
	for _, n := range nodes {
		if n.Type == html.TextNode && strings.TrimSpace(n.Data) == "" {
			continue
		}
		roots = append(roots, n)
	}
	return roots, nil
}

// NewElement creates a detached element node with the given tag.
func NewElement(tag string) *html.Node {
	return &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag))}
}

// NewText creates a detached text node.
func NewText(text string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: text}
}

// IsElement reports whether n is an element node.
func IsElement(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode
}

// Clone returns a deep copy of n with no parent or sibling links.
func Clone(n *html.Node) *html.Node {
	if n == nil {
		return nil
	}
	cp := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
	}
	if len(n.Attr) > 0 {
		cp.Attr = make([]html.Attribute, len(n.Attr))
		copy(cp.Attr, n.Attr)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		cp.AppendChild(Clone(c))
	}
	return cp
}

// Detach removes n from its parent, if any.
func Detach(n *html.Node) {
	if n != nil && n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// RemoveChildren detaches every child of container.
func RemoveChildren(container *html.Node) {
	for container.FirstChild != nil {
		container.RemoveChild(container.FirstChild)
	}
}

// Replace removes container's children and inserts n as the sole child.
func Replace(container, n *html.Node) {
	RemoveChildren(container)
	container.AppendChild(n)
}

// Append inserts n after container's existing children.
func Append(container, n *html.Node) {
	container.AppendChild(n)
}

// Prepend inserts n before container's existing children.
func Prepend(container, n *html.Node) {
	if container.FirstChild == nil {
		container.AppendChild(n)
		return
	}
	container.InsertBefore(n, container.FirstChild)
}

// Attr returns the value of the named attribute, or "" if absent.
func Attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// HasAttr reports whether the named attribute is present, even if empty.
func HasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}

// SetAttr sets or replaces the named attribute.
func SetAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// RemoveAttr deletes the named attribute, if present.
func RemoveAttr(n *html.Node, key string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			return
		}
	}
}

// Text returns the concatenated text content of n's subtree.
func Text(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// SetText replaces n's children with a single text node.
func SetText(n *html.Node, text string) {
	RemoveChildren(n)
	n.AppendChild(NewText(text))
}

// Render serializes n to HTML. Serialization errors cannot occur for trees
// built through this package, so the error is swallowed.
func Render(n *html.Node) string {
	var sb strings.Builder
	_ = html.Render(&sb, n)
	return sb.String()
}

// Contains reports whether node is root or a descendant of root.
func Contains(root, node *html.Node) bool {
	for n := node; n != nil; n = n.Parent {
		if n == root {
			return true
		}
	}
	return false
}
