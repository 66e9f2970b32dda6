package domcmp

import (
	"sort"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RefShape declares the refs a template is required to contain, mapping a
// ref name to the expected element kind (tag name, e.g. "button").
//
// A shape is optional: components without one skip contract checking
// entirely, preserving an escape hatch for untyped or dynamic templates.
type RefShape map[string]string

// CheckRefs validates a resolved ref mapping against a declared shape.
// Checking is all-or-nothing: the first violation (in lexical ref-name
// order, for determinism) is returned and nothing else is inspected.
//
// A missing ref yields *MissingRefError; a present ref of the wrong tag
// yields *WrongKindError naming both kinds.
func CheckRefs(refs map[string]*html.Node, shape RefShape) error {
	names := make([]string, 0, len(shape))
	for name := range shape {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		el, ok := refs[name]
		if !ok || el == nil {
			return &MissingRefError{Ref: name}
		}
		want := normalizeKind(shape[name])
		got := normalizeKind(el.Data)
		if want != "" && got != want {
			return &WrongKindError{Ref: name, Want: want, Got: got}
		}
	}
	return nil
}

// normalizeKind lowercases a tag name, routing known tags through the atom
// table so "BUTTON", "Button" and "button" compare equal.
func normalizeKind(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if a := atom.Lookup([]byte(tag)); a != 0 {
		return a.String()
	}
	return tag
}
