package domcmp

import (
	"errors"
	"fmt"
)

// Sentinel errors for component lifecycle operations.
var (
	ErrAlreadyConnected = errors.New("domcmp: component already connected")
	ErrNotConnected     = errors.New("domcmp: component not connected")
	ErrNoLayout         = errors.New("domcmp: component has no layout")
	ErrEmitterDestroyed = errors.New("domcmp: emitter destroyed")
	ErrInvalidMode      = errors.New("domcmp: invalid mount mode")
	ErrInvalidTarget    = errors.New("domcmp: mount target is not an element")
	ErrSlotMissing      = errors.New("domcmp: slot does not resolve to an anchor")
)

// LayoutRootError reports a template that did not resolve to exactly one
// top-level element. Raised at mount time, not at layout definition time -
// a multi-root or empty template is an authoring bug.
type LayoutRootError struct {
	Roots int
}

func (e *LayoutRootError) Error() string {
	return fmt.Sprintf("domcmp: layout must resolve to exactly one root element, got %d", e.Roots)
}

// MissingRefError reports a declared ref that was not found in the
// connected template.
type MissingRefError struct {
	Ref string
}

func (e *MissingRefError) Error() string {
	return fmt.Sprintf("domcmp: missing ref %q", e.Ref)
}

// WrongKindError reports a declared ref that resolved to an element of the
// wrong kind. Both the expected and the actual kind are named.
type WrongKindError struct {
	Ref  string
	Want string
	Got  string
}

func (e *WrongKindError) Error() string {
	return fmt.Sprintf("domcmp: ref %q is <%s>, want <%s>", e.Ref, e.Got, e.Want)
}

// IsLifecycleError checks if err is a lifecycle misuse error
// (connecting twice, reading refs before connecting).
func IsLifecycleError(err error) bool {
	return errors.Is(err, ErrAlreadyConnected) || errors.Is(err, ErrNotConnected)
}

// IsContractError checks if err is a ref contract violation.
func IsContractError(err error) bool {
	var missing *MissingRefError
	var kind *WrongKindError
	return errors.As(err, &missing) || errors.As(err, &kind)
}
