package domcmp

import (
	"github.com/pthm/domcmp/lib/envelope"
)

// Aliases re-exporting the envelope package for convenience, so widget
// consumers need only the root import.

// Envelope is an alias for envelope.Response.
type Envelope = envelope.Response

// EnvelopeError is an alias for envelope.Error.
type EnvelopeError = envelope.Error

// EnvelopePage is an alias for envelope.Page.
type EnvelopePage = envelope.Page

// Envelope kinds.
const (
	EnvelopeKindError = envelope.KindError
	EnvelopeKindPaged = envelope.KindPaged
	EnvelopeKindPlain = envelope.KindPlain
)

// ExtractResponse decodes an RPC response envelope, sniffing JSON vs
// msgpack encoding.
func ExtractResponse(raw []byte) (*Envelope, error) {
	return envelope.Extract(raw)
}
