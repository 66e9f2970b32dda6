// Package envelope decodes RPC response envelopes consumed by the leaf
// widgets. The component core has no awareness of this contract; widgets
// branch their display state (loading/content/error/empty) on the extracted
// shape alone.
//
// Two wire encodings are supported: JSON (the common case) and msgpack (for
// binary transports). Extract sniffs the encoding; ExtractJSON and
// ExtractMsgpack pin it.
package envelope

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Sentinel errors for envelope extraction.
var (
	ErrEmptyPayload = errors.New("envelope: empty payload")
	ErrBadEnvelope  = errors.New("envelope: payload is not a response envelope")
)

// Kind classifies an extracted response.
type Kind string

const (
	// KindError carries a structured error (code, message, data).
	KindError Kind = "error"
	// KindPaged carries a page of items plus paging metadata.
	KindPaged Kind = "paged"
	// KindPlain carries opaque payload data.
	KindPlain Kind = "plain"
)

// Error is the error shape of an envelope.
type Error struct {
	Code    int    `json:"code" msgpack:"code"`
	Message string `json:"message" msgpack:"message"`
	Data    any    `json:"data,omitempty" msgpack:"data,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("envelope: remote error %d: %s", e.Code, e.Message)
}

// Page is the paged-data shape of an envelope.
type Page struct {
	Items       []any `json:"items" msgpack:"items"`
	Total       int   `json:"total" msgpack:"total"`
	PageSize    int   `json:"page_size" msgpack:"page_size"`
	CurrentPage int   `json:"current_page" msgpack:"current_page"`
	TotalPages  int   `json:"total_pages" msgpack:"total_pages"`
}

// Response is the result of extracting an envelope. Exactly one of Err,
// Page, or Data is meaningful, selected by Kind.
type Response struct {
	Kind Kind
	Err  *Error
	Page *Page
	Data any
}

// Extract decodes raw as a response envelope, sniffing the encoding: a
// payload whose first non-space byte is '{' is treated as JSON, anything
// else as msgpack.
func Extract(raw []byte) (*Response, error) {
	if looksLikeJSON(raw) {
		return ExtractJSON(raw)
	}
	return ExtractMsgpack(raw)
}

// ExtractJSON decodes a JSON-encoded envelope.
func ExtractJSON(raw []byte) (*Response, error) {
	if len(raw) == 0 {
		return nil, ErrEmptyPayload
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadEnvelope, err)
	}
	return classify(m)
}

// ExtractMsgpack decodes a msgpack-encoded envelope.
func ExtractMsgpack(raw []byte) (*Response, error) {
	if len(raw) == 0 {
		return nil, ErrEmptyPayload
	}
	var m map[string]any
	if err := msgpack.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadEnvelope, err)
	}
	return classify(m)
}

func classify(m map[string]any) (*Response, error) {
	if errVal, ok := m["error"]; ok && errVal != nil {
		em, ok := toStringMap(errVal)
		if !ok {
			return nil, fmt.Errorf("%w: error field is %T", ErrBadEnvelope, errVal)
		}
		return &Response{
			Kind: KindError,
			Err: &Error{
				Code:    toInt(em["code"]),
				Message: toString(em["message"]),
				Data:    em["data"],
			},
		}, nil
	}
	data, ok := m["data"]
	if !ok {
		return nil, ErrBadEnvelope
	}
	if dm, ok := toStringMap(data); ok {
		if items, paged := dm["items"]; paged {
			if _, hasPage := dm["current_page"]; hasPage {
				return &Response{
					Kind: KindPaged,
					Page: &Page{
						Items:       toSlice(items),
						Total:       toInt(dm["total"]),
						PageSize:    toInt(dm["page_size"]),
						CurrentPage: toInt(dm["current_page"]),
						TotalPages:  toInt(dm["total_pages"]),
					},
				}, nil
			}
		}
	}
	return &Response{Kind: KindPlain, Data: data}, nil
}

func looksLikeJSON(raw []byte) bool {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		case '{':
			return true
		default:
			return false
		}
	}
	return false
}

// toStringMap normalizes the map shapes the two decoders produce.
// msgpack may yield map[any]any for nested maps.
func toStringMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			ks, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[ks] = val
		}
		return out, true
	}
	return nil, false
}

func toSlice(v any) []any {
	if s, ok := v.([]any); ok {
		return s
	}
	return nil
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}

// toInt accepts the numeric types JSON and msgpack decoding produce.
func toInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int8:
		return int(n)
	case int16:
		return int(n)
	case int32:
		return int(n)
	case int64:
		return int(n)
	case uint8:
		return int(n)
	case uint16:
		return int(n)
	case uint32:
		return int(n)
	case uint64:
		return int(n)
	case float32:
		return int(n)
	case float64:
		return int(n)
	case json.Number:
		i, _ := n.Int64()
		return int(i)
	}
	return 0
}
