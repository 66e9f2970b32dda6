package ui

import (
	"fmt"

	"github.com/pthm/domcmp"
	"github.com/pthm/domcmp/dom"
	"github.com/pthm/domcmp/lib/envelope"
)

// Display states a data widget moves through. Transitions are driven solely
// by the shape of the extracted response envelope.
const (
	StateLoading = "loading"
	StateContent = "content"
	StateError   = "error"
	StateEmpty   = "empty"
)

// EventStateChange fires with the new state (string) whenever a data widget
// switches display state.
const EventStateChange = "stateChange"

// Column describes one table column. Render, when set, overrides the
// default stringified field lookup.
type Column struct {
	Key    string
	Header string
	Render func(row map[string]any) string
}

const tableLayout = `<div class="data-table">
<div data-ref="loading">Loading...</div>
<div data-ref="error" hidden><span data-ref="errorMessage"></span></div>
<div data-ref="empty" hidden>No results</div>
<table data-ref="table" hidden><thead data-ref="head"></thead><tbody data-ref="body"></tbody></table>
</div>`

var tableShape = domcmp.RefShape{
	"loading":      "div",
	"error":        "div",
	"errorMessage": "span",
	"empty":        "div",
	"table":        "table",
	"head":         "thead",
	"body":         "tbody",
}

// Table renders rows of map-shaped items and branches its display state on
// an extracted response envelope: error envelopes surface the message,
// empty pages show the empty state, anything else shows content.
type Table struct {
	*domcmp.Component

	columns []Column
	state   string
	page    *envelope.Page
}

// NewTable creates a table over the given columns. The widget starts in the
// loading state on every fresh connection.
func NewTable(columns []Column, opts ...domcmp.Option) *Table {
	t := &Table{
		Component: domcmp.New(append([]domcmp.Option{domcmp.WithName("table")}, opts...)...),
		columns:   columns,
		state:     StateLoading,
	}
	t.SetLayout(domcmp.HTML(tableLayout), tableShape)
	t.OnConnect(func() {
		_ = t.renderHead()
		_ = t.applyState()
	})
	return t
}

// State returns the current display state.
func (t *Table) State() string {
	return t.state
}

// Page returns the paging metadata of the last paged response, or nil.
func (t *Table) Page() *envelope.Page {
	return t.page
}

// Loading flips the widget back to the loading state, typically while a
// re-fetch triggered by a page change is in flight.
func (t *Table) Loading() error {
	return t.setState(StateLoading)
}

// Load applies an extracted response envelope: error shapes transition to
// StateError and surface the message text, paged shapes render the items
// (or StateEmpty for zero items), plain shapes render their data when it is
// a list of items.
func (t *Table) Load(resp *envelope.Response) error {
	switch resp.Kind {
	case envelope.KindError:
		t.page = nil
		if t.Connected() {
			msg, err := t.GetRef("errorMessage")
			if err != nil {
				return err
			}
			dom.SetText(msg, resp.Err.Message)
		}
		return t.setState(StateError)
	case envelope.KindPaged:
		t.page = resp.Page
		return t.loadItems(resp.Page.Items)
	case envelope.KindPlain:
		t.page = nil
		items, _ := resp.Data.([]any)
		return t.loadItems(items)
	default:
		return fmt.Errorf("ui: unknown envelope kind %q", resp.Kind)
	}
}

func (t *Table) loadItems(items []any) error {
	if len(items) == 0 {
		return t.setState(StateEmpty)
	}
	if t.Connected() {
		if err := t.renderRows(items); err != nil {
			return err
		}
	}
	return t.setState(StateContent)
}

func (t *Table) setState(state string) error {
	t.state = state
	if err := t.applyState(); err != nil {
		return err
	}
	t.Emit(EventStateChange, state)
	return nil
}

// applyState toggles the hidden attribute across the four state panes.
func (t *Table) applyState() error {
	if !t.Connected() {
		return nil
	}
	panes := map[string]string{
		StateLoading: "loading",
		StateError:   "error",
		StateEmpty:   "empty",
		StateContent: "table",
	}
	for state, ref := range panes {
		el, err := t.GetRef(ref)
		if err != nil {
			return err
		}
		if state == t.state {
			dom.RemoveAttr(el, "hidden")
		} else {
			dom.SetAttr(el, "hidden", "")
		}
	}
	return nil
}

func (t *Table) renderHead() error {
	head, err := t.GetRef("head")
	if err != nil {
		return err
	}
	dom.RemoveChildren(head)
	tr := dom.NewElement("tr")
	for _, col := range t.columns {
		th := dom.NewElement("th")
		dom.SetText(th, col.Header)
		tr.AppendChild(th)
	}
	head.AppendChild(tr)
	return nil
}

func (t *Table) renderRows(items []any) error {
	body, err := t.GetRef("body")
	if err != nil {
		return err
	}
	dom.RemoveChildren(body)
	for _, item := range items {
		row, _ := item.(map[string]any)
		tr := dom.NewElement("tr")
		for _, col := range t.columns {
			td := dom.NewElement("td")
			dom.SetText(td, t.cellText(col, row))
			tr.AppendChild(td)
		}
		body.AppendChild(tr)
	}
	return nil
}

func (t *Table) cellText(col Column, row map[string]any) string {
	if col.Render != nil {
		return col.Render(row)
	}
	if row == nil {
		return ""
	}
	v, ok := row[col.Key]
	if !ok || v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}

// RowCount returns the number of rendered body rows. Zero when not
// connected or not in the content state.
func (t *Table) RowCount() int {
	if !t.Connected() {
		return 0
	}
	body, err := t.GetRef("body")
	if err != nil {
		return 0
	}
	n := 0
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		if dom.IsElement(c) && c.Data == "tr" {
			n++
		}
	}
	return n
}
