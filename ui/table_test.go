package ui

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/pthm/domcmp"
	"github.com/pthm/domcmp/dom"
	"github.com/pthm/domcmp/lib/envelope"
)

var userColumns = []Column{
	{Key: "id", Header: "ID"},
	{Key: "name", Header: "Name"},
}

func pagedUsers() *envelope.Response {
	return &envelope.Response{
		Kind: envelope.KindPaged,
		Page: &envelope.Page{
			Items: []any{
				map[string]any{"id": 1, "name": "ada"},
				map[string]any{"id": 2, "name": "grace"},
				map[string]any{"id": 3, "name": "erin"},
			},
			Total:       25,
			PageSize:    10,
			CurrentPage: 1,
			TotalPages:  3,
		},
	}
}

// visiblePane returns the data-ref name of the pane without a hidden attr.
func visiblePane(t *testing.T, tbl *Table) string {
	t.Helper()
	var visible []string
	for _, ref := range []string{"loading", "error", "empty", "table"} {
		el, err := tbl.GetRef(ref)
		if err != nil {
			t.Fatalf("ref %q: %v", ref, err)
		}
		if !dom.HasAttr(el, "hidden") {
			visible = append(visible, ref)
		}
	}
	if len(visible) != 1 {
		t.Fatalf("want exactly one visible pane, got %v", visible)
	}
	return visible[0]
}

func TestTableStartsLoading(t *testing.T) {
	tbl := NewTable(userColumns)
	if _, err := domcmp.TestMount(tbl.Component); err != nil {
		t.Fatalf("TestMount: %v", err)
	}
	if tbl.State() != StateLoading {
		t.Errorf("State = %q, want loading", tbl.State())
	}
	if pane := visiblePane(t, tbl); pane != "loading" {
		t.Errorf("visible pane = %q, want loading", pane)
	}
}

func TestTableLoadPaged(t *testing.T) {
	tbl := NewTable(userColumns)
	if _, err := domcmp.TestMount(tbl.Component); err != nil {
		t.Fatalf("TestMount: %v", err)
	}

	var states []string
	tbl.On(EventStateChange, func(args ...any) {
		states = append(states, args[0].(string))
	})

	if err := tbl.Load(pagedUsers()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if tbl.State() != StateContent {
		t.Errorf("State = %q, want content", tbl.State())
	}
	if pane := visiblePane(t, tbl); pane != "table" {
		t.Errorf("visible pane = %q, want table", pane)
	}
	if n := tbl.RowCount(); n != 3 {
		t.Errorf("RowCount = %d, want 3", n)
	}
	if diff := cmp.Diff([]string{StateContent}, states); diff != "" {
		t.Errorf("state events (-want +got):\n%s", diff)
	}
	if tbl.Page() == nil || tbl.Page().TotalPages != 3 {
		t.Errorf("Page = %+v, want total_pages 3", tbl.Page())
	}

	body, _ := tbl.GetRef("body")
	if got := dom.Text(body.FirstChild); got != "1ada" {
		t.Errorf("first row text = %q, want 1ada", got)
	}
}

func TestTableLoadError(t *testing.T) {
	tbl := NewTable(userColumns)
	if _, err := domcmp.TestMount(tbl.Component); err != nil {
		t.Fatalf("TestMount: %v", err)
	}

	resp := &envelope.Response{
		Kind: envelope.KindError,
		Err:  &envelope.Error{Code: 500, Message: "database unavailable"},
	}
	if err := tbl.Load(resp); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if tbl.State() != StateError {
		t.Errorf("State = %q, want error", tbl.State())
	}
	if pane := visiblePane(t, tbl); pane != "error" {
		t.Errorf("visible pane = %q, want error", pane)
	}
	msg, _ := tbl.GetRef("errorMessage")
	if got := dom.Text(msg); got != "database unavailable" {
		t.Errorf("error message = %q", got)
	}
	if tbl.Page() != nil {
		t.Error("error load kept stale page metadata")
	}
}

func TestTableLoadEmpty(t *testing.T) {
	tbl := NewTable(userColumns)
	if _, err := domcmp.TestMount(tbl.Component); err != nil {
		t.Fatalf("TestMount: %v", err)
	}

	resp := &envelope.Response{
		Kind: envelope.KindPaged,
		Page: &envelope.Page{Items: nil, CurrentPage: 1, TotalPages: 0},
	}
	if err := tbl.Load(resp); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tbl.State() != StateEmpty {
		t.Errorf("State = %q, want empty", tbl.State())
	}
	if pane := visiblePane(t, tbl); pane != "empty" {
		t.Errorf("visible pane = %q, want empty", pane)
	}
}

func TestTableLoadPlainList(t *testing.T) {
	tbl := NewTable(userColumns)
	if _, err := domcmp.TestMount(tbl.Component); err != nil {
		t.Fatalf("TestMount: %v", err)
	}

	resp := &envelope.Response{
		Kind: envelope.KindPlain,
		Data: []any{map[string]any{"id": 7, "name": "lin"}},
	}
	if err := tbl.Load(resp); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tbl.State() != StateContent || tbl.RowCount() != 1 {
		t.Errorf("State = %q RowCount = %d", tbl.State(), tbl.RowCount())
	}
	if tbl.Page() != nil {
		t.Error("plain load set page metadata")
	}
}

func TestTableCustomRender(t *testing.T) {
	cols := []Column{
		{Key: "name", Header: "Name", Render: func(row map[string]any) string {
			return "<" + row["name"].(string) + ">"
		}},
	}
	tbl := NewTable(cols)
	if _, err := domcmp.TestMount(tbl.Component); err != nil {
		t.Fatalf("TestMount: %v", err)
	}
	resp := &envelope.Response{
		Kind: envelope.KindPlain,
		Data: []any{map[string]any{"name": "ada"}},
	}
	if err := tbl.Load(resp); err != nil {
		t.Fatalf("Load: %v", err)
	}
	body, _ := tbl.GetRef("body")
	if got := dom.Text(body); got != "<ada>" {
		t.Errorf("rendered cell = %q, want <ada>", got)
	}
}

func TestTableLoadBeforeMount(t *testing.T) {
	tbl := NewTable(userColumns)
	if err := tbl.Load(pagedUsers()); err != nil {
		t.Fatalf("Load before mount: %v", err)
	}
	if tbl.State() != StateContent {
		t.Errorf("State = %q, want content", tbl.State())
	}
	// Rows render lazily; the pane state applies on connect.
	if _, err := domcmp.TestMount(tbl.Component); err != nil {
		t.Fatalf("TestMount: %v", err)
	}
	if pane := visiblePane(t, tbl); pane != "table" {
		t.Errorf("visible pane after mount = %q, want table", pane)
	}
}

func TestPaginatedTableComposition(t *testing.T) {
	pt, err := NewPaginatedTable(userColumns)
	if err != nil {
		t.Fatalf("NewPaginatedTable: %v", err)
	}
	res, err := domcmp.TestMount(pt.Component)
	if err != nil {
		t.Fatalf("TestMount: %v", err)
	}

	if err := pt.Load(pagedUsers()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if pt.Table().State() != StateContent || pt.Table().RowCount() != 3 {
		t.Errorf("table state = %q rows = %d", pt.Table().State(), pt.Table().RowCount())
	}
	if !pt.Pager().Connected() {
		t.Fatal("pager not expanded after paged load")
	}

	btns := pageButtons(t, pt.Pager())
	var labels []string
	for _, b := range btns {
		labels = append(labels, dom.Attr(b, "data-page"))
	}
	if diff := cmp.Diff([]string{"1", "2", "3"}, labels); diff != "" {
		t.Errorf("pager window (-want +got):\n%s", diff)
	}
	if dom.Attr(btns[0], "class") != "active" {
		t.Error("page 1 not marked active")
	}
	if !res.HTMLContainsAll("ada", "grace", "erin") {
		t.Error("row content missing from the composed tree")
	}
}

func TestPaginatedTableReEmitsPageChange(t *testing.T) {
	pt, err := NewPaginatedTable(userColumns)
	if err != nil {
		t.Fatalf("NewPaginatedTable: %v", err)
	}
	if _, err := domcmp.TestMount(pt.Component); err != nil {
		t.Fatalf("TestMount: %v", err)
	}
	if err := pt.Load(pagedUsers()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	got := 0
	pt.On(EventPageChange, func(args ...any) { got = args[0].(int) })

	btns := pageButtons(t, pt.Pager())
	pt.Pager().Dispatcher().Dispatch(btns[1], "click", nil)

	if got != 2 {
		t.Errorf("re-emitted page = %d, want 2", got)
	}
}

func TestPaginatedTableCollapsesPagerOnUnpagedLoad(t *testing.T) {
	pt, err := NewPaginatedTable(userColumns)
	if err != nil {
		t.Fatalf("NewPaginatedTable: %v", err)
	}
	if _, err := domcmp.TestMount(pt.Component); err != nil {
		t.Fatalf("TestMount: %v", err)
	}

	if err := pt.Load(pagedUsers()); err != nil {
		t.Fatalf("paged load: %v", err)
	}
	plain := &envelope.Response{Kind: envelope.KindPlain, Data: []any{map[string]any{"id": 1}}}
	if err := pt.Load(plain); err != nil {
		t.Fatalf("plain load: %v", err)
	}

	if pt.Pager().Connected() {
		t.Error("pager still mounted after unpaged load")
	}
	if !pt.Pager().Collapsed() {
		t.Error("pager not marked collapsed")
	}

	// A later paged load expands it again into the same slot.
	if err := pt.Load(pagedUsers()); err != nil {
		t.Fatalf("re-paged load: %v", err)
	}
	if !pt.Pager().Connected() {
		t.Error("pager did not expand back")
	}
}
