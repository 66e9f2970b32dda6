package ui

import (
	"github.com/pthm/domcmp"
	"github.com/pthm/domcmp/lib/envelope"
)

const paginatedTableLayout = `<div class="paginated-table">
<div data-slot="table"></div>
<div data-slot="pager"></div>
</div>`

// PaginatedTable composes a Table and a Pagination control through the slot
// system: both widgets are slot children of one parent component, mounted
// and torn down with it.
//
// Page selection is surfaced as the composite's own EventPageChange; the
// host application re-fetches and calls Load with the new envelope.
type PaginatedTable struct {
	*domcmp.Component

	table *Table
	pager *Pagination
}

// NewPaginatedTable wires the composite. The pager stays hidden until a
// paged response arrives.
func NewPaginatedTable(columns []Column, opts ...domcmp.Option) (*PaginatedTable, error) {
	pt := &PaginatedTable{
		Component: domcmp.New(append([]domcmp.Option{domcmp.WithName("paginated-table")}, opts...)...),
		table:     NewTable(columns),
		pager:     NewPagination(),
	}
	pt.SetLayout(domcmp.HTML(paginatedTableLayout), nil)
	if err := pt.AddComponentToSlot("table", pt.table.Component); err != nil {
		return nil, err
	}
	if err := pt.AddComponentToSlot("pager", pt.pager.Component); err != nil {
		return nil, err
	}
	pt.pager.On(EventPageChange, func(args ...any) {
		pt.Emit(EventPageChange, args...)
	})
	return pt, nil
}

// Table returns the inner table widget.
func (pt *PaginatedTable) Table() *Table {
	return pt.table
}

// Pager returns the inner pagination widget.
func (pt *PaginatedTable) Pager() *Pagination {
	return pt.pager
}

// Load applies an envelope to the table and keeps the pager in sync: paged
// responses update the page window, everything else collapses the pager.
func (pt *PaginatedTable) Load(resp *envelope.Response) error {
	if err := pt.table.Load(resp); err != nil {
		return err
	}
	if resp.Kind == envelope.KindPaged {
		if err := pt.pager.Expand(); err != nil {
			return err
		}
		return pt.pager.Update(resp.Page.CurrentPage, resp.Page.TotalPages)
	}
	return pt.pager.Collapse()
}
