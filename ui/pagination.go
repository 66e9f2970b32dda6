// Package ui provides the leaf widgets built on the domcmp core: a paginated
// table, a pagination control, and a modal dialog. The widgets are ordinary
// consumers of the Component public contract; none of them reaches into core
// internals.
package ui

import (
	"fmt"
	"strconv"

	"github.com/pthm/domcmp"
	"github.com/pthm/domcmp/dom"
)

// Gap is the marker emitted between non-adjacent page numbers.
const Gap = "..."

// EventPageChange fires with the selected page number (int) when the user
// activates a page button.
const EventPageChange = "pageChange"

// CreatePaginationArray computes the delta-window page list for a pager:
// the first and last page always appear, a window of delta pages spans each
// side of the current page, and non-adjacent stretches collapse to Gap.
//
//	CreatePaginationArray(5, 10, 2) // ["1","...","3","4","5","6","7","...","10"]
func CreatePaginationArray(current, total, delta int) []string {
	if total <= 0 {
		return nil
	}
	if current < 1 {
		current = 1
	}
	if current > total {
		current = total
	}
	if total == 1 {
		return []string{"1"}
	}

	left := current - delta
	right := current + delta

	out := []string{"1"}
	if left > 2 {
		out = append(out, Gap)
	}
	lo, hi := left, right
	if lo < 2 {
		lo = 2
	}
	if hi > total-1 {
		hi = total - 1
	}
	for p := lo; p <= hi; p++ {
		out = append(out, strconv.Itoa(p))
	}
	if right < total-1 {
		out = append(out, Gap)
	}
	return append(out, strconv.Itoa(total))
}

const paginationLayout = `<nav class="pagination"><ul data-ref="pages"></ul></nav>`

// Pagination renders a delta-window pager and emits EventPageChange when a
// page button receives a click.
type Pagination struct {
	*domcmp.Component

	// Delta is the number of pages shown on each side of the current page.
	Delta int

	current int
	total   int
}

// NewPagination creates a pager with a delta window of 2.
func NewPagination(opts ...domcmp.Option) *Pagination {
	p := &Pagination{
		Component: domcmp.New(append([]domcmp.Option{domcmp.WithName("pagination")}, opts...)...),
		Delta:     2,
	}
	p.SetLayout(domcmp.HTML(paginationLayout), domcmp.RefShape{"pages": "ul"})
	p.OnConnect(func() {
		// Re-render the current window whenever a fresh connection exists.
		if p.total > 0 {
			_ = p.render()
		}
	})
	return p
}

// Current returns the current page (1-based), 0 before the first Update.
func (p *Pagination) Current() int {
	return p.current
}

// Update sets the pager to the given current/total pages and re-renders if
// connected. Safe to call before mounting; the state is applied on connect.
func (p *Pagination) Update(current, total int) error {
	p.current = current
	p.total = total
	if !p.Connected() {
		return nil
	}
	return p.render()
}

func (p *Pagination) render() error {
	pages, err := p.GetRef("pages")
	if err != nil {
		return err
	}
	dom.RemoveChildren(pages)

	for _, entry := range CreatePaginationArray(p.current, p.total, p.Delta) {
		li := dom.NewElement("li")
		if entry == Gap {
			gap := dom.NewElement("span")
			dom.SetAttr(gap, "class", "gap")
			dom.SetText(gap, Gap)
			li.AppendChild(gap)
			pages.AppendChild(li)
			continue
		}
		page, err := strconv.Atoi(entry)
		if err != nil {
			return fmt.Errorf("ui: bad page entry %q: %w", entry, err)
		}
		btn := dom.NewElement("button")
		dom.SetAttr(btn, "data-page", entry)
		if page == p.current {
			dom.SetAttr(btn, "class", "active")
		}
		dom.SetText(btn, entry)
		li.AppendChild(btn)
		pages.AppendChild(li)

		pageNum := page
		if _, err := p.ListenDOM(btn, "click", func(*dom.Event) {
			p.Emit(EventPageChange, pageNum)
		}); err != nil {
			return err
		}
	}
	return nil
}
