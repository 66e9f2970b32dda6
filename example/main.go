// A user directory built from the composite widgets: a paginated table fed
// by a fake paged endpoint, plus a modal shell. The program drives the same
// interactions a UI would (page clicks, modal open/close) and prints the
// rendered tree after each step.
package main

import (
	"fmt"
	"log"

	"go.uber.org/zap"

	"github.com/pthm/domcmp"
	"github.com/pthm/domcmp/dom"
	"github.com/pthm/domcmp/ui"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	store := newUserStore(10)

	columns := []ui.Column{
		{Key: "id", Header: "ID"},
		{Key: "name", Header: "Name"},
		{Key: "email", Header: "Email"},
	}
	directory, err := ui.NewPaginatedTable(columns, domcmp.WithLogger(logger))
	if err != nil {
		log.Fatal(err)
	}

	// Page selection triggers a re-fetch against the store.
	directory.On(ui.EventPageChange, func(args ...any) {
		page := args[0].(int)
		logger.Info("page change", zap.Int("page", page))
		if err := loadPage(directory, store, page); err != nil {
			logger.Error("load failed", zap.Error(err))
		}
	})

	page := dom.NewElement("div")
	dom.SetAttr(page, "id", "app")
	if err := directory.Mount(page, domcmp.MountReplace); err != nil {
		log.Fatal(err)
	}
	if err := loadPage(directory, store, 1); err != nil {
		log.Fatal(err)
	}
	fmt.Println("--- page 1 ---")
	fmt.Println(dom.Render(page))

	// Simulate the user clicking the "2" button.
	clickPage(directory, 2)
	fmt.Println("--- page 2 ---")
	fmt.Println(dom.Render(page))

	// A modal with a detail view in its body slot.
	detail := domcmp.New(domcmp.WithName("detail"))
	detail.SetLayout(domcmp.HTML(`<dl><dt>Name</dt><dd data-ref="name"></dd></dl>`), nil)

	modal := ui.NewModal(nil, domcmp.WithLogger(logger))
	if err := modal.AddComponentToSlot("body", detail); err != nil {
		log.Fatal(err)
	}
	if err := modal.Mount(page, domcmp.MountAppend); err != nil {
		log.Fatal(err)
	}
	if err := modal.SetTitle("User detail"); err != nil {
		log.Fatal(err)
	}
	if name, err := detail.GetRef("name"); err == nil {
		dom.SetText(name, "User 11")
	}
	if err := modal.Open(); err != nil {
		log.Fatal(err)
	}
	fmt.Println("--- modal open ---")
	fmt.Println(dom.Render(page))
}

// loadPage fetches one page from the store and applies the envelope.
func loadPage(pt *ui.PaginatedTable, store *userStore, page int) error {
	raw, err := store.FetchPage(page)
	if err != nil {
		return err
	}
	resp, err := domcmp.ExtractResponse(raw)
	if err != nil {
		return err
	}
	return pt.Load(resp)
}

// clickPage dispatches a synthetic click on the pager button for page n.
func clickPage(pt *ui.PaginatedTable, n int) {
	pages, err := pt.Pager().GetRef("pages")
	if err != nil {
		return
	}
	want := fmt.Sprintf("%d", n)
	for li := pages.FirstChild; li != nil; li = li.NextSibling {
		for el := li.FirstChild; el != nil; el = el.NextSibling {
			if dom.IsElement(el) && dom.Attr(el, "data-page") == want {
				pt.Pager().Dispatcher().Dispatch(el, "click", nil)
				return
			}
		}
	}
}
