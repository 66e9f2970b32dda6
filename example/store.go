package main

import (
	"encoding/json"
	"fmt"
)

// userStore fakes the RPC backend: FetchPage returns the JSON envelope a
// paged endpoint would produce for the requested page.
type userStore struct {
	users    []user
	pageSize int
}

type user struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func newUserStore(pageSize int) *userStore {
	s := &userStore{pageSize: pageSize}
	for i := 1; i <= 23; i++ {
		s.users = append(s.users, user{
			ID:    i,
			Name:  fmt.Sprintf("User %02d", i),
			Email: fmt.Sprintf("user%02d@example.com", i),
		})
	}
	return s
}

func (s *userStore) totalPages() int {
	return (len(s.users) + s.pageSize - 1) / s.pageSize
}

// FetchPage returns the envelope payload for page (1-based).
func (s *userStore) FetchPage(page int) ([]byte, error) {
	if page < 1 || page > s.totalPages() {
		return json.Marshal(map[string]any{
			"error": map[string]any{"code": 404, "message": fmt.Sprintf("page %d out of range", page)},
		})
	}
	lo := (page - 1) * s.pageSize
	hi := lo + s.pageSize
	if hi > len(s.users) {
		hi = len(s.users)
	}
	items := make([]any, 0, hi-lo)
	for _, u := range s.users[lo:hi] {
		items = append(items, map[string]any{"id": u.ID, "name": u.Name, "email": u.Email})
	}
	return json.Marshal(map[string]any{
		"data": map[string]any{
			"items":        items,
			"total":        len(s.users),
			"page_size":    s.pageSize,
			"current_page": page,
			"total_pages":  s.totalPages(),
		},
	})
}
