// Package listing holds the tab + search state of a collection screen.
//
// A View never refetches on its own after a mutation: whoever mutates the
// collection calls Refresh (or SelectTab when the shell follows the item to
// another tab).
package listing

import (
	"context"
	"sync"
)

// Fetcher loads the full collection for a tab. Fetchers used with a View
// swallow their own errors into an empty result.
type Fetcher[T any] func(ctx context.Context, tab string) []T

// Matcher reports whether item matches a non-empty search query.
type Matcher[T any] func(item T, query string) bool

type View[T any] struct {
	fetch Fetcher[T]
	match Matcher[T]

	mu    sync.RWMutex
	tab   string
	query string
	items []T
}

func New[T any](fetch Fetcher[T], match Matcher[T], initialTab string) *View[T] {
	return &View[T]{fetch: fetch, match: match, tab: initialTab}
}

func (v *View[T]) Tab() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.tab
}

func (v *View[T]) Query() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.query
}

// SelectTab switches tab, clears the search query and refetches.
func (v *View[T]) SelectTab(ctx context.Context, tab string) {
	v.mu.Lock()
	v.tab = tab
	v.query = ""
	v.mu.Unlock()
	v.Refresh(ctx)
}

// Refresh refetches the current tab and keeps the query.
func (v *View[T]) Refresh(ctx context.Context) {
	tab := v.Tab()
	items := v.fetch(ctx, tab)
	v.mu.Lock()
	defer v.mu.Unlock()
	// a tab switch that raced this fetch wins
	if v.tab != tab {
		return
	}
	v.items = items
}

func (v *View[T]) Search(query string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.query = query
}

// All returns the last fetched collection, unfiltered.
func (v *View[T]) All() []T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make([]T, len(v.items))
	copy(out, v.items)
	return out
}

// Visible returns the last fetched collection filtered by the query.
func (v *View[T]) Visible() []T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make([]T, 0, len(v.items))
	for _, item := range v.items {
		if v.query == "" || v.match(item, v.query) {
			out = append(out, item)
		}
	}
	return out
}
