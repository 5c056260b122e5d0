package paging

import (
	"context"
	"errors"
)

// ErrExhausted is returned when advancing a pager that has no continuation.
var ErrExhausted = errors.New("no more results")

// Page is one page of results and the cursor for the page after it.
type Page[T any] struct {
	Results []T    `json:"results"`
	Cursor  Cursor `json:"cursor"`
}

// Empty returns a non-continuable page for c.
func Empty[T any](c Cursor) Page[T] {
	return Page[T]{Results: []T{}, Cursor: c.Terminal()}
}

// Fetch retrieves the page c addresses. Implementations dispatch on c.Kind
// and absorb failures into an empty terminal page.
type Fetch[T any] func(ctx context.Context, c Cursor) Page[T]

// Pager holds the current page of a listing and knows how to fetch the next.
// A pager is not safe for concurrent NextPage calls.
type Pager[T any] struct {
	fetch   Fetch[T]
	results []T
	cursor  Cursor
}

// NewPager fetches the page first addresses and returns a pager positioned on it.
func NewPager[T any](ctx context.Context, fetch Fetch[T], first Cursor) *Pager[T] {
	page := fetch(ctx, first)
	return &Pager[T]{fetch: fetch, results: page.Results, cursor: page.Cursor}
}

// FromPage wraps an already fetched page.
func FromPage[T any](fetch Fetch[T], page Page[T]) *Pager[T] {
	return &Pager[T]{fetch: fetch, results: page.Results, cursor: page.Cursor}
}

// Results returns the current page only; pages are never merged.
func (p *Pager[T]) Results() []T {
	return p.results
}

// Cursor returns the continuation state.
func (p *Pager[T]) Cursor() Cursor {
	return p.cursor
}

// HasMore reports whether NextPage may be called.
func (p *Pager[T]) HasMore() bool {
	return p.fetch != nil && p.cursor.More
}

// NextPage replaces the current results and cursor with the following page.
func (p *Pager[T]) NextPage(ctx context.Context) error {
	if !p.HasMore() {
		return ErrExhausted
	}

	page := p.fetch(ctx, p.cursor)
	p.results = page.Results
	p.cursor = page.Cursor
	return nil
}
