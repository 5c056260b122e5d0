// Package paging holds the cursors and pagers behind every listing flow.
//
// A Cursor is a tagged variant: Kind selects which fields are meaningful.
// Listing flows backed by the REST API use Page (and Term for searches),
// the federation outbox flow uses Username and Next.
package paging

import (
	"fmt"

	"github.com/samber/mo"
)

// Kind identifies the listing flow a cursor belongs to.
type Kind int

const (
	Home Kind = iota
	VideoSearch
	ChannelSearch
	Outbox
)

func (k Kind) String() string {
	switch k {
	case Home:
		return "home"
	case VideoSearch:
		return "video-search"
	case ChannelSearch:
		return "channel-search"
	case Outbox:
		return "outbox"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Cursor is the opaque state needed to fetch one page of a listing.
type Cursor struct {
	Kind Kind `json:"kind"`

	// REST-backed listings.
	Page int               `json:"page,omitempty"`
	Term mo.Option[string] `json:"term"`

	// Federation outbox listings. An absent Next requests the first page.
	Username string            `json:"username,omitempty"`
	Next     mo.Option[string] `json:"next"`

	// More is false on terminal cursors.
	More bool `json:"more"`
}

// HomeCursor addresses page of the home feed.
func HomeCursor(page int) Cursor {
	return Cursor{Kind: Home, Page: page, More: true}
}

// SearchCursor addresses page of a video or channel search for term.
func SearchCursor(kind Kind, term string, page int) Cursor {
	return Cursor{Kind: kind, Page: page, Term: mo.Some(term), More: true}
}

// OutboxCursor addresses the outbox page of username at next, or the first page when next is absent.
func OutboxCursor(username string, next mo.Option[string]) Cursor {
	return Cursor{Kind: Outbox, Username: username, Next: next, More: true}
}

// Following returns the cursor for the REST page after c, continuable only if more is set.
func (c Cursor) Following(more bool) Cursor {
	c.Page++
	c.More = more
	return c
}

// Continue returns the outbox cursor pointing at next; it is terminal when next is absent.
func (c Cursor) Continue(next mo.Option[string]) Cursor {
	c.Next = next
	c.More = next.IsPresent()
	return c
}

// Terminal returns a copy of c that reports no further pages.
func (c Cursor) Terminal() Cursor {
	c.More = false
	return c
}
