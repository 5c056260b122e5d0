// Package source defines the entities handed to the media host and the host-facing contract.
package source

import (
	"context"
	"errors"

	"github.com/pixeltube-cli/pixeltube/paging"
	"github.com/samber/mo"
)

var (
	// ErrInvalidInput marks a malformed or unrecognized URL supplied by the caller.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnavailable marks content that exists but cannot be played or fetched.
	ErrUnavailable = errors.New("content unavailable")
)

// Platform tags every identifier produced by one plugin instance.
type Platform string

// ID is a platform-scoped identifier.
type ID struct {
	Platform Platform `json:"platform"`
	Value    string   `json:"value"`
}

// NewID tags value with platform.
func (p Platform) NewID(value string) ID {
	return ID{Platform: p, Value: value}
}

func (id ID) String() string {
	return string(id.Platform) + ":" + id.Value
}

// SearchCapabilities describes which search features the platform offers.
type SearchCapabilities struct {
	Types   []string `json:"types"`
	Sorts   []string `json:"sorts"`
	Filters []string `json:"filters"`
}

// Source defines the operations a media host invokes on the plugin.
type Source interface {
	// GetHome returns the first page of the instance home feed.
	GetHome(ctx context.Context) (*paging.Pager[*Video], error)

	GetSearchCapabilities() SearchCapabilities

	// Search queries videos by free text.
	Search(ctx context.Context, query string) (*paging.Pager[*Video], error)

	// SearchChannels queries channels by free text.
	SearchChannels(ctx context.Context, query string) (*paging.Pager[*AuthorLink], error)

	IsContentDetailsURL(url string) bool

	// GetContentDetails resolves a watch URL into a playable video.
	GetContentDetails(ctx context.Context, url string) (*VideoDetails, error)

	// GetContentRecommendations lists other uploads of the video's channel.
	// A previously resolved video may be passed to skip refetching it.
	GetContentRecommendations(ctx context.Context, url string, hint mo.Option[*VideoDetails]) (*paging.Pager[*Video], error)

	IsChannelURL(url string) bool

	// GetChannel resolves a channel URL into a channel with social links.
	GetChannel(ctx context.Context, url string) (*Channel, error)

	GetChannelCapabilities() SearchCapabilities

	// GetChannelContents pages through the channel's federation outbox.
	GetChannelContents(ctx context.Context, url string) (*paging.Pager[*Video], error)
}
