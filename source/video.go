package source

import (
	"context"
	"fmt"

	"github.com/samber/mo"
)

// Video is a listing entry: enough to render a tile and open the details.
type Video struct {
	ID        ID         `json:"id"`
	Title     string     `json:"title"`
	Thumbnail string     `json:"thumbnail"`
	Author    AuthorLink `json:"author"`
	// Published is the upload time in unix seconds, 0 when unknown.
	Published int64 `json:"published"`
	// Duration in seconds, 0 when absent.
	Duration int64  `json:"duration"`
	Views    int64  `json:"views"`
	URL      string `json:"url"`
	// IsLive is always false: live streams are not supported.
	IsLive bool `json:"isLive"`
}

func (v *Video) String() string {
	return v.Title
}

// VideoSource is one playable rendition of a video.
type VideoSource struct {
	// Name is the rendition label (e.g. "1080p", "640w", "MP4").
	Name      string `json:"name"`
	URL       string `json:"url"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Container string `json:"container"`
	Codec     string `json:"codec"`
}

// String returns the rendition name or URL for display.
func (s VideoSource) String() string {
	if s.Name != "" {
		return s.Name
	}
	return s.URL
}

// Rating holds like and dislike totals.
type Rating struct {
	Likes    int64 `json:"likes"`
	Dislikes int64 `json:"dislikes"`
}

// VideoDetails is a fully resolved, playable video.
type VideoDetails struct {
	Video
	Description mo.Option[string] `json:"description"`
	Sources     []VideoSource     `json:"sources"`
	Rating      mo.Option[Rating] `json:"rating"`

	related func(ctx context.Context) ([]*Video, error)
}

// NewVideoDetails validates and assembles a playable video.
// It fails with ErrUnavailable when sources is empty.
func NewVideoDetails(video Video, sources []VideoSource, description mo.Option[string], rating mo.Option[Rating]) (*VideoDetails, error) {
	if len(sources) == 0 {
		return nil, fmt.Errorf("video %s has no playable sources: %w", video.ID.Value, ErrUnavailable)
	}

	video.Views = NonNegative(video.Views)
	video.Duration = NonNegative(video.Duration)
	video.Published = NonNegative(video.Published)
	video.IsLive = false

	if r, ok := rating.Get(); ok {
		rating = mo.Some(Rating{Likes: NonNegative(r.Likes), Dislikes: NonNegative(r.Dislikes)})
	}

	return &VideoDetails{
		Video:       video,
		Description: description,
		Sources:     sources,
		Rating:      rating,
	}, nil
}

// SetRelated attaches the deferred related-content resolver.
func (d *VideoDetails) SetRelated(fn func(ctx context.Context) ([]*Video, error)) {
	d.related = fn
}

// Related runs the deferred resolver. Videos without one have no related content.
func (d *VideoDetails) Related(ctx context.Context) ([]*Video, error) {
	if d.related == nil {
		return nil, nil
	}
	return d.related(ctx)
}

// NonNegative clamps counts and timestamps at zero.
func NonNegative(n int64) int64 {
	if n < 0 {
		return 0
	}
	return n
}
