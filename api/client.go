// Package api is the client of the instance's custom listing API, which
// backs the home feed and search. Failures degrade to empty listings.
package api

import (
	"context"
	"net/url"
	"strconv"

	as "github.com/pixeltube-cli/pixeltube/activitystreams"
	"github.com/pixeltube-cli/pixeltube/constant"
	"github.com/pixeltube-cli/pixeltube/instance"
	"github.com/pixeltube-cli/pixeltube/log"
	"github.com/pixeltube-cli/pixeltube/network"
	"github.com/pixeltube-cli/pixeltube/paging"
	"github.com/pixeltube-cli/pixeltube/source"
	"github.com/pixeltube-cli/pixeltube/util"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// MaxPageSize is the largest page the listing API serves.
const MaxPageSize = 100

// Client reads paginated listings.
type Client struct {
	net      network.Requester
	site     *instance.Instance
	pageSize int
}

// NewClient returns a client requesting pageSize items per page, clamped to [1, MaxPageSize].
func NewClient(net network.Requester, site *instance.Instance, pageSize int) *Client {
	return &Client{net: net, site: site, pageSize: util.Max(1, util.Min(pageSize, MaxPageSize))}
}

// PageSize is the effective page size.
func (c *Client) PageSize() int {
	return c.pageSize
}

// Home fetches page of the home feed.
func (c *Client) Home(ctx context.Context, page int) paging.Page[*source.Video] {
	return c.videos(ctx, paging.HomeCursor(page), "videos")
}

// SearchVideos fetches page of the video search results for term.
func (c *Client) SearchVideos(ctx context.Context, term string, page int) paging.Page[*source.Video] {
	return c.videos(ctx, paging.SearchCursor(paging.VideoSearch, term, page), "search", "videos")
}

// SearchChannels fetches page of the channel search results for term.
func (c *Client) SearchChannels(ctx context.Context, term string, page int) paging.Page[*source.AuthorLink] {
	cursor := paging.SearchCursor(paging.ChannelSearch, term, page)

	list, err := network.Decode[channelList](c.net.Get(ctx, c.request(cursor, "search", "channels")))
	if err != nil {
		log.Warnf("channel search %q page %d: %v", term, page, err)
		return paging.Empty[*source.AuthorLink](cursor)
	}

	channels := lo.FilterMap(list.Channels, func(ch channel, _ int) (*source.AuthorLink, bool) {
		if ch.Username == "" {
			return nil, false
		}
		author := c.author(ch)
		author.Subscribers = mo.Some(int64(ch.Followers))
		return &author, true
	})

	return paging.Page[*source.AuthorLink]{Results: channels, Cursor: cursor.Following(c.more(list.Total, page))}
}

func (c *Client) videos(ctx context.Context, cursor paging.Cursor, elem ...string) paging.Page[*source.Video] {
	list, err := network.Decode[videoList](c.net.Get(ctx, c.request(cursor, elem...)))
	if err != nil {
		log.Warnf("%s page %d: %v", cursor.Kind, cursor.Page, err)
		return paging.Empty[*source.Video](cursor)
	}

	videos := lo.FilterMap(list.Videos, func(v video, _ int) (*source.Video, bool) {
		return c.video(v)
	})

	return paging.Page[*source.Video]{Results: videos, Cursor: cursor.Following(c.more(list.Total, cursor.Page))}
}

func (c *Client) request(cursor paging.Cursor, elem ...string) network.Request {
	query := url.Values{
		"page":  {strconv.Itoa(cursor.Page)},
		"limit": {strconv.Itoa(c.pageSize)},
	}
	if term, ok := cursor.Term.Get(); ok {
		query.Set("search", term)
	}
	return network.Request{
		URL:     c.site.APIURL(query, elem...),
		Headers: map[string]string{"Accept": "application/json"},
	}
}

// more reports whether total spans beyond page.
func (c *Client) more(total as.Count, page int) bool {
	return int64(total) > int64(page)*int64(c.pageSize)
}

func (c *Client) video(v video) (*source.Video, bool) {
	id := lo.Ternary(v.UUID != "", v.UUID, v.ID)
	if id == "" {
		return nil, false
	}

	thumbnail := v.Thumbnail
	if thumbnail == "" {
		thumbnail = as.ThumbnailFallback(c.site.CDN(), id)
	}

	return &source.Video{
		ID:        c.site.Platform().NewID(id),
		Title:     v.Title,
		Thumbnail: thumbnail,
		Author:    c.author(v.Channel),
		Published: as.ParseISODate(v.PublishedAt),
		Duration:  int64(v.Duration),
		Views:     int64(v.Views),
		URL:       c.site.VideoURL(id),
	}, true
}

func (c *Client) author(ch channel) source.AuthorLink {
	name := lo.Ternary(ch.DisplayName != "", ch.DisplayName, ch.Username)
	if name == "" {
		name = constant.UnknownChannel
	}
	return source.AuthorLink{
		ID:        c.site.Platform().NewID(ch.Username),
		Name:      name,
		URL:       lo.Ternary(ch.Username != "", c.site.ChannelURL(ch.Username), ""),
		Thumbnail: lo.Ternary(ch.Avatar != "", ch.Avatar, constant.PluginLogo),
	}
}
