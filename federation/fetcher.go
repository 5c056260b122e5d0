// Package federation assembles videos and channels from an instance's
// ActivityPub endpoints, fanning independent lookups out in small batches.
package federation

import (
	"context"
	"fmt"
	"strings"

	as "github.com/pixeltube-cli/pixeltube/activitystreams"
	"github.com/pixeltube-cli/pixeltube/constant"
	"github.com/pixeltube-cli/pixeltube/instance"
	"github.com/pixeltube-cli/pixeltube/log"
	"github.com/pixeltube-cli/pixeltube/network"
	"github.com/pixeltube-cli/pixeltube/paging"
	"github.com/pixeltube-cli/pixeltube/social"
	"github.com/pixeltube-cli/pixeltube/source"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Fetcher reads federation objects of one instance.
type Fetcher struct {
	net  network.Requester
	site *instance.Instance
}

// NewFetcher returns a fetcher issuing requests through net.
func NewFetcher(net network.Requester, site *instance.Instance) *Fetcher {
	return &Fetcher{net: net, site: site}
}

func activity(url string) network.Request {
	return network.Request{URL: url, Headers: map[string]string{"Accept": constant.ActivityJSON}}
}

// VideoDetails resolves a watch URL. Only the video object fetch is fatal;
// the channel actor and the like/dislike totals fall back to defaults.
func (f *Fetcher) VideoDetails(ctx context.Context, url string) (*source.VideoDetails, error) {
	id, err := f.site.ParseVideoURL(url)
	if err != nil {
		return nil, err
	}

	object, err := network.Decode[as.Video](f.net.Get(ctx, activity(f.site.VideoObjectURL(id))))
	if err != nil {
		log.Errorf("fetch video %s: %v", id, err)
		return nil, fmt.Errorf("fetch video %s: %v: %w", id, err, source.ErrUnavailable)
	}

	attribution := as.ExtractChannelFromAttributors(object.AttributedTo)

	// Positions in the batch depend on which follow-ups exist; order is
	// always channel, likes, dislikes.
	var (
		requests                       []network.Request
		channelAt, likesAt, dislikesAt = -1, -1, -1
	)
	if a, ok := attribution.Get(); ok {
		channelAt = len(requests)
		requests = append(requests, activity(a.ActorURL))
	}
	if object.Likes != "" {
		likesAt = len(requests)
		requests = append(requests, activity(string(object.Likes)))
	}
	if object.Dislikes != "" {
		dislikesAt = len(requests)
		requests = append(requests, activity(string(object.Dislikes)))
	}

	var responses []network.Response
	if len(requests) > 0 {
		responses = f.net.Batch(ctx, requests...)
	}
	at := func(i int) mo.Option[network.Response] {
		if i < 0 || i >= len(responses) {
			return mo.None[network.Response]()
		}
		return mo.Some(responses[i])
	}

	author := f.authorOf(attribution, at(channelAt))
	rating := source.Rating{
		Likes:    total(at(likesAt), "likes", id),
		Dislikes: total(at(dislikesAt), "dislikes", id),
	}

	video, ok := f.videoOf(object, author)
	if !ok {
		return nil, fmt.Errorf("video %s has no usable id: %w", id, source.ErrUnavailable)
	}

	description := mo.None[string]()
	if object.Content != "" {
		description = mo.Some(object.Content)
	}

	details, err := source.NewVideoDetails(video, as.ExtractVideoSources(object), description, mo.Some(rating))
	if err != nil {
		log.Warnf("video %s: %v", id, err)
		return nil, err
	}

	if a, ok := attribution.Get(); ok && a.Username != "" {
		username, current := a.Username, video.ID.Value
		details.SetRelated(func(ctx context.Context) ([]*source.Video, error) {
			return f.Related(ctx, username, current)
		})
	}

	return details, nil
}

// ChannelDetails resolves a channel URL. The followers collection is
// requested speculatively next to the actor and only trusted once the
// actor confirms its location.
func (f *Fetcher) ChannelDetails(ctx context.Context, url string) (*source.Channel, error) {
	username, err := f.site.ParseChannelURL(url)
	if err != nil {
		return nil, err
	}

	speculative := f.site.FollowersURL(username)
	responses := f.net.Batch(ctx, activity(f.site.ActorURL(username)), activity(speculative))

	actor, err := network.Decode[as.Actor](responses[0])
	if err != nil {
		log.Errorf("fetch actor %s: %v", username, err)
		return nil, fmt.Errorf("fetch channel %s: %v: %w", username, err, source.ErrUnavailable)
	}

	return &source.Channel{
		ID:          f.site.Platform().NewID(username),
		Name:        displayName(actor, username),
		Thumbnail:   as.ResolveImageURL(actor.Icon, constant.PluginLogo),
		Banner:      as.ResolveImageURL(actor.Image, ""),
		Subscribers: f.followers(ctx, actor, speculative, responses[1]),
		Description: actor.Summary,
		URL:         f.site.ChannelURL(username),
		Links:       social.ExtractAll(actor.Summary, actor.Support, f.site.Host()),
	}, nil
}

// followers reuses the speculative response when the actor declares the
// same collection and that fetch succeeded, and fetches the declared one otherwise.
func (f *Fetcher) followers(ctx context.Context, actor as.Actor, speculative string, prefetched network.Response) int64 {
	declared := string(actor.Followers)
	switch {
	case declared == "":
		return 0
	case strings.EqualFold(declared, speculative) && prefetched.OK:
		return total(mo.Some(prefetched), "followers", actor.PreferredUsername)
	default:
		log.Debugf("followers of %s not prefetched, fetching %s", actor.PreferredUsername, declared)
		return total(mo.Some(f.net.Get(ctx, activity(declared))), "followers", actor.PreferredUsername)
	}
}

// OutboxPage reads one outbox page of username; next addresses a
// continuation page, None the first one. Failures yield an empty terminal page.
func (f *Fetcher) OutboxPage(ctx context.Context, username string, next mo.Option[string]) paging.Page[*source.Video] {
	cursor := paging.OutboxCursor(username, next)

	page, err := network.Decode[as.OrderedCollectionPage](f.net.Get(ctx, activity(next.OrElse(f.site.OutboxURL(username)))))
	if err != nil {
		log.Warnf("fetch outbox of %s: %v", username, err)
		return paging.Empty[*source.Video](cursor)
	}

	owner := f.placeholderAuthor(username)
	videos := lo.FilterMap(page.OrderedItems, func(a as.Activity, _ int) (*source.Video, bool) {
		object, ok := a.CreatedVideo()
		if !ok {
			return nil, false
		}
		author := owner
		if attributed, ok := as.ExtractChannelFromAttributors(object.AttributedTo).Get(); ok && attributed.Username != username {
			author = f.placeholderAuthor(attributed.Username)
		}
		video, ok := f.videoOf(object, author)
		if !ok {
			log.Debugf("skipping outbox item without id in %s", username)
			return nil, false
		}
		return &video, true
	})

	following := mo.None[string]()
	if page.Next != "" {
		following = mo.Some(string(page.Next))
	}

	return paging.Page[*source.Video]{Results: videos, Cursor: cursor.Continue(following)}
}

// Related lists the first outbox page of username without the video excluded.
func (f *Fetcher) Related(ctx context.Context, username, excluded string) ([]*source.Video, error) {
	page := f.OutboxPage(ctx, username, mo.None[string]())
	return lo.Reject(page.Results, func(v *source.Video, _ int) bool {
		return v.ID.Value == excluded
	}), nil
}
