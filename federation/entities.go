package federation

import (
	as "github.com/pixeltube-cli/pixeltube/activitystreams"
	"github.com/pixeltube-cli/pixeltube/constant"
	"github.com/pixeltube-cli/pixeltube/log"
	"github.com/pixeltube-cli/pixeltube/network"
	"github.com/pixeltube-cli/pixeltube/source"
	"github.com/samber/mo"
)

// videoOf maps a video object to a listing entry; false when it has no id.
func (f *Fetcher) videoOf(object as.Video, author source.AuthorLink) (source.Video, bool) {
	id, ok := as.ExtractVideoUUID(object).Get()
	if !ok {
		return source.Video{}, false
	}

	return source.Video{
		ID:        f.site.Platform().NewID(id),
		Title:     object.Name,
		Thumbnail: as.ResolveImageURL(object.Icon, as.ThumbnailFallback(f.site.CDN(), id)),
		Author:    author,
		Published: as.ParseISODate(object.Published),
		Duration:  as.ParseISODuration(object.Duration),
		Views:     int64(object.Views),
		URL:       f.site.VideoURL(id),
	}, true
}

// authorOf builds the channel reference of a video from the batched actor response.
func (f *Fetcher) authorOf(attribution mo.Option[as.Attribution], response mo.Option[network.Response]) source.AuthorLink {
	a, ok := attribution.Get()
	if !ok {
		return source.AuthorLink{
			ID:        f.site.Platform().NewID(""),
			Name:      constant.UnknownChannel,
			Thumbnail: constant.PluginLogo,
		}
	}

	author := f.placeholderAuthor(a.Username)
	author.Name = constant.UnknownChannel

	r, ok := response.Get()
	if !ok {
		return author
	}
	actor, err := network.Decode[as.Actor](r)
	if err != nil {
		log.Warnf("fetch channel actor %s: %v", a.ActorURL, err)
		return author
	}

	author.Name = displayName(actor, a.Username)
	author.Thumbnail = as.ResolveImageURL(actor.Icon, constant.PluginLogo)
	return author
}

// placeholderAuthor references a channel known only by username.
func (f *Fetcher) placeholderAuthor(username string) source.AuthorLink {
	return source.AuthorLink{
		ID:        f.site.Platform().NewID(username),
		Name:      username,
		URL:       f.site.ChannelURL(username),
		Thumbnail: constant.PluginLogo,
	}
}

// displayName prefers the actor name, then its preferred username, then the URL username.
func displayName(actor as.Actor, username string) string {
	switch {
	case actor.Name != "":
		return actor.Name
	case actor.PreferredUsername != "":
		return actor.PreferredUsername
	default:
		return username
	}
}

// total reads totalItems of a collection response, 0 on any failure.
func total(response mo.Option[network.Response], what, owner string) int64 {
	r, ok := response.Get()
	if !ok {
		return 0
	}
	collection, err := network.Decode[as.Collection](r)
	if err != nil {
		log.Warnf("fetch %s of %s: %v", what, owner, err)
		return 0
	}
	return int64(collection.TotalItems)
}
