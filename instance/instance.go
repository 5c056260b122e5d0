// Package instance knows the URL layout of a PixelTube instance: the public
// watch and channel pages, the federation endpoints and the listing API.
package instance

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/pixeltube-cli/pixeltube/source"
	"github.com/pixeltube-cli/pixeltube/util"
)

// Instance is an immutable description of one PixelTube deployment.
type Instance struct {
	base     *url.URL
	cdn      string
	platform source.Platform

	videoPattern   *regexp.Regexp
	channelPattern *regexp.Regexp
}

// New validates base and prepares the URL recognizers for its host.
func New(base, cdn string, platform source.Platform) (*Instance, error) {
	u, err := url.Parse(strings.TrimRight(base, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse instance url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("instance url %q must be absolute", base)
	}

	host := regexp.QuoteMeta(strings.TrimPrefix(strings.ToLower(u.Host), "www."))
	prefix := `(?i)^https?://(?:www\.)?` + host

	return &Instance{
		base:           u,
		cdn:            cdn,
		platform:       platform,
		videoPattern:   regexp.MustCompile(prefix + `/w/(?P<id>[^/?#]+)/?(?:[?#].*)?$`),
		channelPattern: regexp.MustCompile(prefix + `/c/(?P<username>[^/?#]+)(?:/[^?#]*)?(?:[?#].*)?$`),
	}, nil
}

// Host is the instance host without a www. prefix.
func (i *Instance) Host() string {
	return strings.TrimPrefix(strings.ToLower(i.base.Hostname()), "www.")
}

// Platform is the tag applied to identifiers from this instance.
func (i *Instance) Platform() source.Platform {
	return i.platform
}

// CDN is the thumbnail host.
func (i *Instance) CDN() string {
	return i.cdn
}

func (i *Instance) join(elem ...string) string {
	return i.base.JoinPath(elem...).String()
}

// VideoURL is the public watch page of a video.
func (i *Instance) VideoURL(id string) string {
	return i.join("w", id)
}

// ChannelURL is the public page of a channel.
func (i *Instance) ChannelURL(username string) string {
	return i.join("c", username)
}

// VideoObjectURL is the federation representation of a video.
func (i *Instance) VideoObjectURL(id string) string {
	return i.join("videos", id)
}

// ActorURL is the federation representation of a channel.
func (i *Instance) ActorURL(username string) string {
	return i.join("actors", username)
}

// FollowersURL is where an actor's followers collection is expected to live.
func (i *Instance) FollowersURL(username string) string {
	return i.join("actors", username, "followers")
}

// OutboxURL is the first page of an actor's outbox.
func (i *Instance) OutboxURL(username string) string {
	return i.join("actors", username, "outbox") + "?page=1"
}

// APIURL addresses the listing API.
func (i *Instance) APIURL(query url.Values, elem ...string) string {
	u := i.base.JoinPath(append([]string{"api", "v1"}, elem...)...)
	u.RawQuery = query.Encode()
	return u.String()
}

// IsVideoURL reports whether raw is a watch page of this instance.
func (i *Instance) IsVideoURL(raw string) bool {
	return i.videoPattern.MatchString(strings.TrimSpace(raw))
}

// IsChannelURL reports whether raw is a channel page of this instance.
func (i *Instance) IsChannelURL(raw string) bool {
	return i.channelPattern.MatchString(strings.TrimSpace(raw))
}

// ParseVideoURL extracts the video id of a watch page.
func (i *Instance) ParseVideoURL(raw string) (string, error) {
	id := util.ReGroups(i.videoPattern, strings.TrimSpace(raw))["id"]
	if id == "" {
		return "", fmt.Errorf("video not found at %q: %w", raw, source.ErrInvalidInput)
	}
	return id, nil
}

// ParseChannelURL extracts the username of a channel page.
func (i *Instance) ParseChannelURL(raw string) (string, error) {
	username := util.ReGroups(i.channelPattern, strings.TrimSpace(raw))["username"]
	if username == "" {
		return "", fmt.Errorf("channel not found at %q: %w", raw, source.ErrInvalidInput)
	}
	return username, nil
}
