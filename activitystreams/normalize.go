package activitystreams

import (
	"fmt"
	"net/url"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pixeltube-cli/pixeltube/constant"
	"github.com/pixeltube-cli/pixeltube/source"
	"github.com/pixeltube-cli/pixeltube/util"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

var (
	durationPattern = regexp.MustCompile(`^PT(?:(?P<hours>\d+)H)?(?:(?P<minutes>\d+)M)?(?:(?P<seconds>\d+)(?:\.\d+)?S)?$`)
	actorPattern    = regexp.MustCompile(`/actors/(?P<username>[^/?#]+)/?$`)
	uuidPattern     = regexp.MustCompile(`[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)
)

// ResolveImageURL returns the address of the first image element, or fallback.
func ResolveImageURL(images Nodes, fallback string) string {
	if n, ok := images.First(); ok {
		if link := n.Link(); link != "" {
			return link
		}
	}
	return fallback
}

// ThumbnailFallback is the CDN path PixelTube serves every video thumbnail at.
func ThumbnailFallback(cdn, id string) string {
	return strings.TrimRight(cdn, "/") + "/thumbnails/" + id + ".jpg"
}

// dateLayouts are tried in order; zone-less timestamps are read as UTC.
var dateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999999", "2006-01-02"}

// ParseISODate converts an ISO-8601 timestamp to unix seconds. Empty or invalid input yields 0.
func ParseISODate(s string) int64 {
	if s == "" {
		return 0
	}
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return source.NonNegative(t.Unix())
		}
	}
	return 0
}

// ParseISODuration parses the PT[nH][nM][nS] subset of ISO-8601 durations into seconds.
func ParseISODuration(s string) int64 {
	s = strings.TrimSpace(s)
	if !durationPattern.MatchString(s) {
		return 0
	}

	groups := util.ReGroups(durationPattern, s)
	part := func(name string) int64 {
		n, _ := strconv.ParseInt(groups[name], 10, 64)
		return n
	}
	return part("hours")*3600 + part("minutes")*60 + part("seconds")
}

// Attribution is the origin channel a video is attributed to.
type Attribution struct {
	ActorURL string
	Username string
}

// ExtractChannelFromAttributors returns the first attributed actor that is not
// a mirror relay. None means the channel is unknown.
func ExtractChannelFromAttributors(attributedTo Nodes) mo.Option[Attribution] {
	for _, n := range attributedTo {
		ref := n.Ref()
		if ref == "" || strings.Contains(ref, constant.MirrorMarker) {
			continue
		}
		return mo.Some(Attribution{ActorURL: ref, Username: UsernameFromActorURL(ref)})
	}
	return mo.None[Attribution]()
}

// UsernameFromActorURL reads the {username} of .../actors/{username}, falling
// back to the last path segment.
func UsernameFromActorURL(actorURL string) string {
	if groups := util.ReGroups(actorPattern, actorURL); groups["username"] != "" {
		return groups["username"]
	}
	return lastSegment(actorURL)
}

// ExtractVideoSources keeps the direct video links of a video object, highest first.
func ExtractVideoSources(v Video) []source.VideoSource {
	links := lo.Filter(v.URL, func(n Node, _ int) bool {
		return strings.EqualFold(n.Type, "Link") && strings.HasPrefix(strings.ToLower(n.MediaType), "video/")
	})

	sources := lo.Map(links, func(n Node, _ int) source.VideoSource {
		return source.VideoSource{
			Name:      renditionName(n),
			URL:       mediaURL(n),
			Width:     n.Width,
			Height:    n.Height,
			Container: n.MediaType,
			Codec:     codecOf(n.MediaType),
		}
	})

	sort.SliceStable(sources, func(i, j int) bool {
		return sources[i].Height > sources[j].Height
	})
	return sources
}

// mediaURL reads a Link element, where href is the canonical field.
func mediaURL(n Node) string {
	if n.Href != "" {
		return n.Href
	}
	return n.Link()
}

func renditionName(n Node) string {
	switch {
	case n.Height > 0:
		return fmt.Sprintf("%dp", n.Height)
	case n.Width > 0:
		return fmt.Sprintf("%dw", n.Width)
	default:
		_, subtype, _ := strings.Cut(n.MediaType, "/")
		return strings.ToUpper(subtype)
	}
}

// codecOf labels webm as VP9 and everything else H264; the container is not inspected.
func codecOf(mediaType string) string {
	if strings.EqualFold(mediaType, "video/webm") {
		return "VP9"
	}
	return "H264"
}

// ExtractVideoUUID prefers the uuid field, then a trailing UUID in id, then
// the last path segment of id. None when id is absent.
func ExtractVideoUUID(v Video) mo.Option[string] {
	if v.ID == "" {
		return mo.None[string]()
	}
	if v.UUID != "" {
		return mo.Some(v.UUID)
	}
	if m := uuidPattern.FindString(v.ID); m != "" {
		return mo.Some(m)
	}
	if seg := lastSegment(v.ID); seg != "" {
		return mo.Some(seg)
	}
	return mo.None[string]()
}

func lastSegment(raw string) string {
	p := raw
	if u, err := url.Parse(raw); err == nil && u.Path != "" {
		p = u.Path
	}
	seg := path.Base(strings.TrimRight(p, "/"))
	if seg == "." || seg == "/" {
		return ""
	}
	return seg
}
