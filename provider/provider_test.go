package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pixeltube-cli/pixeltube/key"
	"github.com/pixeltube-cli/pixeltube/network"
	"github.com/pixeltube-cli/pixeltube/paging"
	"github.com/pixeltube-cli/pixeltube/source"
	"github.com/samber/lo"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

func TestGet(t *testing.T) {
	Convey("When trying to get an invalid provider", t, func() {
		_, ok := Get("kek")
		Convey("Then ok should be false", func() {
			So(ok, ShouldBeFalse)
		})
	})

	Convey("The builtin provider is found by id", t, func() {
		p, ok := Get("pixeltube")
		So(ok, ShouldBeTrue)
		So(p.String(), ShouldEqual, "PixelTube")
	})
}

// routes maps "path?page" to a body; %s is replaced by the server URL.
type routes map[string]string

func serve(t *testing.T, r routes) (*httptest.Server, *Plugin) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		route := req.URL.Path
		if page := req.URL.Query().Get("page"); page != "" {
			route += "?" + page
		}
		body, ok := r[route]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(strings.ReplaceAll(body, "%s", server.URL)))
	}))
	t.Cleanup(server.Close)

	plugin := New(network.NewClient(5*time.Second, "test"))
	err := plugin.Enable(Config{PlatformID: "pixeltube", CDN: "https://cdn.pixeltube.video", PageSize: 20}, Settings{
		key.Instance:    server.URL,
		key.APIPageSize: "2",
	})
	if err != nil {
		t.Fatal(err)
	}
	return server, plugin
}

func listing(total int, ids ...string) string {
	videos := lo.Map(ids, func(id string, _ int) string {
		return fmt.Sprintf(`{"uuid":%q,"title":%q,"channel":{"username":"blender"}}`, id, "Video "+id)
	})
	return fmt.Sprintf(`{"total":%d,"videos":[%s]}`, total, strings.Join(videos, ","))
}

func ids(videos []*source.Video) []string {
	return lo.Map(videos, func(v *source.Video, _ int) string { return v.ID.Value })
}

const watchObject = `{
	"type": "Video",
	"id": "%s/videos/watch/sintel",
	"name": "Sintel",
	"attributedTo": [{"type": "Group", "id": "%s/actors/blender"}],
	"url": [{"type": "Link", "mediaType": "video/mp4", "href": "https://cdn.pixeltube.video/sintel.mp4", "height": 720}]
}`

const outbox = `{
	"type": "OrderedCollectionPage",
	"orderedItems": [
		{"type": "Create", "object": {"type": "Video", "id": "%s/videos/watch/sintel", "attributedTo": "%s/actors/blender"}},
		{"type": "Create", "object": {"type": "Video", "id": "%s/videos/watch/spring", "attributedTo": "%s/actors/blender"}}
	],
	"next": "%s/actors/blender/outbox?page=2"
}`

const outboxLast = `{
	"type": "OrderedCollectionPage",
	"orderedItems": [
		{"type": "Create", "object": {"type": "Video", "id": "%s/videos/watch/agent", "attributedTo": "%s/actors/blender"}}
	]
}`

func TestPlugin(t *testing.T) {
	ctx := context.Background()

	Convey("Before Enable every fetch fails", t, func() {
		plugin := New(nil)
		_, err := plugin.GetHome(ctx)
		So(errors.Is(err, ErrNotEnabled), ShouldBeTrue)
		_, err = plugin.GetChannel(ctx, "https://pixeltube.video/c/blender")
		So(errors.Is(err, ErrNotEnabled), ShouldBeTrue)
		So(plugin.IsContentDetailsURL("https://pixeltube.video/w/abc"), ShouldBeFalse)
	})

	Convey("Enable rejects a relative instance URL", t, func() {
		err := New(nil).Enable(Config{Instance: "pixeltube.video"}, nil)
		So(err, ShouldNotBeNil)
	})

	Convey("Given an enabled plugin", t, func() {
		server, plugin := serve(t, routes{
			"/api/v1/videos?1":          listing(3, "a", "b"),
			"/api/v1/videos?2":          listing(3, "c"),
			"/api/v1/search/videos?1":   listing(1, "found"),
			"/api/v1/search/channels?1": `{"total":1,"channels":[{"username":"blender","followersCount":12}]}`,
			"/videos/sintel":            watchObject,
			"/actors/blender":           `{"type":"Group","preferredUsername":"blender","name":"Blender","followers":"%s/actors/blender/followers"}`,
			"/actors/blender/followers": `{"totalItems":1500}`,
			"/actors/blender/outbox?1":  outbox,
			"/actors/blender/outbox?2":  outboxLast,
		})

		Convey("URLs of the configured host are recognized", func() {
			So(plugin.IsContentDetailsURL(server.URL+"/w/sintel"), ShouldBeTrue)
			So(plugin.IsChannelURL(server.URL+"/c/blender"), ShouldBeTrue)
			So(plugin.IsContentDetailsURL("https://elsewhere.example/w/sintel"), ShouldBeFalse)
		})

		Convey("The home pager walks REST pages and replaces results", func() {
			pager, err := plugin.GetHome(ctx)
			So(err, ShouldBeNil)
			So(ids(pager.Results()), ShouldResemble, []string{"a", "b"})
			So(pager.HasMore(), ShouldBeTrue)

			So(pager.NextPage(ctx), ShouldBeNil)
			So(ids(pager.Results()), ShouldResemble, []string{"c"})
			So(pager.HasMore(), ShouldBeFalse)
			So(pager.NextPage(ctx), ShouldEqual, paging.ErrExhausted)
		})

		Convey("Search returns videos and channels", func() {
			videos, err := plugin.Search(ctx, "sintel")
			So(err, ShouldBeNil)
			So(ids(videos.Results()), ShouldResemble, []string{"found"})
			So(videos.HasMore(), ShouldBeFalse)

			channels, err := plugin.SearchChannels(ctx, "blender")
			So(err, ShouldBeNil)
			So(channels.Results(), ShouldHaveLength, 1)
			So(channels.Results()[0].Subscribers.MustGet(), ShouldEqual, 12)
		})

		Convey("Channel contents follow the outbox next links", func() {
			pager, err := plugin.GetChannelContents(ctx, server.URL+"/c/blender")
			So(err, ShouldBeNil)
			So(ids(pager.Results()), ShouldResemble, []string{"sintel", "spring"})
			So(pager.NextPage(ctx), ShouldBeNil)
			So(ids(pager.Results()), ShouldResemble, []string{"agent"})
			So(pager.HasMore(), ShouldBeFalse)
		})

		Convey("Channel contents of a foreign URL are invalid input", func() {
			_, err := plugin.GetChannelContents(ctx, "https://elsewhere.example/c/blender")
			So(errors.Is(err, source.ErrInvalidInput), ShouldBeTrue)
		})

		Convey("A channel reuses the speculative followers lookup", func() {
			channel, err := plugin.GetChannel(ctx, server.URL+"/c/blender")
			So(err, ShouldBeNil)
			So(channel.Subscribers, ShouldEqual, 1500)
		})

		Convey("Recommendations exclude the video and are a single page", func() {
			pager, err := plugin.GetContentRecommendations(ctx, server.URL+"/w/sintel", mo.None[*source.VideoDetails]())
			So(err, ShouldBeNil)
			So(ids(pager.Results()), ShouldResemble, []string{"spring"})
			So(pager.HasMore(), ShouldBeFalse)
		})

		Convey("Recommendations reuse a resolved video", func() {
			details, err := plugin.GetContentDetails(ctx, server.URL+"/w/sintel")
			So(err, ShouldBeNil)
			pager, err := plugin.GetContentRecommendations(ctx, "ignored", mo.Some(details))
			So(err, ShouldBeNil)
			So(ids(pager.Results()), ShouldResemble, []string{"spring"})
		})

		Convey("A missing video is unavailable", func() {
			_, err := plugin.GetContentDetails(ctx, server.URL+"/w/missing")
			So(errors.Is(err, source.ErrUnavailable), ShouldBeTrue)
		})
	})

	Convey("Capabilities are static", t, func() {
		So(New(nil).GetSearchCapabilities().Types, ShouldResemble, []string{"videos", "channels"})
		So(New(nil).GetChannelCapabilities().Types, ShouldResemble, []string{"videos"})
	})
}
