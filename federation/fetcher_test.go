package federation

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/pixeltube-cli/pixeltube/constant"
	"github.com/pixeltube-cli/pixeltube/instance"
	"github.com/pixeltube-cli/pixeltube/network"
	"github.com/pixeltube-cli/pixeltube/source"
	"github.com/samber/lo"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

const videoID = "9c9de5e8-0a1e-484a-b099-e80766180a6d"

// fakeInstance serves canned federation documents and counts hits per path.
type fakeInstance struct {
	*httptest.Server
	mu     sync.Mutex
	routes map[string]string
	hits   map[string]int
}

func newFakeInstance() *fakeInstance {
	f := &fakeInstance{routes: map[string]string{}, hits: map[string]int{}}
	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.hits[r.URL.RequestURI()]++
		body, ok := f.routes[r.URL.RequestURI()]
		f.mu.Unlock()

		if r.Header.Get("Accept") != constant.ActivityJSON {
			w.WriteHeader(http.StatusNotAcceptable)
			return
		}
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", constant.ActivityJSON)
		_, _ = w.Write([]byte(body))
	}))
	return f
}

// serve registers body at path; %s in body is replaced by the server URL.
func (f *fakeInstance) serve(path, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes[path] = strings.ReplaceAll(body, "%s", f.URL)
}

func (f *fakeInstance) hitsOf(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[path]
}

func (f *fakeInstance) fetcher() *Fetcher {
	site := lo.Must(instance.New(f.URL, "https://cdn.pixeltube.video", "pixeltube"))
	return NewFetcher(network.NewClient(5*time.Second, "test"), site)
}

const videoObject = `{
	"type": "Video",
	"id": "%s/videos/watch/` + videoID + `",
	"name": "Sintel",
	"duration": "PT14M48S",
	"published": "2024-01-01T00:00:00Z",
	"views": 1200,
	"content": "An open movie",
	"icon": [{"type": "Image", "url": "https://cdn.pixeltube.video/static/sintel.jpg", "width": 280}],
	"attributedTo": [
		{"type": "Person", "id": "%s/mirrorservice/actors/relay"},
		{"type": "Group", "id": "%s/actors/blender"}
	],
	"likes": "%s/videos/watch/` + videoID + `/likes",
	"dislikes": "%s/videos/watch/` + videoID + `/dislikes",
	"url": [
		{"type": "Link", "mediaType": "text/html", "href": "%s/w/` + videoID + `"},
		{"type": "Link", "mediaType": "video/mp4", "href": "https://cdn.pixeltube.video/sintel-720.mp4", "height": 720},
		{"type": "Link", "mediaType": "video/webm", "href": "https://cdn.pixeltube.video/sintel-1080.webm", "height": 1080}
	]
}`

const blenderActor = `{
	"type": "Group",
	"id": "%s/actors/blender",
	"preferredUsername": "blender",
	"name": "Blender Studio",
	"summary": "Open movies. [Twitter](https://twitter.com/blender) https://%HOST%/c/other",
	"support": "https://patreon.com/blender https://twitter.com/ignored",
	"icon": {"type": "Image", "url": "https://cdn.pixeltube.video/avatars/blender.png"},
	"image": [{"type": "Image", "url": "https://cdn.pixeltube.video/banners/blender.png"}],
	"followers": "%s/actors/blender/followers",
	"outbox": "%s/actors/blender/outbox"
}`

func outboxPage(ids []string, next string) string {
	items := lo.Map(ids, func(id string, _ int) string {
		return fmt.Sprintf(`{"type":"Create","object":{"type":"Video","id":"%%s/videos/watch/%s","name":"Video %s","attributedTo":"%%s/actors/blender"}}`, id, id)
	})
	items = append(items, `{"type":"Announce","object":"https://elsewhere.example/videos/watch/shared"}`)
	nextField := ""
	if next != "" {
		nextField = fmt.Sprintf(`,"next":"%s"`, next)
	}
	return fmt.Sprintf(`{"type":"OrderedCollectionPage","orderedItems":[%s]%s}`, strings.Join(items, ","), nextField)
}

func TestVideoDetails(t *testing.T) {
	ctx := context.Background()

	Convey("Given an instance serving a video", t, func() {
		server := newFakeInstance()
		defer server.Close()
		server.serve("/videos/"+videoID, videoObject)
		watch := server.URL + "/w/" + videoID

		Convey("With every follow-up available", func() {
			server.serve("/actors/blender", blenderActor)
			server.serve("/videos/watch/"+videoID+"/likes", `{"type":"OrderedCollection","totalItems":42}`)
			server.serve("/videos/watch/"+videoID+"/dislikes", `{"type":"OrderedCollection","totalItems":"3"}`)

			details, err := server.fetcher().VideoDetails(ctx, watch)
			So(err, ShouldBeNil)

			So(details.ID.Value, ShouldEqual, videoID)
			So(details.ID.Platform, ShouldEqual, source.Platform("pixeltube"))
			So(details.Title, ShouldEqual, "Sintel")
			So(details.Duration, ShouldEqual, 888)
			So(details.Published, ShouldEqual, 1704067200)
			So(details.Views, ShouldEqual, 1200)
			So(details.IsLive, ShouldBeFalse)
			So(details.URL, ShouldEqual, watch)
			So(details.Thumbnail, ShouldEqual, "https://cdn.pixeltube.video/static/sintel.jpg")
			So(details.Description.MustGet(), ShouldEqual, "An open movie")

			So(details.Author.Name, ShouldEqual, "Blender Studio")
			So(details.Author.Thumbnail, ShouldEqual, "https://cdn.pixeltube.video/avatars/blender.png")
			So(details.Author.URL, ShouldEqual, server.URL+"/c/blender")

			So(details.Rating.MustGet(), ShouldResemble, source.Rating{Likes: 42, Dislikes: 3})

			So(details.Sources, ShouldHaveLength, 2)
			So(details.Sources[0].Name, ShouldEqual, "1080p")
			So(details.Sources[0].Codec, ShouldEqual, "VP9")
			So(details.Sources[1].Name, ShouldEqual, "720p")
			So(details.Sources[1].Codec, ShouldEqual, "H264")

			So(server.hitsOf("/actors/blender"), ShouldEqual, 1)
			So(server.hitsOf("/mirrorservice/actors/relay"), ShouldEqual, 0)
		})

		Convey("With failing follow-ups it degrades to defaults", func() {
			details, err := server.fetcher().VideoDetails(ctx, watch)
			So(err, ShouldBeNil)
			So(details.Author.Name, ShouldEqual, constant.UnknownChannel)
			So(details.Author.ID.Value, ShouldEqual, "blender")
			So(details.Rating.MustGet(), ShouldResemble, source.Rating{})
		})

		Convey("The related resolver reads the channel outbox without the video itself", func() {
			server.serve("/actors/blender/outbox?page=1", outboxPage([]string{videoID, "spring", "coffee-run"}, ""))

			details, err := server.fetcher().VideoDetails(ctx, watch)
			So(err, ShouldBeNil)
			related, err := details.Related(ctx)
			So(err, ShouldBeNil)
			So(lo.Map(related, func(v *source.Video, _ int) string { return v.ID.Value }), ShouldResemble, []string{"spring", "coffee-run"})
		})
	})

	Convey("A video without playable sources is unavailable", t, func() {
		server := newFakeInstance()
		defer server.Close()
		server.serve("/videos/nosrc", `{"type":"Video","id":"%s/videos/watch/nosrc","name":"Broken","url":{"type":"Link","mediaType":"text/html","href":"%s/w/nosrc"}}`)

		details, err := server.fetcher().VideoDetails(ctx, server.URL+"/w/nosrc")
		So(details, ShouldBeNil)
		So(errors.Is(err, source.ErrUnavailable), ShouldBeTrue)
	})

	Convey("A video with no attribution has an unknown channel and no extra requests", t, func() {
		server := newFakeInstance()
		defer server.Close()
		server.serve("/videos/solo", `{"type":"Video","id":"%s/videos/watch/solo","url":[{"type":"Link","mediaType":"video/mp4","href":"https://cdn/solo.mp4"}]}`)

		details, err := server.fetcher().VideoDetails(ctx, server.URL+"/w/solo")
		So(err, ShouldBeNil)
		So(details.Author.Name, ShouldEqual, constant.UnknownChannel)
		So(details.Sources[0].Name, ShouldEqual, "MP4")
		So(details.Thumbnail, ShouldEqual, "https://cdn.pixeltube.video/thumbnails/solo.jpg")
		related, err := details.Related(ctx)
		So(err, ShouldBeNil)
		So(related, ShouldBeEmpty)
	})

	Convey("A failing primary fetch is unavailable", t, func() {
		server := newFakeInstance()
		defer server.Close()

		_, err := server.fetcher().VideoDetails(ctx, server.URL+"/w/missing")
		So(errors.Is(err, source.ErrUnavailable), ShouldBeTrue)
	})

	Convey("A foreign URL is invalid input and issues no request", t, func() {
		server := newFakeInstance()
		defer server.Close()

		_, err := server.fetcher().VideoDetails(ctx, "https://elsewhere.example/w/abc")
		So(errors.Is(err, source.ErrInvalidInput), ShouldBeTrue)
		So(server.hits, ShouldBeEmpty)
	})
}

func TestChannelDetails(t *testing.T) {
	ctx := context.Background()

	Convey("Given an instance serving a channel", t, func() {
		server := newFakeInstance()
		defer server.Close()
		actor := strings.ReplaceAll(blenderActor, "%HOST%", strings.TrimPrefix(server.URL, "http://"))
		channelURL := server.URL + "/c/blender"

		Convey("A matching followers URL reuses the speculative response", func() {
			server.serve("/actors/blender", actor)
			server.serve("/actors/blender/followers", `{"type":"OrderedCollection","totalItems":1500}`)

			channel, err := server.fetcher().ChannelDetails(ctx, channelURL)
			So(err, ShouldBeNil)
			So(channel.Subscribers, ShouldEqual, 1500)
			So(server.hitsOf("/actors/blender/followers"), ShouldEqual, 1)

			So(channel.ID.Value, ShouldEqual, "blender")
			So(channel.Name, ShouldEqual, "Blender Studio")
			So(channel.Thumbnail, ShouldEqual, "https://cdn.pixeltube.video/avatars/blender.png")
			So(channel.Banner, ShouldEqual, "https://cdn.pixeltube.video/banners/blender.png")
			So(channel.URL, ShouldEqual, channelURL)
		})

		Convey("Social links come from the bio first, then the support field, never the instance", func() {
			server.serve("/actors/blender", actor)

			channel, err := server.fetcher().ChannelDetails(ctx, channelURL)
			So(err, ShouldBeNil)
			So(channel.Links, ShouldResemble, map[string]string{
				"Twitter": "https://twitter.com/blender",
				"Patreon": "https://patreon.com/blender",
			})
		})

		Convey("The comparison ignores case", func() {
			server.serve("/actors/blender", strings.Replace(actor, "/actors/blender/followers", "/ACTORS/Blender/followers", 1))
			server.serve("/actors/blender/followers", `{"totalItems":7}`)

			channel, err := server.fetcher().ChannelDetails(ctx, channelURL)
			So(err, ShouldBeNil)
			So(channel.Subscribers, ShouldEqual, 7)
			So(server.hitsOf("/actors/blender/followers"), ShouldEqual, 1)
			So(server.hitsOf("/ACTORS/Blender/followers"), ShouldEqual, 0)
		})

		Convey("A different followers URL is fetched separately", func() {
			server.serve("/actors/blender", strings.Replace(actor, "/actors/blender/followers", "/collections/blender-followers", 1))
			server.serve("/actors/blender/followers", `{"totalItems":1}`)
			server.serve("/collections/blender-followers", `{"totalItems":99}`)

			channel, err := server.fetcher().ChannelDetails(ctx, channelURL)
			So(err, ShouldBeNil)
			So(channel.Subscribers, ShouldEqual, 99)
			So(server.hitsOf("/collections/blender-followers"), ShouldEqual, 1)
		})

		Convey("A failed speculative lookup is retried once at the declared URL", func() {
			server.serve("/actors/blender", actor)

			channel, err := server.fetcher().ChannelDetails(ctx, channelURL)
			So(err, ShouldBeNil)
			So(channel.Subscribers, ShouldEqual, 0)
			So(server.hitsOf("/actors/blender/followers"), ShouldEqual, 2)
		})

		Convey("An actor without a followers collection counts zero", func() {
			server.serve("/actors/blender", `{"type":"Group","preferredUsername":"blender"}`)
			server.serve("/actors/blender/followers", `{"totalItems":5}`)

			channel, err := server.fetcher().ChannelDetails(ctx, channelURL)
			So(err, ShouldBeNil)
			So(channel.Subscribers, ShouldEqual, 0)
			So(server.hitsOf("/actors/blender/followers"), ShouldEqual, 1)
		})

		Convey("Names and avatars fall back", func() {
			server.serve("/actors/blender", `{"type":"Group","preferredUsername":"blender_studio"}`)

			channel, err := server.fetcher().ChannelDetails(ctx, channelURL)
			So(err, ShouldBeNil)
			So(channel.Name, ShouldEqual, "blender_studio")
			So(channel.Thumbnail, ShouldEqual, constant.PluginLogo)
			So(channel.Banner, ShouldBeEmpty)
			So(channel.Links, ShouldBeEmpty)
		})

		Convey("A failing actor fetch is unavailable", func() {
			_, err := server.fetcher().ChannelDetails(ctx, channelURL)
			So(errors.Is(err, source.ErrUnavailable), ShouldBeTrue)
		})

		Convey("Malformed actor JSON is unavailable", func() {
			server.serve("/actors/blender", `{"name":`)
			_, err := server.fetcher().ChannelDetails(ctx, channelURL)
			So(errors.Is(err, source.ErrUnavailable), ShouldBeTrue)
		})
	})
}

func TestOutboxPage(t *testing.T) {
	ctx := context.Background()

	Convey("Given a two-page outbox", t, func() {
		server := newFakeInstance()
		defer server.Close()
		server.serve("/actors/blender/outbox?page=1", outboxPage([]string{"a", "b"}, server.URL+"/actors/blender/outbox?page=2"))
		server.serve("/actors/blender/outbox?page=2", outboxPage([]string{"c"}, ""))
		fetcher := server.fetcher()

		first := fetcher.OutboxPage(ctx, "blender", mo.None[string]())
		So(lo.Map(first.Results, func(v *source.Video, _ int) string { return v.ID.Value }), ShouldResemble, []string{"a", "b"})
		So(first.Results[0].Author.Name, ShouldEqual, "blender")
		So(first.Results[0].Thumbnail, ShouldEqual, "https://cdn.pixeltube.video/thumbnails/a.jpg")
		So(first.Cursor.More, ShouldBeTrue)
		So(first.Cursor.Next.MustGet(), ShouldEqual, server.URL+"/actors/blender/outbox?page=2")

		second := fetcher.OutboxPage(ctx, "blender", first.Cursor.Next)
		So(second.Results, ShouldHaveLength, 1)
		So(second.Cursor.More, ShouldBeFalse)

		Convey("Fetching the same page twice is idempotent", func() {
			again := fetcher.OutboxPage(ctx, "blender", mo.None[string]())
			So(again.Cursor, ShouldResemble, first.Cursor)
			So(len(again.Results), ShouldEqual, len(first.Results))
			for i := range again.Results {
				So(*again.Results[i], ShouldResemble, *first.Results[i])
			}
		})
	})

	Convey("A failing outbox is an empty terminal page", t, func() {
		server := newFakeInstance()
		defer server.Close()

		page := server.fetcher().OutboxPage(ctx, "ghost", mo.None[string]())
		So(page.Results, ShouldBeEmpty)
		So(page.Cursor.More, ShouldBeFalse)
		So(page.Cursor.Username, ShouldEqual, "ghost")
	})
}
