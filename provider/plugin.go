package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pixeltube-cli/pixeltube/api"
	"github.com/pixeltube-cli/pixeltube/federation"
	"github.com/pixeltube-cli/pixeltube/instance"
	"github.com/pixeltube-cli/pixeltube/key"
	"github.com/pixeltube-cli/pixeltube/log"
	"github.com/pixeltube-cli/pixeltube/network"
	"github.com/pixeltube-cli/pixeltube/paging"
	"github.com/pixeltube-cli/pixeltube/source"
	"github.com/samber/mo"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// ErrNotEnabled is returned by fetch methods called before Enable.
var ErrNotEnabled = errors.New("plugin is not enabled")

// Config describes the instance a Plugin talks to.
type Config struct {
	PlatformID string
	Instance   string
	CDN        string
	PageSize   int
	Timeout    time.Duration
	UserAgent  string
}

// ConfigFromViper reads the plugin configuration from the loaded settings.
func ConfigFromViper() Config {
	return Config{
		PlatformID: viper.GetString(key.PlatformID),
		Instance:   viper.GetString(key.Instance),
		CDN:        viper.GetString(key.CDN),
		PageSize:   viper.GetInt(key.APIPageSize),
		Timeout:    time.Duration(viper.GetInt(key.HTTPTimeout)) * time.Second,
		UserAgent:  viper.GetString(key.HTTPUserAgent),
	}
}

// Settings are host supplied overrides keyed like the config file,
// e.g. "pixeltube.instance" or "api.page_size".
type Settings map[string]any

func (c Config) with(settings Settings) Config {
	for k, v := range settings {
		switch strings.ToLower(k) {
		case key.PlatformID:
			c.PlatformID = cast.ToString(v)
		case key.Instance:
			c.Instance = cast.ToString(v)
		case key.CDN:
			c.CDN = cast.ToString(v)
		case key.APIPageSize:
			c.PageSize = cast.ToInt(v)
		case key.HTTPTimeout:
			c.Timeout = time.Duration(cast.ToInt(v)) * time.Second
		case key.HTTPUserAgent:
			c.UserAgent = cast.ToString(v)
		default:
			log.Debugf("ignoring unknown setting %q", k)
		}
	}
	return c
}

// Plugin serves a media host from one PixelTube instance.
// Enable must be called once before any other method.
type Plugin struct {
	net     network.Requester
	site    *instance.Instance
	api     *api.Client
	fetcher *federation.Fetcher
}

var _ source.Source = (*Plugin)(nil)

// New returns a disabled plugin. A nil net uses the default HTTP client.
func New(net network.Requester) *Plugin {
	return &Plugin{net: net}
}

// Enable applies settings over cfg and builds the collaborators.
func (p *Plugin) Enable(cfg Config, settings Settings) error {
	cfg = cfg.with(settings)

	site, err := instance.New(cfg.Instance, cfg.CDN, source.Platform(cfg.PlatformID))
	if err != nil {
		return fmt.Errorf("enable: %w", err)
	}

	if p.net == nil {
		p.net = network.NewClient(cfg.Timeout, cfg.UserAgent)
	}

	p.site = site
	p.api = api.NewClient(p.net, site, cfg.PageSize)
	p.fetcher = federation.NewFetcher(p.net, site)

	log.Infof("enabled %s for %s", cfg.PlatformID, site.Host())
	return nil
}

func (p *Plugin) enabled() error {
	if p.site == nil {
		return ErrNotEnabled
	}
	return nil
}

// fetchVideos advances any video listing cursor.
func (p *Plugin) fetchVideos(ctx context.Context, c paging.Cursor) paging.Page[*source.Video] {
	switch c.Kind {
	case paging.Home:
		return p.api.Home(ctx, c.Page)
	case paging.VideoSearch:
		return p.api.SearchVideos(ctx, c.Term.OrEmpty(), c.Page)
	case paging.Outbox:
		return p.fetcher.OutboxPage(ctx, c.Username, c.Next)
	default:
		log.Warnf("cursor %s does not list videos", c.Kind)
		return paging.Empty[*source.Video](c)
	}
}

// fetchChannels advances a channel search cursor.
func (p *Plugin) fetchChannels(ctx context.Context, c paging.Cursor) paging.Page[*source.AuthorLink] {
	if c.Kind != paging.ChannelSearch {
		log.Warnf("cursor %s does not list channels", c.Kind)
		return paging.Empty[*source.AuthorLink](c)
	}
	return p.api.SearchChannels(ctx, c.Term.OrEmpty(), c.Page)
}

func (p *Plugin) GetHome(ctx context.Context) (*paging.Pager[*source.Video], error) {
	if err := p.enabled(); err != nil {
		return nil, err
	}
	return paging.NewPager(ctx, p.fetchVideos, paging.HomeCursor(1)), nil
}

func (p *Plugin) GetSearchCapabilities() source.SearchCapabilities {
	return source.SearchCapabilities{
		Types:   []string{"videos", "channels"},
		Sorts:   []string{},
		Filters: []string{},
	}
}

func (p *Plugin) Search(ctx context.Context, query string) (*paging.Pager[*source.Video], error) {
	if err := p.enabled(); err != nil {
		return nil, err
	}
	return paging.NewPager(ctx, p.fetchVideos, paging.SearchCursor(paging.VideoSearch, query, 1)), nil
}

func (p *Plugin) SearchChannels(ctx context.Context, query string) (*paging.Pager[*source.AuthorLink], error) {
	if err := p.enabled(); err != nil {
		return nil, err
	}
	return paging.NewPager(ctx, p.fetchChannels, paging.SearchCursor(paging.ChannelSearch, query, 1)), nil
}

func (p *Plugin) IsContentDetailsURL(url string) bool {
	return p.site != nil && p.site.IsVideoURL(url)
}

func (p *Plugin) GetContentDetails(ctx context.Context, url string) (*source.VideoDetails, error) {
	if err := p.enabled(); err != nil {
		return nil, err
	}
	return p.fetcher.VideoDetails(ctx, url)
}

// GetContentRecommendations resolves the related videos of url as a single page.
// The hint, when present, is used instead of fetching the video again.
func (p *Plugin) GetContentRecommendations(ctx context.Context, url string, hint mo.Option[*source.VideoDetails]) (*paging.Pager[*source.Video], error) {
	if err := p.enabled(); err != nil {
		return nil, err
	}

	details, ok := hint.Get()
	if !ok || details == nil {
		var err error
		if details, err = p.fetcher.VideoDetails(ctx, url); err != nil {
			return nil, err
		}
	}

	related, err := details.Related(ctx)
	if err != nil {
		return nil, err
	}
	if related == nil {
		related = []*source.Video{}
	}

	cursor := paging.OutboxCursor(details.Author.ID.Value, mo.None[string]()).Terminal()
	return paging.FromPage[*source.Video](nil, paging.Page[*source.Video]{Results: related, Cursor: cursor}), nil
}

func (p *Plugin) IsChannelURL(url string) bool {
	return p.site != nil && p.site.IsChannelURL(url)
}

func (p *Plugin) GetChannel(ctx context.Context, url string) (*source.Channel, error) {
	if err := p.enabled(); err != nil {
		return nil, err
	}
	return p.fetcher.ChannelDetails(ctx, url)
}

func (p *Plugin) GetChannelCapabilities() source.SearchCapabilities {
	return source.SearchCapabilities{
		Types:   []string{"videos"},
		Sorts:   []string{},
		Filters: []string{},
	}
}

// GetChannelContents pages through the outbox of the channel at url.
func (p *Plugin) GetChannelContents(ctx context.Context, url string) (*paging.Pager[*source.Video], error) {
	if err := p.enabled(); err != nil {
		return nil, err
	}

	username, err := p.site.ParseChannelURL(url)
	if err != nil {
		return nil, err
	}
	return paging.NewPager(ctx, p.fetchVideos, paging.OutboxCursor(username, mo.None[string]())), nil
}
