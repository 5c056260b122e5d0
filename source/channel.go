package source

import "github.com/samber/mo"

// Channel is a resolved PixelTube channel.
type Channel struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	Thumbnail   string `json:"thumbnail"`
	Banner      string `json:"banner"`
	Subscribers int64  `json:"subscribers"`
	Description string `json:"description"`
	URL         string `json:"url"`
	// Links maps a social platform name to the first URL found for it.
	Links map[string]string `json:"links"`
}

func (c *Channel) String() string {
	return c.Name
}

// AuthorLink is a compact channel reference, embedded in videos and returned by channel search.
type AuthorLink struct {
	ID          ID               `json:"id"`
	Name        string           `json:"name"`
	URL         string           `json:"url"`
	Thumbnail   string           `json:"thumbnail"`
	Subscribers mo.Option[int64] `json:"subscribers"`
}

func (a *AuthorLink) String() string {
	return a.Name
}
