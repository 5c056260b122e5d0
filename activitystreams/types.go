package activitystreams

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Actor is a federated account or channel.
type Actor struct {
	ID                string `json:"id"`
	Type              string `json:"type"`
	PreferredUsername string `json:"preferredUsername"`
	Name              string `json:"name"`
	Summary           string `json:"summary"`
	// Support is the free-text "support this channel" field PixelTube channels carry.
	Support   string `json:"support"`
	Published string `json:"published"`
	URL       Nodes  `json:"url"`
	Icon      Nodes  `json:"icon"`
	Image     Nodes  `json:"image"`
	Followers IRI    `json:"followers"`
	Outbox    IRI    `json:"outbox"`
}

// Video is a federated video object.
type Video struct {
	ID           string `json:"id"`
	Type         string `json:"type"`
	UUID         string `json:"uuid"`
	Name         string `json:"name"`
	Duration     string `json:"duration"`
	Published    string `json:"published"`
	Content      string `json:"content"`
	Views        Count  `json:"views"`
	URL          Nodes  `json:"url"`
	Icon         Nodes  `json:"icon"`
	AttributedTo Nodes  `json:"attributedTo"`
	Likes        IRI    `json:"likes"`
	Dislikes     IRI    `json:"dislikes"`
}

// Collection is the subset of an OrderedCollection needed for totals.
type Collection struct {
	ID         string `json:"id"`
	TotalItems Count  `json:"totalItems"`
}

// OrderedCollectionPage is one page of an outbox.
type OrderedCollectionPage struct {
	ID           string     `json:"id"`
	OrderedItems []Activity `json:"orderedItems"`
	Next         IRI        `json:"next"`
}

// Activity wraps an object. Object may be an embedded object or a bare IRI.
type Activity struct {
	ID     string          `json:"id"`
	Type   string          `json:"type"`
	Object json.RawMessage `json:"object"`
}

// CreatedVideo returns the embedded video of a Create activity.
func (a Activity) CreatedVideo() (Video, bool) {
	if !strings.EqualFold(a.Type, "Create") {
		return Video{}, false
	}

	body := bytes.TrimSpace(a.Object)
	if len(body) == 0 || body[0] != '{' {
		return Video{}, false
	}

	var v Video
	if err := json.Unmarshal(body, &v); err != nil {
		return Video{}, false
	}
	if !strings.EqualFold(v.Type, "Video") {
		return Video{}, false
	}
	return v, true
}
