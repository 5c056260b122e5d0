package inline

import (
	"encoding/json"
	"io"

	"github.com/pixeltube-cli/pixeltube/paging"
	"github.com/pixeltube-cli/pixeltube/source"
)

// Page is one fetched page as it was returned, with the cursor that follows it.
type Page struct {
	Number   int                  `json:"number"`
	Videos   []*source.Video      `json:"videos,omitempty"`
	Channels []*source.AuthorLink `json:"channels,omitempty"`
	Cursor   paging.Cursor        `json:"cursor"`
}

// Selection is the video chosen by the picker.
type Selection struct {
	Video   *source.Video        `json:"video"`
	Details *source.VideoDetails `json:"details,omitempty"`
}

type Output struct {
	Query    string     `json:"query"`
	Kind     string     `json:"kind"`
	Pages    []*Page    `json:"pages"`
	Selected *Selection `json:"selected,omitempty"`
}

// Encode writes v as indented JSON.
func Encode(out io.Writer, v any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
