package inline

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pixeltube-cli/pixeltube/source"
	"github.com/pixeltube-cli/pixeltube/util"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Picker selects one video from the collected search results.
type Picker func([]*source.Video) *source.Video

type Options struct {
	Out      io.Writer
	Source   source.Source
	Query    string
	Json     bool
	Channels bool
	// Pages is the number of result pages to walk, at least one.
	Pages   int
	Picker  mo.Option[Picker]
	Details bool
}

// ParsePicker builds a picker from its selector: first, last, exact or an index.
func ParsePicker(kind, value string) (Picker, error) {
	switch kind {
	case "first":
		return func(videos []*source.Video) *source.Video {
			return lo.FirstOrEmpty(videos)
		}, nil
	case "last":
		return func(videos []*source.Video) *source.Video {
			return lo.LastOrEmpty(videos)
		}, nil
	case "exact":
		return func(videos []*source.Video) *source.Video {
			v, _ := lo.Find(videos, func(v *source.Video) bool {
				return strings.EqualFold(v.Title, value)
			})
			return v
		}, nil
	default:
		idx, err := strconv.ParseUint(kind, 10, 16)
		if err != nil {
			return nil, fmt.Errorf("unknown picker: %s", kind)
		}
		return func(videos []*source.Video) *source.Video {
			if len(videos) == 0 {
				return nil
			}
			return videos[util.Min(idx, uint64(len(videos)-1))]
		}, nil
	}
}
