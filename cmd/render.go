package cmd

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/pixeltube-cli/pixeltube/icon"
	"github.com/pixeltube-cli/pixeltube/key"
	"github.com/pixeltube-cli/pixeltube/source"
	"github.com/pixeltube-cli/pixeltube/style"
	"github.com/pixeltube-cli/pixeltube/util"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

func renderVideo(out io.Writer, v *source.Video) {
	meta := []string{style.Fg(style.AccentColor)(v.Author.Name)}
	if v.Duration > 0 {
		meta = append(meta, util.FormatDuration(v.Duration))
	}
	meta = append(meta, style.Fg(style.CountColor)(icon.Get(icon.Views)+" "+util.Quantify(v.Views, "view", "views")))
	if v.Published > 0 {
		meta = append(meta, time.Unix(v.Published, 0).Format(time.DateOnly))
	}

	fmt.Fprintf(out, "%s %s\n", icon.Get(icon.Video), style.Bold(v.Title))
	fmt.Fprintf(out, "  %s\n", strings.Join(meta, style.Faint(" · ")))
	fmt.Fprintf(out, "  %s\n", style.Fg(style.LinkColor)(v.URL))
}

func renderAuthor(out io.Writer, a *source.AuthorLink) {
	fmt.Fprintf(out, "%s %s", icon.Get(icon.Channel), style.Bold(a.Name))
	if subscribers, ok := a.Subscribers.Get(); ok {
		fmt.Fprintf(out, " %s", style.Fg(style.CountColor)(util.Quantify(subscribers, "subscriber", "subscribers")))
	}
	fmt.Fprintf(out, "\n  %s\n", style.Fg(style.LinkColor)(a.URL))
}

func renderDetails(out io.Writer, d *source.VideoDetails) {
	renderVideo(out, &d.Video)

	if rating, ok := d.Rating.Get(); ok {
		fmt.Fprintf(out, "  %s\n", style.Faint(fmt.Sprintf("%d likes, %d dislikes", rating.Likes, rating.Dislikes)))
	}
	if description, ok := d.Description.Get(); ok {
		fmt.Fprintf(out, "\n%s\n", wrapText(description))
	}

	fmt.Fprintf(out, "\n%s\n", style.Title("Sources"))
	for _, s := range d.Sources {
		fmt.Fprintf(out, "%s %s %s\n", style.Tag(style.Green, "")(s.String()), style.Faint(s.Container+"/"+s.Codec), s.URL)
	}
}

func renderChannel(out io.Writer, c *source.Channel) {
	fmt.Fprintf(out, "%s %s\n", icon.Get(icon.Channel), style.Title(c.Name))
	fmt.Fprintf(out, "  %s\n", style.Fg(style.CountColor)(icon.Get(icon.Subscribers)+" "+util.Quantify(c.Subscribers, "subscriber", "subscribers")))
	fmt.Fprintf(out, "  %s\n", style.Fg(style.LinkColor)(c.URL))

	if c.Description != "" {
		fmt.Fprintf(out, "\n%s\n", wrapText(c.Description))
	}

	if len(c.Links) > 0 {
		fmt.Fprintln(out)
		names := lo.Keys(c.Links)
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(out, "%s %s %s\n", icon.Get(icon.Link), style.Fg(style.AccentColor)(name), c.Links[name])
		}
	}
}

func wrapText(text string) string {
	if !viper.GetBool(key.CliWrapBios) {
		return text
	}
	return util.Wrap(text, 0)
}

// filterVideos keeps videos whose title fuzzily matches query.
func filterVideos(videos []*source.Video, query string) []*source.Video {
	if query == "" {
		return videos
	}
	return lo.Filter(videos, func(v *source.Video, _ int) bool {
		return fuzzy.MatchNormalizedFold(query, v.Title)
	})
}

// filterChannels keeps channels whose name fuzzily matches query.
func filterChannels(channels []*source.AuthorLink, query string) []*source.AuthorLink {
	if query == "" {
		return channels
	}
	return lo.Filter(channels, func(c *source.AuthorLink, _ int) bool {
		return fuzzy.MatchNormalizedFold(query, c.Name)
	})
}

// pickVideo prompts for one of videos.
func pickVideo(videos []*source.Video) (*source.Video, error) {
	if len(videos) == 0 {
		return nil, fmt.Errorf("nothing to pick from")
	}

	options := lo.Map(videos, func(v *source.Video, i int) string {
		return fmt.Sprintf("%d. %s (%s)", i+1, v.Title, v.Author.Name)
	})

	var index int
	prompt := &survey.Select{
		Message: "Pick a video",
		Options: options,
	}
	if err := survey.AskOne(prompt, &index); err != nil {
		return nil, err
	}
	return videos[index], nil
}
