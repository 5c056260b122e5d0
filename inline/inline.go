// Package inline implements the non-interactive, scriptable search mode.
package inline

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/pixeltube-cli/pixeltube/log"
	"github.com/pixeltube-cli/pixeltube/paging"
	"github.com/pixeltube-cli/pixeltube/source"
	"github.com/pixeltube-cli/pixeltube/util"
	"github.com/samber/lo"
)

// Walk collects up to pages pages from pager, starting with the one it holds.
func Walk[T any](ctx context.Context, pager *paging.Pager[T], pages int) ([]*Page, error) {
	var out []*Page
	for {
		page := &Page{Number: len(out) + 1, Cursor: pager.Cursor()}
		switch results := any(pager.Results()).(type) {
		case []*source.Video:
			page.Videos = results
		case []*source.AuthorLink:
			page.Channels = results
		}
		out = append(out, page)

		if len(out) >= util.Max(pages, 1) || !pager.HasMore() {
			return out, nil
		}
		if err := pager.NextPage(ctx); err != nil {
			if errors.Is(err, paging.ErrExhausted) {
				return out, nil
			}
			return out, err
		}
	}
}

func Run(ctx context.Context, options *Options) error {
	if options.Out == nil {
		options.Out = os.Stdout
	}
	if options.Source == nil {
		return errors.New("source not set")
	}

	output := &Output{Query: options.Query}

	if options.Channels {
		output.Kind = paging.ChannelSearch.String()
		pager, err := options.Source.SearchChannels(ctx, options.Query)
		if err != nil {
			return fmt.Errorf("channel search: %w", err)
		}
		if output.Pages, err = Walk(ctx, pager, options.Pages); err != nil {
			return err
		}
	} else {
		output.Kind = paging.VideoSearch.String()
		pager, err := options.Source.Search(ctx, options.Query)
		if err != nil {
			return fmt.Errorf("search: %w", err)
		}
		if output.Pages, err = Walk(ctx, pager, options.Pages); err != nil {
			return err
		}
		if err := selectVideo(ctx, output, options); err != nil {
			return err
		}
	}

	if options.Json {
		return Encode(options.Out, output)
	}
	return writePlain(output, options)
}

func selectVideo(ctx context.Context, output *Output, options *Options) error {
	pick, ok := options.Picker.Get()
	if !ok {
		return nil
	}

	videos := lo.FlatMap(output.Pages, func(p *Page, _ int) []*source.Video { return p.Videos })
	chosen := pick(videos)
	if chosen == nil {
		log.Infof("no video picked from %s", util.Quantify(len(videos), "result", "results"))
		return nil
	}

	output.Selected = &Selection{Video: chosen}
	if !options.Details {
		return nil
	}

	details, err := options.Source.GetContentDetails(ctx, chosen.URL)
	if err != nil {
		return fmt.Errorf("details of %s: %w", chosen.URL, err)
	}
	output.Selected.Details = details
	return nil
}

func writePlain(output *Output, options *Options) error {
	if selected := output.Selected; selected != nil {
		if selected.Details != nil {
			for _, s := range selected.Details.Sources {
				if _, err := fmt.Fprintln(options.Out, s.URL); err != nil {
					return err
				}
			}
			return nil
		}
		_, err := fmt.Fprintln(options.Out, selected.Video.URL)
		return err
	}

	for _, page := range output.Pages {
		for _, v := range page.Videos {
			if _, err := fmt.Fprintln(options.Out, v.URL); err != nil {
				return err
			}
		}
		for _, c := range page.Channels {
			if _, err := fmt.Fprintln(options.Out, c.URL); err != nil {
				return err
			}
		}
	}
	return nil
}
