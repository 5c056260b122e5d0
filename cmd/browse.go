package cmd

import (
	"fmt"
	"os"

	"github.com/pixeltube-cli/pixeltube/inline"
	"github.com/pixeltube-cli/pixeltube/paging"
	"github.com/pixeltube-cli/pixeltube/source"
	"github.com/pixeltube-cli/pixeltube/style"
	"github.com/pixeltube-cli/pixeltube/util"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
)

// listingFlags registers the flags shared by commands that print pages of results.
func listingFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("json", "j", false, "Format the command output as a JSON object")
	cmd.Flags().IntP("pages", "p", 1, "Number of result pages to fetch")
	cmd.Flags().StringP("filter", "f", "", "Only show results whose title or channel name fuzzily matches the filter")
	cmd.Flags().Bool("pick", false, "Interactively pick a video and show its details")
	cmd.MarkFlagsMutuallyExclusive("json", "pick")
	rootCmd.AddCommand(cmd)
}

// printListing walks --pages pages of pager and renders them, or encodes them with --json.
func printListing[T any](cmd *cobra.Command, pager *paging.Pager[T]) {
	count := lo.Must(cmd.Flags().GetInt("pages"))
	erase := util.PrintErasable(fmt.Sprintf("Fetching %s...", util.Quantify(count, "page", "pages")))
	pages, err := inline.Walk(commandContext(cmd), pager, count)
	erase()
	handleErr(err)

	filter := lo.Must(cmd.Flags().GetString("filter"))
	for _, page := range pages {
		page.Videos = filterVideos(page.Videos, filter)
		page.Channels = filterChannels(page.Channels, filter)
	}

	if lo.Must(cmd.Flags().GetBool("json")) {
		handleErr(inline.Encode(cmd.OutOrStdout(), pages))
		return
	}

	if lo.Must(cmd.Flags().GetBool("pick")) {
		chosen, err := pickVideo(lo.FlatMap(pages, func(p *inline.Page, _ int) []*source.Video { return p.Videos }))
		handleErr(err)
		details, err := plugin().GetContentDetails(commandContext(cmd), chosen.URL)
		handleErr(err)
		renderDetails(cmd.OutOrStdout(), details)
		return
	}

	out := cmd.OutOrStdout()
	for _, page := range pages {
		if len(pages) > 1 {
			cmd.Println(style.Title(fmt.Sprintf("Page %d", page.Number)))
		}
		for _, v := range page.Videos {
			renderVideo(out, v)
		}
		for _, c := range page.Channels {
			renderAuthor(out, c)
		}
	}

	total := lo.SumBy(pages, func(p *inline.Page) int { return len(p.Videos) + len(p.Channels) })
	cmd.PrintErrln(style.Faint(util.Quantify(total, "result", "results")))
}

func init() {
	listingFlags(homeCmd)
	homeCmd.SetOut(os.Stdout)
}

var homeCmd = &cobra.Command{
	Use:   "home",
	Short: "List the home feed of the instance",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := commandContext(cmd)
		pager, err := plugin().GetHome(ctx)
		handleErr(err)
		printListing(cmd, pager)
	},
}

func init() {
	listingFlags(searchCmd)
	searchCmd.Flags().BoolP("channels", "c", false, "Search channels instead of videos")
	searchCmd.MarkFlagsMutuallyExclusive("channels", "pick")
	searchCmd.SetOut(os.Stdout)
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search videos or channels",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := commandContext(cmd)
		src := plugin()

		if lo.Must(cmd.Flags().GetBool("channels")) {
			pager, err := src.SearchChannels(ctx, args[0])
			handleErr(err)
			printListing(cmd, pager)
			return
		}

		pager, err := src.Search(ctx, args[0])
		handleErr(err)
		printListing(cmd, pager)
	},
}

func init() {
	listingFlags(relatedCmd)
	relatedCmd.SetOut(os.Stdout)
}

var relatedCmd = &cobra.Command{
	Use:   "related <video-url>",
	Short: "List other uploads of the video's channel",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		pager, err := plugin().GetContentRecommendations(commandContext(cmd), args[0], mo.None[*source.VideoDetails]())
		handleErr(err)
		printListing(cmd, pager)
	},
}

func init() {
	listingFlags(contentsCmd)
	contentsCmd.SetOut(os.Stdout)
}

var contentsCmd = &cobra.Command{
	Use:   "contents <channel-url>",
	Short: "List the uploads of a channel",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		pager, err := plugin().GetChannelContents(commandContext(cmd), args[0])
		handleErr(err)
		printListing(cmd, pager)
	},
}
