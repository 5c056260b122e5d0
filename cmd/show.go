package cmd

import (
	"os"

	"github.com/pixeltube-cli/pixeltube/inline"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(videoCmd)
	videoCmd.Flags().BoolP("json", "j", false, "Format the command output as a JSON object")
	videoCmd.SetOut(os.Stdout)
}

var videoCmd = &cobra.Command{
	Use:   "video <url>",
	Short: "Show a video with its playable sources",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		details, err := plugin().GetContentDetails(commandContext(cmd), args[0])
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(inline.Encode(cmd.OutOrStdout(), details))
			return
		}
		renderDetails(cmd.OutOrStdout(), details)
	},
}

func init() {
	rootCmd.AddCommand(channelCmd)
	channelCmd.Flags().BoolP("json", "j", false, "Format the command output as a JSON object")
	channelCmd.SetOut(os.Stdout)
}

var channelCmd = &cobra.Command{
	Use:   "channel <url>",
	Short: "Show a channel with its bio and social links",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		channel, err := plugin().GetChannel(commandContext(cmd), args[0])
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(inline.Encode(cmd.OutOrStdout(), channel))
			return
		}
		renderChannel(cmd.OutOrStdout(), channel)
	},
}
