// Package cmd implements the command-line interface for pixeltube.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/pixeltube-cli/pixeltube/constant"
	"github.com/pixeltube-cli/pixeltube/icon"
	"github.com/pixeltube-cli/pixeltube/key"
	"github.com/pixeltube-cli/pixeltube/log"
	"github.com/pixeltube-cli/pixeltube/provider"
	"github.com/pixeltube-cli/pixeltube/source"
	"github.com/pixeltube-cli/pixeltube/style"
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, squares)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().StringP("instance", "i", "", "Base URL of the PixelTube instance")
	lo.Must0(viper.BindPFlag(key.Instance, rootCmd.PersistentFlags().Lookup("instance")))
}

// rootCmd defines the entry point for the pixeltube application.
var rootCmd = &cobra.Command{
	Use:   constant.Pixeltube,
	Short: "Browse PixelTube instances from the terminal",
	Long: style.Title("pixeltube") + "\n" +
		style.New().Italic(true).Foreground(style.HiRed).Render("    - Browse PixelTube videos and channels over ActivityPub and the listing API"),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}
		_ = cmd.Help()
	},
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// plugin enables the builtin provider from the loaded configuration.
func plugin() source.Source {
	src, err := provider.Default(nil)
	handleErr(err)
	return src
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", style.Fg(style.ErrorColor)(icon.Get(icon.Fail)), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
