package cmd

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/pixeltube-cli/pixeltube/filesystem"
	"github.com/pixeltube-cli/pixeltube/inline"
	"github.com/pixeltube-cli/pixeltube/source"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inlineCmd)

	inlineCmd.Flags().StringP("query", "q", "", "The search query to execute")
	inlineCmd.Flags().StringP("pick", "P", "", "Criteria for selecting a video from the search results")
	inlineCmd.Flags().BoolP("json", "j", false, "Format the command output as a JSON object")
	inlineCmd.Flags().BoolP("channels", "c", false, "Search channels instead of videos")
	inlineCmd.Flags().IntP("pages", "p", 1, "Number of result pages to fetch")
	inlineCmd.Flags().BoolP("include-sources", "S", false, "Resolve the picked video to include its playable sources")
	inlineCmd.Flags().StringP("output", "o", "", "Specify a file path to write the command output")

	lo.Must0(inlineCmd.MarkFlagRequired("query"))
	inlineCmd.MarkFlagsMutuallyExclusive("channels", "pick")
}

var inlineCmd = &cobra.Command{
	Use:   "inline",
	Short: "Run a search in non-interactive, scriptable mode",
	Long: `Run a search without prompts and print URLs or a JSON document.

Video pickers:
  first - first video in the results
  last - last video in the results
  exact - video whose title equals the query
  [number] - select video by index (starting from 0)`,
	Run: func(cmd *cobra.Command, args []string) {
		query := lo.Must(cmd.Flags().GetString("query"))

		var writer io.Writer = os.Stdout
		if output := lo.Must(cmd.Flags().GetString("output")); output != "" {
			file, err := filesystem.API().Create(output)
			handleErr(err)
			defer file.Close()
			writer = file
		}

		picker := mo.None[inline.Picker]()
		if selector := lo.Must(cmd.Flags().GetString("pick")); selector != "" {
			fn, err := inline.ParsePicker(selector, query)
			handleErr(err)
			picker = mo.Some(fn)
		}

		options := &inline.Options{
			Out:      writer,
			Source:   plugin(),
			Query:    query,
			Json:     lo.Must(cmd.Flags().GetBool("json")),
			Channels: lo.Must(cmd.Flags().GetBool("channels")),
			Pages:    lo.Must(cmd.Flags().GetInt("pages")),
			Picker:   picker,
			Details:  lo.Must(cmd.Flags().GetBool("include-sources")),
		}

		handleErr(inline.Run(commandContext(cmd), options))
	},
}

func init() {
	inlineCmd.AddCommand(inlineSchemaCmd)

	inlineSchemaCmd.Flags().BoolP("video", "V", false, "Generate the JSON Schema for video details")
	inlineSchemaCmd.Flags().BoolP("channel", "C", false, "Generate the JSON Schema for channels")
	inlineSchemaCmd.MarkFlagsMutuallyExclusive("video", "channel")
}

// inlineSchemaCmd generates JSON schemas for structured inline mode outputs.
var inlineSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Generate JSON schemas for structured outputs",
	Run: func(cmd *cobra.Command, args []string) {
		reflector := new(jsonschema.Reflector)
		reflector.Anonymous = true
		reflector.Namer = func(t reflect.Type) string {
			name := t.Name()
			switch strings.ToLower(name) {
			case "video", "channel", "page", "output":
				return filepath.Base(t.PkgPath()) + "." + name
			}

			return name
		}

		var schema *jsonschema.Schema

		switch {
		case lo.Must(cmd.Flags().GetBool("video")):
			schema = reflector.Reflect(&source.VideoDetails{})
		case lo.Must(cmd.Flags().GetBool("channel")):
			schema = reflector.Reflect(&source.Channel{})
		default:
			schema = reflector.Reflect(&inline.Output{})
		}

		handleErr(json.NewEncoder(os.Stdout).Encode(schema))
	},
}
