package cmd

import (
	"fmt"
	"os"

	"github.com/ShreyashPatil123/Panther-update-sub001/internal/browser"
	"github.com/ShreyashPatil123/Panther-update-sub001/internal/logging"
	"github.com/ShreyashPatil123/Panther-update-sub001/internal/output"
	"github.com/ShreyashPatil123/Panther-update-sub001/internal/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "panther-nav",
	Short: "Drive a browser's address bar through the OS input queue",
	Long: `panther-nav navigates an already-running browser the way a person would:
it finds the browser's OS window, brings it to the foreground, and types the
URL into the address bar key by key. The DevTools protocol is used only to
mark the target tab, observe it, and confirm the result afterwards.`,
}

// log is the shared command logger; PersistentPreRunE swaps in the real one.
var log = logging.Nop()

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.PersistentFlags().String("format", "yaml", "Output format: yaml, json")
	rootCmd.PersistentFlags().Bool("verbose", false, "Debug logging on stderr")
	rootCmd.PersistentFlags().String("endpoint", browser.DefaultEndpoint, "DevTools HTTP endpoint of the target browser")
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if verbose, _ := rootCmd.PersistentFlags().GetBool("verbose"); verbose {
			log = logging.NewVerbose()
		} else {
			log = logging.NewDefault()
		}

		// Use the root persistent flag directly to avoid conflicts with
		// subcommand local flags.
		format, _ := rootCmd.PersistentFlags().GetString("format")
		switch format {
		case "yaml":
			output.OutputFormat = output.FormatYAML
		case "json":
			output.OutputFormat = output.FormatJSON
		default:
			return fmt.Errorf("unsupported format: %s (use yaml or json)", format)
		}
		if prettyFlag := cmd.Flags().Lookup("pretty"); prettyFlag != nil {
			if pretty, err := cmd.Flags().GetBool("pretty"); err == nil && pretty {
				output.PrettyOutput = true
			}
		}
		return nil
	}
}
