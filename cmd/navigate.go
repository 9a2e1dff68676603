package cmd

import (
	"context"
	"fmt"

	"github.com/ShreyashPatil123/Panther-update-sub001/internal/model"
	"github.com/ShreyashPatil123/Panther-update-sub001/internal/nav"
	"github.com/ShreyashPatil123/Panther-update-sub001/internal/output"
	"github.com/ShreyashPatil123/Panther-update-sub001/internal/platform"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var navigateCmd = &cobra.Command{
	Use:   "navigate [url or search terms]",
	Short: "Navigate a browser tab by typing into its address bar",
	Long: `Navigate runs the full pipeline: mark the target tab's title, find the
OS window carrying the mark, bring it to the foreground, type the URL into
the address bar, press Enter, and watch the tab until the navigation is
confirmed.

Input that does not look like a URL is rewritten to a search-engine query.

Exit status is zero for a confirmed navigation (including partial ones) and
non-zero when the pipeline failed structurally.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNavigate,
}

func init() {
	rootCmd.AddCommand(navigateCmd)
	navigateCmd.Flags().String("url", "", "URL or search terms (alternative to positional arg)")
	navigateCmd.Flags().Int("timeout", 0, "Confirmation deadline in seconds (0 = config default)")
	navigateCmd.Flags().String("backend", "", "Keystroke backend for every strategy: virtual-key, protocol")
	navigateCmd.Flags().String("marker", "", "Fixed tab marker instead of a generated one")
	navigateCmd.Flags().Bool("no-plant", false, "Locate by the tab's existing title instead of planting a marker")
	navigateCmd.Flags().String("search-engine", "", "Engine for non-URL input (duckduckgo, google, bing, ...)")
	addPageFlags(navigateCmd)
	navigateCmd.Flags().Bool("pretty", false, "Indent JSON output")
}

func runNavigate(cmd *cobra.Command, args []string) error {
	urlStr, _ := cmd.Flags().GetString("url")
	if len(args) > 0 && urlStr == "" {
		urlStr = args[0]
	}
	if urlStr == "" {
		return fmt.Errorf("specify a URL or search terms")
	}

	cfg, err := loadNavConfig(cmd)
	if err != nil {
		return err
	}
	if engine, _ := cmd.Flags().GetString("search-engine"); engine != "" {
		cfg.SearchEngine = engine
	}
	if noPlant, _ := cmd.Flags().GetBool("no-plant"); noPlant {
		cfg.PlantMarker = false
	}
	if backendStr, _ := cmd.Flags().GetString("backend"); backendStr != "" {
		backend, err := nav.ParseBackend(backendStr)
		if err != nil {
			return err
		}
		cfg.Plan = cfg.Plan.WithBackend(backend)
	}

	ctx := cmd.Context()
	session, err := attachBrowser(ctx, cfg)
	if err != nil {
		return err
	}
	defer session.Close()

	tab, err := pickPage(ctx, session, cmd)
	if err != nil {
		return err
	}

	// A missing native backend is not fatal up front: the protocol
	// backend still works, and the navigator reports the precise stage
	// when a virtual-key run cannot proceed.
	provider, err := platform.NewProvider()
	if err != nil {
		log.Warn("native input unavailable", zap.Error(err))
		provider = nil
	}

	navigator := nav.NewNavigator(cfg, provider, nav.NewMetrics(), log)
	defer navigator.Close()

	marker, _ := cmd.Flags().GetString("marker")
	outcome := navigator.Navigate(ctx, nav.Request{
		URL:     urlStr,
		Tab:     tab,
		Marker:  marker,
		Timeout: secondsFlag(cmd, "timeout"),
	})

	if err := output.Print(outcome); err != nil {
		return err
	}
	if outcome.Status == model.StatusFailed {
		return fmt.Errorf("navigation failed at %s: %s", outcome.Stage, outcome.Error)
	}
	return nil
}
