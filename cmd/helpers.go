package cmd

import (
	"context"
	"time"

	"github.com/ShreyashPatil123/Panther-update-sub001/internal/browser"
	"github.com/ShreyashPatil123/Panther-update-sub001/internal/nav"
	"github.com/spf13/cobra"
)

// attachTimeout bounds the initial DevTools handshake, not the attached
// session's lifetime.
const attachTimeout = 10 * time.Second

// loadNavConfig builds the runtime config from --config and --endpoint.
// An explicit --endpoint flag wins over the config file value.
func loadNavConfig(cmd *cobra.Command) (nav.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := nav.LoadConfig(path)
	if err != nil {
		return nav.Config{}, err
	}
	if cmd.Flags().Changed("endpoint") {
		if endpoint, _ := cmd.Flags().GetString("endpoint"); endpoint != "" {
			cfg.Endpoint = endpoint
		}
	}
	return cfg, nil
}

// attachBrowser connects to the configured debugging endpoint.
func attachBrowser(ctx context.Context, cfg nav.Config) (*browser.Session, error) {
	actx, cancel := context.WithTimeout(ctx, attachTimeout)
	defer cancel()
	return browser.Attach(actx, cfg.Endpoint, log)
}

// pickPage resolves which page target a command operates on: a fresh tab
// with --new-page, a URL-substring match with --page-url, otherwise the
// active page.
func pickPage(ctx context.Context, s *browser.Session, cmd *cobra.Command) (*browser.Page, error) {
	if newPage, _ := cmd.Flags().GetBool("new-page"); newPage {
		return s.NewPage(ctx)
	}
	if substr, _ := cmd.Flags().GetString("page-url"); substr != "" {
		return s.PageByURL(ctx, substr)
	}
	return s.ActivePage(ctx)
}

// addPageFlags registers the page-selection flags shared by commands that
// operate on a single tab.
func addPageFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("new-page", false, "Open a fresh tab instead of using the active one")
	cmd.Flags().String("page-url", "", "Use the first page whose URL contains this substring")
}

// secondsFlag reads an integer flag expressed in seconds as a duration.
// Zero or missing means "no override".
func secondsFlag(cmd *cobra.Command, name string) time.Duration {
	n, err := cmd.Flags().GetInt(name)
	if err != nil || n <= 0 {
		return 0
	}
	return time.Duration(n) * time.Second
}
