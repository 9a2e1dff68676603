package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/ShreyashPatil123/Panther-update-sub001/internal/nav"
	"github.com/ShreyashPatil123/Panther-update-sub001/internal/output"
	"github.com/spf13/cobra"
)

// AwaitResult is the output of an await run.
type AwaitResult struct {
	OK       bool   `yaml:"ok"                 json:"ok"`
	Action   string `yaml:"action"             json:"action"`
	Elapsed  string `yaml:"elapsed"            json:"elapsed"`
	Match    string `yaml:"match,omitempty"    json:"match,omitempty"`
	URL      string `yaml:"url,omitempty"      json:"url,omitempty"`
	Title    string `yaml:"title,omitempty"    json:"title,omitempty"`
	TimedOut bool   `yaml:"timed_out,omitempty" json:"timed_out,omitempty"`
}

var awaitCmd = &cobra.Command{
	Use:   "await",
	Short: "Wait for a page condition to be met",
	Long:  "Poll a page's URL and title until a condition is met or the timeout elapses. Runs the confirmation check without the rest of the pipeline.",
	RunE:  runAwait,
}

func init() {
	rootCmd.AddCommand(awaitCmd)
	awaitCmd.Flags().String("contains", "", "Wait until the page URL contains this (scheme and www ignored)")
	awaitCmd.Flags().String("title-contains", "", "Wait until the page title contains this (case-insensitive)")
	awaitCmd.Flags().Bool("gone", false, "Invert: wait until the condition is NO LONGER true")
	awaitCmd.Flags().Int("timeout", 30, "Max seconds to wait")
	awaitCmd.Flags().Int("interval", 500, "Polling interval in milliseconds")
	addPageFlags(awaitCmd)
	awaitCmd.Flags().Bool("pretty", false, "Indent JSON output")
}

func runAwait(cmd *cobra.Command, args []string) error {
	needle, _ := cmd.Flags().GetString("contains")
	titleNeedle, _ := cmd.Flags().GetString("title-contains")
	gone, _ := cmd.Flags().GetBool("gone")
	timeoutSec, _ := cmd.Flags().GetInt("timeout")
	intervalMs, _ := cmd.Flags().GetInt("interval")

	if needle == "" && titleNeedle == "" {
		return fmt.Errorf("specify at least one condition: --contains or --title-contains")
	}

	cfg, err := loadNavConfig(cmd)
	if err != nil {
		return err
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

	timeout := time.Duration(timeoutSec) * time.Second
	interval := time.Duration(intervalMs) * time.Millisecond
	deadline := time.Now().Add(timeout)
	start := time.Now()
	matchDesc := describeAwait(needle, titleNeedle, gone)

	var lastURL, lastTitle string
	for {
		if url, err := tab.CurrentURL(ctx); err == nil {
			lastURL = url
		}
		if title, err := tab.Title(ctx); err == nil {
			lastTitle = title
		}

		conditionMet := awaitMatch(lastURL, lastTitle, needle, titleNeedle)
		if gone {
			conditionMet = !conditionMet
		}

		if conditionMet {
			return output.Print(AwaitResult{
				OK:      true,
				Action:  "await",
				Elapsed: fmt.Sprintf("%.1fs", time.Since(start).Seconds()),
				Match:   matchDesc,
				URL:     lastURL,
				Title:   lastTitle,
			})
		}

		if time.Now().After(deadline) {
			// Print the result, then return an error for non-zero exit code
			_ = output.Print(AwaitResult{
				OK:       false,
				Action:   "await",
				Elapsed:  fmt.Sprintf("%.1fs", time.Since(start).Seconds()),
				Match:    matchDesc,
				URL:      lastURL,
				Title:    lastTitle,
				TimedOut: true,
			})
			return fmt.Errorf("timed out waiting for condition: %s", matchDesc)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}
}

// awaitMatch checks the page state against the given conditions. When
// both are given, ALL must match (AND logic).
func awaitMatch(url, title, needle, titleNeedle string) bool {
	if needle != "" && !nav.URLContains(url, needle) {
		return false
	}
	if titleNeedle != "" && !strings.Contains(strings.ToLower(title), strings.ToLower(titleNeedle)) {
		return false
	}
	return true
}

// describeAwait returns a human-readable description of what was waited for.
func describeAwait(needle, titleNeedle string, gone bool) string {
	var parts []string
	if needle != "" {
		parts = append(parts, fmt.Sprintf("url~%q", needle))
	}
	if titleNeedle != "" {
		parts = append(parts, fmt.Sprintf("title~%q", titleNeedle))
	}
	desc := strings.Join(parts, " ")
	if gone {
		desc += " (gone)"
	}
	return desc
}
