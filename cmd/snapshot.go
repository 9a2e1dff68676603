package cmd

import (
	"bytes"
	"fmt"
	"image/png"
	"os"
	"time"

	"github.com/ShreyashPatil123/Panther-update-sub001/internal/output"
	"github.com/spf13/cobra"
)

// SnapshotResult is the output of a snapshot run.
type SnapshotResult struct {
	OK      bool   `yaml:"ok"      json:"ok"`
	Action  string `yaml:"action"  json:"action"`
	File    string `yaml:"file"    json:"file"`
	Caption string `yaml:"caption" json:"caption"`
	Width   int    `yaml:"width"   json:"width"`
	Height  int    `yaml:"height"  json:"height"`
}

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Capture a captioned screenshot of a page",
	Long:  "Capture the page's viewport over the protocol and stamp a caption onto it, for post-run debugging of what the window actually showed.",
	RunE:  runSnapshot,
}

func init() {
	rootCmd.AddCommand(snapshotCmd)
	snapshotCmd.Flags().String("out", "", "Output PNG path (default: snapshot-<timestamp>.png)")
	snapshotCmd.Flags().String("caption", "", "Caption text (default: page URL and timestamp)")
	addPageFlags(snapshotCmd)
	snapshotCmd.Flags().Bool("pretty", false, "Indent JSON output")
}

func runSnapshot(cmd *cobra.Command, args []string) error {
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

	data, err := tab.Screenshot(ctx)
	if err != nil {
		return fmt.Errorf("capture: %w", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decode capture: %w", err)
	}

	caption, _ := cmd.Flags().GetString("caption")
	if caption == "" {
		url, _ := tab.CurrentURL(ctx)
		caption = fmt.Sprintf("%s | %s", url, time.Now().Format(time.RFC3339))
	}

	stamped := stampCaption(img, caption)

	outPath, _ := cmd.Flags().GetString("out")
	if outPath == "" {
		outPath = fmt.Sprintf("snapshot-%s.png", time.Now().Format("20060102-150405"))
	}
	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	if err := png.Encode(f, stamped); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", outPath, err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	bounds := stamped.Bounds()
	return output.Print(SnapshotResult{
		OK:      true,
		Action:  "snapshot",
		File:    outPath,
		Caption: caption,
		Width:   bounds.Dx(),
		Height:  bounds.Dy(),
	})
}
