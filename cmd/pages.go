package cmd

import (
	"github.com/ShreyashPatil123/Panther-update-sub001/internal/model"
	"github.com/ShreyashPatil123/Panther-update-sub001/internal/output"
	"github.com/spf13/cobra"
)

var pagesCmd = &cobra.Command{
	Use:   "pages",
	Short: "List the attached browser's page targets",
	Long:  "List the page targets behind the debugging endpoint: id, title, URL, and which one is active.",
	RunE:  runPages,
}

func init() {
	rootCmd.AddCommand(pagesCmd)
	pagesCmd.Flags().Bool("pretty", false, "Indent JSON output")
}

func runPages(cmd *cobra.Command, args []string) error {
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

	pages, err := session.Pages(ctx)
	if err != nil {
		return err
	}
	if pages == nil {
		pages = []model.PageTarget{}
	}
	return output.Print(pages)
}
