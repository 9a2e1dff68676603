package cmd

import (
	"github.com/ShreyashPatil123/Panther-update-sub001/internal/model"
	"github.com/ShreyashPatil123/Panther-update-sub001/internal/output"
	"github.com/ShreyashPatil123/Panther-update-sub001/internal/platform"
	"github.com/spf13/cobra"
)

var windowsCmd = &cobra.Command{
	Use:   "windows",
	Short: "List visible top-level OS windows",
	Long:  "List the OS windows the locator sees: handle, title, PID, bounds, and foreground flag.",
	RunE:  runWindows,
}

func init() {
	rootCmd.AddCommand(windowsCmd)
	windowsCmd.Flags().String("title", "", "Filter by title substring (case-insensitive)")
	windowsCmd.Flags().Int("pid", 0, "Filter by process ID")
	windowsCmd.Flags().Bool("foreground", false, "Show only the current foreground window")
	windowsCmd.Flags().Bool("pretty", false, "Indent JSON output")
}

func runWindows(cmd *cobra.Command, args []string) error {
	provider, err := platform.NewProvider()
	if err != nil {
		return err
	}

	if foreground, _ := cmd.Flags().GetBool("foreground"); foreground {
		win, err := provider.WindowManager.ForegroundWindow()
		if err != nil {
			return err
		}
		return output.Print(win)
	}

	title, _ := cmd.Flags().GetString("title")
	pid, _ := cmd.Flags().GetInt("pid")

	windows, err := provider.WindowManager.ListWindows(platform.ListOptions{
		Title: title,
		PID:   pid,
	})
	if err != nil {
		return err
	}
	if windows == nil {
		windows = []model.Window{}
	}
	return output.Print(windows)
}
