//go:build windows

package windows

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// PowerShellActivator raises windows through the WScript.Shell automation
// object. Activation by title goes through the OS shell itself, which is
// exempt from the foreground lock that constrains ordinary processes.
type PowerShellActivator struct{}

// NewShellActivator creates a new PowerShell-backed activator.
func NewShellActivator() *PowerShellActivator {
	return &PowerShellActivator{}
}

// ActivateByTitle activates the window whose title matches. The script is
// passed inline; nothing touches the filesystem.
func (a *PowerShellActivator) ActivateByTitle(ctx context.Context, title string) error {
	escaped := strings.ReplaceAll(title, "'", "''")
	script := fmt.Sprintf(
		"$sh = New-Object -ComObject WScript.Shell; if (-not $sh.AppActivate('%s')) { exit 1 }",
		escaped,
	)

	cmd := exec.CommandContext(ctx, "powershell", "-NoProfile", "-ExecutionPolicy", "Bypass", "-Command", script)
	if out, err := cmd.CombinedOutput(); err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return fmt.Errorf("AppActivate %q: %s (%w)", title, msg, err)
		}
		return fmt.Errorf("AppActivate %q: %w", title, err)
	}
	return nil
}
