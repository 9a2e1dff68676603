//go:build windows

package windows

import "github.com/ShreyashPatil123/Panther-update-sub001/internal/platform"

func init() {
	platform.NewProviderFunc = func() (*platform.Provider, error) {
		return &platform.Provider{
			WindowManager: NewWindowManager(),
			Inputter:      NewInputter(),
			Shell:         NewShellActivator(),
		}, nil
	}
}
