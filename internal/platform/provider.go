package platform

import (
	"fmt"
	"runtime"
)

// Provider bundles the native backends for the current OS.
type Provider struct {
	WindowManager WindowManager
	Inputter      Inputter
	Shell         ShellActivator
}

// ErrUnsupported is returned on platforms without a native backend.
var ErrUnsupported = fmt.Errorf("native window and input control is not supported on %s/%s; supported: windows/amd64, windows/arm64", runtime.GOOS, runtime.GOARCH)

// NewProviderFunc is set by platform-specific packages via init().
// See internal/platform/windows/init.go for the Windows registration.
var NewProviderFunc func() (*Provider, error)

// NewProvider returns a Provider for the current OS.
func NewProvider() (*Provider, error) {
	if NewProviderFunc == nil {
		return nil, ErrUnsupported
	}
	return NewProviderFunc()
}
