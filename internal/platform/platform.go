package platform

import (
	"context"

	"github.com/ShreyashPatil123/Panther-update-sub001/internal/model"
)

// WindowManager enumerates top-level windows and issues foreground requests.
type WindowManager interface {
	// ListWindows returns the currently visible top-level windows,
	// optionally filtered. Results are discovered fresh on every call;
	// handles and titles can change between calls.
	ListWindows(opts ListOptions) ([]model.Window, error)

	// ForegroundWindow returns the window that currently owns foreground.
	ForegroundWindow() (model.Window, error)

	// SetForeground asks the OS to make handle the foreground window.
	// The OS may silently refuse; callers must re-check with
	// ForegroundWindow instead of trusting the return.
	SetForeground(handle uintptr) error

	// RaiseAttached restores handle if minimized and issues the foreground
	// request with the calling thread's input queue attached to the target
	// window's thread. Still best-effort.
	RaiseAttached(handle uintptr) error
}

// Inputter emits synthetic key events. The native implementation writes to
// the OS input queue; the browser package provides a protocol-level
// implementation that dispatches the same virtual-key codes to the page.
type Inputter interface {
	KeyDown(vk VK) error
	KeyUp(vk VK) error
}

// ShellActivator activates a window by title through an external OS
// automation facility that is exempt from the foreground lock. It must not
// leave filesystem side effects.
type ShellActivator interface {
	ActivateByTitle(ctx context.Context, title string) error
}
