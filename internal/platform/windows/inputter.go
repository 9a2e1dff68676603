//go:build windows

package windows

import (
	"github.com/ShreyashPatil123/Panther-update-sub001/internal/platform"
)

// WindowsInputter emits key events through keybd_event. Events land in the
// system input queue exactly like hardware keystrokes, addressed to
// whichever window holds foreground focus.
type WindowsInputter struct{}

// NewInputter creates a new Windows key-event inputter.
func NewInputter() *WindowsInputter {
	return &WindowsInputter{}
}

func (in *WindowsInputter) KeyDown(vk platform.VK) error {
	// keybd_event has no failure signal; it returns void.
	procKeybdEvent.Call(uintptr(vk), 0, 0, 0)
	return nil
}

func (in *WindowsInputter) KeyUp(vk platform.VK) error {
	procKeybdEvent.Call(uintptr(vk), 0, keyeventfKeyUp, 0)
	return nil
}
