//go:build windows

package windows

import (
	"fmt"
	"runtime"
	"strings"
	"unsafe"

	sys "golang.org/x/sys/windows"

	"github.com/ShreyashPatil123/Panther-update-sub001/internal/model"
	"github.com/ShreyashPatil123/Panther-update-sub001/internal/platform"
)

// WindowsWindowManager implements the platform.WindowManager interface
// on top of user32.
type WindowsWindowManager struct{}

// NewWindowManager creates a new Windows window manager.
func NewWindowManager() *WindowsWindowManager {
	return &WindowsWindowManager{}
}

type enumState struct {
	opts platform.ListOptions
	wins []model.Window
}

// enumWindowsCallback is created once: syscall callbacks are never released
// and the process has a small fixed budget of them. State flows through the
// lparam pointer, which EnumWindows passes back unchanged.
var enumWindowsCallback = sys.NewCallback(func(hwnd uintptr, lparam uintptr) uintptr {
	st := (*enumState)(unsafe.Pointer(lparam))

	if visible, _, _ := procIsWindowVisible.Call(hwnd); visible == 0 {
		return 1
	}
	title := windowTitle(hwnd)
	if title == "" {
		return 1
	}
	if st.opts.Title != "" && !strings.Contains(strings.ToLower(title), strings.ToLower(st.opts.Title)) {
		return 1
	}

	var pid uint32
	procGetWindowThreadProcessId.Call(hwnd, uintptr(unsafe.Pointer(&pid)))
	if st.opts.PID != 0 && int(pid) != st.opts.PID {
		return 1
	}

	w := model.Window{Handle: hwnd, Title: title, PID: int(pid)}
	var r rect
	if ok, _, _ := procGetWindowRect.Call(hwnd, uintptr(unsafe.Pointer(&r))); ok != 0 {
		w.Bounds = [4]int{int(r.Left), int(r.Top), int(r.Right - r.Left), int(r.Bottom - r.Top)}
	}
	st.wins = append(st.wins, w)
	return 1
})

func (wm *WindowsWindowManager) ListWindows(opts platform.ListOptions) ([]model.Window, error) {
	st := &enumState{opts: opts}
	ret, _, err := procEnumWindows.Call(enumWindowsCallback, uintptr(unsafe.Pointer(st)))
	if ret == 0 {
		return nil, fmt.Errorf("EnumWindows: %w", err)
	}

	fg, _, _ := procGetForegroundWindow.Call()
	for i := range st.wins {
		if st.wins[i].Handle == fg {
			st.wins[i].Foreground = true
		}
	}
	return st.wins, nil
}

func (wm *WindowsWindowManager) ForegroundWindow() (model.Window, error) {
	hwnd, _, _ := procGetForegroundWindow.Call()
	if hwnd == 0 {
		return model.Window{}, fmt.Errorf("no foreground window")
	}
	var pid uint32
	procGetWindowThreadProcessId.Call(hwnd, uintptr(unsafe.Pointer(&pid)))
	return model.Window{
		Handle:     hwnd,
		Title:      windowTitle(hwnd),
		PID:        int(pid),
		Foreground: true,
	}, nil
}

// SetForeground restores a minimized window and issues the plain foreground
// request. A refused request is not an error here: the OS declines
// silently in the common case and callers re-check the foreground window.
func (wm *WindowsWindowManager) SetForeground(handle uintptr) error {
	if alive, _, _ := procIsWindow.Call(handle); alive == 0 {
		return fmt.Errorf("window %#x no longer exists", handle)
	}
	if iconic, _, _ := procIsIconic.Call(handle); iconic != 0 {
		procShowWindow.Call(handle, swRestore)
	}
	procSetForegroundWindow.Call(handle)
	return nil
}

// RaiseAttached performs the foreground request with the calling thread's
// input queue attached to the target window's thread, which satisfies the
// foreground lock on builds where the plain request is ignored.
func (wm *WindowsWindowManager) RaiseAttached(handle uintptr) error {
	if alive, _, _ := procIsWindow.Call(handle); alive == 0 {
		return fmt.Errorf("window %#x no longer exists", handle)
	}

	// AttachThreadInput binds OS threads, so the goroutine must not migrate
	// between the attach and the detach.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	targetThread, _, _ := procGetWindowThreadProcessId.Call(handle, 0)
	current := sys.GetCurrentThreadId()

	attached := false
	if targetThread != 0 && uint32(targetThread) != current {
		ret, _, _ := procAttachThreadInput.Call(uintptr(current), targetThread, 1)
		attached = ret != 0
	}

	procShowWindow.Call(handle, swRestore)
	procSetForegroundWindow.Call(handle)
	procSetFocus.Call(handle)

	if attached {
		procAttachThreadInput.Call(uintptr(current), targetThread, 0)
	}
	return nil
}

func windowTitle(hwnd uintptr) string {
	n, _, _ := procGetWindowTextLengthW.Call(hwnd)
	if n == 0 {
		return ""
	}
	buf := make([]uint16, n+1)
	procGetWindowTextW.Call(hwnd, uintptr(unsafe.Pointer(&buf[0])), n+1)
	return sys.UTF16ToString(buf)
}
