package nav

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/ShreyashPatil123/Panther-update-sub001/internal/model"
	"github.com/ShreyashPatil123/Panther-update-sub001/internal/platform"
)

// testTiming returns timings shrunk to keep the suite fast while
// preserving every ordering the real values enforce.
func testTiming() Timing {
	return Timing{
		LocateTimeoutMs:    100,
		LocateIntervalMs:   5,
		FocusTimeoutMs:     60,
		FocusVerifyDelayMs: 1,
		MarkerSettleMs:     1,
		ChordHoldMs:        0,
		BarSettleMs:        1,
		KeyHoldMs:          0,
		CharDelayMs:        0,
		CharJitterMs:       0,
		CommitWaitMs:       0,
		ConfirmTimeoutMs:   80,
		ConfirmPollMs:      5,
	}
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Timing = testTiming()
	return cfg
}

// keyEvent is one recorded KeyDown or KeyUp.
type keyEvent struct {
	Down bool
	VK   platform.VK
}

// fakeInput records every key event in order. failAt fails the Nth event
// (1-based); onEvent fires after each event with the running count.
type fakeInput struct {
	mu      sync.Mutex
	events  []keyEvent
	failAt  int
	onEvent func(n int)
}

func (f *fakeInput) KeyDown(vk platform.VK) error { return f.record(true, vk) }
func (f *fakeInput) KeyUp(vk platform.VK) error   { return f.record(false, vk) }

func (f *fakeInput) record(down bool, vk platform.VK) error {
	f.mu.Lock()
	f.events = append(f.events, keyEvent{Down: down, VK: vk})
	n := len(f.events)
	hook := f.onEvent
	fail := f.failAt > 0 && n == f.failAt
	f.mu.Unlock()

	if hook != nil {
		hook(n)
	}
	if fail {
		return fmt.Errorf("synthetic input failure at event %d", n)
	}
	return nil
}

func (f *fakeInput) recorded() []keyEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]keyEvent, len(f.events))
	copy(out, f.events)
	return out
}

// decodeTyped replays recorded events through the keymap's decoder with
// the same modifier rules the injector applies: shift state follows the
// shift key, and characters pressed under control are chord keys, not
// text.
func decodeTyped(events []keyEvent) string {
	var b strings.Builder
	shift, ctrl := false, false
	for _, e := range events {
		switch e.VK {
		case platform.VKShift:
			shift = e.Down
		case platform.VKControl:
			ctrl = e.Down
		case platform.VKReturn, platform.VKMenu:
			// not text
		default:
			if e.Down && !ctrl {
				if r, ok := platform.DecodeKeystroke(platform.Keystroke{VK: e.VK, Shift: shift}); ok {
					b.WriteRune(r)
				}
			}
		}
	}
	return b.String()
}

// balancedKeys reports whether every KeyDown has a matching KeyUp, i.e.
// nothing was left held.
func balancedKeys(events []keyEvent) bool {
	held := map[platform.VK]int{}
	for _, e := range events {
		if e.Down {
			held[e.VK]++
		} else {
			held[e.VK]--
		}
	}
	for _, n := range held {
		if n != 0 {
			return false
		}
	}
	return true
}

// fakeWM is a window manager whose foreground transfers obey per-call
// switches, so tests choose which focus strategy wins.
type fakeWM struct {
	mu         sync.Mutex
	windows    []model.Window
	listErr    error
	listCalls  int
	listFn     func(call int, opts platform.ListOptions) ([]model.Window, error)
	foreground uintptr
	obeySet    bool
	obeyRaise  bool
	setErr     error
	raiseErr   error
}

func (f *fakeWM) ListWindows(opts platform.ListOptions) ([]model.Window, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listFn != nil {
		return f.listFn(f.listCalls, opts)
	}
	if f.listErr != nil {
		return nil, f.listErr
	}
	if opts.Title == "" {
		return f.windows, nil
	}
	var out []model.Window
	for _, w := range f.windows {
		if strings.Contains(strings.ToLower(w.Title), strings.ToLower(opts.Title)) {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeWM) ForegroundWindow() (model.Window, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return model.Window{Handle: f.foreground, Foreground: true}, nil
}

func (f *fakeWM) SetForeground(handle uintptr) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setErr != nil {
		return f.setErr
	}
	if f.obeySet {
		f.foreground = handle
	}
	return nil
}

func (f *fakeWM) RaiseAttached(handle uintptr) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.raiseErr != nil {
		return f.raiseErr
	}
	if f.obeyRaise {
		f.foreground = handle
	}
	return nil
}

// fakeShell activates by title when obey is set, moving foreground to
// the window whose title matches.
type fakeShell struct {
	wm   *fakeWM
	obey bool
	err  error
}

func (f *fakeShell) ActivateByTitle(ctx context.Context, title string) error {
	if f.err != nil {
		return f.err
	}
	if f.obey && f.wm != nil {
		f.wm.mu.Lock()
		for _, w := range f.wm.windows {
			if strings.Contains(strings.ToLower(w.Title), strings.ToLower(title)) {
				f.wm.foreground = w.Handle
				break
			}
		}
		f.wm.mu.Unlock()
	}
	return nil
}

// fakeTab is a scriptable Tab. Zero value behaves like a healthy page
// with an empty title and about:blank URL.
type fakeTab struct {
	mu        sync.Mutex
	title     string
	restored  []string
	plantErr  error
	titleErr  error
	bringErr  error
	focusErr  error
	url       string
	urlErr    error
	urlFn     func(ctx context.Context) (string, error)
	loadFn    func(ctx context.Context) error
	input     *fakeInput
	brings    int
	bodyFocus int
}

func (f *fakeTab) PlantMarker(ctx context.Context, marker string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.plantErr != nil {
		return "", f.plantErr
	}
	prev := f.title
	f.title = marker
	return prev, nil
}

func (f *fakeTab) RestoreTitle(ctx context.Context, title string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.restored = append(f.restored, title)
	f.title = title
	return nil
}

func (f *fakeTab) Title(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.titleErr != nil {
		return "", f.titleErr
	}
	return f.title, nil
}

func (f *fakeTab) BringToFront(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.brings++
	return f.bringErr
}

func (f *fakeTab) FocusBody(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bodyFocus++
	return f.focusErr
}

func (f *fakeTab) CurrentURL(ctx context.Context) (string, error) {
	f.mu.Lock()
	urlFn := f.urlFn
	url, err := f.url, f.urlErr
	f.mu.Unlock()
	if urlFn != nil {
		return urlFn(ctx)
	}
	if err != nil {
		return "", err
	}
	if url == "" {
		return "about:blank", nil
	}
	return url, nil
}

func (f *fakeTab) WaitForLoad(ctx context.Context) error {
	f.mu.Lock()
	loadFn := f.loadFn
	f.mu.Unlock()
	if loadFn != nil {
		return loadFn(ctx)
	}
	<-ctx.Done()
	return ctx.Err()
}

func (f *fakeTab) Keys(ctx context.Context) platform.Inputter {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.input == nil {
		f.input = &fakeInput{}
	}
	return f.input
}

func (f *fakeTab) setURL(url string) {
	f.mu.Lock()
	f.url = url
	f.mu.Unlock()
}

func (f *fakeTab) restoredTitles() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.restored))
	copy(out, f.restored)
	return out
}
