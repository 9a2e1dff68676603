package nav

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ShreyashPatil123/Panther-update-sub001/internal/logging"
	"github.com/ShreyashPatil123/Panther-update-sub001/internal/model"
	"github.com/ShreyashPatil123/Panther-update-sub001/internal/platform"
)

// Locator resolves a tab marker to the single OS window carrying it.
type Locator struct {
	wm  platform.WindowManager
	t   Timing
	log *logging.Logger
}

// NewLocator creates a locator over a window manager.
func NewLocator(wm platform.WindowManager, t Timing, log *logging.Logger) *Locator {
	if log == nil {
		log = logging.Nop()
	}
	return &Locator{wm: wm, t: t, log: log}
}

// Locate polls the visible top-level windows for exactly one whose title
// contains the marker. Zero matches and multiple matches both retry until
// the deadline: the browser may not have repainted the title yet, and a
// duplicate usually means a stale window that is about to drop the marker.
// Handles are discovered fresh on every poll, never reused from an
// earlier call.
func (l *Locator) Locate(ctx context.Context, marker string) (model.Window, error) {
	if marker == "" {
		return model.Window{}, wrapErr(ErrInvalidArgument, StageLocating, fmt.Errorf("empty marker"))
	}
	if l.wm == nil {
		return model.Window{}, wrapErr(ErrNotFound, StageLocating, fmt.Errorf("no window manager on this platform"))
	}

	deadline := time.Now().Add(l.t.LocateTimeout())
	var lastSeen int
	for {
		all, err := l.wm.ListWindows(platform.ListOptions{})
		if err != nil {
			return model.Window{}, wrapErr(ErrNotFound, StageLocating, err)
		}
		// Markers are matched exactly as planted. The backend's own title
		// filter folds case, which is right for humans but not for tags.
		var wins []model.Window
		for _, w := range all {
			if strings.Contains(w.Title, marker) {
				wins = append(wins, w)
			}
		}
		lastSeen = len(wins)
		if len(wins) == 1 {
			l.log.Debug("window located",
				zap.String("marker", marker),
				zap.String("title", wins[0].Title),
				zap.Int("pid", wins[0].PID))
			return wins[0], nil
		}
		if len(wins) > 1 {
			l.log.Debug("marker ambiguous, retrying",
				zap.String("marker", marker),
				zap.Int("matches", len(wins)))
		}

		if time.Now().After(deadline) {
			break
		}
		select {
		case <-ctx.Done():
			return model.Window{}, wrapErr(ErrNotFound, StageLocating, ctx.Err())
		case <-time.After(l.t.LocateInterval()):
		}
	}

	if lastSeen > 1 {
		return model.Window{}, wrapErr(ErrNotFound, StageLocating,
			fmt.Errorf("marker %q matched %d windows", marker, lastSeen))
	}
	return model.Window{}, wrapErr(ErrNotFound, StageLocating,
		fmt.Errorf("no window with marker %q", marker))
}
