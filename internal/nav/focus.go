package nav

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ShreyashPatil123/Panther-update-sub001/internal/logging"
	"github.com/ShreyashPatil123/Panther-update-sub001/internal/model"
	"github.com/ShreyashPatil123/Panther-update-sub001/internal/platform"
)

// FocusResult reports how the chain ended. Acquired is only true when an
// independent foreground re-check saw the target window in front; the
// strategies' own return values are never trusted.
type FocusResult struct {
	Acquired bool
	Strategy Strategy
	Backend  Backend
	Attempts []model.AttemptResult
}

// FocusChain walks a plan's strategy steps in rank order until one
// verifiably brings the target window to the foreground.
type FocusChain struct {
	provider *platform.Provider
	t        Timing
	log      *logging.Logger
}

// NewFocusChain creates a chain. provider may be nil on hosts without a
// native backend; OS strategies then fail fast and only the in-page
// hand-off runs.
func NewFocusChain(provider *platform.Provider, t Timing, log *logging.Logger) *FocusChain {
	if log == nil {
		log = logging.Nop()
	}
	return &FocusChain{provider: provider, t: t, log: log}
}

// Acquire tries each step of the plan against the window. Every attempt
// is bounded by its own timeout and followed by a foreground re-check.
// Exhausting the chain is not an error: the caller proceeds with the
// plan's fallback backend and a downgraded outcome.
func (f *FocusChain) Acquire(ctx context.Context, plan Plan, win model.Window, tab Tab) FocusResult {
	res := FocusResult{Backend: plan.Fallback}

	for _, step := range plan.Steps {
		if ctx.Err() != nil {
			return res
		}

		start := time.Now()
		stepCtx, cancel := context.WithTimeout(ctx, f.t.FocusTimeout())
		err := f.attempt(stepCtx, step.Focus, win, tab)

		verified := false
		if err == nil {
			f.settle(stepCtx)
			verified = f.verify(win.Handle)
			if !verified {
				err = fmt.Errorf("foreground re-check failed")
			}
		}
		cancel()

		attempt := model.AttemptResult{
			Strategy:  string(step.Focus),
			OK:        verified,
			ElapsedMs: time.Since(start).Milliseconds(),
		}
		if err != nil {
			attempt.Error = err.Error()
		}
		res.Attempts = append(res.Attempts, attempt)

		if verified {
			f.log.Debug("focus acquired",
				zap.String("strategy", string(step.Focus)),
				zap.Int64("elapsed_ms", attempt.ElapsedMs))
			res.Acquired = true
			res.Strategy = step.Focus
			res.Backend = step.Backend
			return res
		}
		f.log.Debug("focus strategy failed",
			zap.String("strategy", string(step.Focus)),
			zap.Error(err))
	}
	return res
}

// attempt dispatches one strategy. The call runs in its own goroutine so
// a wedged foreground call cannot outlive the step deadline; an abandoned
// attempt still releases any held modifier through its own defer.
func (f *FocusChain) attempt(ctx context.Context, s Strategy, win model.Window, tab Tab) error {
	done := make(chan error, 1)
	go func() {
		done <- f.run(ctx, s, win, tab)
	}()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *FocusChain) run(ctx context.Context, s Strategy, win model.Window, tab Tab) error {
	switch s {
	case StrategyPage:
		if tab == nil {
			return fmt.Errorf("no page attached")
		}
		if err := tab.BringToFront(ctx); err != nil {
			return err
		}
		return tab.FocusBody(ctx)

	case StrategyModifierTap:
		in := f.inputter()
		wm := f.windowManager()
		if in == nil || wm == nil {
			return platform.ErrUnsupported
		}
		// Holding a benign modifier marks this process as recently
		// interactive, which the foreground lock honors.
		if err := in.KeyDown(platform.VKMenu); err != nil {
			return err
		}
		defer in.KeyUp(platform.VKMenu)
		return wm.SetForeground(win.Handle)

	case StrategyShellActivate:
		sh := f.shell()
		if sh == nil {
			return platform.ErrUnsupported
		}
		return sh.ActivateByTitle(ctx, win.Title)

	case StrategyDirect:
		wm := f.windowManager()
		if wm == nil {
			return platform.ErrUnsupported
		}
		return wm.RaiseAttached(win.Handle)

	default:
		return fmt.Errorf("unknown focus strategy: %q", s)
	}
}

// settle waits the verify delay, so the window manager has repainted
// before the re-check.
func (f *FocusChain) settle(ctx context.Context) {
	select {
	case <-ctx.Done():
	case <-time.After(f.t.FocusVerifyDelay()):
	}
}

func (f *FocusChain) verify(handle uintptr) bool {
	wm := f.windowManager()
	if wm == nil {
		return false
	}
	fg, err := wm.ForegroundWindow()
	return err == nil && fg.Handle == handle
}

func (f *FocusChain) windowManager() platform.WindowManager {
	if f.provider == nil {
		return nil
	}
	return f.provider.WindowManager
}

func (f *FocusChain) inputter() platform.Inputter {
	if f.provider == nil {
		return nil
	}
	return f.provider.Inputter
}

func (f *FocusChain) shell() platform.ShellActivator {
	if f.provider == nil {
		return nil
	}
	return f.provider.Shell
}
