package nav

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/ShreyashPatil123/Panther-update-sub001/internal/logging"
	"github.com/ShreyashPatil123/Panther-update-sub001/internal/model"
	"github.com/ShreyashPatil123/Panther-update-sub001/internal/platform"
)

// Request describes one navigation pass.
type Request struct {
	// URL is the raw input. Bare hostnames and search terms are
	// normalized before typing; see Config.NormalizeInput.
	URL string
	// Tab is the page being driven.
	Tab Tab
	// Marker overrides the generated tab marker. Leave empty.
	Marker string
	// Timeout overrides the confirmation deadline when positive.
	Timeout time.Duration
}

// Navigator runs the navigation pipeline: mark, locate, focus, type,
// confirm. One Navigator serves any number of concurrent runs; the
// focus-and-type critical section serializes on its worker.
type Navigator struct {
	cfg       Config
	provider  *platform.Provider
	locator   *Locator
	chain     *FocusChain
	injector  *Injector
	confirmer *Confirmer
	worker    *worker
	metrics   *Metrics
	log       *logging.Logger
}

// NewNavigator wires the pipeline. provider may be nil on hosts without
// native input; runs then fall back to the protocol backend throughout.
func NewNavigator(cfg Config, provider *platform.Provider, metrics *Metrics, log *logging.Logger) *Navigator {
	if log == nil {
		log = logging.Nop()
	}
	var wm platform.WindowManager
	if provider != nil {
		wm = provider.WindowManager
	}
	return &Navigator{
		cfg:       cfg,
		provider:  provider,
		locator:   NewLocator(wm, cfg.Timing, log),
		chain:     NewFocusChain(provider, cfg.Timing, log),
		injector:  NewInjector(cfg.Timing, cfg.SelectAll, log),
		confirmer: NewConfirmer(cfg.Timing, log),
		worker:    newWorker(),
		metrics:   metrics,
		log:       log,
	}
}

// Close stops the worker. In-flight runs finish first.
func (n *Navigator) Close() {
	n.worker.close()
}

// Navigate runs one full pass and always returns an outcome: every error
// path lands in the outcome's status, error and kind fields rather than
// escaping. Cancellation is checked at the start of each stage; a
// canceled run reports the stage it died in.
func (n *Navigator) Navigate(ctx context.Context, req Request) model.NavigationOutcome {
	start := time.Now()
	n.metrics.RecordRunStarted()

	out := model.NavigationOutcome{Status: model.StatusFailed, Stage: StageIdle.String()}
	defer func() {
		n.metrics.RecordRunFinished(out.Status, time.Since(start))
	}()

	timing := n.cfg.Timing
	if req.Timeout > 0 {
		timing.ConfirmTimeoutMs = int(req.Timeout / time.Millisecond)
	}

	typed, err := n.cfg.NormalizeInput(req.URL)
	if err != nil {
		return n.fail(&out, StageIdle, wrapErr(ErrInvalidArgument, StageIdle, err))
	}
	out.URL = typed
	if req.Tab == nil {
		return n.fail(&out, StageIdle, wrapErr(ErrInvalidArgument, StageIdle, fmt.Errorf("no page attached")))
	}

	// ---- Locating
	if err := ctx.Err(); err != nil {
		return n.fail(&out, StageLocating, err)
	}
	out.Stage = StageLocating.String()
	locStart := time.Now()

	needle, planted, prevTitle, err := n.mark(ctx, req)
	if err != nil {
		n.record(&out, StageLocating, locStart)
		return n.fail(&out, StageLocating, err)
	}
	if planted {
		out.Marker = needle
		if n.cfg.RestoreTitle {
			defer func() {
				// The run context may already be spent; cleanup gets its
				// own short budget.
				rctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer cancel()
				if err := req.Tab.RestoreTitle(rctx, prevTitle); err != nil {
					n.log.Debug("restore title", zap.Error(err))
				}
			}()
		}
	}

	win, err := n.locator.Locate(ctx, needle)
	n.record(&out, StageLocating, locStart)
	if err != nil {
		return n.fail(&out, StageLocating, err)
	}
	out.Window = &win

	// ---- Focusing and Injecting, serialized on the worker. Both touch
	// the OS foreground and input queue, so no other run may interleave
	// between this run's focus win and its keystrokes.
	if err := ctx.Err(); err != nil {
		return n.fail(&out, StageFocusing, err)
	}
	out.Stage = StageFocusing.String()

	var focus FocusResult
	workErr := n.worker.do(ctx, func(ctx context.Context) error {
		focusStart := time.Now()
		focus = n.chain.Acquire(ctx, n.cfg.Plan, win, req.Tab)
		n.record(&out, StageFocusing, focusStart)
		n.metrics.RecordFocus(focus)

		out.FocusAcquired = focus.Acquired
		out.Attempts = focus.Attempts
		out.Backend = string(focus.Backend)
		if focus.Acquired {
			out.FocusStrategy = string(focus.Strategy)
		} else {
			n.log.Debug("focus exhausted, continuing best-effort",
				zap.Int("attempts", len(focus.Attempts)),
				zap.String("fallback_backend", string(focus.Backend)))
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		out.Stage = StageInjecting.String()
		injStart := time.Now()
		in, err := n.inputterFor(ctx, focus.Backend, req.Tab)
		if err != nil {
			n.record(&out, StageInjecting, injStart)
			return err
		}
		skipped, err := n.injector.Inject(ctx, in, typed)
		out.SkippedChars = skipped
		n.record(&out, StageInjecting, injStart)
		n.metrics.RecordInjection(utf8.RuneCountInString(typed)-len(skipped), len(skipped))
		return err
	})
	if workErr != nil {
		return n.fail(&out, Stage(out.Stage), workErr)
	}

	// ---- Confirming
	if err := ctx.Err(); err != nil {
		return n.fail(&out, StageConfirming, err)
	}
	out.Stage = StageConfirming.String()
	confStart := time.Now()

	confCtx, cancelConf := context.WithTimeout(ctx, timing.ConfirmTimeout())
	conf, confErr := n.confirmer.Confirm(confCtx, req.Tab, typed)
	cancelConf()
	n.record(&out, StageConfirming, confStart)

	out.Confirmed = conf.Confirmed
	out.ConfirmedBy = conf.ConfirmedBy
	out.FinalURL = conf.FinalURL

	if confErr != nil {
		n.metrics.RecordConfirmMiss()
		// One direct query after the deadline: same-document updates do
		// not fire load events, so the address may be right even though
		// nothing confirmed in time.
		pollCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		if cur, err := req.Tab.CurrentURL(pollCtx); err == nil && cur != "" {
			out.FinalURL = cur
		}
		cancel()
		out.Error = confErr.Error()
		out.ErrorKind = KindName(confErr)
	}

	// ---- Done. Success needs both signals; anything unconfirmed or
	// low-confidence degrades to partial rather than failing.
	out.Stage = StageDone.String()
	if conf.Confirmed && focus.Acquired {
		out.Status = model.StatusSuccess
	} else {
		out.Status = model.StatusPartial
	}

	n.log.Info("navigation done",
		zap.String("status", string(out.Status)),
		zap.String("url", out.URL),
		zap.String("final_url", out.FinalURL),
		zap.Bool("confirmed", out.Confirmed),
		zap.Bool("focus_acquired", out.FocusAcquired),
		zap.Int64("elapsed_ms", time.Since(start).Milliseconds()))
	return out
}

// mark prepares the locator needle. With marker planting on, the tab's
// title becomes a fresh unique marker and the previous title is kept for
// restore; otherwise the tab's existing title is used as-is.
func (n *Navigator) mark(ctx context.Context, req Request) (needle string, planted bool, prevTitle string, err error) {
	if !n.cfg.PlantMarker {
		title, terr := req.Tab.Title(ctx)
		if terr != nil {
			return "", false, "", wrapErr(ErrNotFound, StageLocating, fmt.Errorf("read title: %w", terr))
		}
		return title, false, "", nil
	}

	marker := req.Marker
	if marker == "" {
		marker = NewMarker()
	}
	prev, perr := req.Tab.PlantMarker(ctx, marker)
	if perr != nil {
		return "", false, "", wrapErr(ErrNotFound, StageLocating, fmt.Errorf("plant marker: %w", perr))
	}
	// Give the OS window a moment to repaint its title.
	if serr := sleep(ctx, n.cfg.Timing.MarkerSettle()); serr != nil {
		return marker, true, prev, serr
	}
	return marker, true, prev, nil
}

// inputterFor resolves a backend to a concrete key sink.
func (n *Navigator) inputterFor(ctx context.Context, b Backend, tab Tab) (platform.Inputter, error) {
	switch b {
	case BackendProtocol:
		return tab.Keys(ctx), nil
	default:
		if n.provider == nil || n.provider.Inputter == nil {
			return nil, wrapErr(ErrInjection, StageInjecting, platform.ErrUnsupported)
		}
		return n.provider.Inputter, nil
	}
}

func (n *Navigator) record(out *model.NavigationOutcome, stage Stage, start time.Time) {
	out.Timings = append(out.Timings, model.StageTiming{
		Stage:     stage.String(),
		ElapsedMs: time.Since(start).Milliseconds(),
	})
}

// fail finalizes a run as failed, preferring the stage recorded in the
// error over the stage the pipeline thought it was in.
func (n *Navigator) fail(out *model.NavigationOutcome, stage Stage, err error) model.NavigationOutcome {
	var ne *NavError
	if errors.As(err, &ne) {
		stage = ne.Stage
	}
	out.Status = model.StatusFailed
	out.Stage = stage.String()
	out.Error = err.Error()
	out.ErrorKind = KindName(err)
	n.log.Warn("navigation failed",
		zap.String("stage", out.Stage),
		zap.String("kind", out.ErrorKind),
		zap.Error(err))
	return *out
}
