package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/cdproto/target"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/ShreyashPatil123/Panther-update-sub001/internal/logging"
	"github.com/ShreyashPatil123/Panther-update-sub001/internal/platform"
)

// Page is an attached page target. All operations accept a context whose
// deadline and cancellation are honored even though the underlying
// protocol work runs on the session's context tree.
type Page struct {
	id     target.ID
	ctx    context.Context
	cancel context.CancelFunc
	sess   *Session
	log    *logging.Logger
}

// TargetID returns the protocol identifier of this page's target.
func (p *Page) TargetID() string {
	return string(p.id)
}

// Close detaches from the target. The tab keeps running.
func (p *Page) Close() {
	if p.cancel != nil {
		p.cancel()
	}
}

// Eval runs a script and discards its result.
func (p *Page) Eval(ctx context.Context, js string) error {
	return p.run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		_, exp, err := runtime.Evaluate(js).Do(ctx)
		if err != nil {
			return err
		}
		if exp != nil {
			return exp
		}
		return nil
	}))
}

// EvalString runs a script that evaluates to a string.
func (p *Page) EvalString(ctx context.Context, js string) (string, error) {
	var out string
	if err := p.run(ctx, chromedp.Evaluate(js, &out)); err != nil {
		return "", err
	}
	return out, nil
}

// PlantMarker writes marker into the document title so the OS window
// becomes locatable, and returns the previous title for later restore.
func (p *Page) PlantMarker(ctx context.Context, marker string) (string, error) {
	js := fmt.Sprintf(`(() => { const t = document.title; document.title = %q; return t; })()`, marker)
	prev, err := p.EvalString(ctx, js)
	if err != nil {
		return "", fmt.Errorf("plant marker: %w", err)
	}
	return prev, nil
}

// RestoreTitle puts a previously captured title back. Best effort.
func (p *Page) RestoreTitle(ctx context.Context, title string) error {
	return p.Eval(ctx, fmt.Sprintf(`document.title = %q`, title))
}

// Title reports the document title without touching it.
func (p *Page) Title(ctx context.Context) (string, error) {
	return p.EvalString(ctx, `document.title`)
}

// BringToFront activates the tab at the browser level, then asks the page
// itself to come forward.
func (p *Page) BringToFront(ctx context.Context) error {
	if p.sess != nil && p.id != "" {
		if err := p.sess.activateTarget(ctx, p.id); err != nil {
			p.log.Debug("activate target", zap.String("target", string(p.id)), zap.Error(err))
		}
	}
	return p.run(ctx, page.BringToFront())
}

// FocusBody hands script-level focus to the document and clicks the body,
// the trivial interaction that makes the browser treat the page as the
// user's current input target.
func (p *Page) FocusBody(ctx context.Context) error {
	if err := p.Eval(ctx, `window.focus()`); err != nil {
		return err
	}
	return p.run(ctx, chromedp.Click("body", chromedp.ByQuery))
}

// CurrentURL reports the page's location.
func (p *Page) CurrentURL(ctx context.Context) (string, error) {
	var url string
	if err := p.run(ctx, chromedp.Location(&url)); err != nil {
		return "", err
	}
	return url, nil
}

// WaitForLoad blocks until the page fires its load event or ctx ends.
// The event may predate the listener, so document.readyState is polled as
// the tiebreaker.
func (p *Page) WaitForLoad(ctx context.Context) error {
	fired := make(chan struct{}, 1)
	lctx, lcancel := context.WithCancel(p.ctx)
	defer lcancel()
	chromedp.ListenTarget(lctx, func(ev interface{}) {
		if _, ok := ev.(*page.EventLoadEventFired); ok {
			select {
			case fired <- struct{}{}:
			default:
			}
		}
	})

	ticker := time.NewTicker(150 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-fired:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			var state string
			if err := p.run(ctx, chromedp.Evaluate(`document.readyState`, &state)); err != nil {
				continue
			}
			if state == "complete" {
				return nil
			}
		}
	}
}

// Navigate drives the protocol-level navigation. Not used by the injection
// pipeline (that is the path being bypassed); kept for diagnostics and for
// opening fresh tabs.
func (p *Page) Navigate(ctx context.Context, url string) error {
	return p.run(ctx, chromedp.Navigate(url))
}

// Screenshot captures the visible viewport as PNG.
func (p *Page) Screenshot(ctx context.Context) ([]byte, error) {
	var buf []byte
	if err := p.run(ctx, chromedp.CaptureScreenshot(&buf)); err != nil {
		return nil, err
	}
	return buf, nil
}

// Keys returns a protocol-level keystroke backend bound to ctx.
func (p *Page) Keys(ctx context.Context) platform.Inputter {
	return &Keyboard{p: p, ctx: ctx}
}

// run executes actions on the page's protocol context while honoring the
// caller's deadline and cancellation.
func (p *Page) run(ctx context.Context, actions ...chromedp.Action) error {
	runCtx, cancel := context.WithCancel(p.ctx)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()
	if dl, ok := ctx.Deadline(); ok {
		var dcancel context.CancelFunc
		runCtx, dcancel = context.WithDeadline(runCtx, dl)
		defer dcancel()
	}

	if err := chromedp.Run(runCtx, actions...); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	return nil
}
