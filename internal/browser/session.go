package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/target"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/ShreyashPatil123/Panther-update-sub001/internal/logging"
	"github.com/ShreyashPatil123/Panther-update-sub001/internal/model"
)

// DefaultEndpoint is where a locally started browser exposes its
// debugging interface.
const DefaultEndpoint = "http://127.0.0.1:9222"

// Session is an attachment to a running browser's debugging endpoint. It
// owns the allocator and browser contexts; pages borrow from it.
type Session struct {
	endpoint    string
	allocCtx    context.Context
	allocCancel context.CancelFunc
	browserCtx  context.Context
	browserStop context.CancelFunc
	log         *logging.Logger
}

// Attach connects to the browser behind endpoint. Accepts a bare
// host:port, an http(s) URL, or a full ws(s) debugger URL.
func Attach(ctx context.Context, endpoint string, log *logging.Logger) (*Session, error) {
	if log == nil {
		log = logging.Nop()
	}

	wsURL, err := resolveWebSocketURL(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("resolve debugger url for %q: %w", endpoint, err)
	}

	allocCtx, allocCancel := chromedp.NewRemoteAllocator(context.Background(), wsURL, chromedp.NoModifyURL)
	browserCtx, browserStop := chromedp.NewContext(allocCtx)

	s := &Session{
		endpoint:    endpoint,
		allocCtx:    allocCtx,
		allocCancel: allocCancel,
		browserCtx:  browserCtx,
		browserStop: browserStop,
		log:         log,
	}

	// Listing targets dials the browser connection without creating a
	// stray tab, so it doubles as the connectivity check.
	if _, err := s.targets(ctx); err != nil {
		s.Close()
		return nil, fmt.Errorf("attach to %q: %w", endpoint, err)
	}

	log.Debug("attached to browser", zap.String("endpoint", endpoint))
	return s, nil
}

// Endpoint returns the endpoint this session was attached with.
func (s *Session) Endpoint() string {
	return s.endpoint
}

// Pages returns the attachable page targets, in the browser's order. The
// target ActivePage would pick is flagged.
func (s *Session) Pages(ctx context.Context) ([]model.PageTarget, error) {
	infos, err := s.targets(ctx)
	if err != nil {
		return nil, err
	}
	active := pickActive(infos)
	pages := make([]model.PageTarget, 0, len(infos))
	for _, info := range infos {
		pages = append(pages, model.PageTarget{
			ID:     string(info.TargetID),
			Title:  info.Title,
			URL:    info.URL,
			Active: info.TargetID == active,
		})
	}
	return pages, nil
}

// ActivePage attaches to the most plausible current page: the first page
// target with real content, else the first page target.
func (s *Session) ActivePage(ctx context.Context) (*Page, error) {
	infos, err := s.targets(ctx)
	if err != nil {
		return nil, err
	}
	id := pickActive(infos)
	if id == "" {
		return nil, fmt.Errorf("browser has no page targets")
	}
	return s.attachPage(ctx, id)
}

// pickActive chooses the first target with real content, else the first
// target outright.
func pickActive(infos []*target.Info) target.ID {
	var first, content target.ID
	for _, info := range infos {
		if first == "" {
			first = info.TargetID
		}
		if content == "" && info.URL != "" && info.URL != "about:blank" {
			content = info.TargetID
		}
	}
	if content != "" {
		return content
	}
	return first
}

// PageByURL attaches to the first page whose URL or title contains the
// given substring.
func (s *Session) PageByURL(ctx context.Context, substr string) (*Page, error) {
	infos, err := s.targets(ctx)
	if err != nil {
		return nil, err
	}
	for _, info := range infos {
		if strings.Contains(info.URL, substr) || strings.Contains(info.Title, substr) {
			return s.attachPage(ctx, info.TargetID)
		}
	}
	return nil, fmt.Errorf("no page matches %q", substr)
}

// NewPage opens a fresh blank tab and attaches to it.
func (s *Session) NewPage(ctx context.Context) (*Page, error) {
	tabCtx, tabCancel := chromedp.NewContext(s.browserCtx)
	p := &Page{ctx: tabCtx, cancel: tabCancel, sess: s, log: s.log}
	if err := p.run(ctx, chromedp.Navigate("about:blank")); err != nil {
		tabCancel()
		return nil, fmt.Errorf("open new page: %w", err)
	}
	p.id = chromedp.FromContext(tabCtx).Target.TargetID
	return p, nil
}

// Close tears the session down. Pages attached through it become unusable;
// the browser itself keeps running.
func (s *Session) Close() {
	if s.browserStop != nil {
		s.browserStop()
	}
	if s.allocCancel != nil {
		s.allocCancel()
	}
}

func (s *Session) attachPage(ctx context.Context, id target.ID) (*Page, error) {
	tabCtx, tabCancel := chromedp.NewContext(s.browserCtx, chromedp.WithTargetID(id))
	p := &Page{id: id, ctx: tabCtx, cancel: tabCancel, sess: s, log: s.log}
	// A run with no actions performs the target attach.
	if err := p.run(ctx); err != nil {
		tabCancel()
		return nil, fmt.Errorf("attach page %s: %w", id, err)
	}
	return p, nil
}

func (s *Session) targets(ctx context.Context) ([]*target.Info, error) {
	type result struct {
		infos []*target.Info
		err   error
	}
	done := make(chan result, 1)
	go func() {
		infos, err := chromedp.Targets(s.browserCtx)
		done <- result{infos, err}
	}()
	select {
	case r := <-done:
		if r.err != nil {
			return nil, r.err
		}
		pages := r.infos[:0]
		for _, info := range r.infos {
			if info.Type == "page" {
				pages = append(pages, info)
			}
		}
		return pages, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// activateTarget raises the tab at the browser level. Runs on the browser
// connection because Target.activateTarget is a browser-scope command.
func (s *Session) activateTarget(ctx context.Context, id target.ID) error {
	c := chromedp.FromContext(s.browserCtx)
	if c == nil || c.Browser == nil {
		return fmt.Errorf("browser connection not established")
	}
	return target.ActivateTarget(id).Do(cdp.WithExecutor(ctx, c.Browser))
}

func resolveWebSocketURL(ctx context.Context, endpoint string) (string, error) {
	ep := strings.TrimSpace(endpoint)
	if ep == "" {
		ep = DefaultEndpoint
	}
	if strings.HasPrefix(ep, "ws://") || strings.HasPrefix(ep, "wss://") {
		return ep, nil
	}
	if !strings.HasPrefix(ep, "http://") && !strings.HasPrefix(ep, "https://") {
		ep = "http://" + ep
	}

	versionURL := strings.TrimSuffix(ep, "/") + "/json/version"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, versionURL, nil)
	if err != nil {
		return "", err
	}
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%s returned %s", versionURL, resp.Status)
	}

	var info struct {
		WebSocketDebuggerURL string `json:"webSocketDebuggerUrl"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return "", fmt.Errorf("decode %s: %w", versionURL, err)
	}
	if info.WebSocketDebuggerURL == "" {
		return "", fmt.Errorf("%s reported no webSocketDebuggerUrl", versionURL)
	}
	return info.WebSocketDebuggerURL, nil
}
