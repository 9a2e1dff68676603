package nav

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ShreyashPatil123/Panther-update-sub001/internal/logging"
)

// Confirmation reports whether the browser actually went to the typed
// URL, and which signal settled it first.
type Confirmation struct {
	Confirmed   bool
	ConfirmedBy string
	FinalURL    string
}

// Confirmer watches for the page load event and polls the page URL at
// the same time. Whichever signal lands first confirms the navigation;
// neither landing before the deadline downgrades the run instead of
// failing it.
type Confirmer struct {
	t   Timing
	log *logging.Logger
}

// NewConfirmer creates a confirmer.
func NewConfirmer(t Timing, log *logging.Logger) *Confirmer {
	if log == nil {
		log = logging.Nop()
	}
	return &Confirmer{t: t, log: log}
}

// Confirm blocks until the load event fires, the page URL contains the
// expected host, or ctx expires. On timeout it returns the last URL the
// poll observed with an unconfirmed error; the caller decides whether
// that URL is plausible enough for a partial outcome.
func (c *Confirmer) Confirm(ctx context.Context, tab Tab, url string) (Confirmation, error) {
	needle := URLNeedle(url)

	loadCtx, cancelLoad := context.WithCancel(ctx)
	defer cancelLoad()
	loadCh := make(chan error, 1)
	go func() { loadCh <- tab.WaitForLoad(loadCtx) }()

	ticker := time.NewTicker(c.t.ConfirmPoll())
	defer ticker.Stop()

	var lastURL string
	for {
		select {
		case err := <-loadCh:
			if err == nil {
				if cur, curErr := tab.CurrentURL(ctx); curErr == nil {
					lastURL = cur
				}
				c.log.Debug("navigation confirmed", zap.String("by", "load-event"), zap.String("url", lastURL))
				return Confirmation{Confirmed: true, ConfirmedBy: "load-event", FinalURL: lastURL}, nil
			}
			// Load watcher died; the URL poll carries on until the deadline.
			loadCh = nil

		case <-ticker.C:
			cur, err := tab.CurrentURL(ctx)
			if err != nil {
				continue
			}
			lastURL = cur
			if needle != "" && URLContains(cur, needle) {
				c.log.Debug("navigation confirmed", zap.String("by", "url-match"), zap.String("url", cur))
				return Confirmation{Confirmed: true, ConfirmedBy: "url-match", FinalURL: cur}, nil
			}

		case <-ctx.Done():
			return Confirmation{FinalURL: lastURL},
				wrapErr(ErrUnconfirmed, StageConfirming, fmt.Errorf("no load event or url match before deadline"))
		}
	}
}

// URLNeedle reduces a URL to the host fragment used for matching:
// scheme and leading www stripped, path dropped, lowercased.
func URLNeedle(url string) string {
	s := normalizeURL(url)
	if i := strings.IndexAny(s, "/?#"); i >= 0 {
		s = s[:i]
	}
	return s
}

// URLContains reports whether current contains the needle after both
// sides drop scheme, leading www, and case.
func URLContains(current, needle string) bool {
	if needle == "" {
		return false
	}
	return strings.Contains(normalizeURL(current), normalizeURL(needle))
}

func normalizeURL(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "http://")
	s = strings.TrimPrefix(s, "https://")
	s = strings.TrimPrefix(s, "www.")
	return s
}
