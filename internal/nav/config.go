package nav

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Timing holds every delay and deadline the pipeline uses, in
// milliseconds. Each state and each focus strategy is bounded
// independently, so the worst case is the sum of the parts.
type Timing struct {
	LocateTimeoutMs  int `yaml:"locate_timeout_ms"`
	LocateIntervalMs int `yaml:"locate_interval_ms"`

	FocusTimeoutMs     int `yaml:"focus_timeout_ms"` // per strategy, not per stage
	FocusVerifyDelayMs int `yaml:"focus_verify_delay_ms"`

	MarkerSettleMs int `yaml:"marker_settle_ms"`

	ChordHoldMs  int `yaml:"chord_hold_ms"`
	BarSettleMs  int `yaml:"bar_settle_ms"`
	KeyHoldMs    int `yaml:"key_hold_ms"`
	CharDelayMs  int `yaml:"char_delay_ms"`
	CharJitterMs int `yaml:"char_jitter_ms"`
	CommitWaitMs int `yaml:"commit_wait_ms"`

	ConfirmTimeoutMs int `yaml:"confirm_timeout_ms"`
	ConfirmPollMs    int `yaml:"confirm_poll_ms"`
}

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

func (t Timing) LocateTimeout() time.Duration   { return ms(t.LocateTimeoutMs) }
func (t Timing) LocateInterval() time.Duration  { return ms(t.LocateIntervalMs) }
func (t Timing) FocusTimeout() time.Duration    { return ms(t.FocusTimeoutMs) }
func (t Timing) FocusVerifyDelay() time.Duration { return ms(t.FocusVerifyDelayMs) }
func (t Timing) MarkerSettle() time.Duration    { return ms(t.MarkerSettleMs) }
func (t Timing) ChordHold() time.Duration       { return ms(t.ChordHoldMs) }
func (t Timing) BarSettle() time.Duration       { return ms(t.BarSettleMs) }
func (t Timing) KeyHold() time.Duration         { return ms(t.KeyHoldMs) }
func (t Timing) CharDelay() time.Duration       { return ms(t.CharDelayMs) }
func (t Timing) CharJitter() time.Duration      { return ms(t.CharJitterMs) }
func (t Timing) CommitWait() time.Duration      { return ms(t.CommitWaitMs) }
func (t Timing) ConfirmTimeout() time.Duration  { return ms(t.ConfirmTimeoutMs) }
func (t Timing) ConfirmPoll() time.Duration     { return ms(t.ConfirmPollMs) }

// MaxElapsed is the liveness bound for one run: every stage at its
// deadline plus every focus strategy at its deadline.
func (t Timing) MaxElapsed(steps int) time.Duration {
	return t.LocateTimeout() + time.Duration(steps)*t.FocusTimeout() + t.ConfirmTimeout()
}

// Config is the full runtime configuration for the navigator.
type Config struct {
	Endpoint string `yaml:"endpoint"`
	Timing   Timing `yaml:"timing"`
	Plan     Plan   `yaml:"plan"`

	// SearchEngine names the engine used when the input is not a URL.
	SearchEngine string            `yaml:"search_engine"`
	SearchURLs   map[string]string `yaml:"search_urls,omitempty"`

	SelectAll    bool `yaml:"select_all"`    // Ctrl+A before typing to clear stale text
	PlantMarker  bool `yaml:"plant_marker"`  // retitle the tab before locating
	RestoreTitle bool `yaml:"restore_title"` // undo the marker after the run
}

// DefaultConfig returns the tuned defaults. Delays below roughly 20ms
// get dropped by the input queue on slower hosts, so the typing values
// stay conservative.
func DefaultConfig() Config {
	return Config{
		Endpoint: "http://127.0.0.1:9222",
		Timing: Timing{
			LocateTimeoutMs:    5000,
			LocateIntervalMs:   500,
			FocusTimeoutMs:     3000,
			FocusVerifyDelayMs: 150,
			MarkerSettleMs:     800,
			ChordHoldMs:        50,
			BarSettleMs:        300,
			KeyHoldMs:          20,
			CharDelayMs:        30,
			CharJitterMs:       15,
			CommitWaitMs:       100,
			ConfirmTimeoutMs:   5000,
			ConfirmPollMs:      250,
		},
		Plan:         DefaultPlan(),
		SearchEngine: "duckduckgo",
		SelectAll:    true,
		PlantMarker:  true,
		RestoreTitle: true,
	}
}

// LoadConfig reads a YAML file over the defaults. Fields absent from the
// file keep their default values. An empty path returns the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Plan.Validate(); err != nil {
		return cfg, fmt.Errorf("config plan: %w", err)
	}
	return cfg, nil
}

// searchURLs maps engine names to query templates. %s receives the
// query-escaped term.
var searchURLs = map[string]string{
	"duckduckgo": "https://duckduckgo.com/?q=%s",
	"google":     "https://www.google.com/search?q=%s",
	"bing":       "https://www.bing.com/search?q=%s",
	"youtube":    "https://www.youtube.com/results?search_query=%s",
	"github":     "https://github.com/search?q=%s",
	"wikipedia":  "https://en.wikipedia.org/wiki/Special:Search?search=%s",
}

// SearchURL builds the search URL for a term using the configured
// engine. Unknown engines fall back to duckduckgo.
func (c Config) SearchURL(term string) string {
	tmpl, ok := c.SearchURLs[strings.ToLower(c.SearchEngine)]
	if !ok {
		tmpl, ok = searchURLs[strings.ToLower(c.SearchEngine)]
	}
	if !ok {
		tmpl = searchURLs["duckduckgo"]
	}
	return fmt.Sprintf(tmpl, url.QueryEscape(term))
}

// NormalizeInput turns free-form input into a typeable URL. Input with a
// scheme passes through untouched. Bare hostnames get https prepended.
// Anything with spaces, or without a dot, becomes a search.
func (c Config) NormalizeInput(input string) (string, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return "", fmt.Errorf("empty url: %w", ErrInvalidArgument)
	}
	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return s, nil
	}
	if strings.ContainsAny(s, " \t") || !strings.Contains(s, ".") {
		return c.SearchURL(s), nil
	}
	return "https://" + s, nil
}
