package model

// NavStatus classifies how a navigation pass ended.
type NavStatus string

const (
	// StatusSuccess: navigation confirmed (load event or URL match).
	StatusSuccess NavStatus = "success"
	// StatusPartial: injection completed but confirmation did not arrive,
	// or focus was never verifiably acquired. The page may well be there.
	StatusPartial NavStatus = "partial"
	// StatusFailed: a fatal stage error ended the pass early.
	StatusFailed NavStatus = "failed"
)

// AttemptResult records a single focus-strategy attempt, in rank order.
type AttemptResult struct {
	Strategy  string `yaml:"strategy"        json:"strategy"`
	OK        bool   `yaml:"ok"              json:"ok"`
	Error     string `yaml:"error,omitempty" json:"error,omitempty"`
	ElapsedMs int64  `yaml:"elapsed_ms"      json:"elapsed_ms"`
}

// StageTiming is the wall-clock cost of one orchestrator stage.
type StageTiming struct {
	Stage     string `yaml:"stage"      json:"stage"`
	ElapsedMs int64  `yaml:"elapsed_ms" json:"elapsed_ms"`
}

// NavigationOutcome is the terminal report of one navigation pass. Every
// pass produces exactly one outcome; failures are embedded here rather
// than surfaced as bare errors.
type NavigationOutcome struct {
	Status        NavStatus       `yaml:"status"                   json:"status"`
	URL           string          `yaml:"url"                      json:"url"`
	FinalURL      string          `yaml:"final_url,omitempty"      json:"final_url,omitempty"`
	Confirmed     bool            `yaml:"confirmed"                json:"confirmed"`
	ConfirmedBy   string          `yaml:"confirmed_by,omitempty"   json:"confirmed_by,omitempty"`
	Marker        string          `yaml:"marker,omitempty"         json:"marker,omitempty"`
	Window        *Window         `yaml:"window,omitempty"         json:"window,omitempty"`
	FocusAcquired bool            `yaml:"focus_acquired"           json:"focus_acquired"`
	FocusStrategy string          `yaml:"focus_strategy,omitempty" json:"focus_strategy,omitempty"`
	Backend       string          `yaml:"backend,omitempty"        json:"backend,omitempty"`
	Attempts      []AttemptResult `yaml:"attempts,omitempty"       json:"attempts,omitempty"`
	SkippedChars  []string        `yaml:"skipped_chars,omitempty"  json:"skipped_chars,omitempty"`
	Timings       []StageTiming   `yaml:"timings,omitempty"        json:"timings,omitempty"`
	Stage         string          `yaml:"stage,omitempty"          json:"stage,omitempty"`
	Error         string          `yaml:"error,omitempty"          json:"error,omitempty"`
	ErrorKind     string          `yaml:"error_kind,omitempty"     json:"error_kind,omitempty"`
}
