package nav

import (
	"fmt"
	"strings"
)

// Backend selects which keystroke backend executes the injection.
type Backend string

const (
	// BackendVirtualKey emits OS-level key events through the native
	// provider. Reaches the real address bar; needs a native backend.
	BackendVirtualKey Backend = "virtual-key"
	// BackendProtocol dispatches the same virtual-key codes through the
	// browser protocol. Works anywhere but only reaches the page.
	BackendProtocol Backend = "protocol"
)

// ParseBackend converts a flag value to a Backend.
func ParseBackend(s string) (Backend, error) {
	switch strings.ToLower(s) {
	case "virtual-key", "vk", "native":
		return BackendVirtualKey, nil
	case "protocol", "cdp":
		return BackendProtocol, nil
	default:
		return "", fmt.Errorf("unknown backend: %q (expected virtual-key or protocol)", s)
	}
}

// Strategy names a focus-acquisition technique, in the chain's rank order.
type Strategy string

const (
	// StrategyPage asks the browser itself to come forward.
	StrategyPage Strategy = "page"
	// StrategyModifierTap holds a benign modifier while requesting
	// foreground, satisfying the recent-input heuristic.
	StrategyModifierTap Strategy = "modifier-tap"
	// StrategyShellActivate delegates activation-by-title to the OS shell.
	StrategyShellActivate Strategy = "shell-activate"
	// StrategyDirect is the last-resort direct foreground request.
	StrategyDirect Strategy = "direct"
)

// ParseStrategy converts a flag value to a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(s) {
	case "page":
		return StrategyPage, nil
	case "modifier-tap", "modifier":
		return StrategyModifierTap, nil
	case "shell-activate", "shell":
		return StrategyShellActivate, nil
	case "direct":
		return StrategyDirect, nil
	default:
		return "", fmt.Errorf("unknown focus strategy: %q (expected page, modifier-tap, shell-activate, or direct)", s)
	}
}

// StrategyStep pairs a focus strategy with the backend used if that
// strategy wins.
type StrategyStep struct {
	Focus   Strategy `yaml:"focus"`
	Backend Backend  `yaml:"backend"`
}

// Plan is the ranked strategy list for one pass plus the backend used
// when no strategy verifiably acquired focus. Immutable once built.
type Plan struct {
	Steps    []StrategyStep `yaml:"steps"`
	Fallback Backend        `yaml:"fallback"`
}

// DefaultPlan returns the standard four-step chain. Verified focus pairs
// with the native backend; the fallback is the protocol backend, because
// typing OS-level keys while focus is unverified would land in whatever
// window happens to be in front.
func DefaultPlan() Plan {
	return Plan{
		Steps: []StrategyStep{
			{Focus: StrategyPage, Backend: BackendVirtualKey},
			{Focus: StrategyModifierTap, Backend: BackendVirtualKey},
			{Focus: StrategyShellActivate, Backend: BackendVirtualKey},
			{Focus: StrategyDirect, Backend: BackendVirtualKey},
		},
		Fallback: BackendProtocol,
	}
}

// WithBackend returns a copy of the plan with every step and the fallback
// forced to one backend.
func (p Plan) WithBackend(b Backend) Plan {
	steps := make([]StrategyStep, len(p.Steps))
	for i, s := range p.Steps {
		steps[i] = StrategyStep{Focus: s.Focus, Backend: b}
	}
	return Plan{Steps: steps, Fallback: b}
}

// Validate rejects plans with unknown strategies or backends.
func (p Plan) Validate() error {
	if len(p.Steps) == 0 {
		return fmt.Errorf("plan has no steps")
	}
	for i, s := range p.Steps {
		if _, err := ParseStrategy(string(s.Focus)); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
		if _, err := ParseBackend(string(s.Backend)); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
	}
	if _, err := ParseBackend(string(p.Fallback)); err != nil {
		return fmt.Errorf("fallback: %w", err)
	}
	return nil
}
