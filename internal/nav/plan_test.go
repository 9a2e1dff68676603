package nav

import "testing"

func TestParseBackend_Valid(t *testing.T) {
	tests := []struct {
		in   string
		want Backend
	}{
		{"virtual-key", BackendVirtualKey},
		{"vk", BackendVirtualKey},
		{"native", BackendVirtualKey},
		{"protocol", BackendProtocol},
		{"cdp", BackendProtocol},
		{"Protocol", BackendProtocol},
	}
	for _, tt := range tests {
		got, err := ParseBackend(tt.in)
		if err != nil {
			t.Errorf("ParseBackend(%q): unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseBackend(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestParseBackend_Invalid(t *testing.T) {
	if _, err := ParseBackend("osascript"); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestParseStrategy_Valid(t *testing.T) {
	tests := []struct {
		in   string
		want Strategy
	}{
		{"page", StrategyPage},
		{"modifier-tap", StrategyModifierTap},
		{"modifier", StrategyModifierTap},
		{"shell-activate", StrategyShellActivate},
		{"shell", StrategyShellActivate},
		{"direct", StrategyDirect},
	}
	for _, tt := range tests {
		got, err := ParseStrategy(tt.in)
		if err != nil {
			t.Errorf("ParseStrategy(%q): unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseStrategy(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestParseStrategy_Invalid(t *testing.T) {
	if _, err := ParseStrategy("teleport"); err == nil {
		t.Error("expected error for unknown strategy")
	}
}

func TestDefaultPlan_RankOrder(t *testing.T) {
	p := DefaultPlan()
	if err := p.Validate(); err != nil {
		t.Fatalf("default plan invalid: %v", err)
	}

	want := []Strategy{StrategyPage, StrategyModifierTap, StrategyShellActivate, StrategyDirect}
	if len(p.Steps) != len(want) {
		t.Fatalf("expected %d steps, got %d", len(want), len(p.Steps))
	}
	for i, s := range want {
		if p.Steps[i].Focus != s {
			t.Errorf("step %d: expected %q, got %q", i, s, p.Steps[i].Focus)
		}
		if p.Steps[i].Backend != BackendVirtualKey {
			t.Errorf("step %d: expected virtual-key backend, got %q", i, p.Steps[i].Backend)
		}
	}
	if p.Fallback != BackendProtocol {
		t.Errorf("expected protocol fallback, got %q", p.Fallback)
	}
}

func TestPlan_WithBackend(t *testing.T) {
	p := DefaultPlan().WithBackend(BackendProtocol)
	for i, s := range p.Steps {
		if s.Backend != BackendProtocol {
			t.Errorf("step %d: expected protocol backend, got %q", i, s.Backend)
		}
	}
	if p.Fallback != BackendProtocol {
		t.Errorf("expected protocol fallback, got %q", p.Fallback)
	}
}

func TestPlan_ValidateRejectsUnknowns(t *testing.T) {
	p := Plan{Steps: []StrategyStep{{Focus: "teleport", Backend: BackendProtocol}}, Fallback: BackendProtocol}
	if err := p.Validate(); err == nil {
		t.Error("expected error for unknown strategy")
	}

	p = Plan{Steps: []StrategyStep{{Focus: StrategyPage, Backend: "osascript"}}, Fallback: BackendProtocol}
	if err := p.Validate(); err == nil {
		t.Error("expected error for unknown backend")
	}

	p = Plan{Fallback: BackendProtocol}
	if err := p.Validate(); err == nil {
		t.Error("expected error for empty plan")
	}
}
