package server

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"gopkg.in/yaml.v3"

	"github.com/ShreyashPatil123/Panther-update-sub001/internal/browser"
	"github.com/ShreyashPatil123/Panther-update-sub001/internal/model"
	"github.com/ShreyashPatil123/Panther-update-sub001/internal/nav"
	"github.com/ShreyashPatil123/Panther-update-sub001/internal/platform"
	"github.com/ShreyashPatil123/Panther-update-sub001/internal/version"
)

// focusReport is the YAML payload of the focus tool.
type focusReport struct {
	OK       bool                  `yaml:"ok"`
	Window   model.Window          `yaml:"window"`
	Strategy string                `yaml:"strategy,omitempty"`
	Attempts []model.AttemptResult `yaml:"attempts"`
}

// statusReport is the YAML payload of the status tool.
type statusReport struct {
	Version   string              `yaml:"version"`
	Transport string              `yaml:"transport"`
	Endpoint  string              `yaml:"endpoint"`
	Sessions  int                 `yaml:"sessions"`
	Native    bool                `yaml:"native_input"`
	Metrics   nav.MetricsSnapshot `yaml:"metrics"`
}

func (s *Server) handleNavigate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	url := stringParam(params, "url", "")
	if url == "" {
		return mcp.NewToolResultError("url parameter is required"), nil
	}

	runCfg := s.cfg.Nav
	endpoint := stringParam(params, "endpoint", runCfg.Endpoint)
	runCfg.Endpoint = endpoint
	if engine := stringParam(params, "search-engine", ""); engine != "" {
		runCfg.SearchEngine = engine
	}
	if boolParam(params, "no-plant", false) {
		runCfg.PlantMarker = false
	}
	if backendStr := stringParam(params, "backend", ""); backendStr != "" {
		backend, err := nav.ParseBackend(backendStr)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		runCfg.Plan = runCfg.Plan.WithBackend(backend)
	}

	session, err := s.sessions.Acquire(ctx, endpoint)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	tab, err := pickTab(ctx, session, params)
	if err != nil {
		// The cached attachment may be dead; re-dial on the next call.
		s.sessions.Invalidate(endpoint)
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.inputMu.Lock()
	defer s.inputMu.Unlock()

	navigator := nav.NewNavigator(runCfg, s.provider, s.metrics, s.log)
	defer navigator.Close()

	var timeout time.Duration
	if sec := intParam(params, "timeout", 0); sec > 0 {
		timeout = time.Duration(sec) * time.Second
	}

	outcome := navigator.Navigate(ctx, nav.Request{
		URL:     url,
		Tab:     tab,
		Marker:  stringParam(params, "marker", ""),
		Timeout: timeout,
	})

	b, err := yaml.Marshal(outcome)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal outcome: %v", err)), nil
	}
	if outcome.Status == model.StatusFailed {
		return mcp.NewToolResultError(string(b)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

// pickTab resolves which page a navigate call drives.
func pickTab(ctx context.Context, session *browser.Session, params map[string]interface{}) (nav.Tab, error) {
	if boolParam(params, "new-page", false) {
		return session.NewPage(ctx)
	}
	if substr := stringParam(params, "page-url", ""); substr != "" {
		return session.PageByURL(ctx, substr)
	}
	return session.ActivePage(ctx)
}

func (s *Server) handleWindows(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()

	if s.provider == nil || s.provider.WindowManager == nil {
		return mcp.NewToolResultError(platform.ErrUnsupported.Error()), nil
	}

	if boolParam(params, "foreground", false) {
		win, err := s.provider.WindowManager.ForegroundWindow()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		b, _ := yaml.Marshal(win)
		return mcp.NewToolResultText(string(b)), nil
	}

	windows, err := s.provider.WindowManager.ListWindows(platform.ListOptions{
		Title: stringParam(params, "title", ""),
		PID:   intParam(params, "pid", 0),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	b, _ := yaml.Marshal(windows)
	return mcp.NewToolResultText(string(b)), nil
}

func (s *Server) handleFocus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	title := stringParam(params, "title", "")
	if title == "" {
		return mcp.NewToolResultError("title parameter is required"), nil
	}
	if s.provider == nil || s.provider.WindowManager == nil {
		return mcp.NewToolResultError(platform.ErrUnsupported.Error()), nil
	}

	s.inputMu.Lock()
	defer s.inputMu.Unlock()

	locator := nav.NewLocator(s.provider.WindowManager, s.cfg.Nav.Timing, s.log)
	win, err := locator.Locate(ctx, title)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	// The in-page strategy only runs when the caller names an endpoint;
	// the OS strategies need no browser attachment.
	var tab nav.Tab
	if endpoint := stringParam(params, "endpoint", ""); endpoint != "" {
		if session, err := s.sessions.Acquire(ctx, endpoint); err == nil {
			if page, err := session.ActivePage(ctx); err == nil {
				tab = page
			}
		}
	}

	chain := nav.NewFocusChain(s.provider, s.cfg.Nav.Timing, s.log)
	res := chain.Acquire(ctx, s.cfg.Nav.Plan, win, tab)

	report := focusReport{
		OK:       res.Acquired,
		Window:   win,
		Strategy: string(res.Strategy),
		Attempts: res.Attempts,
	}
	b, _ := yaml.Marshal(report)
	if !res.Acquired {
		return mcp.NewToolResultError(string(b)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

func (s *Server) handleStatus(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	report := statusReport{
		Version:   version.Version,
		Transport: s.cfg.Transport,
		Endpoint:  s.cfg.Nav.Endpoint,
		Sessions:  s.sessions.Len(),
		Native:    s.provider != nil,
		Metrics:   s.metrics.Snapshot(),
	}
	b, err := yaml.Marshal(report)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

// Parameter extraction helpers for tool argument maps

func stringParam(params map[string]interface{}, key, defaultVal string) string {
	if v, ok := params[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
		// Handle numeric values that JSON may parse as int/float
		return fmt.Sprintf("%v", v)
	}
	return defaultVal
}

func intParam(params map[string]interface{}, key string, defaultVal int) int {
	if v, ok := params[key]; ok {
		switch n := v.(type) {
		case int:
			return n
		case float64:
			return int(n)
		case int64:
			return int(n)
		}
	}
	return defaultVal
}

func boolParam(params map[string]interface{}, key string, defaultVal bool) bool {
	if v, ok := params[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return defaultVal
}
