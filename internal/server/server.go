package server

import (
	"fmt"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/ShreyashPatil123/Panther-update-sub001/internal/logging"
	"github.com/ShreyashPatil123/Panther-update-sub001/internal/nav"
	"github.com/ShreyashPatil123/Panther-update-sub001/internal/platform"
	"github.com/ShreyashPatil123/Panther-update-sub001/internal/version"
)

// Config holds MCP server configuration.
type Config struct {
	Transport  string
	Port       int
	SessionTTL time.Duration
	Nav        nav.Config
}

// Server exposes the navigation pipeline as MCP tools. Browser
// attachments are cached per endpoint and reused across tool calls.
type Server struct {
	cfg      Config
	provider *platform.Provider
	sessions *SessionCache
	metrics  *nav.Metrics
	log      *logging.Logger

	// inputMu serializes tool calls that touch the OS foreground and
	// input queue; concurrent callers would interleave keystrokes.
	inputMu sync.Mutex

	mcp *mcpserver.MCPServer
}

// New creates and configures an MCP server with the navigation tools.
// A missing native backend is tolerated: the protocol backend and the
// read-only tools still work.
func New(cfg Config, log *logging.Logger) (*Server, error) {
	if log == nil {
		log = logging.Nop()
	}

	provider, err := platform.NewProvider()
	if err != nil {
		log.Warn("native input unavailable", zap.Error(err))
		provider = nil
	}

	s := &Server{
		cfg:      cfg,
		provider: provider,
		sessions: NewSessionCache(cfg.SessionTTL, log),
		metrics:  nav.NewMetrics(),
		log:      log,
	}

	s.mcp = mcpserver.NewMCPServer(
		"panther-nav",
		version.Version,
	)

	s.registerTools()
	return s, nil
}

// Serve starts the MCP server with the configured transport and blocks.
func (s *Server) Serve() error {
	switch s.cfg.Transport {
	case "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(fmt.Sprintf(":%d", s.cfg.Port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", s.cfg.Transport)
	}
}

// Close releases every cached browser attachment.
func (s *Server) Close() {
	s.sessions.Close()
}

func (s *Server) registerTools() {
	// navigate
	s.mcp.AddTool(
		mcp.NewTool("navigate",
			mcp.WithDescription("Navigate a browser tab by focusing its OS window and typing the URL into the address bar. Input that is not URL-shaped becomes a search query. Returns the full outcome: status, focus attempts, confirmation, final URL."),
			mcp.WithString("url", mcp.Description("URL or search terms"), mcp.Required()),
			mcp.WithString("endpoint", mcp.Description("DevTools HTTP endpoint (default from server config)")),
			mcp.WithBoolean("new-page", mcp.Description("Open a fresh tab instead of the active one")),
			mcp.WithString("page-url", mcp.Description("Target the first page whose URL contains this substring")),
			mcp.WithNumber("timeout", mcp.Description("Confirmation deadline in seconds")),
			mcp.WithString("backend", mcp.Description("Keystroke backend: virtual-key, protocol")),
			mcp.WithString("marker", mcp.Description("Fixed tab marker instead of a generated one")),
			mcp.WithBoolean("no-plant", mcp.Description("Locate by the tab's existing title instead of planting a marker")),
			mcp.WithString("search-engine", mcp.Description("Engine for non-URL input (duckduckgo, google, bing, ...)")),
		),
		s.handleNavigate,
	)

	// windows
	s.mcp.AddTool(
		mcp.NewTool("windows",
			mcp.WithDescription("List visible top-level OS windows: handle, title, PID, bounds, foreground flag"),
			mcp.WithString("title", mcp.Description("Filter by title substring (case-insensitive)")),
			mcp.WithNumber("pid", mcp.Description("Filter by process ID")),
			mcp.WithBoolean("foreground", mcp.Description("Show only the current foreground window")),
		),
		s.handleWindows,
	)

	// focus
	s.mcp.AddTool(
		mcp.NewTool("focus",
			mcp.WithDescription("Run the focus chain against a window found by title substring; reports every strategy attempt"),
			mcp.WithString("title", mcp.Description("Window title substring"), mcp.Required()),
			mcp.WithString("endpoint", mcp.Description("DevTools endpoint for the in-page strategy (optional)")),
		),
		s.handleFocus,
	)

	// status
	s.mcp.AddTool(
		mcp.NewTool("status",
			mcp.WithDescription("Report server version, cached sessions, and navigation counters"),
		),
		s.handleStatus,
	)
}
