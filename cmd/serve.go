package cmd

import (
	"fmt"
	"time"

	"github.com/ShreyashPatil123/Panther-update-sub001/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an MCP server exposing navigation tools",
	Long: `Start a Model Context Protocol (MCP) server that exposes the navigation
pipeline as tools: navigate, windows, focus, status. AI agents can call
tools directly without shell overhead.

Supported transports:
  stdio             Standard I/O (default, for MCP clients)
  streamable-http   Streamable HTTP transport (for remote agents)

Examples:
  panther-nav serve
  panther-nav serve --transport streamable-http --port 8080
  panther-nav serve --session-ttl 0`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("transport", "stdio", "Transport: stdio, streamable-http")
	serveCmd.Flags().Int("port", 8080, "HTTP port for streamable-http transport")
	serveCmd.Flags().Int("session-ttl", 60, "Seconds an idle browser attachment is reused (0 to re-attach per call)")
}

func runServe(cmd *cobra.Command, args []string) error {
	transport, _ := cmd.Flags().GetString("transport")
	port, _ := cmd.Flags().GetInt("port")
	ttlSec, _ := cmd.Flags().GetInt("session-ttl")

	navCfg, err := loadNavConfig(cmd)
	if err != nil {
		return err
	}

	cfg := server.Config{
		Transport:  transport,
		Port:       port,
		SessionTTL: time.Duration(ttlSec) * time.Second,
		Nav:        navCfg,
	}

	srv, err := server.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}
	defer srv.Close()

	return srv.Serve()
}
