// Package mcp exposes layer-name previews and audits to MCP clients over stdio.
package mcp

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"

	"github.com/mvp-joe/layerlint/internal/config"
	"github.com/mvp-joe/layerlint/internal/naming"
)

// ServerConfig configures the MCP server.
type ServerConfig struct {
	// RootDir bounds which documents tools may read.
	RootDir string
	Config  *config.Config
	// Styles is optional.
	Styles    naming.StyleResolver
	CacheSize int
	Version   string
}

// Server manages the MCP server lifecycle.
type Server struct {
	mcp  *server.MCPServer
	docs *DocumentCache
}

// NewServer creates a server with the preview and audit tools registered.
func NewServer(cfg *ServerConfig) (*Server, error) {
	if cfg == nil || cfg.Config == nil {
		return nil, fmt.Errorf("server configuration is required")
	}
	version := cfg.Version
	if version == "" {
		version = "dev"
	}

	docs, err := NewDocumentCache(cfg.CacheSize)
	if err != nil {
		return nil, err
	}

	mcpServer := server.NewMCPServer(
		"layerlint-mcp",
		version,
		server.WithToolCapabilities(true),
	)
	deps := &toolDeps{
		rootDir: cfg.RootDir,
		cfg:     cfg.Config,
		docs:    docs,
		styles:  cfg.Styles,
	}
	AddPreviewTool(mcpServer, deps)
	AddAuditTool(mcpServer, deps)

	return &Server{mcp: mcpServer, docs: docs}, nil
}

// Serve starts the MCP server on stdio and blocks until shutdown.
func (s *Server) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting MCP server on stdio...")
		if err := server.ServeStdio(s.mcp); err != nil {
			errCh <- fmt.Errorf("MCP server error: %w", err)
		}
	}()

	select {
	case <-sigCh:
		log.Printf("Received shutdown signal, stopping gracefully...")
		return nil
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
