// Package server assembles the MCP server: tool registration, transport
// selection, and lifecycle management.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/matiasleandrokruk/deepscout/internal/infra/config"
	"github.com/matiasleandrokruk/deepscout/internal/infra/llm"
	"github.com/matiasleandrokruk/deepscout/internal/version"
)

// Config holds server transport configuration.
type Config struct {
	Transport string // config.TransportStdio (default) or config.TransportHTTP
	HTTPAddr  string // listen address, http transport only
}

// Server wraps the MCP server and the provider router.
type Server struct {
	mcp    *mcp.Server
	router *llm.Router
	log    *zap.Logger
	cfg    Config
}

// New creates a Server with both research tools registered.
func New(router *llm.Router, log *zap.Logger, cfg Config) *Server {
	s := &Server{
		router: router,
		log:    log,
		cfg:    cfg,
	}
	s.mcp = mcp.NewServer(&mcp.Implementation{
		Name:    "deepscout",
		Title:   "DeepScout research tools",
		Version: version.Version,
	}, nil)
	s.registerTools()
	return s
}

// Run serves MCP over the configured transport and blocks until the context
// is cancelled or the transport fails.
func (s *Server) Run(ctx context.Context) error {
	switch s.cfg.Transport {
	case "", config.TransportStdio:
		s.log.Info("starting MCP server", zap.String("transport", config.TransportStdio))
		return s.mcp.Run(ctx, &mcp.StdioTransport{})
	case config.TransportHTTP:
		return s.runHTTP(ctx)
	default:
		return fmt.Errorf("unknown transport %q (want %q or %q)",
			s.cfg.Transport, config.TransportStdio, config.TransportHTTP)
	}
}

// runHTTP serves the streamable-HTTP MCP endpoint on a chi router with a
// plain health probe next to it.
func (s *Server) runHTTP(ctx context.Context) error {
	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server { return s.mcp }, nil)

	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok")) //nolint:errcheck
	})
	r.Handle("/mcp", handler)
	r.Handle("/mcp/*", handler)

	httpSrv := &http.Server{
		Addr:    s.cfg.HTTPAddr,
		Handler: r,
		// No WriteTimeout: streamable HTTP responses can be long-lived.
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpSrv.ListenAndServe()
	}()
	s.log.Info("starting MCP server",
		zap.String("transport", config.TransportHTTP),
		zap.String("addr", s.cfg.HTTPAddr),
	)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.log.Info("shutting down MCP server")
		return httpSrv.Shutdown(shutdownCtx)
	}
}
