package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/cask-games/marquee/pkg/api/handlers"
	"github.com/cask-games/marquee/pkg/api/middleware"
	"github.com/cask-games/marquee/pkg/log"
	"github.com/gorilla/mux"
)

type ShellServer struct {
	server *http.Server
	tls    *TLSConfig
}

type TLSConfig struct {
	CertFile string
	KeyFile  string
}

type NewShellServerOptions struct {
	Addr  string
	TLS   *TLSConfig
	Shell handlers.Shell
}

// NewShellServer creates a new http.Server exposing the shell's controls
// and the embedded surface endpoints.
func NewShellServer(opts NewShellServerOptions) *ShellServer {
	r := mux.NewRouter()
	r.Use(middleware.NewLoggingMiddleware())

	r.HandleFunc("/api/theme/toggle", handlers.HandleToggleTheme(opts.Shell)).Methods(http.MethodPost)
	r.HandleFunc("/api/onboarding/confirm", handlers.HandleConfirmOnboarding(opts.Shell)).Methods(http.MethodPost)
	r.HandleFunc("/api/variants/{variant}", handlers.HandleSelectVariant(opts.Shell)).Methods(http.MethodPost)
	r.HandleFunc("/api/status", handlers.HandleStatus(opts.Shell)).Methods(http.MethodGet)
	r.HandleFunc("/surface", handlers.HandleSurface(opts.Shell)).Methods(http.MethodGet)
	r.HandleFunc("/surface/channel", handlers.HandleSurfaceChannel(opts.Shell)).Methods(http.MethodGet)

	server := &http.Server{
		Addr:    opts.Addr,
		Handler: r,
	}
	return &ShellServer{
		server: server,
		tls:    opts.TLS,
	}
}

// Router returns the configured router, for tests.
func (s *ShellServer) Router() http.Handler {
	return s.server.Handler
}

// Start starts the ShellServer
func (s *ShellServer) Start() {
	var listenAndServe func() error
	if s.tls != nil {
		log.Info("Shell server listening on %s with TLS", s.server.Addr)
		listenAndServe = func() error {
			return s.server.ListenAndServeTLS(s.tls.CertFile, s.tls.KeyFile)
		}
	} else {
		log.Info("Shell server listening on %s", s.server.Addr)
		listenAndServe = s.server.ListenAndServe
	}
	if err := listenAndServe(); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			log.Info("Shell server closed")
			return
		}
		log.Error("Shell server error: %v", err)
	}
}

// Stop stops the ShellServer
func (s *ShellServer) Stop(ctx context.Context) error {
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down server: %v", err)
	}
	return nil
}
