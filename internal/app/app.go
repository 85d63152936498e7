// Package app assembles the bibliotech auth service: marker and directory
// backends, the identity middleware and the guarded views.
package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"bibliotech-auth/internal/config"
)

// readHeaderTimeout caps how long a client may take to send request headers.
const readHeaderTimeout = 5 * time.Second

type App struct {
	httpServer *http.Server
	cleanup    func() error
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	router, cleanup, err := setupHTTP(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return &App{
		httpServer: &http.Server{
			Addr:              ":" + cfg.AppPort,
			Handler:           router,
			ReadHeaderTimeout: readHeaderTimeout,
		},
		cleanup: cleanup,
	}, nil
}

// Handler exposes the router, mainly for in-process tests.
func (a *App) Handler() http.Handler {
	return a.httpServer.Handler
}

// Run serves until Shutdown is called.
func (a *App) Run() error {
	err := a.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests, then closes the backends even if
// draining timed out.
func (a *App) Shutdown(ctx context.Context) error {
	err := a.httpServer.Shutdown(ctx)
	if a.cleanup != nil {
		err = errors.Join(err, a.cleanup())
	}
	return err
}
