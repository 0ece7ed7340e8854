package app

import (
	"context"
	stderrors "errors"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/olusolaa/reqlog/internal/config"
	"github.com/olusolaa/reqlog/internal/core/ports"
	"github.com/olusolaa/reqlog/internal/errors"
)

// Application serves a demo handler wrapped in the request logger.
type Application struct {
	Config  *config.Config
	Logger  ports.Logger
	Handler http.Handler
}

func NewApplication(cfg *config.Config, logger ports.Logger, handler http.Handler) *Application {
	return &Application{
		Config:  cfg,
		Logger:  logger,
		Handler: handler,
	}
}

// Run listens on the configured address until ctx is cancelled, then shuts
// the server down within the configured timeout.
func (a *Application) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.Config.Server.Addr)
	if err != nil {
		return errors.WrapUserFacing(err, errors.CodeServerError, "cannot listen on "+a.Config.Server.Addr, "Choose a free address with --addr.")
	}
	return a.Serve(ctx, ln)
}

func (a *Application) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           a.Handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.Logger.Infof(ctx, "Listening on %s", ln.Addr())
		if err := srv.Serve(ln); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, errors.CodeServerError, "http server failed")
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
		defer cancel()
		a.Logger.Infof(ctx, "Shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return errors.Wrap(err, errors.CodeServerError, "graceful shutdown failed")
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		a.Logger.Errorf(ctx, err, "Server stopped with error")
		return err
	}
	a.Logger.Infof(ctx, "Server stopped")
	return nil
}
