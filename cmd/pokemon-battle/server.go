package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rushikesh-shinde-pyd/PokemonBattle/internal/logging"
	"github.com/rushikesh-shinde-pyd/PokemonBattle/internal/service"
)

const shutdownTimeout = 10 * time.Second

// runServer serves until SIGINT/SIGTERM, then stops accepting requests and
// lets in-flight battles commit.
func runServer(addr string, h http.Handler, runner *service.Runner) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logging.Info("Shutting down", nil)
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		logging.Error("server shutdown failed", err, nil)
	}
	runner.Wait()
	return nil
}
