package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

// State is a phase of the server lifecycle.
type State int

// Lifecycle states in the order a server passes through them.
const (
	StateDisconnected State = iota
	StateConnecting
	StateServing
	StateShuttingDown
	StateStopped
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateServing:
		return "serving"
	case StateShuttingDown:
		return "shutting_down"
	case StateStopped:
		return "stopped"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// lifecycle tracks and logs state transitions. It is safe for concurrent use.
type lifecycle struct {
	mu      sync.Mutex
	state   State
	history []State
	logger  *slog.Logger
}

func newLifecycle(logger *slog.Logger) *lifecycle {
	return &lifecycle{
		state:   StateDisconnected,
		history: []State{StateDisconnected},
		logger:  logger.With(slog.String("component", "lifecycle")),
	}
}

func (l *lifecycle) transition(to State) {
	l.mu.Lock()
	from := l.state
	l.state = to
	l.history = append(l.history, to)
	l.mu.Unlock()

	l.logger.Info("lifecycle transition",
		slog.String("from", from.String()),
		slog.String("to", to.String()))
}

// State returns the current state.
func (l *lifecycle) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// History returns every state entered so far, oldest first.
func (l *lifecycle) History() []State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]State(nil), l.history...)
}

// startHTTPServer starts the HTTP server with graceful shutdown support.
// It blocks until ctx is cancelled, a shutdown signal arrives or the
// listener fails, then drains in-flight requests within the configured
// shutdown timeout and closes storage. A listener failure is returned.
func (app *application) startHTTPServer(ctx context.Context, router http.Handler) error {
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", app.config.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ln, err := net.Listen("tcp", server.Addr)
	if err != nil {
		app.lifecycle.transition(StateShuttingDown)
		app.cleanup(context.Background())
		app.lifecycle.transition(StateStopped)
		return fmt.Errorf("failed to listen on %s: %w", server.Addr, err)
	}

	app.mu.Lock()
	app.addr = ln.Addr()
	app.mu.Unlock()

	signalCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		app.logger.Info("starting server", slog.String("addr", ln.Addr().String()))
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	app.lifecycle.transition(StateServing)

	var runErr error
	select {
	case <-signalCtx.Done():
		app.logger.Info("shutdown requested")
	case err, ok := <-serveErr:
		if ok {
			app.logger.Error("server failed", slog.String("error", err.Error()))
			runErr = err
		}
	}

	app.lifecycle.transition(StateShuttingDown)

	timeout := app.config.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		app.logger.Error("server shutdown did not complete", slog.String("error", err.Error()))
	}

	app.cleanup(shutdownCtx)
	app.lifecycle.transition(StateStopped)
	app.logger.Info("server shutdown completed")

	return runErr
}
