// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package metrics serves Prometheus metrics over HTTP.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/ChainSafe/parachain-scheduler/internal/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var logger log.LeveledLogger = log.NewFromGlobal(log.AddContext("pkg", "metrics"))

var errServerNotStarted = errors.New("metrics server not started")

// Server is a metrics http server
type Server struct {
	address         string
	shutdownTimeout time.Duration
	httpServer      *http.Server
	listener        net.Listener
	done            chan error
}

// Option is a functional option for the metrics server.
type Option func(s *Server)

// ShutdownTimeout sets the time given to the server to shut down
// gracefully on Stop. It defaults to 3 seconds.
func ShutdownTimeout(timeout time.Duration) Option {
	return func(s *Server) {
		s.shutdownTimeout = timeout
	}
}

// NewServer is a constructor for metrics server serving the
// metrics gathered by the gatherer on the /metrics path.
func NewServer(address string, gatherer prometheus.Gatherer, options ...Option) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{
		ErrorHandling: promhttp.ContinueOnError,
	}))

	const readTimeout, readHeaderTimeout = 10 * time.Second, time.Second
	s := &Server{
		address:         address,
		shutdownTimeout: 3 * time.Second,
		httpServer: &http.Server{
			Handler:           mux,
			ReadTimeout:       readTimeout,
			ReadHeaderTimeout: readHeaderTimeout,
		},
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// Start listens on the server address and serves the metrics
// in the background. It returns once the server is listening.
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.address)
	if err != nil {
		return fmt.Errorf("listening: %w", err)
	}
	s.listener = listener
	s.done = make(chan error, 1)

	go func() {
		err := s.httpServer.Serve(listener)
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		s.done <- err
	}()

	logger.Infof("metrics available at http://%s/metrics", s.Address())
	return nil
}

// Address returns the address the metrics server listens on,
// or the address configured if it is not started.
func (s *Server) Address() string {
	if s.listener == nil {
		return s.address
	}
	return s.listener.Addr().String()
}

// Stop shuts down the metrics server, waiting for the
// requests in flight for at most the shutdown timeout.
func (s *Server) Stop() error {
	if s.done == nil {
		return errServerNotStarted
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	shutdownErr := s.httpServer.Shutdown(ctx)

	serveErr := <-s.done
	switch {
	case shutdownErr != nil:
		return fmt.Errorf("shutting down: %w", shutdownErr)
	case serveErr != nil:
		return fmt.Errorf("serving: %w", serveErr)
	}
	return nil
}
