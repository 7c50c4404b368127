/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package core implements the telemetry ingestion HTTP API: readings in,
// device listings, aggregate stats, and the carbon dashboard queries.
package core

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/carverauto/carbonscope/pkg/db"
	"github.com/carverauto/carbonscope/pkg/geo"
	srHttp "github.com/carverauto/carbonscope/pkg/http"
	"github.com/carverauto/carbonscope/pkg/logger"
)

const (
	defaultReadTimeout  = 10 * time.Second
	defaultWriteTimeout = 30 * time.Second
	defaultIdleTimeout  = 60 * time.Second
)

// Server is the ingestion API. Implements lifecycle.Service.
type Server struct {
	config  *Config
	store   db.Service
	locator geo.Locator
	router  *mux.Router
	logger  logger.Logger

	httpServer *http.Server
}

// NewServer wires the ingestion API over an existing store connection.
func NewServer(cfg *Config, store db.Service, locator geo.Locator, log logger.Logger) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if locator == nil {
		locator = geo.Disabled{}
	}

	s := &Server{
		config:  cfg,
		store:   store,
		locator: locator,
		router:  mux.NewRouter(),
		logger:  log,
	}

	s.setupRoutes()

	return s, nil
}

func (s *Server) setupRoutes() {
	s.router.Use(func(next http.Handler) http.Handler {
		return srHttp.CommonMiddleware(next, s.logger)
	})

	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	api := s.router.PathPrefix("/api/v1").Subrouter()
	api.Use(srHttp.APIKeyMiddleware(s.config.APIKey, s.logger))

	api.HandleFunc("/metrics/ingest", s.handleIngest).Methods(http.MethodPost)
	api.HandleFunc("/metrics/devices", s.handleListDevices).Methods(http.MethodGet)
	api.HandleFunc("/metrics/device/{device_id}", s.handleDeviceReadings).Methods(http.MethodGet)
	api.HandleFunc("/metrics/reset", s.handleReset).Methods(http.MethodPost)
	api.HandleFunc("/stats", s.handleStats).Methods(http.MethodGet)

	api.HandleFunc("/carbon/summary", s.handleCarbonSummary).Methods(http.MethodGet)
	api.HandleFunc("/carbon/by-device", s.handleCarbonByDevice).Methods(http.MethodGet)
	api.HandleFunc("/carbon/by-hour", s.handleCarbonByHour).Methods(http.MethodGet)
}

// Handler exposes the routed handler, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves the API until the context is canceled.
func (s *Server) Start(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:         s.config.ListenAddr,
		Handler:      handlers.CompressHandler(s.router),
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
		IdleTimeout:  defaultIdleTimeout,
	}

	s.logger.Info().Str("addr", s.config.ListenAddr).Msg("Starting ingestion API")

	errCh := make(chan error, 1)

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

// Stop drains in-flight requests and closes the GeoIP reader.
func (s *Server) Stop(ctx context.Context) error {
	var shutdownErr error

	if s.httpServer != nil {
		shutdownErr = s.httpServer.Shutdown(ctx)
	}

	if err := s.locator.Close(); err != nil {
		s.logger.Warn().Err(err).Msg("error closing GeoIP database")
	}

	return shutdownErr
}
