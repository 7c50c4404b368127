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

// Package predictor serves grid carbon-intensity forecasts: the next-24h
// curve, the greenest upcoming hours, and a scheduling recommendation for
// the current hour. Prediction endpoints answer 503 until a model has been
// trained; a fabricated forecast would be worse than an honest gap.
package predictor

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/carverauto/carbonscope/pkg/db"
	"github.com/carverauto/carbonscope/pkg/forecast"
	srHttp "github.com/carverauto/carbonscope/pkg/http"
	"github.com/carverauto/carbonscope/pkg/logger"
	"github.com/carverauto/carbonscope/pkg/models"
)

const (
	defaultReadTimeout  = 10 * time.Second
	defaultWriteTimeout = 60 * time.Second
	defaultIdleTimeout  = 60 * time.Second

	// Training reads up to two years of stored history.
	historyLookback = 2 * 365 * 24 * time.Hour
)

// Server is the prediction API. Implements lifecycle.Service.
type Server struct {
	config    *Config
	forecasts *forecast.Service
	store     db.Service
	location  *time.Location
	router    *mux.Router
	logger    logger.Logger

	httpServer *http.Server
}

// NewServer builds the prediction API. store may be nil when no database is
// configured; training then uses CSV sources only.
func NewServer(cfg *Config, store db.Service, log logger.Logger) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	loc := forecast.DisplayLocation()

	if cfg.Timezone != "" {
		parsed, err := time.LoadLocation(cfg.Timezone)
		if err != nil {
			return nil, err
		}

		loc = parsed
	}

	s := &Server{
		config:    cfg,
		forecasts: forecast.NewService(cfg.ModelPath, loc, log),
		store:     store,
		location:  loc,
		router:    mux.NewRouter(),
		logger:    log,
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

	api.HandleFunc("/predict/next-24h", s.handleNext24h).Methods(http.MethodGet)
	api.HandleFunc("/predict/greenest-hours", s.handleGreenestHours).Methods(http.MethodGet)
	api.HandleFunc("/predict/recommendation", s.handleRecommendation).Methods(http.MethodGet)
	api.HandleFunc("/train", s.handleTrain).Methods(http.MethodPost)
}

// Handler exposes the routed handler, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// TrainFromSources merges the configured CSV files (or the override list)
// with the stored intensity history, fits a model, and persists it.
func (s *Server) TrainFromSources(ctx context.Context, csvPaths []string) error {
	if len(csvPaths) == 0 {
		csvPaths = s.config.TrainingCSVs
	}

	series := make([][]models.IntensitySample, 0, len(csvPaths)+1)

	for _, path := range csvPaths {
		samples, err := forecast.LoadCSV(path, s.location)
		if err != nil {
			return err
		}

		s.logger.Info().Str("path", path).Int("samples", len(samples)).Msg("Loaded training CSV")
		series = append(series, samples)
	}

	if s.store != nil {
		since := time.Now().Add(-historyLookback)

		history, err := s.store.IntensityHistory(ctx, since)
		if err != nil {
			s.logger.Warn().Err(err).Msg("Could not read stored intensity history, training on CSVs only")
		} else if len(history) > 0 {
			// Stored history is hour-aligned UTC; move it onto the naive
			// local axis the model is fit on.
			localized := make([]models.IntensitySample, len(history))
			for i, sample := range history {
				localized[i] = models.IntensitySample{
					Timestamp: naiveLocal(sample.Timestamp, s.location),
					Intensity: sample.Intensity,
				}
			}

			s.logger.Info().Int("samples", len(localized)).Msg("Merging stored intensity history")
			series = append(series, localized)
		}
	}

	merged := forecast.MergeSeries(series...)

	return s.forecasts.Retrain(merged, s.config.Flexibility)
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

	s.logger.Info().
		Str("addr", s.config.ListenAddr).
		Str("timezone", s.location.String()).
		Bool("model_ready", s.forecasts.Ready()).
		Msg("Starting prediction API")

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

// Stop drains in-flight requests.
func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}

	return s.httpServer.Shutdown(ctx)
}

func naiveLocal(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)

	return time.Date(local.Year(), local.Month(), local.Day(),
		local.Hour(), local.Minute(), local.Second(), 0, time.UTC)
}
