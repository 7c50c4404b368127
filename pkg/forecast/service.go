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

package forecast

import (
	"sync"
	"time"

	"github.com/carverauto/carbonscope/pkg/logger"
	"github.com/carverauto/carbonscope/pkg/models"
)

// Service owns the loaded forecast model and answers prediction queries.
// The model loads lazily on the first call and is then reused for the
// process lifetime; Retrain swaps it under the lock.
type Service struct {
	modelPath string
	location  *time.Location
	logger    logger.Logger

	now func() time.Time

	mu    sync.RWMutex
	model *Model
}

// NewService builds a forecast service over a persisted model path. The
// location shapes the output wall-clock grid; nil means DisplayLocation().
func NewService(modelPath string, loc *time.Location, log logger.Logger) *Service {
	if loc == nil {
		loc = DisplayLocation()
	}

	return &Service{
		modelPath: modelPath,
		location:  loc,
		logger:    log,
		now:       time.Now,
	}
}

// Ready reports whether a model is loaded or loadable without forcing
// callers through a prediction.
func (s *Service) Ready() bool {
	_, err := s.loadedModel()
	return err == nil
}

// LastTrained returns the training timestamp of the active model, or zero
// when none is available.
func (s *Service) LastTrained() time.Time {
	m, err := s.loadedModel()
	if err != nil {
		return time.Time{}
	}

	return m.TrainedAt
}

// PredictNext24h forecasts the coming 24 hours on an hourly grid: 25 points
// from now to now+24h inclusive, each tagged with its hour-of-day. Repeated
// calls within the same second return identical forecasts.
func (s *Service) PredictNext24h() ([]models.ForecastPoint, error) {
	m, err := s.loadedModel()
	if err != nil {
		return nil, err
	}

	local := s.now().In(s.location)
	naive := naiveTime(local)

	points := make([]models.ForecastPoint, 0, 25)

	for h := 0; h <= 24; h++ {
		at := naive.Add(time.Duration(h) * time.Hour)
		predicted, lower, upper := m.PredictAt(at)

		points = append(points, models.ForecastPoint{
			Timestamp:          localizeNaive(at, s.location),
			Hour:               at.Hour(),
			PredictedIntensity: predicted,
			LowerBound:         lower,
			UpperBound:         upper,
		})
	}

	return points, nil
}

// GreenestHours returns the n cleanest forecast points of the next 24h.
func (s *Service) GreenestHours(n int) ([]models.ForecastPoint, error) {
	points, err := s.PredictNext24h()
	if err != nil {
		return nil, err
	}

	return GreenestHours(points, n), nil
}

// Recommendation classifies the current hour against the 24h forecast.
func (s *Service) Recommendation() (*models.Recommendation, error) {
	points, err := s.PredictNext24h()
	if err != nil {
		return nil, err
	}

	return Advise(points, s.now().In(s.location).Hour())
}

// Retrain fits a fresh model on the merged series, persists it, and makes it
// the active model. Training is blocking and meant for offline invocation.
func (s *Service) Retrain(series []models.IntensitySample, flexibility float64) error {
	m, err := Fit(series, flexibility, s.now().In(s.location))
	if err != nil {
		return err
	}

	if err := SaveModel(s.modelPath, m); err != nil {
		return err
	}

	s.mu.Lock()
	s.model = m
	s.mu.Unlock()

	s.logger.Info().
		Int("observations", m.Observations).
		Time("history_start", m.HistoryStart).
		Time("history_end", m.HistoryEnd).
		Str("path", s.modelPath).
		Msg("Forecast model trained and persisted")

	return nil
}

func (s *Service) loadedModel() (*Model, error) {
	s.mu.RLock()
	m := s.model
	s.mu.RUnlock()

	if m != nil {
		return m, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.model != nil {
		return s.model, nil
	}

	loaded, err := LoadModel(s.modelPath)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("path", s.modelPath).
		Time("trained_at", loaded.TrainedAt).
		Msg("Forecast model loaded")

	s.model = loaded

	return loaded, nil
}
