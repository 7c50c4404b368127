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

package predictor

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/carverauto/carbonscope/pkg/forecast"
	"github.com/carverauto/carbonscope/pkg/models"
)

const defaultGreenestTop = 5

type trainRequest struct {
	CSVPaths []string `json:"csv_paths,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	modelStatus := "not_trained"

	var lastTrained *time.Time

	if s.forecasts.Ready() {
		modelStatus = "ready"

		if t := s.forecasts.LastTrained(); !t.IsZero() {
			lastTrained = &t
		}
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":       "healthy",
		"model_status": modelStatus,
		"last_trained": lastTrained,
		"timestamp":    time.Now().In(s.location),
	})
}

func (s *Server) handleNext24h(w http.ResponseWriter, _ *http.Request) {
	points, err := s.forecasts.PredictNext24h()
	if err != nil {
		s.writeForecastError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"predictions":  points,
		"timezone":     s.location.String(),
		"generated_at": time.Now().In(s.location),
	})
}

func (s *Server) handleGreenestHours(w http.ResponseWriter, r *http.Request) {
	top := defaultGreenestTop
	if raw := r.URL.Query().Get("top"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			top = parsed
		}
	}

	points, err := s.forecasts.GreenestHours(top)
	if err != nil {
		s.writeForecastError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"greenest_hours": points,
		"count":          len(points),
		"timezone":       s.location.String(),
		"generated_at":   time.Now().In(s.location),
	})
}

func (s *Server) handleRecommendation(w http.ResponseWriter, _ *http.Request) {
	rec, err := s.forecasts.Recommendation()
	if err != nil {
		s.writeForecastError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"recommendation": rec,
		"timezone":       s.location.String(),
		"generated_at":   time.Now().In(s.location),
	})
}

func (s *Server) handleTrain(w http.ResponseWriter, r *http.Request) {
	var req trainRequest

	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeError(w, http.StatusBadRequest, "Invalid JSON payload")
			return
		}
	}

	if err := s.TrainFromSources(r.Context(), req.CSVPaths); err != nil {
		s.logger.Error().Err(err).Msg("Training failed")
		s.writeError(w, http.StatusBadRequest, err.Error())

		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":     "success",
		"message":    "Model trained successfully",
		"trained_at": s.forecasts.LastTrained(),
	})
}

// writeForecastError distinguishes "no model yet" from a real failure.
func (s *Server) writeForecastError(w http.ResponseWriter, err error) {
	if errors.Is(err, forecast.ErrModelUnavailable) {
		s.writeError(w, http.StatusServiceUnavailable, "Model not trained")
		return
	}

	s.logger.Error().Err(err).Msg("Forecast query failed")
	s.writeError(w, http.StatusInternalServerError, "Internal server error")
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error().Err(err).Msg("Failed to encode response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, models.ErrorResponse{Error: message, Status: http.StatusText(status)})
}
