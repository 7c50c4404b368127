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

package core

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/carverauto/carbonscope/pkg/db"
	"github.com/carverauto/carbonscope/pkg/models"
)

const defaultDeviceReadingsLimit = 100

// IngestRequest is the payload the device agent posts.
type IngestRequest struct {
	DeviceID        string             `json:"device_id"`
	DeviceClass     models.DeviceClass `json:"device_class,omitempty"`
	Timestamp       time.Time          `json:"timestamp"`
	TotalPowerWatts float64            `json:"total_power_watts"`
	Latitude        *float64           `json:"latitude,omitempty"`
	Longitude       *float64           `json:"longitude,omitempty"`
	CountryCode     string             `json:"country_code,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"service":   "carbon-ingestion-api",
		"timestamp": time.Now().UTC(),
	})
}

func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	var req IngestRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	if req.DeviceID == "" {
		s.writeError(w, http.StatusBadRequest, "Missing required field: device_id")
		return
	}

	if req.Timestamp.IsZero() {
		s.writeError(w, http.StatusBadRequest, "Missing required field: timestamp")
		return
	}

	if req.TotalPowerWatts < 0 {
		s.writeError(w, http.StatusBadRequest, "total_power_watts must not be negative")
		return
	}

	reading := &models.Reading{
		DeviceID:        req.DeviceID,
		DeviceClass:     req.DeviceClass,
		Timestamp:       req.Timestamp,
		TotalPowerWatts: req.TotalPowerWatts,
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
		CountryCode:     req.CountryCode,
		ReceivedAt:      time.Now().UTC(),
	}

	// Readings that arrive without coordinates get best-effort GeoIP
	// enrichment from the reporting address.
	if !reading.HasLocation() {
		if loc, err := s.locator.Locate(r.RemoteAddr); err == nil {
			lat, lon := loc.Latitude, loc.Longitude
			reading.Latitude = &lat
			reading.Longitude = &lon

			if reading.CountryCode == "" {
				reading.CountryCode = loc.CountryCode
			}
		}
	}

	id, err := s.store.InsertReading(r.Context(), reading)
	if err != nil {
		s.logger.Error().Err(err).Str("device_id", req.DeviceID).Msg("Failed to insert reading")
		s.writeError(w, http.StatusInternalServerError, "Internal server error")

		return
	}

	s.logger.Info().
		Str("device_id", req.DeviceID).
		Float64("power_watts", req.TotalPowerWatts).
		Int64("reading_id", id).
		Msg("Ingested reading")

	s.writeJSON(w, http.StatusCreated, models.IngestResponse{
		Status:     "accepted",
		DeviceID:   req.DeviceID,
		ReadingID:  id,
		ReceivedAt: reading.ReceivedAt,
	})
}

func (s *Server) handleListDevices(w http.ResponseWriter, r *http.Request) {
	devices, err := s.store.DeviceSummaries(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list devices")
		s.writeError(w, http.StatusInternalServerError, "Internal server error")

		return
	}

	if devices == nil {
		devices = []models.DeviceSummary{}
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"devices":       devices,
		"total_devices": len(devices),
	})
}

func (s *Server) handleDeviceReadings(w http.ResponseWriter, r *http.Request) {
	deviceID := mux.Vars(r)["device_id"]

	limit := defaultDeviceReadingsLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	readings, err := s.store.DeviceReadings(r.Context(), deviceID, limit)
	if err != nil {
		if errors.Is(err, db.ErrDeviceNotFound) {
			s.writeError(w, http.StatusNotFound, "Device "+deviceID+" not found")
			return
		}

		s.logger.Error().Err(err).Str("device_id", deviceID).Msg("Failed to fetch device readings")
		s.writeError(w, http.StatusInternalServerError, "Internal server error")

		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"device_id":    deviceID,
		"record_count": len(readings),
		"metrics":      readings,
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.ReadingStats(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to compute stats")
		s.writeError(w, http.StatusInternalServerError, "Internal server error")

		return
	}

	s.writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := s.store.ResetMetrics(r.Context()); err != nil {
		s.logger.Error().Err(err).Msg("Failed to reset metrics")
		s.writeError(w, http.StatusInternalServerError, "Internal server error")

		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":  "reset_complete",
		"message": "All metrics cleared",
	})
}

func (s *Server) handleCarbonSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.store.CarbonSummary(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to compute carbon summary")
		s.writeError(w, http.StatusInternalServerError, "Internal server error")

		return
	}

	s.writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleCarbonByDevice(w http.ResponseWriter, r *http.Request) {
	devices, err := s.store.CarbonByDevice(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to compute per-device carbon")
		s.writeError(w, http.StatusInternalServerError, "Internal server error")

		return
	}

	if devices == nil {
		devices = []models.DeviceCarbon{}
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"devices": devices})
}

func (s *Server) handleCarbonByHour(w http.ResponseWriter, r *http.Request) {
	hours, err := s.store.CarbonByHour(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to compute hourly carbon")
		s.writeError(w, http.StatusInternalServerError, "Internal server error")

		return
	}

	if hours == nil {
		hours = []models.HourlyCarbon{}
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"hours": hours})
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
