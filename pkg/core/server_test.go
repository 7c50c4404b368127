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
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/carverauto/carbonscope/pkg/db"
	"github.com/carverauto/carbonscope/pkg/geo"
	"github.com/carverauto/carbonscope/pkg/logger"
	"github.com/carverauto/carbonscope/pkg/models"
)

type fixedLocator struct {
	loc *geo.Location
	err error
}

func (f *fixedLocator) Locate(string) (*geo.Location, error) { return f.loc, f.err }

func (f *fixedLocator) Close() error { return nil }

func newTestServer(t *testing.T, store db.Service, locator geo.Locator) *Server {
	t.Helper()

	cfg := &Config{
		ListenAddr: ":0",
		Database:   &models.PostgresDatabase{Host: "localhost", Database: "carbonscope"},
	}

	s, err := NewServer(cfg, store, locator, logger.NewTestLogger())
	require.NoError(t, err)

	return s
}

func postJSON(t *testing.T, handler http.Handler, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	return rec
}

func TestHandleIngest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := db.NewMockService(ctrl)
	store.EXPECT().InsertReading(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ any, reading *models.Reading) (int64, error) {
			assert.Equal(t, "device-7", reading.DeviceID)
			assert.Equal(t, models.DeviceClassLaptop, reading.DeviceClass)
			assert.Equal(t, 42.5, reading.TotalPowerWatts)
			assert.False(t, reading.ReceivedAt.IsZero())

			return 11, nil
		})

	s := newTestServer(t, store, geo.Disabled{})

	rec := postJSON(t, s.Handler(), "/api/v1/metrics/ingest", IngestRequest{
		DeviceID:        "device-7",
		DeviceClass:     models.DeviceClassLaptop,
		Timestamp:       time.Now().UTC(),
		TotalPowerWatts: 42.5,
	})

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp models.IngestResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "accepted", resp.Status)
	assert.Equal(t, int64(11), resp.ReadingID)
}

func TestHandleIngestValidation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := newTestServer(t, db.NewMockService(ctrl), geo.Disabled{})

	tests := []struct {
		name    string
		payload IngestRequest
	}{
		{name: "missing device_id", payload: IngestRequest{Timestamp: time.Now(), TotalPowerWatts: 10}},
		{name: "missing timestamp", payload: IngestRequest{DeviceID: "d", TotalPowerWatts: 10}},
		{name: "negative power", payload: IngestRequest{DeviceID: "d", Timestamp: time.Now(), TotalPowerWatts: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, s.Handler(), "/api/v1/metrics/ingest", tt.payload)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandleIngestGeoEnrichment(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := db.NewMockService(ctrl)
	store.EXPECT().InsertReading(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ any, reading *models.Reading) (int64, error) {
			require.True(t, reading.HasLocation())
			assert.InDelta(t, 12.97, *reading.Latitude, 0.001)
			assert.Equal(t, "IN", reading.CountryCode)

			return 1, nil
		})

	locator := &fixedLocator{loc: &geo.Location{Latitude: 12.97, Longitude: 77.59, CountryCode: "IN"}}
	s := newTestServer(t, store, locator)

	rec := postJSON(t, s.Handler(), "/api/v1/metrics/ingest", IngestRequest{
		DeviceID:        "device-9",
		Timestamp:       time.Now().UTC(),
		TotalPowerWatts: 18,
	})

	require.Equal(t, http.StatusCreated, rec.Code)
}

func TestHandleIngestKeepsExplicitLocation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	lat, lon := 48.85, 2.35

	store := db.NewMockService(ctrl)
	store.EXPECT().InsertReading(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ any, reading *models.Reading) (int64, error) {
			assert.Equal(t, lat, *reading.Latitude)
			assert.Equal(t, lon, *reading.Longitude)
			assert.Equal(t, "EU", reading.CountryCode)

			return 1, nil
		})

	// The locator would say India; the explicit payload wins.
	locator := &fixedLocator{loc: &geo.Location{Latitude: 12.97, Longitude: 77.59, CountryCode: "IN"}}
	s := newTestServer(t, store, locator)

	rec := postJSON(t, s.Handler(), "/api/v1/metrics/ingest", IngestRequest{
		DeviceID:        "device-3",
		Timestamp:       time.Now().UTC(),
		TotalPowerWatts: 18,
		Latitude:        &lat,
		Longitude:       &lon,
		CountryCode:     "EU",
	})

	require.Equal(t, http.StatusCreated, rec.Code)
}

func TestHandleListDevices(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := db.NewMockService(ctrl)
	store.EXPECT().DeviceSummaries(gomock.Any()).Return([]models.DeviceSummary{
		{DeviceID: "a", DeviceClass: models.DeviceClassLaptop, RecordCount: 3},
		{DeviceID: "b", DeviceClass: models.DeviceClassServer, RecordCount: 9},
	}, nil)

	s := newTestServer(t, store, geo.Disabled{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/metrics/devices", http.NoBody)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Devices      []models.DeviceSummary `json:"devices"`
		TotalDevices int                    `json:"total_devices"`
	}

	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.TotalDevices)
}

func TestHandleDeviceReadingsNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := db.NewMockService(ctrl)
	store.EXPECT().DeviceReadings(gomock.Any(), "ghost", 100).Return(nil, db.ErrDeviceNotFound)

	s := newTestServer(t, store, geo.Disabled{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/metrics/device/ghost", http.NoBody)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleDeviceReadingsLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := db.NewMockService(ctrl)
	store.EXPECT().DeviceReadings(gomock.Any(), "device-1", 5).
		Return([]models.Reading{{ID: 1, DeviceID: "device-1"}}, nil)

	s := newTestServer(t, store, geo.Disabled{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/metrics/device/device-1?limit=5", http.NoBody)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandleStatsError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := db.NewMockService(ctrl)
	store.EXPECT().ReadingStats(gomock.Any()).Return(nil, errors.New("boom"))

	s := newTestServer(t, store, geo.Disabled{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stats", http.NoBody)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandleCarbonSummary(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := db.NewMockService(ctrl)
	store.EXPECT().CarbonSummary(gomock.Any()).Return(&models.CarbonSummary{
		TotalRecords: 10,
		TotalCarbonG: 12.5,
	}, nil)

	s := newTestServer(t, store, geo.Disabled{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/carbon/summary", http.NoBody)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.CarbonSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(10), resp.TotalRecords)
}

func TestHealthBypassesAPIKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := &Config{
		ListenAddr: ":0",
		APIKey:     "sekrit",
		Database:   &models.PostgresDatabase{Host: "localhost"},
	}

	s, err := NewServer(cfg, db.NewMockService(ctrl), geo.Disabled{}, logger.NewTestLogger())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/health", http.NoBody)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	// The protected surface still requires the key.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/stats", http.NoBody)
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestConfigValidate(t *testing.T) {
	assert.ErrorIs(t, (&Config{}).Validate(), ErrListenAddrRequired)
	assert.ErrorIs(t, (&Config{ListenAddr: ":8080"}).Validate(), ErrDatabaseRequired)
	assert.NoError(t, (&Config{ListenAddr: ":8080", Database: &models.PostgresDatabase{}}).Validate())
}
