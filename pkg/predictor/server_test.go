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
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/carbonscope/pkg/logger"
	"github.com/carverauto/carbonscope/pkg/models"
)

func untrainedServer(t *testing.T) *Server {
	t.Helper()

	cfg := &Config{
		ListenAddr: ":0",
		ModelPath:  filepath.Join(t.TempDir(), "model.json"),
		Timezone:   "UTC",
	}

	s, err := NewServer(cfg, nil, logger.NewTestLogger())
	require.NoError(t, err)

	return s
}

// trainingCSV writes a synthetic hourly export with a clean daily cycle.
func trainingCSV(t *testing.T, days int) string {
	t.Helper()

	var buf bytes.Buffer

	buf.WriteString("timestamp,intensity\n")

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < days*24; i++ {
		ts := start.Add(time.Duration(i) * time.Hour)
		value := 500.0 + 150.0*float64((ts.Hour()+18)%24)/23.0

		fmt.Fprintf(&buf, "%s,%.2f\n", ts.Format(time.RFC3339), value)
	}

	path := filepath.Join(t.TempDir(), "history.csv")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))

	return path
}

func trainedServer(t *testing.T) *Server {
	t.Helper()

	s := untrainedServer(t)
	csv := trainingCSV(t, 120)

	rec := httptest.NewRecorder()
	body, err := json.Marshal(trainRequest{CSVPaths: []string{csv}})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/train", bytes.NewReader(body))
	s.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	return s
}

func TestPredictionEndpointsWithoutModel(t *testing.T) {
	s := untrainedServer(t)

	paths := []string{
		"/api/v1/predict/next-24h",
		"/api/v1/predict/greenest-hours",
		"/api/v1/predict/recommendation",
	}

	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, http.NoBody))

			assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

			var resp models.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, "Model not trained", resp.Error)
		})
	}
}

func TestHealthReportsModelState(t *testing.T) {
	s := untrainedServer(t)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", http.NoBody))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Status      string `json:"status"`
		ModelStatus string `json:"model_status"`
	}

	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "not_trained", resp.ModelStatus)
}

func TestTrainThenPredict(t *testing.T) {
	s := trainedServer(t)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/predict/next-24h", http.NoBody))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Predictions []models.ForecastPoint `json:"predictions"`
		Timezone    string                 `json:"timezone"`
	}

	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Predictions, 25)
	assert.Equal(t, "UTC", resp.Timezone)

	for _, p := range resp.Predictions {
		assert.Positive(t, p.PredictedIntensity)
	}
}

func TestGreenestHoursTopParameter(t *testing.T) {
	s := trainedServer(t)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec,
		httptest.NewRequest(http.MethodGet, "/api/v1/predict/greenest-hours?top=3", http.NoBody))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		GreenestHours []models.ForecastPoint `json:"greenest_hours"`
		Count         int                    `json:"count"`
	}

	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Count)
	require.Len(t, resp.GreenestHours, 3)

	// Ascending by predicted intensity.
	assert.LessOrEqual(t, resp.GreenestHours[0].PredictedIntensity, resp.GreenestHours[1].PredictedIntensity)
	assert.LessOrEqual(t, resp.GreenestHours[1].PredictedIntensity, resp.GreenestHours[2].PredictedIntensity)
}

func TestRecommendationEndpoint(t *testing.T) {
	s := trainedServer(t)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec,
		httptest.NewRequest(http.MethodGet, "/api/v1/predict/recommendation", http.NoBody))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Recommendation models.Recommendation `json:"recommendation"`
	}

	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, []models.RecommendationStatus{
		models.StatusExcellent, models.StatusGood, models.StatusModerate, models.StatusPoor,
	}, resp.Recommendation.Status)
	assert.NotEmpty(t, resp.Recommendation.Action)
}

func TestTrainRejectsMissingCSV(t *testing.T) {
	s := untrainedServer(t)

	body, err := json.Marshal(trainRequest{CSVPaths: []string{"/does/not/exist.csv"}})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec,
		httptest.NewRequest(http.MethodPost, "/api/v1/train", bytes.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestConfigValidate(t *testing.T) {
	assert.ErrorIs(t, (&Config{}).Validate(), ErrListenAddrRequired)
	assert.ErrorIs(t, (&Config{ListenAddr: ":8080"}).Validate(), ErrModelPathRequired)
	assert.NoError(t, (&Config{ListenAddr: ":8080", ModelPath: "m.json"}).Validate())
}
