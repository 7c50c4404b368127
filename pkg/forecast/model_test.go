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
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/carbonscope/pkg/logger"
	"github.com/carverauto/carbonscope/pkg/models"
)

// sinusoidalSeries builds an hourly series with a daily cycle: trough at
// hour 3, rising through the afternoon. Two years of data.
func sinusoidalSeries(start time.Time, hours int) []models.IntensitySample {
	samples := make([]models.IntensitySample, hours)

	for i := 0; i < hours; i++ {
		ts := start.Add(time.Duration(i) * time.Hour)
		h := float64(ts.Hour())

		// Minimum at hour 3, maximum at hour 15.
		value := 500 + 200*math.Sin(2*math.Pi*(h-9)/24)

		samples[i] = models.IntensitySample{Timestamp: ts, Intensity: value}
	}

	return samples
}

func trainedService(t *testing.T, now time.Time) *Service {
	t.Helper()

	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	series := sinusoidalSeries(start, 2*365*24)

	svc := NewService(filepath.Join(t.TempDir(), "model.json"), time.UTC, logger.NewTestLogger())
	svc.now = func() time.Time { return now }

	require.NoError(t, svc.Retrain(series, 0))

	return svc
}

func TestPredictNext24hShape(t *testing.T) {
	now := time.Date(2025, 1, 10, 14, 30, 0, 0, time.UTC)
	svc := trainedService(t, now)

	points, err := svc.PredictNext24h()
	require.NoError(t, err)
	require.Len(t, points, 25)

	assert.Equal(t, 14, points[0].Hour)
	assert.Equal(t, 14, points[24].Hour)
	assert.Equal(t, now.Truncate(time.Minute), points[0].Timestamp.Truncate(time.Minute))

	for _, p := range points {
		assert.Positive(t, p.PredictedIntensity)
		assert.Less(t, p.LowerBound, p.PredictedIntensity)
		assert.Greater(t, p.UpperBound, p.PredictedIntensity)
	}
}

func TestPredictNext24hDeterministic(t *testing.T) {
	now := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	svc := trainedService(t, now)

	first, err := svc.PredictNext24h()
	require.NoError(t, err)

	second, err := svc.PredictNext24h()
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRoundTripGreenestHourNearTrough(t *testing.T) {
	now := time.Date(2025, 1, 10, 18, 0, 0, 0, time.UTC)
	svc := trainedService(t, now)

	top, err := svc.GreenestHours(1)
	require.NoError(t, err)
	require.Len(t, top, 1)

	// The series troughs at hour 3; allow the fit two hours of slack.
	distance := ((top[0].Hour-3)%24 + 24) % 24
	if distance > 12 {
		distance = 24 - distance
	}

	assert.LessOrEqual(t, distance, 2, "greenest hour %d too far from trough", top[0].Hour)
}

func TestRoundTripRecommendationAtPeak(t *testing.T) {
	now := time.Date(2025, 1, 10, 18, 0, 0, 0, time.UTC)
	svc := trainedService(t, now)

	rec, err := svc.Recommendation()
	require.NoError(t, err)

	// Hour 18 sits well above the daily average.
	assert.Contains(t, []models.RecommendationStatus{models.StatusPoor, models.StatusModerate}, rec.Status)
	assert.Equal(t, 18, rec.CurrentHour)
}

func TestFitRejectsEmptySeries(t *testing.T) {
	_, err := Fit(nil, 0, time.Now())
	require.ErrorIs(t, err, ErrNoTrainingData)
}

func TestFitRejectsShortSeries(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	series := sinusoidalSeries(start, 24)

	_, err := Fit(series, 0, time.Now())
	require.ErrorIs(t, err, ErrTooFewObservations)
}

func TestFitDropsNonpositiveValues(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	series := sinusoidalSeries(start, 30*24)

	series[10].Intensity = 0
	series[11].Intensity = -5

	m, err := Fit(series, 0, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 30*24-2, m.Observations)
}

func TestMergeSeries(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	t1 := t0.Add(time.Hour)
	t2 := t0.Add(2 * time.Hour)

	a := []models.IntensitySample{
		{Timestamp: t2, Intensity: 300},
		{Timestamp: t0, Intensity: 100},
	}
	b := []models.IntensitySample{
		{Timestamp: t1, Intensity: 200},
		{Timestamp: t0, Intensity: 150}, // later series wins the duplicate
	}

	merged := MergeSeries(a, b)
	require.Len(t, merged, 3)

	assert.Equal(t, t0, merged[0].Timestamp)
	assert.Equal(t, 150.0, merged[0].Intensity)
	assert.Equal(t, t1, merged[1].Timestamp)
	assert.Equal(t, t2, merged[2].Timestamp)
}

func TestRecommendationWithoutModel(t *testing.T) {
	svc := NewService(filepath.Join(t.TempDir(), "missing.json"), time.UTC, logger.NewTestLogger())

	_, err := svc.Recommendation()
	require.ErrorIs(t, err, ErrModelUnavailable)

	assert.False(t, svc.Ready())
	assert.True(t, svc.LastTrained().IsZero())
}
