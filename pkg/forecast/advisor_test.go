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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/carbonscope/pkg/models"
)

// flatForecast builds 25 hourly points starting at startHour, all at the
// base intensity. Individual points are then adjusted per test.
func flatForecast(startHour int, base float64) []models.ForecastPoint {
	start := time.Date(2025, 6, 1, startHour, 0, 0, 0, time.UTC)
	points := make([]models.ForecastPoint, 25)

	for i := range points {
		ts := start.Add(time.Duration(i) * time.Hour)
		points[i] = models.ForecastPoint{
			Timestamp:          ts,
			Hour:               ts.Hour(),
			PredictedIntensity: base,
		}
	}

	return points
}

// setHour adjusts the first point matching the hour, keeping the forecast
// average at the base by moving a second point the opposite way.
func setHourBalanced(points []models.ForecastPoint, hour int, value, base float64) {
	for i := range points {
		if points[i].Hour == hour {
			points[i].PredictedIntensity = value
			break
		}
	}

	for i := len(points) - 1; i >= 0; i-- {
		if points[i].Hour != hour {
			points[i].PredictedIntensity = 2*base - value
			break
		}
	}
}

func TestAdviseTierBoundaries(t *testing.T) {
	t.Run("exactly 15 percent above average is moderate", func(t *testing.T) {
		points := flatForecast(10, 100)
		setHourBalanced(points, 10, 115, 100)

		rec, err := Advise(points, 10)
		require.NoError(t, err)

		assert.Equal(t, models.StatusModerate, rec.Status)
		assert.Equal(t, 15.0, rec.PercentVsAverage)
	})

	t.Run("exactly 15 percent below average is excellent", func(t *testing.T) {
		points := flatForecast(10, 100)
		setHourBalanced(points, 10, 85, 100)

		rec, err := Advise(points, 10)
		require.NoError(t, err)

		assert.Equal(t, models.StatusExcellent, rec.Status)
		assert.Equal(t, -15.0, rec.PercentVsAverage)
	})

	t.Run("just above 15 percent is poor", func(t *testing.T) {
		points := flatForecast(10, 100)
		setHourBalanced(points, 10, 117, 100)

		rec, err := Advise(points, 10)
		require.NoError(t, err)

		assert.Equal(t, models.StatusPoor, rec.Status)
	})

	t.Run("slightly below average is good", func(t *testing.T) {
		points := flatForecast(10, 100)
		setHourBalanced(points, 10, 95, 100)

		rec, err := Advise(points, 10)
		require.NoError(t, err)

		assert.Equal(t, models.StatusGood, rec.Status)
	})

	t.Run("exactly average is moderate", func(t *testing.T) {
		points := flatForecast(10, 100)

		rec, err := Advise(points, 10)
		require.NoError(t, err)

		assert.Equal(t, models.StatusModerate, rec.Status)
		assert.Zero(t, rec.PercentVsAverage)
	})
}

func TestAdviseHoursUntilGreenest(t *testing.T) {
	// Current hour 22, greenest hour 3: five hours away across midnight.
	points := flatForecast(22, 400)

	for i := range points {
		if points[i].Hour == 3 {
			points[i].PredictedIntensity = 200
		}
	}

	rec, err := Advise(points, 22)
	require.NoError(t, err)

	assert.Equal(t, 3, rec.GreenestHour)
	assert.Equal(t, 5, rec.HoursUntilGreenest)
	assert.Equal(t, 200.0, rec.BestIntensity)
}

func TestAdvisePoorMentionsSavings(t *testing.T) {
	points := flatForecast(18, 300)
	setHourBalanced(points, 18, 450, 300)

	for i := range points {
		if points[i].Hour == 3 {
			points[i].PredictedIntensity = 150
		}
	}

	rec, err := Advise(points, 18)
	require.NoError(t, err)

	assert.Equal(t, models.StatusPoor, rec.Status)
	assert.Contains(t, rec.Action, "Wait")
	assert.Contains(t, rec.Action, "emissions")
}

func TestAdviseMissingCurrentHourFallsBackToFirstPoint(t *testing.T) {
	points := flatForecast(10, 100)[:5]

	rec, err := Advise(points, 23)
	require.NoError(t, err)

	assert.Equal(t, 23, rec.CurrentHour)
	assert.Equal(t, 100.0, rec.CurrentIntensity)
}

func TestAdviseEmptyForecast(t *testing.T) {
	_, err := Advise(nil, 10)
	require.ErrorIs(t, err, ErrEmptyForecast)
}

func TestGreenestHoursStableOrder(t *testing.T) {
	points := flatForecast(0, 300)

	// Two equally green hours; the earlier timestamp must come first.
	points[7].PredictedIntensity = 120
	points[15].PredictedIntensity = 120
	points[4].PredictedIntensity = 180

	top := GreenestHours(points, 3)
	require.Len(t, top, 3)

	assert.Equal(t, 7, top[0].Hour)
	assert.Equal(t, 15, top[1].Hour)
	assert.Equal(t, 4, top[2].Hour)
}

func TestGreenestHoursBounds(t *testing.T) {
	points := flatForecast(0, 300)

	assert.Len(t, GreenestHours(points, 50), 25)
	assert.Nil(t, GreenestHours(points, 0))
}
