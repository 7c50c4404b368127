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
	"fmt"
	"math"
	"sort"

	"github.com/carverauto/carbonscope/pkg/models"
)

// Tier boundaries as percent deviation from the 24h average. -15 itself is
// still excellent and +15 itself is still moderate.
const (
	excellentThreshold = -15.0
	poorThreshold      = 15.0
)

// Advise classifies the current hour against the 24h forecast. The current
// point is matched by hour-of-day, falling back to the first point when the
// grid somehow lacks the current hour.
func Advise(points []models.ForecastPoint, currentHour int) (*models.Recommendation, error) {
	if len(points) == 0 {
		return nil, ErrEmptyForecast
	}

	current := points[0]

	for _, p := range points {
		if p.Hour == currentHour {
			current = p
			break
		}
	}

	var sum float64

	best := points[0]

	for _, p := range points {
		sum += p.PredictedIntensity

		if p.PredictedIntensity < best.PredictedIntensity {
			best = p
		}
	}

	average := sum / float64(len(points))

	pctVsAverage := (current.PredictedIntensity - average) * 100 / average
	pctVsBest := (current.PredictedIntensity - best.PredictedIntensity) * 100 / best.PredictedIntensity

	hoursUntilGreenest := ((best.Hour-currentHour)%24 + 24) % 24

	rec := &models.Recommendation{
		CurrentHour:        currentHour,
		CurrentIntensity:   round2(current.PredictedIntensity),
		AverageIntensity:   round2(average),
		BestIntensity:      round2(best.PredictedIntensity),
		PercentVsAverage:   round2(pctVsAverage),
		PercentVsBest:      round2(pctVsBest),
		GreenestHour:       best.Hour,
		HoursUntilGreenest: hoursUntilGreenest,
	}

	switch {
	case pctVsAverage <= excellentThreshold:
		rec.Status = models.StatusExcellent
		rec.Message = "Grid is predicted to be much cleaner than average. Excellent time for intensive workloads."
		rec.Action = "Run batch jobs, ML training, large builds now"
	case pctVsAverage < 0:
		rec.Status = models.StatusGood
		rec.Message = "Grid is cleaner than average. Good time for most workloads."
		rec.Action = "Normal operations recommended"
	case pctVsAverage <= poorThreshold:
		rec.Status = models.StatusModerate
		rec.Message = "Grid is slightly dirtier than average. Consider deferring non-urgent tasks."
		rec.Action = fmt.Sprintf("Wait %dh for greenest window", hoursUntilGreenest)
	default:
		rec.Status = models.StatusPoor
		rec.Message = "Grid is predicted to be much dirtier than average. Defer intensive workloads."
		rec.Action = fmt.Sprintf("Wait %dh for cleanest grid (save %.0f%% emissions)",
			hoursUntilGreenest, math.Abs(pctVsBest))
	}

	return rec, nil
}

// GreenestHours returns the n lowest-intensity points. The sort is stable so
// ties keep their original timestamp order.
func GreenestHours(points []models.ForecastPoint, n int) []models.ForecastPoint {
	if n <= 0 {
		return nil
	}

	sorted := make([]models.ForecastPoint, len(points))
	copy(sorted, points)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PredictedIntensity < sorted[j].PredictedIntensity
	})

	if n > len(sorted) {
		n = len(sorted)
	}

	return sorted[:n]
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
