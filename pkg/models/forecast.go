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

package models

import "time"

// ForecastPoint is one hour of the 24h-ahead grid-intensity forecast. The
// timestamp carries the configured display timezone; the model itself is fit
// and queried on naive local time.
type ForecastPoint struct {
	Timestamp          time.Time `json:"timestamp"`
	Hour               int       `json:"hour"`
	PredictedIntensity float64   `json:"predicted_intensity"`
	LowerBound         float64   `json:"lower_bound"`
	UpperBound         float64   `json:"upper_bound"`
}

// RecommendationStatus is the qualitative tier of a scheduling recommendation.
type RecommendationStatus string

const (
	StatusExcellent RecommendationStatus = "excellent"
	StatusGood      RecommendationStatus = "good"
	StatusModerate  RecommendationStatus = "moderate"
	StatusPoor      RecommendationStatus = "poor"
)

// Recommendation is the advisor's verdict for the current hour derived from
// the 24h forecast.
type Recommendation struct {
	Status             RecommendationStatus `json:"status"`
	CurrentHour        int                  `json:"current_hour"`
	CurrentIntensity   float64              `json:"current_intensity"`
	AverageIntensity   float64              `json:"average_intensity"`
	BestIntensity      float64              `json:"best_intensity"`
	PercentVsAverage   float64              `json:"percent_vs_average"`
	PercentVsBest      float64              `json:"percent_vs_best"`
	Message            string               `json:"message"`
	Action             string               `json:"action"`
	GreenestHour       int                  `json:"greenest_hour"`
	HoursUntilGreenest int                  `json:"hours_until_greenest"`
}
