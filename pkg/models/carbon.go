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

// CarbonFootprintRecord is the attributed carbon cost of a single Reading.
// Append-only: one record per reading, never mutated. A reading is considered
// processed iff a footprint record references it.
type CarbonFootprintRecord struct {
	ID                 int64     `json:"id,omitempty"`
	ReadingID          int64     `json:"reading_id"`
	DeviceID           string    `json:"device_id"`
	Timestamp          time.Time `json:"timestamp"`
	PowerKWh           float64   `json:"power_kwh"`
	GridIntensity      float64   `json:"grid_intensity_gco2_per_kwh"`
	OperationalCarbonG float64   `json:"operational_carbon_gco2"`
	EmbodiedCarbonG    float64   `json:"embodied_carbon_gco2"`
	EmbodiedTotalKg    float64   `json:"embodied_total_kgco2e"`
	AssumedLifetimeYrs float64   `json:"assumed_lifetime_years"`
	TotalCarbonG       float64   `json:"total_carbon_gco2"`
	CalculatedAt       time.Time `json:"calculated_at,omitempty"`
}

// CarbonSummary aggregates footprints across all devices.
type CarbonSummary struct {
	TotalRecords       int64   `json:"total_records"`
	TotalEnergyKWh     float64 `json:"total_energy_kwh"`
	TotalCarbonG       float64 `json:"total_carbon_grams"`
	AvgGridIntensity   float64 `json:"avg_grid_intensity_gco2_kwh"`
	OperationalCarbonG float64 `json:"operational_carbon_grams"`
	EmbodiedCarbonG    float64 `json:"embodied_carbon_grams"`
}

// DeviceCarbon is the per-device carbon rollup.
type DeviceCarbon struct {
	DeviceID     string  `json:"device_id"`
	Records      int64   `json:"records"`
	EnergyKWh    float64 `json:"energy_kwh"`
	TotalCarbonG float64 `json:"total_carbon_grams"`
}

// HourlyCarbon is the hour-of-day carbon rollup consumed by the dashboard and
// by the raw-data recommendation path.
type HourlyCarbon struct {
	Hour             int     `json:"hour"`
	Records          int64   `json:"records"`
	TotalCarbonG     float64 `json:"total_carbon_grams"`
	AvgGridIntensity float64 `json:"avg_grid_intensity_gco2_kwh"`
}

// IntensitySample is one historical hourly grid-intensity observation used to
// train the forecast model.
type IntensitySample struct {
	Timestamp time.Time `json:"timestamp"`
	Intensity float64   `json:"intensity_gco2_per_kwh"`
}
