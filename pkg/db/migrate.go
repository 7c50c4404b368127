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

package db

import (
	"context"
	"fmt"
)

// The UNIQUE constraint on carbon_footprints.reading_id is what makes a
// reading "processed": footprint creation and the processed transition are a
// single write, and concurrent pollers cannot double-attribute a reading.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS device_readings (
		id BIGSERIAL PRIMARY KEY,
		device_id VARCHAR(100) NOT NULL,
		device_class VARCHAR(32) NOT NULL DEFAULT 'laptop',
		timestamp TIMESTAMPTZ NOT NULL,
		total_power_watts DOUBLE PRECISION NOT NULL,
		latitude DOUBLE PRECISION,
		longitude DOUBLE PRECISION,
		country_code VARCHAR(8),
		received_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_readings_device
		ON device_readings (device_id)`,
	`CREATE INDEX IF NOT EXISTS idx_readings_timestamp
		ON device_readings (timestamp)`,
	`CREATE TABLE IF NOT EXISTS carbon_footprints (
		id BIGSERIAL PRIMARY KEY,
		reading_id BIGINT NOT NULL UNIQUE REFERENCES device_readings(id),
		device_id VARCHAR(100) NOT NULL,
		timestamp TIMESTAMPTZ NOT NULL,
		power_kwh DOUBLE PRECISION NOT NULL,
		grid_intensity_gco2_per_kwh DOUBLE PRECISION NOT NULL,
		operational_carbon_gco2 DOUBLE PRECISION NOT NULL,
		embodied_carbon_gco2 DOUBLE PRECISION NOT NULL,
		embodied_total_kgco2e DOUBLE PRECISION NOT NULL,
		assumed_lifetime_years DOUBLE PRECISION NOT NULL,
		total_carbon_gco2 DOUBLE PRECISION NOT NULL,
		calculated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_carbon_device
		ON carbon_footprints (device_id)`,
	`CREATE INDEX IF NOT EXISTS idx_carbon_timestamp
		ON carbon_footprints (timestamp)`,
	`CREATE TABLE IF NOT EXISTS grid_intensity_history (
		timestamp TIMESTAMPTZ PRIMARY KEY,
		intensity_gco2_per_kwh DOUBLE PRECISION NOT NULL
	)`,
}

func (db *DB) migrate(ctx context.Context) error {
	for i, stmt := range migrations {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("%w: migration %d: %w", ErrFailedToInit, i, err)
		}
	}

	db.logger.Info().Int("statements", len(migrations)).Msg("schema migration complete")

	return nil
}
