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
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/carverauto/carbonscope/pkg/models"
)

const (
	intensityHistorySQL = `
		SELECT timestamp, intensity_gco2_per_kwh
		FROM grid_intensity_history
		WHERE timestamp >= $1
		ORDER BY timestamp`

	upsertIntensitySQL = `
		INSERT INTO grid_intensity_history (timestamp, intensity_gco2_per_kwh)
		VALUES ($1, $2)
		ON CONFLICT (timestamp) DO UPDATE
			SET intensity_gco2_per_kwh = EXCLUDED.intensity_gco2_per_kwh`
)

// IntensityHistory returns the stored grid-intensity series from the given
// instant onward, ascending by timestamp.
func (db *DB) IntensityHistory(ctx context.Context, since time.Time) ([]models.IntensitySample, error) {
	rows, err := db.pool.Query(ctx, intensityHistorySQL, since)
	if err != nil {
		return nil, fmt.Errorf("%w: intensity history: %w", ErrFailedToQuery, err)
	}
	defer rows.Close()

	var samples []models.IntensitySample

	for rows.Next() {
		var s models.IntensitySample

		if err := rows.Scan(&s.Timestamp, &s.Intensity); err != nil {
			return nil, fmt.Errorf("%w: intensity row: %w", ErrFailedToScan, err)
		}

		samples = append(samples, s)
	}

	return samples, rows.Err()
}

// RecordIntensity upserts observed grid-intensity samples keyed on their
// timestamp, so repeated observations of the same hour converge to the most
// recent value.
func (db *DB) RecordIntensity(ctx context.Context, samples []models.IntensitySample) error {
	if len(samples) == 0 {
		return nil
	}

	batch := &pgx.Batch{}

	for _, s := range samples {
		batch.Queue(upsertIntensitySQL, s.Timestamp, s.Intensity)
	}

	return db.sendBatch(ctx, batch, "intensity history")
}
