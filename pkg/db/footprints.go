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

	"github.com/jackc/pgx/v5"

	"github.com/carverauto/carbonscope/pkg/models"
)

const (
	insertFootprintSQL = `
		INSERT INTO carbon_footprints
			(reading_id, device_id, timestamp, power_kwh,
			 grid_intensity_gco2_per_kwh, operational_carbon_gco2,
			 embodied_carbon_gco2, embodied_total_kgco2e,
			 assumed_lifetime_years, total_carbon_gco2)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (reading_id) DO NOTHING`

	carbonSummarySQL = `
		SELECT COUNT(*),
			COALESCE(SUM(power_kwh), 0),
			COALESCE(SUM(total_carbon_gco2), 0),
			COALESCE(AVG(grid_intensity_gco2_per_kwh), 0),
			COALESCE(SUM(operational_carbon_gco2), 0),
			COALESCE(SUM(embodied_carbon_gco2), 0)
		FROM carbon_footprints`

	carbonByDeviceSQL = `
		SELECT device_id,
			COUNT(*),
			COALESCE(SUM(power_kwh), 0),
			COALESCE(SUM(total_carbon_gco2), 0)
		FROM carbon_footprints
		GROUP BY device_id
		ORDER BY SUM(total_carbon_gco2) DESC`

	carbonByHourSQL = `
		SELECT EXTRACT(HOUR FROM timestamp)::int AS hour,
			COUNT(*),
			COALESCE(SUM(total_carbon_gco2), 0),
			COALESCE(AVG(grid_intensity_gco2_per_kwh), 0)
		FROM carbon_footprints
		GROUP BY hour
		ORDER BY hour`
)

// InsertFootprints writes a batch of attribution records and returns how many
// were actually inserted. Conflicting reading IDs are silently skipped so two
// workers draining the same backlog never double-count a reading.
func (db *DB) InsertFootprints(ctx context.Context, records []*models.CarbonFootprintRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}

	for _, rec := range records {
		if rec == nil {
			return 0, ErrFootprintNil
		}

		if rec.ReadingID == 0 {
			return 0, ErrFootprintReadingIDMissing
		}

		batch.Queue(insertFootprintSQL,
			rec.ReadingID,
			rec.DeviceID,
			rec.Timestamp,
			rec.PowerKWh,
			rec.GridIntensity,
			rec.OperationalCarbonG,
			rec.EmbodiedCarbonG,
			rec.EmbodiedTotalKg,
			rec.AssumedLifetimeYrs,
			rec.TotalCarbonG,
		)
	}

	results := db.pool.SendBatch(ctx, batch)
	defer func() {
		if err := results.Close(); err != nil {
			db.logger.Warn().Err(err).Msg("error closing footprint batch results")
		}
	}()

	inserted := 0

	for i := 0; i < batch.Len(); i++ {
		tag, err := results.Exec()
		if err != nil {
			return inserted, fmt.Errorf("%w: footprint %d: %w", ErrFailedToInsert, i, err)
		}

		inserted += int(tag.RowsAffected())
	}

	return inserted, nil
}

// CarbonSummary aggregates all footprint records.
func (db *DB) CarbonSummary(ctx context.Context) (*models.CarbonSummary, error) {
	var s models.CarbonSummary

	err := db.pool.QueryRow(ctx, carbonSummarySQL).Scan(
		&s.TotalRecords,
		&s.TotalEnergyKWh,
		&s.TotalCarbonG,
		&s.AvgGridIntensity,
		&s.OperationalCarbonG,
		&s.EmbodiedCarbonG,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: carbon summary: %w", ErrFailedToQuery, err)
	}

	return &s, nil
}

// CarbonByDevice returns the per-device rollup, heaviest emitters first.
func (db *DB) CarbonByDevice(ctx context.Context) ([]models.DeviceCarbon, error) {
	rows, err := db.pool.Query(ctx, carbonByDeviceSQL)
	if err != nil {
		return nil, fmt.Errorf("%w: carbon by device: %w", ErrFailedToQuery, err)
	}
	defer rows.Close()

	var devices []models.DeviceCarbon

	for rows.Next() {
		var d models.DeviceCarbon

		if err := rows.Scan(&d.DeviceID, &d.Records, &d.EnergyKWh, &d.TotalCarbonG); err != nil {
			return nil, fmt.Errorf("%w: device carbon row: %w", ErrFailedToScan, err)
		}

		devices = append(devices, d)
	}

	return devices, rows.Err()
}

// CarbonByHour returns the hour-of-day rollup in ascending hour order.
func (db *DB) CarbonByHour(ctx context.Context) ([]models.HourlyCarbon, error) {
	rows, err := db.pool.Query(ctx, carbonByHourSQL)
	if err != nil {
		return nil, fmt.Errorf("%w: carbon by hour: %w", ErrFailedToQuery, err)
	}
	defer rows.Close()

	var hours []models.HourlyCarbon

	for rows.Next() {
		var h models.HourlyCarbon

		if err := rows.Scan(&h.Hour, &h.Records, &h.TotalCarbonG, &h.AvgGridIntensity); err != nil {
			return nil, fmt.Errorf("%w: hourly carbon row: %w", ErrFailedToScan, err)
		}

		hours = append(hours, h)
	}

	return hours, rows.Err()
}
