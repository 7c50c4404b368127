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

	"github.com/carverauto/carbonscope/pkg/models"
)

const (
	insertReadingSQL = `
		INSERT INTO device_readings
			(device_id, device_class, timestamp, total_power_watts,
			 latitude, longitude, country_code, received_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	deviceSummariesSQL = `
		SELECT DISTINCT ON (device_id)
			device_id,
			device_class,
			COUNT(*) OVER (PARTITION BY device_id) AS record_count,
			timestamp AS last_seen,
			total_power_watts AS latest_power_watts
		FROM device_readings
		ORDER BY device_id, timestamp DESC`

	deviceReadingsSQL = `
		SELECT id, device_id, device_class, timestamp, total_power_watts,
			latitude, longitude, country_code, received_at
		FROM device_readings
		WHERE device_id = $1
		ORDER BY timestamp DESC
		LIMIT $2`

	readingStatsSQL = `
		SELECT COUNT(*),
			COUNT(DISTINCT device_id),
			COALESCE(AVG(total_power_watts), 0)
		FROM device_readings`

	unprocessedReadingsSQL = `
		SELECT r.id, r.device_id, r.device_class, r.timestamp,
			r.total_power_watts, r.latitude, r.longitude, r.country_code,
			r.received_at
		FROM device_readings r
		LEFT JOIN carbon_footprints c ON r.id = c.reading_id
		WHERE c.id IS NULL
		ORDER BY r.timestamp
		LIMIT $1`
)

// InsertReading stores one power sample and returns its generated identifier.
func (db *DB) InsertReading(ctx context.Context, reading *models.Reading) (int64, error) {
	if reading == nil {
		return 0, ErrReadingNil
	}

	if reading.DeviceID == "" {
		return 0, ErrReadingDeviceIDMissing
	}

	if reading.Timestamp.IsZero() {
		return 0, ErrReadingTimestampZero
	}

	class := reading.DeviceClass
	if !class.Valid() {
		class = models.DeviceClassLaptop
	}

	var id int64

	err := db.pool.QueryRow(ctx, insertReadingSQL,
		reading.DeviceID,
		string(class),
		reading.Timestamp,
		reading.TotalPowerWatts,
		reading.Latitude,
		reading.Longitude,
		nullableString(reading.CountryCode),
		reading.ReceivedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%w: insert reading: %w", ErrFailedToInsert, err)
	}

	return id, nil
}

// DeviceSummaries lists every reporting device with its latest sample.
func (db *DB) DeviceSummaries(ctx context.Context) ([]models.DeviceSummary, error) {
	rows, err := db.pool.Query(ctx, deviceSummariesSQL)
	if err != nil {
		return nil, fmt.Errorf("%w: device summaries: %w", ErrFailedToQuery, err)
	}
	defer rows.Close()

	var summaries []models.DeviceSummary

	for rows.Next() {
		var s models.DeviceSummary

		if err := rows.Scan(&s.DeviceID, &s.DeviceClass, &s.RecordCount,
			&s.LastSeen, &s.LatestPowerWatts); err != nil {
			return nil, fmt.Errorf("%w: device summary row: %w", ErrFailedToScan, err)
		}

		summaries = append(summaries, s)
	}

	return summaries, rows.Err()
}

// DeviceReadings returns the most recent samples for one device, newest
// first. A device with no readings yields ErrDeviceNotFound.
func (db *DB) DeviceReadings(ctx context.Context, deviceID string, limit int) ([]models.Reading, error) {
	if deviceID == "" {
		return nil, ErrReadingDeviceIDMissing
	}

	if limit <= 0 {
		limit = 100
	}

	rows, err := db.pool.Query(ctx, deviceReadingsSQL, deviceID, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: device readings: %w", ErrFailedToQuery, err)
	}
	defer rows.Close()

	readings, err := scanReadings(rows)
	if err != nil {
		return nil, err
	}

	if len(readings) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrDeviceNotFound, deviceID)
	}

	return readings, nil
}

// ReadingStats returns the global ingestion counters.
func (db *DB) ReadingStats(ctx context.Context) (*models.ReadingStats, error) {
	var stats models.ReadingStats

	err := db.pool.QueryRow(ctx, readingStatsSQL).Scan(
		&stats.TotalRecords, &stats.UniqueDevices, &stats.AveragePowerWatts)
	if err != nil {
		return nil, fmt.Errorf("%w: reading stats: %w", ErrFailedToQuery, err)
	}

	return &stats, nil
}

// UnprocessedReadings returns readings with no footprint record yet, oldest
// first so attribution drains backlog in arrival order.
func (db *DB) UnprocessedReadings(ctx context.Context, limit int) ([]models.Reading, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := db.pool.Query(ctx, unprocessedReadingsSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: unprocessed readings: %w", ErrFailedToQuery, err)
	}
	defer rows.Close()

	return scanReadings(rows)
}

// ResetMetrics drops all readings, footprints, and intensity history. Intended
// for demo and test environments only.
func (db *DB) ResetMetrics(ctx context.Context) error {
	stmts := []string{
		`DELETE FROM carbon_footprints`,
		`DELETE FROM device_readings`,
		`DELETE FROM grid_intensity_history`,
	}

	for _, stmt := range stmts {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("%w: reset: %w", ErrDatabaseError, err)
		}
	}

	db.logger.Info().Msg("all telemetry tables reset")

	return nil
}

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanReadings(rows rowScanner) ([]models.Reading, error) {
	var readings []models.Reading

	for rows.Next() {
		var (
			r       models.Reading
			country *string
		)

		if err := rows.Scan(&r.ID, &r.DeviceID, &r.DeviceClass, &r.Timestamp,
			&r.TotalPowerWatts, &r.Latitude, &r.Longitude, &country,
			&r.ReceivedAt); err != nil {
			return nil, fmt.Errorf("%w: reading row: %w", ErrFailedToScan, err)
		}

		if country != nil {
			r.CountryCode = *country
		}

		readings = append(readings, r)
	}

	return readings, rows.Err()
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}
