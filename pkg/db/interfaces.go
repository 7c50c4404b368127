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

//go:generate mockgen -destination=mock_db.go -package=db github.com/carverauto/carbonscope/pkg/db Service

package db

import (
	"context"
	"time"

	"github.com/carverauto/carbonscope/pkg/models"
)

// Service is the store contract consumed by the ingestion core, the profiling
// worker, and the predictor's training path.
type Service interface {
	// Readings. DeviceReadings reports ErrDeviceNotFound for a device with
	// no stored samples.

	InsertReading(ctx context.Context, reading *models.Reading) (int64, error)
	DeviceSummaries(ctx context.Context) ([]models.DeviceSummary, error)
	DeviceReadings(ctx context.Context, deviceID string, limit int) ([]models.Reading, error)
	ReadingStats(ctx context.Context) (*models.ReadingStats, error)

	// Carbon attribution. UnprocessedReadings returns readings not yet
	// referenced by any footprint record, oldest first, bounded by limit.

	UnprocessedReadings(ctx context.Context, limit int) ([]models.Reading, error)
	InsertFootprints(ctx context.Context, records []*models.CarbonFootprintRecord) (int, error)

	// Aggregations for the dashboard surface.

	CarbonSummary(ctx context.Context) (*models.CarbonSummary, error)
	CarbonByDevice(ctx context.Context) ([]models.DeviceCarbon, error)
	CarbonByHour(ctx context.Context) ([]models.HourlyCarbon, error)

	// Historical grid-intensity series for offline forecast training.

	RecordIntensity(ctx context.Context, samples []models.IntensitySample) error
	IntensityHistory(ctx context.Context, since time.Time) ([]models.IntensitySample, error)

	// Administration.

	ResetMetrics(ctx context.Context) error
	Close() error
}
