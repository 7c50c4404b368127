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

// Package profiler drains ingested readings into carbon footprint records.
// One footprint per reading, idempotently: a reading counts as processed iff
// a footprint references it, and the store's unique constraint on the
// reference makes that transition atomic even under concurrent workers.
package profiler

import (
	"context"
	"sync"
	"time"

	"github.com/carverauto/carbonscope/pkg/attribution"
	"github.com/carverauto/carbonscope/pkg/db"
	"github.com/carverauto/carbonscope/pkg/intensity"
	"github.com/carverauto/carbonscope/pkg/logger"
	"github.com/carverauto/carbonscope/pkg/models"
)

// Profiler is the attribution worker. Implements lifecycle.Service.
type Profiler struct {
	config   *Config
	store    db.Service
	resolver IntensityResolver
	clock    Clock
	logger   logger.Logger

	mu      sync.Mutex
	done    chan struct{}
	stopped sync.WaitGroup
}

// New builds a profiler over an existing store connection.
func New(cfg *Config, store db.Service, resolver IntensityResolver, log logger.Logger) (*Profiler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Profiler{
		config:   cfg,
		store:    store,
		resolver: resolver,
		clock:    realClock{},
		logger:   log,
	}, nil
}

// Start runs the poll loop until the context is canceled or Stop is called.
// An unhealthy poll cycle logs and retries on the next tick; it never brings
// the process down.
func (p *Profiler) Start(ctx context.Context) error {
	p.mu.Lock()
	if p.done != nil {
		p.mu.Unlock()
		return ErrAlreadyStarted
	}

	p.done = make(chan struct{})
	done := p.done
	p.mu.Unlock()

	interval := time.Duration(p.config.PollInterval)
	ticker := p.clock.Ticker(interval)

	defer ticker.Stop()

	p.logger.Info().
		Dur("interval", interval).
		Int("batch_size", p.config.BatchSize).
		Msg("Starting carbon profiler")

	p.stopped.Add(1)
	defer p.stopped.Done()

	p.runCycle(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-done:
			return nil
		case <-ticker.Chan():
			p.runCycle(ctx)
		}
	}
}

// Stop signals the loop to exit and waits for the in-flight cycle.
func (p *Profiler) Stop(ctx context.Context) error {
	p.mu.Lock()
	if p.done != nil {
		select {
		case <-p.done:
		default:
			close(p.done)
		}
	}
	p.mu.Unlock()

	finished := make(chan struct{})

	go func() {
		p.stopped.Wait()
		close(finished)
	}()

	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Profiler) runCycle(ctx context.Context) {
	count, err := p.ProcessPending(ctx)
	if err != nil {
		p.logger.Error().Err(err).Msg("Carbon processing cycle failed")
		return
	}

	if count > 0 {
		p.logger.Info().Int("processed", count).Msg("Attributed carbon footprints")
	}
}

// ProcessPending claims one batch of the oldest unattributed readings,
// resolves grid intensity, computes footprints, and persists them. Returns
// how many footprint records were written. A reading that fails attribution
// is skipped this cycle and retried on the next.
func (p *Profiler) ProcessPending(ctx context.Context) (int, error) {
	readings, err := p.store.UnprocessedReadings(ctx, p.config.BatchSize)
	if err != nil {
		return 0, err
	}

	if len(readings) == 0 {
		return 0, nil
	}

	records := make([]*models.CarbonFootprintRecord, 0, len(readings))
	observed := make(map[time.Time]models.IntensitySample)

	for i := range readings {
		reading := &readings[i]

		result := p.resolver.Resolve(ctx, reading.Latitude, reading.Longitude, reading.CountryCode)

		footprint, err := attribution.Attribute(
			reading.TotalPowerWatts, p.config.SampleInterval, result.Intensity, reading.DeviceClass)
		if err != nil {
			p.logger.Warn().
				Err(err).
				Int64("reading_id", reading.ID).
				Str("device_id", reading.DeviceID).
				Msg("Skipping reading that failed attribution")

			continue
		}

		profile := attribution.ProfileFor(reading.DeviceClass)

		records = append(records, &models.CarbonFootprintRecord{
			ReadingID:          reading.ID,
			DeviceID:           reading.DeviceID,
			Timestamp:          reading.Timestamp,
			PowerKWh:           footprint.PowerKWh,
			GridIntensity:      result.Intensity,
			OperationalCarbonG: footprint.OperationalCarbonG,
			EmbodiedCarbonG:    footprint.EmbodiedCarbonG,
			EmbodiedTotalKg:    profile.TotalEmbodiedKg,
			AssumedLifetimeYrs: profile.LifetimeYears,
			TotalCarbonG:       footprint.TotalCarbonG,
		})

		// Live measurements feed the forecast training series, one sample
		// per observed hour.
		if result.Source == intensity.SourceLive || result.Source == intensity.SourceCache {
			hour := reading.Timestamp.UTC().Truncate(time.Hour)
			observed[hour] = models.IntensitySample{Timestamp: hour, Intensity: result.Intensity}
		}
	}

	if len(records) == 0 {
		return 0, nil
	}

	inserted, err := p.store.InsertFootprints(ctx, records)
	if err != nil {
		return inserted, err
	}

	if len(observed) > 0 {
		samples := make([]models.IntensitySample, 0, len(observed))
		for _, s := range observed {
			samples = append(samples, s)
		}

		if err := p.store.RecordIntensity(ctx, samples); err != nil {
			p.logger.Warn().Err(err).Msg("Failed to record intensity history")
		}
	}

	return inserted, nil
}
