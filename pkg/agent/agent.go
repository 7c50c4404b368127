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

// Package agent runs on a device and reports its estimated power draw to the
// ingestion API. Each cycle the agent measures CPU utilization over the
// configured sample interval, converts it to watts via the device class's
// idle-to-TDP envelope, and publishes the reading. The CPU measurement itself
// paces the loop; there is no separate ticker.
package agent

import (
	"context"
	"sync"
	"time"

	"github.com/carverauto/carbonscope/pkg/logger"
	"github.com/carverauto/carbonscope/pkg/models"
)

// Agent samples local power draw and ships it upstream. Implements
// lifecycle.Service.
type Agent struct {
	config    *Config
	deviceID  string
	sampler   CPUSampler
	publisher Publisher
	clock     Clock
	logger    logger.Logger

	mu      sync.Mutex
	done    chan struct{}
	stopped sync.WaitGroup
}

// New builds an agent from its configuration. sampler and publisher may be
// nil; host-backed defaults are used then.
func New(cfg *Config, sampler CPUSampler, publisher Publisher, log logger.Logger) (*Agent, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	deviceID, err := resolveDeviceID(cfg.DeviceID, cfg.StateFile)
	if err != nil {
		return nil, err
	}

	if sampler == nil {
		sampler = NewHostSampler()
	}

	if publisher == nil {
		publisher = NewHTTPPublisher(cfg.APIEndpoint, cfg.APIKey)
	}

	return &Agent{
		config:    cfg,
		deviceID:  deviceID,
		sampler:   sampler,
		publisher: publisher,
		clock:     realClock{},
		logger:    log,
	}, nil
}

// DeviceID returns the resolved identity the agent reports under.
func (a *Agent) DeviceID() string {
	return a.deviceID
}

// Start runs the sample-and-publish loop until the context is canceled or
// Stop is called.
func (a *Agent) Start(ctx context.Context) error {
	a.mu.Lock()

	if a.done != nil {
		a.mu.Unlock()
		return ErrAlreadyStarted
	}

	a.done = make(chan struct{})
	done := a.done
	a.mu.Unlock()

	a.logger.Info().
		Str("device_id", a.deviceID).
		Str("device_class", string(a.config.DeviceClass)).
		Str("endpoint", a.config.APIEndpoint).
		Dur("sample_interval", time.Duration(a.config.SampleInterval)).
		Msg("Starting device agent")

	a.stopped.Add(1)
	defer a.stopped.Done()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-done:
			return nil
		default:
		}

		if err := a.runCycle(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}

			a.logger.Warn().Err(err).Msg("Reporting cycle failed")
		}
	}
}

// Stop terminates the loop and waits for the in-flight cycle to finish.
func (a *Agent) Stop(ctx context.Context) error {
	a.mu.Lock()
	if a.done != nil {
		select {
		case <-a.done:
		default:
			close(a.done)
		}
	}
	a.mu.Unlock()

	waitCh := make(chan struct{})

	go func() {
		a.stopped.Wait()
		close(waitCh)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-waitCh:
		return nil
	}
}

// runCycle measures one interval of CPU load and publishes the resulting
// reading. The sampler blocks for the whole interval.
func (a *Agent) runCycle(ctx context.Context) error {
	cpuPercent, err := a.sampler.Sample(ctx, time.Duration(a.config.SampleInterval))
	if err != nil {
		return err
	}

	reading := &models.Reading{
		DeviceID:        a.deviceID,
		DeviceClass:     a.config.DeviceClass,
		Timestamp:       a.clock.Now().UTC(),
		TotalPowerWatts: EstimatePower(a.config.DeviceClass, cpuPercent),
		Latitude:        a.config.Latitude,
		Longitude:       a.config.Longitude,
		CountryCode:     a.config.CountryCode,
	}

	if err := a.publisher.Publish(ctx, reading); err != nil {
		return err
	}

	a.logger.Debug().
		Float64("cpu_percent", cpuPercent).
		Float64("power_watts", reading.TotalPowerWatts).
		Msg("Published reading")

	return nil
}
