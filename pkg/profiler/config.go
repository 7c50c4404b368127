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

package profiler

import (
	"time"

	"github.com/carverauto/carbonscope/pkg/config"
	"github.com/carverauto/carbonscope/pkg/intensity"
	"github.com/carverauto/carbonscope/pkg/logger"
	"github.com/carverauto/carbonscope/pkg/models"
)

const (
	defaultPollInterval   = 10 * time.Second
	defaultBatchSize      = 100
	defaultSampleInterval = 5.0
)

// Config drives the attribution worker.
type Config struct {
	Database       *models.PostgresDatabase `json:"database"`
	Intensity      intensity.Config         `json:"intensity"`
	PollInterval   models.Duration          `json:"poll_interval,omitempty"`
	BatchSize      int                      `json:"batch_size,omitempty"`
	SampleInterval float64                  `json:"sample_interval_seconds,omitempty"`
	Logging        *logger.Config           `json:"logging,omitempty"`
}

// Validate applies defaults and checks required fields. Secrets are taken
// from the environment when set there, so they can stay out of config files.
func (c *Config) Validate() error {
	if c.Database == nil {
		return ErrDatabaseRequired
	}

	c.Database.Password = config.EnvOrDefault("DB_PASSWORD", c.Database.Password)
	c.Intensity.APIToken = config.EnvOrDefault("ELECTRICITY_MAP_API_TOKEN", c.Intensity.APIToken)

	if c.PollInterval <= 0 {
		c.PollInterval = models.Duration(defaultPollInterval)
	}

	if c.BatchSize <= 0 {
		c.BatchSize = defaultBatchSize
	}

	if c.SampleInterval <= 0 {
		c.SampleInterval = defaultSampleInterval
	}

	return nil
}
