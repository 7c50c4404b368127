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

package agent

import (
	"errors"
	"time"

	"github.com/carverauto/carbonscope/pkg/logger"
	"github.com/carverauto/carbonscope/pkg/models"
)

const defaultSampleInterval = 5 * time.Second

var ErrEndpointRequired = errors.New("agent: api_endpoint is required")

// Config drives one device agent.
type Config struct {
	APIEndpoint    string             `json:"api_endpoint"`
	APIKey         string             `json:"api_key,omitempty"`
	DeviceID       string             `json:"device_id,omitempty"`
	DeviceClass    models.DeviceClass `json:"device_class,omitempty"`
	SampleInterval models.Duration    `json:"sample_interval,omitempty"`
	StateFile      string             `json:"state_file,omitempty"`
	Latitude       *float64           `json:"latitude,omitempty"`
	Longitude      *float64           `json:"longitude,omitempty"`
	CountryCode    string             `json:"country_code,omitempty"`
	Logging        *logger.Config     `json:"logging,omitempty"`
}

// Validate applies defaults and checks required fields.
func (c *Config) Validate() error {
	if c.APIEndpoint == "" {
		return ErrEndpointRequired
	}

	if !c.DeviceClass.Valid() {
		c.DeviceClass = models.DeviceClassLaptop
	}

	if c.SampleInterval <= 0 {
		c.SampleInterval = models.Duration(defaultSampleInterval)
	}

	return nil
}
