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

package predictor

import (
	"errors"

	"github.com/carverauto/carbonscope/pkg/config"
	"github.com/carverauto/carbonscope/pkg/logger"
	"github.com/carverauto/carbonscope/pkg/models"
)

var (
	ErrListenAddrRequired = errors.New("predictor: listen_addr is required")
	ErrModelPathRequired  = errors.New("predictor: model_path is required")
)

// Config is the prediction service configuration. Database is optional:
// when present, training merges the stored intensity history into the CSV
// series.
type Config struct {
	ListenAddr   string                   `json:"listen_addr"`
	APIKey       string                   `json:"api_key,omitempty"`
	ModelPath    string                   `json:"model_path"`
	TrainingCSVs []string                 `json:"training_csvs,omitempty"`
	Flexibility  float64                  `json:"changepoint_flexibility,omitempty"`
	Timezone     string                   `json:"timezone,omitempty"`
	Database     *models.PostgresDatabase `json:"database,omitempty"`
	Logging      *logger.Config           `json:"logging,omitempty"`
}

// Validate checks required fields.
func (c *Config) Validate() error {
	if c.ListenAddr == "" {
		return ErrListenAddrRequired
	}

	if c.ModelPath == "" {
		return ErrModelPathRequired
	}

	if c.Database != nil {
		c.Database.Password = config.EnvOrDefault("DB_PASSWORD", c.Database.Password)
	}

	return nil
}
