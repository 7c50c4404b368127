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
	"context"
	"time"

	"github.com/carverauto/carbonscope/pkg/models"
)

// Clock abstracts time-related operations.
type Clock interface {
	Now() time.Time
}

// CPUSampler measures CPU utilization over an interval.
type CPUSampler interface {
	// Sample blocks for the given interval and returns average CPU
	// utilization over it, in percent across all cores.
	Sample(ctx context.Context, interval time.Duration) (float64, error)
}

// Publisher delivers a power reading to the ingestion API.
type Publisher interface {
	Publish(ctx context.Context, reading *models.Reading) error
}
