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
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
)

// hostSampler reads CPU utilization from the OS.
type hostSampler struct{}

// NewHostSampler returns a CPUSampler backed by the host's kernel counters.
func NewHostSampler() CPUSampler {
	return hostSampler{}
}

func (hostSampler) Sample(ctx context.Context, interval time.Duration) (float64, error) {
	percents, err := cpu.PercentWithContext(ctx, interval, false)
	if err != nil {
		return 0, fmt.Errorf("failed to sample cpu utilization: %w", err)
	}

	if len(percents) == 0 {
		return 0, errNoCPUSample
	}

	return percents[0], nil
}
