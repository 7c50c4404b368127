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

// Package attribution converts power-draw samples into operational and
// embodied carbon mass. All functions are pure; the embodied side amortizes a
// device's manufacturing footprint evenly across the sample intervals expected
// over its lifetime.
package attribution

import (
	"errors"

	"github.com/carverauto/carbonscope/pkg/models"
)

// ErrNegativePower rejects physically impossible samples. Zero is fine (an
// idle or suspended device), negative is always caller error.
var ErrNegativePower = errors.New("power draw must not be negative")

const (
	wattSecondsPerKWh = 3_600_000

	secondsPerYear = 365 * 24 * 3600
)

// Footprint is the carbon cost of one sample interval.
type Footprint struct {
	PowerKWh           float64
	OperationalCarbonG float64
	EmbodiedCarbonG    float64
	TotalCarbonG       float64
}

// Attribute computes the carbon footprint of one power sample.
//
// Operational carbon is the energy of the interval (watt-seconds converted to
// kWh) times the grid intensity. Embodied carbon is the device's total
// manufacturing footprint in grams divided by the number of intervals in its
// expected lifetime. TotalCarbonG is exactly the sum of the two.
func Attribute(powerWatts, intervalSeconds, gridIntensity float64, class models.DeviceClass) (Footprint, error) {
	if powerWatts < 0 {
		return Footprint{}, ErrNegativePower
	}

	profile := ProfileFor(class)

	powerKWh := powerWatts * intervalSeconds / wattSecondsPerKWh
	operational := powerKWh * gridIntensity

	var embodied float64

	if intervalSeconds > 0 {
		lifetimeIntervals := profile.LifetimeYears * secondsPerYear / intervalSeconds
		embodied = profile.TotalEmbodiedKg * 1000 / lifetimeIntervals
	}

	return Footprint{
		PowerKWh:           powerKWh,
		OperationalCarbonG: operational,
		EmbodiedCarbonG:    embodied,
		TotalCarbonG:       operational + embodied,
	}, nil
}
