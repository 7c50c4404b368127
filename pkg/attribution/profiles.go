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

package attribution

import "github.com/carverauto/carbonscope/pkg/models"

// Profile is the embodied-carbon budget of one device class: total
// manufacturing footprint and the lifetime it amortizes over.
type Profile struct {
	TotalEmbodiedKg float64
	LifetimeYears   float64
}

// Canonical lifecycle-assessment figures per device class. Process-wide
// constants, never mutated at runtime.
var profiles = map[models.DeviceClass]Profile{
	models.DeviceClassSmartphone:  {TotalEmbodiedKg: 50, LifetimeYears: 2.5},
	models.DeviceClassTablet:      {TotalEmbodiedKg: 100, LifetimeYears: 3},
	models.DeviceClassLaptop:      {TotalEmbodiedKg: 200, LifetimeYears: 4},
	models.DeviceClassDesktop:     {TotalEmbodiedKg: 300, LifetimeYears: 5},
	models.DeviceClassWorkstation: {TotalEmbodiedKg: 400, LifetimeYears: 5},
	models.DeviceClassServer:      {TotalEmbodiedKg: 1500, LifetimeYears: 5},
}

// ProfileFor returns the embodied-carbon profile for a device class. An
// unrecognized class gets the laptop profile rather than an error.
func ProfileFor(class models.DeviceClass) Profile {
	if profile, ok := profiles[class]; ok {
		return profile
	}

	return profiles[models.DeviceClassLaptop]
}
