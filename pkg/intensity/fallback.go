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

package intensity

import "strings"

// DefaultIntensity is the global average used when no regional value applies.
const DefaultIntensity = 475

// Static annual-average intensities by region, gCO2/kWh.
var fallbackByRegion = map[string]float64{
	"IN": 632,
	"US": 417,
	"EU": 295,
	"CN": 555,
}

// FallbackIntensity returns the static regional intensity for a country code,
// or the global default when the code is empty or unknown.
func FallbackIntensity(countryCode string) float64 {
	if value, ok := fallbackByRegion[strings.ToUpper(countryCode)]; ok {
		return value
	}

	return DefaultIntensity
}
