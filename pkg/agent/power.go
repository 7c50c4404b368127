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

import "github.com/carverauto/carbonscope/pkg/models"

// powerProfile is the idle-to-TDP envelope of a device class, watts.
type powerProfile struct {
	idleWatts float64
	tdpWatts  float64
}

var powerProfiles = map[models.DeviceClass]powerProfile{
	models.DeviceClassSmartphone:  {idleWatts: 0.5, tdpWatts: 4},
	models.DeviceClassTablet:      {idleWatts: 1, tdpWatts: 8},
	models.DeviceClassLaptop:      {idleWatts: 8, tdpWatts: 45},
	models.DeviceClassDesktop:     {idleWatts: 25, tdpWatts: 95},
	models.DeviceClassWorkstation: {idleWatts: 40, tdpWatts: 150},
	models.DeviceClassServer:      {idleWatts: 90, tdpWatts: 350},
}

// EstimatePower maps CPU utilization to a power draw by linear interpolation
// between the class's idle draw and its TDP.
func EstimatePower(class models.DeviceClass, cpuPercent float64) float64 {
	profile, ok := powerProfiles[class]
	if !ok {
		profile = powerProfiles[models.DeviceClassLaptop]
	}

	if cpuPercent < 0 {
		cpuPercent = 0
	}

	if cpuPercent > 100 {
		cpuPercent = 100
	}

	return profile.idleWatts + cpuPercent/100*(profile.tdpWatts-profile.idleWatts)
}
