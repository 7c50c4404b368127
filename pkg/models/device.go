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

// Package models defines the shared data types exchanged between the agent,
// the ingestion core, the profiling worker, and the predictor.
package models

import (
	"time"
)

// DeviceClass identifies the hardware category a reading came from. The set is
// closed; anything else falls back to the laptop embodied-carbon profile at
// attribution time.
type DeviceClass string

const (
	DeviceClassSmartphone  DeviceClass = "smartphone"
	DeviceClassTablet      DeviceClass = "tablet"
	DeviceClassLaptop      DeviceClass = "laptop"
	DeviceClassDesktop     DeviceClass = "desktop"
	DeviceClassWorkstation DeviceClass = "workstation"
	DeviceClassServer      DeviceClass = "server"
)

// KnownDeviceClasses lists every recognized device class.
func KnownDeviceClasses() []DeviceClass {
	return []DeviceClass{
		DeviceClassSmartphone,
		DeviceClassTablet,
		DeviceClassLaptop,
		DeviceClassDesktop,
		DeviceClassWorkstation,
		DeviceClassServer,
	}
}

// Valid reports whether the class is part of the closed enumeration.
func (c DeviceClass) Valid() bool {
	switch c {
	case DeviceClassSmartphone, DeviceClassTablet, DeviceClassLaptop,
		DeviceClassDesktop, DeviceClassWorkstation, DeviceClassServer:
		return true
	default:
		return false
	}
}

// Reading is one power-draw sample reported by a device agent. Immutable once
// ingested; the profiling worker consumes each reading exactly once.
type Reading struct {
	ID              int64       `json:"id,omitempty"`
	DeviceID        string      `json:"device_id"`
	DeviceClass     DeviceClass `json:"device_class"`
	Timestamp       time.Time   `json:"timestamp"`
	TotalPowerWatts float64     `json:"total_power_watts"`
	Latitude        *float64    `json:"latitude,omitempty"`
	Longitude       *float64    `json:"longitude,omitempty"`
	CountryCode     string      `json:"country_code,omitempty"`
	ReceivedAt      time.Time   `json:"received_at,omitempty"`
}

// HasLocation reports whether the reading carries usable coordinates.
func (r *Reading) HasLocation() bool {
	return r.Latitude != nil && r.Longitude != nil
}

// DeviceSummary describes one reporting device for the devices listing.
type DeviceSummary struct {
	DeviceID         string      `json:"device_id"`
	DeviceClass      DeviceClass `json:"device_class"`
	RecordCount      int64       `json:"record_count"`
	LastSeen         time.Time   `json:"last_seen"`
	LatestPowerWatts float64     `json:"latest_power_watts"`
}
