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

package models

import "time"

// ReadingStats is the aggregate view served by the stats endpoint.
type ReadingStats struct {
	TotalRecords      int64   `json:"total_records"`
	UniqueDevices     int64   `json:"unique_devices"`
	AveragePowerWatts float64 `json:"average_power_watts"`
}

// IngestResponse acknowledges an accepted reading.
type IngestResponse struct {
	Status     string    `json:"status"`
	DeviceID   string    `json:"device_id"`
	ReadingID  int64     `json:"reading_id"`
	ReceivedAt time.Time `json:"received_at"`
}

// ErrorResponse is the uniform error body for the HTTP surfaces.
type ErrorResponse struct {
	Error  string `json:"error"`
	Status string `json:"status"`
}
