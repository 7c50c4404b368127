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

package db

import "errors"

var (

	// Core database errors.

	ErrDatabaseError = errors.New("database error")

	// Operation errors.

	ErrFailedToScan   = errors.New("failed to scan")
	ErrFailedToQuery  = errors.New("failed to query")
	ErrFailedToInsert = errors.New("failed to insert")
	ErrFailedToInit   = errors.New("failed to initialize schema")
	ErrFailedOpenDB   = errors.New("failed to open database")

	// Validation errors for ingested readings.

	ErrReadingNil             = errors.New("reading is nil")
	ErrReadingDeviceIDMissing = errors.New("reading device id is required")
	ErrReadingTimestampZero   = errors.New("reading timestamp is required")

	// Footprint validation.

	ErrFootprintNil              = errors.New("carbon footprint record is nil")
	ErrFootprintReadingIDMissing = errors.New("footprint reading id is required")

	// Device lookups.

	ErrDeviceNotFound = errors.New("device not found")

	// TLS helpers.

	ErrLackingTLSFiles = errors.New("db tls requires cert_file, key_file, and ca_file")
	ErrAppendCACert    = errors.New("db tls: unable to append CA certificate")
)
