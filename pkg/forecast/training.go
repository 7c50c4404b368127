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

package forecast

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/carverauto/carbonscope/pkg/models"
)

// Column headers accepted in historical intensity exports. The long forms
// match the electricity-map hourly dataset; the short forms are ours.
var (
	timestampHeaders = []string{"Datetime (UTC)", "timestamp", "datetime"}
	intensityHeaders = []string{
		"Carbon intensity gCO₂eq/kWh (Life cycle)",
		"Carbon intensity gCO2eq/kWh (Life cycle)",
		"intensity_gco2_per_kwh",
		"intensity",
	}
)

var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
}

// LoadCSV reads one historical hourly export. Timestamps are parsed as UTC,
// converted to the given display location, and stripped naive for fitting.
// Rows with a missing or unparseable value are skipped; a file yielding no
// rows at all is an error since training is a supervised offline step.
func LoadCSV(path string, loc *time.Location) ([]models.IntensitySample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open training CSV: %w", err)
	}
	defer f.Close() //nolint:errcheck // read-only file

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformedCSV, path, err)
	}

	tsCol := findColumn(header, timestampHeaders)
	valCol := findColumn(header, intensityHeaders)

	if tsCol < 0 || valCol < 0 {
		return nil, fmt.Errorf("%w: %s: missing timestamp or intensity column", ErrMalformedCSV, path)
	}

	var samples []models.IntensitySample

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrMalformedCSV, path, err)
		}

		if tsCol >= len(record) || valCol >= len(record) {
			continue
		}

		ts, ok := parseTimestamp(record[tsCol])
		if !ok {
			continue
		}

		value, err := strconv.ParseFloat(strings.TrimSpace(record[valCol]), 64)
		if err != nil {
			continue
		}

		samples = append(samples, models.IntensitySample{
			Timestamp: naiveTime(ts.In(loc)),
			Intensity: value,
		})
	}

	if len(samples) == 0 {
		return nil, fmt.Errorf("%w: %s: no usable rows", ErrMalformedCSV, path)
	}

	return samples, nil
}

func findColumn(header, candidates []string) int {
	for i, name := range header {
		for _, want := range candidates {
			if strings.EqualFold(strings.TrimSpace(name), want) {
				return i
			}
		}
	}

	return -1
}

func parseTimestamp(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)

	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts.UTC(), true
		}
	}

	return time.Time{}, false
}
