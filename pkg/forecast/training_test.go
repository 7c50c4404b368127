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
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "history.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadCSVElectricityMapExport(t *testing.T) {
	path := writeCSV(t, `Datetime (UTC),Country,Zone name,Carbon intensity gCO₂eq/kWh (Life cycle)
2024-01-01 00:00:00,India,Southern India,701.23
2024-01-01 01:00:00,India,Southern India,695.10
2024-01-01 02:00:00,India,Southern India,
2024-01-01 03:00:00,India,Southern India,680.44
`)

	samples, err := LoadCSV(path, time.UTC)
	require.NoError(t, err)
	require.Len(t, samples, 3)

	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), samples[0].Timestamp)
	assert.InDelta(t, 701.23, samples[0].Intensity, 0.001)
	assert.Equal(t, time.Date(2024, 1, 1, 3, 0, 0, 0, time.UTC), samples[2].Timestamp)
}

func TestLoadCSVShortHeaders(t *testing.T) {
	path := writeCSV(t, `timestamp,intensity
2024-03-01T00:00:00Z,512.5
2024-03-01T01:00:00Z,498.0
`)

	samples, err := LoadCSV(path, time.UTC)
	require.NoError(t, err)
	require.Len(t, samples, 2)
	assert.Equal(t, 512.5, samples[0].Intensity)
}

func TestLoadCSVConvertsToDisplayZoneNaive(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	path := writeCSV(t, `Datetime (UTC),Carbon intensity gCO2eq/kWh (Life cycle)
2024-01-01 00:00:00,700
`)

	samples, err := LoadCSV(path, loc)
	require.NoError(t, err)
	require.Len(t, samples, 1)

	// Midnight UTC is 05:30 IST; the naive timestamp keeps the IST clock
	// reading with the zone stripped.
	assert.Equal(t, time.Date(2024, 1, 1, 5, 30, 0, 0, time.UTC), samples[0].Timestamp)
}

func TestLoadCSVMissingColumns(t *testing.T) {
	path := writeCSV(t, `foo,bar
1,2
`)

	_, err := LoadCSV(path, time.UTC)
	require.ErrorIs(t, err, ErrMalformedCSV)
}

func TestLoadCSVNoUsableRows(t *testing.T) {
	path := writeCSV(t, `timestamp,intensity
garbage,alsogarbage
`)

	_, err := LoadCSV(path, time.UTC)
	require.ErrorIs(t, err, ErrMalformedCSV)
}

func TestLoadCSVMissingFile(t *testing.T) {
	_, err := LoadCSV(filepath.Join(t.TempDir(), "absent.csv"), time.UTC)
	require.Error(t, err)
}
