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

func TestSaveAndLoadModel(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	series := sinusoidalSeries(start, 60*24)

	trained, err := Fit(series, 0, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "models", "grid.json")
	require.NoError(t, SaveModel(path, trained))

	loaded, err := LoadModel(path)
	require.NoError(t, err)

	assert.Equal(t, trained.Coefficients, loaded.Coefficients)
	assert.Equal(t, trained.Changepoints, loaded.Changepoints)
	assert.Equal(t, trained.ResidualStd, loaded.ResidualStd)
	assert.True(t, trained.Epoch.Equal(loaded.Epoch))

	// Predictions from the reloaded model are identical.
	at := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)

	p1, l1, u1 := trained.PredictAt(at)
	p2, l2, u2 := loaded.PredictAt(at)

	assert.Equal(t, p1, p2)
	assert.Equal(t, l1, l2)
	assert.Equal(t, u1, u2)
}

func TestSaveModelReplacesAtomically(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	first, err := Fit(sinusoidalSeries(start, 30*24), 0, time.Now())
	require.NoError(t, err)

	second, err := Fit(sinusoidalSeries(start, 60*24), 0, time.Now())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "grid.json")
	require.NoError(t, SaveModel(path, first))
	require.NoError(t, SaveModel(path, second))

	loaded, err := LoadModel(path)
	require.NoError(t, err)
	assert.Equal(t, second.Observations, loaded.Observations)

	// No temp files left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestLoadModelMissingFile(t *testing.T) {
	_, err := LoadModel(filepath.Join(t.TempDir(), "nope.json"))
	require.ErrorIs(t, err, ErrModelUnavailable)
}

func TestLoadModelCorruptBlob(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grid.json")
	require.NoError(t, os.WriteFile(path, []byte("not a model"), 0o600))

	_, err := LoadModel(path)
	require.ErrorIs(t, err, ErrModelUnavailable)
}
