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

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/carbonscope/pkg/logger"
)

func ptr(v float64) *float64 { return &v }

type countingFetcher struct {
	calls int
	value float64
	err   error
}

func (f *countingFetcher) Fetch(_ context.Context, _, _ float64) (float64, error) {
	f.calls++
	return f.value, f.err
}

func TestFallbackIntensity(t *testing.T) {
	tests := []struct {
		name        string
		countryCode string
		want        float64
	}{
		{name: "india", countryCode: "IN", want: 632},
		{name: "united states", countryCode: "US", want: 417},
		{name: "europe", countryCode: "EU", want: 295},
		{name: "china", countryCode: "CN", want: 555},
		{name: "lowercase code", countryCode: "in", want: 632},
		{name: "unknown code", countryCode: "BR", want: 475},
		{name: "empty code", countryCode: "", want: 475},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FallbackIntensity(tt.countryCode))
		})
	}
}

func TestResolveWithoutCredentialNeverFetches(t *testing.T) {
	fetcher := &countingFetcher{value: 100}

	resolver := NewResolver(&Config{}, logger.NewTestLogger())
	resolver.fetcher = nil

	result := resolver.Resolve(context.Background(), ptr(12.9), ptr(77.6), "IN")

	assert.Equal(t, SourceFallback, result.Source)
	assert.Equal(t, float64(632), result.Intensity)
	assert.Zero(t, fetcher.calls)
}

func TestResolveWithoutCoordinatesUsesFallback(t *testing.T) {
	fetcher := &countingFetcher{value: 100}

	resolver := NewResolver(&Config{APIToken: "token"}, logger.NewTestLogger())
	resolver.fetcher = fetcher

	result := resolver.Resolve(context.Background(), nil, nil, "US")

	assert.Equal(t, SourceFallback, result.Source)
	assert.Equal(t, float64(417), result.Intensity)
	assert.Zero(t, fetcher.calls)
}

func TestResolveCachesByRoundedBucket(t *testing.T) {
	fetcher := &countingFetcher{value: 250}

	resolver := NewResolver(&Config{APIToken: "token"}, logger.NewTestLogger())
	resolver.fetcher = fetcher

	first := resolver.Resolve(context.Background(), ptr(12.94), ptr(77.61), "IN")
	assert.Equal(t, SourceLive, first.Source)
	assert.Equal(t, float64(250), first.Intensity)

	// Different exact coordinates, same 0.1-degree bucket.
	second := resolver.Resolve(context.Background(), ptr(12.93), ptr(77.64), "IN")
	assert.Equal(t, SourceCache, second.Source)
	assert.Equal(t, float64(250), second.Intensity)
	assert.Equal(t, 1, fetcher.calls)

	// A different bucket triggers its own fetch.
	third := resolver.Resolve(context.Background(), ptr(13.4), ptr(77.6), "IN")
	assert.Equal(t, SourceLive, third.Source)
	assert.Equal(t, 2, fetcher.calls)
}

func TestResolveExpiredEntryRefetches(t *testing.T) {
	fetcher := &countingFetcher{value: 250}

	resolver := NewResolver(&Config{APIToken: "token"}, logger.NewTestLogger())
	resolver.fetcher = fetcher

	now := time.Now()
	resolver.cache.now = func() time.Time { return now }

	resolver.Resolve(context.Background(), ptr(12.9), ptr(77.6), "IN")
	require.Equal(t, 1, fetcher.calls)

	// Advance past the TTL; the entry must not be served.
	resolver.cache.now = func() time.Time { return now.Add(defaultCacheTTL + time.Second) }

	result := resolver.Resolve(context.Background(), ptr(12.9), ptr(77.6), "IN")
	assert.Equal(t, SourceLive, result.Source)
	assert.Equal(t, 2, fetcher.calls)
}

func TestResolveFetchFailureFallsBack(t *testing.T) {
	fetcher := &countingFetcher{err: errors.New("provider down")}

	resolver := NewResolver(&Config{APIToken: "token"}, logger.NewTestLogger())
	resolver.fetcher = fetcher

	result := resolver.Resolve(context.Background(), ptr(40.7), ptr(-74.0), "US")

	assert.Equal(t, SourceFallback, result.Source)
	assert.Equal(t, float64(417), result.Intensity)
	assert.Equal(t, 1, fetcher.calls)

	// Failures are not cached; the next resolve tries the provider again.
	resolver.Resolve(context.Background(), ptr(40.7), ptr(-74.0), "US")
	assert.Equal(t, 2, fetcher.calls)
}

func TestCacheKeyRounding(t *testing.T) {
	assert.Equal(t, "12.9,77.6", cacheKey(12.94, 77.61))
	assert.Equal(t, "12.9,77.6", cacheKey(12.93, 77.64))
	assert.Equal(t, "13.0,77.6", cacheKey(12.96, 77.58))
	assert.Equal(t, "-33.9,151.2", cacheKey(-33.87, 151.21))
}

func TestHTTPFetcher(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "secret", r.Header.Get("auth-token"))
			assert.Equal(t, "12.9", r.URL.Query().Get("lat"))
			assert.Equal(t, "77.6", r.URL.Query().Get("lon"))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"carbonIntensity": 712.4, "zone": "IN-SO"}`))
		}))
		defer server.Close()

		fetcher := newHTTPFetcher(&Config{APIURL: server.URL, APIToken: "secret"})

		value, err := fetcher.Fetch(context.Background(), 12.9, 77.6)
		require.NoError(t, err)
		assert.InDelta(t, 712.4, value, 0.001)
	})

	t.Run("non-OK status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		fetcher := newHTTPFetcher(&Config{APIURL: server.URL, APIToken: "secret"})

		_, err := fetcher.Fetch(context.Background(), 12.9, 77.6)
		require.ErrorIs(t, err, ErrProviderStatus)
	})

	t.Run("missing intensity field", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"zone": "IN-SO"}`))
		}))
		defer server.Close()

		fetcher := newHTTPFetcher(&Config{APIURL: server.URL, APIToken: "secret"})

		_, err := fetcher.Fetch(context.Background(), 12.9, 77.6)
		require.ErrorIs(t, err, ErrMissingIntensityField)
	})

	t.Run("malformed body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		}))
		defer server.Close()

		fetcher := newHTTPFetcher(&Config{APIURL: server.URL, APIToken: "secret"})

		_, err := fetcher.Fetch(context.Background(), 12.9, 77.6)
		require.ErrorIs(t, err, ErrProviderResponse)
	})
}
