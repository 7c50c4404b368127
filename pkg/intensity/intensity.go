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

// Package intensity resolves the current grid carbon intensity (gCO2/kWh) for
// a location, preferring a live provider measurement over cached data over a
// static regional fallback. Resolve never fails: every failure path degrades
// to a fallback value so attribution is never blocked on the provider.
package intensity

import (
	"context"
	"time"

	"github.com/carverauto/carbonscope/pkg/logger"
	"github.com/carverauto/carbonscope/pkg/models"
)

const (
	defaultCacheTTL     = 300 * time.Second
	defaultFetchTimeout = 5 * time.Second
)

// Source labels where a resolved intensity value came from.
type Source string

const (
	SourceLive     Source = "live"
	SourceCache    Source = "cache"
	SourceFallback Source = "fallback"
)

// Result is a resolved intensity value plus its provenance.
type Result struct {
	Intensity float64 `json:"intensity_gco2_per_kwh"`
	Source    Source  `json:"source"`
}

// Config holds the live-provider settings. An empty APIToken disables live
// fetching entirely; the resolver then serves fallback values only.
type Config struct {
	APIURL       string          `json:"api_url"`
	APIToken     string          `json:"api_token"`
	CacheTTL     models.Duration `json:"cache_ttl,omitempty"`
	FetchTimeout models.Duration `json:"fetch_timeout,omitempty"`
}

// Resolver answers intensity lookups through the cache / live / fallback
// chain. Safe for concurrent use.
type Resolver struct {
	fetcher Fetcher
	cache   *cache
	token   string
	logger  logger.Logger
}

// NewResolver builds a resolver around the given provider config.
func NewResolver(cfg *Config, log logger.Logger) *Resolver {
	ttl := defaultCacheTTL
	if cfg != nil && cfg.CacheTTL > 0 {
		ttl = time.Duration(cfg.CacheTTL)
	}

	var (
		fetcher Fetcher
		token   string
	)

	if cfg != nil && cfg.APIToken != "" {
		fetcher = newHTTPFetcher(cfg)
		token = cfg.APIToken
	}

	return &Resolver{
		fetcher: fetcher,
		cache:   newCache(ttl),
		token:   token,
		logger:  log,
	}
}

// Resolve returns the best available intensity estimate for the location.
// Cache entries are keyed on coordinates rounded to one decimal (~11 km);
// the live fetch uses the exact coordinates. With no credential configured,
// no coordinates, or any fetch failure, the regional fallback answers.
func (r *Resolver) Resolve(ctx context.Context, lat, lon *float64, countryCode string) Result {
	if lat == nil || lon == nil || r.fetcher == nil {
		return Result{Intensity: FallbackIntensity(countryCode), Source: SourceFallback}
	}

	key := cacheKey(*lat, *lon)

	if value, ok := r.cache.get(key); ok {
		return Result{Intensity: value, Source: SourceCache}
	}

	value, err := r.fetcher.Fetch(ctx, *lat, *lon)
	if err != nil {
		r.logger.Debug().
			Err(err).
			Float64("lat", *lat).
			Float64("lon", *lon).
			Str("country", countryCode).
			Msg("live intensity fetch failed, using fallback")

		return Result{Intensity: FallbackIntensity(countryCode), Source: SourceFallback}
	}

	r.cache.put(key, value)

	return Result{Intensity: value, Source: SourceLive}
}
