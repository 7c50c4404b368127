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
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Fetcher retrieves a live grid-intensity measurement for exact coordinates.
type Fetcher interface {
	Fetch(ctx context.Context, lat, lon float64) (float64, error)
}

const defaultAPIURL = "https://api.electricitymap.org/v3/carbon-intensity/latest"

type httpFetcher struct {
	baseURL string
	token   string
	client  *http.Client
}

func newHTTPFetcher(cfg *Config) *httpFetcher {
	baseURL := cfg.APIURL
	if baseURL == "" {
		baseURL = defaultAPIURL
	}

	timeout := defaultFetchTimeout
	if cfg.FetchTimeout > 0 {
		timeout = time.Duration(cfg.FetchTimeout)
	}

	return &httpFetcher{
		baseURL: baseURL,
		token:   cfg.APIToken,
		client:  &http.Client{Timeout: timeout},
	}
}

type intensityResponse struct {
	CarbonIntensity *float64 `json:"carbonIntensity"`
}

// Fetch performs one provider round trip. Any non-200 status, transport
// failure, or response without a numeric carbonIntensity field is an error;
// the resolver turns all of them into fallback values.
func (f *httpFetcher) Fetch(ctx context.Context, lat, lon float64) (float64, error) {
	reqURL, err := url.Parse(f.baseURL)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidProviderURL, err)
	}

	query := reqURL.Query()
	query.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	query.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	query.Set("temporalGranularity", "hourly")
	reqURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), http.NoBody)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrProviderRequest, err)
	}

	req.Header.Set("auth-token", f.token)

	resp, err := f.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrProviderRequest, err)
	}
	defer resp.Body.Close() //nolint:errcheck // read-only body

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("%w: status %d", ErrProviderStatus, resp.StatusCode)
	}

	var payload intensityResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrProviderResponse, err)
	}

	if payload.CarbonIntensity == nil {
		return 0, ErrMissingIntensityField
	}

	return *payload.CarbonIntensity, nil
}
