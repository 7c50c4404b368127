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

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/carverauto/carbonscope/pkg/models"
)

const (
	ingestPath     = "/api/v1/metrics/ingest"
	publishTimeout = 10 * time.Second
	publishRetries = 3
	retryBackoff   = time.Second
)

// httpPublisher posts readings to the ingestion API over HTTP.
type httpPublisher struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// NewHTTPPublisher returns a Publisher that posts readings to the ingestion
// API rooted at endpoint. endpoint is the base URL, without the API path.
func NewHTTPPublisher(endpoint, apiKey string) Publisher {
	return &httpPublisher{
		endpoint: strings.TrimRight(endpoint, "/") + ingestPath,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: publishTimeout},
	}
}

func (p *httpPublisher) Publish(ctx context.Context, reading *models.Reading) error {
	payload, err := json.Marshal(reading)
	if err != nil {
		return fmt.Errorf("failed to marshal reading: %w", err)
	}

	var lastErr error

	for attempt := 0; attempt < publishRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(retryBackoff):
			}
		}

		lastErr = p.post(ctx, payload)
		if lastErr == nil {
			return nil
		}
	}

	return lastErr
}

func (p *httpPublisher) post(ctx context.Context, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	if p.apiKey != "" {
		req.Header.Set("X-API-Key", p.apiKey)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to deliver reading: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))

		return fmt.Errorf("ingestion API returned status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}
