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
	"fmt"
	"math"
	"sync"
	"time"
)

// cacheKey buckets coordinates to one decimal place, roughly 11 km. Readings
// from the same area share one provider fetch per TTL window.
func cacheKey(lat, lon float64) string {
	return fmt.Sprintf("%.1f,%.1f", math.Round(lat*10)/10, math.Round(lon*10)/10)
}

type cacheEntry struct {
	value     float64
	fetchedAt time.Time
}

// cache is a TTL map of spatial bucket to fetched intensity. Last writer wins
// on key collision; values are idempotent fetches of the same signal.
type cache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
	now     func() time.Time
}

func newCache(ttl time.Duration) *cache {
	return &cache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (c *cache) get(key string) (float64, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || c.now().Sub(entry.fetchedAt) >= c.ttl {
		return 0, false
	}

	return entry.value, true
}

func (c *cache) put(key string, value float64) {
	c.mu.Lock()
	c.entries[key] = cacheEntry{value: value, fetchedAt: c.now()}
	c.mu.Unlock()
}
