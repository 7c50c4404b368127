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
	"time"
)

// DisplayLocation resolves the timezone forecasts are expressed in:
// APP_TIMEZONE, then TZ, then UTC. Seasonal fitting itself is
// timezone-naive; the location only shapes the wall-clock grid.
func DisplayLocation() *time.Location {
	for _, env := range []string{"APP_TIMEZONE", "TZ"} {
		if name := os.Getenv(env); name != "" {
			if loc, err := time.LoadLocation(name); err == nil {
				return loc
			}
		}
	}

	return time.UTC
}

// naiveTime strips the zone from a wall-clock instant: the same clock reading
// reinterpreted as UTC, which is how the model indexes time.
func naiveTime(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}

// localizeNaive reattaches a display zone to a naive model timestamp.
func localizeNaive(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, loc)
}
