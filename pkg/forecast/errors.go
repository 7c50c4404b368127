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

import "errors"

var (
	// ErrModelUnavailable signals that no trained model exists or it failed
	// to load. Callers surface it as an explicit "unavailable" result; a
	// fabricated forecast would corrupt downstream scheduling decisions.
	ErrModelUnavailable = errors.New("forecast model unavailable")

	ErrNoTrainingData     = errors.New("no usable training data")
	ErrTooFewObservations = errors.New("too few observations to fit model")
	ErrMalformedCSV       = errors.New("malformed training CSV")
	ErrEmptyForecast      = errors.New("forecast produced no points")
)
