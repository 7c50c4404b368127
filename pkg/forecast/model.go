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

// Package forecast fits and queries a seasonal model over historical hourly
// grid carbon-intensity data. The model is a harmonic regression in log
// space: a piecewise-linear trend with changepoints plus yearly, weekly, and
// daily Fourier terms. Fitting in log space makes the seasonal effects
// multiplicative, scaling with the trend level rather than adding to it.
package forecast

import (
	"fmt"
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/carverauto/carbonscope/pkg/models"
)

const (
	modelFormatVersion = 1

	daysPerYear = 365.25

	// 95% interval half-width in residual standard deviations.
	intervalZ = 1.96

	yearlyOrder = 10
	weeklyOrder = 3
	dailyOrder  = 8

	maxChangepoints = 25

	// Fraction of the history eligible for trend changepoints.
	changepointRange = 0.8

	defaultFlexibility = 0.05

	minObservations = 72
)

// Model is the fitted forecast state. Serialized as a single JSON blob and
// never mutated after fitting; retraining produces a replacement.
type Model struct {
	FormatVersion int       `json:"format_version"`
	Epoch         time.Time `json:"epoch"`
	Changepoints  []float64 `json:"changepoints"`
	Coefficients  []float64 `json:"coefficients"`
	ResidualStd   float64   `json:"residual_std"`
	Flexibility   float64   `json:"flexibility"`
	Observations  int       `json:"observations"`
	TrainedAt     time.Time `json:"trained_at"`
	HistoryStart  time.Time `json:"history_start"`
	HistoryEnd    time.Time `json:"history_end"`
}

// Fit trains a model on a naive-time intensity series. The series must be
// sorted ascending and free of duplicate timestamps (see MergeSeries).
// Nonpositive intensities are dropped before fitting since the model works
// in log space. Flexibility controls how readily the trend bends at
// changepoints; zero selects the default.
func Fit(series []models.IntensitySample, flexibility float64, now time.Time) (*Model, error) {
	if flexibility <= 0 {
		flexibility = defaultFlexibility
	}

	usable := make([]models.IntensitySample, 0, len(series))

	for _, s := range series {
		if s.Intensity > 0 {
			usable = append(usable, s)
		}
	}

	if len(usable) == 0 {
		return nil, ErrNoTrainingData
	}

	if len(usable) < minObservations {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrTooFewObservations, len(usable), minObservations)
	}

	epoch := usable[0].Timestamp
	span := daysSince(epoch, usable[len(usable)-1].Timestamp)

	changepoints := spreadChangepoints(span, len(usable))

	m := &Model{
		FormatVersion: modelFormatVersion,
		Epoch:         epoch,
		Changepoints:  changepoints,
		Flexibility:   flexibility,
		Observations:  len(usable),
		TrainedAt:     now,
		HistoryStart:  usable[0].Timestamp,
		HistoryEnd:    usable[len(usable)-1].Timestamp,
	}

	cols := m.featureCount()
	rows := len(usable)

	// Ridge rows keep the changepoint deltas small unless the data insists;
	// a larger flexibility weakens the penalty, bending the trend sooner.
	penalty := math.Sqrt(1 / flexibility)
	ridgeRows := len(changepoints)

	design := mat.NewDense(rows+ridgeRows, cols, nil)
	target := mat.NewVecDense(rows+ridgeRows, nil)

	for i, s := range usable {
		design.SetRow(i, m.features(daysSince(epoch, s.Timestamp)))
		target.SetVec(i, math.Log(s.Intensity))
	}

	for j := 0; j < ridgeRows; j++ {
		design.Set(rows+j, 2+j, penalty)
	}

	var qr mat.QR

	qr.Factorize(design)

	coef := mat.NewDense(cols, 1, nil)
	if err := qr.SolveTo(coef, false, target); err != nil {
		return nil, fmt.Errorf("failed to solve least squares: %w", err)
	}

	m.Coefficients = make([]float64, cols)
	for j := 0; j < cols; j++ {
		m.Coefficients[j] = coef.At(j, 0)
	}

	// Residual spread over the actual observations drives the 95% bounds.
	var sumSq float64

	for _, s := range usable {
		r := math.Log(s.Intensity) - m.logPredict(daysSince(epoch, s.Timestamp))
		sumSq += r * r
	}

	m.ResidualStd = math.Sqrt(sumSq / float64(len(usable)))

	return m, nil
}

// PredictAt returns the point forecast and 95% bounds for one naive instant.
func (m *Model) PredictAt(naive time.Time) (predicted, lower, upper float64) {
	z := m.logPredict(daysSince(m.Epoch, naive))

	predicted = math.Exp(z)
	lower = math.Exp(z - intervalZ*m.ResidualStd)
	upper = math.Exp(z + intervalZ*m.ResidualStd)

	return predicted, lower, upper
}

func (m *Model) logPredict(tDays float64) float64 {
	features := m.features(tDays)

	var z float64
	for j, f := range features {
		z += m.Coefficients[j] * f
	}

	return z
}

func (m *Model) featureCount() int {
	return 2 + len(m.Changepoints) + 2*(yearlyOrder+weeklyOrder+dailyOrder)
}

// features builds one design-matrix row: intercept, linear trend, hinge terms
// at each changepoint, then sin/cos pairs per seasonal period.
func (m *Model) features(tDays float64) []float64 {
	row := make([]float64, 0, m.featureCount())
	row = append(row, 1, tDays)

	for _, cp := range m.Changepoints {
		if tDays > cp {
			row = append(row, tDays-cp)
		} else {
			row = append(row, 0)
		}
	}

	row = appendHarmonics(row, tDays, daysPerYear, yearlyOrder)
	row = appendHarmonics(row, tDays, 7, weeklyOrder)
	row = appendHarmonics(row, tDays, 1, dailyOrder)

	return row
}

func appendHarmonics(row []float64, tDays, periodDays float64, order int) []float64 {
	for k := 1; k <= order; k++ {
		angle := 2 * math.Pi * float64(k) * tDays / periodDays
		row = append(row, math.Sin(angle), math.Cos(angle))
	}

	return row
}

// spreadChangepoints places candidate trend bends uniformly over the first
// changepointRange of the history, capped so short series stay identifiable.
func spreadChangepoints(spanDays float64, observations int) []float64 {
	n := maxChangepoints
	if byData := observations / 100; byData < n {
		n = byData
	}

	if n <= 0 || spanDays <= 0 {
		return nil
	}

	points := make([]float64, n)
	for i := 0; i < n; i++ {
		points[i] = spanDays * changepointRange * float64(i+1) / float64(n+1)
	}

	return points
}

func daysSince(epoch, t time.Time) float64 {
	return t.Sub(epoch).Hours() / 24
}

// MergeSeries concatenates series, de-duplicates by timestamp keeping the
// last occurrence, and sorts ascending. The result is fit-ready.
func MergeSeries(series ...[]models.IntensitySample) []models.IntensitySample {
	byTime := make(map[time.Time]models.IntensitySample)

	for _, s := range series {
		for _, sample := range s {
			byTime[sample.Timestamp] = sample
		}
	}

	merged := make([]models.IntensitySample, 0, len(byTime))
	for _, sample := range byTime {
		merged = append(merged, sample)
	}

	sort.Slice(merged, func(i, j int) bool {
		return merged[i].Timestamp.Before(merged[j].Timestamp)
	})

	return merged
}
