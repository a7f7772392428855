// Package scoring computes per-module averages and the overall weighted
// score from a populated observation record.
package scoring

import (
	"github.com/askolte/rubricform/internal/domain/model"
)

// Weight applied to modules absent from the record's weight map.
const defaultModuleWeight = 1.0

// Option applies a configuration option to the Aggregator.
type Option func(*Aggregator)

// WithDefaultWeight sets the weight used for modules without an explicit
// entry in the record's weight map.
func WithDefaultWeight(w float64) Option {
	return func(a *Aggregator) {
		if w >= 0 {
			a.defaultWeight = w
		}
	}
}

// Summary carries the aggregation output for one record.
type Summary struct {
	// PerModule maps module ID to that module's plain average (0..4).
	PerModule map[string]float64
	// Overall is the weight-normalized mean of the per-module averages.
	Overall float64
}

// Aggregator computes scores. It is stateless between calls; computing
// twice on a mutated record always reflects the latest ratings.
type Aggregator struct {
	defaultWeight float64
}

// New creates an Aggregator with configuration options.
func New(opts ...Option) *Aggregator {
	a := &Aggregator{defaultWeight: defaultModuleWeight}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Compute returns per-module averages and the overall weighted score.
//
// A module's average is the arithmetic mean of its criterion ratings; a
// module without criteria scores 0. The overall score divides the
// weight-scaled sum of averages by the total weight; an all-zero total
// weight yields 0 rather than a division by zero.
func (a *Aggregator) Compute(rec *model.ObservationRecord) Summary {
	perModule := make(map[string]float64, len(rec.Modules))
	var weightedSum, weightTotal float64

	for mk, mod := range rec.Modules {
		var sum float64
		for _, cr := range mod.Criteria {
			sum += float64(cr.Rating)
		}
		avg := 0.0
		if n := len(mod.Criteria); n > 0 {
			avg = sum / float64(n)
		}
		perModule[mk] = avg

		w, ok := rec.Weights[mk]
		if !ok {
			w = a.defaultWeight
		}
		weightedSum += avg * w
		weightTotal += w
	}

	overall := 0.0
	if weightTotal != 0 {
		overall = weightedSum / weightTotal
	}
	return Summary{PerModule: perModule, Overall: overall}
}
