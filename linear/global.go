package linear

import (
	"strconv"

	"gonum.org/v1/gonum/floats"

	"github.com/sgrimes/go-glass/explain"
)

// gridResolution is the number of evenly spaced sample points per
// continuous feature in a global contribution curve.
const gridResolution = 30

// ExplainGlobal builds a global explanation record. The overall block
// reports the raw coefficient vector with the intercept in Extra — the
// single source of truth for feature-ranking consumers. Each specific block
// traces one feature's contribution curve: coefficient * point over an
// evenly spaced grid across the observed range for continuous features, or
// over the observed unique values for categorical ones. Under a linear
// model the curve is an exact function of the feature, so identical
// snapshots always reproduce identical curves. Every block is overlaid
// with the feature's training-data histogram, and blocks appear in feature
// metadata order, one per feature. The returned selector table is
// index-aligned with the blocks.
func (e *Explainer) ExplainGlobal(name string) (*explain.Record, []explain.GlobalSelectorRow, error) {
	if e.snap == nil || !e.model().Fitted() {
		return nil, nil, &explain.ModelNotFittedError{}
	}

	coef, intercept, err := reducedParams(e.model(), e.classifier)
	if err != nil {
		return nil, nil, err
	}
	if len(coef) != len(e.features) {
		return nil, nil, &explain.DimensionMismatchError{What: "coefficients", Expected: len(e.features), Got: len(coef)}
	}
	if name == "" {
		name = e.name()
	}

	rec := explain.NewRecord(explain.Global, name, e.features)

	overallScores := make([]float64, len(coef))
	copy(overallScores, coef)
	rec.Overall = &explain.Block{
		Names:  e.features.Names(),
		Scores: overallScores,
		Extra: &explain.Extra{
			Names:  []string{"Intercept"},
			Scores: []float64{intercept},
		},
	}

	rec.Specific = make([]explain.Block, len(e.features))
	for j, f := range e.features {
		var grid []float64
		if f.Type.Categorical() {
			uniques := e.snap.catUniques[j]
			grid = make([]float64, len(uniques))
			copy(grid, uniques)
		} else {
			grid = make([]float64, gridResolution)
			floats.Span(grid, e.snap.mins[j], e.snap.maxs[j])
		}

		names := make([]string, len(grid))
		scores := make([]float64, len(grid))
		for i, point := range grid {
			names[i] = strconv.FormatFloat(point, 'g', -1, 64)
			scores[i] = coef[j] * point
		}

		density := e.snap.densities[j]
		rec.Specific[j] = explain.Block{
			Names:   names,
			Scores:  scores,
			Values:  grid,
			Density: &density,
		}
	}

	return rec, e.snap.selector, nil
}
