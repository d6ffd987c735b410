package linear

import (
	"github.com/sgrimes/go-glass/explain"
	"github.com/sgrimes/go-glass/histogram"
)

// Explainer produces explanation records for one fitted linear model. It
// holds the immutable feature metadata and, after Snapshot, the per-feature
// statistics of the training data that global explanations overlay. All
// explain calls are pure functions of the snapshot and their arguments, so
// an Explainer is safe for concurrent use once snapshotted.
type Explainer struct {
	regressor  Regressor
	classifier Classifier
	features   explain.FeatureMetadata
	snap       *snapshot
}

// snapshot captures the training-data statistics the assemblers need:
// observed ranges, categorical uniques, per-column histograms, and the
// global selector table. It is built once and never mutated.
type snapshot struct {
	mins       []float64
	maxs       []float64
	catUniques map[int][]float64
	densities  []explain.Density
	selector   []explain.GlobalSelectorRow
}

// NewRegressionExplainer wraps a fitted linear regressor
func NewRegressionExplainer(m Regressor, features explain.FeatureMetadata) *Explainer {
	return &Explainer{regressor: m, features: features}
}

// NewClassificationExplainer wraps a fitted linear classifier
func NewClassificationExplainer(m Classifier, features explain.FeatureMetadata) *Explainer {
	return &Explainer{classifier: m, features: features}
}

func (e *Explainer) model() Model {
	if e.classifier != nil {
		return e.classifier
	}
	return e.regressor
}

// Snapshot captures the per-feature statistics of the training data. It
// must be called once after the model is fit and before any explain call.
func (e *Explainer) Snapshot(x [][]float64) error {
	if !e.model().Fitted() {
		return &explain.ModelNotFittedError{}
	}
	if len(x) == 0 {
		return &explain.ZeroSampleError{}
	}
	for i := range x {
		if len(x[i]) != len(e.features) {
			return &explain.DimensionMismatchError{What: "X columns", Expected: len(e.features), Got: len(x[i])}
		}
	}

	snap := &snapshot{
		mins:       make([]float64, len(e.features)),
		maxs:       make([]float64, len(e.features)),
		catUniques: make(map[int][]float64),
		selector:   make([]explain.GlobalSelectorRow, len(e.features)),
	}

	column := make([]float64, len(x))
	for j, f := range e.features {
		for i := range x {
			column[i] = x[i][j]
		}

		lo, hi := column[0], column[0]
		nonZero := 0
		uniques := make(map[float64]struct{}, len(column))
		for _, v := range column {
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
			if v != 0 {
				nonZero++
			}
			uniques[v] = struct{}{}
		}
		snap.mins[j] = lo
		snap.maxs[j] = hi

		snap.selector[j] = explain.GlobalSelectorRow{
			Name:         f.Name,
			Type:         f.Type,
			UniqueCount:  len(uniques),
			NonZeroShare: float64(nonZero) / float64(len(column)),
		}
	}

	densities, err := histogram.PerColumn(x, e.features)
	if err != nil {
		return err
	}
	snap.densities = densities

	// Categorical grid points come from the binned uniques, which are
	// already sorted.
	for j, f := range e.features {
		if f.Type.Categorical() {
			snap.catUniques[j] = densities[j].Values
		}
	}

	e.snap = snap
	return nil
}

// Features returns the feature metadata the explainer was built with
func (e *Explainer) Features() explain.FeatureMetadata {
	return e.features
}

func (e *Explainer) name() string {
	if e.classifier != nil {
		return "LogisticRegression"
	}
	return "LinearRegression"
}
