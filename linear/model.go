// Package linear assembles local and global explanation records for fitted
// linear models. A local record decomposes each prediction into additive
// per-feature contributions; a global record traces each feature's exact
// contribution curve across its observed range. The model itself is an
// external collaborator reached through the capability interfaces below.
package linear

import "github.com/sgrimes/go-glass/explain"

// Model exposes the fitted parameters of a linear model. Coefficients
// returns one row per model output: a single row for regressors and binary
// classifiers trained the usual way, one row per class otherwise.
type Model interface {
	// Fitted reports whether the model has been fit. Explaining an
	// unfitted model fails with ModelNotFittedError.
	Fitted() bool

	// Coefficients returns the coefficient matrix, [outputs][features].
	Coefficients() [][]float64

	// Intercepts returns the intercept per output row.
	Intercepts() []float64
}

// Regressor is a linear model predicting a continuous target
type Regressor interface {
	Model

	// Predict returns one prediction per instance row
	Predict(x [][]float64) []float64
}

// Classifier is a linear model predicting class probabilities
type Classifier interface {
	Model

	// Classes returns the class labels in the order the probability
	// columns are reported, sorted ascending.
	Classes() []float64

	// PredictProba returns one probability row per instance,
	// [instances][classes].
	PredictProba(x [][]float64) [][]float64
}

// reducedParams collapses the model's parameters to the single coefficient
// vector and intercept used for attribution. Binary classifiers keep only
// the positive-class row, the same row whose probability column ExplainLocal
// reports, so attribution always matches the reported score. Classifiers
// with more than two classes are unsupported.
func reducedParams(m Model, classifier Classifier) ([]float64, float64, error) {
	if classifier != nil {
		if n := len(classifier.Classes()); n != 2 {
			return nil, 0, &explain.UnsupportedClassCountError{Count: n}
		}
	}
	coef := m.Coefficients()
	intercepts := m.Intercepts()
	if len(coef) == 0 || len(intercepts) == 0 {
		return nil, 0, &explain.ModelNotFittedError{}
	}
	return coef[0], intercepts[0], nil
}
