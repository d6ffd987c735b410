package linear

import (
	"github.com/sgrimes/go-glass/explain"
)

// ExplainLocal builds a local explanation record with one block per
// instance row. Each block's scores are the elementwise products
// coefficient[j] * x[j] — a linear attribution, exact for this model
// family — and the intercept is reported separately in the block's Extra,
// so that sum(scores) + intercept reproduces the model's raw output for
// every instance. When y is non-nil each block also carries a performance
// annotation; when y is nil the annotation is absent from every block.
// The returned selector table is index-aligned with the record's blocks.
func (e *Explainer) ExplainLocal(x [][]float64, y []float64, name string) (*explain.Record, []explain.LocalSelectorRow, error) {
	if e.snap == nil || !e.model().Fitted() {
		return nil, nil, &explain.ModelNotFittedError{}
	}
	if len(x) == 0 {
		return nil, nil, &explain.ZeroSampleError{}
	}
	for i := range x {
		if len(x[i]) != len(e.features) {
			return nil, nil, &explain.DimensionMismatchError{What: "X columns", Expected: len(e.features), Got: len(x[i])}
		}
	}
	if y != nil && len(y) != len(x) {
		return nil, nil, &explain.DimensionMismatchError{What: "y", Expected: len(x), Got: len(y)}
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

	predictions := e.predictScores(x)
	featureNames := e.features.Names()

	rec := explain.NewRecord(explain.Local, name, e.features)
	rec.Specific = make([]explain.Block, len(x))
	for i, instance := range x {
		scores := make([]float64, len(coef))
		values := make([]float64, len(instance))
		for j := range coef {
			scores[j] = coef[j] * instance[j]
			values[j] = instance[j]
		}

		block := explain.Block{
			Names:  featureNames,
			Scores: scores,
			Values: values,
			Extra: &explain.Extra{
				Names:  []string{"Intercept"},
				Scores: []float64{intercept},
				Values: []float64{1},
			},
		}
		if y != nil {
			block.Perf = e.perfInfo(predictions[i], y[i])
		}
		rec.Specific[i] = block
	}

	return rec, explain.LocalSelector(rec.Specific, predictions), nil
}

// predictScores returns the per-instance score the attribution explains:
// the positive-class probability for classifiers, the prediction for
// regressors.
func (e *Explainer) predictScores(x [][]float64) []float64 {
	if e.classifier == nil {
		return e.regressor.Predict(x)
	}
	proba := e.classifier.PredictProba(x)
	scores := make([]float64, len(proba))
	for i := range proba {
		scores[i] = proba[i][1]
	}
	return scores
}

func (e *Explainer) perfInfo(predicted, actual float64) *explain.PerfInfo {
	if e.classifier == nil {
		return &explain.PerfInfo{
			Actual:    actual,
			Predicted: predicted,
			Residual:  actual - predicted,
		}
	}

	classes := e.classifier.Classes()
	predictedClass := classes[0]
	predictedScore := 1 - predicted
	if predicted >= 0.5 {
		predictedClass = classes[1]
		predictedScore = predicted
	}
	actualScore := 1 - predicted
	if actual == classes[1] {
		actualScore = predicted
	}

	return &explain.PerfInfo{
		IsClassification: true,
		Actual:           actual,
		Predicted:        predictedClass,
		ActualScore:      actualScore,
		PredictedScore:   predictedScore,
		Correct:          predictedClass == actual,
	}
}
