// Package perf computes performance explanations for a model under
// evaluation: ROC and precision-recall discrimination curves for binary
// classifiers, and summary error metrics for regressors. Each computation
// returns a perf-kind explanation record whose density overlay ties the
// scalar summary to the residual distribution. All functions are pure and
// safe for concurrent use.
package perf

import (
	"math"
	"sort"

	"github.com/sgrimes/go-glass/explain"
	"github.com/sgrimes/go-glass/histogram"
)

// ROC computes the receiver operating characteristic curve for binary
// labels and prediction scores. Curve points are (FPR, TPR, threshold)
// triples ordered by descending threshold, one per distinct score, with a
// leading (0, 0) anchor at threshold +Inf. The scalar summary is the
// trapezoidal area under the curve. Ties in score are grouped at a single
// threshold, so identical inputs always produce identical curves.
func ROC(yTrue, scores []float64, name string) (*explain.Record, error) {
	y01, err := checkCurveInputs(yTrue, scores)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = "ROC"
	}

	totalPos, totalNeg := countClasses(y01)

	curve := &explain.Curve{
		X:          []float64{0},
		Y:          []float64{0},
		Thresholds: []float64{math.Inf(1)},
	}

	tp, fp := 0, 0
	walkThresholds(y01, scores, func(threshold float64, posHits, negHits int) {
		tp += posHits
		fp += negHits
		curve.X = append(curve.X, float64(fp)/float64(totalNeg))
		curve.Y = append(curve.Y, float64(tp)/float64(totalPos))
		curve.Thresholds = append(curve.Thresholds, threshold)
	})

	// Trapezoidal rule over the accumulated points.
	auc := 0.0
	for i := 1; i < len(curve.X); i++ {
		auc += (curve.X[i] - curve.X[i-1]) * (curve.Y[i] + curve.Y[i-1]) / 2
	}
	curve.Area = auc

	return curveRecord(name, []string{"AUC"}, []float64{auc}, y01, scores, curve)
}

// PR computes the precision-recall curve for binary labels and prediction
// scores. Curve points are (recall, precision, threshold) triples ordered
// by descending threshold, with a leading (0, 1) anchor at threshold +Inf.
// The scalar summary is the average precision, sum((Rn - Rn-1) * Pn).
func PR(yTrue, scores []float64, name string) (*explain.Record, error) {
	y01, err := checkCurveInputs(yTrue, scores)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = "PR"
	}

	totalPos, _ := countClasses(y01)

	curve := &explain.Curve{
		X:          []float64{0},
		Y:          []float64{1},
		Thresholds: []float64{math.Inf(1)},
	}

	tp, fp := 0, 0
	ap := 0.0
	prevRecall := 0.0
	walkThresholds(y01, scores, func(threshold float64, posHits, negHits int) {
		tp += posHits
		fp += negHits
		precision := float64(tp) / float64(tp+fp)
		recall := float64(tp) / float64(totalPos)

		ap += (recall - prevRecall) * precision
		prevRecall = recall

		curve.X = append(curve.X, recall)
		curve.Y = append(curve.Y, precision)
		curve.Thresholds = append(curve.Thresholds, threshold)
	})
	curve.Area = ap

	return curveRecord(name, []string{"Average Precision"}, []float64{ap}, y01, scores, curve)
}

// checkCurveInputs validates the shared curve preconditions and returns the
// labels normalized to 0/1.
func checkCurveInputs(yTrue, scores []float64) ([]float64, error) {
	if len(yTrue) == 0 {
		return nil, &explain.EmptyInputError{What: "y"}
	}
	if len(scores) != len(yTrue) {
		return nil, &explain.DimensionMismatchError{What: "scores", Expected: len(yTrue), Got: len(scores)}
	}
	y01, _, err := normalizeBinary(yTrue)
	if err != nil {
		return nil, err
	}
	return y01, nil
}

// walkThresholds visits the distinct score values in descending order and
// reports how many positives and negatives sit at each. The underlying sort
// is stable with respect to original instance order, which keeps repeated
// calls reproducible under score ties.
func walkThresholds(y01, scores []float64, visit func(threshold float64, posHits, negHits int)) {
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return scores[order[i]] > scores[order[j]]
	})

	for i := 0; i < len(order); {
		threshold := scores[order[i]]
		posHits, negHits := 0, 0
		for i < len(order) && scores[order[i]] == threshold {
			if y01[order[i]] == 1 {
				posHits++
			} else {
				negHits++
			}
			i++
		}
		visit(threshold, posHits, negHits)
	}
}

// curveRecord assembles the perf record shared by ROC and PR: the summary
// scalar, the raw scores, the curve, and a density overlay of the absolute
// residuals abs(y - score).
func curveRecord(name string, metricNames []string, metricValues, y01, scores []float64, curve *explain.Curve) (*explain.Record, error) {
	absResiduals := make([]float64, len(scores))
	for i := range scores {
		absResiduals[i] = math.Abs(y01[i] - scores[i])
	}
	density, err := histogram.Column(absResiduals, explain.Continuous)
	if err != nil {
		return nil, err
	}

	rec := explain.NewRecord(explain.Perf, name, nil)
	rec.Overall = &explain.Block{
		Names:   metricNames,
		Scores:  metricValues,
		Values:  scores,
		Density: &density,
		Curve:   curve,
	}
	return rec, nil
}
