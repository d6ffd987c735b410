package perf

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/sgrimes/go-glass/explain"
	"github.com/sgrimes/go-glass/histogram"
)

// RegressionSummary holds the scalar regression metrics reported in a perf
// record's overall block.
type RegressionSummary struct {
	MSE  float64
	RMSE float64
	MAE  float64
	R2   float64
}

// Regression computes MSE, RMSE, MAE and R² for true values against
// predictions, along with the signed residuals and their density overlay.
// R² is 1 - SSres/SStot; when the true values have zero variance SStot is
// zero and R² is reported as the sentinel 0 rather than dividing by zero.
func Regression(yTrue, yPred []float64, name string) (*explain.Record, error) {
	if len(yTrue) == 0 {
		return nil, &explain.EmptyInputError{What: "y"}
	}
	if len(yPred) != len(yTrue) {
		return nil, &explain.DimensionMismatchError{What: "predictions", Expected: len(yTrue), Got: len(yPred)}
	}
	if name == "" {
		name = "Regression"
	}

	meanTrue := stat.Mean(yTrue, nil)

	residuals := make([]float64, len(yTrue))
	sumAbsErr := 0.0
	sumSqErr := 0.0
	sumSqTotal := 0.0
	for i := range yTrue {
		diff := yTrue[i] - yPred[i]
		residuals[i] = diff
		sumAbsErr += math.Abs(diff)
		sumSqErr += diff * diff
		sumSqTotal += (yTrue[i] - meanTrue) * (yTrue[i] - meanTrue)
	}

	n := float64(len(yTrue))
	summary := RegressionSummary{
		MSE: sumSqErr / n,
		MAE: sumAbsErr / n,
	}
	summary.RMSE = math.Sqrt(summary.MSE)
	if sumSqTotal > 0 {
		summary.R2 = 1 - sumSqErr/sumSqTotal
	}

	density, err := histogram.Column(residuals, explain.Continuous)
	if err != nil {
		return nil, err
	}

	rec := explain.NewRecord(explain.Perf, name, nil)
	rec.Overall = &explain.Block{
		Names:   []string{"MSE", "RMSE", "MAE", "R2"},
		Scores:  []float64{summary.MSE, summary.RMSE, summary.MAE, summary.R2},
		Values:  residuals,
		Density: &density,
	}
	return rec, nil
}

// Summary extracts the regression metrics from a record produced by
// Regression. It is a convenience for callers that only want the scalars.
func Summary(rec *explain.Record) RegressionSummary {
	if rec == nil || rec.Overall == nil || len(rec.Overall.Scores) < 4 {
		return RegressionSummary{}
	}
	s := rec.Overall.Scores
	return RegressionSummary{MSE: s[0], RMSE: s[1], MAE: s[2], R2: s[3]}
}
