package main

import (
	"fmt"
	"math"
	"math/rand"
	"os"

	"github.com/charmbracelet/log"

	"github.com/sgrimes/go-glass/explain"
	"github.com/sgrimes/go-glass/linear"
	"github.com/sgrimes/go-glass/perf"
	"github.com/sgrimes/go-glass/viz"
)

// ridge is a hand-rolled linear regressor fit by gradient descent on
// standardized inputs, enough to give the explainer real parameters.
type ridge struct {
	coef      []float64
	intercept float64
	fitted    bool
}

func (m *ridge) Fitted() bool              { return m.fitted }
func (m *ridge) Coefficients() [][]float64 { return [][]float64{m.coef} }
func (m *ridge) Intercepts() []float64     { return []float64{m.intercept} }

func (m *ridge) Predict(x [][]float64) []float64 {
	out := make([]float64, len(x))
	for i, row := range x {
		sum := m.intercept
		for j, v := range row {
			sum += m.coef[j] * v
		}
		out[i] = sum
	}
	return out
}

func (m *ridge) fit(x [][]float64, y []float64, epochs int, lr float64) {
	m.coef = make([]float64, len(x[0]))
	for epoch := 0; epoch < epochs; epoch++ {
		for i, row := range x {
			pred := m.intercept
			for j, v := range row {
				pred += m.coef[j] * v
			}
			err := pred - y[i]
			m.intercept -= lr * err
			for j, v := range row {
				m.coef[j] -= lr * err * v
			}
		}
	}
	m.fitted = true
}

// logit wraps ridge scores in a sigmoid to act as a binary classifier
type logit struct {
	ridge
}

func (m *logit) Classes() []float64 { return []float64{0, 1} }

func (m *logit) PredictProba(x [][]float64) [][]float64 {
	out := make([][]float64, len(x))
	for i, p := range m.Predict(x) {
		pos := 1 / (1 + math.Exp(-p))
		out[i] = []float64{1 - pos, pos}
	}
	return out
}

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "explain-demo",
	})

	fmt.Println("=== Linear Model Explanation Demo ===")

	// 1. Synthetic data: price driven by size and age, plus a nominal
	// region column the model largely ignores.
	rng := rand.New(rand.NewSource(7))
	n := 200
	x := make([][]float64, n)
	y := make([]float64, n)
	yClass := make([]float64, n)
	for i := range x {
		size := 50 + rng.Float64()*150
		age := rng.Float64() * 40
		region := float64(rng.Intn(3))
		x[i] = []float64{size, age, region}
		y[i] = 2.5*size - 1.2*age + 10*region + rng.NormFloat64()*5
		if y[i] > 250 {
			yClass[i] = 1
		}
	}

	features := explain.FeatureMetadata{
		{Name: "size_sqm", Type: explain.Continuous},
		{Name: "age_years", Type: explain.Continuous},
		{Name: "region", Type: explain.Nominal},
	}

	// 2. Fit the regressor and snapshot the training data.
	model := &ridge{}
	model.fit(x, y, 200, 1e-5)
	logger.Info("fit regressor", "coef", model.coef, "intercept", model.intercept)

	expl := linear.NewRegressionExplainer(model, features)
	if err := expl.Snapshot(x); err != nil {
		logger.Fatal("snapshot failed", "err", err)
	}

	fmt.Println("\n1. Global Explanation")
	global, selector, err := expl.ExplainGlobal("house prices")
	if err != nil {
		logger.Fatal("global explanation failed", "err", err)
	}
	for j, row := range selector {
		fmt.Printf("  %-10s type=%-11s uniques=%-4d nonzero=%.2f coef=%+.4f\n",
			row.Name, row.Type, row.UniqueCount, row.NonZeroShare, global.Overall.Scores[j])
	}

	fmt.Println("\n2. Local Explanations (first 3 instances)")
	local, rows, err := expl.ExplainLocal(x[:3], y[:3], "house prices")
	if err != nil {
		logger.Fatal("local explanation failed", "err", err)
	}
	for i, block := range local.Specific {
		fmt.Printf("  instance %d: predicted=%.1f actual=%.1f residual=%+.1f\n",
			i, rows[i].Predicted, rows[i].Actual, rows[i].Residual)
		for j, name := range block.Names {
			fmt.Printf("    %-10s = %8.2f  contributes %+8.2f\n", name, block.Values[j], block.Scores[j])
		}
		fmt.Printf("    %-10s              contributes %+8.2f\n", "Intercept", block.Extra.Scores[0])
	}

	fmt.Println("\n3. Regression Performance")
	regPerf, err := perf.Regression(y, model.Predict(x), "house prices")
	if err != nil {
		logger.Fatal("regression metrics failed", "err", err)
	}
	s := perf.Summary(regPerf)
	fmt.Printf("  MSE=%.2f RMSE=%.2f MAE=%.2f R2=%.4f\n", s.MSE, s.RMSE, s.MAE, s.R2)

	// 3. A classifier over the same data for the curve metrics.
	clf := &logit{}
	clf.fit(scale(x), yClass, 300, 0.01)
	scores := make([]float64, n)
	for i, p := range clf.PredictProba(scale(x)) {
		scores[i] = p[1]
	}

	fmt.Println("\n4. Classification Performance")
	roc, err := perf.ROC(yClass, scores, "expensive homes")
	if err != nil {
		logger.Fatal("ROC failed", "err", err)
	}
	pr, err := perf.PR(yClass, scores, "expensive homes")
	if err != nil {
		logger.Fatal("PR failed", "err", err)
	}
	fmt.Printf("  AUC-ROC=%.4f  Average Precision=%.4f\n",
		roc.Overall.Curve.Area, pr.Overall.Curve.Area)

	// 4. Ship plots to the sidecar service when one is running.
	fmt.Println("\n5. Plotting")
	cfg, err := viz.ConfigFromEnv()
	if err != nil {
		logger.Fatal("bad plotting config", "err", err)
	}
	svc := viz.NewService(cfg, logger)
	if err := svc.CheckHealth(); err != nil {
		logger.Warn("plotting service unavailable, printing JSON instead", "url", cfg.BaseURL)
		pd, err := viz.GlobalImportancePlot(global)
		if err != nil {
			logger.Fatal("plot generation failed", "err", err)
		}
		jsonStr, err := pd.ToJSON()
		if err != nil {
			logger.Fatal("plot serialization failed", "err", err)
		}
		fmt.Println(jsonStr)
		return
	}

	plots := []func() (viz.PlotData, error){
		func() (viz.PlotData, error) { return viz.GlobalImportancePlot(global) },
		func() (viz.PlotData, error) { return viz.LocalImportancePlot(local, 0) },
		func() (viz.PlotData, error) { return viz.ContributionCurvePlot(global, 0) },
		func() (viz.PlotData, error) { return viz.PerformanceCurvePlot(roc) },
		func() (viz.PlotData, error) { return viz.ResidualDensityPlot(regPerf) },
	}
	for _, build := range plots {
		pd, err := build()
		if err != nil {
			logger.Error("plot generation failed", "err", err)
			continue
		}
		resp, err := svc.SendWithRetry(pd)
		if err != nil {
			logger.Error("plot send failed", "type", pd.PlotType, "err", err)
			continue
		}
		fmt.Printf("  sent %-20s view at %s\n", pd.PlotType, resp.ViewURL)
	}
}

// scale standardizes each column to zero mean and unit variance so the
// classifier's gradient descent converges quickly.
func scale(x [][]float64) [][]float64 {
	cols := len(x[0])
	mean := make([]float64, cols)
	std := make([]float64, cols)
	for j := 0; j < cols; j++ {
		for i := range x {
			mean[j] += x[i][j]
		}
		mean[j] /= float64(len(x))
		for i := range x {
			d := x[i][j] - mean[j]
			std[j] += d * d
		}
		std[j] = math.Sqrt(std[j] / float64(len(x)))
		if std[j] == 0 {
			std[j] = 1
		}
	}
	out := make([][]float64, len(x))
	for i := range x {
		out[i] = make([]float64, cols)
		for j := 0; j < cols; j++ {
			out[i][j] = (x[i][j] - mean[j]) / std[j]
		}
	}
	return out
}
