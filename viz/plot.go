// Package viz turns explanation records into plot-ready structures and
// ships them to a sidecar plotting service as JSON. The core packages emit
// plain records; everything rendering-specific lives here.
package viz

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/sgrimes/go-glass/explain"
)

// PlotType represents the plots the sidecar service can render
type PlotType string

const (
	FeatureImportance PlotType = "feature_importance"
	LocalImportance   PlotType = "local_importance"
	ContributionCurve PlotType = "contribution_curve"
	ROCCurve          PlotType = "roc_curve"
	PRCurve           PlotType = "pr_curve"
	DensityPlot       PlotType = "density"
)

// topFeatures caps how many coefficients an overall importance plot shows
const topFeatures = 15

// PlotData is the universal JSON payload for the sidecar plotting service
type PlotData struct {
	PlotType  PlotType  `json:"plot_type"`
	Title     string    `json:"title"`
	Timestamp time.Time `json:"timestamp"`
	RecordID  string    `json:"record_id"`

	Series []SeriesData `json:"series"`

	Config PlotConfig `json:"config"`

	Metrics map[string]float64 `json:"metrics,omitempty"`
}

// SeriesData represents a single data series in a plot
type SeriesData struct {
	Name  string            `json:"name"`
	Type  string            `json:"type"` // "line", "bar", "histogram"
	Data  []DataPoint       `json:"data"`
	Style map[string]string `json:"style,omitempty"`
}

// DataPoint represents a single data point
type DataPoint struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Label string  `json:"label,omitempty"`
}

// PlotConfig contains plot-specific configuration
type PlotConfig struct {
	XAxisLabel string `json:"x_axis_label"`
	YAxisLabel string `json:"y_axis_label"`
	ShowLegend bool   `json:"show_legend"`
	ShowGrid   bool   `json:"show_grid"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
}

// ToJSON converts plot data to an indented JSON string
func (pd PlotData) ToJSON() (string, error) {
	jsonData, err := json.MarshalIndent(pd, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal plot data to JSON: %w", err)
	}
	return string(jsonData), nil
}

// GlobalImportancePlot builds a horizontal-bar plot of the record's overall
// coefficients, truncated to the top entries by absolute magnitude. The
// ranking permutation is applied here at render time; the record itself is
// left untouched.
func GlobalImportancePlot(rec *explain.Record) (PlotData, error) {
	if rec.Kind != explain.Global || rec.Overall == nil {
		return PlotData{}, fmt.Errorf("expected a global record with an overall block, got kind %q", rec.Kind)
	}

	overall := rec.Overall
	order := explain.Rank(overall.Scores, explain.AbsMagnitude, topFeatures)

	data := make([]DataPoint, len(order))
	for i, idx := range order {
		data[i] = DataPoint{
			X:     overall.Scores[idx],
			Y:     float64(i),
			Label: overall.Names[idx],
		}
	}

	return PlotData{
		PlotType:  FeatureImportance,
		Title:     fmt.Sprintf("Overall Importance: Coefficients - %s", rec.Name),
		Timestamp: time.Now(),
		RecordID:  rec.ID,
		Series: []SeriesData{
			{
				Name:  "Coefficients",
				Type:  "bar",
				Data:  data,
				Style: map[string]string{"color": "#4ECDC4", "orientation": "horizontal"},
			},
		},
		Config: PlotConfig{
			XAxisLabel: "Coefficient",
			YAxisLabel: "Feature",
			ShowLegend: false,
			ShowGrid:   true,
			Width:      800,
			Height:     600,
		},
	}, nil
}

// LocalImportancePlot builds a horizontal-bar plot of one instance's
// per-feature contributions, intercept included as its own bar from the
// block's Extra.
func LocalImportancePlot(rec *explain.Record, index int) (PlotData, error) {
	if rec.Kind != explain.Local {
		return PlotData{}, fmt.Errorf("expected a local record, got kind %q", rec.Kind)
	}
	if index < 0 || index >= len(rec.Specific) {
		return PlotData{}, fmt.Errorf("instance index %d out of range [0, %d)", index, len(rec.Specific))
	}

	block := rec.Specific[index]
	data := make([]DataPoint, 0, len(block.Scores)+1)
	for j, score := range block.Scores {
		data = append(data, DataPoint{
			X:     score,
			Y:     float64(j),
			Label: fmt.Sprintf("%s = %g", block.Names[j], block.Values[j]),
		})
	}
	if block.Extra != nil {
		for j, score := range block.Extra.Scores {
			data = append(data, DataPoint{
				X:     score,
				Y:     float64(len(block.Scores) + j),
				Label: block.Extra.Names[j],
			})
		}
	}

	return PlotData{
		PlotType:  LocalImportance,
		Title:     fmt.Sprintf("Local Explanation (instance %d) - %s", index, rec.Name),
		Timestamp: time.Now(),
		RecordID:  rec.ID,
		Series: []SeriesData{
			{
				Name:  "Contributions",
				Type:  "bar",
				Data:  data,
				Style: map[string]string{"color": "#FF6B6B", "orientation": "horizontal"},
			},
		},
		Config: PlotConfig{
			XAxisLabel: "Contribution",
			YAxisLabel: "Feature",
			ShowLegend: false,
			ShowGrid:   true,
			Width:      800,
			Height:     600,
		},
	}, nil
}

// ContributionCurvePlot builds a line plot of one feature's contribution
// curve with its training-data density as a histogram series underneath.
func ContributionCurvePlot(rec *explain.Record, feature int) (PlotData, error) {
	if rec.Kind != explain.Global {
		return PlotData{}, fmt.Errorf("expected a global record, got kind %q", rec.Kind)
	}
	if feature < 0 || feature >= len(rec.Specific) {
		return PlotData{}, fmt.Errorf("feature index %d out of range [0, %d)", feature, len(rec.Specific))
	}

	block := rec.Specific[feature]
	curveData := make([]DataPoint, len(block.Scores))
	for i := range block.Scores {
		curveData[i] = DataPoint{X: block.Values[i], Y: block.Scores[i]}
	}

	series := []SeriesData{
		{
			Name:  "Contribution",
			Type:  "line",
			Data:  curveData,
			Style: map[string]string{"color": "#4ECDC4", "line_width": "2"},
		},
	}
	if block.Density != nil {
		series = append(series, densitySeries(block.Density))
	}

	return PlotData{
		PlotType:  ContributionCurve,
		Title:     fmt.Sprintf("Contribution: %s - %s", rec.Features[feature].Name, rec.Name),
		Timestamp: time.Now(),
		RecordID:  rec.ID,
		Series:    series,
		Config: PlotConfig{
			XAxisLabel: rec.Features[feature].Name,
			YAxisLabel: "Contribution",
			ShowLegend: true,
			ShowGrid:   true,
			Width:      800,
			Height:     600,
		},
	}, nil
}

// PerformanceCurvePlot builds a line plot of a perf record's discrimination
// curve, plus the random-classifier diagonal for ROC records. The record's
// summary scalars are carried along in Metrics.
func PerformanceCurvePlot(rec *explain.Record) (PlotData, error) {
	if rec.Kind != explain.Perf || rec.Overall == nil || rec.Overall.Curve == nil {
		return PlotData{}, fmt.Errorf("expected a perf record with a curve, got kind %q", rec.Kind)
	}

	overall := rec.Overall
	curve := overall.Curve

	data := make([]DataPoint, len(curve.X))
	for i := range curve.X {
		data[i] = DataPoint{X: curve.X[i], Y: curve.Y[i]}
	}

	plotType := PRCurve
	xLabel, yLabel := "Recall", "Precision"
	series := []SeriesData{
		{
			Name:  rec.Name,
			Type:  "line",
			Data:  data,
			Style: map[string]string{"color": "#FF6B6B", "line_width": "2"},
		},
	}
	if overall.Names[0] == "AUC" {
		plotType = ROCCurve
		xLabel, yLabel = "False Positive Rate", "True Positive Rate"
		series = append(series, SeriesData{
			Name:  "Random Classifier",
			Type:  "line",
			Data:  []DataPoint{{X: 0, Y: 0}, {X: 1, Y: 1}},
			Style: map[string]string{"color": "#95A5A6", "line_style": "dashed"},
		})
	}

	metrics := make(map[string]float64, len(overall.Names))
	for i, name := range overall.Names {
		metrics[name] = overall.Scores[i]
	}

	return PlotData{
		PlotType:  plotType,
		Title:     fmt.Sprintf("%s Curve", rec.Name),
		Timestamp: time.Now(),
		RecordID:  rec.ID,
		Series:    series,
		Config: PlotConfig{
			XAxisLabel: xLabel,
			YAxisLabel: yLabel,
			ShowLegend: true,
			ShowGrid:   true,
			Width:      600,
			Height:     600,
		},
		Metrics: metrics,
	}, nil
}

// ResidualDensityPlot builds a histogram plot of a perf record's residual
// density overlay.
func ResidualDensityPlot(rec *explain.Record) (PlotData, error) {
	if rec.Kind != explain.Perf || rec.Overall == nil || rec.Overall.Density == nil {
		return PlotData{}, fmt.Errorf("expected a perf record with a density, got kind %q", rec.Kind)
	}

	metrics := make(map[string]float64, len(rec.Overall.Names))
	for i, name := range rec.Overall.Names {
		metrics[name] = rec.Overall.Scores[i]
	}

	return PlotData{
		PlotType:  DensityPlot,
		Title:     fmt.Sprintf("Residuals - %s", rec.Name),
		Timestamp: time.Now(),
		RecordID:  rec.ID,
		Series:    []SeriesData{densitySeries(rec.Overall.Density)},
		Config: PlotConfig{
			XAxisLabel: "Residuals",
			YAxisLabel: "Density",
			ShowLegend: false,
			ShowGrid:   true,
			Width:      800,
			Height:     400,
		},
		Metrics: metrics,
	}, nil
}

// densitySeries converts a histogram overlay into a bar series. Continuous
// histograms plot each count at its bin midpoint; categorical ones plot at
// the category value.
func densitySeries(d *explain.Density) SeriesData {
	data := make([]DataPoint, len(d.Counts))
	edged := len(d.Values) == len(d.Counts)+1
	for i, count := range d.Counts {
		x := d.Values[i]
		if edged {
			x = (d.Values[i] + d.Values[i+1]) / 2
		}
		data[i] = DataPoint{X: x, Y: float64(count)}
	}
	return SeriesData{
		Name:  "Density",
		Type:  "histogram",
		Data:  data,
		Style: map[string]string{"color": "#95A5A6", "alpha": "0.5"},
	}
}
