package explain

import (
	"fmt"

	"github.com/google/uuid"
)

// Kind identifies what an explanation record describes
type Kind string

const (
	// Local records hold one block per explained instance
	Local Kind = "local"

	// Global records hold one contribution curve per feature
	Global Kind = "global"

	// Perf records hold a single overall performance block
	Perf Kind = "perf"
)

// FeatureType represents the declared type of a feature column
type FeatureType int

const (
	Continuous FeatureType = iota
	Nominal
	Ordinal
)

func (ft FeatureType) String() string {
	switch ft {
	case Continuous:
		return "continuous"
	case Nominal:
		return "nominal"
	case Ordinal:
		return "ordinal"
	default:
		return fmt.Sprintf("Unknown(%d)", int(ft))
	}
}

// Categorical reports whether the type is binned by unique value rather than range
func (ft FeatureType) Categorical() bool {
	return ft == Nominal || ft == Ordinal
}

// Feature pairs a column name with its declared type
type Feature struct {
	Name string      `json:"name"`
	Type FeatureType `json:"type"`
}

// FeatureMetadata is the ordered feature name/type sequence captured when a
// model snapshot is taken. It is shared by reference across every record
// produced for that snapshot and must never be mutated afterwards.
type FeatureMetadata []Feature

// Names returns the feature names in metadata order
func (fm FeatureMetadata) Names() []string {
	names := make([]string, len(fm))
	for i, f := range fm {
		names[i] = f.Name
	}
	return names
}

// Density is a histogram overlay attached to a block.
// Continuous histograms carry len(Counts)+1 bin edges in Values;
// categorical ones carry one value per count.
type Density struct {
	Values []float64 `json:"names"`
	Counts []int     `json:"scores"`
}

// Total returns the number of samples the histogram was built from
func (d *Density) Total() int {
	total := 0
	for _, c := range d.Counts {
		total += c
	}
	return total
}

// Extra holds auxiliary named scalars attached to a block, such as the
// intercept of a linear model or the summary metrics of a perf record.
// The intercept is reported here and never folded into Block.Scores,
// preserving the additive decomposition of the per-feature scores.
type Extra struct {
	Names  []string  `json:"names"`
	Scores []float64 `json:"scores"`
	Values []float64 `json:"values,omitempty"`
}

// PerfInfo is a per-instance performance annotation attached to local
// explanation blocks when ground-truth labels were supplied.
type PerfInfo struct {
	IsClassification bool    `json:"is_classification"`
	Actual           float64 `json:"actual"`
	Predicted        float64 `json:"predicted"`

	// Classification only: probability assigned to the actual and
	// predicted class, and whether they agree.
	ActualScore    float64 `json:"actual_score,omitempty"`
	PredictedScore float64 `json:"predicted_score,omitempty"`
	Correct        bool    `json:"correct,omitempty"`

	// Regression only: signed error, actual - predicted.
	Residual float64 `json:"residual,omitempty"`
}

// Curve holds the ordered (x, y, threshold) triples of a discrimination
// curve along with its scalar summary: trapezoidal AUC for ROC, average
// precision for PR.
type Curve struct {
	X          []float64 `json:"x_values"`
	Y          []float64 `json:"y_values"`
	Thresholds []float64 `json:"threshold"`
	Area       float64   `json:"auc"`
}

// Block is one per-item unit of an explanation record: one instance for
// local records, one feature for global records, the single summary for
// perf records. Names and Scores are always parallel; the optional fields
// are present or absent uniformly across all blocks of one record.
type Block struct {
	Names   []string  `json:"names"`
	Scores  []float64 `json:"scores"`
	Values  []float64 `json:"values,omitempty"`
	Density *Density  `json:"density,omitempty"`
	Extra   *Extra    `json:"extra,omitempty"`
	Perf    *PerfInfo `json:"perf,omitempty"`
	Curve   *Curve    `json:"curve,omitempty"`
}

// Record is the structure every assembler produces and the visualization
// layer consumes. It is built once per explain call from a snapshot of
// model state, and is immutable afterwards.
type Record struct {
	Kind     Kind            `json:"kind"`
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Features FeatureMetadata `json:"features,omitempty"`
	Overall  *Block          `json:"overall,omitempty"`
	Specific []Block         `json:"specific,omitempty"`
}

// NewRecord creates an empty record of the given kind with a fresh ID
func NewRecord(kind Kind, name string, features FeatureMetadata) *Record {
	return &Record{
		Kind:     kind,
		ID:       uuid.NewString(),
		Name:     name,
		Features: features,
	}
}

// Validate checks the cross-cutting shape invariants of the record:
// Names/Scores parity in every block, and for global records a 1:1
// correspondence between Specific blocks and the feature metadata.
func (r *Record) Validate() error {
	if r.Overall != nil {
		if err := r.Overall.validate(); err != nil {
			return fmt.Errorf("overall block: %w", err)
		}
	}
	for i := range r.Specific {
		if err := r.Specific[i].validate(); err != nil {
			return fmt.Errorf("specific block %d: %w", i, err)
		}
	}
	if r.Kind == Global && len(r.Specific) != len(r.Features) {
		return fmt.Errorf("global record has %d specific blocks for %d features",
			len(r.Specific), len(r.Features))
	}
	return nil
}

func (b *Block) validate() error {
	if len(b.Names) != len(b.Scores) {
		return fmt.Errorf("names length %d does not match scores length %d",
			len(b.Names), len(b.Scores))
	}
	return nil
}
