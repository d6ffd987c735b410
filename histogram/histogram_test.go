package histogram

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/sgrimes/go-glass/explain"
)

// TestColumnEmptyInput tests that an empty column is rejected
func TestColumnEmptyInput(t *testing.T) {
	_, err := Column(nil, explain.Continuous)
	if err == nil {
		t.Fatal("Expected error for empty column")
	}
	if _, ok := err.(*explain.EmptyInputError); !ok {
		t.Errorf("Expected EmptyInputError, got %T", err)
	}
}

// TestContinuousCountsTotal tests that bin counts always sum to the sample
// count, the core binning invariant.
func TestContinuousCountsTotal(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	tests := []struct {
		name   string
		column func(n int) []float64
	}{
		{"Uniform", func(n int) []float64 {
			values := make([]float64, n)
			for i := range values {
				values[i] = rng.Float64()
			}
			return values
		}},
		{"Skewed", func(n int) []float64 {
			values := make([]float64, n)
			for i := range values {
				v := rng.Float64()
				values[i] = v * v * v
			}
			return values
		}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			for _, n := range []int{1, 2, 3, 10, 500} {
				values := test.column(n)
				d, err := Column(values, explain.Continuous)
				if err != nil {
					t.Fatalf("n=%d: unexpected error: %v", n, err)
				}
				if total := d.Total(); total != n {
					t.Errorf("n=%d: counts sum to %d, expected %d", n, total, n)
				}
				if len(d.Values) != len(d.Counts)+1 {
					t.Errorf("n=%d: %d edges for %d bins, expected %d",
						n, len(d.Values), len(d.Counts), len(d.Counts)+1)
				}
			}
		})
	}
}

// TestContinuousEdgesSpanRange tests that the first and last edges are the
// observed min and max.
func TestContinuousEdgesSpanRange(t *testing.T) {
	values := []float64{3.0, -1.0, 7.5, 2.0, 0.5}

	d, err := Column(values, explain.Continuous)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if d.Values[0] != -1.0 {
		t.Errorf("First edge = %v, expected -1.0", d.Values[0])
	}
	if d.Values[len(d.Values)-1] != 7.5 {
		t.Errorf("Last edge = %v, expected 7.5", d.Values[len(d.Values)-1])
	}
}

// TestContinuousZeroVariance tests the single-bin result for a constant
// column. Binning a constant column must not divide by zero.
func TestContinuousZeroVariance(t *testing.T) {
	values := []float64{2.5, 2.5, 2.5, 2.5}

	d, err := Column(values, explain.Continuous)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(d.Counts) != 1 {
		t.Fatalf("Expected a single bin, got %d", len(d.Counts))
	}
	if d.Counts[0] != 4 {
		t.Errorf("Single bin count = %d, expected 4", d.Counts[0])
	}
	if d.Values[0] >= 2.5 || d.Values[1] <= 2.5 {
		t.Errorf("Bin [%v, %v] does not contain the constant value", d.Values[0], d.Values[1])
	}
}

// TestContinuousSkewWidensBins tests that a heavily skewed column gets at
// least as many bins as a symmetric one of equal size, which is the point
// of the Doane rule.
func TestContinuousSkewWidensBins(t *testing.T) {
	n := 200
	symmetric := make([]float64, n)
	skewed := make([]float64, n)
	for i := 0; i < n; i++ {
		v := float64(i) / float64(n-1)
		symmetric[i] = v
		skewed[i] = v * v * v * v
	}

	ds, err := Column(symmetric, explain.Continuous)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	dk, err := Column(skewed, explain.Continuous)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(dk.Counts) < len(ds.Counts) {
		t.Errorf("Skewed column got %d bins, symmetric %d; expected at least as many",
			len(dk.Counts), len(ds.Counts))
	}
}

// TestContinuousDeterministic tests that identical inputs produce identical
// histograms.
func TestContinuousDeterministic(t *testing.T) {
	values := []float64{0.1, 0.9, 0.4, 0.4, 0.7, 0.2, 0.2, 0.2}

	first, err := Column(values, explain.Continuous)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	second, err := Column(values, explain.Continuous)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Repeated binning differed: %+v vs %+v", first, second)
	}
}

// TestCategoricalCounts tests unique-value binning for nominal and ordinal
// columns.
func TestCategoricalCounts(t *testing.T) {
	values := []float64{2, 0, 1, 2, 2, 0}

	for _, ft := range []explain.FeatureType{explain.Nominal, explain.Ordinal} {
		t.Run(ft.String(), func(t *testing.T) {
			d, err := Column(values, ft)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			if !reflect.DeepEqual(d.Values, []float64{0, 1, 2}) {
				t.Errorf("Categories = %v, expected [0 1 2]", d.Values)
			}
			if !reflect.DeepEqual(d.Counts, []int{2, 1, 3}) {
				t.Errorf("Counts = %v, expected [2 1 3]", d.Counts)
			}
			if d.Total() != len(values) {
				t.Errorf("Counts sum to %d, expected %d", d.Total(), len(values))
			}
		})
	}
}

// TestCategoricalSingleCategory tests the zero-variance categorical case
func TestCategoricalSingleCategory(t *testing.T) {
	d, err := Column([]float64{5, 5, 5}, explain.Nominal)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(d.Values) != 1 || d.Values[0] != 5 {
		t.Errorf("Categories = %v, expected [5]", d.Values)
	}
	if len(d.Counts) != 1 || d.Counts[0] != 3 {
		t.Errorf("Counts = %v, expected [3]", d.Counts)
	}
}

// TestPerColumn tests per-column binning of a rectangular matrix
func TestPerColumn(t *testing.T) {
	x := [][]float64{
		{1.0, 0},
		{2.0, 1},
		{3.0, 0},
	}
	features := explain.FeatureMetadata{
		{Name: "value", Type: explain.Continuous},
		{Name: "flag", Type: explain.Nominal},
	}

	densities, err := PerColumn(x, features)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(densities) != 2 {
		t.Fatalf("Expected 2 densities, got %d", len(densities))
	}
	for j, d := range densities {
		if d.Total() != len(x) {
			t.Errorf("Column %d: counts sum to %d, expected %d", j, d.Total(), len(x))
		}
	}
	if !reflect.DeepEqual(densities[1].Values, []float64{0, 1}) {
		t.Errorf("Flag categories = %v, expected [0 1]", densities[1].Values)
	}
}

// TestPerColumnEmpty tests that an empty matrix is rejected
func TestPerColumnEmpty(t *testing.T) {
	_, err := PerColumn(nil, explain.FeatureMetadata{{Name: "x", Type: explain.Continuous}})
	if err == nil {
		t.Fatal("Expected error for empty matrix")
	}
	if _, ok := err.(*explain.EmptyInputError); !ok {
		t.Errorf("Expected EmptyInputError, got %T", err)
	}
}
