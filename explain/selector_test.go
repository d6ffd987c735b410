package explain

import (
	"reflect"
	"testing"
)

// TestRankDescending tests basic descending order ranking
func TestRankDescending(t *testing.T) {
	values := []float64{1.0, 4.0, 2.0, 3.0}

	got := Rank(values, Identity, 0)
	want := []int{1, 3, 2, 0}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("Rank(%v) = %v, expected %v", values, got, want)
	}
}

// TestRankStableTies tests that equal keys preserve original order
func TestRankStableTies(t *testing.T) {
	values := []float64{5, 3, 3, 1}

	got := Rank(values, Identity, 2)
	want := []int{0, 1}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("Rank(%v, top 2) = %v, expected %v", values, got, want)
	}

	// All ties: ranking must be the identity permutation.
	ties := []float64{7, 7, 7, 7}
	got = Rank(ties, Identity, 0)
	want = []int{0, 1, 2, 3}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Rank(%v) = %v, expected %v", ties, got, want)
	}
}

// TestRankAbsMagnitude tests magnitude-based ranking with negative values
func TestRankAbsMagnitude(t *testing.T) {
	values := []float64{-10.0, 2.0, 5.0, -1.0}

	got := Rank(values, AbsMagnitude, 0)
	want := []int{0, 2, 1, 3}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("Rank(%v, AbsMagnitude) = %v, expected %v", values, got, want)
	}
}

// TestRankTopNBounds tests topN values at and beyond the input length
func TestRankTopNBounds(t *testing.T) {
	values := []float64{2, 1, 3}

	tests := []struct {
		name string
		topN int
		want int
	}{
		{"ZeroMeansAll", 0, 3},
		{"NegativeMeansAll", -1, 3},
		{"Truncated", 2, 2},
		{"BeyondLength", 10, 3},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := Rank(values, Identity, test.topN)
			if len(got) != test.want {
				t.Errorf("Rank with topN %d returned %d indices, expected %d", test.topN, len(got), test.want)
			}
		})
	}
}

// TestRankDoesNotReorderInput tests that ranking never mutates the input
func TestRankDoesNotReorderInput(t *testing.T) {
	values := []float64{3, 1, 2}
	Rank(values, Identity, 0)

	if !reflect.DeepEqual(values, []float64{3, 1, 2}) {
		t.Errorf("Rank mutated its input: %v", values)
	}
}

// TestLocalSelectorAlignment tests that selector rows stay index-aligned
// with the blocks they summarize.
func TestLocalSelectorAlignment(t *testing.T) {
	blocks := []Block{
		{Perf: &PerfInfo{Actual: 3.0, Residual: 0.5}},
		{Perf: &PerfInfo{Actual: 1.0, Residual: -0.25}},
	}
	predictions := []float64{2.5, 1.25}

	rows := LocalSelector(blocks, predictions)

	if len(rows) != len(blocks) {
		t.Fatalf("Expected %d selector rows, got %d", len(blocks), len(rows))
	}
	for i, row := range rows {
		if row.Predicted != predictions[i] {
			t.Errorf("Row %d: predicted %v, expected %v", i, row.Predicted, predictions[i])
		}
		if row.Actual != blocks[i].Perf.Actual {
			t.Errorf("Row %d: actual %v, expected %v", i, row.Actual, blocks[i].Perf.Actual)
		}
		if row.Residual != blocks[i].Perf.Residual {
			t.Errorf("Row %d: residual %v, expected %v", i, row.Residual, blocks[i].Perf.Residual)
		}
	}
}

// TestLocalSelectorWithoutPerf tests rows for blocks without annotations
func TestLocalSelectorWithoutPerf(t *testing.T) {
	blocks := []Block{{}, {}}
	rows := LocalSelector(blocks, []float64{0.1, 0.9})

	for i, row := range rows {
		if row.Actual != 0 || row.Residual != 0 || row.Correct {
			t.Errorf("Row %d: expected zero-valued summary fields, got %+v", i, row)
		}
	}
}
