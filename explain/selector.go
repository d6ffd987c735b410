package explain

import "sort"

// Rank returns the indices of values ordered by key descending. The sort is
// stable: equal keys keep their original relative order, so truncation is
// deterministic across repeated calls and platforms. When topN > 0 the
// result is truncated to at most topN indices. Rank never reorders the
// input itself; callers apply the returned permutation at display time.
func Rank(values []float64, key func(float64) float64, topN int) []int {
	indexes := make([]int, len(values))
	for i := range indexes {
		indexes[i] = i
	}

	sort.SliceStable(indexes, func(i, j int) bool {
		return key(values[indexes[i]]) > key(values[indexes[j]])
	})

	if topN > 0 && topN < len(indexes) {
		indexes = indexes[:topN]
	}
	return indexes
}

// Identity is a ready-made ranking key that orders by the raw value
func Identity(v float64) float64 { return v }

// AbsMagnitude is a ready-made ranking key that orders by absolute value,
// used for "top absolute-magnitude coefficients" displays.
func AbsMagnitude(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// GlobalSelectorRow summarizes one feature of a global record. Rows are
// index-aligned with the record's Specific blocks.
type GlobalSelectorRow struct {
	Name         string      `json:"name"`
	Type         FeatureType `json:"type"`
	UniqueCount  int         `json:"unique_count"`
	NonZeroShare float64     `json:"nonzero_share"`
}

// LocalSelectorRow summarizes one explained instance of a local record.
// Rows are index-aligned with the record's Specific blocks; consumers use
// them to pick which instances to display without touching the blocks.
type LocalSelectorRow struct {
	Predicted float64 `json:"predicted"`
	Actual    float64 `json:"actual,omitempty"`
	Residual  float64 `json:"residual,omitempty"`
	Correct   bool    `json:"correct,omitempty"`
}

// LocalSelector projects the perf annotations of local blocks into an
// index-aligned selector table. Blocks without annotations produce rows
// holding only the prediction. The blocks themselves are never reordered.
func LocalSelector(blocks []Block, predictions []float64) []LocalSelectorRow {
	rows := make([]LocalSelectorRow, len(blocks))
	for i := range blocks {
		rows[i].Predicted = predictions[i]
		if p := blocks[i].Perf; p != nil {
			rows[i].Actual = p.Actual
			rows[i].Residual = p.Residual
			rows[i].Correct = p.Correct
		}
	}
	return rows
}
