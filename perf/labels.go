package perf

import (
	"sort"

	"github.com/sgrimes/go-glass/explain"
)

// normalizeBinary maps the labels in y onto {0, 1}. The two observed
// classes are sorted ascending and the larger one becomes the positive
// class, matching the class ordering a fitted classifier reports. Exactly
// two distinct classes must be present; anything else is unsupported.
func normalizeBinary(y []float64) ([]float64, []float64, error) {
	seen := make(map[float64]struct{}, 2)
	for _, v := range y {
		seen[v] = struct{}{}
	}
	if len(seen) != 2 {
		return nil, nil, &explain.UnsupportedClassCountError{Count: len(seen)}
	}

	classes := make([]float64, 0, 2)
	for v := range seen {
		classes = append(classes, v)
	}
	sort.Float64s(classes)

	y01 := make([]float64, len(y))
	for i, v := range y {
		if v == classes[1] {
			y01[i] = 1
		}
	}
	return y01, classes, nil
}

// countClasses returns the number of positives and negatives in a 0/1 label
// vector.
func countClasses(y01 []float64) (pos, neg int) {
	for _, v := range y01 {
		if v == 1 {
			pos++
		} else {
			neg++
		}
	}
	return pos, neg
}
