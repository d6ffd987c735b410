// Package histogram computes the adaptive density histograms that overlay
// explanation records. Continuous columns are binned with Doane's rule,
// which widens the bin count for skewed distributions instead of using a
// fixed count that would misrepresent them. Categorical columns get one bin
// per observed value. Every function is a pure function of its inputs.
package histogram

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/sgrimes/go-glass/explain"
)

// Column bins a single column according to its declared feature type.
// Continuous columns return len(Counts)+1 bin edges in Values; categorical
// columns return the sorted unique values with their frequencies. The sum
// of Counts always equals len(values).
func Column(values []float64, ft explain.FeatureType) (explain.Density, error) {
	if len(values) == 0 {
		return explain.Density{}, &explain.EmptyInputError{What: "column"}
	}

	if ft.Categorical() {
		return categorical(values), nil
	}
	return continuous(values), nil
}

// PerColumn bins every column of a rectangular row-major matrix according
// to the parallel feature metadata.
func PerColumn(x [][]float64, features explain.FeatureMetadata) ([]explain.Density, error) {
	if len(x) == 0 {
		return nil, &explain.EmptyInputError{What: "X"}
	}

	densities := make([]explain.Density, len(features))
	column := make([]float64, len(x))
	for j, f := range features {
		for i := range x {
			column[i] = x[i][j]
		}
		d, err := Column(column, f.Type)
		if err != nil {
			return nil, err
		}
		densities[j] = d
	}
	return densities, nil
}

func categorical(values []float64) explain.Density {
	counts := make(map[float64]int, len(values))
	for _, v := range values {
		counts[v]++
	}

	uniques := make([]float64, 0, len(counts))
	for v := range counts {
		uniques = append(uniques, v)
	}
	sort.Float64s(uniques)

	d := explain.Density{
		Values: uniques,
		Counts: make([]int, len(uniques)),
	}
	for i, v := range uniques {
		d.Counts[i] = counts[v]
	}
	return d
}

func continuous(values []float64) explain.Density {
	lo, hi := values[0], values[0]
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	// A zero-variance column still yields a valid single-bin histogram
	// centered on the constant value.
	if lo == hi {
		return explain.Density{
			Values: []float64{lo - 0.5, hi + 0.5},
			Counts: []int{len(values)},
		}
	}

	k := doaneBinCount(values)

	edges := make([]float64, k+1)
	floats.Span(edges, lo, hi)

	counts := make([]int, k)
	width := (hi - lo) / float64(k)
	for _, v := range values {
		idx := int((v - lo) / width)
		// Values on the top edge belong to the last bin.
		if idx >= k {
			idx = k - 1
		}
		counts[idx]++
	}

	return explain.Density{Values: edges, Counts: counts}
}

// doaneBinCount chooses the bin count for a non-constant column using
// Doane's rule: 1 + log2(n) + log2(1 + |g1|/sigma_g1), where g1 is the
// population skewness of the column.
func doaneBinCount(values []float64) int {
	n := float64(len(values))
	if len(values) <= 2 {
		return 1
	}

	sigma := stat.PopStdDev(values, nil)
	if sigma == 0 {
		return 1
	}

	g1 := stat.Moment(3, values, nil) / math.Pow(sigma, 3)
	sg1 := math.Sqrt(6 * (n - 2) / ((n + 1) * (n + 3)))

	k := int(math.Ceil(1 + math.Log2(n) + math.Log2(1+math.Abs(g1)/sg1)))
	if k < 1 {
		k = 1
	}
	return k
}
