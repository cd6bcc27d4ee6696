package matrix

// #region imports
import (
	"math"
	"sort"
)

// #endregion

// #region matrix

// Matrix is an ordered set of samples; each row is one sample, each column
// one feature. Rows are never mutated in place by this module — transforms
// always produce a new Matrix.
type Matrix [][]float64

// Rows returns the number of samples.
func (m Matrix) Rows() int {
	return len(m)
}

// Features returns the feature count, taken from the first row.
// Returns 0 for an empty matrix.
func (m Matrix) Features() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}

// Clone returns a deep copy of the matrix.
func (m Matrix) Clone() Matrix {
	out := make(Matrix, len(m))
	for i, row := range m {
		out[i] = make([]float64, len(row))
		copy(out[i], row)
	}
	return out
}

// Column extracts feature column i into a new slice.
func (m Matrix) Column(i int) []float64 {
	col := make([]float64, len(m))
	for r, row := range m {
		col[r] = row[i]
	}
	return col
}

// Rectangular reports whether every row has the same length as the first.
func (m Matrix) Rectangular() bool {
	if len(m) == 0 {
		return true
	}
	n := len(m[0])
	for _, row := range m {
		if len(row) != n {
			return false
		}
	}
	return true
}

// #endregion matrix

// #region sanity

// BadValue locates the first NaN or Inf entry. ok is false when the matrix
// is clean.
func (m Matrix) BadValue() (row, col int, ok bool) {
	for r, rw := range m {
		for c, v := range rw {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return r, c, true
			}
		}
	}
	return 0, 0, false
}

// #endregion sanity

// #region column-stats

// ColumnStats holds summary statistics for a single feature column.
type ColumnStats struct {
	Mean float64
	Std  float64
	Min  float64
	Max  float64
}

// Stats computes summary statistics for one column of values.
func Stats(values []float64) ColumnStats {
	if len(values) == 0 {
		return ColumnStats{}
	}
	var sum float64
	min := values[0]
	max := values[0]
	for _, v := range values {
		sum += v
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	mean := sum / float64(len(values))
	var variance float64
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(values))
	return ColumnStats{
		Mean: mean,
		Std:  math.Sqrt(variance),
		Min:  min,
		Max:  max,
	}
}

// #endregion column-stats

// #region percentile

// Percentile returns the p-th percentile (p in [0,100]) of values using
// linear interpolation between closest ranks. The input is not modified.
func Percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[len(sorted)-1]
	}
	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// #endregion percentile
