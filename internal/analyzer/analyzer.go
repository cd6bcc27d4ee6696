package analyzer

// #region imports
import (
	"math"
	"sort"

	"github.com/danielpatrickdp/drift-patch/go-engine/internal/matrix"
)

// #endregion

// #region analyzer

// Analyzer computes per-feature divergence statistics between a reference
// sample and a current sample. Stateless; safe for concurrent use.
type Analyzer struct {
	config Config
}

// NewAnalyzer creates an analyzer with the given configuration.
func NewAnalyzer(config Config) *Analyzer {
	return &Analyzer{config: config}
}

// #endregion analyzer

// #region analyze

// Analyze computes one FeatureDivergenceMetric per feature. No aggregation
// happens here; the classifier consumes the raw metrics.
func (a *Analyzer) Analyze(reference, current matrix.Matrix) ([]FeatureDivergenceMetric, error) {
	if err := a.checkShape(reference, current); err != nil {
		return nil, err
	}
	if err := a.checkSamples(reference, current); err != nil {
		return nil, err
	}
	if r, c, bad := reference.BadValue(); bad {
		return nil, &CorruptDataError{Matrix: "reference", Row: r, Col: c}
	}
	if r, c, bad := current.BadValue(); bad {
		return nil, &CorruptDataError{Matrix: "current", Row: r, Col: c}
	}

	n := reference.Features()
	metrics := make([]FeatureDivergenceMetric, 0, n)
	for i := 0; i < n; i++ {
		refCol := reference.Column(i)
		curCol := current.Column(i)

		psi := a.psi(refCol, curCol)
		ks, p := ksTest(refCol, curCol)

		refStats := matrix.Stats(refCol)
		curStats := matrix.Stats(curCol)
		denom := refStats.Std + shiftEpsilon
		meanShift := math.Abs(curStats.Mean-refStats.Mean) / denom
		stdShift := math.Abs(curStats.Std-refStats.Std) / denom

		drifted := psi > a.config.PSIThreshold ||
			(ks > a.config.KSThreshold && p < a.config.PValueThreshold)

		metrics = append(metrics, FeatureDivergenceMetric{
			FeatureIndex: i,
			PSI:          psi,
			KSStatistic:  ks,
			PValue:       p,
			MeanShift:    meanShift,
			StdShift:     stdShift,
			Drifted:      drifted,
		})
	}
	return metrics, nil
}

// #endregion analyze

// #region checks

const shiftEpsilon = 1e-8

func (a *Analyzer) checkShape(reference, current matrix.Matrix) error {
	if reference.Rows() == 0 || current.Rows() == 0 ||
		reference.Features() != current.Features() ||
		!reference.Rectangular() || !current.Rectangular() {
		return &IncompatibleSchemaError{
			RefFeatures: reference.Features(),
			CurFeatures: current.Features(),
		}
	}
	return nil
}

func (a *Analyzer) checkSamples(reference, current matrix.Matrix) error {
	min := a.config.MinSamples
	if a.config.BestEffort {
		min = 2
	}
	if reference.Rows() < min {
		return &InsufficientDataError{Matrix: "reference", Samples: reference.Rows(), Min: min}
	}
	if current.Rows() < min {
		return &InsufficientDataError{Matrix: "current", Samples: current.Rows(), Min: min}
	}
	return nil
}

// #endregion checks

// #region psi

// psi computes the Population Stability Index over equal-width bins whose
// edges come from the reference column only. Current values outside the
// reference range land in the outermost bins.
func (a *Analyzer) psi(refCol, curCol []float64) float64 {
	bins := a.config.Bins
	if bins < 2 {
		bins = 2
	}
	stats := matrix.Stats(refCol)
	lo, hi := stats.Min, stats.Max
	if hi == lo {
		// Degenerate reference: a single spike. Widen artificially so
		// shifted current data still registers.
		hi = lo + 1
	}
	width := (hi - lo) / float64(bins)

	refCounts := binCounts(refCol, lo, width, bins)
	curCounts := binCounts(curCol, lo, width, bins)

	var psi float64
	for b := 0; b < bins; b++ {
		r := float64(refCounts[b]) / float64(len(refCol))
		c := float64(curCounts[b]) / float64(len(curCol))
		if r < a.config.BinFloor {
			r = a.config.BinFloor
		}
		if c < a.config.BinFloor {
			c = a.config.BinFloor
		}
		psi += (c - r) * math.Log(c/r)
	}
	return psi
}

func binCounts(values []float64, lo, width float64, bins int) []int {
	counts := make([]int, bins)
	for _, v := range values {
		b := int((v - lo) / width)
		if b < 0 {
			b = 0
		}
		if b >= bins {
			b = bins - 1
		}
		counts[b]++
	}
	return counts
}

// #endregion psi

// #region ks

// ksTest computes the two-sample Kolmogorov-Smirnov statistic via a single
// merged-sort sweep over both sorted samples, and an asymptotic p-value
// from the Kolmogorov distribution series.
func ksTest(refCol, curCol []float64) (statistic, pValue float64) {
	ref := sortedCopy(refCol)
	cur := sortedCopy(curCol)

	n1 := len(ref)
	n2 := len(cur)
	var i, j int
	var d float64
	for i < n1 && j < n2 {
		// Consume the full run of the smallest value from both sides before
		// recording the gap, so ties never split across iterations.
		v := ref[i]
		if cur[j] < v {
			v = cur[j]
		}
		for i < n1 && ref[i] == v {
			i++
		}
		for j < n2 && cur[j] == v {
			j++
		}
		diff := math.Abs(float64(i)/float64(n1) - float64(j)/float64(n2))
		if diff > d {
			d = diff
		}
	}

	return d, ksPValue(d, n1, n2)
}

// ksPValue evaluates the first terms of the Kolmogorov asymptotic series
// Q(lambda) = 2 * sum_{j>=1} (-1)^(j-1) exp(-2 j^2 lambda^2).
func ksPValue(d float64, n1, n2 int) float64 {
	if d <= 0 {
		return 1
	}
	ne := float64(n1) * float64(n2) / float64(n1+n2)
	lambda := (math.Sqrt(ne) + 0.12 + 0.11/math.Sqrt(ne)) * d

	var sum float64
	sign := 1.0
	for j := 1; j <= 10; j++ {
		term := math.Exp(-2 * float64(j*j) * lambda * lambda)
		sum += sign * term
		sign = -sign
		if term < 1e-10 {
			break
		}
	}
	p := 2 * sum
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	return p
}

func sortedCopy(values []float64) []float64 {
	out := make([]float64, len(values))
	copy(out, values)
	sort.Float64s(out)
	return out
}

// #endregion ks
