package analyzer

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/danielpatrickdp/drift-patch/go-engine/internal/matrix"
)

// gaussian builds an n-sample single-feature matrix ~ N(mean, std).
func gaussian(rng *rand.Rand, n int, mean, std float64) matrix.Matrix {
	m := make(matrix.Matrix, n)
	for i := range m {
		m[i] = []float64{mean + std*rng.NormFloat64()}
	}
	return m
}

func TestAnalyzeSameDistributionLowPSI(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	ref := gaussian(rng, 1000, 0, 1)
	cur := gaussian(rng, 1000, 0, 1)

	a := NewAnalyzer(DefaultConfig())
	metrics, err := a.Analyze(ref, cur)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if len(metrics) != 1 {
		t.Fatalf("expected 1 metric, got %d", len(metrics))
	}
	if metrics[0].PSI > 0.1 {
		t.Fatalf("same-distribution PSI too high: %f", metrics[0].PSI)
	}
	if metrics[0].Drifted {
		t.Fatalf("same distribution flagged drifted: %+v", metrics[0])
	}
}

func TestAnalyzeShiftedDistribution(t *testing.T) {
	// Scenario: reference ~ N(0,1), current ~ N(3,1).
	rng := rand.New(rand.NewSource(2))
	ref := gaussian(rng, 1000, 0, 1)
	cur := gaussian(rng, 1000, 3, 1)

	a := NewAnalyzer(DefaultConfig())
	metrics, err := a.Analyze(ref, cur)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	m := metrics[0]
	if m.PSI <= 0.2 {
		t.Fatalf("expected PSI substantially above 0.2, got %f", m.PSI)
	}
	if m.KSStatistic <= 0.1 || m.PValue >= 0.05 {
		t.Fatalf("expected significant KS result, got D=%f p=%f", m.KSStatistic, m.PValue)
	}
	if !m.Drifted {
		t.Fatal("shifted feature not flagged drifted")
	}
	if m.MeanShift < 2.0 {
		t.Fatalf("mean shift too small: %f", m.MeanShift)
	}
}

func TestPSIMonotonicInMeanShift(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	ref := gaussian(rng, 1000, 0, 1)
	base := gaussian(rng, 1000, 0, 1)

	a := NewAnalyzer(DefaultConfig())
	var prev float64 = -1
	for _, delta := range []float64{0, 0.5, 1.0, 2.0, 4.0} {
		cur := base.Clone()
		for i := range cur {
			cur[i][0] += delta
		}
		metrics, err := a.Analyze(ref, cur)
		if err != nil {
			t.Fatalf("analyze delta=%f: %v", delta, err)
		}
		if metrics[0].PSI < prev-1e-9 {
			t.Fatalf("PSI decreased at delta=%f: %f < %f", delta, metrics[0].PSI, prev)
		}
		prev = metrics[0].PSI
	}
}

func TestAnalyzeIdempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	ref := gaussian(rng, 200, 0, 1)
	cur := gaussian(rng, 200, 1, 2)

	a := NewAnalyzer(DefaultConfig())
	m1, err := a.Analyze(ref, cur)
	if err != nil {
		t.Fatalf("first analyze: %v", err)
	}
	m2, err := a.Analyze(ref, cur)
	if err != nil {
		t.Fatalf("second analyze: %v", err)
	}
	for i := range m1 {
		if m1[i] != m2[i] {
			t.Fatalf("metric %d differs between identical runs", i)
		}
	}
}

func TestAnalyzeSchemaMismatch(t *testing.T) {
	a := NewAnalyzer(DefaultConfig())
	ref := matrix.Matrix{{1, 2}, {3, 4}}
	cur := matrix.Matrix{{1}, {2}}

	_, err := a.Analyze(ref, cur)
	var schemaErr *IncompatibleSchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected IncompatibleSchemaError, got %v", err)
	}
	if schemaErr.RefFeatures != 2 || schemaErr.CurFeatures != 1 {
		t.Fatalf("unexpected error detail: %+v", schemaErr)
	}
}

func TestAnalyzeEmptyMatrix(t *testing.T) {
	a := NewAnalyzer(DefaultConfig())
	_, err := a.Analyze(matrix.Matrix{}, matrix.Matrix{{1}})
	var schemaErr *IncompatibleSchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected IncompatibleSchemaError for empty matrix, got %v", err)
	}
}

func TestAnalyzeInsufficientData(t *testing.T) {
	a := NewAnalyzer(DefaultConfig())
	small := matrix.Matrix{{1}, {2}, {3}}
	big := make(matrix.Matrix, 30)
	for i := range big {
		big[i] = []float64{float64(i)}
	}

	_, err := a.Analyze(small, big)
	var dataErr *InsufficientDataError
	if !errors.As(err, &dataErr) {
		t.Fatalf("expected InsufficientDataError, got %v", err)
	}
	if dataErr.Matrix != "reference" || dataErr.Samples != 3 {
		t.Fatalf("unexpected error detail: %+v", dataErr)
	}
}

func TestAnalyzeBestEffortRelaxesMinimum(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BestEffort = true
	a := NewAnalyzer(cfg)

	ref := matrix.Matrix{{1}, {2}, {3}, {4}, {5}}
	cur := matrix.Matrix{{10}, {11}, {12}}
	if _, err := a.Analyze(ref, cur); err != nil {
		t.Fatalf("best-effort analyze failed: %v", err)
	}
}

func TestAnalyzeCorruptData(t *testing.T) {
	a := NewAnalyzer(DefaultConfig())
	ref := make(matrix.Matrix, 25)
	cur := make(matrix.Matrix, 25)
	for i := range ref {
		ref[i] = []float64{float64(i)}
		cur[i] = []float64{float64(i)}
	}
	cur[7][0] = math.Inf(1)

	_, err := a.Analyze(ref, cur)
	var corruptErr *CorruptDataError
	if !errors.As(err, &corruptErr) {
		t.Fatalf("expected CorruptDataError, got %v", err)
	}
	if corruptErr.Matrix != "current" || corruptErr.Row != 7 {
		t.Fatalf("unexpected error detail: %+v", corruptErr)
	}
}

func TestKSIdenticalSamples(t *testing.T) {
	vals := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	d, p := ksTest(vals, vals)
	if d != 0 {
		t.Fatalf("identical samples should have D=0, got %f", d)
	}
	if p != 1 {
		t.Fatalf("identical samples should have p=1, got %f", p)
	}
}

func TestKSConstantSamples(t *testing.T) {
	vals := make([]float64, 30)
	for i := range vals {
		vals[i] = 5
	}
	d, p := ksTest(vals, vals)
	if d != 0 {
		t.Fatalf("constant samples should have D=0, got %f", d)
	}
	if p != 1 {
		t.Fatalf("constant samples should have p=1, got %f", p)
	}
}

func TestKSZeroInflatedSamples(t *testing.T) {
	// Heavily tied data: 80% zeros on both sides, same positive tail.
	a := make([]float64, 50)
	b := make([]float64, 50)
	for i := 40; i < 50; i++ {
		a[i] = float64(i - 39)
		b[i] = float64(i - 39)
	}
	d, _ := ksTest(a, b)
	if d != 0 {
		t.Fatalf("identical zero-inflated samples should have D=0, got %f", d)
	}
}

func TestAnalyzeConstantFeatureNotDrifted(t *testing.T) {
	// An unchanged constant column must not register as drifted.
	ref := make(matrix.Matrix, 40)
	cur := make(matrix.Matrix, 40)
	for i := range ref {
		ref[i] = []float64{7}
		cur[i] = []float64{7}
	}

	a := NewAnalyzer(DefaultConfig())
	metrics, err := a.Analyze(ref, cur)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	m := metrics[0]
	if m.KSStatistic != 0 || m.PValue != 1 {
		t.Fatalf("constant feature KS result: D=%f p=%f", m.KSStatistic, m.PValue)
	}
	if m.Drifted {
		t.Fatalf("constant feature flagged drifted: %+v", m)
	}
}

func TestKSDisjointSamples(t *testing.T) {
	a := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	b := []float64{101, 102, 103, 104, 105, 106, 107, 108, 109, 110}
	d, p := ksTest(a, b)
	if d != 1 {
		t.Fatalf("disjoint samples should have D=1, got %f", d)
	}
	if p > 0.01 {
		t.Fatalf("disjoint samples should be significant, got p=%f", p)
	}
}
