package validator

// #region imports
import (
	"context"
	"fmt"
	"log"
	"math"

	"github.com/danielpatrickdp/drift-patch/go-engine/internal/analyzer"
	"github.com/danielpatrickdp/drift-patch/go-engine/internal/classifier"
	"github.com/danielpatrickdp/drift-patch/go-engine/internal/matrix"
	"github.com/danielpatrickdp/drift-patch/go-engine/internal/patch"
)

// #endregion

// #region validator

// Validator runs held-out validation over patch candidates. Rejections
// accumulate in the results; a failed candidate never aborts the batch.
type Validator struct {
	config     Config
	analyzer   *analyzer.Analyzer
	classifier *classifier.Classifier
	predictor  Predictor // nil = drift-only validation
}

// NewValidator creates a validator. predictor may be nil.
func NewValidator(config Config, predictor Predictor) *Validator {
	acfg := config.Analyzer
	// Held-out subsets run as small as MidMinSamples, below the strict
	// analysis minimum. The validator opts into best-effort explicitly.
	acfg.BestEffort = true
	return &Validator{
		config:     config,
		analyzer:   analyzer.NewAnalyzer(acfg),
		classifier: classifier.NewClassifier(config.Classifier),
		predictor:  predictor,
	}
}

// #endregion validator

// #region split

// SplitFor sizes the held-out validation subset for n current samples.
// The validation rows are taken from the tail so the application subset
// and validation subset never overlap.
func (v *Validator) SplitFor(n int) Split {
	var k int
	switch {
	case n >= v.config.LargeN:
		k = int(v.config.LargeSplitFraction * float64(n))
		if k < v.config.LargeMinSamples {
			k = v.config.LargeMinSamples
		}
	case n >= v.config.MidN:
		k = int(v.config.MidSplitFraction * float64(n))
		if k < v.config.MidMinSamples {
			k = v.config.MidMinSamples
		}
	default:
		return Split{ValidationStart: n, FastTrack: true}
	}
	if k >= n {
		return Split{ValidationStart: n, FastTrack: true}
	}
	return Split{ValidationStart: n - k}
}

// #endregion split

// #region validate

// Validate checks every candidate against the held-out subset of current
// and returns one Result per candidate, in input order.
func (v *Validator) Validate(ctx context.Context, modelID string, reference, current matrix.Matrix, candidates []patch.Candidate) []Result {
	split := v.SplitFor(current.Rows())
	var val matrix.Matrix
	var baselineScore float64
	var baselineErr error
	if !split.FastTrack {
		val = current[split.ValidationStart:]
		baselineScore, baselineErr = v.driftScore(reference, val)
	}

	results := make([]Result, 0, len(candidates))
	for _, c := range candidates {
		var r Result
		switch {
		case c.Type == patch.TypeModelUpdate:
			r = rejectWithVeto(c, VetoUnsupportedType,
				"model update requires a retraining pipeline, outside the patch engine")
		case split.FastTrack:
			r = v.fastTrack(c, reference)
		case baselineErr != nil:
			r = Result{
				CandidateID:     c.ID,
				CandidateType:   c.Type,
				RejectionReason: fmt.Sprintf("baseline re-measurement failed: %v", baselineErr),
			}
		default:
			r = v.measure(ctx, modelID, c, reference, val, baselineScore)
		}
		if !r.Accepted && r.RejectionReason != "" {
			log.Printf("[VALID] reject %s (%s): %s", c.ID, c.Type, r.RejectionReason)
		} else {
			log.Printf("[VALID] %s %s safety=%.3f reduction=%.3f approx=%v warn=%v",
				verdict(r), patch.Describe(c), r.SafetyScore, r.MeasuredDriftReduction,
				r.Approximate, r.Warning)
		}
		results = append(results, r)
	}
	return results
}

func verdict(r Result) string {
	if r.Accepted {
		return "accept"
	}
	return "reject"
}

// #endregion validate

// #region fast-track

// fastTrack skips held-out re-measurement: the candidate's expected
// reduction stands in for the measured value and the result is flagged
// approximate end to end.
func (v *Validator) fastTrack(c patch.Candidate, reference matrix.Matrix) Result {
	magComp, veto := v.magnitudeComponent(c, reference)
	if veto != nil {
		r := rejectWithVeto(c, veto.Type, veto.Reason)
		r.Approximate = true
		return r
	}
	// Accuracy and balance components stay neutral without a measurement.
	safety := 0.4 + 0.3 + 0.3*magComp
	r := Result{
		CandidateID:            c.ID,
		CandidateType:          c.Type,
		SafetyScore:            safety,
		MeasuredDriftReduction: c.ExpectedDriftReduction,
		Approximate:            true,
	}
	v.decide(&r)
	return r
}

// #endregion fast-track

// #region measure

func (v *Validator) measure(ctx context.Context, modelID string, c patch.Candidate, reference, val matrix.Matrix, baselineScore float64) Result {
	r := Result{CandidateID: c.ID, CandidateType: c.Type}

	magComp, veto := v.magnitudeComponent(c, reference)
	if veto != nil {
		return rejectWithVeto(c, veto.Type, veto.Reason)
	}

	if c.Type == patch.TypeThreshold {
		return v.measureThreshold(ctx, modelID, c, reference, val, magComp)
	}

	rs := patch.FromCandidate(modelID, c)
	patched := rs.Apply(val)
	if row, col, bad := patched.BadValue(); bad {
		return rejectWithVeto(c, VetoCorruptOutput,
			fmt.Sprintf("transform produced non-finite value at sample %d, feature %d", row, col))
	}

	newScore, err := v.driftScore(reference, patched)
	if err != nil {
		r.RejectionReason = fmt.Sprintf("patched re-measurement failed: %v", err)
		return r
	}
	if baselineScore > 0 {
		r.MeasuredDriftReduction = (baselineScore - newScore) / baselineScore
	}

	accComp, balComp := 1.0, 1.0
	if v.predictor != nil {
		delta, up, down, err := v.accuracyDelta(ctx, modelID, val, patched)
		if err != nil {
			r.RejectionReason = "accuracy re-measurement unavailable"
			return r
		}
		r.AccuracyDelta = delta
		if math.Abs(delta) > v.config.MaxAccuracyDelta {
			return rejectWithVeto(c, VetoAccuracyBound,
				fmt.Sprintf("accuracy delta %+.4f outside ±%.2f bound", delta, v.config.MaxAccuracyDelta))
		}
		accComp = 1 - math.Abs(delta)/v.config.MaxAccuracyDelta
		balComp = balance(up, down)
	}

	r.SafetyScore = 0.4*accComp + 0.3*balComp + 0.3*magComp
	v.decide(&r)
	return r
}

// #endregion measure

// #region measure-threshold

// measureThreshold validates a decision-threshold patch on the output
// side: it compares the current positive rate against the reference
// positive rate before and after the delta. Without a predictor the
// expected reduction stands in, flagged approximate.
func (v *Validator) measureThreshold(ctx context.Context, modelID string, c patch.Candidate, reference, val matrix.Matrix, magComp float64) Result {
	r := Result{CandidateID: c.ID, CandidateType: c.Type}
	delta := c.Params.(patch.ThresholdParams).Delta

	if v.predictor == nil {
		r.MeasuredDriftReduction = c.ExpectedDriftReduction
		r.Approximate = true
		r.SafetyScore = 0.4 + 0.3 + 0.3*magComp
		v.decide(&r)
		return r
	}

	refOut, err := v.predict(ctx, modelID, reference)
	if err == nil {
		var curOut matrix.Matrix
		curOut, err = v.predict(ctx, modelID, val)
		if err == nil {
			base := v.config.BaseThreshold
			refRate := positiveRate(refOut, base)
			before := math.Abs(positiveRate(curOut, base) - refRate)
			after := math.Abs(positiveRate(curOut, base+delta) - refRate)
			if before > 0 {
				r.MeasuredDriftReduction = (before - after) / before
			}
			r.AccuracyDelta = positiveRate(curOut, base+delta) - positiveRate(curOut, base)
			if math.Abs(r.AccuracyDelta) > v.config.MaxAccuracyDelta {
				return rejectWithVeto(c, VetoAccuracyBound,
					fmt.Sprintf("accuracy delta %+.4f outside ±%.2f bound", r.AccuracyDelta, v.config.MaxAccuracyDelta))
			}
			accComp := 1 - math.Abs(r.AccuracyDelta)/v.config.MaxAccuracyDelta
			r.SafetyScore = 0.4*accComp + 0.3 + 0.3*magComp
			v.decide(&r)
			return r
		}
	}
	r.RejectionReason = "accuracy re-measurement unavailable"
	return r
}

// #endregion measure-threshold

// #region decide

// decide applies the acceptance rule: full thresholds accept outright,
// the borderline band accepts with a warning flag, anything lower is
// rejected with a readable reason.
func (v *Validator) decide(r *Result) {
	cfg := v.config
	safetyOK := r.SafetyScore >= cfg.SafetyBorderline
	reductionOK := r.MeasuredDriftReduction >= cfg.ReductionBorderline

	if safetyOK && reductionOK {
		r.Accepted = true
		r.Warning = r.SafetyScore < cfg.SafetyAccept || r.MeasuredDriftReduction < cfg.ReductionAccept
		return
	}
	if !safetyOK {
		r.RejectionReason = fmt.Sprintf("safety score %.2f below threshold %.2f",
			r.SafetyScore, cfg.SafetyBorderline)
		return
	}
	r.RejectionReason = fmt.Sprintf("drift reduction %.2f below threshold %.2f",
		r.MeasuredDriftReduction, cfg.ReductionBorderline)
}

// #endregion decide

// #region drift-score

func (v *Validator) driftScore(reference, current matrix.Matrix) (float64, error) {
	metrics, err := v.analyzer.Analyze(reference, current)
	if err != nil {
		return 0, err
	}
	return v.classifier.Classify(metrics, nil).OverallScore, nil
}

// #endregion drift-score

// #region accuracy

// accuracyDelta measures the signed positive-rate shift between model
// outputs on the raw and patched validation subsets, plus the count of
// decision flips in each direction.
func (v *Validator) accuracyDelta(ctx context.Context, modelID string, before, after matrix.Matrix) (delta float64, flipsUp, flipsDown int, err error) {
	outBefore, err := v.predict(ctx, modelID, before)
	if err != nil {
		return 0, 0, 0, err
	}
	outAfter, err := v.predict(ctx, modelID, after)
	if err != nil {
		return 0, 0, 0, err
	}
	base := v.config.BaseThreshold
	delta = positiveRate(outAfter, base) - positiveRate(outBefore, base)
	n := outBefore.Rows()
	if outAfter.Rows() < n {
		n = outAfter.Rows()
	}
	for i := 0; i < n; i++ {
		b := outBefore[i][0] >= base
		a := outAfter[i][0] >= base
		if !b && a {
			flipsUp++
		}
		if b && !a {
			flipsDown++
		}
	}
	return delta, flipsUp, flipsDown, nil
}

func (v *Validator) predict(ctx context.Context, modelID string, m matrix.Matrix) (matrix.Matrix, error) {
	pctx, cancel := context.WithTimeout(ctx, v.config.PredictTimeout)
	defer cancel()
	return v.predictor.Predict(pctx, modelID, m)
}

// positiveRate is the fraction of output rows whose first column clears
// the threshold.
func positiveRate(outputs matrix.Matrix, threshold float64) float64 {
	if outputs.Rows() == 0 || outputs.Features() == 0 {
		return 0
	}
	var pos int
	for _, row := range outputs {
		if row[0] >= threshold {
			pos++
		}
	}
	return float64(pos) / float64(outputs.Rows())
}

// balance rewards symmetric decision flips: all-one-direction flips score
// zero, an even split scores one, no flips stay neutral.
func balance(up, down int) float64 {
	total := up + down
	if total == 0 {
		return 1
	}
	return 1 - math.Abs(float64(up-down))/float64(total)
}

// #endregion accuracy

// #region magnitude

// magnitudeComponent scores how large a candidate's parameter change is
// relative to the reference statistics. Returns the [0,1] safety
// component, or a veto when the change exceeds the saturation cap.
func (v *Validator) magnitudeComponent(c patch.Candidate, reference matrix.Matrix) (float64, *VetoSignal) {
	mag := v.parameterMagnitude(c, reference)
	if mag > v.config.MagnitudeSaturation {
		return 0, &VetoSignal{
			Type: VetoParameterMagnitude,
			Reason: fmt.Sprintf("parameter change %.2f reference units exceeds cap %.2f",
				mag, v.config.MagnitudeSaturation),
		}
	}
	return 1 - mag/v.config.MagnitudeSaturation, nil
}

func (v *Validator) parameterMagnitude(c patch.Candidate, reference matrix.Matrix) float64 {
	switch p := c.Params.(type) {
	case patch.ClippingParams:
		var sum float64
		for i, b := range p.Bounds {
			stats := matrix.Stats(reference.Column(i))
			sum += (math.Abs(b.Min-stats.Min) + math.Abs(b.Max-stats.Max)) / (2 * (stats.Std + 1e-8))
		}
		return avg(sum, len(p.Bounds))
	case patch.ReweightingParams:
		var sum float64
		for _, w := range p.Weights {
			sum += 2 * math.Abs(1-w)
		}
		return avg(sum, len(p.Weights))
	case patch.NormalizationParams:
		var sum float64
		for _, t := range p.Targets {
			sum += (math.Abs(t.CurMean-t.RefMean) + math.Abs(t.CurStd-t.RefStd)) / (t.RefStd + 1e-8)
		}
		return avg(sum, len(p.Targets))
	case patch.ThresholdParams:
		return math.Abs(p.Delta) / v.config.ThresholdDeltaUnit
	case patch.ModelUpdateParams:
		return 0
	default:
		return 0
	}
}

func avg(sum float64, n int) float64 {
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// #endregion magnitude

// #region reject

func rejectWithVeto(c patch.Candidate, t VetoType, reason string) Result {
	return Result{
		CandidateID:     c.ID,
		CandidateType:   c.Type,
		RejectionReason: fmt.Sprintf("hard veto: %s", reason),
		Vetoes:          []VetoSignal{{Type: t, Reason: reason}},
	}
}

// #endregion reject
