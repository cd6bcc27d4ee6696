package engine

import (
	"errors"
	"reflect"
	"sync"
	"testing"

	"github.com/danielpatrickdp/drift-patch/go-engine/internal/matrix"
	"github.com/danielpatrickdp/drift-patch/go-engine/internal/patch"
	"github.com/danielpatrickdp/drift-patch/go-engine/internal/validator"
)

// memRepo is an in-memory Repository that counts saves.
type memRepo struct {
	mu     sync.Mutex
	states map[string]ModelState
	saves  int
}

func newMemRepo() *memRepo {
	return &memRepo{states: make(map[string]ModelState)}
}

func (r *memRepo) Save(modelID string, state ModelState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states[modelID] = state
	r.saves++
	return nil
}

func (r *memRepo) Load(modelID string) (ModelState, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.states[modelID]
	return s, ok, nil
}

func accepted() validator.Result {
	return validator.Result{Accepted: true, SafetyScore: 0.8, MeasuredDriftReduction: 0.6}
}

func normCandidate(id string) patch.Candidate {
	return patch.Candidate{
		ID:       id,
		Type:     patch.TypeNormalization,
		Priority: patch.PriorityPrimary,
		Params: patch.NormalizationParams{Targets: map[int]patch.NormTarget{
			0: {CurMean: 3, CurStd: 1, RefMean: 0, RefStd: 1},
		}},
	}
}

func TestTransformIdentityWithoutPatches(t *testing.T) {
	e := NewEngine(nil)
	in := matrix.Matrix{{1, 2}, {3, 4}}
	out, err := e.Transform("m1", in)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(out, in) {
		t.Fatalf("unpatched model altered data: %v", out)
	}
	out[0][0] = 99
	if in[0][0] == 99 {
		t.Fatal("transform aliased the input matrix")
	}
}

func TestApplyThenTransform(t *testing.T) {
	e := NewEngine(nil)
	if _, err := e.Apply("m1", normCandidate("c1"), accepted()); err != nil {
		t.Fatal(err)
	}
	out, err := e.Transform("m1", matrix.Matrix{{3}})
	if err != nil {
		t.Fatal(err)
	}
	if got := out[0][0]; got < -0.01 || got > 0.01 {
		t.Fatalf("normalization not applied: got %f, want ~0", got)
	}
}

func TestApplyRejectsUnacceptedCandidate(t *testing.T) {
	e := NewEngine(nil)
	_, err := e.Apply("m1", normCandidate("c1"), validator.Result{Accepted: false})
	if err == nil {
		t.Fatal("unaccepted candidate was applied")
	}
}

func TestRollbackRestoresPriorTransform(t *testing.T) {
	e := NewEngine(nil)
	in := matrix.Matrix{{3}, {5}}

	before, _ := e.Transform("m1", in)
	if _, err := e.Apply("m1", normCandidate("c1"), accepted()); err != nil {
		t.Fatal(err)
	}
	patched, _ := e.Transform("m1", in)
	if reflect.DeepEqual(patched, before) {
		t.Fatal("apply had no effect on transform output")
	}

	if err := e.Rollback("m1"); err != nil {
		t.Fatal(err)
	}
	after, _ := e.Transform("m1", in)
	if !reflect.DeepEqual(after, before) {
		t.Fatalf("rollback did not restore prior behavior: %v vs %v", after, before)
	}
}

func TestRollbackMarksPatchRecord(t *testing.T) {
	e := NewEngine(nil)
	if _, err := e.Apply("m1", normCandidate("c1"), accepted()); err != nil {
		t.Fatal(err)
	}
	if err := e.Rollback("m1"); err != nil {
		t.Fatal(err)
	}
	ps, err := e.AppliedPatches("m1")
	if err != nil {
		t.Fatal(err)
	}
	if len(ps) != 1 || ps[0].RolledBackAt == nil {
		t.Fatalf("rollback not recorded on applied patch: %+v", ps)
	}
}

func TestSecondRollbackFails(t *testing.T) {
	e := NewEngine(nil)
	if _, err := e.Apply("m1", normCandidate("c1"), accepted()); err != nil {
		t.Fatal(err)
	}
	if err := e.Rollback("m1"); err != nil {
		t.Fatal(err)
	}
	err := e.Rollback("m1")
	var rbErr *RollbackError
	if !errors.As(err, &rbErr) {
		t.Fatalf("expected RollbackError on second rollback, got %v", err)
	}
	if rbErr.ModelID != "m1" {
		t.Fatalf("error names wrong model: %s", rbErr.ModelID)
	}
}

func TestRollbackWithoutApplyFails(t *testing.T) {
	e := NewEngine(nil)
	var rbErr *RollbackError
	if err := e.Rollback("fresh"); !errors.As(err, &rbErr) {
		t.Fatalf("expected RollbackError for unpatched model, got %v", err)
	}
}

func TestSingleArchiveSlot(t *testing.T) {
	// After any sequence of applies there is one active ruleset and at
	// most one archived version; a second apply overwrites the archive.
	e := NewEngine(nil)
	if _, err := e.Apply("m1", normCandidate("c1"), accepted()); err != nil {
		t.Fatal(err)
	}
	v1, _ := e.ActiveRuleSet("m1")
	if _, err := e.Apply("m1", normCandidate("c2"), accepted()); err != nil {
		t.Fatal(err)
	}

	if err := e.Rollback("m1"); err != nil {
		t.Fatal(err)
	}
	restored, _ := e.ActiveRuleSet("m1")
	if restored.Version != v1.Version {
		t.Fatalf("rollback restored %s, want the immediately prior version %s",
			restored.Version, v1.Version)
	}
	// The archive was consumed; no deeper history exists.
	var rbErr *RollbackError
	if err := e.Rollback("m1"); !errors.As(err, &rbErr) {
		t.Fatalf("expected exhausted archive, got %v", err)
	}
}

func TestAdjustedThreshold(t *testing.T) {
	e := NewEngine(nil)
	cand := patch.Candidate{
		ID:     "c-th",
		Type:   patch.TypeThreshold,
		Params: patch.ThresholdParams{Delta: 0.05},
	}
	if _, err := e.Apply("m1", cand, accepted()); err != nil {
		t.Fatal(err)
	}
	got, err := e.AdjustedThreshold("m1", 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if got != 0.55 {
		t.Fatalf("adjusted threshold = %f, want 0.55", got)
	}
}

func TestRepositoryRoundTrip(t *testing.T) {
	repo := newMemRepo()

	e := NewEngine(repo)
	if _, err := e.Apply("m1", normCandidate("c1"), accepted()); err != nil {
		t.Fatal(err)
	}
	v, _ := e.ActiveRuleSet("m1")

	// A fresh engine over the same repository resumes the state.
	e2 := NewEngine(repo)
	resumed, err := e2.ActiveRuleSet("m1")
	if err != nil {
		t.Fatal(err)
	}
	if resumed.Version != v.Version {
		t.Fatalf("resumed version %s, want %s", resumed.Version, v.Version)
	}
	if err := e2.Rollback("m1"); err != nil {
		t.Fatalf("archived version did not survive persistence: %v", err)
	}
	if repo.saves < 2 {
		t.Fatalf("expected a save per mutation, got %d", repo.saves)
	}
}

func TestConcurrentTransforms(t *testing.T) {
	e := NewEngine(nil)
	if _, err := e.Apply("m1", normCandidate("c1"), accepted()); err != nil {
		t.Fatal(err)
	}

	in := matrix.Matrix{{3}}
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if _, err := e.Transform("m1", in); err != nil {
					t.Error(err)
					return
				}
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = e.Apply("m1", normCandidate("c2"), accepted())
		_ = e.Rollback("m1")
	}()
	wg.Wait()
}
