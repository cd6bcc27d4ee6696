package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/danielpatrickdp/drift-patch/go-engine/internal/engine"
	"github.com/danielpatrickdp/drift-patch/go-engine/internal/patch"
)

// #region helpers
func setupStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "patches.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleState(modelID string) engine.ModelState {
	base := patch.NewRuleSet(modelID)
	cand := patch.Candidate{
		ID:       "p1",
		Type:     patch.TypeNormalization,
		Priority: patch.PriorityPrimary,
		Params: patch.NormalizationParams{Targets: map[int]patch.NormTarget{
			2: {CurMean: 3, CurStd: 1.5, RefMean: 0, RefStd: 1},
		}},
	}
	active := base.Compose(cand)
	return engine.ModelState{
		Active:   active,
		Previous: &base,
		Patches: []patch.Applied{{
			ID:             "p1",
			Type:           cand.Type,
			Priority:       cand.Priority,
			Params:         cand.Params,
			AppliedAt:      time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
			SafetyScore:    0.8,
			DriftReduction: 0.65,
		}},
	}
}

// #endregion helpers

// #region save-load-tests
func TestSaveLoadRoundTrip(t *testing.T) {
	s := setupStore(t)
	state := sampleState("m1")

	if err := s.Save("m1", state); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, ok, err := s.Load("m1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !ok {
		t.Fatal("expected saved state to exist")
	}
	if loaded.Active.Version != state.Active.Version {
		t.Errorf("active version %s, want %s", loaded.Active.Version, state.Active.Version)
	}
	if loaded.Previous == nil || loaded.Previous.Version != state.Previous.Version {
		t.Fatalf("archived version not restored: %+v", loaded.Previous)
	}
	if len(loaded.Patches) != 1 {
		t.Fatalf("expected 1 applied patch, got %d", len(loaded.Patches))
	}
	p := loaded.Patches[0]
	if p.ID != "p1" || p.Type != patch.TypeNormalization {
		t.Errorf("patch identity lost: %+v", p)
	}
	np, ok := p.Params.(patch.NormalizationParams)
	if !ok {
		t.Fatalf("params decoded to wrong type: %T", p.Params)
	}
	if np.Targets[2].CurMean != 3 {
		t.Errorf("params lost precision: %+v", np)
	}
	if p.SafetyScore != 0.8 || p.DriftReduction != 0.65 {
		t.Errorf("validation scores lost: %+v", p)
	}
}

func TestLoadUnknownModel(t *testing.T) {
	s := setupStore(t)
	_, ok, err := s.Load("missing")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ok {
		t.Fatal("unknown model reported as present")
	}
}

func TestSaveRollbackState(t *testing.T) {
	// After a rollback the archive slot is empty and the patch record
	// carries its rollback timestamp; both must persist.
	s := setupStore(t)
	state := sampleState("m1")
	if err := s.Save("m1", state); err != nil {
		t.Fatalf("save: %v", err)
	}

	rolledBack := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	state.Active = *state.Previous
	state.Previous = nil
	state.Patches[0].RolledBackAt = &rolledBack
	if err := s.Save("m1", state); err != nil {
		t.Fatalf("save rollback: %v", err)
	}

	loaded, _, err := s.Load("m1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Previous != nil {
		t.Errorf("archive should be cleared, got %+v", loaded.Previous)
	}
	if loaded.Patches[0].RolledBackAt == nil {
		t.Error("rollback timestamp not persisted")
	}
}

func TestListVersionsHistory(t *testing.T) {
	s := setupStore(t)
	if err := s.Save("m1", sampleState("m1")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Save("other", sampleState("other")); err != nil {
		t.Fatalf("save other: %v", err)
	}

	versions, err := s.ListVersions("m1", 10)
	if err != nil {
		t.Fatalf("list versions: %v", err)
	}
	if len(versions) != 2 {
		t.Fatalf("expected active + archived version, got %d", len(versions))
	}
	for _, v := range versions {
		if v.ModelID != "m1" {
			t.Errorf("version from wrong model: %q", v.ModelID)
		}
	}
}

// #endregion save-load-tests
