package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/danielpatrickdp/drift-patch/go-engine/internal/logging"
	"github.com/danielpatrickdp/drift-patch/go-engine/internal/store"
	_ "modernc.org/sqlite"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to drift_patch.db")
	model := flag.String("model", "", "model to inspect")
	last := flag.Int("last", 20, "show N most recent entries")
	provenance := flag.Bool("provenance", false, "show provenance log instead of state")
	jsonOut := flag.Bool("json", false, "output as JSON instead of table")
	flag.Parse()

	if *dbPath == "" || *model == "" {
		fmt.Fprintln(os.Stderr, "usage: inspect --db path/to/drift_patch.db --model id [--last N] [--provenance] [--json]")
		os.Exit(2)
	}

	st, err := store.NewStore(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	if *provenance {
		err = runProvenanceMode(st, *model, *last, *jsonOut)
	} else {
		err = runStateMode(st, *model, *last, *jsonOut)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region state-mode

type stateView struct {
	ActiveVersion   string      `json:"active_version"`
	PreviousVersion string      `json:"previous_version,omitempty"`
	Stages          stagesView  `json:"stages"`
	Patches         []patchView `json:"patches"`
	Versions        []string    `json:"versions"`
}

type stagesView struct {
	ClipFeatures      int     `json:"clip_features"`
	WeightFeatures    int     `json:"weight_features"`
	NormalizeFeatures int     `json:"normalize_features"`
	ThresholdDelta    float64 `json:"threshold_delta"`
}

type patchView struct {
	ID             string     `json:"id"`
	Type           string     `json:"type"`
	Priority       string     `json:"priority"`
	AppliedAt      time.Time  `json:"applied_at"`
	RolledBackAt   *time.Time `json:"rolled_back_at,omitempty"`
	Approximate    bool       `json:"approximate"`
	SafetyScore    float64    `json:"safety_score"`
	DriftReduction float64    `json:"drift_reduction"`
}

func runStateMode(st *store.Store, model string, last int, jsonOut bool) error {
	state, ok, err := st.Load(model)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("model %s has no persisted state", model)
	}

	view := stateView{
		ActiveVersion: state.Active.Version,
		Stages: stagesView{
			ClipFeatures:      len(state.Active.Clip),
			WeightFeatures:    len(state.Active.Weights),
			NormalizeFeatures: len(state.Active.Normalize),
			ThresholdDelta:    state.Active.ThresholdDelta,
		},
	}
	if state.Previous != nil {
		view.PreviousVersion = state.Previous.Version
	}
	for _, p := range state.Patches {
		view.Patches = append(view.Patches, patchView{
			ID:             p.ID,
			Type:           string(p.Type),
			Priority:       string(p.Priority),
			AppliedAt:      p.AppliedAt,
			RolledBackAt:   p.RolledBackAt,
			Approximate:    p.Approximate,
			SafetyScore:    p.SafetyScore,
			DriftReduction: p.DriftReduction,
		})
	}
	versions, err := st.ListVersions(model, last)
	if err != nil {
		return err
	}
	for _, v := range versions {
		view.Versions = append(view.Versions, v.VersionID)
	}

	if jsonOut {
		return json.NewEncoder(os.Stdout).Encode(view)
	}

	fmt.Printf("model %s\n", model)
	fmt.Printf("  active ruleset  %s\n", view.ActiveVersion)
	if view.PreviousVersion != "" {
		fmt.Printf("  rollback target %s\n", view.PreviousVersion)
	}
	fmt.Printf("  stages: clip=%d weights=%d normalize=%d threshold=%+.4f\n",
		view.Stages.ClipFeatures, view.Stages.WeightFeatures,
		view.Stages.NormalizeFeatures, view.Stages.ThresholdDelta)

	fmt.Printf("\n%-38s %-22s %-10s %-8s %-8s %s\n",
		"PATCH", "TYPE", "PRIORITY", "SAFETY", "REDUCT", "STATUS")
	for _, p := range view.Patches {
		status := "active"
		if p.RolledBackAt != nil {
			status = "rolled back"
		} else if p.Approximate {
			status = "approximate"
		}
		fmt.Printf("%-38s %-22s %-10s %-8.2f %-8.2f %s\n",
			p.ID, p.Type, p.Priority, p.SafetyScore, p.DriftReduction, status)
	}
	fmt.Printf("\n%d ruleset versions recorded\n", len(view.Versions))
	return nil
}

// #endregion state-mode

// #region provenance-mode

func runProvenanceMode(st *store.Store, model string, last int, jsonOut bool) error {
	entries, err := logging.ListEntries(st.DB(), model, last)
	if err != nil {
		return err
	}

	if jsonOut {
		return json.NewEncoder(os.Stdout).Encode(entries)
	}

	fmt.Printf("%-28s %-10s %-38s %s\n", "CREATED", "DECISION", "VERSION", "REASON")
	for _, e := range entries {
		fmt.Printf("%-28s %-10s %-38s %s\n",
			e.CreatedAt.Format(time.RFC3339), e.Decision, e.VersionID, e.Reason)
	}
	return nil
}

// #endregion provenance-mode
