package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/danielpatrickdp/drift-patch/go-engine/internal/config"
	"github.com/danielpatrickdp/drift-patch/go-engine/internal/inference"
	"github.com/danielpatrickdp/drift-patch/go-engine/internal/matrix"
	"github.com/danielpatrickdp/drift-patch/go-engine/internal/orchestrator"
	"github.com/danielpatrickdp/drift-patch/go-engine/internal/store"
	"github.com/danielpatrickdp/drift-patch/go-engine/internal/validator"
)

// #region main
func main() {
	configPath := flag.String("config", "", "path to engine YAML config (optional)")
	predict := flag.Bool("predict", false, "re-measure accuracy through the inference service")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: controller [--config engine.yaml] [--predict] model:reference.json:current.json ...")
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	batches, err := parseBatches(flag.Args())
	if err != nil {
		log.Fatalf("parse inputs: %v", err)
	}

	st, err := store.NewStore(cfg.DBPath)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer st.Close()

	var predictor validator.Predictor
	if *predict {
		runtime, err := inference.NewRuntime(cfg.InferenceAddr)
		if err != nil {
			log.Fatalf("connect inference service at %s: %v", cfg.InferenceAddr, err)
		}
		defer runtime.Close()
		predictor = runtime
	}

	orch, err := orchestrator.NewOrchestrator(cfg, st, predictor)
	if err != nil {
		log.Fatalf("init orchestrator: %v", err)
	}
	if !orch.Enabled() {
		fmt.Println("Patch engine DISABLED: cycles analyze and log only.")
	}
	fmt.Printf("Drift patch controller | DB: %s | models: %d\n", cfg.DBPath, len(batches))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	results, err := orch.RunAll(ctx, batches)
	if err != nil {
		log.Fatalf("cycle failed: %v", err)
	}

	for _, res := range results {
		printResult(res)
	}
}

// #endregion main

// #region inputs

// parseBatches turns "model:reference.json:current.json" arguments into
// analysis batches.
func parseBatches(args []string) ([]orchestrator.ModelBatch, error) {
	batches := make([]orchestrator.ModelBatch, 0, len(args))
	for _, arg := range args {
		parts := strings.Split(arg, ":")
		if len(parts) != 3 {
			return nil, fmt.Errorf("invalid input %q, want model:reference.json:current.json", arg)
		}
		ref, err := loadMatrix(parts[1])
		if err != nil {
			return nil, err
		}
		cur, err := loadMatrix(parts[2])
		if err != nil {
			return nil, err
		}
		batches = append(batches, orchestrator.ModelBatch{
			ModelID:   parts[0],
			Reference: ref,
			Current:   cur,
		})
	}
	return batches, nil
}

func loadMatrix(path string) (matrix.Matrix, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read matrix %s: %w", path, err)
	}
	var rows [][]float64
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("parse matrix %s: %w", path, err)
	}
	return matrix.Matrix(rows), nil
}

// #endregion inputs

// #region output

func printResult(res orchestrator.CycleResult) {
	fmt.Printf("\n[%s] action=%s drift=%.3f type=%s drifted=%d/%d (%.0fms)\n",
		res.ModelID, res.Action, res.Drift.OverallScore, res.Drift.Type,
		len(res.Drift.DriftedFeatures), len(res.Drift.PerFeature),
		float64(res.Elapsed.Milliseconds()))

	for i, vr := range res.Validations {
		status := "reject"
		if vr.Accepted {
			status = "accept"
		}
		line := fmt.Sprintf("  %s %s safety=%.2f reduction=%.2f",
			status, res.Candidates[i].Type, vr.SafetyScore, vr.MeasuredDriftReduction)
		if vr.Approximate {
			line += " (approximate)"
		}
		if vr.RejectionReason != "" {
			line += " — " + vr.RejectionReason
		}
		fmt.Println(line)
	}

	for _, ap := range res.Applied {
		fmt.Printf("  applied %s patch %s\n", ap.Type, ap.ID)
	}
	if len(res.Applied) > 0 {
		fmt.Printf("  drift %.3f → %.3f (%.0f%% reduction)\n",
			res.Drift.OverallScore, res.PostDriftScore, res.ReductionPercent*100)
	}
}

// #endregion output
