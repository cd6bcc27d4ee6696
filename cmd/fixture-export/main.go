package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/danielpatrickdp/drift-patch/go-engine/internal/replay"
)

// #region main

// fixture-export packages raw matrix files into a replay fixture. With
// --record it runs the pipeline once and freezes the observed actions as
// the fixture's expectations, so later replays detect behavior changes.
func main() {
	model := flag.String("model", "replay", "model id recorded in the fixture")
	refPath := flag.String("reference", "", "path to reference matrix JSON")
	out := flag.String("out", "", "output fixture path")
	desc := flag.String("desc", "", "fixture description")
	record := flag.Bool("record", false, "run the pipeline and freeze observed actions as expectations")
	flag.Parse()

	if *refPath == "" || *out == "" || flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: fixture-export --reference ref.json --out fixture.json [--model id] [--desc text] [--record] windowID=window.json ...")
		os.Exit(2)
	}

	ref, err := loadRows(*refPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	f := &replay.Fixture{
		Description: *desc,
		ModelID:     *model,
		Reference:   ref,
	}
	for _, arg := range flag.Args() {
		id, path, ok := strings.Cut(arg, "=")
		if !ok {
			fmt.Fprintf(os.Stderr, "invalid window %q, want windowID=window.json\n", arg)
			os.Exit(2)
		}
		rows, err := loadRows(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		f.Windows = append(f.Windows, replay.FixtureWindow{WindowID: id, Rows: rows})
	}

	if *record {
		results, _, err := replay.Replay(context.Background(), f)
		if err != nil {
			fmt.Fprintf(os.Stderr, "record run: %v\n", err)
			os.Exit(1)
		}
		for _, r := range results {
			f.ExpectedResults = append(f.ExpectedResults, replay.FixtureExpectedResult{
				WindowID: r.WindowID,
				Action:   string(r.Action),
			})
			fmt.Printf("recorded %s → %s\n", r.WindowID, r.Action)
		}
	}

	if err := replay.SaveFixture(*out, f); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %s (%d windows)\n", *out, len(f.Windows))
}

// #endregion main

// #region helpers

func loadRows(path string) ([][]float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read matrix %s: %w", path, err)
	}
	var rows [][]float64
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("parse matrix %s: %w", path, err)
	}
	return rows, nil
}

// #endregion helpers
