package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/danielpatrickdp/behavior-fusion/go-engine/internal/analytics"
	"github.com/danielpatrickdp/behavior-fusion/go-engine/internal/config"
	"github.com/danielpatrickdp/behavior-fusion/go-engine/internal/engine"
	"github.com/danielpatrickdp/behavior-fusion/go-engine/internal/replay"
	"github.com/danielpatrickdp/behavior-fusion/go-engine/internal/telemetry"
)

// #region main

func main() {
	fixturePath := flag.String("fixture", "", "replay a recorded fixture file (.json or .json.zst)")
	dbPath := flag.String("db", "", "re-score stored sessions from an engagement database")
	session := flag.String("session", "", "restrict --db mode to one session")
	calPath := flag.String("calibration", "", "calibration file to score with (defaults apply if unset)")
	last := flag.Int("last", 50, "evaluations per session in --db mode")
	flag.Parse()

	if (*fixturePath == "") == (*dbPath == "") {
		fmt.Fprintln(os.Stderr, "usage: replay --fixture session.json | --db engagement.db [--session id] [--last N] [--calibration calibration.toml]")
		os.Exit(2)
	}

	cfg, err := config.Load(*calPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "calibration: %v\n", err)
		os.Exit(1)
	}

	if *fixturePath != "" {
		if err := runFixture(*fixturePath, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}
	if err := runDatabase(*dbPath, *session, *last, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region fixture-mode

func runFixture(path string, cfg engine.Config) error {
	f, err := replay.LoadFixture(path)
	if err != nil {
		return err
	}

	results, summary := replay.Replay(f, cfg)

	fmt.Printf("Fixture: %s (%s)\n", path, f.SessionID)
	if f.Description != "" {
		fmt.Printf("  %s\n", f.Description)
	}
	for _, res := range results {
		switch {
		case res.Err != nil:
			fmt.Printf("  [%d] %-24s ERROR %v\n", res.Index, res.Label, res.Err)
		case res.Matched():
			fmt.Printf("  [%d] %-24s ok    score=%.4f %q\n",
				res.Index, res.Label, res.Actual.CESScore, res.Actual.CESClassification)
		default:
			fmt.Printf("  [%d] %-24s DRIFT score=%.4f\n", res.Index, res.Label, res.Actual.CESScore)
			for _, m := range res.Mismatches {
				fmt.Printf("        %s\n", m)
			}
		}
	}
	fmt.Printf("\n%d evaluations: %d matched, %d drifted, %d errors\n",
		summary.Total, summary.Matched, summary.Mismatched, summary.Errors)

	if summary.Mismatched > 0 || summary.Errors > 0 {
		os.Exit(1)
	}
	return nil
}

// #endregion fixture-mode

// #region db-mode

// runDatabase re-scores stored snapshots against the current calibration and
// reports every evaluation whose label would change.
func runDatabase(dbPath, session string, last int, cfg engine.Config) error {
	store, err := analytics.NewStore(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	var sessions []string
	if session != "" {
		sessions = []string{session}
	} else {
		summaries, err := store.ListSessions()
		if err != nil {
			return err
		}
		for _, sum := range summaries {
			sessions = append(sessions, sum.SessionID)
		}
	}
	if len(sessions) == 0 {
		fmt.Fprintln(os.Stderr, "no sessions found")
		return nil
	}

	e := engine.New(cfg)
	total, drifted := 0, 0

	for _, id := range sessions {
		scores, err := store.ListScores(id, last)
		if err != nil {
			return err
		}
		for _, rec := range scores {
			if rec.SnapshotJSON == "" {
				continue
			}
			var snap telemetry.Snapshot
			if err := json.Unmarshal([]byte(rec.SnapshotJSON), &snap); err != nil {
				return fmt.Errorf("evaluation %s: %w", rec.EvaluationID, err)
			}
			rescored, err := e.Evaluate(snap)
			if err != nil {
				return fmt.Errorf("evaluation %s: %w", rec.EvaluationID, err)
			}
			total++
			if rescored.CESClassification != rec.Result.CESClassification {
				drifted++
				fmt.Printf("%s %s: %q (%.4f) -> %q (%.4f)\n",
					id, rec.EvaluationID[:8],
					rec.Result.CESClassification, rec.Result.CESScore,
					rescored.CESClassification, rescored.CESScore)
			}
		}
	}

	fmt.Printf("\n%d stored evaluations re-scored, %d changed label\n", total, drifted)
	return nil
}

// #endregion db-mode
