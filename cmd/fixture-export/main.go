package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/danielpatrickdp/behavior-fusion/go-engine/internal/analytics"
	"github.com/danielpatrickdp/behavior-fusion/go-engine/internal/replay"
	"github.com/danielpatrickdp/behavior-fusion/go-engine/internal/telemetry"
)

// #region main

// fixture-export turns a stored session into a replay fixture, with the
// recorded states and labels as the expected outcomes. Add .zst to --out to
// compress long sessions.
func main() {
	dbPath := flag.String("db", "", "path to engagement.db")
	session := flag.String("session", "", "session to export")
	out := flag.String("out", "", "output fixture path (.json or .json.zst)")
	last := flag.Int("last", 200, "export at most N evaluations")
	desc := flag.String("desc", "", "fixture description")
	flag.Parse()

	if *dbPath == "" || *session == "" || *out == "" {
		fmt.Fprintln(os.Stderr, "usage: fixture-export --db engagement.db --session id --out session.json [--last N] [--desc text]")
		os.Exit(2)
	}

	store, err := analytics.NewStore(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	scores, err := store.ListScores(*session, *last)
	if err != nil {
		fmt.Fprintf(os.Stderr, "list scores: %v\n", err)
		os.Exit(1)
	}
	if len(scores) == 0 {
		fmt.Fprintf(os.Stderr, "no evaluations for session %s\n", *session)
		os.Exit(1)
	}

	fixture, skipped, err := buildFixture(*session, *desc, scores)
	if err != nil {
		fmt.Fprintf(os.Stderr, "build fixture: %v\n", err)
		os.Exit(1)
	}

	if err := replay.WriteFixture(*out, fixture); err != nil {
		fmt.Fprintf(os.Stderr, "write fixture: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("wrote %d evaluations to %s", len(fixture.Evaluations), *out)
	if skipped > 0 {
		fmt.Printf(" (%d skipped without stored telemetry)", skipped)
	}
	fmt.Println()
}

// #endregion main

// #region build

func buildFixture(session, desc string, scores []analytics.ScoreRecord) (*replay.Fixture, int, error) {
	fixture := &replay.Fixture{
		Description: desc,
		SessionID:   session,
	}

	skipped := 0
	// Store rows come newest first; fixtures replay chronologically.
	for i := len(scores) - 1; i >= 0; i-- {
		rec := scores[i]
		if rec.SnapshotJSON == "" {
			skipped++
			continue
		}
		var snap telemetry.Snapshot
		if err := json.Unmarshal([]byte(rec.SnapshotJSON), &snap); err != nil {
			return nil, 0, fmt.Errorf("evaluation %s: %w", rec.EvaluationID, err)
		}
		fixture.Evaluations = append(fixture.Evaluations, replay.FixtureEvaluation{
			Label:    rec.ComputedAt.Format("2006-01-02T15:04:05Z"),
			Snapshot: snap,
			Expected: replay.ExpectedOutcome{
				ProvenanceState:   string(rec.Result.ProvenanceState),
				CognitiveState:    string(rec.Result.CognitiveState),
				IterationState:    string(rec.Result.IterationState),
				CESClassification: rec.Result.CESClassification,
			},
		})
	}
	return fixture, skipped, nil
}

// #endregion build
