package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/danielpatrickdp/behavior-fusion/go-engine/internal/analytics"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to engagement.db")
	session := flag.String("session", "", "show evaluations for one session")
	flags := flag.Bool("flags", false, "show behavioral flags instead of scores")
	last := flag.Int("last", 20, "show N most recent rows")
	jsonOut := flag.Bool("json", false, "output as JSON instead of table")
	flag.Parse()

	if *dbPath == "" {
		fmt.Fprintln(os.Stderr, "usage: inspect --db path/to/engagement.db [--session id] [--flags] [--last N] [--json]")
		os.Exit(2)
	}

	store, err := analytics.NewStore(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case *flags:
		err = runFlagMode(store, *session, *last, *jsonOut)
	case *session != "":
		err = runScoreMode(store, *session, *last, *jsonOut)
	default:
		err = runSessionMode(store, *jsonOut)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region session-mode

func runSessionMode(store *analytics.Store, jsonOut bool) error {
	sessions, err := store.ListSessions()
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Fprintln(os.Stderr, "no sessions found")
		return nil
	}
	if jsonOut {
		return printJSON(sessions)
	}

	fmt.Printf("%-24s  %5s  %5s  %8s  %-22s  %s\n",
		"Session", "Evals", "Flags", "Score", "Label", "Last Seen")
	for _, s := range sessions {
		fmt.Printf("%-24s  %5d  %5d  %8.4f  %-22s  %s\n",
			s.SessionID, s.Evaluations, s.Flags, s.LastScore, s.LastLabel,
			s.LastSeen.Format("2006-01-02T15:04:05Z"))
	}
	return nil
}

// #endregion session-mode

// #region score-mode

func runScoreMode(store *analytics.Store, session string, last int, jsonOut bool) error {
	scores, err := store.ListScores(session, last)
	if err != nil {
		return err
	}
	if len(scores) == 0 {
		fmt.Fprintln(os.Stderr, "no evaluations found")
		return nil
	}
	if jsonOut {
		return printJSON(scores)
	}

	fmt.Printf("%-8s  %8s  %-22s  %-22s  %-17s  %-20s  %s\n",
		"Eval", "Score", "Label", "Provenance", "Cognitive", "Iteration", "Time")
	for _, rec := range scores {
		fmt.Printf("%-8s  %8.4f  %-22s  %-22s  %-17s  %-20s  %s\n",
			shortID(rec.EvaluationID), rec.Result.CESScore, rec.Result.CESClassification,
			rec.Result.ProvenanceState, rec.Result.CognitiveState, rec.Result.IterationState,
			rec.ComputedAt.Format("2006-01-02T15:04:05Z"))
	}
	return nil
}

// #endregion score-mode

// #region flag-mode

func runFlagMode(store *analytics.Store, session string, last int, jsonOut bool) error {
	flags, err := store.ListFlags(session, last)
	if err != nil {
		return err
	}
	if len(flags) == 0 {
		fmt.Fprintln(os.Stderr, "no flags found")
		return nil
	}
	if jsonOut {
		return printJSON(flags)
	}

	fmt.Printf("%-24s  %-8s  %-16s  %-40s  %s\n",
		"Session", "Eval", "Kind", "Evidence", "Time")
	for _, rec := range flags {
		evidence, _ := json.Marshal(rec.Flag.Evidence)
		fmt.Printf("%-24s  %-8s  %-16s  %-40s  %s\n",
			rec.SessionID, shortID(rec.EvaluationID), rec.Flag.Kind, evidence,
			rec.CreatedAt.Format("2006-01-02T15:04:05Z"))
	}
	return nil
}

// #endregion flag-mode

// #region output

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// #endregion output
