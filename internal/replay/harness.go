package replay

import (
	"fmt"

	"github.com/danielpatrickdp/behavior-fusion/go-engine/internal/engine"
)

// #region result-types

// Result is the outcome of replaying one fixture evaluation.
type Result struct {
	Index      int
	Label      string
	Actual     engine.EngagementResult
	Mismatches []string
	Err        error
}

// Matched reports whether the evaluation reproduced its expectations.
func (r Result) Matched() bool {
	return r.Err == nil && len(r.Mismatches) == 0
}

// Summary aggregates a replay run.
type Summary struct {
	Total      int
	Matched    int
	Mismatched int
	Errors     int
}

// #endregion result-types

// #region replay

// Replay re-runs every snapshot in the fixture through an engine built from
// cfg and checks each against its expected outcome. Only expectations that
// are set in the fixture are compared.
func Replay(f *Fixture, cfg engine.Config) ([]Result, Summary) {
	e := engine.New(cfg)

	results := make([]Result, 0, len(f.Evaluations))
	var summary Summary

	for i, ev := range f.Evaluations {
		res := Result{Index: i, Label: ev.Label}

		actual, err := e.Evaluate(ev.Snapshot)
		if err != nil {
			res.Err = err
			summary.Errors++
			summary.Total++
			results = append(results, res)
			continue
		}
		res.Actual = actual
		res.Mismatches = compare(ev.Expected, actual)

		summary.Total++
		if res.Matched() {
			summary.Matched++
		} else {
			summary.Mismatched++
		}
		results = append(results, res)
	}
	return results, summary
}

func compare(want ExpectedOutcome, got engine.EngagementResult) []string {
	var mismatches []string
	if want.ProvenanceState != "" && want.ProvenanceState != string(got.ProvenanceState) {
		mismatches = append(mismatches,
			fmt.Sprintf("provenance_state: want %s, got %s", want.ProvenanceState, got.ProvenanceState))
	}
	if want.CognitiveState != "" && want.CognitiveState != string(got.CognitiveState) {
		mismatches = append(mismatches,
			fmt.Sprintf("cognitive_state: want %s, got %s", want.CognitiveState, got.CognitiveState))
	}
	if want.IterationState != "" && want.IterationState != string(got.IterationState) {
		mismatches = append(mismatches,
			fmt.Sprintf("iteration_state: want %s, got %s", want.IterationState, got.IterationState))
	}
	if want.CESClassification != "" && want.CESClassification != got.CESClassification {
		mismatches = append(mismatches,
			fmt.Sprintf("ces_classification: want %q, got %q", want.CESClassification, got.CESClassification))
	}
	return mismatches
}

// #endregion replay
