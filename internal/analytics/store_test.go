package analytics

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielpatrickdp/behavior-fusion/go-engine/internal/engine"
	"github.com/danielpatrickdp/behavior-fusion/go-engine/internal/fusion"
	"github.com/danielpatrickdp/behavior-fusion/go-engine/internal/telemetry"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "analytics.db"))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func evaluate(t *testing.T, snap telemetry.Snapshot) engine.EngagementResult {
	t.Helper()
	result, err := engine.New(engine.DefaultConfig()).Evaluate(snap)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	return result
}

func TestRecordEvaluationRoundTrip(t *testing.T) {
	store := openTestStore(t)

	snap := telemetry.Snapshot{
		SessionDurationMinutes: 20,
		TotalKeystrokes:        360,
		TotalRunAttempts:       6,
		TotalIdleMinutes:       2,
		NetCodeChangeChars:     280,
		LastEditSizeChars:      10,
		LastRunIntervalSeconds: 90,
		IsSemanticChange:       true,
		IsWindowFocused:        true,
	}
	result := evaluate(t, snap)

	rec, err := store.RecordEvaluation("sess-1", snap, result)
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if rec.EvaluationID == "" {
		t.Fatal("expected a minted evaluation id")
	}

	latest, err := store.LatestScore("sess-1")
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if latest.EvaluationID != rec.EvaluationID {
		t.Errorf("evaluation id: got %s, want %s", latest.EvaluationID, rec.EvaluationID)
	}
	if latest.Result.CESScore != result.CESScore {
		t.Errorf("score: got %v, want %v", latest.Result.CESScore, result.CESScore)
	}
	if latest.Result.CESClassification != result.CESClassification {
		t.Errorf("label: got %q, want %q", latest.Result.CESClassification, result.CESClassification)
	}
	if latest.Result.ProvenanceState != result.ProvenanceState {
		t.Errorf("provenance: got %q, want %q", latest.Result.ProvenanceState, result.ProvenanceState)
	}

	var stored telemetry.Snapshot
	if err := json.Unmarshal([]byte(latest.SnapshotJSON), &stored); err != nil {
		t.Fatalf("unmarshal stored snapshot: %v", err)
	}
	if stored != snap {
		t.Errorf("stored snapshot drifted: %+v", stored)
	}
}

func TestLatestScoreUnknownSession(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.LatestScore("missing"); err == nil {
		t.Error("expected error for unknown session")
	}
}

func TestListScoresNewestFirst(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 3; i++ {
		snap := telemetry.Snapshot{
			SessionDurationMinutes: float64(10 + i),
			TotalKeystrokes:        100 * (i + 1),
			NetCodeChangeChars:     80 * (i + 1),
		}
		if _, err := store.RecordEvaluation("sess-1", snap, evaluate(t, snap)); err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
		time.Sleep(2 * time.Millisecond)
	}

	scores, err := store.ListScores("sess-1", 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(scores) != 2 {
		t.Fatalf("got %d scores, want 2", len(scores))
	}
	if !scores[0].ComputedAt.After(scores[1].ComputedAt) {
		t.Errorf("not newest first: %v then %v", scores[0].ComputedAt, scores[1].ComputedAt)
	}
}

func TestFlagsPersistWithEvidence(t *testing.T) {
	store := openTestStore(t)

	// Paste-pattern session raises a suspected-paste flag.
	snap := telemetry.Snapshot{
		SessionDurationMinutes: 5,
		TotalKeystrokes:        5,
		NetCodeChangeChars:     300,
		LastEditSizeChars:      300,
		FocusViolationCount:    2,
	}
	result := evaluate(t, snap)
	if len(result.Flags) == 0 {
		t.Fatal("expected flags from paste session")
	}

	if _, err := store.RecordEvaluation("sess-flags", snap, result); err != nil {
		t.Fatalf("record: %v", err)
	}

	flags, err := store.ListFlags("sess-flags", 10)
	if err != nil {
		t.Fatalf("list flags: %v", err)
	}
	if len(flags) != len(result.Flags) {
		t.Fatalf("got %d flags, want %d", len(flags), len(result.Flags))
	}
	if flags[0].Flag.Kind != fusion.FlagSuspectedPaste {
		t.Errorf("kind: got %q", flags[0].Flag.Kind)
	}
	ev, ok := flags[0].Flag.Evidence.(fusion.PasteEvidence)
	if !ok {
		t.Fatalf("evidence type: got %T", flags[0].Flag.Evidence)
	}
	if ev.EditSizeChars != 300 {
		t.Errorf("evidence edit size: got %d, want 300", ev.EditSizeChars)
	}
}

func TestListSessionsSummaries(t *testing.T) {
	store := openTestStore(t)

	active := telemetry.Snapshot{SessionDurationMinutes: 20, TotalKeystrokes: 360, NetCodeChangeChars: 280}
	idle := telemetry.Snapshot{SessionDurationMinutes: 60, TotalIdleMinutes: 50, CurrentIdleDurationSeconds: 400}

	if _, err := store.RecordEvaluation("sess-a", active, evaluate(t, active)); err != nil {
		t.Fatal(err)
	}
	time.Sleep(2 * time.Millisecond)
	if _, err := store.RecordEvaluation("sess-a", active, evaluate(t, active)); err != nil {
		t.Fatal(err)
	}
	time.Sleep(2 * time.Millisecond)
	if _, err := store.RecordEvaluation("sess-b", idle, evaluate(t, idle)); err != nil {
		t.Fatal(err)
	}

	sessions, err := store.ListSessions()
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("got %d sessions, want 2", len(sessions))
	}
	if sessions[0].SessionID != "sess-b" {
		t.Errorf("most recent session: got %s", sessions[0].SessionID)
	}
	for _, sum := range sessions {
		switch sum.SessionID {
		case "sess-a":
			if sum.Evaluations != 2 {
				t.Errorf("sess-a evaluations: got %d, want 2", sum.Evaluations)
			}
		case "sess-b":
			if sum.Evaluations != 1 {
				t.Errorf("sess-b evaluations: got %d, want 1", sum.Evaluations)
			}
			if sum.Flags == 0 {
				t.Error("sess-b: expected a disengagement flag")
			}
			if sum.LastLabel == "" {
				t.Error("sess-b: missing last label")
			}
		}
	}
}
