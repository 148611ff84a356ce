package telemetry

import (
	"errors"
	"math"
	"testing"
)

func validSnapshot() Snapshot {
	return Snapshot{
		SessionDurationMinutes:     10,
		TotalKeystrokes:            420,
		TotalRunAttempts:           3,
		TotalIdleMinutes:           1.5,
		FocusViolationCount:        1,
		NetCodeChangeChars:         310,
		LastEditSizeChars:          12,
		LastRunIntervalSeconds:     45,
		CurrentIdleDurationSeconds: 4,
		IsWindowFocused:            true,
	}
}

func TestValidateAcceptsInRangeSnapshot(t *testing.T) {
	if err := validSnapshot().Validate(); err != nil {
		t.Fatalf("expected valid snapshot, got %v", err)
	}
}

func TestValidateAcceptsZeroSnapshot(t *testing.T) {
	// All-zero is the declared default for missing client fields.
	if err := (Snapshot{}).Validate(); err != nil {
		t.Fatalf("expected zero snapshot to validate, got %v", err)
	}
}

func TestValidateRejectsOutOfRange(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Snapshot)
		wantField string
	}{
		{"negative-duration", func(s *Snapshot) { s.SessionDurationMinutes = -1 }, "session_duration_minutes"},
		{"negative-keystrokes", func(s *Snapshot) { s.TotalKeystrokes = -5 }, "total_keystrokes"},
		{"negative-runs", func(s *Snapshot) { s.TotalRunAttempts = -1 }, "total_run_attempts"},
		{"negative-idle", func(s *Snapshot) { s.TotalIdleMinutes = -0.1 }, "total_idle_minutes"},
		{"negative-violations", func(s *Snapshot) { s.FocusViolationCount = -2 }, "focus_violation_count"},
		{"negative-net-change", func(s *Snapshot) { s.NetCodeChangeChars = -10 }, "net_code_change_chars"},
		{"negative-edit-size", func(s *Snapshot) { s.LastEditSizeChars = -1 }, "last_edit_size_chars"},
		{"negative-run-interval", func(s *Snapshot) { s.LastRunIntervalSeconds = -3 }, "last_run_interval_seconds"},
		{"nan-duration", func(s *Snapshot) { s.SessionDurationMinutes = math.NaN() }, "session_duration_minutes"},
		{"inf-idle", func(s *Snapshot) { s.CurrentIdleDurationSeconds = math.Inf(1) }, "current_idle_duration_seconds"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := validSnapshot()
			tt.mutate(&snap)

			err := snap.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			var inv *InvalidTelemetryError
			if !errors.As(err, &inv) {
				t.Fatalf("expected *InvalidTelemetryError, got %T", err)
			}
			if inv.Field != tt.wantField {
				t.Errorf("field: got %q, want %q", inv.Field, tt.wantField)
			}
		})
	}
}
