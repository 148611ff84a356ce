package telemetry

import (
	"fmt"
	"math"
)

// #region invalid-telemetry-error

// InvalidTelemetryError reports a snapshot field outside its declared range.
// The engine rejects such snapshots at its boundary before any classification.
type InvalidTelemetryError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *InvalidTelemetryError) Error() string {
	return fmt.Sprintf("invalid telemetry: %s = %v (%s)", e.Field, e.Value, e.Reason)
}

// #endregion invalid-telemetry-error

// #region validate

// Validate checks that every field sits inside its declared value range.
// Counts and durations must be non-negative; float fields must be finite.
// Returns an *InvalidTelemetryError describing the first violation found.
func (s Snapshot) Validate() error {
	floats := []struct {
		name  string
		value float64
	}{
		{"session_duration_minutes", s.SessionDurationMinutes},
		{"total_idle_minutes", s.TotalIdleMinutes},
		{"last_run_interval_seconds", s.LastRunIntervalSeconds},
		{"current_idle_duration_seconds", s.CurrentIdleDurationSeconds},
	}
	for _, f := range floats {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return &InvalidTelemetryError{Field: f.name, Value: f.value, Reason: "must be finite"}
		}
		if f.value < 0 {
			return &InvalidTelemetryError{Field: f.name, Value: f.value, Reason: "must be non-negative"}
		}
	}

	ints := []struct {
		name  string
		value int
	}{
		{"total_keystrokes", s.TotalKeystrokes},
		{"total_run_attempts", s.TotalRunAttempts},
		{"focus_violation_count", s.FocusViolationCount},
		{"net_code_change_chars", s.NetCodeChangeChars},
		{"last_edit_size_chars", s.LastEditSizeChars},
	}
	for _, f := range ints {
		if f.value < 0 {
			return &InvalidTelemetryError{Field: f.name, Value: float64(f.value), Reason: "must be non-negative"}
		}
	}

	return nil
}

// #endregion validate
