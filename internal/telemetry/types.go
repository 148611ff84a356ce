package telemetry

// #region snapshot

// Snapshot is one immutable bundle of cumulative and instantaneous telemetry
// for a single evaluation instant. The client instrumentation supplies every
// field fresh on each call; the engine holds no state between evaluations.
// Missing numeric fields decode as 0, missing booleans as false.
type Snapshot struct {
	// Cumulative session counters.
	SessionDurationMinutes float64 `json:"session_duration_minutes"`
	TotalKeystrokes        int     `json:"total_keystrokes"`
	TotalRunAttempts       int     `json:"total_run_attempts"`
	TotalIdleMinutes       float64 `json:"total_idle_minutes"`
	FocusViolationCount    int     `json:"focus_violation_count"`
	NetCodeChangeChars     int     `json:"net_code_change_chars"`

	// Most recent edit.
	LastEditSizeChars int  `json:"last_edit_size_chars"`
	IsSemanticChange  bool `json:"is_semantic_change"`

	// Run cadence. Zero means no prior run this session.
	LastRunIntervalSeconds float64 `json:"last_run_interval_seconds"`
	LastRunWasError        bool    `json:"last_run_was_error"`

	// Instantaneous state at the evaluation instant.
	CurrentIdleDurationSeconds float64 `json:"current_idle_duration_seconds"`
	IsWindowFocused            bool    `json:"is_window_focused"`
}

// #endregion snapshot
