package analytics

import (
	"time"

	"github.com/danielpatrickdp/behavior-fusion/go-engine/internal/engine"
	"github.com/danielpatrickdp/behavior-fusion/go-engine/internal/fusion"
)

// #region records

// ScoreRecord is one persisted evaluation. SnapshotJSON retains the raw
// telemetry so stored sessions can be re-scored against a newer calibration.
type ScoreRecord struct {
	EvaluationID string                  `json:"evaluation_id"`
	SessionID    string                  `json:"session_id"`
	ComputedAt   time.Time               `json:"computed_at"`
	Result       engine.EngagementResult `json:"result"`
	SnapshotJSON string                  `json:"snapshot_json,omitempty"`
}

// FlagRecord is one persisted behavioral flag, linked to the evaluation
// that raised it.
type FlagRecord struct {
	ID           int64       `json:"id"`
	EvaluationID string      `json:"evaluation_id"`
	SessionID    string      `json:"session_id"`
	Flag         fusion.Flag `json:"flag"`
	CreatedAt    time.Time   `json:"created_at"`
}

// SessionSummary aggregates the stored evaluations of one session.
type SessionSummary struct {
	SessionID   string    `json:"session_id"`
	Evaluations int       `json:"evaluations"`
	Flags       int       `json:"flags"`
	FirstSeen   time.Time `json:"first_seen"`
	LastSeen    time.Time `json:"last_seen"`
	LastScore   float64   `json:"last_score"`
	LastLabel   string    `json:"last_label"`
}

// #endregion records
