// Package analytics persists evaluations and behavioral flags to SQLite.
// The score log backs dashboards and calibration work; the flag log is the
// audit trail for every integrity or engagement alarm the engine raised.
package analytics

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/danielpatrickdp/behavior-fusion/go-engine/internal/engine"
	"github.com/danielpatrickdp/behavior-fusion/go-engine/internal/fusion"
	"github.com/danielpatrickdp/behavior-fusion/go-engine/internal/telemetry"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS ces_scores (
	evaluation_id             TEXT PRIMARY KEY,
	session_id                TEXT NOT NULL,
	computed_at               TEXT NOT NULL,
	kpm_normalized            REAL NOT NULL,
	ad_normalized             REAL NOT NULL,
	ir_normalized             REAL NOT NULL,
	fvc_normalized            REAL NOT NULL,
	ces_score                 REAL NOT NULL,
	ces_classification        TEXT NOT NULL,
	provenance_state          TEXT NOT NULL,
	integrity_penalty         REAL NOT NULL,
	effective_kpm             REAL NOT NULL,
	cognitive_state           TEXT NOT NULL,
	effective_idle_ratio      REAL NOT NULL,
	iteration_state           TEXT NOT NULL,
	effective_attempt_density REAL NOT NULL,
	snapshot_json             TEXT
);

CREATE INDEX IF NOT EXISTS idx_ces_scores_session
	ON ces_scores (session_id, computed_at);

CREATE TABLE IF NOT EXISTS behavioral_flags (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	evaluation_id TEXT NOT NULL,
	session_id    TEXT NOT NULL,
	kind          TEXT NOT NULL,
	flag_json     TEXT NOT NULL,
	created_at    TEXT NOT NULL,
	FOREIGN KEY (evaluation_id) REFERENCES ces_scores(evaluation_id)
);

CREATE INDEX IF NOT EXISTS idx_behavioral_flags_session
	ON behavioral_flags (session_id, created_at);
`
// #endregion schema

// #region store-struct
// Store manages the evaluation log in SQLite.
type Store struct {
	db *sql.DB
}
// #endregion store-struct

// #region constructor
// NewStore opens a SQLite database and runs migrations.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("pragma fk: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}
// #endregion constructor

// #region close
// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
// #endregion close

// #region db-accessor
// DB returns the underlying *sql.DB for use by other packages.
func (s *Store) DB() *sql.DB {
	return s.db
}
// #endregion db-accessor

// #region record-evaluation
// RecordEvaluation persists one evaluation and its flags atomically, minting
// the evaluation ID.
func (s *Store) RecordEvaluation(sessionID string, snap telemetry.Snapshot, result engine.EngagementResult) (ScoreRecord, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	snapJSON, err := json.Marshal(snap)
	if err != nil {
		return ScoreRecord{}, fmt.Errorf("marshal snapshot: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return ScoreRecord{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO ces_scores (
			evaluation_id, session_id, computed_at,
			kpm_normalized, ad_normalized, ir_normalized, fvc_normalized,
			ces_score, ces_classification,
			provenance_state, integrity_penalty, effective_kpm,
			cognitive_state, effective_idle_ratio,
			iteration_state, effective_attempt_density,
			snapshot_json
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, sessionID, now.Format(time.RFC3339Nano),
		result.KPMNormalized, result.ADNormalized, result.IRNormalized, result.FVCNormalized,
		result.CESScore, result.CESClassification,
		string(result.ProvenanceState), result.IntegrityPenalty, result.EffectiveKPM,
		string(result.CognitiveState), result.EffectiveIdleRatio,
		string(result.IterationState), result.EffectiveAttemptDensity,
		string(snapJSON),
	)
	if err != nil {
		return ScoreRecord{}, fmt.Errorf("insert score: %w", err)
	}

	for _, flag := range result.Flags {
		flagJSON, err := json.Marshal(flag)
		if err != nil {
			return ScoreRecord{}, fmt.Errorf("marshal flag %s: %w", flag.Kind, err)
		}
		_, err = tx.Exec(
			`INSERT INTO behavioral_flags (evaluation_id, session_id, kind, flag_json, created_at)
			 VALUES (?, ?, ?, ?, ?)`,
			id, sessionID, string(flag.Kind), string(flagJSON), now.Format(time.RFC3339Nano),
		)
		if err != nil {
			return ScoreRecord{}, fmt.Errorf("insert flag: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return ScoreRecord{}, fmt.Errorf("commit: %w", err)
	}

	return ScoreRecord{
		EvaluationID: id,
		SessionID:    sessionID,
		ComputedAt:   now,
		Result:       result,
		SnapshotJSON: string(snapJSON),
	}, nil
}
// #endregion record-evaluation

// #region latest-score
// LatestScore returns the most recent evaluation for a session.
func (s *Store) LatestScore(sessionID string) (ScoreRecord, error) {
	rows, err := s.db.Query(scoreSelect+
		` WHERE session_id = ? ORDER BY computed_at DESC LIMIT 1`, sessionID)
	if err != nil {
		return ScoreRecord{}, fmt.Errorf("latest score: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return ScoreRecord{}, fmt.Errorf("latest score: %w", err)
		}
		return ScoreRecord{}, fmt.Errorf("no evaluations for session %s", sessionID)
	}
	return scanScore(rows)
}
// #endregion latest-score

// #region list-scores
const scoreSelect = `SELECT evaluation_id, session_id, computed_at,
	kpm_normalized, ad_normalized, ir_normalized, fvc_normalized,
	ces_score, ces_classification,
	provenance_state, integrity_penalty, effective_kpm,
	cognitive_state, effective_idle_ratio,
	iteration_state, effective_attempt_density,
	snapshot_json
 FROM ces_scores`

// ListScores returns the most recent evaluations for a session, newest first.
func (s *Store) ListScores(sessionID string, limit int) ([]ScoreRecord, error) {
	rows, err := s.db.Query(scoreSelect+
		` WHERE session_id = ? ORDER BY computed_at DESC LIMIT ?`, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("list scores: %w", err)
	}
	defer rows.Close()

	var records []ScoreRecord
	for rows.Next() {
		rec, err := scanScore(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func scanScore(rows *sql.Rows) (ScoreRecord, error) {
	var rec ScoreRecord
	var computedStr string
	var provenance, cognitive, iteration string
	var snapJSON sql.NullString

	err := rows.Scan(
		&rec.EvaluationID, &rec.SessionID, &computedStr,
		&rec.Result.KPMNormalized, &rec.Result.ADNormalized,
		&rec.Result.IRNormalized, &rec.Result.FVCNormalized,
		&rec.Result.CESScore, &rec.Result.CESClassification,
		&provenance, &rec.Result.IntegrityPenalty, &rec.Result.EffectiveKPM,
		&cognitive, &rec.Result.EffectiveIdleRatio,
		&iteration, &rec.Result.EffectiveAttemptDensity,
		&snapJSON,
	)
	if err != nil {
		return ScoreRecord{}, fmt.Errorf("scan score: %w", err)
	}

	rec.ComputedAt, _ = time.Parse(time.RFC3339Nano, computedStr)
	rec.Result.ProvenanceState = fusion.ProvenanceState(provenance)
	rec.Result.CognitiveState = fusion.CognitiveState(cognitive)
	rec.Result.IterationState = fusion.IterationState(iteration)
	if snapJSON.Valid {
		rec.SnapshotJSON = snapJSON.String
	}
	return rec, nil
}
// #endregion list-scores

// #region list-flags
// ListFlags returns the most recent flags for a session, newest first. An
// empty sessionID lists flags across all sessions.
func (s *Store) ListFlags(sessionID string, limit int) ([]FlagRecord, error) {
	query := `SELECT id, evaluation_id, session_id, flag_json, created_at
	 FROM behavioral_flags`
	args := []interface{}{}
	if sessionID != "" {
		query += ` WHERE session_id = ?`
		args = append(args, sessionID)
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list flags: %w", err)
	}
	defer rows.Close()

	var records []FlagRecord
	for rows.Next() {
		var rec FlagRecord
		var flagJSON string
		var createdStr string
		if err := rows.Scan(&rec.ID, &rec.EvaluationID, &rec.SessionID, &flagJSON, &createdStr); err != nil {
			return nil, fmt.Errorf("scan flag: %w", err)
		}
		if err := json.Unmarshal([]byte(flagJSON), &rec.Flag); err != nil {
			return nil, fmt.Errorf("unmarshal flag %d: %w", rec.ID, err)
		}
		rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		records = append(records, rec)
	}
	return records, rows.Err()
}
// #endregion list-flags

// #region list-sessions
// ListSessions summarizes every stored session, most recently active first.
func (s *Store) ListSessions() ([]SessionSummary, error) {
	rows, err := s.db.Query(`
		SELECT s.session_id,
		       COUNT(*),
		       (SELECT COUNT(*) FROM behavioral_flags f WHERE f.session_id = s.session_id),
		       MIN(s.computed_at),
		       MAX(s.computed_at)
		FROM ces_scores s
		GROUP BY s.session_id
		ORDER BY MAX(s.computed_at) DESC`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var summaries []SessionSummary
	for rows.Next() {
		var sum SessionSummary
		var firstStr, lastStr string
		if err := rows.Scan(&sum.SessionID, &sum.Evaluations, &sum.Flags, &firstStr, &lastStr); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sum.FirstSeen, _ = time.Parse(time.RFC3339Nano, firstStr)
		sum.LastSeen, _ = time.Parse(time.RFC3339Nano, lastStr)
		summaries = append(summaries, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range summaries {
		latest, err := s.LatestScore(summaries[i].SessionID)
		if err != nil {
			return nil, err
		}
		summaries[i].LastScore = latest.Result.CESScore
		summaries[i].LastLabel = latest.Result.CESClassification
	}
	return summaries, nil
}
// #endregion list-sessions
