// Package replay loads recorded session fixtures and re-runs them through the
// engine, comparing each evaluation against its recorded expectations. This is
// the primary regression net for calibration changes: rescore a known session,
// see exactly which snapshots drift.
package replay

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/danielpatrickdp/behavior-fusion/go-engine/internal/telemetry"
)

// #region fixture-types

// Fixture is the top-level JSON structure for a replay fixture: an ordered
// sequence of telemetry snapshots from one session with expected outcomes.
type Fixture struct {
	Description string              `json:"description"`
	SessionID   string              `json:"session_id"`
	Evaluations []FixtureEvaluation `json:"evaluations"`
}

// FixtureEvaluation is one recorded snapshot plus the outcome it produced.
type FixtureEvaluation struct {
	Label    string             `json:"label"`
	Snapshot telemetry.Snapshot `json:"snapshot"`
	Expected ExpectedOutcome    `json:"expected"`
}

// ExpectedOutcome captures the classifier states and score label an
// evaluation is expected to produce. Empty fields are not checked.
type ExpectedOutcome struct {
	ProvenanceState   string `json:"provenance_state,omitempty"`
	CognitiveState    string `json:"cognitive_state,omitempty"`
	IterationState    string `json:"iteration_state,omitempty"`
	CESClassification string `json:"ces_classification,omitempty"`
}

// #endregion fixture-types

// #region fixture-io

// LoadFixture reads and parses a fixture file. Paths ending in .zst are
// transparently decompressed.
func LoadFixture(path string) (*Fixture, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open fixture %s: %w", path, err)
	}
	defer file.Close()

	var r io.Reader = file
	if strings.HasSuffix(path, ".zst") {
		dec, err := zstd.NewReader(file)
		if err != nil {
			return nil, fmt.Errorf("zstd reader %s: %w", path, err)
		}
		defer dec.Close()
		r = dec
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return &f, nil
}

// WriteFixture writes a fixture as indented JSON. Paths ending in .zst are
// zstd-compressed, which matters for long sessions exported in bulk.
func WriteFixture(path string, f *Fixture) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal fixture: %w", err)
	}
	data = append(data, '\n')

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create fixture %s: %w", path, err)
	}
	defer file.Close()

	if strings.HasSuffix(path, ".zst") {
		enc, err := zstd.NewWriter(file)
		if err != nil {
			return fmt.Errorf("zstd writer %s: %w", path, err)
		}
		if _, err := enc.Write(data); err != nil {
			enc.Close()
			return fmt.Errorf("write fixture %s: %w", path, err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("close zstd %s: %w", path, err)
		}
		return file.Close()
	}

	if _, err := file.Write(data); err != nil {
		return fmt.Errorf("write fixture %s: %w", path, err)
	}
	return file.Close()
}

// #endregion fixture-io
