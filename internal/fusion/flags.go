package fusion

import (
	"encoding/json"
	"fmt"

	"github.com/danielpatrickdp/behavior-fusion/go-engine/internal/telemetry"
)

// #region flag-kind

// FlagKind discriminates behavioral flag evidence.
type FlagKind string

const (
	FlagSuspectedPaste FlagKind = "suspected_paste"
	FlagSpamming       FlagKind = "spamming"
	FlagRapidGuessing  FlagKind = "rapid_guessing"
	FlagDisengagement  FlagKind = "disengagement"
)

// #endregion flag-kind

// #region evidence

// Evidence is the typed payload behind a behavioral flag. The implementations
// form a closed set, one per FlagKind, so consumers can switch exhaustively
// instead of digging through an untyped blob.
type Evidence interface {
	Kind() FlagKind
}

// PasteEvidence records why an edit was flagged as a suspected external paste.
type PasteEvidence struct {
	EditSizeChars       int     `json:"edit_size_chars"`
	KeystrokeRatio      float64 `json:"keystroke_ratio"`
	FocusViolationCount int     `json:"focus_violation_count"`
}

func (PasteEvidence) Kind() FlagKind { return FlagSuspectedPaste }

// SpamEvidence records why keystroke volume was flagged as system gaming.
type SpamEvidence struct {
	TotalKeystrokes int     `json:"total_keystrokes"`
	EfficiencyRatio float64 `json:"efficiency_ratio"`
}

func (SpamEvidence) Kind() FlagKind { return FlagSpamming }

// RapidGuessEvidence records a rapid-fire re-run without semantic change.
type RapidGuessEvidence struct {
	RunIntervalSeconds float64 `json:"run_interval_seconds"`
	DensityFactor      float64 `json:"density_factor"`
}

func (RapidGuessEvidence) Kind() FlagKind { return FlagRapidGuessing }

// DisengagementEvidence records a sustained absence.
type DisengagementEvidence struct {
	IdleSeconds   float64 `json:"idle_seconds"`
	WindowFocused bool    `json:"window_focused"`
}

func (DisengagementEvidence) Kind() FlagKind { return FlagDisengagement }

// #endregion evidence

// #region flag

// Flag pairs a kind with its evidence for instructor-facing audit records.
type Flag struct {
	Kind     FlagKind
	Evidence Evidence
}

// flagJSON is the wire/persistence shape with a kind discriminator.
type flagJSON struct {
	Kind     FlagKind        `json:"kind"`
	Evidence json.RawMessage `json:"evidence"`
}

// MarshalJSON emits {"kind": ..., "evidence": {...}}.
func (f Flag) MarshalJSON() ([]byte, error) {
	ev, err := json.Marshal(f.Evidence)
	if err != nil {
		return nil, fmt.Errorf("marshal evidence: %w", err)
	}
	return json.Marshal(flagJSON{Kind: f.Kind, Evidence: ev})
}

// UnmarshalJSON decodes the evidence payload according to the kind tag.
func (f *Flag) UnmarshalJSON(data []byte) error {
	var raw flagJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("unmarshal flag: %w", err)
	}

	var ev Evidence
	switch raw.Kind {
	case FlagSuspectedPaste:
		var e PasteEvidence
		if err := json.Unmarshal(raw.Evidence, &e); err != nil {
			return fmt.Errorf("unmarshal paste evidence: %w", err)
		}
		ev = e
	case FlagSpamming:
		var e SpamEvidence
		if err := json.Unmarshal(raw.Evidence, &e); err != nil {
			return fmt.Errorf("unmarshal spam evidence: %w", err)
		}
		ev = e
	case FlagRapidGuessing:
		var e RapidGuessEvidence
		if err := json.Unmarshal(raw.Evidence, &e); err != nil {
			return fmt.Errorf("unmarshal rapid-guess evidence: %w", err)
		}
		ev = e
	case FlagDisengagement:
		var e DisengagementEvidence
		if err := json.Unmarshal(raw.Evidence, &e); err != nil {
			return fmt.Errorf("unmarshal disengagement evidence: %w", err)
		}
		ev = e
	default:
		return fmt.Errorf("unknown flag kind %q", raw.Kind)
	}

	f.Kind = raw.Kind
	f.Evidence = ev
	return nil
}

// #endregion flag

// #region collect-flags

// CollectFlags derives the audit flags implied by the classifier states,
// capturing the snapshot values that triggered each detection.
func CollectFlags(
	snap telemetry.Snapshot,
	prov ProvenanceResult,
	cog CognitiveResult,
	iter IterationResult,
	config IterationConfig,
) []Flag {
	var flags []Flag

	switch prov.State {
	case ProvenanceSuspectedPaste:
		flags = append(flags, Flag{
			Kind: FlagSuspectedPaste,
			Evidence: PasteEvidence{
				EditSizeChars:       snap.LastEditSizeChars,
				KeystrokeRatio:      keystrokeRatio(snap),
				FocusViolationCount: snap.FocusViolationCount,
			},
		})
	case ProvenanceSpamming:
		flags = append(flags, Flag{
			Kind: FlagSpamming,
			Evidence: SpamEvidence{
				TotalKeystrokes: snap.TotalKeystrokes,
				EfficiencyRatio: efficiencyRatio(snap),
			},
		})
	}

	if iter.State == IterationRapidGuessing {
		flags = append(flags, Flag{
			Kind: FlagRapidGuessing,
			Evidence: RapidGuessEvidence{
				RunIntervalSeconds: snap.LastRunIntervalSeconds,
				DensityFactor:      config.RapidGuessDensityFactor,
			},
		})
	}

	if cog.State == CognitiveDisengagement {
		flags = append(flags, Flag{
			Kind: FlagDisengagement,
			Evidence: DisengagementEvidence{
				IdleSeconds:   snap.CurrentIdleDurationSeconds,
				WindowFocused: snap.IsWindowFocused,
			},
		})
	}

	return flags
}

// #endregion collect-flags
