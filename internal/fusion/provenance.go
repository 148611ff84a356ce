package fusion

import (
	"github.com/danielpatrickdp/behavior-fusion/go-engine/internal/telemetry"
)

// #region classify-provenance

// ClassifyProvenance analyzes patterns of code authorship from keystroke
// activity, edit magnitude, and focus violations around the latest change.
// Branches are evaluated in precedence order; first match wins.
//
// The analysis is stateless and judges current behavior only: each snapshot
// gets a fresh evaluation, so small legitimate edits after a flagged insertion
// return to AUTHENTIC_REFACTORING on the next call.
func ClassifyProvenance(snap telemetry.Snapshot, config ProvenanceConfig) ProvenanceResult {
	rawKPM := 0.0
	if snap.SessionDurationMinutes > 0 {
		rawKPM = float64(snap.TotalKeystrokes) / snap.SessionDurationMinutes
	}

	// 1. Spamming: high keystroke volume with negligible code retention.
	// Novices exhibit trial-and-error efficiency ratios around 0.20-0.40;
	// values below the threshold indicate key-mashing without intent.
	// KPM is nullified so the mashing cannot inflate the engagement score.
	if snap.TotalKeystrokes > config.SpamKeystrokeMinimum &&
		efficiencyRatio(snap) < config.SpamEfficiencyThreshold {
		return ProvenanceResult{State: ProvenanceSpamming, EffectiveKPM: 0}
	}

	ratio := keystrokeRatio(snap)

	switch {
	// 2. Suspected paste: large insertion + focus violation + sparse
	// keystrokes relative to the inserted text. The penalty is applied at
	// aggregation, not to the KPM itself.
	case snap.LastEditSizeChars > config.PasteEditSizeMin &&
		snap.FocusViolationCount > 0 &&
		ratio < config.PasteKeystrokeRatioMax:
		return ProvenanceResult{
			State:            ProvenanceSuspectedPaste,
			IntegrityPenalty: config.PastePenalty,
			EffectiveKPM:     rawKPM,
		}

	// 3. Large insertion backed by keystrokes: the student typed it out.
	case snap.LastEditSizeChars > config.LargeEditSizeMin &&
		ratio > config.TypedKeystrokeRatioMin:
		return ProvenanceResult{State: ProvenanceAuthenticRefactoring, EffectiveKPM: rawKPM}

	// 4. Large insertion with indeterminate ratio: could be an internal
	// block move or fast typing. Flag as ambiguous, no penalty.
	case snap.LastEditSizeChars > config.LargeEditSizeMin:
		return ProvenanceResult{State: ProvenanceAmbiguousEdit, EffectiveKPM: rawKPM}

	// 5. Small incremental edit: legitimate until proven otherwise.
	default:
		return ProvenanceResult{State: ProvenanceAuthenticRefactoring, EffectiveKPM: rawKPM}
	}
}

// #endregion classify-provenance

// #region ratios

// efficiencyRatio is net code change per keystroke.
func efficiencyRatio(snap telemetry.Snapshot) float64 {
	keystrokes := snap.TotalKeystrokes
	if keystrokes < 1 {
		keystrokes = 1
	}
	return float64(snap.NetCodeChangeChars) / float64(keystrokes)
}

// keystrokeRatio is keystrokes per inserted character of the latest edit.
func keystrokeRatio(snap telemetry.Snapshot) float64 {
	editSize := snap.LastEditSizeChars
	if editSize < 1 {
		editSize = 1
	}
	return float64(snap.TotalKeystrokes) / float64(editSize)
}

// #endregion ratios
