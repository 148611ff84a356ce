package fusion

import (
	"math"
	"testing"

	"github.com/danielpatrickdp/behavior-fusion/go-engine/internal/telemetry"
)

func TestClassifyProvenance(t *testing.T) {
	config := DefaultProvenanceConfig()

	tests := []struct {
		name        string
		snap        telemetry.Snapshot
		wantState   ProvenanceState
		wantPenalty float64
	}{
		{
			// 250 keystrokes for 5 net chars: efficiency 0.02 < 0.05.
			"spamming",
			telemetry.Snapshot{
				SessionDurationMinutes: 10,
				TotalKeystrokes:        250,
				NetCodeChangeChars:     5,
			},
			ProvenanceSpamming, 0,
		},
		{
			// 5 keystrokes for a 60-char insertion with a tab switch: ratio 0.083 < 0.2.
			"suspected-paste",
			telemetry.Snapshot{
				SessionDurationMinutes: 5,
				TotalKeystrokes:        5,
				NetCodeChangeChars:     60,
				LastEditSizeChars:      60,
				FocusViolationCount:    1,
			},
			ProvenanceSuspectedPaste, 0.5,
		},
		{
			// Large edit fully backed by keystrokes: typed it out.
			"authentic-large-edit",
			telemetry.Snapshot{
				SessionDurationMinutes: 10,
				TotalKeystrokes:        120,
				NetCodeChangeChars:     100,
				LastEditSizeChars:      40,
			},
			ProvenanceAuthenticRefactoring, 0,
		},
		{
			// Large edit, moderate keystroke activity, no focus violation.
			"ambiguous-edit",
			telemetry.Snapshot{
				SessionDurationMinutes: 10,
				TotalKeystrokes:        20,
				NetCodeChangeChars:     60,
				LastEditSizeChars:      45,
			},
			ProvenanceAmbiguousEdit, 0,
		},
		{
			// Very large edit with sparse keystrokes but stable focus stays
			// ambiguous rather than paste.
			"ambiguous-without-focus-violation",
			telemetry.Snapshot{
				SessionDurationMinutes: 10,
				TotalKeystrokes:        5,
				NetCodeChangeChars:     80,
				LastEditSizeChars:      80,
			},
			ProvenanceAmbiguousEdit, 0,
		},
		{
			// Small incremental edit: default authentic.
			"small-edit-default",
			telemetry.Snapshot{
				SessionDurationMinutes: 10,
				TotalKeystrokes:        80,
				NetCodeChangeChars:     70,
				LastEditSizeChars:      8,
			},
			ProvenanceAuthenticRefactoring, 0,
		},
		{
			// Spam precedence beats paste: both patterns present, spam wins.
			"spam-precedence",
			telemetry.Snapshot{
				SessionDurationMinutes: 10,
				TotalKeystrokes:        300,
				NetCodeChangeChars:     2,
				LastEditSizeChars:      2000,
				FocusViolationCount:    3,
			},
			ProvenanceSpamming, 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyProvenance(tt.snap, config)
			if got.State != tt.wantState {
				t.Errorf("state: got %q, want %q", got.State, tt.wantState)
			}
			if got.IntegrityPenalty != tt.wantPenalty {
				t.Errorf("penalty: got %v, want %v", got.IntegrityPenalty, tt.wantPenalty)
			}
		})
	}
}

func TestClassifyProvenanceEffectiveKPM(t *testing.T) {
	config := DefaultProvenanceConfig()

	// Spamming nullifies KPM.
	spam := ClassifyProvenance(telemetry.Snapshot{
		SessionDurationMinutes: 10,
		TotalKeystrokes:        250,
		NetCodeChangeChars:     5,
	}, config)
	if spam.EffectiveKPM != 0 {
		t.Errorf("spam KPM: got %v, want 0", spam.EffectiveKPM)
	}

	// Suspected paste keeps raw KPM; the penalty lands at aggregation.
	paste := ClassifyProvenance(telemetry.Snapshot{
		SessionDurationMinutes: 5,
		TotalKeystrokes:        5,
		LastEditSizeChars:      60,
		FocusViolationCount:    1,
	}, config)
	if math.Abs(paste.EffectiveKPM-1.0) > 1e-9 {
		t.Errorf("paste KPM: got %v, want 1.0", paste.EffectiveKPM)
	}

	// Ordinary session: raw keystrokes per minute.
	normal := ClassifyProvenance(telemetry.Snapshot{
		SessionDurationMinutes: 10,
		TotalKeystrokes:        120,
		NetCodeChangeChars:     90,
	}, config)
	if math.Abs(normal.EffectiveKPM-12.0) > 1e-9 {
		t.Errorf("normal KPM: got %v, want 12.0", normal.EffectiveKPM)
	}
}

func TestClassifyProvenanceZeroDuration(t *testing.T) {
	got := ClassifyProvenance(telemetry.Snapshot{
		TotalKeystrokes:    50,
		NetCodeChangeChars: 40,
	}, DefaultProvenanceConfig())

	if got.EffectiveKPM != 0 {
		t.Errorf("KPM at zero duration: got %v, want 0", got.EffectiveKPM)
	}
	if got.State != ProvenanceAuthenticRefactoring {
		t.Errorf("state: got %q, want default authentic", got.State)
	}
}
