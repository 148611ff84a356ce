// Package policy maps behavioral states to tutoring interventions. It is the
// bridge the chat orchestration layer consumes: given the cognitive and
// iteration states from an evaluation, it decides whether the tutor should
// proactively step in and with what tone.
package policy

import (
	"github.com/danielpatrickdp/behavior-fusion/go-engine/internal/fusion"
)

// #region urgency

// Urgency ranks how strongly the tutor should intervene.
type Urgency int

const (
	UrgencyNone Urgency = iota
	UrgencyLow
	UrgencyMedium
	UrgencyHigh
)

// #endregion urgency

// #region tone

// Tone selects the register of a proactive intervention.
type Tone string

const (
	ToneObserve             Tone = "observe"
	ToneGentleNudge         Tone = "gentle_nudge"
	ToneEncouragingConcrete Tone = "encouraging_and_concrete"
)

// #endregion tone

// #region plan

// Plan is the intervention decision handed to the chat orchestration layer.
type Plan struct {
	Urgency    Urgency
	Intervene  bool
	Tone       Tone
	PromptHint string // augmentation appended to the tutor's system prompt
}

// #endregion plan

// #region decide

// cognitiveUrgency ranks the cognitive states by how badly the student
// needs a prompt.
var cognitiveUrgency = map[fusion.CognitiveState]Urgency{
	fusion.CognitiveActive:          UrgencyNone,
	fusion.CognitiveReflectivePause: UrgencyLow,
	fusion.CognitivePassiveIdle:     UrgencyMedium,
	fusion.CognitiveDisengagement:   UrgencyHigh,
}

// Decide maps behavioral states to an intervention plan. Problematic
// iteration patterns raise the urgency floor even when the student is not
// idle: run-mashing deserves a nudge before it hardens into a habit.
func Decide(cognitive fusion.CognitiveState, iteration fusion.IterationState) Plan {
	urgency := cognitiveUrgency[cognitive]

	if iteration == fusion.IterationRapidGuessing || iteration == fusion.IterationMicroIteration {
		if urgency < UrgencyMedium {
			urgency = UrgencyMedium
		}
	}

	plan := Plan{
		Urgency:   urgency,
		Intervene: urgency >= UrgencyMedium,
		Tone:      ToneObserve,
	}

	switch cognitive {
	case fusion.CognitiveDisengagement:
		plan.Tone = ToneEncouragingConcrete
		plan.PromptHint = "The student has gone quiet for a while. Re-engage with one small, concrete next step."
	case fusion.CognitivePassiveIdle:
		plan.Tone = ToneGentleNudge
		plan.PromptHint = "The student appears stuck without an error to study. Offer a guiding question, not a solution."
	case fusion.CognitiveReflectivePause:
		plan.PromptHint = "The student is reading an error message. Do not interrupt unless asked."
	}

	if plan.PromptHint == "" && plan.Intervene {
		// Intervention triggered by iteration pattern alone.
		plan.Tone = ToneGentleNudge
		plan.PromptHint = "The student is re-running code in quick succession. Encourage reasoning about the failure before the next run."
	}

	return plan
}

// #endregion decide

// #region provenance-concern

// ProvenanceConcern returns a teaching adjustment for integrity-relevant
// provenance states, or the empty string when none applies.
func ProvenanceConcern(state fusion.ProvenanceState) string {
	switch state {
	case fusion.ProvenanceSuspectedPaste:
		return "Ask the student to explain the code they just added in their own words."
	case fusion.ProvenanceSpamming:
		return "Encourage thoughtful edits over rapid random changes."
	case fusion.ProvenanceAmbiguousEdit:
		return "Help the student walk through their recent large change."
	default:
		return ""
	}
}

// #endregion provenance-concern
