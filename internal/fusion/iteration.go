package fusion

import (
	"github.com/danielpatrickdp/behavior-fusion/go-engine/internal/telemetry"
)

// #region classify-iteration

// ClassifyIteration judges whether recent run attempts were rapid-fire
// guesses, micro-iterations, verification runs, or deliberate debugging.
// A zero run interval means no prior run this session, which never counts
// as rapid-fire.
func ClassifyIteration(snap telemetry.Snapshot, config IterationConfig) IterationResult {
	raw := 0.0
	if snap.SessionDurationMinutes > 0 {
		raw = float64(snap.TotalRunAttempts) / snap.SessionDurationMinutes
	}

	hasPriorRun := snap.LastRunIntervalSeconds > 0

	if hasPriorRun && snap.LastRunIntervalSeconds < config.RapidIntervalSeconds {
		if snap.IsSemanticChange {
			// Quick re-run after a real change: tight feedback loop.
			return IterationResult{State: IterationMicroIteration, EffectiveAttemptDensity: raw}
		}
		// Re-running without changing anything meaningful: guessing.
		// Discount the density so mashing Run cannot buy engagement.
		return IterationResult{
			State:                   IterationRapidGuessing,
			EffectiveAttemptDensity: raw * config.RapidGuessDensityFactor,
		}
	}

	if snap.IsSemanticChange {
		return IterationResult{State: IterationDeliberateDebugging, EffectiveAttemptDensity: raw}
	}
	return IterationResult{State: IterationVerificationRun, EffectiveAttemptDensity: raw}
}

// #endregion classify-iteration
