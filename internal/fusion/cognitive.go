package fusion

import (
	"github.com/danielpatrickdp/behavior-fusion/go-engine/internal/telemetry"
)

// #region classify-cognitive

// ClassifyCognitive evaluates the current idle interval to differentiate
// active work, reflective pauses, passive idling, and disengagement.
//
// Pause whitelisting applies only to the live open interval: the classifier
// receives cumulative idle time, but only the current interval's pause status
// is knowable at evaluation time, so past idle accumulation is never
// retroactively excluded.
func ClassifyCognitive(snap telemetry.Snapshot, config CognitiveConfig) CognitiveResult {
	idle := snap.CurrentIdleDurationSeconds
	state := CognitiveActive
	adjustedIdleMinutes := snap.TotalIdleMinutes

	switch {
	case idle < config.ActiveIdleMaxSeconds:
		// Normal coding flow.
		state = CognitiveActive

	case idle > config.DisengagementIdleSeconds:
		// Sustained absence reads as abandonment whatever the focus state.
		state = CognitiveDisengagement

	case snap.IsWindowFocused && snap.LastRunWasError:
		// Reading error messages, planning a fix. Exclude the open pause
		// from the idle penalty.
		state = CognitiveReflectivePause
		adjustedIdleMinutes -= idle / 60
		if adjustedIdleMinutes < 0 {
			adjustedIdleMinutes = 0
		}

	default:
		// Unproductive stalling; counts fully toward the idle ratio.
		state = CognitivePassiveIdle
	}

	ratio := 0.0
	if snap.SessionDurationMinutes > 0 {
		ratio = adjustedIdleMinutes / snap.SessionDurationMinutes
	}
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}

	return CognitiveResult{State: state, EffectiveIdleRatio: ratio}
}

// #endregion classify-cognitive
