package fusion

// #region provenance-state

// ProvenanceState classifies whether the most recent code change looks
// authentically typed, ambiguous, externally pasted, or spam-gamed.
type ProvenanceState string

const (
	ProvenanceAuthenticRefactoring ProvenanceState = "AUTHENTIC_REFACTORING"
	ProvenanceAmbiguousEdit        ProvenanceState = "AMBIGUOUS_EDIT"
	ProvenanceSuspectedPaste       ProvenanceState = "SUSPECTED_PASTE"
	ProvenanceSpamming             ProvenanceState = "SPAMMING"
)

// #endregion provenance-state

// #region cognitive-state

// CognitiveState classifies what the current idle interval represents.
type CognitiveState string

const (
	CognitiveActive          CognitiveState = "ACTIVE"
	CognitiveReflectivePause CognitiveState = "REFLECTIVE_PAUSE"
	CognitivePassiveIdle     CognitiveState = "PASSIVE_IDLE"
	CognitiveDisengagement   CognitiveState = "DISENGAGEMENT"
)

// #endregion cognitive-state

// #region iteration-state

// IterationState classifies the quality of the most recent run attempt.
type IterationState string

const (
	IterationRapidGuessing       IterationState = "RAPID_GUESSING"
	IterationMicroIteration      IterationState = "MICRO_ITERATION"
	IterationVerificationRun     IterationState = "VERIFICATION_RUN"
	IterationDeliberateDebugging IterationState = "DELIBERATE_DEBUGGING"
)

// #endregion iteration-state

// #region provenance-config

// ProvenanceConfig holds calibrated thresholds for the provenance classifier.
// Thresholds are tuned for novice short-form solutions (250-500 chars), where
// single edits above ~30 chars are statistically unusual for organic typing.
type ProvenanceConfig struct {
	SpamKeystrokeMinimum    int     // spam check requires more keystrokes than this
	SpamEfficiencyThreshold float64 // net change per keystroke below this is key-mashing
	PasteEditSizeMin        int     // paste check requires an edit larger than this
	PasteKeystrokeRatioMax  float64 // keystroke-to-insertion ratio below this suggests paste
	LargeEditSizeMin        int     // edits larger than this enter large-edit analysis
	TypedKeystrokeRatioMin  float64 // ratio above this means the edit was typed out
	PastePenalty            float64 // integrity penalty applied for suspected paste
}

// DefaultProvenanceConfig returns the calibrated thresholds.
func DefaultProvenanceConfig() ProvenanceConfig {
	return ProvenanceConfig{
		SpamKeystrokeMinimum:    200,
		SpamEfficiencyThreshold: 0.05,
		PasteEditSizeMin:        50,
		PasteKeystrokeRatioMax:  0.2,
		LargeEditSizeMin:        30,
		TypedKeystrokeRatioMin:  0.8,
		PastePenalty:            0.5,
	}
}

// #endregion provenance-config

// #region cognitive-config

// CognitiveConfig holds calibrated idle thresholds.
// Novices need 30-120s post-error to parse messages and plan corrections;
// idle beyond 120s reads as abandonment whatever the focus state.
type CognitiveConfig struct {
	ActiveIdleMaxSeconds     float64 // idle below this is normal coding flow
	DisengagementIdleSeconds float64 // idle beyond this is disengagement
}

// DefaultCognitiveConfig returns the calibrated idle thresholds.
func DefaultCognitiveConfig() CognitiveConfig {
	return CognitiveConfig{
		ActiveIdleMaxSeconds:     30,
		DisengagementIdleSeconds: 120,
	}
}

// #endregion cognitive-config

// #region iteration-config

// IterationConfig holds calibrated run-cadence thresholds.
type IterationConfig struct {
	RapidIntervalSeconds    float64 // a re-run inside this window is rapid-fire
	RapidGuessDensityFactor float64 // attempt-density multiplier when rapid-guessing
}

// DefaultIterationConfig returns the calibrated run-cadence thresholds.
func DefaultIterationConfig() IterationConfig {
	return IterationConfig{
		RapidIntervalSeconds:    10,
		RapidGuessDensityFactor: 0.8,
	}
}

// #endregion iteration-config

// #region results

// ProvenanceResult is the provenance classifier output.
type ProvenanceResult struct {
	State            ProvenanceState
	IntegrityPenalty float64 // in [0, 1]; nonzero only for SUSPECTED_PASTE
	EffectiveKPM     float64 // keystrokes per minute with spam zeroed out
}

// CognitiveResult is the cognitive state classifier output.
type CognitiveResult struct {
	State              CognitiveState
	EffectiveIdleRatio float64 // in [0, 1]; live reflective pause excluded
}

// IterationResult is the iteration quality classifier output.
type IterationResult struct {
	State                   IterationState
	EffectiveAttemptDensity float64 // runs per minute, discounted when rapid-guessing
}

// #endregion results
