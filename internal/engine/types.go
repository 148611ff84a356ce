package engine

import (
	"github.com/danielpatrickdp/behavior-fusion/go-engine/internal/fusion"
	"github.com/danielpatrickdp/behavior-fusion/go-engine/internal/scoring"
)

// #region config

// Config bundles every calibrated threshold for one engine instance.
// Injected at construction so deployments can recalibrate without touching
// classifier logic.
type Config struct {
	Provenance fusion.ProvenanceConfig
	Cognitive  fusion.CognitiveConfig
	Iteration  fusion.IterationConfig
	Scoring    scoring.CalculatorConfig
}

// DefaultConfig returns the calibrated defaults for every stage.
func DefaultConfig() Config {
	return Config{
		Provenance: fusion.DefaultProvenanceConfig(),
		Cognitive:  fusion.DefaultCognitiveConfig(),
		Iteration:  fusion.DefaultIterationConfig(),
		Scoring:    scoring.DefaultCalculatorConfig(),
	}
}

// #endregion config

// #region engagement-result

// EngagementResult is the sole externally consumed artifact of an evaluation:
// the normalized metrics, the bounded score and its label, and every
// classifier output passed through for transparency and audit.
type EngagementResult struct {
	KPMNormalized float64 `json:"kpm_normalized"`
	ADNormalized  float64 `json:"ad_normalized"`
	IRNormalized  float64 `json:"ir_normalized"`
	FVCNormalized float64 `json:"fvc_normalized"`

	CESScore          float64 `json:"ces_score"`
	CESClassification string  `json:"ces_classification"`

	ProvenanceState  fusion.ProvenanceState `json:"provenance_state"`
	IntegrityPenalty float64                `json:"integrity_penalty"`
	EffectiveKPM     float64                `json:"effective_kpm"`

	CognitiveState     fusion.CognitiveState `json:"cognitive_state"`
	EffectiveIdleRatio float64               `json:"effective_idle_ratio"`

	IterationState          fusion.IterationState `json:"iteration_state"`
	EffectiveAttemptDensity float64               `json:"effective_attempt_density"`

	Flags []fusion.Flag `json:"flags,omitempty"`
}

// #endregion engagement-result
