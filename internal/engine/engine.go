// Package engine sequences the behavioral classifiers and the score
// aggregation into a single evaluation: one telemetry snapshot in, one
// engagement result out. Evaluation is pure and synchronous with no I/O and
// no shared state, so concurrent evaluations of independent sessions need no
// coordination.
package engine

import (
	"github.com/danielpatrickdp/behavior-fusion/go-engine/internal/fusion"
	"github.com/danielpatrickdp/behavior-fusion/go-engine/internal/scoring"
	"github.com/danielpatrickdp/behavior-fusion/go-engine/internal/telemetry"
)

// #region engine

// Engine evaluates telemetry snapshots against an immutable calibration.
type Engine struct {
	config Config
	calc   *scoring.Calculator
}

// New creates an engine with the given calibration.
func New(config Config) *Engine {
	return &Engine{
		config: config,
		calc:   scoring.NewCalculator(config.Scoring),
	}
}

// Config returns the calibration this engine was built with.
func (e *Engine) Config() Config {
	return e.config
}

// #endregion engine

// #region evaluate

// Evaluate scores one telemetry snapshot. Deterministic: identical snapshots
// always produce identical results. The only error is boundary validation of
// the snapshot itself (*telemetry.InvalidTelemetryError).
func (e *Engine) Evaluate(snap telemetry.Snapshot) (EngagementResult, error) {
	if err := snap.Validate(); err != nil {
		return EngagementResult{}, err
	}

	// The three classifiers are independent; each sees only the snapshot.
	prov := fusion.ClassifyProvenance(snap, e.config.Provenance)
	cog := fusion.ClassifyCognitive(snap, e.config.Cognitive)
	iter := fusion.ClassifyIteration(snap, e.config.Iteration)

	norm := e.calc.NormalizeMetrics(
		prov.EffectiveKPM,
		iter.EffectiveAttemptDensity,
		cog.EffectiveIdleRatio,
		snap.FocusViolationCount,
	)
	score := e.calc.Score(norm, prov.IntegrityPenalty)

	return EngagementResult{
		KPMNormalized: norm.KPM,
		ADNormalized:  norm.AttemptDensity,
		IRNormalized:  norm.IdleRatio,
		FVCNormalized: norm.FocusViolations,

		CESScore:          score,
		CESClassification: e.calc.Label(score),

		ProvenanceState:  prov.State,
		IntegrityPenalty: prov.IntegrityPenalty,
		EffectiveKPM:     prov.EffectiveKPM,

		CognitiveState:     cog.State,
		EffectiveIdleRatio: cog.EffectiveIdleRatio,

		IterationState:          iter.State,
		EffectiveAttemptDensity: iter.EffectiveAttemptDensity,

		Flags: fusion.CollectFlags(snap, prov, cog, iter, e.config.Iteration),
	}, nil
}

// #endregion evaluate
