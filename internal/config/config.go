// Package config loads the engine calibration from a TOML file, so every
// threshold, bound, weight, and cutoff can be recalibrated per deployment
// without a rebuild.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/danielpatrickdp/behavior-fusion/go-engine/internal/engine"
	"github.com/danielpatrickdp/behavior-fusion/go-engine/internal/fusion"
	"github.com/danielpatrickdp/behavior-fusion/go-engine/internal/scoring"
)

// #region calibration

// Calibration mirrors engine.Config with TOML tags for the on-disk file.
type Calibration struct {
	Provenance ProvenanceSection `toml:"provenance"`
	Cognitive  CognitiveSection  `toml:"cognitive"`
	Iteration  IterationSection  `toml:"iteration"`
	Bounds     BoundsSection     `toml:"bounds"`
	Weights    WeightsSection    `toml:"weights"`
	Labels     LabelsSection     `toml:"labels"`
}

type ProvenanceSection struct {
	SpamKeystrokeMinimum    int     `toml:"spam_keystroke_minimum"`
	SpamEfficiencyThreshold float64 `toml:"spam_efficiency_threshold"`
	PasteEditSizeMin        int     `toml:"paste_edit_size_min"`
	PasteKeystrokeRatioMax  float64 `toml:"paste_keystroke_ratio_max"`
	LargeEditSizeMin        int     `toml:"large_edit_size_min"`
	TypedKeystrokeRatioMin  float64 `toml:"typed_keystroke_ratio_min"`
	PastePenalty            float64 `toml:"paste_penalty"`
}

type CognitiveSection struct {
	ActiveIdleMaxSeconds     float64 `toml:"active_idle_max_seconds"`
	DisengagementIdleSeconds float64 `toml:"disengagement_idle_seconds"`
}

type IterationSection struct {
	RapidIntervalSeconds    float64 `toml:"rapid_interval_seconds"`
	RapidGuessDensityFactor float64 `toml:"rapid_guess_density_factor"`
}

type BoundsSection struct {
	KPM             RangeSection `toml:"kpm"`
	AttemptDensity  RangeSection `toml:"attempt_density"`
	IdleRatio       RangeSection `toml:"idle_ratio"`
	FocusViolations RangeSection `toml:"focus_violations"`
}

type RangeSection struct {
	Min float64 `toml:"min"`
	Max float64 `toml:"max"`
}

type WeightsSection struct {
	KPM             float64 `toml:"kpm"`
	AttemptDensity  float64 `toml:"attempt_density"`
	IdleRatio       float64 `toml:"idle_ratio"`
	FocusViolations float64 `toml:"focus_violations"`
}

type LabelsSection struct {
	High     float64 `toml:"high"`
	Moderate float64 `toml:"moderate"`
	Low      float64 `toml:"low"`
}

// #endregion calibration

// #region defaults

// DefaultCalibration mirrors engine.DefaultConfig.
func DefaultCalibration() Calibration {
	return fromEngineConfig(engine.DefaultConfig())
}

func fromEngineConfig(cfg engine.Config) Calibration {
	return Calibration{
		Provenance: ProvenanceSection{
			SpamKeystrokeMinimum:    cfg.Provenance.SpamKeystrokeMinimum,
			SpamEfficiencyThreshold: cfg.Provenance.SpamEfficiencyThreshold,
			PasteEditSizeMin:        cfg.Provenance.PasteEditSizeMin,
			PasteKeystrokeRatioMax:  cfg.Provenance.PasteKeystrokeRatioMax,
			LargeEditSizeMin:        cfg.Provenance.LargeEditSizeMin,
			TypedKeystrokeRatioMin:  cfg.Provenance.TypedKeystrokeRatioMin,
			PastePenalty:            cfg.Provenance.PastePenalty,
		},
		Cognitive: CognitiveSection{
			ActiveIdleMaxSeconds:     cfg.Cognitive.ActiveIdleMaxSeconds,
			DisengagementIdleSeconds: cfg.Cognitive.DisengagementIdleSeconds,
		},
		Iteration: IterationSection{
			RapidIntervalSeconds:    cfg.Iteration.RapidIntervalSeconds,
			RapidGuessDensityFactor: cfg.Iteration.RapidGuessDensityFactor,
		},
		Bounds: BoundsSection{
			KPM:             RangeSection{cfg.Scoring.Bounds.KPM.Min, cfg.Scoring.Bounds.KPM.Max},
			AttemptDensity:  RangeSection{cfg.Scoring.Bounds.AttemptDensity.Min, cfg.Scoring.Bounds.AttemptDensity.Max},
			IdleRatio:       RangeSection{cfg.Scoring.Bounds.IdleRatio.Min, cfg.Scoring.Bounds.IdleRatio.Max},
			FocusViolations: RangeSection{cfg.Scoring.Bounds.FocusViolations.Min, cfg.Scoring.Bounds.FocusViolations.Max},
		},
		Weights: WeightsSection{
			KPM:             cfg.Scoring.Weights.KPM,
			AttemptDensity:  cfg.Scoring.Weights.AttemptDensity,
			IdleRatio:       cfg.Scoring.Weights.IdleRatio,
			FocusViolations: cfg.Scoring.Weights.FocusViolations,
		},
		Labels: LabelsSection{
			High:     cfg.Scoring.Thresholds.High,
			Moderate: cfg.Scoring.Thresholds.Moderate,
			Low:      cfg.Scoring.Thresholds.Low,
		},
	}
}

// #endregion defaults

// #region load

// Load reads the calibration file at path, overlaying it on the defaults,
// and converts it into an engine config. A missing file yields the defaults.
func Load(path string) (engine.Config, error) {
	cal := DefaultCalibration()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, &cal); err != nil {
				return engine.Config{}, fmt.Errorf("parse calibration %s: %w", path, err)
			}
		}
	}

	if err := cal.validate(); err != nil {
		return engine.Config{}, fmt.Errorf("calibration %s: %w", path, err)
	}

	return cal.toEngineConfig(), nil
}

func (c Calibration) toEngineConfig() engine.Config {
	return engine.Config{
		Provenance: fusion.ProvenanceConfig{
			SpamKeystrokeMinimum:    c.Provenance.SpamKeystrokeMinimum,
			SpamEfficiencyThreshold: c.Provenance.SpamEfficiencyThreshold,
			PasteEditSizeMin:        c.Provenance.PasteEditSizeMin,
			PasteKeystrokeRatioMax:  c.Provenance.PasteKeystrokeRatioMax,
			LargeEditSizeMin:        c.Provenance.LargeEditSizeMin,
			TypedKeystrokeRatioMin:  c.Provenance.TypedKeystrokeRatioMin,
			PastePenalty:            c.Provenance.PastePenalty,
		},
		Cognitive: fusion.CognitiveConfig{
			ActiveIdleMaxSeconds:     c.Cognitive.ActiveIdleMaxSeconds,
			DisengagementIdleSeconds: c.Cognitive.DisengagementIdleSeconds,
		},
		Iteration: fusion.IterationConfig{
			RapidIntervalSeconds:    c.Iteration.RapidIntervalSeconds,
			RapidGuessDensityFactor: c.Iteration.RapidGuessDensityFactor,
		},
		Scoring: scoring.CalculatorConfig{
			Bounds: scoring.NormalizationBounds{
				KPM:             scoring.Bounds{Min: c.Bounds.KPM.Min, Max: c.Bounds.KPM.Max},
				AttemptDensity:  scoring.Bounds{Min: c.Bounds.AttemptDensity.Min, Max: c.Bounds.AttemptDensity.Max},
				IdleRatio:       scoring.Bounds{Min: c.Bounds.IdleRatio.Min, Max: c.Bounds.IdleRatio.Max},
				FocusViolations: scoring.Bounds{Min: c.Bounds.FocusViolations.Min, Max: c.Bounds.FocusViolations.Max},
			},
			Weights: scoring.Weights{
				KPM:             c.Weights.KPM,
				AttemptDensity:  c.Weights.AttemptDensity,
				IdleRatio:       c.Weights.IdleRatio,
				FocusViolations: c.Weights.FocusViolations,
			},
			Thresholds: scoring.LabelThresholds{
				High:     c.Labels.High,
				Moderate: c.Labels.Moderate,
				Low:      c.Labels.Low,
			},
		},
	}
}

// #endregion load

// #region validate

func (c Calibration) validate() error {
	ranges := []struct {
		name string
		r    RangeSection
	}{
		{"bounds.kpm", c.Bounds.KPM},
		{"bounds.attempt_density", c.Bounds.AttemptDensity},
		{"bounds.idle_ratio", c.Bounds.IdleRatio},
		{"bounds.focus_violations", c.Bounds.FocusViolations},
	}
	for _, r := range ranges {
		if r.r.Max <= r.r.Min {
			return fmt.Errorf("%s: max %v must exceed min %v", r.name, r.r.Max, r.r.Min)
		}
	}

	weights := []struct {
		name string
		w    float64
	}{
		{"weights.kpm", c.Weights.KPM},
		{"weights.attempt_density", c.Weights.AttemptDensity},
		{"weights.idle_ratio", c.Weights.IdleRatio},
		{"weights.focus_violations", c.Weights.FocusViolations},
	}
	for _, w := range weights {
		if w.w < 0 {
			return fmt.Errorf("%s: must be non-negative, got %v", w.name, w.w)
		}
	}

	if !(c.Labels.High > c.Labels.Moderate && c.Labels.Moderate > c.Labels.Low) {
		return fmt.Errorf("labels: cutoffs must descend, got high=%v moderate=%v low=%v",
			c.Labels.High, c.Labels.Moderate, c.Labels.Low)
	}

	if c.Provenance.PastePenalty < 0 || c.Provenance.PastePenalty > 1 {
		return fmt.Errorf("provenance.paste_penalty: must be in [0, 1], got %v", c.Provenance.PastePenalty)
	}
	if c.Iteration.RapidGuessDensityFactor < 0 || c.Iteration.RapidGuessDensityFactor > 1 {
		return fmt.Errorf("iteration.rapid_guess_density_factor: must be in [0, 1], got %v",
			c.Iteration.RapidGuessDensityFactor)
	}
	if c.Cognitive.DisengagementIdleSeconds < c.Cognitive.ActiveIdleMaxSeconds {
		return fmt.Errorf("cognitive: disengagement_idle_seconds %v below active_idle_max_seconds %v",
			c.Cognitive.DisengagementIdleSeconds, c.Cognitive.ActiveIdleMaxSeconds)
	}

	return nil
}

// #endregion validate
