package scoring

// #region labels

// Engagement labels applied to the clamped CES score.
const (
	LabelHigh     = "High Engagement"
	LabelModerate = "Moderate Engagement"
	LabelLow      = "Low Engagement"
	LabelAtRisk   = "Disengaged/At-Risk"
)

// #endregion labels

// #region bounds

// Bounds is a fixed min-max normalization range for one metric.
type Bounds struct {
	Min float64
	Max float64
}

// NormalizationBounds fixes the normalization range per input metric.
type NormalizationBounds struct {
	KPM             Bounds // keystrokes per minute
	AttemptDensity  Bounds // runs per minute
	IdleRatio       Bounds // idle minutes over session minutes
	FocusViolations Bounds // tab switches per session
}

// DefaultNormalizationBounds returns the calibrated ranges.
// KPM 5-24 brackets demonstrable engagement against realistic sustained
// manual typing; AD 0.05-0.5 is one run per 20 minutes up to one per 2;
// IR caps at 60% idle; FVC caps at 10 violations per session.
func DefaultNormalizationBounds() NormalizationBounds {
	return NormalizationBounds{
		KPM:             Bounds{Min: 5.0, Max: 24.0},
		AttemptDensity:  Bounds{Min: 0.05, Max: 0.50},
		IdleRatio:       Bounds{Min: 0.0, Max: 0.60},
		FocusViolations: Bounds{Min: 0, Max: 10},
	}
}

// #endregion bounds

// #region weights

// Weights are the CES component weights. KPM and AttemptDensity contribute
// positively; IdleRatio and FocusViolations penalize.
type Weights struct {
	KPM             float64
	AttemptDensity  float64
	IdleRatio       float64
	FocusViolations float64
}

// DefaultWeights returns the canonical weighting scheme:
// 0.35 KPM / 0.25 AD / 0.15 IR / 0.25 FVC. Keystroke activity carries the
// largest weight as the prerequisite for all code production; focus
// violations match AD because off-platform lookups undercut the closed
// problem environment.
func DefaultWeights() Weights {
	return Weights{
		KPM:             0.35,
		AttemptDensity:  0.25,
		IdleRatio:       0.15,
		FocusViolations: 0.25,
	}
}

// #endregion weights

// #region label-thresholds

// LabelThresholds are the classification cutoffs applied to the clamped
// score. Each field is the inclusive lower bound of its band.
type LabelThresholds struct {
	High     float64 // score >= High          → LabelHigh
	Moderate float64 // score in [Moderate, High) → LabelModerate
	Low      float64 // score in [Low, Moderate)  → LabelLow; below → LabelAtRisk
}

// DefaultLabelThresholds returns the canonical cutoffs: 0.60 / 0.20 / -0.20.
func DefaultLabelThresholds() LabelThresholds {
	return LabelThresholds{High: 0.60, Moderate: 0.20, Low: -0.20}
}

// #endregion label-thresholds

// #region calculator-config

// CalculatorConfig bundles everything the CES calculator needs.
type CalculatorConfig struct {
	Bounds     NormalizationBounds
	Weights    Weights
	Thresholds LabelThresholds
}

// DefaultCalculatorConfig returns the calibrated calculator configuration.
func DefaultCalculatorConfig() CalculatorConfig {
	return CalculatorConfig{
		Bounds:     DefaultNormalizationBounds(),
		Weights:    DefaultWeights(),
		Thresholds: DefaultLabelThresholds(),
	}
}

// #endregion calculator-config

// #region normalized-metrics

// NormalizedMetrics holds the four weighted input metrics mapped into [0, 1].
type NormalizedMetrics struct {
	KPM             float64
	AttemptDensity  float64
	IdleRatio       float64
	FocusViolations float64
}

// #endregion normalized-metrics
