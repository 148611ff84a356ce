package scoring

// #region calculator

// Calculator combines normalized metrics and the integrity penalty into the
// bounded Cognitive Engagement Score.
type Calculator struct {
	config CalculatorConfig
}

// NewCalculator creates a calculator with the given configuration.
func NewCalculator(config CalculatorConfig) *Calculator {
	return &Calculator{config: config}
}

// #endregion calculator

// #region normalize-metrics

// NormalizeMetrics maps the effective metrics into [0, 1] via the
// configured bounds.
func (c *Calculator) NormalizeMetrics(
	effectiveKPM, effectiveAD, effectiveIR float64,
	focusViolations int,
) NormalizedMetrics {
	b := c.config.Bounds
	return NormalizedMetrics{
		KPM:             Normalize(effectiveKPM, b.KPM.Min, b.KPM.Max),
		AttemptDensity:  Normalize(effectiveAD, b.AttemptDensity.Min, b.AttemptDensity.Max),
		IdleRatio:       Normalize(effectiveIR, b.IdleRatio.Min, b.IdleRatio.Max),
		FocusViolations: Normalize(float64(focusViolations), b.FocusViolations.Min, b.FocusViolations.Max),
	}
}

// #endregion normalize-metrics

// #region score

// Score computes the weighted productive-minus-penalty score, subtracts the
// integrity penalty, and clamps the result to [-1, 1].
func (c *Calculator) Score(m NormalizedMetrics, integrityPenalty float64) float64 {
	w := c.config.Weights

	productive := w.KPM*m.KPM + w.AttemptDensity*m.AttemptDensity
	penalty := w.IdleRatio*m.IdleRatio + w.FocusViolations*m.FocusViolations

	score := productive - penalty - integrityPenalty

	if score < -1 {
		return -1
	}
	if score > 1 {
		return 1
	}
	return score
}

// #endregion score

// #region label

// Label maps the clamped score to its engagement classification.
// A pure function of the score: band lower bounds are inclusive.
func (c *Calculator) Label(score float64) string {
	t := c.config.Thresholds
	switch {
	case score >= t.High:
		return LabelHigh
	case score >= t.Moderate:
		return LabelModerate
	case score >= t.Low:
		return LabelLow
	default:
		return LabelAtRisk
	}
}

// #endregion label
