package scoring

import (
	"math"
	"testing"
)

func TestScoreWeighting(t *testing.T) {
	c := NewCalculator(DefaultCalculatorConfig())

	tests := []struct {
		name    string
		metrics NormalizedMetrics
		penalty float64
		want    float64
	}{
		{"all-zero", NormalizedMetrics{}, 0, 0},
		{
			"fully-productive",
			NormalizedMetrics{KPM: 1, AttemptDensity: 1},
			0,
			0.60, // 0.35 + 0.25
		},
		{
			"fully-penalized",
			NormalizedMetrics{IdleRatio: 1, FocusViolations: 1},
			0,
			-0.40, // -(0.15 + 0.25)
		},
		{
			"mixed",
			NormalizedMetrics{KPM: 0.5, AttemptDensity: 0.4, IdleRatio: 0.2, FocusViolations: 0.1},
			0,
			0.35*0.5 + 0.25*0.4 - 0.15*0.2 - 0.25*0.1,
		},
		{
			"integrity-penalty-subtracts",
			NormalizedMetrics{KPM: 1, AttemptDensity: 1},
			0.5,
			0.10,
		},
		{
			"clamped-low",
			NormalizedMetrics{IdleRatio: 1, FocusViolations: 1},
			1.0,
			-1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Score(tt.metrics, tt.penalty)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("score: got %v, want %v", got, tt.want)
			}
			if got < -1 || got > 1 {
				t.Errorf("score %v outside [-1, 1]", got)
			}
		})
	}
}

func TestLabelBoundaries(t *testing.T) {
	c := NewCalculator(DefaultCalculatorConfig())

	tests := []struct {
		score float64
		want  string
	}{
		{1.0, LabelHigh},
		{0.60, LabelHigh}, // inclusive lower bound
		{0.5999, LabelModerate},
		{0.20, LabelModerate},
		{0.1999, LabelLow},
		{0.0, LabelLow},
		{-0.20, LabelLow},
		{-0.2001, LabelAtRisk},
		{-1.0, LabelAtRisk},
	}

	for _, tt := range tests {
		if got := c.Label(tt.score); got != tt.want {
			t.Errorf("Label(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestNormalizeMetricsUsesConfiguredBounds(t *testing.T) {
	c := NewCalculator(DefaultCalculatorConfig())

	m := c.NormalizeMetrics(24.0, 0.5, 0.6, 10)
	if m.KPM != 1 || m.AttemptDensity != 1 || m.IdleRatio != 1 || m.FocusViolations != 1 {
		t.Errorf("expected all metrics at 1.0, got %+v", m)
	}

	m = c.NormalizeMetrics(5.0, 0.05, 0, 0)
	if m.KPM != 0 || m.AttemptDensity != 0 || m.IdleRatio != 0 || m.FocusViolations != 0 {
		t.Errorf("expected all metrics at 0.0, got %+v", m)
	}
}
