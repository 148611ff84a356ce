package scoring

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name            string
		value, min, max float64
		want            float64
	}{
		{"at-min", 5.0, 5.0, 24.0, 0.0},
		{"at-max", 24.0, 5.0, 24.0, 1.0},
		{"clamped-above", 30.0, 5.0, 24.0, 1.0},
		{"clamped-below", 2.0, 5.0, 24.0, 0.0},
		{"midpoint", 14.5, 5.0, 24.0, 0.5},
		{"zero-min-bounds", 0.3, 0.0, 0.6, 0.5},
		{"equal-bounds", 7.0, 3.0, 3.0, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.value, tt.min, tt.max); got != tt.want {
				t.Errorf("Normalize(%v, %v, %v) = %v, want %v", tt.value, tt.min, tt.max, got, tt.want)
			}
		})
	}
}
