package scoring

// #region normalize

// Normalize maps value into [0, 1] via fixed min-max bounds.
// Values outside the range clamp to the nearest bound; equal bounds
// return 0 rather than dividing by zero.
func Normalize(value, min, max float64) float64 {
	if max-min == 0 {
		return 0
	}
	norm := (value - min) / (max - min)
	if norm < 0 {
		return 0
	}
	if norm > 1 {
		return 1
	}
	return norm
}

// #endregion normalize
