package repair

import "math"

// DefaultThreshold is the magnitude above which a declared bound is treated
// as an upstream sentinel rather than a real timestamp. DBL_MAX sentinels
// sit at ~1.8e308; nothing legitimate approaches 1e100.
const DefaultThreshold = 1e100

// Corrupted reports whether a declared (min, max) scalar pair violates the
// accessor bounds invariant: sentinel magnitude, non-finite, or inverted.
func Corrupted(min, max, threshold float64) bool {
	return SentinelValue(min, threshold) ||
		SentinelValue(max, threshold) ||
		min > max
}

// SentinelValue reports whether a single scalar carries the corruption
// signature.
func SentinelValue(v, threshold float64) bool {
	return math.Abs(v) > threshold || math.IsNaN(v) || math.IsInf(v, 0)
}
