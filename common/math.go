package common

import "math"

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// MaxAbs returns the larger absolute component of (x, y).
func MaxAbs(x, y float64) float64 {
	return math.Max(math.Abs(x), math.Abs(y))
}
