package math

import m "math"

func Abs[T float64 | float32](val T) float64 {
	return m.Abs(float64(val))
}

// Sign returns -1, 0 or 1. Values within eps of zero report 0.
func Sign(val, eps float64) float64 {
	switch {
	case val > eps:
		return 1
	case val < -eps:
		return -1
	}
	return 0
}

// Snap treats values within eps of zero as zero.
func Snap(val, eps float64) float64 {
	if m.Abs(val) <= eps {
		return 0
	}
	return val
}

func Clamp(val, lo, hi float64) float64 {
	return max(lo, min(hi, val))
}

func Finite(vals ...float64) bool {
	for _, v := range vals {
		if m.IsNaN(v) || m.IsInf(v, 0) {
			return false
		}
	}
	return true
}
