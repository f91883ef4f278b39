package math

import m "math"

// QuadraticRoots solves a*x^2 + b*x + c = 0 for a != 0 and returns the roots
// in ascending order. A discriminant in [-eps, 0) is treated as a double root;
// anything more negative reports ok = false.
func QuadraticRoots(a, b, c, eps float64) (lo, hi float64, ok bool) {
	if a == 0 || !Finite(a, b, c) {
		return 0, 0, false
	}
	disc := b*b - 4*a*c
	if disc < 0 {
		if disc < -eps {
			return 0, 0, false
		}
		disc = 0
	}
	// numerically stable form, avoids cancellation when b^2 >> 4ac
	q := -0.5 * (b + m.Copysign(m.Sqrt(disc), b))
	if q == 0 {
		r := -b / (2 * a)
		return r, r, true
	}
	x1 := q / a
	x2 := c / q
	return min(x1, x2), max(x1, x2), true
}
