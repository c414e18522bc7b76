// Package detectors implements the QC detectors over a domain/series.Series:
// threshold comparisons (C01-C03, D01-D03), event-context cross-checks
// (D04, D05), and the three dynamical detectors (D06 spike, D07/D08 break,
// D09 low plateau, D10 saturated plateau), plus the terminal G marker.
// Each detector is a free function taking the series (and, where needed,
// precomputed derivatives) and mutating qflag in place.
package detectors

import "soilqc/domain/series"

// safeDiv divides a by b, yielding the missing marker when either operand
// is missing or b is exactly zero (spec.md §7: "division by zero in
// derivative ratios... yields the missing marker and does not flag",
// rather than the IEEE +/-Inf a bare float division would produce).
func safeDiv(a, b float64) float64 {
	if series.IsMissing(a) || series.IsMissing(b) || b == 0 {
		return series.Missing()
	}
	return a / b
}

// approxEqual reports whether a and b are within tol of each other. Used
// by D10's derivative-match search (spec.md §9: "implementers should use
// a tolerance match (|deriv1 - rise| < 5e-4) to preserve intent").
func approxEqual(a, b, tol float64) bool {
	if series.IsMissing(a) || series.IsMissing(b) {
		return false
	}
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < tol
}
