package detectors

import (
	"math"

	"soilqc/domain/series"
	"soilqc/internal/rolling"
)

// peakKind classifies the shape of a short window of soil-moisture
// samples centered on b: 0 (no peak), 1 (b is a strict local extremum of
// a,b,c), 2 (b and c are an equal two-hour flat extremum against a and d).
func peakKind(a, b, c, d float64, haveD bool) float64 {
	if series.IsMissing(a) || series.IsMissing(b) || series.IsMissing(c) {
		return series.Missing()
	}
	if (a < b && b > c) || (a > b && b < c) {
		return 1
	}
	if haveD && !series.IsMissing(d) {
		if (a < b && b == c && c > d) || (a > b && b == c && c < d) {
			return 2
		}
	}
	return 0
}

// peakRaw evaluates peakKind over the 4-sample window [i-1,i,i+1,i+2]
// (spec.md §4.6's centered window, before the -1 shift that aligns it to
// peak_t). Requires at least 3 of the 4 samples present.
func peakRaw(x []float64, i int) float64 {
	n := len(x)
	lo, hi := i-1, i+2 // inclusive index of d
	if lo < 0 || i+1 >= n {
		return series.Missing()
	}
	a, b, c := x[lo], x[i], x[i+1]
	haveD := hi < n
	d := series.Missing()
	if haveD {
		d = x[hi]
	}
	return peakKind(a, b, c, d, haveD)
}

// D06 adds the spike flag per spec.md §4.6. deriv2 must already be
// computed (the engine runs the derivative builder before D06).
func D06(s *series.Series, deriv2 []float64) {
	x := s.Values
	n := len(x)

	r1 := make([]float64, n) // eq4: x[i]/x[i-1]
	r2 := make([]float64, n) // eq5: |deriv2[i-1]/deriv2[i+1]|
	for i := 0; i < n; i++ {
		if i-1 >= 0 {
			r1[i] = rolling.Round(safeDiv(x[i], x[i-1]), 3)
		} else {
			r1[i] = series.Missing()
		}
		if i-1 >= 0 && i+1 < n {
			r2[i] = rolling.Round(math.Abs(safeDiv(deriv2[i-1], deriv2[i+1])), 3)
		} else {
			r2[i] = series.Missing()
		}
	}

	varExcl := rolling.CenteredVarExcludeCenter(x, 12)
	meanExcl := rolling.CenteredMeanExcludeCenter(x, 12)
	v := make([]float64, n)
	for i := range v {
		v[i] = safeDiv(math.Abs(varExcl[i]), meanExcl[i])
	}

	// eq_new1: pandas' centered rolling(window=4).apply(peak).shift(-1),
	// which lands the window-[i-1,i,i+1,i+2] peak evaluated raw at i+1
	// back onto record i. Working through the shift algebra collapses to
	// peakRaw(x, i) directly.
	peakT := make([]float64, n)
	for i := 0; i < n; i++ {
		peakT[i] = peakRaw(x, i)
	}

	spike2h := make([]bool, n)
	for i := 1; i < n; i++ {
		spike2h[i] = peakT[i-1] > 1
	}

	spikeCond := make([]bool, n)
	for i := range spikeCond {
		ratioHit := r1[i] > 1.15 || r1[i] < 0.85 || spike2h[i]
		spikeCond[i] = ratioHit && r2[i] > 0.8 && r2[i] < 1.2 && v[i] < 1 && peakT[i] > 0
	}

	if s.Internals != nil {
		s.Internals.Set("eq4", r1)
		s.Internals.Set("eq5", r2)
		s.Internals.Set("eq6", v)
		s.Internals.Set("peak_t", peakT)
		s.Internals.Set("spike_2h", boolsToFloats(spike2h))
	}

	for i := range spikeCond {
		twoHourTail := i > 0 && spikeCond[i-1] && spike2h[i]
		if spikeCond[i] || twoHourTail {
			s.AddFlag(i, series.D06)
		}
	}
}

func boolsToFloats(b []bool) []float64 {
	out := make([]float64, len(b))
	for i, v := range b {
		if v {
			out[i] = 1
		}
	}
	return out
}
