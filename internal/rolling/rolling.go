// Package rolling implements the shared windowed-statistic primitives used
// by every dynamical detector: causal and centered sum/mean/variance/std,
// forward-looking windows (used by D09/D10, which look ahead rather than
// behind), diff and shift. All kernels honour min_periods exactly,
// emitting series.Missing() when the window does not have enough
// non-missing samples.
package rolling

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"soilqc/domain/series"
)

func missing() float64 { return series.Missing() }

// valid appends the non-missing values of x[lo:hi) (half-open, clamped to
// [0, len(x))) to a reusable scratch slice and returns it along with the
// raw window length actually available (hi-lo after clamping).
func valid(x []float64, lo, hi int, scratch []float64) ([]float64, int) {
	if lo < 0 {
		lo = 0
	}
	if hi > len(x) {
		hi = len(x)
	}
	if hi < lo {
		hi = lo
	}
	scratch = scratch[:0]
	for i := lo; i < hi; i++ {
		if !series.IsMissing(x[i]) {
			scratch = append(scratch, x[i])
		}
	}
	return scratch, hi - lo
}

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return missing()
	}
	return floats.Sum(vals) / float64(len(vals))
}

func sampleVariance(vals []float64) float64 {
	n := len(vals)
	if n < 2 {
		return missing()
	}
	m := mean(vals)
	ss := 0.0
	for _, v := range vals {
		d := v - m
		ss += d * d
	}
	return ss / float64(n-1)
}

// windowKind selects which edge of the window the window end is anchored to.
type windowKind int

const (
	causalKind windowKind = iota
	centeredKind
	forwardKind
)

func bounds(kind windowKind, i, window int) (lo, hi int) {
	switch kind {
	case causalKind:
		return i - window + 1, i + 1
	case forwardKind:
		return i, i + window
	case centeredKind:
		half := window / 2
		return i - half, i + half + 1
	}
	return i, i + 1
}

func reduce(x []float64, window, minPeriods int, kind windowKind, fn func([]float64) float64) []float64 {
	out := make([]float64, len(x))
	scratch := make([]float64, 0, window)
	for i := range x {
		lo, hi := bounds(kind, i, window)
		vals, _ := valid(x, lo, hi, scratch)
		if len(vals) < minPeriods {
			out[i] = missing()
			continue
		}
		out[i] = fn(vals)
	}
	return out
}

// Sum is the causal (right-edge-at-i) windowed sum.
func Sum(x []float64, window, minPeriods int) []float64 {
	return reduce(x, window, minPeriods, causalKind, floats.Sum)
}

// Mean is the causal windowed mean.
func Mean(x []float64, window, minPeriods int) []float64 {
	return reduce(x, window, minPeriods, causalKind, mean)
}

// Var is the causal windowed sample variance (divisor n-1). A window
// containing a single non-missing sample yields the missing marker.
func Var(x []float64, window, minPeriods int) []float64 {
	return reduce(x, window, minPeriods, causalKind, sampleVariance)
}

// Std is the causal windowed sample standard deviation.
func Std(x []float64, window, minPeriods int) []float64 {
	return reduce(x, window, minPeriods, causalKind, func(vals []float64) float64 {
		return math.Sqrt(sampleVariance(vals))
	})
}

// CenteredMean is the centered windowed mean (window should be odd).
func CenteredMean(x []float64, window, minPeriods int) []float64 {
	return reduce(x, window, minPeriods, centeredKind, mean)
}

// CenteredVar is the centered windowed sample variance (window should be odd).
func CenteredVar(x []float64, window, minPeriods int) []float64 {
	return reduce(x, window, minPeriods, centeredKind, sampleVariance)
}

// CenteredMax is the centered windowed maximum (window should be odd).
func CenteredMax(x []float64, window, minPeriods int) []float64 {
	return reduce(x, window, minPeriods, centeredKind, floats.Max)
}

// CenteredMin is the centered windowed minimum (window should be odd).
func CenteredMin(x []float64, window, minPeriods int) []float64 {
	return reduce(x, window, minPeriods, centeredKind, floats.Min)
}

// ForwardSum is the forward-looking windowed sum (x[i..i+window-1]).
func ForwardSum(x []float64, window, minPeriods int) []float64 {
	return reduce(x, window, minPeriods, forwardKind, floats.Sum)
}

// ForwardMean is the forward-looking windowed mean.
func ForwardMean(x []float64, window, minPeriods int) []float64 {
	return reduce(x, window, minPeriods, forwardKind, mean)
}

// ForwardVar is the forward-looking windowed sample variance.
func ForwardVar(x []float64, window, minPeriods int) []float64 {
	return reduce(x, window, minPeriods, forwardKind, sampleVariance)
}

// ForwardMax is the forward-looking windowed maximum.
func ForwardMax(x []float64, window, minPeriods int) []float64 {
	return reduce(x, window, minPeriods, forwardKind, floats.Max)
}

// ForwardMin is the forward-looking windowed minimum.
func ForwardMin(x []float64, window, minPeriods int) []float64 {
	return reduce(x, window, minPeriods, forwardKind, floats.Min)
}

// CausalMax is the causal windowed maximum.
func CausalMax(x []float64, window, minPeriods int) []float64 {
	return reduce(x, window, minPeriods, causalKind, floats.Max)
}

// Diff computes x[i] - x[i-k]; missing when i-k is out of range or either
// operand is missing.
func Diff(x []float64, k int) []float64 {
	out := make([]float64, len(x))
	for i := range x {
		j := i - k
		if j < 0 || j >= len(x) || series.IsMissing(x[i]) || series.IsMissing(x[j]) {
			out[i] = missing()
			continue
		}
		out[i] = x[i] - x[j]
	}
	return out
}

// Shift returns x[i-k] at position i (pandas shift semantics: Shift(x, 1)
// pulls the previous sample forward, Shift(x, -1) pulls the next sample
// back). Out-of-range positions yield the missing marker.
func Shift(x []float64, k int) []float64 {
	out := make([]float64, len(x))
	for i := range x {
		j := i - k
		if j < 0 || j >= len(x) {
			out[i] = missing()
			continue
		}
		out[i] = x[j]
	}
	return out
}

// CenteredMeanExcludeCenter computes, for each i, the mean of
// x[i-half:i+half+1] excluding the center sample x[i] (a boxcar window
// with center weight 0). Requires the full 2*half+1 window, center
// included, to be non-missing ("full 25-sample support" per spec.md
// §4.6); otherwise missing. Used by D06's spike-variance denominator
// (half=12).
func CenteredMeanExcludeCenter(x []float64, half int) []float64 {
	out := make([]float64, len(x))
	for i := range x {
		lo, hi := i-half, i+half+1
		if lo < 0 || hi > len(x) {
			out[i] = missing()
			continue
		}
		sum, n := 0.0, 0
		full := true
		for j := lo; j < hi; j++ {
			if series.IsMissing(x[j]) {
				full = false
				break
			}
			if j != i {
				sum += x[j]
				n++
			}
		}
		if !full {
			out[i] = missing()
			continue
		}
		out[i] = sum / float64(n)
	}
	return out
}

// CenteredVarExcludeCenter computes, for each i, the sample variance of
// x[i-half:i+half+1] excluding the center sample x[i]. Requires the full
// 2*half+1 window (including the center) to be non-missing ("full support"
// per spec.md §4.6). Used by D06's spike-variance numerator (half=12).
func CenteredVarExcludeCenter(x []float64, half int) []float64 {
	out := make([]float64, len(x))
	scratch := make([]float64, 0, 2*half)
	for i := range x {
		lo, hi := i-half, i+half+1
		if lo < 0 || hi > len(x) {
			out[i] = missing()
			continue
		}
		scratch = scratch[:0]
		full := true
		for j := lo; j < hi; j++ {
			if series.IsMissing(x[j]) {
				full = false
				break
			}
			if j != i {
				scratch = append(scratch, x[j])
			}
		}
		if !full {
			out[i] = missing()
			continue
		}
		out[i] = sampleVariance(scratch)
	}
	return out
}

// Round rounds v to the given number of decimal places, propagating the
// missing marker.
func Round(v float64, decimals int) float64 {
	if series.IsMissing(v) {
		return v
	}
	pow := math.Pow(10, float64(decimals))
	return math.Round(v*pow) / pow
}

// RoundAll rounds every element of x to the given number of decimal places.
func RoundAll(x []float64, decimals int) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = Round(v, decimals)
	}
	return out
}
