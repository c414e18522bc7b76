package detectors

import (
	"soilqc/domain/series"
	"soilqc/internal/rolling"
)

// derivMatchTolerance is the tolerance used when searching a group's
// members for the sample whose deriv1 matches its rounded rise/drop
// value (spec.md §9: preserved as a tolerance match rather than the
// source's exact post-rounding equality).
const derivMatchTolerance = 5e-4

// SaturatedPlateau adds D10 per spec.md §4.9. deriv1 must already be
// computed over the full (un-contracted) series.
func SaturatedPlateau(s *series.Series, deriv1 []float64) {
	highestSM := series.Missing()
	for _, v := range s.Values {
		if series.IsMissing(v) || v >= 60 {
			continue
		}
		if series.IsMissing(highestSM) || v > highestSM {
			highestSM = v
		}
	}
	if series.IsMissing(highestSM) {
		return
	}

	idx := make([]int, 0, s.Len())
	x := make([]float64, 0, s.Len())
	d1 := make([]float64, 0, s.Len())
	for i, v := range s.Values {
		if series.IsMissing(v) {
			continue
		}
		idx = append(idx, i)
		x = append(x, v)
		d1 = append(d1, deriv1[i])
	}
	m := len(x)
	if m == 0 {
		return
	}

	varW := rolling.ForwardVar(x, 12, 12)
	isLowVar := make([]bool, m)
	for k := range varW {
		isLowVar[k] = !series.IsMissing(varW[k]) && varW[k] <= 0.05
	}
	group := renumberPlateaus(isLowVar)

	maximum := rolling.CenteredMax(d1, 25, 1)
	minimum := rolling.ForwardMin(d1, 25, 1)

	maxGroup := 0
	for _, g := range group {
		if g > maxGroup {
			maxGroup = g
		}
	}

	for g := 1; g <= maxGroup; g++ {
		members := groupMembers(group, g)
		if len(members) == 0 {
			continue
		}
		rise := rolling.Round(maximum[members[0]], 3)
		drop := rolling.Round(minimum[members[len(members)-1]], 3)
		if series.IsMissing(rise) || rise < 0.25 || series.IsMissing(drop) || drop >= 0 {
			continue
		}

		start := members[0]
		for _, k := range members {
			if approxEqual(d1[k], rise, derivMatchTolerance) {
				start = k
				break
			}
		}
		end := members[len(members)-1]
		for _, k := range members {
			if approxEqual(d1[k], drop, derivMatchTolerance) {
				end = k
				break
			}
		}
		if start > end {
			start, end = end, start
		}

		sum, n := 0.0, 0
		for k := start; k <= end; k++ {
			sum += x[k]
			n++
		}
		if n == 0 {
			continue
		}
		mean := sum / float64(n)
		if mean > 0.95*highestSM {
			for k := start; k <= end; k++ {
				s.AddFlag(idx[k], series.D10)
			}
		}
	}
}

// renumberPlateaus assigns consecutive group numbers to runs of true in
// low, e.g. [T,F,T,T,F,F,T,T] -> [1,0,2,2,0,0,3,3]. The group counter is
// local to this call, never a shared/global counter (spec.md §9).
func renumberPlateaus(low []bool) []int {
	n := len(low)
	out := make([]int, n)
	if n == 0 {
		return out
	}
	group := 1
	for k := 0; k < n-1; k++ {
		if low[k] {
			out[k] = group
		}
		if low[k] && !low[k+1] {
			group++
		}
	}
	if low[n-1] {
		out[n-1] = group
	}
	return out
}

func groupMembers(group []int, g int) []int {
	var out []int
	for k, v := range group {
		if v == g {
			out = append(out, k)
		}
	}
	return out
}
