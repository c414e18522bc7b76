package detectors

import (
	"math"

	"soilqc/domain/series"
	"soilqc/internal/rolling"
)

// BreakFlags adds D07 (drop) and D08 (jump) per spec.md §4.7. deriv1 and
// deriv2 must already be computed.
func BreakFlags(s *series.Series, deriv1, deriv2 []float64) {
	x := s.Values
	n := len(x)

	delta := rolling.Diff(x, 1)
	c1 := make([]float64, n)
	for i := range c1 {
		c1[i] = math.Abs(safeDiv(delta[i], x[i]))
	}
	c2 := rolling.CenteredMean(deriv1, 25, 4)
	for i := range c2 {
		if !series.IsMissing(c2[i]) {
			c2[i] = math.Abs(c2[i] * 10)
		}
	}
	c3 := make([]float64, n)
	c3a := make([]float64, n)
	for i := 0; i < n; i++ {
		if i-1 >= 0 {
			c3[i] = rolling.Round(math.Abs(safeDiv(deriv2[i-1], deriv2[i])), 1)
		} else {
			c3[i] = series.Missing()
		}
		if i+2 < n {
			c3a[i] = math.Abs(safeDiv(deriv2[i], deriv2[i+2]))
		} else {
			c3a[i] = series.Missing()
		}
	}

	dropToZero := make([]bool, n)
	for i := range dropToZero {
		dropToZero[i] = !series.IsMissing(delta[i]) && math.Abs(delta[i]) > 5 && x[i] == 0
	}

	if s.Internals != nil {
		s.Internals.Set("absolute_change", delta)
		s.Internals.Set("eq7", c1)
		s.Internals.Set("eq8", c2)
		s.Internals.Set("eq9", c3)
		s.Internals.Set("eq9a", c3a)
	}

	for i := 0; i < n; i++ {
		if dropToZero[i] {
			s.AddFlag(i, series.D07)
			continue
		}
		base := c1[i] > 0.1 &&
			!series.IsMissing(delta[i]) && math.Abs(delta[i]) > 1 &&
			x[i] != 0 &&
			!series.IsMissing(deriv1[i]) && !series.IsMissing(c2[i]) && math.Abs(deriv1[i]) > c2[i] &&
			!series.IsMissing(c3[i]) && math.Abs(c3[i]-1) < 0.01 &&
			!series.IsMissing(deriv2[i]) && deriv2[i] != 0 &&
			!series.IsMissing(c3a[i]) && c3a[i] > 10
		if !base {
			continue
		}
		switch {
		case deriv1[i] < 0:
			s.AddFlag(i, series.D07)
		case deriv1[i] > 0:
			s.AddFlag(i, series.D08)
		}
	}
}
