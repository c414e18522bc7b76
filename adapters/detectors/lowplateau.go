package detectors

import (
	"soilqc/domain/series"
	"soilqc/internal/rolling"
)

// LowPlateau adds D09 per spec.md §4.8. Requires D07 to have already been
// applied to s: a D09 run must begin at a record already carrying D07.
//
// Gap rows (missing soil_moisture) bridge the plateau rather than
// breaking it (spec.md: "gap-bridging by contraction"). Rather than
// materialising a shorter series, this builds a dense view over the
// non-missing positions and writes flags back through their original
// indices — the "re-expansion to the original hourly grid" the source
// performs by resampling is, in this representation, simply never
// touching the gap rows in the first place.
func LowPlateau(s *series.Series) {
	idx := make([]int, 0, s.Len())
	x := make([]float64, 0, s.Len())
	hasD07 := make([]bool, 0, s.Len())
	for i, v := range s.Values {
		if series.IsMissing(v) {
			continue
		}
		idx = append(idx, i)
		x = append(x, v)
		hasD07 = append(hasD07, s.QFlag[i].Has(series.D07))
	}
	m := len(x)
	if m == 0 {
		return
	}

	varW := rolling.RoundAll(rolling.ForwardVar(x, 13, 13), 4)
	meanW := rolling.RoundAll(rolling.ForwardMean(x, 13, 13), 4)
	relVar := make([]float64, m)
	for k := 0; k < m; k++ {
		rv := safeDiv(varW[k], meanW[k])
		if series.IsMissing(rv) && x[k] == 0 {
			rv = 0
		}
		relVar[k] = rv
	}

	event := make([]float64, m)
	for k := 0; k < m; k++ {
		if hasD07[k] && relVar[k] < 0.001 {
			event[k] = 1
		}
	}
	diffRelVar := rolling.Diff(relVar, 1)
	for k := 0; k < m; k++ {
		if event[k] == 0 && diffRelVar[k] >= 0.001 {
			event[k] = -1
		}
	}

	plateau := make([]float64, m)
	acc := 0.0
	for k := 0; k < m; k++ {
		acc += event[k]
		if acc > 1 {
			acc = 1
		}
		if acc < 0 {
			acc = 0
		}
		plateau[k] = acc
	}

	end := rolling.CausalMax(plateau, 13, 13)

	if s.Internals != nil {
		s.Internals.Set("rel_var", expand(idx, relVar, s.Len()))
		s.Internals.Set("plateau", expand(idx, plateau, s.Len()))
	}

	for k := 0; k < m; k++ {
		if !series.IsMissing(end[k]) && end[k] > 0 {
			s.AddFlag(idx[k], series.D09)
		}
	}
}

// expand scatters a contracted column back onto the original grid length,
// leaving gap positions as the missing marker.
func expand(idx []int, contracted []float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = series.Missing()
	}
	for k, i := range idx {
		out[i] = contracted[k]
	}
	return out
}
