package detectors

import (
	"soilqc/domain/series"
	"soilqc/domain/thresholds"
	"soilqc/internal/rolling"
)

// minPrecipitation resolves the D04/D05 minimum-precipitation threshold
// from the optional sensor depth (spec.md §4.5). skip reports whether the
// detector should be skipped entirely (depth_from >= 0.1m, surface-only).
func minPrecipitation(depthFrom *float64) (minP float64, skip bool) {
	if depthFrom == nil {
		return thresholds.AncillaryPMin, false
	}
	d := *depthFrom
	if d >= 0.1 {
		return 0, true
	}
	if d == 0 {
		return thresholds.AncillaryPMin, false
	}
	return d * 0.05 * 0.5 * 1000, false
}

// eventContext implements the shared D04/D05 computation: a soil-moisture
// rise over both the last hour and the preceding 24h, larger than twice
// the trailing 24h standard deviation, with less than min_p of
// precipitation over the same trailing 24h.
func eventContext(s *series.Series, precipVar series.Variable, depthFrom *float64, flag series.Flag) {
	precip, ok := s.AncillaryColumn(precipVar)
	if !ok {
		return
	}
	minP, skip := minPrecipitation(depthFrom)
	if skip {
		return
	}

	totalP := rolling.Sum(precip, 24, 1)
	std24 := rolling.Std(s.Values, 25, 1)
	for i := range std24 {
		if !series.IsMissing(std24[i]) {
			std24[i] *= 2
		}
	}
	rise24 := rolling.Diff(s.Values, 24)
	rise1 := rolling.Diff(s.Values, 1)

	for i := range s.Values {
		if rise1[i] > 0 && rise24[i] > std24[i] && totalP[i] < minP {
			s.AddFlag(i, flag)
		}
	}
}

// D04 flags an unexplained soil-moisture rise against in-situ precipitation.
func D04(s *series.Series, depthFrom *float64) {
	eventContext(s, series.VarPrecipitation, depthFrom, series.D04)
}

// D05 flags an unexplained soil-moisture rise against GLDAS precipitation.
func D05(s *series.Series, depthFrom *float64) {
	eventContext(s, series.VarGldasPrecipitation, depthFrom, series.D05)
}
