package detectors

import (
	"soilqc/domain/series"
	"soilqc/domain/thresholds"
)

// ThresholdC01C02 adds C01 where value is below the variable's physical
// lower bound and C02 where it is above the upper bound (spec.md §4.4).
// bounds is looked up once by the caller since it applies regardless of
// which primary variable is in use.
func ThresholdC01C02(s *series.Series, bounds thresholds.Bounds) {
	for i, v := range s.Values {
		if series.IsMissing(v) {
			continue
		}
		if v < bounds.Lower {
			s.AddFlag(i, series.C01)
		}
		if v > bounds.Upper {
			s.AddFlag(i, series.C02)
		}
	}
}

// C03 adds C03 where soil_moisture strictly exceeds the supplied
// saturation point. A nil saturationPoint skips the detector entirely
// (spec.md §4.4).
func C03(s *series.Series, saturationPoint *float64) {
	if saturationPoint == nil {
		return
	}
	sat := *saturationPoint
	for i, v := range s.Values {
		if series.IsMissing(v) {
			continue
		}
		if v > sat {
			s.AddFlag(i, series.C03)
		}
	}
}

// ancillaryBelowZero adds flag to every record where the named ancillary
// column is present and below lower. Shared by D01, D02, D03, which
// differ only in which column and flag they use.
func ancillaryBelowZero(s *series.Series, variable series.Variable, lower float64, flag series.Flag) {
	col, ok := s.AncillaryColumn(variable)
	if !ok {
		return
	}
	for i, v := range col {
		if series.IsMissing(v) {
			continue
		}
		if v < lower {
			s.AddFlag(i, flag)
		}
	}
}

// D01 adds D01 where in-situ soil_temperature is below freezing, if present.
func D01(s *series.Series) {
	ancillaryBelowZero(s, series.VarSoilTemperature, thresholds.AncillaryTsLower, series.D01)
}

// D02 adds D02 where in-situ air_temperature is below freezing, if present.
func D02(s *series.Series) {
	ancillaryBelowZero(s, series.VarAirTemperature, thresholds.AncillaryTaLower, series.D02)
}

// D03 adds D03 where GLDAS soil_temperature is below freezing, if present.
func D03(s *series.Series) {
	ancillaryBelowZero(s, series.VarGldasSoilTemperature, thresholds.AncillaryTsLower, series.D03)
}
