// Package thresholds holds the static per-variable physical bounds and
// fixed numeric constants used by the threshold detectors (spec.md §4.1).
package thresholds

import "soilqc/domain/series"

// Bounds is a variable's physical lower/upper bound, in its native units.
type Bounds struct {
	Lower float64
	Upper float64
}

// table is the static mapping from variable name to physical bounds.
// Known variables per spec.md §4.1.
var table = map[series.Variable]Bounds{
	series.VarSoilMoisture:        {Lower: 0, Upper: 60},
	series.VarSoilTemperature:     {Lower: -60, Upper: 60},
	series.VarAirTemperature:      {Lower: -60, Upper: 60},
	series.VarSurfaceTemperature:  {Lower: -60, Upper: 60},
	series.VarPrecipitation:       {Lower: 0, Upper: 100},
	series.VarSoilSuction:         {Lower: 0, Upper: 2500},
	series.VarSnowWaterEquivalent: {Lower: 0, Upper: 10000},
	series.VarSnowDepth:           {Lower: 0, Upper: 10000},
}

// Fixed numeric constants from spec.md §4.1.
const (
	AncillaryTaLower = 0.0
	AncillaryTsLower = 0.0
	AncillaryPMin    = 0.2
)

// Lookup returns the physical bounds for a variable and whether it is known.
func Lookup(v series.Variable) (Bounds, bool) {
	b, ok := table[v]
	return b, ok
}

// Override replaces or adds the bounds for a variable. Used by
// internal/config to apply operator-supplied overrides for networks whose
// physical bounds differ from ISMN's; it mutates the package-level table,
// so it must only be called during process configuration, never mid-run.
func Override(v series.Variable, b Bounds) {
	table[v] = b
}
