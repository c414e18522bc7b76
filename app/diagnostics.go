package app

import (
	"github.com/montanaflynn/stats"

	"soilqc/domain/series"
)

// RunDiagnostics is a pure reporting summary of the primary variable's
// distribution, attached to the result only when the caller requested
// internals (SPEC_FULL.md §3). It never feeds back into flagging, in the
// same spirit as the teacher's internal/profiling distribution summaries.
type RunDiagnostics struct {
	Mean         float64
	StdDev       float64
	Min          float64
	Max          float64
	Median       float64
	OutlierCount int
}

// computeDiagnostics summarises the non-missing samples of s.Values.
// Returns the zero value when fewer than two samples are present.
func computeDiagnostics(s *series.Series) RunDiagnostics {
	data := make([]float64, 0, s.Len())
	for _, v := range s.Values {
		if !series.IsMissing(v) {
			data = append(data, v)
		}
	}
	if len(data) < 2 {
		return RunDiagnostics{}
	}

	mean, _ := stats.Mean(data)
	stdDev, _ := stats.StandardDeviation(data)
	min, _ := stats.Min(data)
	max, _ := stats.Max(data)
	median, _ := stats.Median(data)
	q25, _ := stats.Percentile(data, 25)
	q75, _ := stats.Percentile(data, 75)

	return RunDiagnostics{
		Mean:         mean,
		StdDev:       stdDev,
		Min:          min,
		Max:          max,
		Median:       median,
		OutlierCount: countOutliers(data, q25, q75),
	}
}

// countOutliers applies the standard IQR rule, matching the teacher's
// internal/profiling.detectOutliers.
func countOutliers(data []float64, q25, q75 float64) int {
	iqr := q75 - q25
	lower := q25 - 1.5*iqr
	upper := q75 + 1.5*iqr
	n := 0
	for _, v := range data {
		if v < lower || v > upper {
			n++
		}
	}
	return n
}
