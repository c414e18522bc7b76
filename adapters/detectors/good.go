package detectors

import "soilqc/domain/series"

// Good adds G to every record whose flag set is still empty. Must run
// last; idempotent (spec.md §4.10).
func Good(s *series.Series) {
	for i := range s.QFlag {
		if s.QFlag[i].IsEmpty() {
			s.AddFlag(i, series.G)
		}
	}
}
