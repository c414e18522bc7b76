package series

import (
	"math"
	"time"
)

// Missing returns the "no observation" marker used throughout the engine.
// Spec.md §3 calls for an explicit marker rather than absent rows; NaN
// is the natural Go analogue of pandas' NaN used by the original
// implementation, and propagates through arithmetic the same way.
func Missing() float64 {
	return math.NaN()
}

// IsMissing reports whether v is the "no observation" marker.
func IsMissing(v float64) bool {
	return math.IsNaN(v)
}

// Internals carries the derived, transient per-run columns described in
// spec.md §3 ("Derived per-run columns"). Present only when the caller
// requests internals; otherwise left nil and never populated, so a
// default Run never pays for it.
type Internals struct {
	Deriv1 []float64
	Deriv2 []float64
	// Columns holds detector-specific intermediates keyed by name (e.g.
	// "eq7", "rel_var", "spike_2h"), so each detector can
	// publish its own working columns without widening Internals itself.
	Columns map[string][]float64
	// Diagnostics holds the caller-facing run summary (app.RunDiagnostics)
	// when the engine's caller computes one. Typed as interface{} here so
	// domain/series has no dependency on the app package; populated only
	// by app.Service.Run.
	Diagnostics interface{}
}

func newInternals() *Internals {
	return &Internals{Columns: make(map[string][]float64)}
}

// Set stores a derived column, keyed by name.
func (in *Internals) Set(name string, values []float64) {
	if in.Columns == nil {
		in.Columns = make(map[string][]float64)
	}
	in.Columns[name] = values
}

// Get returns a derived column by name, if present.
func (in *Internals) Get(name string) ([]float64, bool) {
	if in == nil {
		return nil, false
	}
	v, ok := in.Columns[name]
	return v, ok
}

// Series is an ordered, gap-free sequence of hourly records (spec.md §3).
// Columns are stored struct-of-arrays style, one slice per field, all the
// same length as Timestamps.
type Series struct {
	// Variable is the primary variable these Values belong to.
	Variable Variable
	// Timestamps are UTC, strictly increasing at 1-hour spacing.
	Timestamps []time.Time
	// Values holds the primary variable's observations.
	Values []float64
	// Ancillary holds optional columns keyed by variable name (e.g.
	// "soil_temperature", "precipitation"). A column absent from the map
	// means the series carries no such ancillary data at all.
	Ancillary map[Variable][]float64
	// QFlag is the per-record flag set, created empty by the engine and
	// mutated additively.
	QFlag []FlagSet

	// Internals is non-nil only when the caller requested internals.
	Internals *Internals
}

// New creates a gap-free Series over the given timestamps and values for
// the given variable, with QFlag initialised to the empty set for every
// record.
func New(variable Variable, timestamps []time.Time, values []float64) *Series {
	return &Series{
		Variable:   variable,
		Timestamps: timestamps,
		Values:     values,
		Ancillary:  make(map[Variable][]float64),
		QFlag:      make([]FlagSet, len(timestamps)),
	}
}

// Len returns the number of records.
func (s *Series) Len() int {
	return len(s.Timestamps)
}

// WithAncillary attaches an ancillary column and returns the series for
// chaining. The column must be the same length as Timestamps.
func (s *Series) WithAncillary(v Variable, values []float64) *Series {
	if s.Ancillary == nil {
		s.Ancillary = make(map[Variable][]float64)
	}
	s.Ancillary[v] = values
	return s
}

// Ancillary column accessor. ok is false when the column is absent,
// distinguishing "no such channel" from "channel present but every
// sample missing".
func (s *Series) AncillaryColumn(v Variable) ([]float64, bool) {
	col, ok := s.Ancillary[v]
	return col, ok
}

// EnableInternals allocates the Internals struct so detectors have
// somewhere to publish their derived columns. Idempotent.
func (s *Series) EnableInternals() {
	if s.Internals == nil {
		s.Internals = newInternals()
	}
}

// DropInternals discards derived columns, e.g. before returning a result
// to a caller that did not request internals.
func (s *Series) DropInternals() {
	s.Internals = nil
}

// AddFlag adds f to the record at index i.
func (s *Series) AddFlag(i int, f Flag) {
	s.QFlag[i] = s.QFlag[i].Add(f)
}

// ScratchView returns a Series sharing this one's read-only columns
// (Values, Timestamps, Ancillary) but with a fresh, independent QFlag
// slice. Used to let concurrent detectors flag into private state
// without racing on the same slice, then fold the result back with
// MergeFlags once the goroutine has finished.
func (s *Series) ScratchView() *Series {
	return &Series{
		Variable:   s.Variable,
		Timestamps: s.Timestamps,
		Values:     s.Values,
		Ancillary:  s.Ancillary,
		QFlag:      make([]FlagSet, len(s.QFlag)),
	}
}

// MergeFlags ORs every record's flags from other into s. other must be
// the same length as s (e.g. a Series produced by ScratchView).
func (s *Series) MergeFlags(other *Series) {
	for i, f := range other.QFlag {
		s.QFlag[i] = s.QFlag[i].Union(f)
	}
}

// Clone returns a deep copy of the series, including flags and internals.
// app.Service.Run clones its input before running the engine so the
// caller's series is never mutated in place.
func (s *Series) Clone() *Series {
	out := &Series{
		Variable:   s.Variable,
		Timestamps: append([]time.Time(nil), s.Timestamps...),
		Values:     append([]float64(nil), s.Values...),
		Ancillary:  make(map[Variable][]float64, len(s.Ancillary)),
		QFlag:      append([]FlagSet(nil), s.QFlag...),
	}
	for k, v := range s.Ancillary {
		out.Ancillary[k] = append([]float64(nil), v...)
	}
	if s.Internals != nil {
		out.Internals = &Internals{
			Deriv1:      append([]float64(nil), s.Internals.Deriv1...),
			Deriv2:      append([]float64(nil), s.Internals.Deriv2...),
			Columns:     make(map[string][]float64, len(s.Internals.Columns)),
			Diagnostics: s.Internals.Diagnostics,
		}
		for k, v := range s.Internals.Columns {
			out.Internals.Columns[k] = append([]float64(nil), v...)
		}
	}
	return out
}
