package series

// Options controls a single engine invocation, mirroring spec.md §6's
// primary operation `run(series, options)`.
type Options struct {
	// SaturationPoint enables C03 when non-nil (externally supplied per
	// spec.md §4.4; its computation is out of scope).
	SaturationPoint *float64
	// DepthFrom scales the D04/D05 minimum-precipitation threshold, or
	// skips both detectors entirely when >= 0.1 m (spec.md §4.5).
	DepthFrom *float64
	// Names restricts the run to a named subset of detectors; nil or
	// empty means run all applicable detectors. Order within the subset
	// always follows the canonical order regardless of the order given
	// here.
	Names []Flag
	// FlagNumbers records a preference for the numeric alphabet 1..14
	// (D08 == 11). Neither internal/engine nor app.Service reads it: flags
	// are always stored as FlagSet bits, and numeric codes are available
	// through FlagSet.Numbers.
	FlagNumbers bool
	// WithInternals keeps derived columns (deriv1, deriv2, detector
	// intermediates) on the returned series instead of dropping them.
	WithInternals bool
}

// Wants reports whether f should run under these Options: Names is empty
// (run everything) or explicitly includes f.
func (o Options) Wants(f Flag) bool {
	if len(o.Names) == 0 {
		return true
	}
	for _, n := range o.Names {
		if n == f {
			return true
		}
	}
	return false
}
