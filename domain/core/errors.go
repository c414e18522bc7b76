package core

import "errors"

// ErrFormat is the single error condition spec.md §6/§7 names: the input
// is not a tabular series, the primary variable column cannot be
// identified, or (§7.3, resolved per SPEC_FULL.md §7) the primary
// variable is not present in the thresholds table. Raising it wrapped
// with detail (via internal/apperr) is always preferred over silently
// restricting to a subset of detectors.
var ErrFormat = errors.New("format error")

// IsFormatError reports whether err is (or wraps) ErrFormat.
func IsFormatError(err error) bool {
	return errors.Is(err, ErrFormat)
}
