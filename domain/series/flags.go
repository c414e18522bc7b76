package series

import "strings"

// Flag is a single quality-control code from the closed alphabet.
// Represented as a bit position so a Flag can be stored directly inside
// a FlagSet without an intermediate allocation.
type Flag uint16

// The closed flag alphabet. Bit order matches the numeric alphabet in
// spec.md §3 (1..14, with D08 == 11) so FlagSet.Numbers can derive the
// numeric code directly from the bit index.
const (
	C01 Flag = 1 << iota
	C02
	C03
	D01
	D02
	D03
	D04
	D05
	D06
	D07
	D08
	D09
	D10
	G
)

// AllFlags lists the alphabet in canonical (numeric) order.
var AllFlags = []Flag{C01, C02, C03, D01, D02, D03, D04, D05, D06, D07, D08, D09, D10, G}

var flagNames = map[Flag]string{
	C01: "C01", C02: "C02", C03: "C03",
	D01: "D01", D02: "D02", D03: "D03", D04: "D04", D05: "D05",
	D06: "D06", D07: "D07", D08: "D08", D09: "D09", D10: "D10",
	G: "G",
}

var nameToFlag = func() map[string]Flag {
	m := make(map[string]Flag, len(flagNames))
	for f, n := range flagNames {
		m[n] = f
	}
	return m
}()

// Number returns the 1..14 numeric code for the flag (D08 == 11).
func (f Flag) Number() int {
	for i, v := range AllFlags {
		if v == f {
			return i + 1
		}
	}
	return 0
}

// String returns the alphabetic code ("C01", "G", ...).
func (f Flag) String() string {
	if n, ok := flagNames[f]; ok {
		return n
	}
	return "?"
}

// ParseFlag parses an alphabetic code or a numeric string ("1".."14") into a Flag.
func ParseFlag(s string) (Flag, bool) {
	s = strings.TrimSpace(s)
	if f, ok := nameToFlag[strings.ToUpper(s)]; ok {
		return f, true
	}
	for i, f := range AllFlags {
		if s == itoa(i+1) {
			return f, true
		}
	}
	return 0, false
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// FlagSet is the set of flags present on a single record, stored as a
// bitset over the 14-code alphabet for O(1) membership and union.
type FlagSet uint16

// Add returns the set with f added. FlagSet is immutable value semantics;
// callers reassign (qflag = qflag.Add(C01)) the same way they would with a
// built-in map[Flag]struct{} mutation.
func (s FlagSet) Add(f Flag) FlagSet {
	return s | FlagSet(f)
}

// Has reports whether f is present in the set.
func (s FlagSet) Has(f Flag) bool {
	return s&FlagSet(f) != 0
}

// Union returns the union of two sets.
func (s FlagSet) Union(other FlagSet) FlagSet {
	return s | other
}

// IsEmpty reports whether the set has no flags.
func (s FlagSet) IsEmpty() bool {
	return s == 0
}

// Names returns the alphabetic codes present in the set, canonical order.
func (s FlagSet) Names() []string {
	names := make([]string, 0, len(AllFlags))
	for _, f := range AllFlags {
		if s.Has(f) {
			names = append(names, f.String())
		}
	}
	return names
}

// Numbers returns the numeric codes present in the set, canonical order.
func (s FlagSet) Numbers() []int {
	nums := make([]int, 0, len(AllFlags))
	for _, f := range AllFlags {
		if s.Has(f) {
			nums = append(nums, f.Number())
		}
	}
	return nums
}

// FlagDescription pairs a flag code with its human-readable meaning.
// Supplements spec.md with the description table from the original
// Python implementation's Interface.get_flag_description.
type FlagDescription struct {
	Code        Flag
	Name        string
	Description string
}

var flagDescriptions = map[Flag]string{
	C01: "soil moisture < 0 m3/m3",
	C02: "soil moisture > 0.60 m3/m3",
	C03: "soil moisture > saturation point (based on HWSD)",
	D01: "negative soil temperature (in situ)",
	D02: "negative air temperature (in situ)",
	D03: "negative soil temperature (GLDAS)",
	D04: "rise in soil moisture without precipitation (in situ)",
	D05: "rise in soil moisture without precipitation (GLDAS)",
	D06: "spikes",
	D07: "negative breaks (drops)",
	D08: "positive breaks (jumps)",
	D09: "constant values following negative break",
	D10: "saturated plateaus",
	G:   "good",
}

// Describe returns the human-readable meaning of a single flag code.
func Describe(f Flag) FlagDescription {
	return FlagDescription{Code: f, Name: f.String(), Description: flagDescriptions[f]}
}

// DescribeAll returns the description table for the whole alphabet, in
// canonical order.
func DescribeAll() []FlagDescription {
	out := make([]FlagDescription, 0, len(AllFlags))
	for _, f := range AllFlags {
		out = append(out, Describe(f))
	}
	return out
}
