package detectors

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"soilqc/domain/series"
	"soilqc/internal/savgol"
)

// spikeFixture is flat at 10 except a single one-hour spike to 15 at
// index 15, long enough either side for the centered 25-wide windows eq6
// relies on to have full support.
func spikeFixture() []float64 {
	x := make([]float64, 40)
	for i := range x {
		x[i] = 10
	}
	x[15] = 15
	return x
}

func TestPeakRawMatchesHandDerivedWindowAroundSpike(t *testing.T) {
	x := spikeFixture()
	// peakRaw(x,15) looks at the window [x14,x15,x16,x17] = [10,15,10,10]:
	// a<b && b>c is a strict one-sample peak.
	assert.Equal(t, 1.0, peakRaw(x, 15))
	// peakRaw(x,16) looks at [x15,x16,x17,x18] = [15,10,10,10]: monotone
	// non-increasing, no strict extremum and no flat two-hour top (c==d).
	assert.Equal(t, 0.0, peakRaw(x, 16))
}

func TestD06FlagsAnIsolatedSpikeAtItsOwnTimestamp(t *testing.T) {
	x := spikeFixture()
	s := newFixture(x)
	_, deriv2 := savgol.Derivatives(x)

	D06(s, deriv2)

	// Hand-derived: r1[15]=x[15]/x[14]=1.5 (>1.15), r2[15]=|deriv2[14]/deriv2[16]|=|5/5|=1.0
	// (in (0.8,1.2)), the 24-sample exclude-center window around 15 is flat
	// at 10 so v[15]=0 (<1), and peakT[15]=peakRaw(x,15)=1 (>0): every
	// spikeCond[15] conjunct holds, so the spike is flagged on its own
	// record, not the one before it.
	assert.True(t, s.QFlag[15].Has(series.D06))
}

func TestD06LeavesFlatSeriesUnflagged(t *testing.T) {
	x := make([]float64, 40)
	for i := range x {
		x[i] = 10
	}
	s := newFixture(x)
	_, deriv2 := savgol.Derivatives(x)

	D06(s, deriv2)

	for i := range s.QFlag {
		assert.True(t, s.QFlag[i].IsEmpty(), "index %d unexpectedly flagged", i)
	}
}

func TestPeakKindClassifiesStrictExtrema(t *testing.T) {
	assert.Equal(t, 1.0, peakKind(1, 3, 1, 0, true)) // local max
	assert.Equal(t, 1.0, peakKind(3, 1, 3, 0, true))  // local min
	assert.Equal(t, 0.0, peakKind(1, 2, 3, 0, true))  // monotone, no peak
	assert.True(t, series.IsMissing(peakKind(series.Missing(), 2, 3, 0, true)))
}

func TestPeakKindClassifiesFlatTwoHourExtremum(t *testing.T) {
	assert.Equal(t, 2.0, peakKind(1, 3, 3, 1, true))
	assert.Equal(t, 0.0, peakKind(1, 3, 3, 5, true)) // not a peak: c not > d
}
