package detectors

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"soilqc/domain/series"
	"soilqc/internal/savgol"
)

func TestBreakFlagsLeavesFlatSeriesUnflagged(t *testing.T) {
	x := make([]float64, 40)
	for i := range x {
		x[i] = 10
	}
	s := newFixture(x)
	deriv1, deriv2 := savgol.Derivatives(x)

	BreakFlags(s, deriv1, deriv2)

	for i := range s.QFlag {
		assert.True(t, s.QFlag[i].IsEmpty(), "index %d unexpectedly flagged", i)
	}
}

func TestBreakFlagsFlagsDropToZeroRegardlessOfShapeConditions(t *testing.T) {
	// A large instantaneous drop to exactly zero takes the dedicated
	// dropToZero shortcut (|delta|>5 && x[i]==0) independent of the
	// deriv1/deriv2 shape conditions the general break test evaluates.
	x := make([]float64, 40)
	for i := range x {
		x[i] = 10
	}
	x[20] = 0
	s := newFixture(x)
	deriv1, deriv2 := savgol.Derivatives(x)

	BreakFlags(s, deriv1, deriv2)

	assert.True(t, s.QFlag[20].Has(series.D07))
}

func TestBreakFlagsFlagsAnUpwardBreakViaTheGeneralShapeConditions(t *testing.T) {
	// A positive jump, shaped so every "base" conjunct in BreakFlags holds
	// without relying on the dropToZero shortcut:
	//   c1[20]      = |7/17|          = 0.41   > 0.1
	//   |delta[20]| = 7                        > 1
	//   x[20]       = 17                      != 0
	//   |deriv1[20]|= 3.65 > c2[20] = |mean(deriv1 over 25)*10| = 3.0
	//   c3[20]      = round(|deriv2[19]/deriv2[20]|,1) = round(|7/-6.7|,1) = 1.0
	//   deriv2[20]  = -6.7                    != 0
	//   c3a[20]     = |deriv2[20]/deriv2[22]| = |-6.7/-0.2| = 33.5  > 10
	// deriv1[20] > 0, so the break lands as D08 (jump), not D07 (drop).
	x := make([]float64, 40)
	for i := range x {
		x[i] = 10
	}
	x[20], x[21], x[22], x[23] = 17, 17.3, 17.5, 17.5
	for i := 24; i < len(x); i++ {
		x[i] = 17.5
	}
	s := newFixture(x)
	deriv1, deriv2 := savgol.Derivatives(x)

	BreakFlags(s, deriv1, deriv2)

	assert.True(t, s.QFlag[20].Has(series.D08))
	assert.False(t, s.QFlag[20].Has(series.D07))
}
