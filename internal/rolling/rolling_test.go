package rolling

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"soilqc/domain/series"
)

func TestSumCausalMinPeriods(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	got := Sum(x, 3, 3)
	assert.True(t, series.IsMissing(got[0]))
	assert.True(t, series.IsMissing(got[1]))
	assert.Equal(t, 6.0, got[2])
	assert.Equal(t, 9.0, got[3])
	assert.Equal(t, 12.0, got[4])
}

func TestMeanSkipsMissingButHonoursMinPeriods(t *testing.T) {
	x := []float64{1, series.Missing(), 3, 4, 5}
	got := Mean(x, 3, 2)
	// window at i=2 is {1,NaN,3}: 2 valid samples, min_periods=2 satisfied.
	assert.InDelta(t, 2.0, got[2], 1e-9)
}

func TestVarSampleDivisor(t *testing.T) {
	x := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	got := Var(x, 8, 8)
	// population variance of this classic example is 4; sample variance
	// (divisor n-1) is 32/7.
	assert.InDelta(t, 32.0/7.0, got[7], 1e-9)
}

func TestStdIsSqrtOfVar(t *testing.T) {
	x := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	v := Var(x, 8, 8)
	s := Std(x, 8, 8)
	assert.InDelta(t, math.Sqrt(v[7]), s[7], 1e-9)
}

func TestDiff(t *testing.T) {
	x := []float64{10, 12, 15, 15, 20}
	got := Diff(x, 1)
	assert.True(t, series.IsMissing(got[0]))
	assert.Equal(t, 2.0, got[1])
	assert.Equal(t, 3.0, got[2])
	assert.Equal(t, 0.0, got[3])
	assert.Equal(t, 5.0, got[4])
}

func TestShiftPullsFutureBackwardOnNegativeK(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	fwd := Shift(x, 1) // fwd[i] = x[i-1]
	assert.True(t, series.IsMissing(fwd[0]))
	assert.Equal(t, 1.0, fwd[1])

	back := Shift(x, -1) // back[i] = x[i+1]
	assert.Equal(t, 2.0, back[0])
	assert.True(t, series.IsMissing(back[4]))
}

func TestForwardVarMatchesCausalShiftedEquivalent(t *testing.T) {
	// ForwardVar(x, w, mp)[i] must equal a causal Var(x, w, mp) evaluated at
	// i+w-1, i.e. the shift(-(w-1)) identity used throughout D09/D10.
	x := []float64{1, 3, 2, 8, 5, 9, 4, 7, 6, 10}
	fwd := ForwardVar(x, 4, 4)
	causal := Var(x, 4, 4)
	for i := 0; i+3 < len(x); i++ {
		assert.InDelta(t, causal[i+3], fwd[i], 1e-9)
	}
	assert.True(t, series.IsMissing(fwd[len(x)-1]))
}

func TestCenteredMeanRequiresBothSides(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	got := CenteredMean(x, 3, 3)
	assert.True(t, series.IsMissing(got[0]))
	assert.InDelta(t, 2.0, got[1], 1e-9)
	assert.InDelta(t, 3.0, got[2], 1e-9)
	assert.InDelta(t, 4.0, got[3], 1e-9)
	assert.True(t, series.IsMissing(got[4]))
}

func TestCenteredMeanExcludeCenterRequiresFullWindow(t *testing.T) {
	x := make([]float64, 10)
	for i := range x {
		x[i] = float64(i)
	}
	got := CenteredMeanExcludeCenter(x, 2)
	// at i=2 window is indices 0..4 excluding 2: {0,1,3,4} -> mean 2.0
	assert.InDelta(t, 2.0, got[2], 1e-9)
	assert.True(t, series.IsMissing(got[0]))
	assert.True(t, series.IsMissing(got[1]))
	assert.True(t, series.IsMissing(got[9]))
}

func TestCenteredVarExcludeCenterRequiresNoMissingInFullWindow(t *testing.T) {
	x := []float64{1, 2, 3, series.Missing(), 5}
	got := CenteredVarExcludeCenter(x, 2)
	assert.True(t, series.IsMissing(got[2]))
}

func TestRoundPropagatesMissing(t *testing.T) {
	assert.InDelta(t, 1.23, Round(1.2345, 2), 1e-9)
	assert.True(t, series.IsMissing(Round(series.Missing(), 2)))
}
