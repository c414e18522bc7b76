package savgol

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"soilqc/domain/series"
)

func TestDerivativesMatchClosedForm(t *testing.T) {
	x := []float64{10, 12, 11, 15, 20, 18, 22, 25, 24, 30}
	deriv1, deriv2 := Derivatives(x)

	for i := 1; i < len(x)-1; i++ {
		wantD1 := (x[i+1] - x[i-1]) / 2
		wantD2 := x[i-1] - 2*x[i] + x[i+1]
		assert.InDelta(t, wantD1, deriv1[i], 1e-9)
		assert.InDelta(t, wantD2, deriv2[i], 1e-9)
	}
}

func TestDerivativesClampAtEdges(t *testing.T) {
	x := []float64{5, 8, 13, 21}
	deriv1, deriv2 := Derivatives(x)
	// clampIndex(-1, 4) == 0, so the virtual sample before x[0] is x[0]
	// itself (scipy's mode='nearest'): deriv1[0] == (x[1]-x[0])/2.
	assert.InDelta(t, (x[1]-x[0])/2, deriv1[0], 1e-9)
	assert.InDelta(t, x[1]-x[0], deriv2[0], 1e-9)
	// Symmetric at the trailing edge: clampIndex(4, 4) == 3.
	last := len(x) - 1
	assert.InDelta(t, (x[last]-x[last-1])/2, deriv1[last], 1e-9)
	assert.InDelta(t, x[last-1]-x[last], deriv2[last], 1e-9)
}

func TestDerivativesPropagateMissingLocally(t *testing.T) {
	x := []float64{1, 2, series.Missing(), 4, 5}
	deriv1, deriv2 := Derivatives(x)
	assert.True(t, series.IsMissing(deriv1[1]))
	assert.True(t, series.IsMissing(deriv1[2]))
	assert.True(t, series.IsMissing(deriv1[3]))
	assert.False(t, series.IsMissing(deriv1[0]))
	assert.False(t, series.IsMissing(deriv2[0]))
}
