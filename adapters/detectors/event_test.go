package detectors

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"soilqc/domain/series"
)

func TestMinPrecipitationResolution(t *testing.T) {
	p, skip := minPrecipitation(nil)
	assert.False(t, skip)
	assert.Equal(t, 0.2, p)

	deep := 0.15
	_, skip = minPrecipitation(&deep)
	assert.True(t, skip)

	zero := 0.0
	p, skip = minPrecipitation(&zero)
	assert.False(t, skip)
	assert.Equal(t, 0.2, p)

	shallow := 0.05
	p, skip = minPrecipitation(&shallow)
	assert.False(t, skip)
	assert.InDelta(t, 0.05*0.05*0.5*1000, p, 1e-9)
}

func TestD04FlagsUnexplainedRiseWithoutPrecipitation(t *testing.T) {
	n := 30
	values := make([]float64, n)
	precip := make([]float64, n)
	for i := 0; i < n; i++ {
		values[i] = 10
		precip[i] = 0
	}
	// build up 24h of low-variance history, then spike record 25 without rain.
	for i := 25; i < n; i++ {
		values[i] = 10 + float64(i-24)*3
	}
	s := newFixture(values)
	s.WithAncillary(series.VarPrecipitation, precip)

	D04(s, nil)

	assert.True(t, s.QFlag[25].Has(series.D04))
}

func TestD04SkippedWhenPrecipitationColumnAbsent(t *testing.T) {
	s := newFixture([]float64{10, 50})
	D04(s, nil)
	assert.True(t, s.QFlag[1].IsEmpty())
}
