package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoverageScale(t *testing.T) {
	// Doubling the radius quadruples the covered area.
	assert.InDelta(t, 4.0, CoverageScale(5, 5), 1e-9)
	assert.InDelta(t, 1.0, CoverageScale(5, 0), 1e-9)
}

func TestCoverageScale_ZeroBaseRadius(t *testing.T) {
	// A degenerate base radius must not divide by zero.
	assert.InDelta(t, 1.0, CoverageScale(0, 3), 1e-9)
	assert.InDelta(t, 1.0, CoverageScale(-1, 3), 1e-9)
}

func TestScaledImpressions(t *testing.T) {
	assert.Equal(t, 4000, ScaledImpressions(1000, 5, 5))
	assert.Equal(t, 1000, ScaledImpressions(1000, 5, 0))
	// (7/5)^2 = 1.96
	assert.Equal(t, 1960, ScaledImpressions(1000, 5, 2))
}

func TestCoverageSurchargePerDay(t *testing.T) {
	// 15% of the day rate per additional km.
	assert.InDelta(t, 450.0, CoverageSurchargePerDay(1000, 3), 1e-9)
	assert.InDelta(t, 0.0, CoverageSurchargePerDay(1000, 0), 1e-9)
	assert.InDelta(t, 0.0, CoverageSurchargePerDay(1000, -2), 1e-9)
}
