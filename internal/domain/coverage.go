package domain

import "math"

// CoverageSurchargeRate is the per-km daily surcharge applied to coverage
// extensions: 15% of the base day rate per additional kilometer.
const CoverageSurchargeRate = 0.15

// CoverageScale returns the factor by which impressions and footfall scale
// when a movable space's radius grows from base to base+additional. Coverage
// is an area, so the factor is the square of the radius ratio.
func CoverageScale(baseRadiusKm, additionalKm float64) float64 {
	if baseRadiusKm <= 0 {
		return 1
	}
	ratio := (baseRadiusKm + additionalKm) / baseRadiusKm
	return ratio * ratio
}

// ScaledImpressions scales a daily impression (or footfall) count by the
// coverage area of the extended radius.
func ScaledImpressions(base int, baseRadiusKm, additionalKm float64) int {
	return int(math.Round(float64(base) * CoverageScale(baseRadiusKm, additionalKm)))
}

// CoverageSurchargePerDay prices the extension: the surcharge applies to the
// additional kilometers only, never to the base radius.
func CoverageSurchargePerDay(pricePerDay, additionalKm float64) float64 {
	if additionalKm <= 0 {
		return 0
	}
	return pricePerDay * CoverageSurchargeRate * additionalKm
}
