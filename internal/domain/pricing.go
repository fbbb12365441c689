package domain

const (
	// BaseFee is the flat service call fee.
	BaseFee = 75.0
	// RatePerKm is the travel surcharge per kilometer.
	RatePerKm = 2.5
)

// EstimateCost prices a service call from its travel distance.
// A nil distance is priced as zero travel.
func EstimateCost(distanceKm *float64) float64 {
	d := 0.0
	if distanceKm != nil {
		d = *distanceKm
	}
	return BaseFee + RatePerKm*d
}
