package pricing

import "math"

const (
	// CommissionRate is the agent commission rate on a paid shop
	CommissionRate = 0.20

	// DefaultListingAmount is charged when a registration omits an amount
	DefaultListingAmount = 100
)

// Commission returns the agent commission for a paid shop amount,
// rounded to the nearest whole unit.
func Commission(amount float64) float64 {
	return math.Round(amount * CommissionRate)
}

// TotalEarnings sums commissions over a set of paid shop amounts
func TotalEarnings(amounts []float64) float64 {
	var total float64
	for _, amount := range amounts {
		total += Commission(amount)
	}
	return total
}
