package order

import "math/rand/v2"

const (
	minDistanceKm = 1
	maxDistanceKm = 15
)

// DistanceProvider yields the delivery distance for a new order. The demo
// has no geolocation, distances are simulated, but the seam keeps pricing
// testable.
type DistanceProvider interface {
	DistanceKm() int
}

// RandomDistance draws a uniform integer distance in [1, 15] km.
type RandomDistance struct{}

func (RandomDistance) DistanceKm() int {
	return minDistanceKm + rand.IntN(maxDistanceKm-minDistanceKm+1)
}
