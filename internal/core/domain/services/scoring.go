package services

import (
	"math"

	"dispatch/internal/core/domain/model/kernel"
)

const (
	// NoRating is the sentinel returned for a courier with no delivered
	// orders in any region: "no rating yet", not zero and not an error.
	NoRating = float64(-1)

	// ratingCeilingSeconds caps the mean completion duration used in the
	// rating formula; anything slower rates as zero.
	ratingCeilingSeconds = 3600

	// ratingScale is the maximum rating value.
	ratingScale = 5

	// runPaymentBase is the per-run payment before the transport
	// efficiency multiplier.
	runPaymentBase = 500
)

// Rating derives a courier's rating from mean completion durations per
// region, keyed by region. The courier's best-performing region wins: the
// minimum regional mean m maps to (3600 - min(m, 3600)) / 3600 * 5,
// rounded to 2 decimals.
//
// Returns NoRating when the courier has no delivered orders in any region.
func Rating(regionMeanSeconds map[kernel.RegionID]float64) float64 {
	if len(regionMeanSeconds) == 0 {
		return NoRating
	}

	best := math.Inf(1)
	for _, mean := range regionMeanSeconds {
		if mean < best {
			best = mean
		}
	}
	if best > ratingCeilingSeconds {
		best = ratingCeilingSeconds
	}

	rating := (ratingCeilingSeconds - best) / ratingCeilingSeconds * ratingScale
	return math.Round(rating*100) / 100
}

// Earnings sums the payment for completed runs: 500 times the efficiency
// multiplier of the transport type snapshotted on each run at assignment
// time. A courier who changes vehicle keeps the historical rate for
// already-completed runs.
func Earnings(completedRunTransports []kernel.TransportType) int64 {
	var total int64
	for _, transport := range completedRunTransports {
		total += runPaymentBase * transport.Efficiency()
	}
	return total
}
