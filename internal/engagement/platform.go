package engagement

import "math"

// PlatformAverage is the cross-campaign engagement baseline: total activity
// records of all eight types across the platform, divided by registered user
// count, divided by 10 to land on the same 0-10-ish scale as per-supporter
// scores. Zero users yields zero.
func PlatformAverage(totalActivities, totalUsers int64) float64 {
	if totalUsers <= 0 {
		return 0
	}

	avg := float64(totalActivities) / float64(totalUsers) / 10
	return round2(avg)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
