package engagement

import "math"

// Tier thresholds for the engagement distribution.
const (
	HighThreshold     = 6.0
	ModerateThreshold = 3.0
)

type Bucket struct {
	Count      int `json:"count"`
	Percentage int `json:"percentage"`
}

// Distribution partitions scored supporters into three fixed tiers. All three
// buckets are always present, even when empty.
type Distribution struct {
	HighEngagement     Bucket `json:"highEngagement"`
	ModerateEngagement Bucket `json:"moderateEngagement"`
	LowEngagement      Bucket `json:"lowEngagement"`
	TotalSupporters    int    `json:"totalSupporters"`
}

// Distribute buckets supporters by score: high >= 6.0, 3.0 <= moderate < 6.0,
// low < 3.0. Percentages are rounded to whole numbers and all zero when there
// are no supporters.
func Distribute(ranked []ScoredSupporter) Distribution {
	dist := Distribution{TotalSupporters: len(ranked)}

	for _, s := range ranked {
		switch {
		case s.Score >= HighThreshold:
			dist.HighEngagement.Count++
		case s.Score >= ModerateThreshold:
			dist.ModerateEngagement.Count++
		default:
			dist.LowEngagement.Count++
		}
	}

	if dist.TotalSupporters > 0 {
		total := float64(dist.TotalSupporters)
		dist.HighEngagement.Percentage = int(math.Round(float64(dist.HighEngagement.Count) / total * 100))
		dist.ModerateEngagement.Percentage = int(math.Round(float64(dist.ModerateEngagement.Count) / total * 100))
		dist.LowEngagement.Percentage = int(math.Round(float64(dist.LowEngagement.Count) / total * 100))
	}

	return dist
}
