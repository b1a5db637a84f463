package engagement

import (
	"sort"
	"time"
)

// ScoredSupporter is a supporter with their computed engagement score.
type ScoredSupporter struct {
	Profile         UserProfile
	Score           float64
	TotalActivities int
	ActivityLabels  []string
	LastActivityAt  time.Time
}

// Score computes the 0-10 engagement score for one supporter:
//
//	frequencyScore = min(totalActivities/10, 1.0) * 60
//	varietyScore   = (distinctTypes/8) * 40
//	score          = (frequencyScore + varietyScore) / 10
//
// Computed on integers (min(total,10)*6 and distinct*5) so equal counters
// always yield bit-identical scores.
func Score(se *SupporterEngagement) float64 {
	total := se.TotalActivities()
	if total > 10 {
		total = 10
	}

	frequencyScore := float64(total * 6)
	varietyScore := float64(se.DistinctTypes() * 5)

	return (frequencyScore + varietyScore) / 10
}

// Rank scores every supporter and sorts them descending by score. Score ties
// fall back to ascending user ID so identical inputs always rank identically.
func Rank(supporters map[uint]*SupporterEngagement) []ScoredSupporter {
	ranked := make([]ScoredSupporter, 0, len(supporters))

	for _, se := range supporters {
		ranked = append(ranked, ScoredSupporter{
			Profile:         se.Profile,
			Score:           Score(se),
			TotalActivities: se.TotalActivities(),
			ActivityLabels:  se.ActivityLabels(),
			LastActivityAt:  se.LastActivityAt,
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Profile.UserID < ranked[j].Profile.UserID
	})

	return ranked
}
