package engagement

import "time"

// UserProfile is the snapshot of a supporter carried on every activity record.
type UserProfile struct {
	UserID      uint
	DisplayName string
	Handle      string
	AvatarURL   string
}

// ActivityRecord is one supporter interaction with a campaign, flattened out
// of whichever of the eight activity tables it came from.
type ActivityRecord struct {
	User       UserProfile
	Type       ActivityType
	OccurredAt time.Time
	CampaignID uint
}

// SupporterEngagement accumulates all of one supporter's activity within a
// single campaign. Built fresh per request, never persisted.
type SupporterEngagement struct {
	Profile        UserProfile
	Counts         [NumActivityTypes]int
	LastActivityAt time.Time
}

// TotalActivities is the sum of all eight counters.
func (se *SupporterEngagement) TotalActivities() int {
	total := 0
	for _, c := range se.Counts {
		total += c
	}
	return total
}

// DistinctTypes is how many of the eight activity types the supporter has
// used at least once.
func (se *SupporterEngagement) DistinctTypes() int {
	distinct := 0
	for _, c := range se.Counts {
		if c > 0 {
			distinct++
		}
	}
	return distinct
}

// ActivityLabels returns the labels of the types with a non-zero counter, in
// declaration order.
func (se *SupporterEngagement) ActivityLabels() []string {
	labels := make([]string, 0, NumActivityTypes)
	for t, c := range se.Counts {
		if c > 0 {
			labels = append(labels, ActivityType(t).Label())
		}
	}
	return labels
}

// Aggregate folds activity records into per-supporter engagement, keyed by
// user ID. The profile is seeded from the first record seen for each user;
// LastActivityAt is the true maximum timestamp across all of the user's
// records, independent of input order. Invalid activity types are skipped.
func Aggregate(records []ActivityRecord) map[uint]*SupporterEngagement {
	supporters := make(map[uint]*SupporterEngagement)

	for _, rec := range records {
		if !rec.Type.Valid() {
			continue
		}

		se, exists := supporters[rec.User.UserID]
		if !exists {
			se = &SupporterEngagement{Profile: rec.User}
			supporters[rec.User.UserID] = se
		}

		se.Counts[rec.Type]++
		if rec.OccurredAt.After(se.LastActivityAt) {
			se.LastActivityAt = rec.OccurredAt
		}
	}

	return supporters
}
