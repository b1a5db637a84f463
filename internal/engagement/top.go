package engagement

import "time"

// TopSupporter is the public-safe projection of a ranked supporter.
type TopSupporter struct {
	ID              uint     `json:"id"`
	Name            string   `json:"name"`
	Handle          string   `json:"handle"`
	Avatar          string   `json:"avatar,omitempty"`
	EngagementScore float64  `json:"engagementScore"`
	LastActive      *string  `json:"lastActive"`
	ActivityTypes   []string `json:"activityTypes"`
}

// TopSupporters projects the first n ranked supporters into their public
// shape. Supporters without a handle appear as "anonymous"; LastActive is
// RFC 3339 or null when no timestamp was recorded.
func TopSupporters(ranked []ScoredSupporter, n int) []TopSupporter {
	if n > len(ranked) {
		n = len(ranked)
	}

	top := make([]TopSupporter, 0, n)
	for _, s := range ranked[:n] {
		handle := s.Profile.Handle
		if handle == "" {
			handle = "anonymous"
		}

		var lastActive *string
		if !s.LastActivityAt.IsZero() {
			v := s.LastActivityAt.UTC().Format(time.RFC3339)
			lastActive = &v
		}

		top = append(top, TopSupporter{
			ID:              s.Profile.UserID,
			Name:            s.Profile.DisplayName,
			Handle:          handle,
			Avatar:          s.Profile.AvatarURL,
			EngagementScore: s.Score,
			LastActive:      lastActive,
			ActivityTypes:   s.ActivityLabels,
		})
	}

	return top
}
