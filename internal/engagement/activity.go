package engagement

// ActivityType identifies one of the eight supporter interactions that feed
// the engagement score. Counters are held in arrays indexed by ActivityType,
// so adding a value here without extending numActivityTypes is impossible to
// get past the compiler.
type ActivityType int

const (
	ActivityLobby ActivityType = iota
	ActivityPledge
	ActivityPollVote
	ActivityComment
	ActivityShare
	ActivityBookmark
	ActivityReaction
	ActivityFollow

	numActivityTypes // keep last
)

// NumActivityTypes is the number of distinct activity types (8).
const NumActivityTypes = int(numActivityTypes)

var activityLabels = [NumActivityTypes]string{
	ActivityLobby:    "Lobby",
	ActivityPledge:   "Pledge",
	ActivityPollVote: "Poll Vote",
	ActivityComment:  "Comment",
	ActivityShare:    "Share",
	ActivityBookmark: "Bookmark",
	ActivityReaction: "Reaction",
	ActivityFollow:   "Follow",
}

func (t ActivityType) Label() string {
	if t < 0 || t >= numActivityTypes {
		return "Unknown"
	}
	return activityLabels[t]
}

// Valid reports whether t is one of the eight known activity types.
func (t ActivityType) Valid() bool {
	return t >= 0 && t < numActivityTypes
}
