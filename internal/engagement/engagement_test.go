package engagement

import (
	"math"
	"testing"
	"time"
)

func record(userID uint, t ActivityType, at time.Time) ActivityRecord {
	return ActivityRecord{
		User:       UserProfile{UserID: userID, DisplayName: "User", Handle: "user"},
		Type:       t,
		OccurredAt: at,
		CampaignID: 1,
	}
}

func allTypes() []ActivityType {
	return []ActivityType{
		ActivityLobby, ActivityPledge, ActivityPollVote, ActivityComment,
		ActivityShare, ActivityBookmark, ActivityReaction, ActivityFollow,
	}
}

func TestAggregateCountsAndLastActivity(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	latest := base.Add(48 * time.Hour)

	// Latest timestamp arrives in the middle of the input, not last.
	records := []ActivityRecord{
		record(1, ActivityLobby, base),
		record(1, ActivityComment, latest),
		record(1, ActivityComment, base.Add(time.Hour)),
		record(2, ActivityPledge, base),
	}

	supporters := Aggregate(records)

	if len(supporters) != 2 {
		t.Fatalf("Expected 2 supporters, got %d", len(supporters))
	}

	se := supporters[1]
	if se.Counts[ActivityLobby] != 1 || se.Counts[ActivityComment] != 2 {
		t.Errorf("Unexpected counts: %v", se.Counts)
	}

	if !se.LastActivityAt.Equal(latest) {
		t.Errorf("Expected last activity %v, got %v", latest, se.LastActivityAt)
	}
}

func TestAggregateSkipsInvalidType(t *testing.T) {
	records := []ActivityRecord{
		{User: UserProfile{UserID: 1}, Type: ActivityType(99)},
	}

	if got := Aggregate(records); len(got) != 0 {
		t.Errorf("Expected invalid types to be skipped, got %d supporters", len(got))
	}
}

func TestScoreSingleLobby(t *testing.T) {
	supporters := Aggregate([]ActivityRecord{
		record(1, ActivityLobby, time.Now()),
	})

	se := supporters[1]
	got := Score(se)

	// min(1/10, 1)*60 = 6, (1/8)*40 = 5, (6+5)/10 = 1.1
	if got != 1.1 {
		t.Errorf("Expected score 1.1, got %v", got)
	}

	labels := se.ActivityLabels()
	if len(labels) != 1 || labels[0] != "Lobby" {
		t.Errorf("Expected activity types [Lobby], got %v", labels)
	}
}

func TestScoreOneOfEachType(t *testing.T) {
	var records []ActivityRecord
	for _, at := range allTypes() {
		records = append(records, record(1, at, time.Now()))
	}

	supporters := Aggregate(records)

	// frequency = min(8/10,1)*60 = 48, variety = (8/8)*40 = 40 -> 8.8
	if got := Score(supporters[1]); got != 8.8 {
		t.Errorf("Expected score 8.8, got %v", got)
	}
}

func TestScoreBounds(t *testing.T) {
	tests := []struct {
		name   string
		counts [NumActivityTypes]int
	}{
		{"empty", [NumActivityTypes]int{}},
		{"single", [NumActivityTypes]int{1}},
		{"heavy", [NumActivityTypes]int{500, 500, 500, 500, 500, 500, 500, 500}},
		{"one type many times", [NumActivityTypes]int{1000}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			se := &SupporterEngagement{Counts: tt.counts}
			score := Score(se)
			if score < 0 || score > 10 {
				t.Errorf("Score %v out of [0,10]", score)
			}
		})
	}
}

func TestScoreDeterministic(t *testing.T) {
	a := &SupporterEngagement{Counts: [NumActivityTypes]int{3, 0, 2, 1, 0, 0, 1, 0}}
	b := &SupporterEngagement{Counts: [NumActivityTypes]int{3, 0, 2, 1, 0, 0, 1, 0}}
	b.Profile.UserID = 99

	if Score(a) != Score(b) {
		t.Errorf("Identical counters must score identically: %v vs %v", Score(a), Score(b))
	}
}

func TestRankOrdering(t *testing.T) {
	now := time.Now()
	var records []ActivityRecord

	// User 1: one of each type (8.8). User 2: single lobby (1.1).
	// Users 3 and 4: identical pledge + comment (2.2 tie).
	for _, at := range allTypes() {
		records = append(records, record(1, at, now))
	}
	records = append(records,
		record(2, ActivityLobby, now),
		record(4, ActivityPledge, now),
		record(4, ActivityComment, now),
		record(3, ActivityPledge, now),
		record(3, ActivityComment, now),
	)

	ranked := Rank(Aggregate(records))

	if len(ranked) != 4 {
		t.Fatalf("Expected 4 ranked supporters, got %d", len(ranked))
	}

	for i := 1; i < len(ranked); i++ {
		if ranked[i].Score > ranked[i-1].Score {
			t.Errorf("Ranking not descending at %d: %v > %v", i, ranked[i].Score, ranked[i-1].Score)
		}
	}

	if ranked[0].Profile.UserID != 1 {
		t.Errorf("Expected user 1 first, got %d", ranked[0].Profile.UserID)
	}

	// Tie resolved by ascending user ID.
	if ranked[1].Profile.UserID != 3 || ranked[2].Profile.UserID != 4 {
		t.Errorf("Expected tie order 3 then 4, got %d then %d", ranked[1].Profile.UserID, ranked[2].Profile.UserID)
	}

	if ranked[3].Profile.UserID != 2 {
		t.Errorf("Expected user 2 last, got %d", ranked[3].Profile.UserID)
	}
}

func TestDistributePercentages(t *testing.T) {
	ranked := []ScoredSupporter{
		{Score: 8.8}, {Score: 6.0}, {Score: 4.5}, {Score: 1.1},
	}

	dist := Distribute(ranked)

	if dist.HighEngagement.Count != 2 || dist.ModerateEngagement.Count != 1 || dist.LowEngagement.Count != 1 {
		t.Errorf("Unexpected bucket counts: %+v", dist)
	}

	sum := dist.HighEngagement.Percentage + dist.ModerateEngagement.Percentage + dist.LowEngagement.Percentage
	if sum < 99 || sum > 101 {
		t.Errorf("Percentages should sum to ~100, got %d", sum)
	}

	if dist.TotalSupporters != 4 {
		t.Errorf("Expected 4 total supporters, got %d", dist.TotalSupporters)
	}
}

func TestDistributeEmpty(t *testing.T) {
	dist := Distribute(nil)

	if dist.TotalSupporters != 0 {
		t.Errorf("Expected 0 supporters, got %d", dist.TotalSupporters)
	}

	if dist.HighEngagement.Percentage != 0 || dist.ModerateEngagement.Percentage != 0 || dist.LowEngagement.Percentage != 0 {
		t.Errorf("All percentages must be 0 with no supporters: %+v", dist)
	}
}

func TestTopSupportersProjection(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	var records []ActivityRecord
	for id := uint(1); id <= 7; id++ {
		rec := record(id, ActivityLobby, now)
		if id == 3 {
			rec.User.Handle = "" // never picked a handle
		}
		records = append(records, rec)
	}

	ranked := Rank(Aggregate(records))
	top := TopSupporters(ranked, 5)

	if len(top) != 5 {
		t.Fatalf("Expected 5 top supporters, got %d", len(top))
	}

	for i := 1; i < len(top); i++ {
		if top[i].EngagementScore > top[i-1].EngagementScore {
			t.Errorf("Top supporters not sorted descending at %d", i)
		}
	}

	anon := top[2]
	if anon.Handle != "anonymous" {
		t.Errorf("Expected handle 'anonymous' for user without one, got %q", anon.Handle)
	}

	if top[0].LastActive == nil || *top[0].LastActive != "2026-03-01T12:00:00Z" {
		t.Errorf("Unexpected lastActive: %v", top[0].LastActive)
	}
}

func TestTopSupportersShorterThanLimit(t *testing.T) {
	ranked := Rank(Aggregate([]ActivityRecord{record(1, ActivityLobby, time.Now())}))

	if got := TopSupporters(ranked, 5); len(got) != 1 {
		t.Errorf("Expected min(5, n) = 1 supporters, got %d", len(got))
	}
}

func TestPlatformAverage(t *testing.T) {
	tests := []struct {
		name       string
		activities int64
		users      int64
		expected   float64
	}{
		{"zero users", 500, 0, 0},
		{"no activity", 0, 100, 0},
		{"typical", 2500, 100, 2.5},
		{"rounded", 1234, 100, 1.23},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PlatformAverage(tt.activities, tt.users); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

type fakeSource struct {
	records    []ActivityRecord
	activities int64
	users      int64
}

func (f *fakeSource) ListByCampaign(campaignID uint) ([]ActivityRecord, error) {
	return f.records, nil
}

func (f *fakeSource) PlatformActivityCount() (int64, error) {
	return f.activities, nil
}

func (f *fakeSource) CountUsers() (int64, error) {
	return f.users, nil
}

func TestBuildReportEmptyCampaign(t *testing.T) {
	service := NewService(&fakeSource{})

	report, err := service.BuildReport(1)
	if err != nil {
		t.Fatalf("BuildReport failed: %v", err)
	}

	if report.TotalSupporters != 0 {
		t.Errorf("Expected 0 supporters, got %d", report.TotalSupporters)
	}

	if report.AverageEngagementScore != 0 || report.PlatformAverageScore != 0 {
		t.Errorf("Expected zero scores, got %+v", report)
	}

	if len(report.TopSupporters) != 0 {
		t.Errorf("Expected no top supporters, got %d", len(report.TopSupporters))
	}
}

func TestBuildReport(t *testing.T) {
	now := time.Now()
	source := &fakeSource{
		records: []ActivityRecord{
			record(1, ActivityLobby, now),
			record(1, ActivityPledge, now),
			record(2, ActivityLobby, now),
		},
		activities: 300,
		users:      10,
	}

	report, err := NewService(source).BuildReport(1)
	if err != nil {
		t.Fatalf("BuildReport failed: %v", err)
	}

	if report.TotalSupporters != 2 {
		t.Errorf("Expected 2 supporters, got %d", report.TotalSupporters)
	}

	if report.PlatformAverageScore != 3.0 {
		t.Errorf("Expected platform average 3.0, got %v", report.PlatformAverageScore)
	}

	// User 1: 2 activities, 2 types -> (12+10)/10 = 2.2. User 2: 1.1.
	expectedAvg := math.Round((2.2+1.1)/2*100) / 100
	if report.AverageEngagementScore != expectedAvg {
		t.Errorf("Expected average %v, got %v", expectedAvg, report.AverageEngagementScore)
	}
}
