package engagement

// ActivitySource supplies the persisted activity data the pipeline folds. The
// repository layer implements it; tests supply in-memory fakes.
type ActivitySource interface {
	ListByCampaign(campaignID uint) ([]ActivityRecord, error)
	PlatformActivityCount() (int64, error)
	CountUsers() (int64, error)
}

// Report is the full engagement picture for one campaign.
type Report struct {
	Distribution           Distribution   `json:"distribution"`
	TopSupporters          []TopSupporter `json:"topSupporters"`
	AverageEngagementScore float64        `json:"averageEngagementScore"`
	PlatformAverageScore   float64        `json:"platformAverageScore"`
	TotalSupporters        int            `json:"totalSupporters"`
}

type Service struct {
	source ActivitySource
}

func NewService(source ActivitySource) *Service {
	return &Service{source: source}
}

// BuildReport runs the full pipeline for a campaign: fetch, aggregate, score,
// rank, bucket, extract the top 5, and attach the platform baseline. A
// campaign with zero supporters yields a well-formed zero report.
func (s *Service) BuildReport(campaignID uint) (*Report, error) {
	records, err := s.source.ListByCampaign(campaignID)
	if err != nil {
		return nil, err
	}

	supporters := Aggregate(records)
	ranked := Rank(supporters)

	report := &Report{
		Distribution:    Distribute(ranked),
		TopSupporters:   TopSupporters(ranked, 5),
		TotalSupporters: len(ranked),
	}

	if len(ranked) > 0 {
		sum := 0.0
		for _, r := range ranked {
			sum += r.Score
		}
		report.AverageEngagementScore = round2(sum / float64(len(ranked)))
	}

	totalActivities, err := s.source.PlatformActivityCount()
	if err != nil {
		return nil, err
	}

	totalUsers, err := s.source.CountUsers()
	if err != nil {
		return nil, err
	}

	report.PlatformAverageScore = PlatformAverage(totalActivities, totalUsers)

	return report, nil
}
