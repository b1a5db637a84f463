package digest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/CategoryLeaders/productlobby-sub003/internal/logger"
	"github.com/CategoryLeaders/productlobby-sub003/internal/mailer"
	"github.com/CategoryLeaders/productlobby-sub003/internal/models"
)

// CampaignDigest is the weekly headline numbers for one campaign.
type CampaignDigest struct {
	Title               string
	NewLobbies          int
	NewPledges          int
	NewComments         int
	NewPricingResponses int
}

// Store is the persistence surface the digest job needs. Implemented by
// repository.DigestRepository; tests use in-memory fakes.
type Store interface {
	ListCreatorsWithActiveCampaigns() ([]*models.User, error)
	ListActiveCampaigns(creatorID uint) ([]*models.Campaign, error)
	CampaignDigest(campaignID uint, since time.Time) (*CampaignDigest, error)
	StampDigestSent(creatorID uint, at time.Time) error
	GetCreator(id uint) (*models.User, error)
}

// CreatorResult records the outcome of one creator's digest send.
type CreatorResult struct {
	CreatorID uint   `json:"creator_id"`
	Email     string `json:"email"`
	Sent      bool   `json:"sent"`
	Reason    string `json:"reason,omitempty"`
}

// Result summarizes one digest run. Every eligible creator appears exactly
// once in Results, whether their send succeeded or failed.
type Result struct {
	Sent    int             `json:"sent"`
	Failed  int             `json:"failed"`
	Results []CreatorResult `json:"results"`
}

type Service struct {
	store  Store
	mailer mailer.Sender
	log    *logger.Logger
}

func NewService(store Store, sender mailer.Sender, log *logger.Logger) *Service {
	if log == nil {
		log = logger.New("info")
	}
	return &Service{store: store, mailer: sender, log: log.WithPrefix("digest")}
}

// Run sends the weekly digest to every creator with at least one active
// campaign. One creator's failure never aborts the batch; it is captured as
// that creator's result instead. A fatal error still returns a well-formed
// zero-progress Result.
func (s *Service) Run(ctx context.Context) (result *Result) {
	result = &Result{Results: []CreatorResult{}}

	defer func() {
		if r := recover(); r != nil {
			s.log.Error("Digest run panicked: %v", r)
			result = &Result{Results: []CreatorResult{}}
		}
	}()

	creators, err := s.store.ListCreatorsWithActiveCampaigns()
	if err != nil {
		s.log.Error("Digest run aborted, cannot list creators: %v", err)
		return result
	}

	for _, creator := range creators {
		if ctx.Err() != nil {
			s.log.Warn("Digest run cancelled after %d creators", len(result.Results))
			break
		}

		res := s.sendToCreator(creator)
		result.Results = append(result.Results, res)
		if res.Sent {
			result.Sent++
		} else {
			result.Failed++
		}
	}

	s.log.Info("Weekly digest: sent %d, failed %d", result.Sent, result.Failed)

	return result
}

// Preview renders a creator's digest body without sending anything or
// stamping LastDigestSentAt.
func (s *Service) Preview(creatorID uint) (string, error) {
	creator, err := s.store.GetCreator(creatorID)
	if err != nil {
		return "", fmt.Errorf("creator %d: %w", creatorID, err)
	}

	since := time.Now().AddDate(0, 0, -7)
	if creator.LastDigestSentAt != nil && creator.LastDigestSentAt.After(since) {
		since = *creator.LastDigestSentAt
	}

	campaigns, err := s.store.ListActiveCampaigns(creator.ID)
	if err != nil {
		return "", fmt.Errorf("list campaigns: %w", err)
	}

	digests := make([]*CampaignDigest, 0, len(campaigns))
	for _, c := range campaigns {
		d, err := s.store.CampaignDigest(c.ID, since)
		if err != nil {
			return "", fmt.Errorf("campaign %s: %w", c.Slug, err)
		}
		digests = append(digests, d)
	}

	return renderBody(creator, digests, since), nil
}

// RunForCreator sends a single creator's digest, outside the schedule.
func (s *Service) RunForCreator(creatorID uint) (*Result, error) {
	creator, err := s.store.GetCreator(creatorID)
	if err != nil {
		return nil, fmt.Errorf("creator %d: %w", creatorID, err)
	}

	res := s.sendToCreator(creator)
	result := &Result{Results: []CreatorResult{res}}
	if res.Sent {
		result.Sent = 1
	} else {
		result.Failed = 1
	}

	return result, nil
}

// sendToCreator builds and sends one creator's digest. Any failure, panics
// included, is captured in the returned result rather than propagated.
func (s *Service) sendToCreator(creator *models.User) (res CreatorResult) {
	res = CreatorResult{CreatorID: creator.ID, Email: creator.Email}

	defer func() {
		if r := recover(); r != nil {
			res.Sent = false
			res.Reason = fmt.Sprintf("panic during send: %v", r)
		}
	}()

	since := time.Now().AddDate(0, 0, -7)
	if creator.LastDigestSentAt != nil && creator.LastDigestSentAt.After(since) {
		since = *creator.LastDigestSentAt
	}

	campaigns, err := s.store.ListActiveCampaigns(creator.ID)
	if err != nil {
		res.Reason = fmt.Sprintf("failed to list campaigns: %v", err)
		return res
	}

	if len(campaigns) == 0 {
		res.Reason = "no active campaigns"
		return res
	}

	digests := make([]*CampaignDigest, 0, len(campaigns))
	for _, c := range campaigns {
		d, err := s.store.CampaignDigest(c.ID, since)
		if err != nil {
			res.Reason = fmt.Sprintf("failed to build digest for campaign %s: %v", c.Slug, err)
			return res
		}
		digests = append(digests, d)
	}

	msg := mailer.Message{
		To:      creator.Email,
		Subject: "Your ProductLobby week in review",
		Body:    renderBody(creator, digests, since),
	}

	if err := s.mailer.Send(msg); err != nil {
		res.Reason = err.Error()
		return res
	}

	res.Sent = true

	// Best effort: a failed stamp means the next run re-covers this window,
	// which is safe because sends are idempotent per week.
	if err := s.store.StampDigestSent(creator.ID, time.Now()); err != nil {
		s.log.Warn("Failed to stamp digest for creator %d: %v", creator.ID, err)
	}

	return res
}

func renderBody(creator *models.User, digests []*CampaignDigest, since time.Time) string {
	var b strings.Builder

	name := creator.DisplayName
	if name == "" {
		name = "there"
	}

	fmt.Fprintf(&b, "Hi %s,\n\n", name)
	fmt.Fprintf(&b, "Here is what supporters did on your campaigns since %s:\n\n", since.Format("Mon 2 Jan"))

	for _, d := range digests {
		fmt.Fprintf(&b, "%s\n", d.Title)
		fmt.Fprintf(&b, "  • %d new lobbies\n", d.NewLobbies)
		fmt.Fprintf(&b, "  • %d new pledges\n", d.NewPledges)
		fmt.Fprintf(&b, "  • %d new comments\n", d.NewComments)
		fmt.Fprintf(&b, "  • %d new pricing responses\n\n", d.NewPricingResponses)
	}

	b.WriteString("See the full picture on your dashboard.\n\n— ProductLobby\n")

	return b.String()
}
