package digest

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/CategoryLeaders/productlobby-sub003/internal/mailer"
	"github.com/CategoryLeaders/productlobby-sub003/internal/models"
)

type mockStore struct {
	creators    []*models.User
	campaigns   map[uint][]*models.Campaign
	stamped     map[uint]time.Time
	listErr     error
	digestErr   error
	stampErr    error
	digestPanic bool
}

func newMockStore(creators ...*models.User) *mockStore {
	m := &mockStore{
		creators:  creators,
		campaigns: make(map[uint][]*models.Campaign),
		stamped:   make(map[uint]time.Time),
	}
	for _, c := range creators {
		campaign := &models.Campaign{Title: "Campaign", Slug: "campaign", Status: models.CampaignStatusActive}
		campaign.ID = c.ID * 10
		m.campaigns[c.ID] = []*models.Campaign{campaign}
	}
	return m
}

func (m *mockStore) ListCreatorsWithActiveCampaigns() ([]*models.User, error) {
	return m.creators, m.listErr
}

func (m *mockStore) ListActiveCampaigns(creatorID uint) ([]*models.Campaign, error) {
	return m.campaigns[creatorID], nil
}

func (m *mockStore) CampaignDigest(campaignID uint, since time.Time) (*CampaignDigest, error) {
	if m.digestPanic {
		panic("store blew up")
	}
	if m.digestErr != nil {
		return nil, m.digestErr
	}
	return &CampaignDigest{Title: "Campaign", NewLobbies: 3, NewPledges: 1}, nil
}

func (m *mockStore) StampDigestSent(creatorID uint, at time.Time) error {
	if m.stampErr != nil {
		return m.stampErr
	}
	m.stamped[creatorID] = at
	return nil
}

func (m *mockStore) GetCreator(id uint) (*models.User, error) {
	for _, c := range m.creators {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, errors.New("creator not found")
}

// failingMailer fails for one recipient and delivers to everyone else.
type failingMailer struct {
	failTo string
	sent   []mailer.Message
}

func (f *failingMailer) Send(msg mailer.Message) error {
	if msg.To == f.failTo {
		return errors.New("smtp: connection refused")
	}
	f.sent = append(f.sent, msg)
	return nil
}

func creator(id uint, email string) *models.User {
	u := &models.User{Email: email, DisplayName: "Creator", IsActive: true}
	u.ID = id
	return u
}

func TestRunPartialFailure(t *testing.T) {
	store := newMockStore(
		creator(1, "one@example.com"),
		creator(2, "two@example.com"),
		creator(3, "three@example.com"),
	)
	sender := &failingMailer{failTo: "two@example.com"}

	result := NewService(store, sender, nil).Run(context.Background())

	if len(result.Results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(result.Results))
	}

	if result.Sent != 2 {
		t.Errorf("Expected 2 sent, got %d", result.Sent)
	}

	if result.Failed != 1 {
		t.Errorf("Expected 1 failed, got %d", result.Failed)
	}

	for _, res := range result.Results {
		if res.CreatorID == 2 {
			if res.Sent {
				t.Error("Creator 2's send should have failed")
			}
			if res.Reason == "" {
				t.Error("Failed result must carry a non-empty reason")
			}
		}
	}
}

func TestRunStampsSentCreators(t *testing.T) {
	store := newMockStore(creator(1, "one@example.com"))
	sender := &failingMailer{}

	NewService(store, sender, nil).Run(context.Background())

	if _, ok := store.stamped[1]; !ok {
		t.Error("Expected LastDigestSentAt stamp for delivered digest")
	}
}

func TestRunStampFailureDoesNotFailSend(t *testing.T) {
	store := newMockStore(creator(1, "one@example.com"))
	store.stampErr = errors.New("db gone")
	sender := &failingMailer{}

	result := NewService(store, sender, nil).Run(context.Background())

	if result.Sent != 1 || result.Failed != 0 {
		t.Errorf("Stamp failure must not fail the send: %+v", result)
	}
}

func TestRunListFailureReturnsZeroProgress(t *testing.T) {
	store := newMockStore(creator(1, "one@example.com"))
	store.listErr = errors.New("db gone")

	result := NewService(store, &failingMailer{}, nil).Run(context.Background())

	if result == nil {
		t.Fatal("Expected well-formed result, got nil")
	}

	if result.Sent != 0 || result.Failed != 0 || len(result.Results) != 0 {
		t.Errorf("Expected zero-progress result, got %+v", result)
	}
}

func TestRunPerCreatorPanicIsCaptured(t *testing.T) {
	store := newMockStore(creator(1, "one@example.com"))
	store.digestPanic = true

	result := NewService(store, &failingMailer{}, nil).Run(context.Background())

	if result.Failed != 1 || len(result.Results) != 1 {
		t.Fatalf("Panic during one send must become a failed result: %+v", result)
	}

	if result.Results[0].Reason == "" {
		t.Error("Panic result must carry a reason")
	}
}

func TestRunSkipsCreatorsWithoutActiveCampaigns(t *testing.T) {
	store := newMockStore(creator(1, "one@example.com"))
	store.campaigns[1] = nil

	result := NewService(store, &failingMailer{}, nil).Run(context.Background())

	if result.Sent != 0 || result.Failed != 1 {
		t.Errorf("Creator without campaigns should fail with a reason: %+v", result)
	}
}

func TestRunForCreator(t *testing.T) {
	store := newMockStore(creator(7, "seven@example.com"))
	sender := &failingMailer{}

	result, err := NewService(store, sender, nil).RunForCreator(7)
	if err != nil {
		t.Fatalf("RunForCreator failed: %v", err)
	}

	if result.Sent != 1 || len(result.Results) != 1 {
		t.Errorf("Unexpected result: %+v", result)
	}

	if len(sender.sent) != 1 || sender.sent[0].To != "seven@example.com" {
		t.Errorf("Expected one mail to seven@example.com, got %+v", sender.sent)
	}
}

func TestRunForCreatorUnknown(t *testing.T) {
	store := newMockStore()

	if _, err := NewService(store, &failingMailer{}, nil).RunForCreator(99); err == nil {
		t.Error("Expected error for unknown creator")
	}
}

func TestPreviewDoesNotSendOrStamp(t *testing.T) {
	store := newMockStore(creator(7, "seven@example.com"))
	sender := &failingMailer{}

	body, err := NewService(store, sender, nil).Preview(7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(body, "3 new lobbies") {
		t.Errorf("expected campaign numbers in body, got:\n%s", body)
	}
	if len(sender.sent) != 0 {
		t.Errorf("preview must not send mail, sent %d", len(sender.sent))
	}
	if len(store.stamped) != 0 {
		t.Errorf("preview must not stamp LastDigestSentAt")
	}
}
