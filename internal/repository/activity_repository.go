package repository

import (
	"errors"
	"time"

	"github.com/CategoryLeaders/productlobby-sub003/internal/engagement"
	"github.com/CategoryLeaders/productlobby-sub003/internal/models"
	"gorm.io/gorm"
)

// ErrDuplicateActivity is returned when a single-shot activity (lobby,
// bookmark, follow) already exists for the (user, campaign) pair.
var ErrDuplicateActivity = errors.New("activity already recorded")

type ActivityRepository interface {
	CreateLobby(l *models.Lobby) error
	CreatePledge(p *models.Pledge) error
	CreatePollVote(v *models.PollVote) error
	CreateComment(c *models.Comment) error
	CreateShare(s *models.Share) error
	CreateBookmark(b *models.Bookmark) error
	CreateReaction(r *models.Reaction) error
	CreateFollow(f *models.Follow) error

	// ListByCampaign flattens all eight activity tables into unified records
	// with user projections, for the engagement pipeline.
	ListByCampaign(campaignID uint) ([]engagement.ActivityRecord, error)
	PlatformActivityCount() (int64, error)
	CountUsers() (int64, error)
}

type ActivityRepositoryImpl struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &ActivityRepositoryImpl{db: db}
}

func (r *ActivityRepositoryImpl) CreateLobby(l *models.Lobby) error {
	return translateDuplicate(r.db.Create(l).Error)
}

func (r *ActivityRepositoryImpl) CreatePledge(p *models.Pledge) error {
	return r.db.Create(p).Error
}

func (r *ActivityRepositoryImpl) CreatePollVote(v *models.PollVote) error {
	return r.db.Create(v).Error
}

func (r *ActivityRepositoryImpl) CreateComment(c *models.Comment) error {
	return r.db.Create(c).Error
}

func (r *ActivityRepositoryImpl) CreateShare(s *models.Share) error {
	return r.db.Create(s).Error
}

func (r *ActivityRepositoryImpl) CreateBookmark(b *models.Bookmark) error {
	return translateDuplicate(r.db.Create(b).Error)
}

func (r *ActivityRepositoryImpl) CreateReaction(re *models.Reaction) error {
	return r.db.Create(re).Error
}

func (r *ActivityRepositoryImpl) CreateFollow(f *models.Follow) error {
	return translateDuplicate(r.db.Create(f).Error)
}

func translateDuplicate(err error) error {
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateActivity
	}
	return err
}

func (r *ActivityRepositoryImpl) ListByCampaign(campaignID uint) ([]engagement.ActivityRecord, error) {
	var records []engagement.ActivityRecord

	appendRecords := func(user models.User, t engagement.ActivityType, at time.Time) {
		records = append(records, engagement.ActivityRecord{
			User: engagement.UserProfile{
				UserID:      user.ID,
				DisplayName: user.DisplayName,
				Handle:      user.Handle,
				AvatarURL:   user.AvatarURL,
			},
			Type:       t,
			OccurredAt: at,
			CampaignID: campaignID,
		})
	}

	var lobbies []models.Lobby
	if err := r.findByCampaign(campaignID, &lobbies); err != nil {
		return nil, err
	}
	for _, l := range lobbies {
		appendRecords(l.User, engagement.ActivityLobby, l.CreatedAt)
	}

	var pledges []models.Pledge
	if err := r.findByCampaign(campaignID, &pledges); err != nil {
		return nil, err
	}
	for _, p := range pledges {
		appendRecords(p.User, engagement.ActivityPledge, p.CreatedAt)
	}

	var votes []models.PollVote
	if err := r.findByCampaign(campaignID, &votes); err != nil {
		return nil, err
	}
	for _, v := range votes {
		appendRecords(v.User, engagement.ActivityPollVote, v.CreatedAt)
	}

	var comments []models.Comment
	if err := r.findByCampaign(campaignID, &comments); err != nil {
		return nil, err
	}
	for _, c := range comments {
		appendRecords(c.User, engagement.ActivityComment, c.CreatedAt)
	}

	var shares []models.Share
	if err := r.findByCampaign(campaignID, &shares); err != nil {
		return nil, err
	}
	for _, s := range shares {
		appendRecords(s.User, engagement.ActivityShare, s.CreatedAt)
	}

	var bookmarks []models.Bookmark
	if err := r.findByCampaign(campaignID, &bookmarks); err != nil {
		return nil, err
	}
	for _, b := range bookmarks {
		appendRecords(b.User, engagement.ActivityBookmark, b.CreatedAt)
	}

	var reactions []models.Reaction
	if err := r.findByCampaign(campaignID, &reactions); err != nil {
		return nil, err
	}
	for _, re := range reactions {
		appendRecords(re.User, engagement.ActivityReaction, re.CreatedAt)
	}

	var follows []models.Follow
	if err := r.findByCampaign(campaignID, &follows); err != nil {
		return nil, err
	}
	for _, f := range follows {
		appendRecords(f.User, engagement.ActivityFollow, f.CreatedAt)
	}

	return records, nil
}

func (r *ActivityRepositoryImpl) findByCampaign(campaignID uint, dest interface{}) error {
	return r.db.Preload("User").Where("campaign_id = ?", campaignID).Find(dest).Error
}

// PlatformActivityCount totals activity rows of all eight types across every
// campaign. Feeds the platform engagement baseline.
func (r *ActivityRepositoryImpl) PlatformActivityCount() (int64, error) {
	tables := []interface{}{
		&models.Lobby{}, &models.Pledge{}, &models.PollVote{}, &models.Comment{},
		&models.Share{}, &models.Bookmark{}, &models.Reaction{}, &models.Follow{},
	}

	var total int64
	for _, table := range tables {
		var count int64
		if err := r.db.Model(table).Count(&count).Error; err != nil {
			return 0, err
		}
		total += count
	}

	return total, nil
}

func (r *ActivityRepositoryImpl) CountUsers() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}
