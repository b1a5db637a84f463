package repository

import (
	"time"

	"github.com/CategoryLeaders/productlobby-sub003/internal/digest"
	"github.com/CategoryLeaders/productlobby-sub003/internal/models"
	"gorm.io/gorm"
)

// DigestRepositoryImpl implements digest.Store over gorm.
type DigestRepositoryImpl struct {
	db *gorm.DB
}

func NewDigestRepository(db *gorm.DB) digest.Store {
	return &DigestRepositoryImpl{db: db}
}

func (d *DigestRepositoryImpl) ListCreatorsWithActiveCampaigns() ([]*models.User, error) {
	var creators []*models.User
	err := d.db.
		Where("is_active = ?", true).
		Where("id IN (?)", d.db.Model(&models.Campaign{}).
			Select("creator_id").
			Where("status = ?", models.CampaignStatusActive)).
		Find(&creators).Error
	if err != nil {
		return nil, err
	}

	return creators, nil
}

func (d *DigestRepositoryImpl) ListActiveCampaigns(creatorID uint) ([]*models.Campaign, error) {
	var campaigns []*models.Campaign
	err := d.db.
		Where("creator_id = ? AND status = ?", creatorID, models.CampaignStatusActive).
		Find(&campaigns).Error
	if err != nil {
		return nil, err
	}

	return campaigns, nil
}

func (d *DigestRepositoryImpl) CampaignDigest(campaignID uint, since time.Time) (*digest.CampaignDigest, error) {
	var campaign models.Campaign
	if err := d.db.First(&campaign, campaignID).Error; err != nil {
		return nil, err
	}

	cd := &digest.CampaignDigest{Title: campaign.Title}

	counts := []struct {
		model interface{}
		dest  *int
	}{
		{&models.Lobby{}, &cd.NewLobbies},
		{&models.Pledge{}, &cd.NewPledges},
		{&models.Comment{}, &cd.NewComments},
		{&models.PricingResponse{}, &cd.NewPricingResponses},
	}

	for _, c := range counts {
		var n int64
		err := d.db.Model(c.model).
			Where("campaign_id = ? AND created_at >= ?", campaignID, since).
			Count(&n).Error
		if err != nil {
			return nil, err
		}
		*c.dest = int(n)
	}

	return cd, nil
}

func (d *DigestRepositoryImpl) StampDigestSent(creatorID uint, at time.Time) error {
	return d.db.Model(&models.User{}).
		Where("id = ?", creatorID).
		Update("last_digest_sent_at", at).Error
}

func (d *DigestRepositoryImpl) GetCreator(id uint) (*models.User, error) {
	var creator models.User
	if err := d.db.First(&creator, id).Error; err != nil {
		return nil, err
	}

	return &creator, nil
}
