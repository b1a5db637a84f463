package repository

import (
	"errors"

	"github.com/CategoryLeaders/productlobby-sub003/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CampaignRepository interface {
	Create(campaign *models.Campaign) error
	// GetByIdentifier resolves a campaign by its public UUID or slug.
	GetByIdentifier(identifier string) (*models.Campaign, error)
	GetByID(id uint) (*models.Campaign, error)
	Update(campaign *models.Campaign) error
	List(offset, limit int) ([]*models.Campaign, error)
	ListByCreator(creatorID uint) ([]*models.Campaign, error)
}

type CampaignRepositoryImpl struct {
	db *gorm.DB
}

func NewCampaignRepository(db *gorm.DB) CampaignRepository {
	return &CampaignRepositoryImpl{db: db}
}

func (c *CampaignRepositoryImpl) Create(campaign *models.Campaign) error {
	if campaign.PublicID == "" {
		campaign.PublicID = uuid.NewString()
	}
	return c.db.Create(campaign).Error
}

func (c *CampaignRepositoryImpl) GetByIdentifier(identifier string) (*models.Campaign, error) {
	var campaign models.Campaign

	query := c.db.Where("slug = ?", identifier)
	if _, err := uuid.Parse(identifier); err == nil {
		query = c.db.Where("public_id = ?", identifier)
	}

	err := query.First(&campaign).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &campaign, nil
}

func (c *CampaignRepositoryImpl) GetByID(id uint) (*models.Campaign, error) {
	var campaign models.Campaign
	err := c.db.First(&campaign, id).Error
	if err != nil {
		return nil, err
	}

	return &campaign, nil
}

func (c *CampaignRepositoryImpl) Update(campaign *models.Campaign) error {
	return c.db.Save(campaign).Error
}

func (c *CampaignRepositoryImpl) List(offset, limit int) ([]*models.Campaign, error) {
	var campaigns []*models.Campaign
	err := c.db.Where("status = ?", models.CampaignStatusActive).
		Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&campaigns).Error
	if err != nil {
		return nil, err
	}

	return campaigns, nil
}

func (c *CampaignRepositoryImpl) ListByCreator(creatorID uint) ([]*models.Campaign, error) {
	var campaigns []*models.Campaign
	err := c.db.Where("creator_id = ?", creatorID).Find(&campaigns).Error
	if err != nil {
		return nil, err
	}

	return campaigns, nil
}
