package repository

import (
	"errors"

	"github.com/CategoryLeaders/productlobby-sub003/internal/models"
	"github.com/CategoryLeaders/productlobby-sub003/internal/pricing"
	"gorm.io/gorm"
)

// ErrDuplicateResponse is returned when a supporter has already submitted a
// pricing response for the campaign.
var ErrDuplicateResponse = errors.New("pricing response already submitted")

type PricingRepository interface {
	Create(response *models.PricingResponse) error
	ListByCampaign(campaignID uint) ([]pricing.Response, error)
}

type PricingRepositoryImpl struct {
	db *gorm.DB
}

func NewPricingRepository(db *gorm.DB) PricingRepository {
	return &PricingRepositoryImpl{db: db}
}

func (p *PricingRepositoryImpl) Create(response *models.PricingResponse) error {
	err := p.db.Create(response).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateResponse
	}
	return err
}

func (p *PricingRepositoryImpl) ListByCampaign(campaignID uint) ([]pricing.Response, error) {
	var rows []models.PricingResponse
	err := p.db.Where("campaign_id = ?", campaignID).Find(&rows).Error
	if err != nil {
		return nil, err
	}

	responses := make([]pricing.Response, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, pricing.Response{
			PricePence: row.PricePence,
			Intensity:  row.Intensity,
		})
	}

	return responses, nil
}
