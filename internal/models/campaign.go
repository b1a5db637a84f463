package models

import "github.com/lib/pq"

const (
	CampaignStatusDraft    = "draft"
	CampaignStatusActive   = "active"
	CampaignStatusFunded   = "funded"
	CampaignStatusArchived = "archived"
)

type Campaign struct {
	BaseModel

	PublicID    string `gorm:"uniqueIndex;not null" json:"public_id"` // UUID exposed in URLs
	Slug        string `gorm:"uniqueIndex;not null" json:"slug"`
	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Category    string `gorm:"index" json:"category"`
	ImageURL    string `json:"image_url,omitempty"`
	Status      string `gorm:"index;default:'draft'" json:"status"`

	Tags pq.StringArray `gorm:"type:text[]" json:"tags,omitempty"`

	CreatorID uint `gorm:"index;not null" json:"creator_id"`
	Creator   User `gorm:"foreignKey:CreatorID" json:"-"`
}

func (*Campaign) TableName() string {
	return "campaigns"
}

func (c *Campaign) IsActive() bool {
	return c.Status == CampaignStatusActive
}
