package models

const (
	IntensityNeatIdea    = "neat_idea"
	IntensityProbablyBuy = "probably_buy"
	IntensityTakeMyMoney = "take_my_money"
)

// PricingResponse is one supporter's price-ceiling submission for a campaign:
// the most they would pay, tagged with a self-reported purchase-interest tier.
type PricingResponse struct {
	BaseModel

	UserID     uint     `gorm:"not null;uniqueIndex:idx_pricing_user_campaign" json:"user_id"`
	User       User     `gorm:"foreignKey:UserID" json:"-"`
	CampaignID uint     `gorm:"not null;uniqueIndex:idx_pricing_user_campaign" json:"campaign_id"`
	Campaign   Campaign `gorm:"foreignKey:CampaignID" json:"-"`

	PricePence int    `gorm:"not null" json:"price_pence"`
	Intensity  string `gorm:"index;not null" json:"intensity"`
}

func (*PricingResponse) TableName() string {
	return "pricing_responses"
}

func ValidIntensity(s string) bool {
	switch s {
	case IntensityNeatIdea, IntensityProbablyBuy, IntensityTakeMyMoney:
		return true
	}
	return false
}
