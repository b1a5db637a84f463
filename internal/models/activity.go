package models

// The eight supporter activity entities. Each row records one interaction of
// one user with one campaign. Lobby, Bookmark and Follow are single-shot per
// (user, campaign); the rest can repeat.

type Lobby struct {
	BaseModel

	UserID     uint     `gorm:"not null;uniqueIndex:idx_lobby_user_campaign" json:"user_id"`
	User       User     `gorm:"foreignKey:UserID" json:"-"`
	CampaignID uint     `gorm:"not null;uniqueIndex:idx_lobby_user_campaign" json:"campaign_id"`
	Campaign   Campaign `gorm:"foreignKey:CampaignID" json:"-"`
}

func (*Lobby) TableName() string {
	return "lobbies"
}

type Pledge struct {
	BaseModel

	UserID      uint     `gorm:"index;not null" json:"user_id"`
	User        User     `gorm:"foreignKey:UserID" json:"-"`
	CampaignID  uint     `gorm:"index;not null" json:"campaign_id"`
	Campaign    Campaign `gorm:"foreignKey:CampaignID" json:"-"`
	AmountPence int      `gorm:"not null" json:"amount_pence"`
}

func (*Pledge) TableName() string {
	return "pledges"
}

type PollVote struct {
	BaseModel

	UserID     uint     `gorm:"index;not null" json:"user_id"`
	User       User     `gorm:"foreignKey:UserID" json:"-"`
	CampaignID uint     `gorm:"index;not null" json:"campaign_id"`
	Campaign   Campaign `gorm:"foreignKey:CampaignID" json:"-"`
	PollID     uint     `gorm:"index" json:"poll_id"`
	Option     string   `json:"option"`
}

func (*PollVote) TableName() string {
	return "poll_votes"
}

type Comment struct {
	BaseModel

	UserID     uint     `gorm:"index;not null" json:"user_id"`
	User       User     `gorm:"foreignKey:UserID" json:"-"`
	CampaignID uint     `gorm:"index;not null" json:"campaign_id"`
	Campaign   Campaign `gorm:"foreignKey:CampaignID" json:"-"`
	Body       string   `gorm:"type:text;not null" json:"body"`
}

func (*Comment) TableName() string {
	return "comments"
}

type Share struct {
	BaseModel

	UserID     uint     `gorm:"index;not null" json:"user_id"`
	User       User     `gorm:"foreignKey:UserID" json:"-"`
	CampaignID uint     `gorm:"index;not null" json:"campaign_id"`
	Campaign   Campaign `gorm:"foreignKey:CampaignID" json:"-"`
	Channel    string   `json:"channel"` // twitter, whatsapp, link, ...
}

func (*Share) TableName() string {
	return "shares"
}

type Bookmark struct {
	BaseModel

	UserID     uint     `gorm:"not null;uniqueIndex:idx_bookmark_user_campaign" json:"user_id"`
	User       User     `gorm:"foreignKey:UserID" json:"-"`
	CampaignID uint     `gorm:"not null;uniqueIndex:idx_bookmark_user_campaign" json:"campaign_id"`
	Campaign   Campaign `gorm:"foreignKey:CampaignID" json:"-"`
}

func (*Bookmark) TableName() string {
	return "bookmarks"
}

type Reaction struct {
	BaseModel

	UserID     uint     `gorm:"index;not null" json:"user_id"`
	User       User     `gorm:"foreignKey:UserID" json:"-"`
	CampaignID uint     `gorm:"index;not null" json:"campaign_id"`
	Campaign   Campaign `gorm:"foreignKey:CampaignID" json:"-"`
	Emoji      string   `gorm:"not null" json:"emoji"`
}

func (*Reaction) TableName() string {
	return "reactions"
}

type Follow struct {
	BaseModel

	UserID     uint     `gorm:"not null;uniqueIndex:idx_follow_user_campaign" json:"user_id"`
	User       User     `gorm:"foreignKey:UserID" json:"-"`
	CampaignID uint     `gorm:"not null;uniqueIndex:idx_follow_user_campaign" json:"campaign_id"`
	Campaign   Campaign `gorm:"foreignKey:CampaignID" json:"-"`
}

func (*Follow) TableName() string {
	return "follows"
}
