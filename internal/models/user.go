package models

import (
	"time"
)

type User struct {
	BaseModel

	Email            string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash     string     `gorm:"not null" json:"-"`
	DisplayName      string     `json:"display_name"`
	Handle           string     `gorm:"uniqueIndex" json:"handle,omitempty"`
	AvatarURL        string     `json:"avatar_url,omitempty"`
	Timezone         string     `gorm:"default:'UTC'" json:"timezone"`
	IsActive         bool       `gorm:"default:true" json:"is_active"`
	LastActiveAt     *time.Time `json:"last_active_at,omitempty"`
	LastDigestSentAt *time.Time `json:"last_digest_sent_at,omitempty"`
}

func (*User) TableName() string {
	return "users"
}

// PublicHandle returns the handle shown to other supporters. Users who never
// picked one stay anonymous.
func (u *User) PublicHandle() string {
	if u.Handle == "" {
		return "anonymous"
	}
	return u.Handle
}
