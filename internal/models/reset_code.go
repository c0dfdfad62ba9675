package models

import "time"

// PasswordResetCode is a short-lived one-time code. The unique index on
// email enforces at most one row per address: issuing a new code
// replaces the previous one.
type PasswordResetCode struct {
	BaseModel
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Code      string    `gorm:"type:varchar(6);not null" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	Consumed  bool      `gorm:"default:false" json:"consumed"`
}

// Active reports whether the code can still be used at the given time.
func (c *PasswordResetCode) Active(now time.Time) bool {
	return !c.Consumed && now.Before(c.ExpiresAt)
}
