package models

import "time"

// OTPSession keeps track of one-time codes sent to phones. Sessions are
// single-use: successful verification deletes the record.
type OTPSession struct {
	BaseModel
	Phone     string    `gorm:"index" json:"phone"`
	Code      string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
	Verified  bool      `json:"verified"`
}

// Expired reports whether the session is past its expiry window.
func (s *OTPSession) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
