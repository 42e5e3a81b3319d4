package models

import "time"

// User uygulama hesabı. Takvim sahipleri, alıcılar ve yöneticiler aynı tabloda tutulur.
type User struct {
	BaseModel
	Name            string     `gorm:"type:varchar(255);not null"`
	Email           string     `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash    string     `gorm:"type:varchar(255);not null"`
	IsAdmin         bool       `gorm:"default:false;index"`
	EmailVerifiedAt *time.Time `gorm:"type:timestamptz"`
}

// IsVerified e-posta doğrulaması yapılmış mı.
func (u *User) IsVerified() bool {
	return u.EmailVerifiedAt != nil
}
