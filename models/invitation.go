package models

import "time"

// Davetin geçerlilik süresi.
const InvitationTTL = 7 * 24 * time.Hour

// Invitation tek kullanımlık, süresi sınırlı davet. Token benzersiz ve
// tahmin edilemezdir; kabul edildiğinde kullanıcıya bağlanır ve bir daha kullanılamaz.
type Invitation struct {
	BaseModel
	Email      string     `gorm:"type:varchar(255);not null;index"`
	Token      string     `gorm:"type:varchar(64);uniqueIndex;not null"`
	CalendarID *uint      `gorm:"index"`
	UserID     *uint      `gorm:"index"`
	ExpiresAt  time.Time  `gorm:"type:timestamptz;not null;index"`
	AcceptedAt *time.Time `gorm:"type:timestamptz"`

	Calendar *Calendar `gorm:"foreignKey:CalendarID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	User     *User     `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
}

// IsExpired davetin süresi geçmiş mi.
func (i *Invitation) IsExpired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}

// IsAccepted davet daha önce kabul edilmiş mi (terminal durum).
func (i *Invitation) IsAccepted() bool {
	return i.AcceptedAt != nil
}
