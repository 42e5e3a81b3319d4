package models

import (
	"takvim.link/pkg/themes"

	"gorm.io/datatypes"
)

// Takvim yılı için izin verilen aralık.
const (
	CalendarYearMin = 2000
	CalendarYearMax = 2100
)

// Varsayılan ana renk (yeni takvimlerde kullanılır).
const DefaultPrimaryColor = "#ec4899"

// Calendar 31 günlük bir advent takvimi. Sahibi (owner) her zaman vardır;
// alıcı (recipient) yalnızca davet kabulüyle bağlanır.
type Calendar struct {
	BaseModel
	OwnerID     uint   `gorm:"index;not null"`
	RecipientID *uint  `gorm:"index"`
	Title       string `gorm:"type:varchar(255);not null"`
	Year        int    `gorm:"not null"`
	Description string `gorm:"type:text"`

	ThemeType      themes.ThemeType                              `gorm:"type:varchar(20);not null;default:'single'"`
	PrimaryColor   string                                        `gorm:"type:varchar(7);not null;default:'#ec4899'"`
	SecondaryColor *string                                       `gorm:"type:varchar(7)"`
	SeasonalConfig *datatypes.JSONType[themes.SeasonalConfig]    `gorm:"type:jsonb"`

	AudioURL *string `gorm:"type:varchar(2048)"`

	Owner     User          `gorm:"foreignKey:OwnerID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	Recipient *User         `gorm:"foreignKey:RecipientID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	Days      []CalendarDay `gorm:"foreignKey:CalendarID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// ThemeConfig tema çözümleme motorunun beklediği saf konfigürasyonu üretir.
func (c *Calendar) ThemeConfig() themes.Config {
	cfg := themes.Config{
		Type:      c.ThemeType,
		Primary:   c.PrimaryColor,
		Secondary: c.SecondaryColor,
	}
	if c.SeasonalConfig != nil {
		seasonal := c.SeasonalConfig.Data()
		cfg.Seasonal = &seasonal
	}
	return cfg
}

// PrimaryViewerID takvimin asıl izleyicisi: alıcı atanmışsa alıcı, yoksa sahip.
func (c *Calendar) PrimaryViewerID() uint {
	if c.RecipientID != nil {
		return *c.RecipientID
	}
	return c.OwnerID
}

// IsViewableBy kullanıcı bu takvimi görüntüleyebilir mi (sahip, alıcı veya admin).
func (c *Calendar) IsViewableBy(user *User) bool {
	if user == nil {
		return false
	}
	if user.IsAdmin || c.OwnerID == user.ID {
		return true
	}
	return c.RecipientID != nil && *c.RecipientID == user.ID
}

// IsManageableBy kullanıcı bu takvimi yönetebilir mi (sahip veya admin).
func (c *Calendar) IsManageableBy(user *User) bool {
	if user == nil {
		return false
	}
	return user.IsAdmin || c.OwnerID == user.ID
}
