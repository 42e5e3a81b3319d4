package models

import (
	"time"

	"takvim.link/pkg/themes"

	"gorm.io/datatypes"
)

// GiftType bir günün hediye içeriğinin şekli.
type GiftType string

const (
	GiftTypeText      GiftType = "text"
	GiftTypeImageText GiftType = "image_text"
	GiftTypeProduct   GiftType = "product"
)

// ValidGiftType bilinen bir hediye türü mü.
func ValidGiftType(t GiftType) bool {
	switch t {
	case GiftTypeText, GiftTypeImageText, GiftTypeProduct:
		return true
	}
	return false
}

// Yeni oluşturulan günlerde gösterilen yer tutucu metin. "İçerik ayarlandı mı?"
// kontrolü bu metne değil IsConfigured alanına bakar.
const PlaceholderContentText = "Bu hediye henüz hazırlanmadı."

// CalendarDay takvimin 31 gününden biri. (calendar_id, day_number) çifti benzersizdir.
type CalendarDay struct {
	BaseModel
	CalendarID uint     `gorm:"not null;uniqueIndex:idx_calendar_day_number"`
	DayNumber  int      `gorm:"not null;uniqueIndex:idx_calendar_day_number"`
	GiftType   GiftType `gorm:"type:varchar(20);not null;default:'text'"`

	Title            string  `gorm:"type:varchar(255)"`
	ContentText      string  `gorm:"type:text"`
	ContentImagePath *string `gorm:"type:varchar(500)"`
	ProductCode      *string `gorm:"type:varchar(255)"`

	// Ses kaynağı: ya harici bir URL ya da yüklenmiş bir dosya, asla ikisi birden.
	// Yazma işlemleri SetAudioURL/SetAudioFile/ClearAudio üzerinden yapılmalı.
	AudioURL    *string `gorm:"type:varchar(2048)"`
	AudioFileID *uint   `gorm:"index"`

	UnlockedAt       *time.Time `gorm:"type:timestamptz"`
	AllowEarlyUnlock bool       `gorm:"default:false"`

	// IsConfigured gün gerçek içerikle düzenlendi mi. Yer tutucu metinle
	// string karşılaştırması yerine bu alan kullanılır (PDF filtreleme dahil).
	IsConfigured bool `gorm:"default:false"`

	ThemeOverride *datatypes.JSONType[themes.Override] `gorm:"type:jsonb"`

	Calendar  Calendar   `gorm:"foreignKey:CalendarID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	AudioFile *AudioFile `gorm:"foreignKey:AudioFileID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
}

// IsUnlocked gün açılmış mı. Açılma tek yönlüdür, geri alınamaz.
func (d *CalendarDay) IsUnlocked() bool {
	return d.UnlockedAt != nil
}

// SetAudioURL harici ses URL'sini ayarlar; dosya referansı temizlenir.
func (d *CalendarDay) SetAudioURL(url string) {
	d.AudioURL = &url
	d.AudioFileID = nil
	d.AudioFile = nil
}

// SetAudioFile yüklenmiş ses dosyasını bağlar; URL temizlenir.
func (d *CalendarDay) SetAudioFile(fileID uint) {
	d.AudioFileID = &fileID
	d.AudioURL = nil
}

// ClearAudio her iki ses kaynağını da kaldırır.
func (d *CalendarDay) ClearAudio() {
	d.AudioURL = nil
	d.AudioFileID = nil
	d.AudioFile = nil
}

// EffectiveAudioURL gösterilecek ses adresi: dosya bağlıysa dosyanın URL'si,
// değilse ham URL, hiçbiri yoksa nil.
func (d *CalendarDay) EffectiveAudioURL() *string {
	if d.AudioFileID != nil && d.AudioFile != nil {
		url := d.AudioFile.URL()
		return &url
	}
	return d.AudioURL
}

// ThemeOverrideValue per-gün tema override'ını döndürür (yoksa nil).
func (d *CalendarDay) ThemeOverrideValue() *themes.Override {
	if d.ThemeOverride == nil {
		return nil
	}
	ov := d.ThemeOverride.Data()
	if ov.IsEmpty() {
		return nil
	}
	return &ov
}

// HasExportableContent PDF dışa aktarımına girecek gün mü: gerçek içerik,
// görsel veya ürün kodu tipli günler dahil edilir.
func (d *CalendarDay) HasExportableContent() bool {
	return d.IsConfigured || d.ContentImagePath != nil || d.GiftType == GiftTypeProduct
}
