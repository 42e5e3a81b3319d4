package models

// AudioFile yönetici tarafından yüklenmiş, birden fazla gün tarafından
// paylaşılabilen ses dosyası. Bir gün tarafından referans edildiği sürece silinemez.
type AudioFile struct {
	BaseModel
	Name             string `gorm:"type:varchar(255);not null"`
	FilePath         string `gorm:"type:varchar(500);not null"`
	OriginalFilename string `gorm:"type:varchar(255);not null"`
	MimeType         string `gorm:"type:varchar(100);not null"`
	FileSize         int64  `gorm:"not null"`
	Description      string `gorm:"type:text"`

	CalendarDays []CalendarDay `gorm:"foreignKey:AudioFileID"`
}

// URL dosyanın public servis adresi.
func (f *AudioFile) URL() string {
	return "/storage/" + f.FilePath
}
