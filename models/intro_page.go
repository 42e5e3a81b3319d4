package models

// Tanıtım sayfası tekildir; her zaman bu ID ile tutulur.
const IntroPageID uint = 1

// Varsayılan tanıtım metni (ilk erişimde oluşturulur).
const (
	IntroPageDefaultTitle = "Advent takvimine hoş geldin"
	IntroPageDefaultBody  = "Kişisel advent takviminin nasıl çalıştığını burada anlatan sıcak bir karşılama metni göreceksin. Bir yönetici bu metni yönetim panelinden düzenleyebilir."
)

// IntroPage giriş sayfasında gösterilen, yöneticinin düzenleyebildiği tekil içerik.
type IntroPage struct {
	BaseModel
	Title string `gorm:"type:varchar(255);not null"`
	Body  string `gorm:"type:text;not null"`
}
