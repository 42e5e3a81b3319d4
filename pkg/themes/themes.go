// Package themes takvim ve gün bazlı renk temalarının saf çözümleme kurallarını içerir.
// Çözümleme deterministiktir ve I/O içermez; aynı kurallar istemci tarafında da
// çalıştırılarak sunucu ile görsel tutarlılık sağlanır.
package themes

// ThemeType takvim düzeyindeki tema modu.
type ThemeType string

const (
	ThemeTypeSingle   ThemeType = "single"
	ThemeTypeDual     ThemeType = "dual"
	ThemeTypeSeasonal ThemeType = "seasonal"
)

// ValidThemeType bilinen bir tema modu mu.
func ValidThemeType(t ThemeType) bool {
	switch t {
	case ThemeTypeSingle, ThemeTypeDual, ThemeTypeSeasonal:
		return true
	}
	return false
}

// Definition katalogdaki isimli bir tema.
type Definition struct {
	Name        string `json:"name"`
	Primary     string `json:"primary"`
	Secondary   string `json:"secondary"`
	Description string `json:"description"`
}

// Katalog anahtarları.
const (
	KeySinterklaas = "sinterklaas"
	KeyKerst       = "kerst"
	KeyOudjaar     = "oudjaar"
)

// catalog sistemle birlikte gelen kapalı tema kataloğu. Nadiren değiştiği için
// veritabanı yerine statik referans verisi olarak tutulur.
var catalog = map[string]Definition{
	KeySinterklaas: {
		Name:        "Sinterklaas",
		Primary:     "#dc2626", // kırmızı
		Secondary:   "#fbbf24", // altın
		Description: "Sinterklaas için kırmızı ve altın",
	},
	KeyKerst: {
		Name:        "Kerst",
		Primary:     "#dc2626", // kırmızı
		Secondary:   "#16a34a", // yeşil
		Description: "Noel için kırmızı ve yeşil",
	},
	KeyOudjaar: {
		Name:        "Oudjaarsdag",
		Primary:     "#000000", // siyah
		Secondary:   "#fbbf24", // altın
		Description: "Yılbaşı gecesi için siyah ve altın",
	},
}

// Catalog tüm isimli temaların kopyasını döndürür.
func Catalog() map[string]Definition {
	out := make(map[string]Definition, len(catalog))
	for k, v := range catalog {
		out[k] = v
	}
	return out
}

// Lookup katalogdan isimli temayı getirir.
func Lookup(key string) (Definition, bool) {
	def, ok := catalog[key]
	return def, ok
}

// SeasonalRange belirli gün numaralarını isimli bir temaya bağlar.
type SeasonalRange struct {
	Days  []int  `json:"days"`
	Theme string `json:"theme"`
}

// Contains verilen gün numarası bu aralıkta mı.
func (r SeasonalRange) Contains(dayNumber int) bool {
	for _, d := range r.Days {
		if d == dayNumber {
			return true
		}
	}
	return false
}

// SeasonalConfig sıralı aralık listesi; ilk eşleşen aralık kazanır.
type SeasonalConfig struct {
	Ranges []SeasonalRange `json:"ranges"`
}

// DefaultSeasonalRanges sistemle gelen varsayılan sezon aralıkları:
// 5 → Sinterklaas, 24-26 → Kerst, 31 → Oudjaarsdag.
func DefaultSeasonalRanges() []SeasonalRange {
	return []SeasonalRange{
		{Days: []int{5}, Theme: KeySinterklaas},
		{Days: []int{24, 25, 26}, Theme: KeyKerst},
		{Days: []int{31}, Theme: KeyOudjaar},
	}
}

// Override tek bir gün için takvim temasını ezen renk çifti.
type Override struct {
	Primary   string `json:"primary,omitempty"`
	Secondary string `json:"secondary,omitempty"`
}

// IsEmpty her iki yarısı da boş olan override etkisizdir.
func (o Override) IsEmpty() bool {
	return o.Primary == "" && o.Secondary == ""
}

// Config takvim düzeyindeki tema konfigürasyonu.
type Config struct {
	Type      ThemeType
	Primary   string
	Secondary *string
	Seasonal  *SeasonalConfig
}

// Resolved bir gün için hesaplanmış renk çifti. Secondary nil olabilir.
type Resolved struct {
	Primary   string
	Secondary *string
}

// Resolve verilen gün için aktif temayı hesaplar. Kurallar sırayla:
//  1. Boş olmayan override her zaman kazanır; eksik yarısı takvim renklerinden tamamlanır.
//  2. Sezonluk modda aralıklar liste sırasıyla taranır, günü içeren ilk aralık
//     isimli temanın sabit renklerini verir. Eşleşme yoksa takvimin ana rengi,
//     ikincil renk olmadan kullanılır.
//  3. Dual modda ikincil renk ayarlanmamışsa ana renk kullanılır.
//  4. Single (varsayılan) modda ikincil renk yoktur.
func Resolve(cfg Config, dayNumber int, override *Override) Resolved {
	if override != nil && !override.IsEmpty() {
		res := Resolved{Primary: override.Primary, Secondary: cfg.Secondary}
		if res.Primary == "" {
			res.Primary = cfg.Primary
		}
		if override.Secondary != "" {
			sec := override.Secondary
			res.Secondary = &sec
		}
		return res
	}

	switch cfg.Type {
	case ThemeTypeSeasonal:
		ranges := DefaultSeasonalRanges()
		if cfg.Seasonal != nil && len(cfg.Seasonal.Ranges) > 0 {
			ranges = cfg.Seasonal.Ranges
		}
		for _, r := range ranges {
			if !r.Contains(dayNumber) {
				continue
			}
			def, ok := Lookup(r.Theme)
			if !ok {
				// Bilinmeyen tema anahtarı yazım anında reddedilir; yine de
				// karşılaşılırsa aralık atlanır.
				continue
			}
			sec := def.Secondary
			return Resolved{Primary: def.Primary, Secondary: &sec}
		}
		return Resolved{Primary: cfg.Primary}

	case ThemeTypeDual:
		sec := cfg.Primary
		if cfg.Secondary != nil && *cfg.Secondary != "" {
			sec = *cfg.Secondary
		}
		return Resolved{Primary: cfg.Primary, Secondary: &sec}

	default:
		return Resolved{Primary: cfg.Primary}
	}
}
