package themes

import (
	"errors"
	"fmt"
	"regexp"
)

var hexColorRe = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// ValidHexColor "#rrggbb" biçiminde bir renk mi.
func ValidHexColor(color string) bool {
	return hexColorRe.MatchString(color)
}

// Sezon konfigürasyonu doğrulama hataları.
var (
	ErrSeasonalConfigEmpty = errors.New("sezon konfigürasyonu en az bir aralık içermeli")
	ErrSeasonalRangeEmpty  = errors.New("sezon aralığı en az bir gün içermeli")
)

// ValidateSeasonalConfig konfigürasyonu yazım anında doğrular: her aralığın
// gün listesi dolu ve 1-31 aralığında, tema anahtarı katalogda tanımlı olmalı.
// Render anında doğrulama yapılmaz.
func ValidateSeasonalConfig(cfg SeasonalConfig) error {
	if len(cfg.Ranges) == 0 {
		return ErrSeasonalConfigEmpty
	}
	for i, r := range cfg.Ranges {
		if len(r.Days) == 0 {
			return fmt.Errorf("%w (aralık %d)", ErrSeasonalRangeEmpty, i+1)
		}
		for _, d := range r.Days {
			if d < 1 || d > 31 {
				return fmt.Errorf("sezon aralığındaki gün numarası 1-31 arasında olmalı: %d (aralık %d)", d, i+1)
			}
		}
		if _, ok := Lookup(r.Theme); !ok {
			return fmt.Errorf("bilinmeyen tema anahtarı: %q (aralık %d)", r.Theme, i+1)
		}
	}
	return nil
}
