package seeders

import (
	"errors"

	"takvim.link/configs/configslog"
	"takvim.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SeedIntroPage tekil karşılama sayfası kaydını varsayılan içerikle oluşturur.
// Mevcut içerik asla ezilmez.
func SeedIntroPage(db *gorm.DB) error {
	var existing models.IntroPage
	result := db.First(&existing, models.IntroPageID)
	if result.Error == nil {
		configslog.SLog.Debug("Karşılama sayfası zaten mevcut, seed atlanıyor.")
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		configslog.Log.Error("Karşılama sayfası kontrol edilirken hata", zap.Error(result.Error))
		return result.Error
	}

	page := models.IntroPage{
		BaseModel: models.BaseModel{ID: models.IntroPageID},
		Title:     models.IntroPageDefaultTitle,
		Body:      models.IntroPageDefaultBody,
	}
	if err := db.Create(&page).Error; err != nil {
		configslog.Log.Error("Karşılama sayfası oluşturulamadı", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Karşılama sayfası varsayılan içerikle oluşturuldu.")
	return nil
}
