package migrations

import (
	"takvim.link/configs/configslog"
	"takvim.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateIntroPagesTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating intro_pages table...")
	if err := db.AutoMigrate(&models.IntroPage{}); err != nil {
		configslog.Log.Error("Failed to migrate intro_pages table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Intro_pages table migrated successfully")
	return nil
}
