package migrations

import (
	"takvim.link/configs/configslog"
	"takvim.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateAudioFilesTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating audio_files table...")
	if err := db.AutoMigrate(&models.AudioFile{}); err != nil {
		configslog.Log.Error("Failed to migrate audio_files table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Audio_files table migrated successfully")
	return nil
}
