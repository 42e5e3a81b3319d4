package migrations

import (
	"takvim.link/configs/configslog"
	"takvim.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateInvitationsTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating invitations table...")
	if err := db.AutoMigrate(&models.Invitation{}); err != nil {
		configslog.Log.Error("Failed to migrate invitations table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Invitations table migrated successfully")
	return nil
}
