package migrations

import (
	"takvim.link/configs/configslog"
	"takvim.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MigrateCalendarsTables takvim ve gün tablolarını birlikte migrate eder.
// Günler takvime sıkı bağlı olduğundan iki tablo tek adımda ele alınır.
func MigrateCalendarsTables(db *gorm.DB) error {
	configslog.SLog.Info("Migrating calendars & calendar_days tables...")
	if err := db.AutoMigrate(&models.Calendar{}, &models.CalendarDay{}); err != nil {
		configslog.Log.Error("Failed to migrate calendars & calendar_days tables", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Calendars & calendar_days tables migrated successfully")
	return nil
}
