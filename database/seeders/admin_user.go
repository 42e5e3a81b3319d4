package seeders

import (
	"errors"
	"os"
	"strings"
	"time"

	"takvim.link/configs/configslog"
	"takvim.link/models"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedAdminUser ortam değişkenlerinden admin hesabını oluşturur veya günceller.
// ADMIN_EMAIL ve ADMIN_PASSWORD zorunludur; hesap her seed'de admin yapılır ve
// parolası env'deki değere çekilir.
func SeedAdminUser(db *gorm.DB) error {
	email := strings.ToLower(strings.TrimSpace(os.Getenv("ADMIN_EMAIL")))
	password := os.Getenv("ADMIN_PASSWORD")
	name := os.Getenv("ADMIN_NAME")
	if name == "" {
		name = "Yönetici"
	}
	if email == "" || password == "" {
		return errors.New("ADMIN_EMAIL ve ADMIN_PASSWORD ortam değişkenleri tanımlı olmalı")
	}

	hashBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		configslog.Log.Error("Admin parolası hash'lenemedi", zap.Error(err))
		return err
	}
	hash := string(hashBytes)
	now := time.Now()

	var existing models.User
	result := db.Where("email = ?", email).First(&existing)
	if result.Error == nil {
		existing.Name = name
		existing.PasswordHash = hash
		existing.IsAdmin = true
		if existing.EmailVerifiedAt == nil {
			existing.EmailVerifiedAt = &now
		}
		if err := db.Save(&existing).Error; err != nil {
			configslog.Log.Error("Admin kullanıcısı güncellenemedi", zap.String("email", email), zap.Error(err))
			return err
		}
		configslog.SLog.Infof("Admin kullanıcısı güncellendi (ID: %d).", existing.ID)
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		configslog.Log.Error("Admin kullanıcısı kontrol edilirken hata", zap.Error(result.Error))
		return result.Error
	}

	admin := models.User{
		Name:            name,
		Email:           email,
		PasswordHash:    hash,
		IsAdmin:         true,
		EmailVerifiedAt: &now,
	}
	if err := db.Create(&admin).Error; err != nil {
		configslog.Log.Error("Admin kullanıcısı oluşturulamadı", zap.String("email", email), zap.Error(err))
		return err
	}
	configslog.SLog.Infof("Admin kullanıcısı oluşturuldu (ID: %d).", admin.ID)
	return nil
}
