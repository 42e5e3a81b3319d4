package models

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// contextKey context value çakışmalarını önlemek için özel tip.
type contextKey string

// CtxUserIDKey işlemi yapan kullanıcının ID'sini context üzerinden
// model hook'larına taşımak için kullanılır.
const CtxUserIDKey contextKey = "ctx_user_id"

// ContextWithUserID işlemi yapan kullanıcıyı context'e ekler.
func ContextWithUserID(ctx context.Context, userID uint) context.Context {
	return context.WithValue(ctx, CtxUserIDKey, userID)
}

// UserIDFromContext context'teki kullanıcı ID'sini döndürür (yoksa 0).
func UserIDFromContext(ctx context.Context) uint {
	if userID, ok := ctx.Value(CtxUserIDKey).(uint); ok {
		return userID
	}
	return 0
}

// BaseModel tüm tablolarda ortak olan kimlik ve denetim (audit) alanları.
type BaseModel struct {
	ID        uint           `gorm:"primarykey"`
	CreatedAt time.Time      `gorm:"type:timestamptz"`
	UpdatedAt time.Time      `gorm:"type:timestamptz"`
	DeletedAt gorm.DeletedAt `gorm:"index;type:timestamptz"`
	CreatedBy *uint          `gorm:"index"`
	UpdatedBy *uint
	DeletedBy *uint
}

// BeforeCreate context'te kullanıcı varsa CreatedBy/UpdatedBy alanlarını doldurur.
func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if userID := UserIDFromContext(tx.Statement.Context); userID != 0 {
		m.CreatedBy = &userID
		m.UpdatedBy = &userID
	}
	return nil
}

// BeforeUpdate context'te kullanıcı varsa UpdatedBy alanını günceller.
func (m *BaseModel) BeforeUpdate(tx *gorm.DB) error {
	if userID := UserIDFromContext(tx.Statement.Context); userID != 0 {
		m.UpdatedBy = &userID
	}
	return nil
}
