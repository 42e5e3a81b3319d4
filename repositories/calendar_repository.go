package repositories

import (
	"context"
	"errors"
	"time"

	"takvim.link/configs"
	"takvim.link/configs/configslog"
	"takvim.link/models"
	"takvim.link/pkg/queryparams"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ICalendarRepository takvim veritabanı işlemleri için arayüz.
type ICalendarRepository interface {
	Create(ctx context.Context, calendar *models.Calendar) error
	FindByID(ctx context.Context, id uint) (*models.Calendar, error)
	FindByIDWithDays(ctx context.Context, id uint) (*models.Calendar, error)
	FindAllForUser(ctx context.Context, userID uint) ([]models.Calendar, error)
	FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.Calendar, int64, error)
	SetRecipientIfEmpty(ctx context.Context, calendarID, userID uint) (bool, error)
	Delete(ctx context.Context, calendar *models.Calendar, deletedByUserID uint) error
	WithTx(tx *gorm.DB) ICalendarRepository
}

// CalendarRepository ICalendarRepository arayüzünü uygular.
type CalendarRepository struct {
	db   *gorm.DB
	base *BaseRepository[models.Calendar]
}

// NewCalendarRepository yeni bir CalendarRepository örneği oluşturur.
func NewCalendarRepository() ICalendarRepository {
	db := configs.GetDB()
	return &CalendarRepository{db: db, base: NewBaseRepository[models.Calendar](db)}
}

// NewCalendarRepositoryTx transaction'a bağlı repository oluşturur.
func NewCalendarRepositoryTx(tx *gorm.DB) ICalendarRepository {
	return &CalendarRepository{db: tx, base: NewBaseRepository[models.Calendar](tx)}
}

// WithTx transaction'a bağlı kopyayı döndürür (tx nil ise kendisi).
func (r *CalendarRepository) WithTx(tx *gorm.DB) ICalendarRepository {
	if tx == nil {
		return r
	}
	return NewCalendarRepositoryTx(tx)
}

func (r *CalendarRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

// Create yeni bir takvim kaydı oluşturur (günler servis katmanında aynı
// transaction içinde eklenir).
func (r *CalendarRepository) Create(ctx context.Context, calendar *models.Calendar) error {
	if calendar == nil || calendar.OwnerID == 0 {
		return errors.New("sahibi olmayan takvim oluşturulamaz")
	}
	return r.base.Create(ctx, calendar)
}

// FindByID takvimi sahip/alıcı ilişkileriyle getirir.
func (r *CalendarRepository) FindByID(ctx context.Context, id uint) (*models.Calendar, error) {
	if id == 0 {
		return nil, errors.New("geçersiz Calendar ID")
	}
	var calendar models.Calendar
	err := r.getDB(ctx).Preload("Owner").Preload("Recipient").First(&calendar, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("CalendarRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &calendar, nil
}

// FindByIDWithDays takvimi gün numarasına göre sıralı günleriyle getirir.
func (r *CalendarRepository) FindByIDWithDays(ctx context.Context, id uint) (*models.Calendar, error) {
	if id == 0 {
		return nil, errors.New("geçersiz Calendar ID")
	}
	var calendar models.Calendar
	err := r.getDB(ctx).
		Preload("Days", func(db *gorm.DB) *gorm.DB {
			return db.Order("calendar_days.day_number asc")
		}).
		Preload("Days.AudioFile").
		Preload("Owner").
		Preload("Recipient").
		First(&calendar, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("CalendarRepository.FindByIDWithDays: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &calendar, nil
}

// FindAllForUser kullanıcının sahibi ya da alıcısı olduğu takvimleri getirir.
func (r *CalendarRepository) FindAllForUser(ctx context.Context, userID uint) ([]models.Calendar, error) {
	if userID == 0 {
		return nil, errors.New("geçersiz User ID")
	}
	var calendars []models.Calendar
	err := r.getDB(ctx).
		Where("owner_id = ? OR recipient_id = ?", userID, userID).
		Order("created_at desc").
		Find(&calendars).Error
	if err != nil {
		configslog.Log.Error("CalendarRepository.FindAllForUser: DB error", zap.Uint("userID", userID), zap.Error(err))
		return nil, err
	}
	return calendars, nil
}

// FindAllPaginated tüm takvimleri sayfalayarak getirir (admin için).
func (r *CalendarRepository) FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.Calendar, int64, error) {
	var calendars []models.Calendar
	var totalCount int64
	db := r.getDB(ctx)

	query := db.Model(&models.Calendar{})
	if params.Name != "" {
		query = query.Where("title ILIKE ?", "%"+params.Name+"%")
	}

	if err := query.Count(&totalCount).Error; err != nil {
		configslog.Log.Error("CalendarRepository.FindAllPaginated: count error", zap.Error(err))
		return nil, 0, err
	}
	if totalCount == 0 {
		return calendars, 0, nil
	}

	// Sıralama yalnızca bilinen sütunlara izin verir.
	orderColumn := "created_at"
	switch params.SortBy {
	case "id", "title", "year", "created_at":
		orderColumn = params.SortBy
	}
	query = query.Order(orderColumn + " " + params.OrderBy).
		Preload("Owner").Preload("Recipient").
		Limit(params.PerPage).Offset(params.CalculateOffset())

	if err := query.Find(&calendars).Error; err != nil {
		configslog.Log.Error("CalendarRepository.FindAllPaginated: find error", zap.Error(err))
		return nil, totalCount, err
	}
	return calendars, totalCount, nil
}

// SetRecipientIfEmpty alıcıyı yalnızca henüz atanmamışsa bağlar; mevcut bir
// alıcı asla ezilmez. Dönen bool yazmanın gerçekleşip gerçekleşmediğini söyler.
func (r *CalendarRepository) SetRecipientIfEmpty(ctx context.Context, calendarID, userID uint) (bool, error) {
	if calendarID == 0 || userID == 0 {
		return false, errors.New("geçersiz Calendar veya User ID")
	}
	result := r.getDB(ctx).Model(&models.Calendar{}).
		Where("id = ? AND recipient_id IS NULL", calendarID).
		Update("recipient_id", userID)
	if result.Error != nil {
		configslog.Log.Error("CalendarRepository.SetRecipientIfEmpty: DB error",
			zap.Uint("calendarID", calendarID), zap.Uint("userID", userID), zap.Error(result.Error))
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Delete takvimi ve tüm günlerini siler (soft delete). Günler yetim kalmaz.
func (r *CalendarRepository) Delete(ctx context.Context, calendar *models.Calendar, deletedByUserID uint) error {
	if calendar == nil || calendar.ID == 0 {
		return errors.New("silinecek takvim geçerli değil")
	}
	db := r.getDB(ctx)

	return db.Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()
		updateData := map[string]interface{}{"deleted_at": now, "deleted_by": &deletedByUserID}

		// Önce günler: takvim silinmişken gün kalmamalı.
		if err := tx.Model(&models.CalendarDay{}).
			Where("calendar_id = ? AND deleted_at IS NULL", calendar.ID).
			Updates(updateData).Error; err != nil {
			configslog.Log.Error("CalendarRepository.Delete: günler silinemedi", zap.Uint("id", calendar.ID), zap.Error(err))
			return err
		}

		result := tx.Model(calendar).
			Where("id = ? AND deleted_at IS NULL", calendar.ID).
			Updates(updateData)
		if result.Error != nil {
			configslog.Log.Error("CalendarRepository.Delete: DB error", zap.Uint("id", calendar.ID), zap.Error(result.Error))
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

var _ ICalendarRepository = (*CalendarRepository)(nil)
