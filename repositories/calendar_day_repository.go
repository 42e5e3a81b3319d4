package repositories

import (
	"context"
	"errors"
	"time"

	"takvim.link/configs"
	"takvim.link/configs/configslog"
	"takvim.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ICalendarDayRepository takvim günü veritabanı işlemleri için arayüz.
type ICalendarDayRepository interface {
	CreateBatch(ctx context.Context, days []models.CalendarDay) error
	FindByID(ctx context.Context, id uint) (*models.CalendarDay, error)
	FindByCalendarOrdered(ctx context.Context, calendarID uint) ([]models.CalendarDay, error)
	Save(ctx context.Context, day *models.CalendarDay) error
	Unlock(ctx context.Context, dayID uint, at time.Time) (bool, error)
	CountByAudioFileID(ctx context.Context, audioFileID uint) (int64, error)
	WithTx(tx *gorm.DB) ICalendarDayRepository
}

// CalendarDayRepository ICalendarDayRepository arayüzünü uygular.
type CalendarDayRepository struct {
	db   *gorm.DB
	base *BaseRepository[models.CalendarDay]
}

// NewCalendarDayRepository yeni bir CalendarDayRepository örneği oluşturur.
func NewCalendarDayRepository() ICalendarDayRepository {
	db := configs.GetDB()
	return &CalendarDayRepository{db: db, base: NewBaseRepository[models.CalendarDay](db)}
}

// NewCalendarDayRepositoryTx transaction'a bağlı repository oluşturur.
func NewCalendarDayRepositoryTx(tx *gorm.DB) ICalendarDayRepository {
	return &CalendarDayRepository{db: tx, base: NewBaseRepository[models.CalendarDay](tx)}
}

// WithTx transaction'a bağlı kopyayı döndürür (tx nil ise kendisi).
func (r *CalendarDayRepository) WithTx(tx *gorm.DB) ICalendarDayRepository {
	if tx == nil {
		return r
	}
	return NewCalendarDayRepositoryTx(tx)
}

func (r *CalendarDayRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

// CreateBatch 31 günün tamamını tek seferde oluşturur. (calendar_id, day_number)
// benzersizliği veritabanı indeksiyle garanti edilir.
func (r *CalendarDayRepository) CreateBatch(ctx context.Context, days []models.CalendarDay) error {
	if len(days) == 0 {
		return errors.New("oluşturulacak gün listesi boş olamaz")
	}
	return r.getDB(ctx).Create(&days).Error
}

// FindByID günü takvimi ve ses dosyasıyla birlikte getirir.
func (r *CalendarDayRepository) FindByID(ctx context.Context, id uint) (*models.CalendarDay, error) {
	if id == 0 {
		return nil, errors.New("geçersiz CalendarDay ID")
	}
	var day models.CalendarDay
	err := r.getDB(ctx).Preload("Calendar").Preload("AudioFile").First(&day, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("CalendarDayRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &day, nil
}

// FindByCalendarOrdered bir takvimin günlerini gün numarasına göre sıralı getirir.
func (r *CalendarDayRepository) FindByCalendarOrdered(ctx context.Context, calendarID uint) ([]models.CalendarDay, error) {
	if calendarID == 0 {
		return nil, errors.New("geçersiz Calendar ID")
	}
	var days []models.CalendarDay
	err := r.getDB(ctx).
		Where("calendar_id = ?", calendarID).
		Order("day_number asc").
		Preload("AudioFile").
		Find(&days).Error
	if err != nil {
		configslog.Log.Error("CalendarDayRepository.FindByCalendarOrdered: DB error",
			zap.Uint("calendarID", calendarID), zap.Error(err))
		return nil, err
	}
	return days, nil
}

// Save günün tamamını kaydeder (içerik düzenleme için).
func (r *CalendarDayRepository) Save(ctx context.Context, day *models.CalendarDay) error {
	if day == nil || day.ID == 0 {
		return errors.New("kaydedilecek gün geçerli değil")
	}
	return r.base.Save(ctx, day)
}

// Unlock unlocked_at alanını yalnızca hâlâ NULL ise yazar (compare-and-set).
// Eşzamanlı iki istekte yalnızca biri yazar; kaybeden false alır ve çağıran
// bunu "zaten açılmış" olarak değerlendirir. Açılma geri alınamaz.
func (r *CalendarDayRepository) Unlock(ctx context.Context, dayID uint, at time.Time) (bool, error) {
	if dayID == 0 {
		return false, errors.New("geçersiz CalendarDay ID")
	}
	result := r.getDB(ctx).Model(&models.CalendarDay{}).
		Where("id = ? AND unlocked_at IS NULL", dayID).
		Update("unlocked_at", at)
	if result.Error != nil {
		configslog.Log.Error("CalendarDayRepository.Unlock: DB error", zap.Uint("dayID", dayID), zap.Error(result.Error))
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// CountByAudioFileID verilen ses dosyasını referans eden gün sayısı.
func (r *CalendarDayRepository) CountByAudioFileID(ctx context.Context, audioFileID uint) (int64, error) {
	if audioFileID == 0 {
		return 0, errors.New("geçersiz AudioFile ID")
	}
	var count int64
	err := r.getDB(ctx).Model(&models.CalendarDay{}).
		Where("audio_file_id = ?", audioFileID).
		Count(&count).Error
	return count, err
}

var _ ICalendarDayRepository = (*CalendarDayRepository)(nil)
