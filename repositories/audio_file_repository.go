package repositories

import (
	"context"
	"errors"

	"takvim.link/configs"
	"takvim.link/configs/configslog"
	"takvim.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IAudioFileRepository ses dosyası veritabanı işlemleri için arayüz.
type IAudioFileRepository interface {
	Create(ctx context.Context, file *models.AudioFile) error
	FindByID(ctx context.Context, id uint) (*models.AudioFile, error)
	FindAllOrdered(ctx context.Context) ([]models.AudioFile, error)
	Delete(ctx context.Context, file *models.AudioFile) error
	WithTx(tx *gorm.DB) IAudioFileRepository
}

// AudioFileRepository IAudioFileRepository arayüzünü uygular.
type AudioFileRepository struct {
	db   *gorm.DB
	base *BaseRepository[models.AudioFile]
}

// NewAudioFileRepository yeni bir AudioFileRepository örneği oluşturur.
func NewAudioFileRepository() IAudioFileRepository {
	db := configs.GetDB()
	return &AudioFileRepository{db: db, base: NewBaseRepository[models.AudioFile](db)}
}

// NewAudioFileRepositoryTx transaction'a bağlı repository oluşturur.
func NewAudioFileRepositoryTx(tx *gorm.DB) IAudioFileRepository {
	return &AudioFileRepository{db: tx, base: NewBaseRepository[models.AudioFile](tx)}
}

// WithTx transaction'a bağlı kopyayı döndürür (tx nil ise kendisi).
func (r *AudioFileRepository) WithTx(tx *gorm.DB) IAudioFileRepository {
	if tx == nil {
		return r
	}
	return NewAudioFileRepositoryTx(tx)
}

func (r *AudioFileRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

// Create yeni bir ses dosyası kaydı oluşturur.
func (r *AudioFileRepository) Create(ctx context.Context, file *models.AudioFile) error {
	if file == nil || file.FilePath == "" {
		return errors.New("dosya yolu olmayan ses kaydı oluşturulamaz")
	}
	return r.base.Create(ctx, file)
}

// FindByID ID ile ses dosyasını bulur.
func (r *AudioFileRepository) FindByID(ctx context.Context, id uint) (*models.AudioFile, error) {
	return r.base.FindByID(ctx, id)
}

// FindAllOrdered tüm ses dosyalarını en yeniden eskiye getirir.
func (r *AudioFileRepository) FindAllOrdered(ctx context.Context) ([]models.AudioFile, error) {
	var files []models.AudioFile
	err := r.getDB(ctx).Order("created_at desc").Find(&files).Error
	if err != nil {
		configslog.Log.Error("AudioFileRepository.FindAllOrdered: DB error", zap.Error(err))
		return nil, err
	}
	return files, nil
}

// Delete ses dosyası kaydını siler. Referans kontrolü servis katmanında yapılır.
func (r *AudioFileRepository) Delete(ctx context.Context, file *models.AudioFile) error {
	return r.base.Delete(ctx, file)
}

var _ IAudioFileRepository = (*AudioFileRepository)(nil)
