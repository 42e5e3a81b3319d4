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

// IIntroPageRepository tekil tanıtım sayfası için arayüz.
type IIntroPageRepository interface {
	GetOrCreate(ctx context.Context) (*models.IntroPage, error)
	Save(ctx context.Context, page *models.IntroPage) error
	WithTx(tx *gorm.DB) IIntroPageRepository
}

// IntroPageRepository IIntroPageRepository arayüzünü uygular.
type IntroPageRepository struct {
	db   *gorm.DB
	base *BaseRepository[models.IntroPage]
}

// NewIntroPageRepository yeni bir IntroPageRepository örneği oluşturur.
func NewIntroPageRepository() IIntroPageRepository {
	db := configs.GetDB()
	return &IntroPageRepository{db: db, base: NewBaseRepository[models.IntroPage](db)}
}

// NewIntroPageRepositoryTx transaction'a bağlı repository oluşturur.
func NewIntroPageRepositoryTx(tx *gorm.DB) IIntroPageRepository {
	return &IntroPageRepository{db: tx, base: NewBaseRepository[models.IntroPage](tx)}
}

// WithTx transaction'a bağlı kopyayı döndürür (tx nil ise kendisi).
func (r *IntroPageRepository) WithTx(tx *gorm.DB) IIntroPageRepository {
	if tx == nil {
		return r
	}
	return NewIntroPageRepositoryTx(tx)
}

func (r *IntroPageRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

// GetOrCreate tekil sayfayı getirir; yoksa varsayılan metinle oluşturur.
func (r *IntroPageRepository) GetOrCreate(ctx context.Context) (*models.IntroPage, error) {
	var page models.IntroPage
	err := r.getDB(ctx).First(&page, models.IntroPageID).Error
	if err == nil {
		return &page, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		configslog.Log.Error("IntroPageRepository.GetOrCreate: DB error", zap.Error(err))
		return nil, err
	}

	page = models.IntroPage{
		BaseModel: models.BaseModel{ID: models.IntroPageID},
		Title:     models.IntroPageDefaultTitle,
		Body:      models.IntroPageDefaultBody,
	}
	if err := r.getDB(ctx).Create(&page).Error; err != nil {
		configslog.Log.Error("IntroPageRepository.GetOrCreate: create error", zap.Error(err))
		return nil, err
	}
	return &page, nil
}

// Save sayfa içeriğini günceller.
func (r *IntroPageRepository) Save(ctx context.Context, page *models.IntroPage) error {
	if page == nil || page.ID != models.IntroPageID {
		return errors.New("kaydedilecek tanıtım sayfası geçerli değil")
	}
	return r.base.Save(ctx, page)
}

var _ IIntroPageRepository = (*IntroPageRepository)(nil)
