package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound aranan kayıt bulunamadığında tüm repository'lerin döndürdüğü hata.
var ErrNotFound = errors.New("kayıt bulunamadı")

// txContextKey transaction'ı context üzerinden repository'lere taşımak için özel tip.
type txContextKey struct{}

// ContextWithTx aktif transaction'ı context'e ekler. Servisler db.Transaction
// bloğu içinde repository çağrılarına bu context'i geçirir.
func ContextWithTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txContextKey{}, tx)
}

// txFromContext context'teki transaction'ı döndürür (yoksa nil).
func txFromContext(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txContextKey{}).(*gorm.DB); ok {
		return tx
	}
	return nil
}

// dbFromContext context'te transaction varsa onu, yoksa verilen bağlantıyı kullanır.
func dbFromContext(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx := txFromContext(ctx); tx != nil {
		return tx
	}
	return db.WithContext(ctx)
}

// IBaseRepository basit CRUD işlemleri için generik arayüz.
type IBaseRepository[T any] interface {
	Create(ctx context.Context, entity *T) error
	FindByID(ctx context.Context, id uint) (*T, error)
	Save(ctx context.Context, entity *T) error
	Delete(ctx context.Context, entity *T) error
	Count(ctx context.Context) (int64, error)
}

// BaseRepository IBaseRepository'nin GORM implementasyonu. Özel sorguları olan
// repository'ler bunu gömerek yalnızca farklı kısımlarını yazar.
type BaseRepository[T any] struct {
	db *gorm.DB
}

// NewBaseRepository verilen bağlantıyla generik repository oluşturur.
func NewBaseRepository[T any](db *gorm.DB) *BaseRepository[T] {
	return &BaseRepository[T]{db: db}
}

func (r *BaseRepository[T]) getDB(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

func (r *BaseRepository[T]) Create(ctx context.Context, entity *T) error {
	if entity == nil {
		return errors.New("oluşturulacak kayıt nil olamaz")
	}
	return r.getDB(ctx).Create(entity).Error
}

func (r *BaseRepository[T]) FindByID(ctx context.Context, id uint) (*T, error) {
	if id == 0 {
		return nil, errors.New("geçersiz ID")
	}
	var entity T
	err := r.getDB(ctx).First(&entity, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

func (r *BaseRepository[T]) Save(ctx context.Context, entity *T) error {
	if entity == nil {
		return errors.New("kaydedilecek kayıt nil olamaz")
	}
	return r.getDB(ctx).Save(entity).Error
}

func (r *BaseRepository[T]) Delete(ctx context.Context, entity *T) error {
	if entity == nil {
		return errors.New("silinecek kayıt nil olamaz")
	}
	result := r.getDB(ctx).Delete(entity)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *BaseRepository[T]) Count(ctx context.Context) (int64, error) {
	var count int64
	var entity T
	err := r.getDB(ctx).Model(&entity).Count(&count).Error
	return count, err
}

var _ IBaseRepository[struct{}] = (*BaseRepository[struct{}])(nil)
