package repositories

import (
	"context"
	"errors"
	"strings"

	"takvim.link/configs"
	"takvim.link/configs/configslog"
	"takvim.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IUserRepository kullanıcı veritabanı işlemleri için arayüz.
type IUserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	UpdatePassword(ctx context.Context, userID uint, passwordHash string) error
	FindAllOrdered(ctx context.Context) ([]models.User, error)
	WithTx(tx *gorm.DB) IUserRepository
}

// UserRepository IUserRepository arayüzünü uygular.
type UserRepository struct {
	db   *gorm.DB
	base *BaseRepository[models.User]
}

// NewUserRepository yeni bir UserRepository örneği oluşturur.
func NewUserRepository() IUserRepository {
	db := configs.GetDB()
	return &UserRepository{db: db, base: NewBaseRepository[models.User](db)}
}

// NewUserRepositoryTx transaction'a bağlı repository oluşturur.
func NewUserRepositoryTx(tx *gorm.DB) IUserRepository {
	return &UserRepository{db: tx, base: NewBaseRepository[models.User](tx)}
}

// WithTx transaction'a bağlı kopyayı döndürür (tx nil ise kendisi).
func (r *UserRepository) WithTx(tx *gorm.DB) IUserRepository {
	if tx == nil {
		return r
	}
	return NewUserRepositoryTx(tx)
}

func (r *UserRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

// Create yeni bir kullanıcı kaydı oluşturur. E-posta normalleştirilerek saklanır.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if user == nil || user.Email == "" {
		return errors.New("geçersiz kullanıcı kaydı")
	}
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	return r.base.Create(ctx, user)
}

// FindByID ID ile kullanıcıyı bulur.
func (r *UserRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	return r.base.FindByID(ctx, id)
}

// FindByEmail e-posta ile kullanıcıyı bulur (büyük/küçük harf duyarsız).
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, errors.New("aranacak e-posta boş olamaz")
	}
	var user models.User
	err := r.getDB(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("UserRepository.FindByEmail: DB error", zap.String("email", email), zap.Error(err))
		return nil, err
	}
	return &user, nil
}

// UpdatePassword yalnızca parola hash'ini günceller.
func (r *UserRepository) UpdatePassword(ctx context.Context, userID uint, passwordHash string) error {
	if userID == 0 || passwordHash == "" {
		return errors.New("geçersiz kullanıcı ID veya parola hash'i")
	}
	result := r.getDB(ctx).Model(&models.User{}).Where("id = ?", userID).
		Update("password_hash", passwordHash)
	if result.Error != nil {
		configslog.Log.Error("UserRepository.UpdatePassword: DB error", zap.Uint("userID", userID), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// FindAllOrdered tüm kullanıcıları isme göre sıralı getirir (admin formları için).
func (r *UserRepository) FindAllOrdered(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.getDB(ctx).Order("name asc").Find(&users).Error
	if err != nil {
		configslog.Log.Error("UserRepository.FindAllOrdered: DB error", zap.Error(err))
		return nil, err
	}
	return users, nil
}

var _ IUserRepository = (*UserRepository)(nil)
