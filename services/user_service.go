package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"takvim.link/configs/configslog"
	"takvim.link/models"
	"takvim.link/repositories"

	"golang.org/x/crypto/bcrypt"
)

// UserServiceError özel servis hataları.
type UserServiceError string

func (e UserServiceError) Error() string { return string(e) }

const (
	ErrUserNotFound         UserServiceError = "kullanıcı bulunamadı"
	ErrUserCreationFailed   UserServiceError = "kullanıcı oluşturulamadı"
	ErrUserInvalidInput     UserServiceError = "geçersiz kullanıcı girdisi"
	ErrPasswordHashingError UserServiceError = "parola oluşturulamadı"
)

// IUserService kullanıcı işlemleri için arayüz.
type IUserService interface {
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	// EnsureUserForInvitation davet kabulündeki find-or-create davranışı:
	// e-posta kayıtlıysa yalnızca parolası sıfırlanır, değilse doğrulanmış
	// yeni bir hesap açılır.
	EnsureUserForInvitation(ctx context.Context, email, name, password string, now time.Time) (*models.User, error)
}

// UserService IUserService arayüzünü uygular.
type UserService struct {
	repo repositories.IUserRepository
}

// NewUserService yeni bir UserService örneği oluşturur.
func NewUserService() IUserService {
	return &UserService{repo: repositories.NewUserRepository()}
}

// GetUserByID ID ile kullanıcıyı getirir.
func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// GetUserByEmail e-posta ile kullanıcıyı getirir.
func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// ListUsers tüm kullanıcıları isme göre sıralı getirir (admin formları için).
func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.repo.FindAllOrdered(ctx)
}

// EnsureUserForInvitation davetin e-postasıyla kullanıcıyı bulur ya da oluşturur.
func (s *UserService) EnsureUserForInvitation(ctx context.Context, email, name, password string, now time.Time) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, ErrUserInvalidInput
	}

	hashBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrPasswordHashingError
	}
	hash := string(hashBytes)

	existing, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		// Mevcut hesapta yalnızca parola sıfırlanır; ad ve diğer alanlar korunur.
		if err := s.repo.UpdatePassword(ctx, existing.ID, hash); err != nil {
			return nil, err
		}
		existing.PasswordHash = hash
		return existing, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	verifiedAt := now
	user := &models.User{
		Name:            strings.TrimSpace(name),
		Email:           email,
		PasswordHash:    hash,
		EmailVerifiedAt: &verifiedAt, // Davet e-postayla geldiği için adres doğrulanmış sayılır.
	}
	if err := s.repo.Create(ctx, user); err != nil {
		configslog.SLog.Errorf("Davet kabulünde kullanıcı oluşturulamadı: %v", err)
		return nil, ErrUserCreationFailed
	}
	configslog.SLog.Infof("Davet kabulüyle yeni kullanıcı oluşturuldu: ID %d", user.ID)
	return user, nil
}

var _ IUserService = (*UserService)(nil)
