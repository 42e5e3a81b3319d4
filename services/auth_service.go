package services

import (
	"context"
	"errors"

	"takvim.link/models"
	"takvim.link/repositories"

	"golang.org/x/crypto/bcrypt"
)

// AuthServiceError özel servis hataları.
type AuthServiceError string

func (e AuthServiceError) Error() string { return string(e) }

const (
	// Kimlik doğrulama hatası e-posta/parola ayrımı yapmaz; hesap varlığı sızdırılmaz.
	ErrInvalidCredentials AuthServiceError = "e-posta veya parola hatalı"
	ErrCurrentPassword    AuthServiceError = "mevcut parola hatalı"
	ErrPasswordTooShort   AuthServiceError = "yeni parola en az 8 karakter olmalı"
)

const passwordMinLen = 8

// IAuthService kimlik doğrulama işlemleri için arayüz.
type IAuthService interface {
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	UpdatePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error
}

// AuthService IAuthService arayüzünü uygular.
type AuthService struct {
	userRepo repositories.IUserRepository
}

// NewAuthService yeni bir AuthService örneği oluşturur.
func NewAuthService() IAuthService {
	return &AuthService{userRepo: repositories.NewUserRepository()}
}

// Authenticate e-posta ve parolayı doğrular, başarılıysa kullanıcıyı döndürür.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// UpdatePassword mevcut parolayı doğrulayıp yenisini yazar.
func (s *AuthService) UpdatePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error {
	if len(newPassword) < passwordMinLen {
		return ErrPasswordTooShort
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrCurrentPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.userRepo.UpdatePassword(ctx, userID, string(hash))
}

var _ IAuthService = (*AuthService)(nil)
