package services

import (
	"context"
	"testing"
	"time"

	"takvim.link/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestAuthenticate(t *testing.T) {
	userRepo := newFakeUserRepo()
	user := userRepo.add(&models.User{
		Name: "Sahip", Email: "sahip@example.com",
		PasswordHash: hashPassword(t, "dogru-sifre"),
	})
	svc := &AuthService{userRepo: userRepo}
	ctx := context.Background()

	t.Run("doğru kimlik bilgileri", func(t *testing.T) {
		got, err := svc.Authenticate(ctx, "sahip@example.com", "dogru-sifre")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
	})

	// Hesabın varlığı yanıt üzerinden sızdırılmaz; iki durum da aynı hatadır.
	t.Run("yanlış parola", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "sahip@example.com", "yanlis")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("bilinmeyen e-posta", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "yok@example.com", "dogru-sifre")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("boş girdi", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "", "")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestUpdatePassword(t *testing.T) {
	userRepo := newFakeUserRepo()
	user := userRepo.add(&models.User{
		Name: "Sahip", Email: "sahip@example.com",
		PasswordHash: hashPassword(t, "eski-sifre"),
	})
	svc := &AuthService{userRepo: userRepo}
	ctx := context.Background()

	t.Run("kısa yeni parola", func(t *testing.T) {
		err := svc.UpdatePassword(ctx, user.ID, "eski-sifre", "kisa")
		assert.ErrorIs(t, err, ErrPasswordTooShort)
	})

	t.Run("mevcut parola yanlış", func(t *testing.T) {
		err := svc.UpdatePassword(ctx, user.ID, "yanlis", "yeni-sifre-123")
		assert.ErrorIs(t, err, ErrCurrentPassword)
	})

	t.Run("başarılı değişiklik", func(t *testing.T) {
		require.NoError(t, svc.UpdatePassword(ctx, user.ID, "eski-sifre", "yeni-sifre-123"))
		_, err := svc.Authenticate(ctx, "sahip@example.com", "yeni-sifre-123")
		assert.NoError(t, err)
	})
}

func TestEnsureUserForInvitation(t *testing.T) {
	now := time.Date(2025, time.November, 1, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()

	t.Run("yeni kullanıcı doğrulanmış açılır", func(t *testing.T) {
		userRepo := newFakeUserRepo()
		svc := &UserService{repo: userRepo}

		user, err := svc.EnsureUserForInvitation(ctx, " Sevgili@Example.com ", "Sevgili", "gizli-sifre", now)
		require.NoError(t, err)
		assert.Equal(t, "sevgili@example.com", user.Email)
		require.NotNil(t, user.EmailVerifiedAt)
		assert.Equal(t, now, *user.EmailVerifiedAt)
	})

	t.Run("mevcut kullanıcının yalnızca parolası sıfırlanır", func(t *testing.T) {
		userRepo := newFakeUserRepo()
		svc := &UserService{repo: userRepo}
		existing := userRepo.add(&models.User{
			Name: "Asıl Ad", Email: "sevgili@example.com", PasswordHash: "eski-hash",
		})

		user, err := svc.EnsureUserForInvitation(ctx, "sevgili@example.com", "Başka Ad", "yeni-sifre", now)
		require.NoError(t, err)
		assert.Equal(t, existing.ID, user.ID)
		assert.Equal(t, "Asıl Ad", user.Name)
		assert.NotEqual(t, "eski-hash", user.PasswordHash)
		assert.Nil(t, user.EmailVerifiedAt)
	})

	t.Run("boş parola reddedilir", func(t *testing.T) {
		svc := &UserService{repo: newFakeUserRepo()}
		_, err := svc.EnsureUserForInvitation(ctx, "sevgili@example.com", "Sevgili", "", now)
		assert.ErrorIs(t, err, ErrUserInvalidInput)
	})
}
