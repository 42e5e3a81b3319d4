package services

import (
	"context"
	"strings"

	"takvim.link/configs"
	"takvim.link/configs/configslog"
	"takvim.link/models"
	"takvim.link/repositories"

	"gorm.io/gorm"
)

// IntroPageServiceError özel servis hataları.
type IntroPageServiceError string

func (e IntroPageServiceError) Error() string { return string(e) }

const (
	ErrIntroPageInvalidInput IntroPageServiceError = "başlık ve içerik zorunludur"
	ErrIntroPageUpdateFailed IntroPageServiceError = "karşılama sayfası güncellenemedi"
)

// IIntroPageService karşılama sayfası işlemleri için arayüz.
type IIntroPageService interface {
	GetIntroPage(ctx context.Context) (*models.IntroPage, error)
	UpdateIntroPage(ctx context.Context, updatingUserID uint, title, body string) (*models.IntroPage, error)
}

// IntroPageService IIntroPageService arayüzünü uygular.
type IntroPageService struct {
	repo repositories.IIntroPageRepository
	db   *gorm.DB
}

// NewIntroPageService yeni bir IntroPageService örneği oluşturur.
func NewIntroPageService() IIntroPageService {
	return &IntroPageService{
		repo: repositories.NewIntroPageRepository(),
		db:   configs.GetDB(),
	}
}

// GetIntroPage tekil karşılama sayfasını getirir; yoksa varsayılan içerikle oluşturur.
func (s *IntroPageService) GetIntroPage(ctx context.Context) (*models.IntroPage, error) {
	return s.repo.GetOrCreate(ctx)
}

// UpdateIntroPage karşılama sayfasının başlığını ve içeriğini günceller.
func (s *IntroPageService) UpdateIntroPage(ctx context.Context, updatingUserID uint, title, body string) (*models.IntroPage, error) {
	title = strings.TrimSpace(title)
	body = strings.TrimSpace(body)
	if title == "" || body == "" {
		return nil, ErrIntroPageInvalidInput
	}

	page, err := s.repo.GetOrCreate(ctx)
	if err != nil {
		return nil, err
	}
	page.Title = title
	page.Body = body
	if err := s.repo.Save(models.ContextWithUserID(ctx, updatingUserID), page); err != nil {
		configslog.SLog.Errorf("Karşılama sayfası güncellenemedi: %v", err)
		return nil, ErrIntroPageUpdateFailed
	}

	configslog.SLog.Infof("Karşılama sayfası güncellendi (Kullanıcı: %d)", updatingUserID)
	return page, nil
}

var _ IIntroPageService = (*IntroPageService)(nil)
