package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"takvim.link/configs"
	"takvim.link/configs/configslog"
	"takvim.link/models"
	"takvim.link/pkg/filestore"
	"takvim.link/repositories"

	"gorm.io/gorm"
)

// AudioFileServiceError özel servis hataları.
type AudioFileServiceError string

func (e AudioFileServiceError) Error() string { return string(e) }

const (
	ErrAudioNotFound       AudioFileServiceError = "ses dosyası bulunamadı"
	ErrAudioInvalidInput   AudioFileServiceError = "geçersiz ses dosyası girdisi"
	ErrAudioUploadFailed   AudioFileServiceError = "ses dosyası yüklenemedi"
	ErrAudioDeletionFailed AudioFileServiceError = "ses dosyası silinemedi"
	// Bir güne bağlı dosya silinemez; önce günlerden kaldırılmalı.
	ErrAudioFileInUse AudioFileServiceError = "ses dosyası bir veya daha fazla günde kullanılıyor"
)

const audioStorageDir = "audio_files"

// UploadAudioInput yeni ses dosyası girdisi.
type UploadAudioInput struct {
	Name             string
	Description      string
	OriginalFilename string
	MimeType         string
	FileSize         int64
	Content          io.Reader
}

// IAudioFileService paylaşılan ses kütüphanesi işlemleri için arayüz.
type IAudioFileService interface {
	UploadAudioFile(ctx context.Context, uploadingUserID uint, input UploadAudioInput) (*models.AudioFile, error)
	GetAudioFileByID(ctx context.Context, id uint) (*models.AudioFile, error)
	ListAudioFiles(ctx context.Context) ([]models.AudioFile, error)
	DeleteAudioFile(ctx context.Context, id, deletingUserID uint) error
}

// AudioFileService IAudioFileService arayüzünü uygular.
type AudioFileService struct {
	repo    repositories.IAudioFileRepository
	dayRepo repositories.ICalendarDayRepository
	storage filestore.Storage
	db      *gorm.DB
}

// NewAudioFileService yeni bir AudioFileService örneği oluşturur.
func NewAudioFileService(storage filestore.Storage) IAudioFileService {
	return &AudioFileService{
		repo:    repositories.NewAudioFileRepository(),
		dayRepo: repositories.NewCalendarDayRepository(),
		storage: storage,
		db:      configs.GetDB(),
	}
}

// UploadAudioFile dosyayı depoya yazar ve kütüphane kaydını oluşturur.
func (s *AudioFileService) UploadAudioFile(ctx context.Context, uploadingUserID uint, input UploadAudioInput) (*models.AudioFile, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, fmt.Errorf("%w: dosya adı zorunludur", ErrAudioInvalidInput)
	}
	if input.Content == nil {
		return nil, fmt.Errorf("%w: dosya içeriği zorunludur", ErrAudioInvalidInput)
	}

	path, err := s.storage.Store(audioStorageDir, input.OriginalFilename, input.Content)
	if err != nil {
		configslog.SLog.Errorf("Ses dosyası depoya yazılamadı: %s: %v", input.OriginalFilename, err)
		return nil, ErrAudioUploadFailed
	}

	audioFile := &models.AudioFile{
		Name:             input.Name,
		FilePath:         path,
		OriginalFilename: input.OriginalFilename,
		MimeType:         input.MimeType,
		FileSize:         input.FileSize,
		Description:      input.Description,
	}
	if err := s.repo.Create(models.ContextWithUserID(ctx, uploadingUserID), audioFile); err != nil {
		// Kayıt başarısızsa diskte yetim dosya bırakılmaz.
		_ = s.storage.Delete(path)
		configslog.SLog.Errorf("Ses dosyası kaydı oluşturulamadı: %s: %v", input.Name, err)
		return nil, ErrAudioUploadFailed
	}

	configslog.SLog.Infof("Ses dosyası yüklendi: ID %d, Ad: %s (Kullanıcı: %d)",
		audioFile.ID, audioFile.Name, uploadingUserID)
	return audioFile, nil
}

// GetAudioFileByID tek bir kütüphane kaydını getirir.
func (s *AudioFileService) GetAudioFileByID(ctx context.Context, id uint) (*models.AudioFile, error) {
	audioFile, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrAudioNotFound
		}
		return nil, err
	}
	return audioFile, nil
}

// ListAudioFiles kütüphanedeki tüm ses dosyalarını getirir.
func (s *AudioFileService) ListAudioFiles(ctx context.Context) ([]models.AudioFile, error) {
	return s.repo.FindAllOrdered(ctx)
}

// DeleteAudioFile kaydı ve diskteki dosyayı siler. Herhangi bir güne bağlı
// dosya reddedilir; referanslar sessizce koparılmaz.
func (s *AudioFileService) DeleteAudioFile(ctx context.Context, id, deletingUserID uint) error {
	audioFile, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrAudioNotFound
		}
		return err
	}

	refCount, err := s.dayRepo.CountByAudioFileID(ctx, id)
	if err != nil {
		return ErrAudioDeletionFailed
	}
	if refCount > 0 {
		return ErrAudioFileInUse
	}

	if err := s.repo.Delete(models.ContextWithUserID(ctx, deletingUserID), audioFile); err != nil {
		configslog.SLog.Errorf("Ses dosyası kaydı silinemedi: ID %d: %v", id, err)
		return ErrAudioDeletionFailed
	}
	if err := s.storage.Delete(audioFile.FilePath); err != nil {
		configslog.SLog.Warnf("Ses dosyası diskten silinemedi: %s: %v", audioFile.FilePath, err)
	}

	configslog.SLog.Infof("Ses dosyası silindi: ID %d, Ad: %s (Kullanıcı: %d)",
		id, audioFile.Name, deletingUserID)
	return nil
}

var _ IAudioFileService = (*AudioFileService)(nil)
