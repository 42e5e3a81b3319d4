package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"takvim.link/configs"
	"takvim.link/configs/configslog"
	"takvim.link/models"
	"takvim.link/pkg/filestore"
	"takvim.link/pkg/themes"
	"takvim.link/pkg/unlock"
	"takvim.link/repositories"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CalendarDayServiceError özel servis hataları.
type CalendarDayServiceError string

func (e CalendarDayServiceError) Error() string { return string(e) }

const (
	ErrDayNotFound        CalendarDayServiceError = "takvim günü bulunamadı"
	ErrDayForbidden       CalendarDayServiceError = "bu işlem için yetkiniz yok"
	ErrDayUpdateFailed    CalendarDayServiceError = "takvim günü güncellenemedi"
	ErrDayInvalidInput    CalendarDayServiceError = "geçersiz gün girdisi"
	ErrDayInvalidGiftType CalendarDayServiceError = "geçersiz hediye türü"
	ErrDayAudioConflict   CalendarDayServiceError = "ses için URL ve dosya aynı anda verilemez"
	ErrDayAudioNotFound   CalendarDayServiceError = "ses dosyası bulunamadı"
)

// UnlockRejectedError kural motorunun "henüz değil" sonuçları. Olağan akışın
// parçasıdır; gerekçe kodu kullanıcı mesajına çevrilir.
type UnlockRejectedError struct {
	Reason unlock.Reason
}

func (e *UnlockRejectedError) Error() string { return UnlockReasonMessage(e.Reason) }

// UnlockReasonMessage gerekçe kodunu kullanıcıya gösterilecek mesaja çevirir.
func UnlockReasonMessage(reason unlock.Reason) string {
	switch reason {
	case unlock.ReasonOutsideSeason:
		return "Bu takvim yalnızca Aralık ayında açılabilir."
	case unlock.ReasonFutureDay:
		return "Bu günün sırası henüz gelmedi."
	case unlock.ReasonTooEarlyToday:
		return "Bugünün hediyesi saat 07:00'de açılır."
	default:
		return "Bu gün şu anda açılamaz."
	}
}

// AudioMode gün güncellemesinde ses alanının nasıl ayarlanacağı.
type AudioMode string

const (
	AudioModeKeep  AudioMode = "keep"
	AudioModeClear AudioMode = "clear"
	AudioModeURL   AudioMode = "url"
	AudioModeFile  AudioMode = "file"
)

// UpdateDayInput gün içeriği güncelleme girdisi. NewImagePath handler tarafından
// depoya yazılmış yeni görselin yoludur; boşsa mevcut görsel korunur.
type UpdateDayInput struct {
	GiftType     models.GiftType
	Title        string
	ContentText  string
	ProductCode  string
	NewImagePath string

	AudioMode   AudioMode
	AudioURL    string
	AudioFileID uint

	ThemePrimary   string
	ThemeSecondary string
}

// UnlockResult kilit açma girişiminin sonucu.
type UnlockResult struct {
	Day             *models.CalendarDay
	AlreadyUnlocked bool
	Reason          unlock.Reason
}

// ICalendarDayService takvim günü işlemleri için arayüz.
type ICalendarDayService interface {
	GetDayForUser(ctx context.Context, dayID, requestingUserID uint) (*models.CalendarDay, error)
	UnlockDay(ctx context.Context, dayID, requestingUserID uint, debugRequested bool) (*UnlockResult, error)
	UpdateDay(ctx context.Context, dayID, updatingUserID uint, input UpdateDayInput) (*models.CalendarDay, error)
	SetEarlyUnlock(ctx context.Context, dayID, updatingUserID uint, allow bool) error
}

// CalendarDayService ICalendarDayService arayüzünü uygular.
type CalendarDayService struct {
	repo      repositories.ICalendarDayRepository
	userRepo  repositories.IUserRepository
	audioRepo repositories.IAudioFileRepository
	storage   filestore.Storage
	clock     unlock.Clock
	debug     unlock.DebugPolicy
	db        *gorm.DB
}

// NewCalendarDayService yeni bir CalendarDayService örneği oluşturur. Debug
// politikası konfigürasyondan okunur; istemci yalnızca istek bayrağı gönderebilir.
func NewCalendarDayService(storage filestore.Storage) ICalendarDayService {
	cfg := configs.GetConfig()
	return &CalendarDayService{
		repo:      repositories.NewCalendarDayRepository(),
		userRepo:  repositories.NewUserRepository(),
		audioRepo: repositories.NewAudioFileRepository(),
		storage:   storage,
		clock:     unlock.SystemClock{},
		debug: unlock.DebugPolicy{
			Allowed: cfg.CalendarDebugAllowed,
			Forced:  cfg.CalendarDebugForced,
		},
		db: configs.GetDB(),
	}
}

func (s *CalendarDayService) loadDayWithUser(ctx context.Context, dayID, userID uint) (*models.CalendarDay, *models.User, error) {
	day, err := s.repo.FindByID(ctx, dayID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil, ErrDayNotFound
		}
		return nil, nil, err
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, nil, ErrDayForbidden
	}
	return day, user, nil
}

// GetDayForUser günü getirir; sahip, alıcı veya admin görebilir.
func (s *CalendarDayService) GetDayForUser(ctx context.Context, dayID, requestingUserID uint) (*models.CalendarDay, error) {
	day, user, err := s.loadDayWithUser(ctx, dayID, requestingUserID)
	if err != nil {
		return nil, err
	}
	if !day.Calendar.IsViewableBy(user) {
		return nil, ErrDayForbidden
	}
	return day, nil
}

// UnlockDay kural motoruna danışıp günü açmayı dener. Açılmış bir günü tekrar
// açmak hata değildir; aynı başarıyla döner. Yarışan iki istekten kaybedeni de
// kazanmış gibi döner; unlocked_at tek atomik yazımla, yalnızca bir kez yazılır.
func (s *CalendarDayService) UnlockDay(ctx context.Context, dayID, requestingUserID uint, debugRequested bool) (*UnlockResult, error) {
	day, user, err := s.loadDayWithUser(ctx, dayID, requestingUserID)
	if err != nil {
		return nil, err
	}
	if !day.Calendar.IsViewableBy(user) {
		return nil, ErrDayForbidden
	}

	now := s.clock.Now()
	decision := unlock.Evaluate(unlock.Input{
		AlreadyUnlocked: day.IsUnlocked(),
		DayNumber:       day.DayNumber,
		AllowEarly:      day.AllowEarlyUnlock,
		Actor:           unlock.Actor{IsAdmin: user.IsAdmin},
		Now:             now,
		Debug:           s.debug,
		DebugRequested:  debugRequested,
	})

	if decision.Reason == unlock.ReasonAlreadyUnlocked {
		return &UnlockResult{Day: day, AlreadyUnlocked: true, Reason: decision.Reason}, nil
	}
	if !decision.Allowed {
		return nil, &UnlockRejectedError{Reason: decision.Reason}
	}

	won, err := s.repo.Unlock(models.ContextWithUserID(ctx, requestingUserID), day.ID, now)
	if err != nil {
		configslog.SLog.Errorf("Gün kilidi açılamadı: ID %d: %v", day.ID, err)
		return nil, ErrDayUpdateFailed
	}
	if won {
		day.UnlockedAt = &now
		configslog.SLog.Infof("Gün açıldı: Takvim %d, Gün %d (Kullanıcı: %d, Gerekçe: %s)",
			day.CalendarID, day.DayNumber, requestingUserID, decision.Reason)
		return &UnlockResult{Day: day, Reason: decision.Reason}, nil
	}
	// Yarışı başka bir istek kazandı; gün zaten açık.
	return &UnlockResult{Day: day, AlreadyUnlocked: true, Reason: unlock.ReasonAlreadyUnlocked}, nil
}

func validateDayInput(input *UpdateDayInput) error {
	if !models.ValidGiftType(input.GiftType) {
		return ErrDayInvalidGiftType
	}
	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return fmt.Errorf("%w: gün başlığı zorunludur", ErrDayInvalidInput)
	}
	input.ContentText = strings.TrimSpace(input.ContentText)
	switch input.GiftType {
	case models.GiftTypeText, models.GiftTypeImageText:
		if input.ContentText == "" {
			return fmt.Errorf("%w: hediye metni zorunludur", ErrDayInvalidInput)
		}
	case models.GiftTypeProduct:
		if strings.TrimSpace(input.ProductCode) == "" {
			return fmt.Errorf("%w: ürün hediyesi için ürün kodu zorunludur", ErrDayInvalidInput)
		}
	}
	if input.AudioMode == AudioModeURL && strings.TrimSpace(input.AudioURL) == "" {
		return fmt.Errorf("%w: ses bağlantısı boş olamaz", ErrDayInvalidInput)
	}
	if input.AudioMode == AudioModeFile && input.AudioFileID == 0 {
		return ErrDayAudioNotFound
	}
	if strings.TrimSpace(input.AudioURL) != "" && input.AudioFileID != 0 {
		return ErrDayAudioConflict
	}
	if input.ThemePrimary != "" && !themes.ValidHexColor(input.ThemePrimary) {
		return fmt.Errorf("%w: renk #rrggbb biçiminde olmalı", ErrDayInvalidInput)
	}
	if input.ThemeSecondary != "" && !themes.ValidHexColor(input.ThemeSecondary) {
		return fmt.Errorf("%w: renk #rrggbb biçiminde olmalı", ErrDayInvalidInput)
	}
	return nil
}

// UpdateDay gün içeriğini günceller; yalnızca takvimi yönetebilen kullanıcı
// yapabilir. İlk gerçek düzenleme günü yapılandırılmış sayar; görsel değişiminde
// eski dosya diskten silinir.
func (s *CalendarDayService) UpdateDay(ctx context.Context, dayID, updatingUserID uint, input UpdateDayInput) (*models.CalendarDay, error) {
	day, user, err := s.loadDayWithUser(ctx, dayID, updatingUserID)
	if err != nil {
		return nil, err
	}
	if !day.Calendar.IsManageableBy(user) {
		return nil, ErrDayForbidden
	}
	if err := validateDayInput(&input); err != nil {
		return nil, err
	}

	day.GiftType = input.GiftType
	day.Title = input.Title
	day.ContentText = input.ContentText
	day.ProductCode = nil
	if code := strings.TrimSpace(input.ProductCode); code != "" {
		day.ProductCode = &code
	}

	oldImagePath := ""
	if input.NewImagePath != "" {
		if day.ContentImagePath != nil {
			oldImagePath = *day.ContentImagePath
		}
		day.ContentImagePath = &input.NewImagePath
	}

	switch input.AudioMode {
	case AudioModeClear:
		day.ClearAudio()
	case AudioModeURL:
		day.SetAudioURL(strings.TrimSpace(input.AudioURL))
	case AudioModeFile:
		if _, err := s.audioRepo.FindByID(ctx, input.AudioFileID); err != nil {
			return nil, ErrDayAudioNotFound
		}
		day.SetAudioFile(input.AudioFileID)
	}

	if input.ThemePrimary == "" && input.ThemeSecondary == "" {
		day.ThemeOverride = nil
	} else {
		override := themes.Override{Primary: input.ThemePrimary, Secondary: input.ThemeSecondary}
		v := datatypes.NewJSONType(override)
		day.ThemeOverride = &v
	}

	// Kaydedilen her düzenleme gerçek içeriktir; gün artık yer tutucu değildir.
	day.IsConfigured = true

	if err := s.repo.Save(models.ContextWithUserID(ctx, updatingUserID), day); err != nil {
		configslog.SLog.Errorf("Gün güncellenemedi: ID %d: %v", day.ID, err)
		return nil, ErrDayUpdateFailed
	}

	if oldImagePath != "" && oldImagePath != input.NewImagePath {
		if err := s.storage.Delete(oldImagePath); err != nil {
			configslog.SLog.Warnf("Eski gün görseli silinemedi: %s: %v", oldImagePath, err)
		}
	}

	configslog.SLog.Infof("Gün güncellendi: Takvim %d, Gün %d (Kullanıcı: %d)",
		day.CalendarID, day.DayNumber, updatingUserID)
	return day, nil
}

// SetEarlyUnlock günün erken açma bayrağını ayarlar; yalnızca takvimi yönetebilen
// kullanıcı yapabilir. Bayrak açıkken gün her ay, gününü beklemeden açılabilir.
func (s *CalendarDayService) SetEarlyUnlock(ctx context.Context, dayID, updatingUserID uint, allow bool) error {
	day, user, err := s.loadDayWithUser(ctx, dayID, updatingUserID)
	if err != nil {
		return err
	}
	if !day.Calendar.IsManageableBy(user) {
		return ErrDayForbidden
	}

	day.AllowEarlyUnlock = allow
	if err := s.repo.Save(models.ContextWithUserID(ctx, updatingUserID), day); err != nil {
		configslog.SLog.Errorf("Erken açma bayrağı güncellenemedi: ID %d: %v", day.ID, err)
		return ErrDayUpdateFailed
	}
	return nil
}

var _ ICalendarDayService = (*CalendarDayService)(nil)
