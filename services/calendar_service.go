package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"takvim.link/configs"
	"takvim.link/configs/configslog"
	"takvim.link/models"
	"takvim.link/pkg/queryparams"
	"takvim.link/pkg/themes"
	"takvim.link/pkg/unlock"
	"takvim.link/repositories"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CalendarServiceError özel servis hataları.
type CalendarServiceError string

func (e CalendarServiceError) Error() string { return string(e) }

const (
	ErrCalendarNotFound       CalendarServiceError = "takvim bulunamadı"
	ErrCalendarForbidden      CalendarServiceError = "bu işlem için yetkiniz yok"
	ErrCalendarCreationFailed CalendarServiceError = "takvim oluşturulamadı"
	ErrCalendarDeletionFailed CalendarServiceError = "takvim silinemedi"
	ErrCalInvalidInput        CalendarServiceError = "geçersiz takvim girdisi"
	ErrCalTitleRequired       CalendarServiceError = "takvim başlığı zorunludur"
	ErrCalYearOutOfRange      CalendarServiceError = "takvim yılı 2000 ile 2100 arasında olmalı"
	ErrCalInvalidColor        CalendarServiceError = "renk #rrggbb biçiminde olmalı"
	ErrCalInvalidThemeType    CalendarServiceError = "geçersiz tema türü"
	ErrCalSecondaryRequired   CalendarServiceError = "dual temada ikincil renk zorunludur"
	ErrCalSeasonalRequired    CalendarServiceError = "sezonluk temada sezon konfigürasyonu zorunludur"
)

// Takvim başına gün sayısı. Günler takvimle birlikte, tek transaction'da oluşturulur.
const daysPerCalendar = 31

// CreateCalendarInput yeni takvim girdisi.
type CreateCalendarInput struct {
	Title          string
	Year           int
	Description    string
	ThemeType      themes.ThemeType
	PrimaryColor   string
	SecondaryColor string
	SeasonalConfig *themes.SeasonalConfig
	AudioURL       string
}

// DayPresentation bir günün sunum görünümü: çözümlenmiş tema ve geri sayım hedefi.
type DayPresentation struct {
	Day          models.CalendarDay
	Theme        themes.Resolved
	NextUnlockAt *time.Time
}

// ICalendarService takvim işlemleri için arayüz.
type ICalendarService interface {
	CreateCalendar(ctx context.Context, ownerID uint, input CreateCalendarInput) (*models.Calendar, error)
	GetCalendarForUser(ctx context.Context, calendarID, requestingUserID uint) (*models.Calendar, error)
	ListCalendarsForUser(ctx context.Context, userID uint) ([]models.Calendar, error)
	GetAllCalendarsPaginated(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	DeleteCalendar(ctx context.Context, calendarID, deletingUserID uint) error
	GetExportableDays(ctx context.Context, calendarID, requestingUserID uint) (*models.Calendar, []models.CalendarDay, error)
	PresentDays(calendar *models.Calendar) []DayPresentation
}

// CalendarService ICalendarService arayüzünü uygular.
type CalendarService struct {
	repo     repositories.ICalendarRepository
	dayRepo  repositories.ICalendarDayRepository
	userRepo repositories.IUserRepository
	clock    unlock.Clock
	db       *gorm.DB
}

// NewCalendarService yeni bir CalendarService örneği oluşturur.
func NewCalendarService() ICalendarService {
	return &CalendarService{
		repo:     repositories.NewCalendarRepository(),
		dayRepo:  repositories.NewCalendarDayRepository(),
		userRepo: repositories.NewUserRepository(),
		clock:    unlock.SystemClock{},
		db:       configs.GetDB(),
	}
}

// ValidateCalendarInput temel alan doğrulamalarını yapar. Hatalar kullanıcıya
// alan bazında gösterilir; hiçbir doğrulama hatası kalıcı yazmaya yol açmaz.
func ValidateCalendarInput(input *CreateCalendarInput) error {
	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return ErrCalTitleRequired
	}
	if input.Year < models.CalendarYearMin || input.Year > models.CalendarYearMax {
		return ErrCalYearOutOfRange
	}

	if input.PrimaryColor == "" {
		input.PrimaryColor = models.DefaultPrimaryColor
	}
	if !themes.ValidHexColor(input.PrimaryColor) {
		return ErrCalInvalidColor
	}
	if input.SecondaryColor != "" && !themes.ValidHexColor(input.SecondaryColor) {
		return ErrCalInvalidColor
	}

	if input.ThemeType == "" {
		input.ThemeType = themes.ThemeTypeSingle
	}
	if !themes.ValidThemeType(input.ThemeType) {
		return ErrCalInvalidThemeType
	}
	switch input.ThemeType {
	case themes.ThemeTypeDual:
		if input.SecondaryColor == "" {
			return ErrCalSecondaryRequired
		}
	case themes.ThemeTypeSeasonal:
		if input.SeasonalConfig == nil {
			return ErrCalSeasonalRequired
		}
		// Tema anahtarları yazım anında katalogla doğrulanır.
		if err := themes.ValidateSeasonalConfig(*input.SeasonalConfig); err != nil {
			return fmt.Errorf("%w: %v", ErrCalInvalidInput, err)
		}
	}
	return nil
}

// CreateCalendar takvimi ve 31 gününün tamamını tek transaction'da oluşturur.
// Günler 1..31 numaralı, yer tutucu içerikli ve kilitli başlar; bu davranış
// oluşturanın rolünden bağımsızdır.
func (s *CalendarService) CreateCalendar(ctx context.Context, ownerID uint, input CreateCalendarInput) (*models.Calendar, error) {
	if ownerID == 0 {
		return nil, fmt.Errorf("%w: geçersiz sahip ID", ErrCalInvalidInput)
	}
	if err := ValidateCalendarInput(&input); err != nil {
		return nil, err
	}

	calendar := &models.Calendar{
		OwnerID:      ownerID,
		Title:        input.Title,
		Year:         input.Year,
		Description:  input.Description,
		ThemeType:    input.ThemeType,
		PrimaryColor: input.PrimaryColor,
	}
	if input.SecondaryColor != "" {
		calendar.SecondaryColor = &input.SecondaryColor
	}
	if input.SeasonalConfig != nil {
		cfg := datatypes.NewJSONType(*input.SeasonalConfig)
		calendar.SeasonalConfig = &cfg
	}
	if input.AudioURL != "" {
		calendar.AudioURL = &input.AudioURL
	}

	txErr := runInTx(s.db, models.ContextWithUserID(ctx, ownerID), func(txCtx context.Context, tx *gorm.DB) error {
		calRepo := s.repo.WithTx(tx)
		dayRepo := s.dayRepo.WithTx(tx)

		if err := calRepo.Create(txCtx, calendar); err != nil {
			return ErrCalendarCreationFailed
		}

		days := make([]models.CalendarDay, 0, daysPerCalendar)
		for n := 1; n <= daysPerCalendar; n++ {
			days = append(days, models.CalendarDay{
				CalendarID:   calendar.ID,
				DayNumber:    n,
				GiftType:     models.GiftTypeText,
				Title:        fmt.Sprintf("Gün %d", n),
				ContentText:  models.PlaceholderContentText,
				IsConfigured: false,
			})
		}
		if err := dayRepo.CreateBatch(txCtx, days); err != nil {
			return ErrCalendarCreationFailed
		}
		calendar.Days = days
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	configslog.SLog.Infof("Takvim oluşturuldu: ID %d, Başlık: %s, Yıl: %d (Sahip: %d)",
		calendar.ID, calendar.Title, calendar.Year, ownerID)
	return calendar, nil
}

// GetCalendarForUser takvimi günleriyle getirir; sahip, alıcı veya admin görebilir.
func (s *CalendarService) GetCalendarForUser(ctx context.Context, calendarID, requestingUserID uint) (*models.Calendar, error) {
	calendar, err := s.repo.FindByIDWithDays(ctx, calendarID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCalendarNotFound
		}
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, requestingUserID)
	if err != nil {
		return nil, ErrCalendarForbidden
	}
	if !calendar.IsViewableBy(user) {
		return nil, ErrCalendarForbidden
	}
	return calendar, nil
}

// ListCalendarsForUser kullanıcının sahibi veya alıcısı olduğu takvimleri getirir.
func (s *CalendarService) ListCalendarsForUser(ctx context.Context, userID uint) ([]models.Calendar, error) {
	if userID == 0 {
		return nil, fmt.Errorf("%w: geçersiz kullanıcı ID", ErrCalInvalidInput)
	}
	return s.repo.FindAllForUser(ctx, userID)
}

// GetAllCalendarsPaginated tüm takvimleri sayfalayarak getirir (admin için).
func (s *CalendarService) GetAllCalendarsPaginated(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	params.Validate()
	calendars, totalCount, err := s.repo.FindAllPaginated(ctx, params)
	if err != nil {
		return nil, err
	}
	return &queryparams.PaginatedResult{
		Data: calendars,
		Meta: queryparams.PaginationMeta{
			CurrentPage: params.Page, PerPage: params.PerPage,
			TotalItems: totalCount, TotalPages: queryparams.CalculateTotalPages(totalCount, params.PerPage),
		},
	}, nil
}

// DeleteCalendar takvimi ve tüm günlerini siler; yalnızca sahip veya admin yapabilir.
func (s *CalendarService) DeleteCalendar(ctx context.Context, calendarID, deletingUserID uint) error {
	calendar, err := s.repo.FindByID(ctx, calendarID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrCalendarNotFound
		}
		return err
	}

	user, err := s.userRepo.FindByID(ctx, deletingUserID)
	if err != nil {
		return ErrCalendarForbidden
	}
	if !calendar.IsManageableBy(user) {
		return ErrCalendarForbidden
	}

	if err := s.repo.Delete(models.ContextWithUserID(ctx, deletingUserID), calendar, deletingUserID); err != nil {
		configslog.SLog.Errorf("Takvim silinemedi: ID %d: %v", calendarID, err)
		return ErrCalendarDeletionFailed
	}
	configslog.SLog.Infof("Takvim ve günleri silindi: ID %d (Silen: %d)", calendarID, deletingUserID)
	return nil
}

// GetExportableDays PDF dışa aktarımına girecek günleri döndürür: yalnızca
// gerçek içeriği olan günler (yer tutucular IsConfigured bayrağıyla elenir).
func (s *CalendarService) GetExportableDays(ctx context.Context, calendarID, requestingUserID uint) (*models.Calendar, []models.CalendarDay, error) {
	calendar, err := s.GetCalendarForUser(ctx, calendarID, requestingUserID)
	if err != nil {
		return nil, nil, err
	}
	exportable := make([]models.CalendarDay, 0, len(calendar.Days))
	for _, day := range calendar.Days {
		if day.HasExportableContent() {
			exportable = append(exportable, day)
		}
	}
	return calendar, exportable, nil
}

// PresentDays her gün için çözümlenmiş temayı ve gerekiyorsa geri sayım hedefini
// hesaplar. Tema çözümlemesi saf olduğundan istemci aynı sonucu üretebilir.
func (s *CalendarService) PresentDays(calendar *models.Calendar) []DayPresentation {
	now := s.clock.Now()
	cfg := calendar.ThemeConfig()

	views := make([]DayPresentation, 0, len(calendar.Days))
	for _, day := range calendar.Days {
		view := DayPresentation{
			Day:   day,
			Theme: themes.Resolve(cfg, day.DayNumber, day.ThemeOverrideValue()),
		}
		if !day.IsUnlocked() {
			if target, ok := unlock.NextUnlockAt(day.DayNumber, calendar.Year, now); ok {
				view.NextUnlockAt = &target
			}
		}
		views = append(views, view)
	}
	return views
}

var _ ICalendarService = (*CalendarService)(nil)
