package services

import (
	"context"
	"testing"
	"time"

	"takvim.link/models"
	"takvim.link/pkg/themes"
	"takvim.link/pkg/unlock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func newCalendarServiceForTest() (*CalendarService, *fakeCalendarRepo, *fakeCalendarDayRepo, *fakeUserRepo) {
	dayRepo := newFakeCalendarDayRepo()
	calRepo := newFakeCalendarRepo(dayRepo)
	dayRepo.calRepo = calRepo
	userRepo := newFakeUserRepo()
	svc := &CalendarService{
		repo:     calRepo,
		dayRepo:  dayRepo,
		userRepo: userRepo,
		clock:    unlock.FixedClock{Time: time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)},
	}
	return svc, calRepo, dayRepo, userRepo
}

func validCalendarInput() CreateCalendarInput {
	return CreateCalendarInput{
		Title:        "Ayşe'nin Takvimi",
		Year:         2025,
		ThemeType:    themes.ThemeTypeSingle,
		PrimaryColor: "#ec4899",
	}
}

func TestCreateCalendarCreates31PlaceholderDays(t *testing.T) {
	svc, _, dayRepo, userRepo := newCalendarServiceForTest()
	owner := userRepo.add(&models.User{Name: "Mehmet", Email: "mehmet@example.com"})

	calendar, err := svc.CreateCalendar(context.Background(), owner.ID, validCalendarInput())
	require.NoError(t, err)
	require.NotZero(t, calendar.ID)

	days, err := dayRepo.FindByCalendarOrdered(context.Background(), calendar.ID)
	require.NoError(t, err)
	require.Len(t, days, 31)

	for i, day := range days {
		assert.Equal(t, i+1, day.DayNumber)
		assert.Equal(t, models.GiftTypeText, day.GiftType)
		assert.Equal(t, models.PlaceholderContentText, day.ContentText)
		assert.False(t, day.IsConfigured)
		assert.False(t, day.IsUnlocked())
		assert.False(t, day.AllowEarlyUnlock)
	}
}

func TestCreateCalendarValidation(t *testing.T) {
	svc, _, _, userRepo := newCalendarServiceForTest()
	owner := userRepo.add(&models.User{Name: "Mehmet", Email: "mehmet@example.com"})
	ctx := context.Background()

	t.Run("başlık zorunlu", func(t *testing.T) {
		input := validCalendarInput()
		input.Title = "   "
		_, err := svc.CreateCalendar(ctx, owner.ID, input)
		assert.ErrorIs(t, err, ErrCalTitleRequired)
	})

	t.Run("yıl aralığı", func(t *testing.T) {
		input := validCalendarInput()
		input.Year = 1999
		_, err := svc.CreateCalendar(ctx, owner.ID, input)
		assert.ErrorIs(t, err, ErrCalYearOutOfRange)

		input.Year = 2101
		_, err = svc.CreateCalendar(ctx, owner.ID, input)
		assert.ErrorIs(t, err, ErrCalYearOutOfRange)

		input.Year = 2000
		_, err = svc.CreateCalendar(ctx, owner.ID, input)
		assert.NoError(t, err)
	})

	t.Run("geçersiz renk", func(t *testing.T) {
		input := validCalendarInput()
		input.PrimaryColor = "kırmızı"
		_, err := svc.CreateCalendar(ctx, owner.ID, input)
		assert.ErrorIs(t, err, ErrCalInvalidColor)
	})

	t.Run("boş renk varsayılana düşer", func(t *testing.T) {
		input := validCalendarInput()
		input.PrimaryColor = ""
		calendar, err := svc.CreateCalendar(ctx, owner.ID, input)
		require.NoError(t, err)
		assert.Equal(t, models.DefaultPrimaryColor, calendar.PrimaryColor)
	})

	t.Run("dual tema ikincil renk ister", func(t *testing.T) {
		input := validCalendarInput()
		input.ThemeType = themes.ThemeTypeDual
		_, err := svc.CreateCalendar(ctx, owner.ID, input)
		assert.ErrorIs(t, err, ErrCalSecondaryRequired)
	})

	t.Run("sezonluk tema konfigürasyon ister", func(t *testing.T) {
		input := validCalendarInput()
		input.ThemeType = themes.ThemeTypeSeasonal
		_, err := svc.CreateCalendar(ctx, owner.ID, input)
		assert.ErrorIs(t, err, ErrCalSeasonalRequired)
	})

	t.Run("sezonluk tema bilinmeyen anahtarı reddeder", func(t *testing.T) {
		input := validCalendarInput()
		input.ThemeType = themes.ThemeTypeSeasonal
		input.SeasonalConfig = &themes.SeasonalConfig{
			Ranges: []themes.SeasonalRange{{Days: []int{5}, Theme: "halloween"}},
		}
		_, err := svc.CreateCalendar(ctx, owner.ID, input)
		assert.ErrorIs(t, err, ErrCalInvalidInput)
	})
}

func TestGetCalendarForUserAuthorization(t *testing.T) {
	svc, calRepo, _, userRepo := newCalendarServiceForTest()
	ctx := context.Background()

	owner := userRepo.add(&models.User{Name: "Sahip", Email: "sahip@example.com"})
	recipient := userRepo.add(&models.User{Name: "Alıcı", Email: "alici@example.com"})
	stranger := userRepo.add(&models.User{Name: "Yabancı", Email: "yabanci@example.com"})
	admin := userRepo.add(&models.User{Name: "Admin", Email: "admin@example.com", IsAdmin: true})

	calendar := &models.Calendar{OwnerID: owner.ID, RecipientID: &recipient.ID, Title: "Takvim", Year: 2025}
	require.NoError(t, calRepo.Create(ctx, calendar))

	_, err := svc.GetCalendarForUser(ctx, calendar.ID, owner.ID)
	assert.NoError(t, err)

	_, err = svc.GetCalendarForUser(ctx, calendar.ID, recipient.ID)
	assert.NoError(t, err)

	_, err = svc.GetCalendarForUser(ctx, calendar.ID, admin.ID)
	assert.NoError(t, err)

	_, err = svc.GetCalendarForUser(ctx, calendar.ID, stranger.ID)
	assert.ErrorIs(t, err, ErrCalendarForbidden)

	_, err = svc.GetCalendarForUser(ctx, 9999, owner.ID)
	assert.ErrorIs(t, err, ErrCalendarNotFound)
}

func TestDeleteCalendarAuthorization(t *testing.T) {
	svc, calRepo, dayRepo, userRepo := newCalendarServiceForTest()
	ctx := context.Background()

	owner := userRepo.add(&models.User{Name: "Sahip", Email: "sahip@example.com"})
	recipient := userRepo.add(&models.User{Name: "Alıcı", Email: "alici@example.com"})

	calendar, err := svc.CreateCalendar(ctx, owner.ID, validCalendarInput())
	require.NoError(t, err)
	calRepo.calendars[calendar.ID].RecipientID = &recipient.ID

	// Alıcı izleyicidir, silemez.
	err = svc.DeleteCalendar(ctx, calendar.ID, recipient.ID)
	assert.ErrorIs(t, err, ErrCalendarForbidden)

	// Sahip silebilir; günler de gider.
	err = svc.DeleteCalendar(ctx, calendar.ID, owner.ID)
	require.NoError(t, err)
	days, _ := dayRepo.FindByCalendarOrdered(ctx, calendar.ID)
	assert.Empty(t, days)
}

func TestGetExportableDaysFiltersPlaceholders(t *testing.T) {
	svc, calRepo, dayRepo, userRepo := newCalendarServiceForTest()
	ctx := context.Background()

	owner := userRepo.add(&models.User{Name: "Sahip", Email: "sahip@example.com"})
	calendar := &models.Calendar{OwnerID: owner.ID, Title: "Takvim", Year: 2025}
	require.NoError(t, calRepo.Create(ctx, calendar))

	imagePath := "day_images/x.png"
	dayRepo.add(&models.CalendarDay{CalendarID: calendar.ID, DayNumber: 1, GiftType: models.GiftTypeText, ContentText: models.PlaceholderContentText})
	dayRepo.add(&models.CalendarDay{CalendarID: calendar.ID, DayNumber: 2, GiftType: models.GiftTypeText, ContentText: "Gerçek içerik", IsConfigured: true})
	dayRepo.add(&models.CalendarDay{CalendarID: calendar.ID, DayNumber: 3, GiftType: models.GiftTypeImageText, ContentImagePath: &imagePath})
	dayRepo.add(&models.CalendarDay{CalendarID: calendar.ID, DayNumber: 4, GiftType: models.GiftTypeProduct})

	_, exportable, err := svc.GetExportableDays(ctx, calendar.ID, owner.ID)
	require.NoError(t, err)
	require.Len(t, exportable, 3)
	assert.Equal(t, 2, exportable[0].DayNumber)
	assert.Equal(t, 3, exportable[1].DayNumber)
	assert.Equal(t, 4, exportable[2].DayNumber)
}

func TestPresentDaysResolvesThemesAndCountdown(t *testing.T) {
	svc, calRepo, dayRepo, userRepo := newCalendarServiceForTest()
	ctx := context.Background()

	owner := userRepo.add(&models.User{Name: "Sahip", Email: "sahip@example.com"})
	seasonal := datatypes.NewJSONType(themes.SeasonalConfig{Ranges: themes.DefaultSeasonalRanges()})
	calendar := &models.Calendar{
		OwnerID:        owner.ID,
		Title:          "Takvim",
		Year:           2025,
		ThemeType:      themes.ThemeTypeSeasonal,
		PrimaryColor:   "#ec4899",
		SeasonalConfig: &seasonal,
	}
	require.NoError(t, calRepo.Create(ctx, calendar))

	unlockedAt := time.Date(2024, time.December, 25, 8, 0, 0, 0, time.UTC)
	dayRepo.add(&models.CalendarDay{CalendarID: calendar.ID, DayNumber: 25, UnlockedAt: &unlockedAt})
	dayRepo.add(&models.CalendarDay{CalendarID: calendar.ID, DayNumber: 12})

	loaded, err := calRepo.FindByIDWithDays(ctx, calendar.ID)
	require.NoError(t, err)

	views := svc.PresentDays(loaded)
	require.Len(t, views, 2)

	// Gün 12: eşleşme yok, ana renk; kilitli olduğundan geri sayım hedefi var.
	assert.Equal(t, "#ec4899", views[0].Theme.Primary)
	require.NotNil(t, views[0].NextUnlockAt)
	assert.Equal(t, time.Date(2025, time.December, 1, 7, 0, 0, 0, time.UTC), *views[0].NextUnlockAt)

	// Gün 25: Kerst teması; açık olduğundan geri sayım yok.
	assert.Equal(t, "#dc2626", views[1].Theme.Primary)
	assert.Nil(t, views[1].NextUnlockAt)
}
