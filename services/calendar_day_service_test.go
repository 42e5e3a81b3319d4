package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"takvim.link/models"
	"takvim.link/pkg/unlock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dayServiceFixture struct {
	svc       *CalendarDayService
	calRepo   *fakeCalendarRepo
	dayRepo   *fakeCalendarDayRepo
	userRepo  *fakeUserRepo
	audioRepo *fakeAudioFileRepo
	storage   *fakeStorage
	owner     *models.User
	calendar  *models.Calendar
}

func newDayServiceFixture(t *testing.T, now time.Time) *dayServiceFixture {
	t.Helper()
	dayRepo := newFakeCalendarDayRepo()
	calRepo := newFakeCalendarRepo(dayRepo)
	dayRepo.calRepo = calRepo
	userRepo := newFakeUserRepo()
	audioRepo := newFakeAudioFileRepo()
	storage := &fakeStorage{}

	owner := userRepo.add(&models.User{Name: "Sahip", Email: "sahip@example.com"})
	calendar := &models.Calendar{OwnerID: owner.ID, Title: "Takvim", Year: 2025, PrimaryColor: "#ec4899"}
	require.NoError(t, calRepo.Create(context.Background(), calendar))

	svc := &CalendarDayService{
		repo:      dayRepo,
		userRepo:  userRepo,
		audioRepo: audioRepo,
		storage:   storage,
		clock:     unlock.FixedClock{Time: now},
	}
	return &dayServiceFixture{
		svc: svc, calRepo: calRepo, dayRepo: dayRepo, userRepo: userRepo,
		audioRepo: audioRepo, storage: storage, owner: owner, calendar: calendar,
	}
}

func (f *dayServiceFixture) addDay(dayNumber int) *models.CalendarDay {
	return f.dayRepo.add(&models.CalendarDay{
		CalendarID:  f.calendar.ID,
		DayNumber:   dayNumber,
		GiftType:    models.GiftTypeText,
		ContentText: models.PlaceholderContentText,
	})
}

func decemberMorning(day int) time.Time {
	return time.Date(2025, time.December, day, 9, 0, 0, 0, time.UTC)
}

func TestUnlockDaySuccess(t *testing.T) {
	f := newDayServiceFixture(t, decemberMorning(10))
	day := f.addDay(5)

	result, err := f.svc.UnlockDay(context.Background(), day.ID, f.owner.ID, false)
	require.NoError(t, err)
	assert.False(t, result.AlreadyUnlocked)
	assert.Equal(t, unlock.ReasonUnlockable, result.Reason)
	require.NotNil(t, result.Day.UnlockedAt)
	assert.Equal(t, decemberMorning(10), *result.Day.UnlockedAt)
}

func TestUnlockDayAlreadyUnlockedIsIdempotent(t *testing.T) {
	f := newDayServiceFixture(t, decemberMorning(10))
	day := f.addDay(5)

	first, err := f.svc.UnlockDay(context.Background(), day.ID, f.owner.ID, false)
	require.NoError(t, err)
	firstUnlockedAt := *first.Day.UnlockedAt

	// İkinci istek hata değildir ve zaman damgasını değiştirmez.
	second, err := f.svc.UnlockDay(context.Background(), day.ID, f.owner.ID, false)
	require.NoError(t, err)
	assert.True(t, second.AlreadyUnlocked)
	assert.Equal(t, firstUnlockedAt, *second.Day.UnlockedAt)
}

func TestUnlockDayRejections(t *testing.T) {
	tests := []struct {
		name       string
		now        time.Time
		dayNumber  int
		wantReason unlock.Reason
	}{
		{"aralık dışı", time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC), 1, unlock.ReasonOutsideSeason},
		{"gelecek gün", decemberMorning(10), 15, unlock.ReasonFutureDay},
		{"erken saat", time.Date(2025, time.December, 10, 6, 0, 0, 0, time.UTC), 10, unlock.ReasonTooEarlyToday},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newDayServiceFixture(t, tt.now)
			day := f.addDay(tt.dayNumber)

			_, err := f.svc.UnlockDay(context.Background(), day.ID, f.owner.ID, false)
			var rejected *UnlockRejectedError
			require.ErrorAs(t, err, &rejected)
			assert.Equal(t, tt.wantReason, rejected.Reason)

			// Reddedilen gün kilitli kalır.
			stored, _ := f.dayRepo.FindByID(context.Background(), day.ID)
			assert.False(t, stored.IsUnlocked())
		})
	}
}

func TestUnlockDayEarlyUnlockAnyMonth(t *testing.T) {
	f := newDayServiceFixture(t, time.Date(2025, time.June, 1, 3, 0, 0, 0, time.UTC))
	day := f.addDay(25)
	day.AllowEarlyUnlock = true

	result, err := f.svc.UnlockDay(context.Background(), day.ID, f.owner.ID, false)
	require.NoError(t, err)
	assert.Equal(t, unlock.ReasonEarlyUnlock, result.Reason)
}

func TestUnlockDayAdminOverride(t *testing.T) {
	f := newDayServiceFixture(t, time.Date(2025, time.June, 1, 3, 0, 0, 0, time.UTC))
	admin := f.userRepo.add(&models.User{Name: "Admin", Email: "admin@example.com", IsAdmin: true})
	day := f.addDay(25)

	result, err := f.svc.UnlockDay(context.Background(), day.ID, admin.ID, false)
	require.NoError(t, err)
	assert.Equal(t, unlock.ReasonAdminOverride, result.Reason)
}

func TestUnlockDayDebugPolicy(t *testing.T) {
	ctx := context.Background()
	outOfSeason := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

	t.Run("izinli debug istekle etkinleşir", func(t *testing.T) {
		f := newDayServiceFixture(t, outOfSeason)
		f.svc.debug = unlock.DebugPolicy{Allowed: true}
		day := f.addDay(20)

		result, err := f.svc.UnlockDay(ctx, day.ID, f.owner.ID, true)
		require.NoError(t, err)
		assert.Equal(t, unlock.ReasonDebugOverride, result.Reason)
	})

	t.Run("kapalı debug istek bayrağını yok sayar", func(t *testing.T) {
		f := newDayServiceFixture(t, outOfSeason)
		day := f.addDay(20)

		_, err := f.svc.UnlockDay(ctx, day.ID, f.owner.ID, true)
		var rejected *UnlockRejectedError
		require.ErrorAs(t, err, &rejected)
		assert.Equal(t, unlock.ReasonOutsideSeason, rejected.Reason)
	})
}

func TestUnlockDayForbiddenForStranger(t *testing.T) {
	f := newDayServiceFixture(t, decemberMorning(10))
	stranger := f.userRepo.add(&models.User{Name: "Yabancı", Email: "yabanci@example.com"})
	day := f.addDay(5)

	_, err := f.svc.UnlockDay(context.Background(), day.ID, stranger.ID, false)
	assert.ErrorIs(t, err, ErrDayForbidden)
}

func TestUnlockDayConcurrentRequestsSingleWrite(t *testing.T) {
	f := newDayServiceFixture(t, decemberMorning(10))
	day := f.addDay(5)
	ctx := context.Background()

	// Sahte repo'nun Unlock'u atomik CAS davranışını taklit eder; kilitle
	// sarılarak gerçek yarış koşulları elenir, karar mantığı sınanır.
	var mu sync.Mutex
	var winners, idempotent int
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			mu.Lock()
			defer mu.Unlock()
			result, err := f.svc.UnlockDay(ctx, day.ID, f.owner.ID, false)
			if err != nil {
				return
			}
			if result.AlreadyUnlocked {
				idempotent++
			} else {
				winners++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, winners)
	assert.Equal(t, 7, idempotent)
}

func TestUpdateDaySetsConfiguredAndContent(t *testing.T) {
	f := newDayServiceFixture(t, decemberMorning(1))
	day := f.addDay(3)

	updated, err := f.svc.UpdateDay(context.Background(), day.ID, f.owner.ID, UpdateDayInput{
		GiftType:    models.GiftTypeText,
		Title:       "Sürpriz",
		ContentText: "Bugün sinemaya gidiyoruz!",
	})
	require.NoError(t, err)
	assert.True(t, updated.IsConfigured)
	assert.Equal(t, "Sürpriz", updated.Title)
	assert.Equal(t, "Bugün sinemaya gidiyoruz!", updated.ContentText)
}

func TestUpdateDayValidation(t *testing.T) {
	f := newDayServiceFixture(t, decemberMorning(1))
	day := f.addDay(3)
	ctx := context.Background()

	t.Run("geçersiz hediye türü", func(t *testing.T) {
		_, err := f.svc.UpdateDay(ctx, day.ID, f.owner.ID, UpdateDayInput{GiftType: "mystery", Title: "X"})
		assert.ErrorIs(t, err, ErrDayInvalidGiftType)
	})

	t.Run("başlık zorunlu", func(t *testing.T) {
		_, err := f.svc.UpdateDay(ctx, day.ID, f.owner.ID, UpdateDayInput{GiftType: models.GiftTypeText, ContentText: "Metin"})
		assert.ErrorIs(t, err, ErrDayInvalidInput)
	})

	t.Run("metin hediyesi içerik ister", func(t *testing.T) {
		_, err := f.svc.UpdateDay(ctx, day.ID, f.owner.ID, UpdateDayInput{GiftType: models.GiftTypeText, Title: "X"})
		assert.ErrorIs(t, err, ErrDayInvalidInput)
	})

	t.Run("ürün hediyesi ürün kodu ister", func(t *testing.T) {
		_, err := f.svc.UpdateDay(ctx, day.ID, f.owner.ID, UpdateDayInput{GiftType: models.GiftTypeProduct, Title: "X"})
		assert.ErrorIs(t, err, ErrDayInvalidInput)
	})

	t.Run("ses URL'si ve dosyası birlikte verilemez", func(t *testing.T) {
		_, err := f.svc.UpdateDay(ctx, day.ID, f.owner.ID, UpdateDayInput{
			GiftType: models.GiftTypeText, Title: "X", ContentText: "Metin",
			AudioURL: "https://example.com/a.mp3", AudioFileID: 7,
		})
		assert.ErrorIs(t, err, ErrDayAudioConflict)
	})
}

func TestUpdateDayAudioModes(t *testing.T) {
	f := newDayServiceFixture(t, decemberMorning(1))
	ctx := context.Background()
	audioFile := &models.AudioFile{Name: "Jingle", FilePath: "audio_files/jingle.mp3"}
	require.NoError(t, f.audioRepo.Create(ctx, audioFile))

	day := f.addDay(3)

	// URL modu: dosya referansı temizlenir.
	updated, err := f.svc.UpdateDay(ctx, day.ID, f.owner.ID, UpdateDayInput{
		GiftType: models.GiftTypeText, Title: "X", ContentText: "Metin",
		AudioMode: AudioModeURL, AudioURL: "https://example.com/a.mp3",
	})
	require.NoError(t, err)
	require.NotNil(t, updated.AudioURL)
	assert.Nil(t, updated.AudioFileID)

	// Dosya modu: URL temizlenir.
	updated, err = f.svc.UpdateDay(ctx, day.ID, f.owner.ID, UpdateDayInput{
		GiftType: models.GiftTypeText, Title: "X", ContentText: "Metin",
		AudioMode: AudioModeFile, AudioFileID: audioFile.ID,
	})
	require.NoError(t, err)
	assert.Nil(t, updated.AudioURL)
	require.NotNil(t, updated.AudioFileID)
	assert.Equal(t, audioFile.ID, *updated.AudioFileID)

	// Olmayan dosya reddedilir.
	_, err = f.svc.UpdateDay(ctx, day.ID, f.owner.ID, UpdateDayInput{
		GiftType: models.GiftTypeText, Title: "X", ContentText: "Metin",
		AudioMode: AudioModeFile, AudioFileID: 999,
	})
	assert.ErrorIs(t, err, ErrDayAudioNotFound)

	// Temizleme modu her iki kaynağı da kaldırır.
	updated, err = f.svc.UpdateDay(ctx, day.ID, f.owner.ID, UpdateDayInput{
		GiftType: models.GiftTypeText, Title: "X", ContentText: "Metin", AudioMode: AudioModeClear,
	})
	require.NoError(t, err)
	assert.Nil(t, updated.AudioURL)
	assert.Nil(t, updated.AudioFileID)
}

func TestUpdateDayReplacesImageAndDeletesOld(t *testing.T) {
	f := newDayServiceFixture(t, decemberMorning(1))
	ctx := context.Background()
	day := f.addDay(3)
	oldPath := "day_images/old.png"
	day.ContentImagePath = &oldPath

	updated, err := f.svc.UpdateDay(ctx, day.ID, f.owner.ID, UpdateDayInput{
		GiftType: models.GiftTypeImageText, Title: "X", ContentText: "Metin",
		NewImagePath: "day_images/new.png",
	})
	require.NoError(t, err)
	require.NotNil(t, updated.ContentImagePath)
	assert.Equal(t, "day_images/new.png", *updated.ContentImagePath)
	assert.Contains(t, f.storage.deleted, oldPath)
}

func TestUpdateDayForbiddenForNonManager(t *testing.T) {
	f := newDayServiceFixture(t, decemberMorning(1))
	recipient := f.userRepo.add(&models.User{Name: "Alıcı", Email: "alici@example.com"})
	f.calendar.RecipientID = &recipient.ID
	day := f.addDay(3)

	// Alıcı günü görebilir ama içeriğini düzenleyemez.
	_, err := f.svc.UpdateDay(context.Background(), day.ID, recipient.ID, UpdateDayInput{
		GiftType: models.GiftTypeText, Title: "X",
	})
	assert.ErrorIs(t, err, ErrDayForbidden)
}

func TestSetEarlyUnlock(t *testing.T) {
	f := newDayServiceFixture(t, decemberMorning(1))
	day := f.addDay(20)

	require.NoError(t, f.svc.SetEarlyUnlock(context.Background(), day.ID, f.owner.ID, true))
	stored, _ := f.dayRepo.FindByID(context.Background(), day.ID)
	assert.True(t, stored.AllowEarlyUnlock)

	require.NoError(t, f.svc.SetEarlyUnlock(context.Background(), day.ID, f.owner.ID, false))
	stored, _ = f.dayRepo.FindByID(context.Background(), day.ID)
	assert.False(t, stored.AllowEarlyUnlock)
}
