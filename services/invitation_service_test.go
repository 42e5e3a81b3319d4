package services

import (
	"context"
	"testing"
	"time"

	"takvim.link/models"
	"takvim.link/pkg/unlock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type invitationServiceFixture struct {
	svc      *InvitationService
	repo     *fakeInvitationRepo
	calRepo  *fakeCalendarRepo
	dayRepo  *fakeCalendarDayRepo
	userRepo *fakeUserRepo
	mail     *fakeMailService
	owner    *models.User
	calendar *models.Calendar
	now      time.Time
}

func newInvitationServiceFixture(t *testing.T) *invitationServiceFixture {
	t.Helper()
	now := time.Date(2025, time.November, 1, 12, 0, 0, 0, time.UTC)
	dayRepo := newFakeCalendarDayRepo()
	calRepo := newFakeCalendarRepo(dayRepo)
	userRepo := newFakeUserRepo()
	mailSvc := &fakeMailService{}

	owner := userRepo.add(&models.User{Name: "Sahip", Email: "sahip@example.com"})
	calendar := &models.Calendar{OwnerID: owner.ID, Title: "Takvim", Year: 2025, PrimaryColor: "#ec4899"}
	require.NoError(t, calRepo.Create(context.Background(), calendar))

	svc := &InvitationService{
		repo:         newFakeInvitationRepo(),
		calendarRepo: calRepo,
		userRepo:     userRepo,
		userService:  &UserService{repo: userRepo},
		mailService:  mailSvc,
		clock:        unlock.FixedClock{Time: now},
		baseURL:      "https://takvim.example.com",
	}
	return &invitationServiceFixture{
		svc: svc, repo: svc.repo.(*fakeInvitationRepo), calRepo: calRepo, dayRepo: dayRepo,
		userRepo: userRepo, mail: mailSvc, owner: owner, calendar: calendar, now: now,
	}
}

func (f *invitationServiceFixture) addInvitation(inv *models.Invitation) *models.Invitation {
	if inv.Token == "" {
		inv.Token = "tok-" + inv.Email
	}
	if inv.ExpiresAt.IsZero() {
		inv.ExpiresAt = f.now.Add(models.InvitationTTL)
	}
	_ = f.repo.Create(context.Background(), inv)
	return inv
}

func TestInviteRecipientCreatesTokenAndSendsMail(t *testing.T) {
	f := newInvitationServiceFixture(t)

	invitation, err := f.svc.InviteRecipient(context.Background(), f.calendar.ID, f.owner.ID, " Sevgili@Example.com ")
	require.NoError(t, err)

	assert.Equal(t, "sevgili@example.com", invitation.Email)
	assert.Len(t, invitation.Token, 64)
	assert.Equal(t, f.now.Add(models.InvitationTTL), invitation.ExpiresAt)
	require.NotNil(t, invitation.CalendarID)
	assert.Equal(t, f.calendar.ID, *invitation.CalendarID)

	// Posta arka planda gönderilir; handler akışını bloklamaz.
	assert.Eventually(t, func() bool { return f.mail.sentCount() == 1 }, time.Second, 10*time.Millisecond)
	to, acceptURL := f.mail.lastSent()
	assert.Equal(t, "sevgili@example.com", to)
	assert.Equal(t, BuildInvitationAcceptURL("https://takvim.example.com", invitation.Token), acceptURL)
}

func TestInviteRecipientValidation(t *testing.T) {
	f := newInvitationServiceFixture(t)
	ctx := context.Background()

	t.Run("geçersiz e-posta", func(t *testing.T) {
		_, err := f.svc.InviteRecipient(ctx, f.calendar.ID, f.owner.ID, "e-posta-degil")
		assert.ErrorIs(t, err, ErrInvInvalidEmail)
	})

	t.Run("yabancı davet edemez", func(t *testing.T) {
		stranger := f.userRepo.add(&models.User{Name: "Yabancı", Email: "yabanci@example.com"})
		_, err := f.svc.InviteRecipient(ctx, f.calendar.ID, stranger.ID, "sevgili@example.com")
		assert.ErrorIs(t, err, ErrInvitationForbidden)
	})

	t.Run("olmayan takvim", func(t *testing.T) {
		_, err := f.svc.InviteRecipient(ctx, 999, f.owner.ID, "sevgili@example.com")
		assert.ErrorIs(t, err, ErrCalendarNotFound)
	})
}

func TestResolveTokenRejections(t *testing.T) {
	f := newInvitationServiceFixture(t)
	ctx := context.Background()

	t.Run("bilinmeyen token geçersizdir", func(t *testing.T) {
		_, err := f.svc.ResolveToken(ctx, "yok-boyle-bir-token")
		assert.ErrorIs(t, err, ErrInvitationInvalid)
	})

	t.Run("süresi dolmuş davet", func(t *testing.T) {
		inv := f.addInvitation(&models.Invitation{
			Email: "gec@example.com", ExpiresAt: f.now.Add(-time.Hour),
		})
		_, err := f.svc.ResolveToken(ctx, inv.Token)
		assert.ErrorIs(t, err, ErrInvitationExpired)
	})

	t.Run("kullanılmış davet", func(t *testing.T) {
		accepted := f.now.Add(-time.Hour)
		inv := f.addInvitation(&models.Invitation{
			Email: "eski@example.com", AcceptedAt: &accepted,
		})
		_, err := f.svc.ResolveToken(ctx, inv.Token)
		assert.ErrorIs(t, err, ErrInvitationAlreadyUsed)
	})

	t.Run("kullanılmış ve süresi dolmuşsa kullanılmış kazanır", func(t *testing.T) {
		accepted := f.now.Add(-48 * time.Hour)
		inv := f.addInvitation(&models.Invitation{
			Email: "ikisi@example.com", AcceptedAt: &accepted, ExpiresAt: f.now.Add(-time.Hour),
		})
		_, err := f.svc.ResolveToken(ctx, inv.Token)
		assert.ErrorIs(t, err, ErrInvitationAlreadyUsed)
	})

	t.Run("geçerli davet çözülür", func(t *testing.T) {
		inv := f.addInvitation(&models.Invitation{Email: "taze@example.com"})
		resolved, err := f.svc.ResolveToken(ctx, inv.Token)
		require.NoError(t, err)
		assert.Equal(t, inv.ID, resolved.ID)
	})
}

func TestAcceptInvitationCreatesVerifiedUserAndBindsRecipient(t *testing.T) {
	f := newInvitationServiceFixture(t)
	inv := f.addInvitation(&models.Invitation{
		Email: "sevgili@example.com", CalendarID: &f.calendar.ID,
	})

	result, err := f.svc.AcceptInvitation(context.Background(), inv.Token, "Sevgili", "gizli-sifre")
	require.NoError(t, err)

	assert.Equal(t, "Sevgili", result.User.Name)
	assert.Equal(t, "sevgili@example.com", result.User.Email)
	require.NotNil(t, result.User.EmailVerifiedAt)
	assert.True(t, result.RecipientBound)

	require.NotNil(t, f.calendar.RecipientID)
	assert.Equal(t, result.User.ID, *f.calendar.RecipientID)

	stored, _ := f.repo.FindByToken(context.Background(), inv.Token)
	require.NotNil(t, stored.AcceptedAt)
	assert.Equal(t, f.now, *stored.AcceptedAt)
	require.NotNil(t, stored.UserID)
	assert.Equal(t, result.User.ID, *stored.UserID)
}

func TestAcceptInvitationExistingUserKeepsNameResetsPassword(t *testing.T) {
	f := newInvitationServiceFixture(t)
	existing := f.userRepo.add(&models.User{
		Name: "Asıl Ad", Email: "sevgili@example.com", PasswordHash: "eski-hash",
	})
	inv := f.addInvitation(&models.Invitation{Email: "sevgili@example.com"})

	result, err := f.svc.AcceptInvitation(context.Background(), inv.Token, "Başka Ad", "yeni-sifre")
	require.NoError(t, err)

	assert.Equal(t, existing.ID, result.User.ID)
	// Kayıtlı hesabın adı korunur; yalnızca parola sıfırlanır.
	assert.Equal(t, "Asıl Ad", result.User.Name)
	assert.NotEqual(t, "eski-hash", f.userRepo.users[existing.ID].PasswordHash)
}

func TestAcceptInvitationDoesNotOverwriteRecipient(t *testing.T) {
	f := newInvitationServiceFixture(t)
	first := f.userRepo.add(&models.User{Name: "İlk", Email: "ilk@example.com"})
	f.calendar.RecipientID = &first.ID
	inv := f.addInvitation(&models.Invitation{
		Email: "ikinci@example.com", CalendarID: &f.calendar.ID,
	})

	result, err := f.svc.AcceptInvitation(context.Background(), inv.Token, "İkinci", "gizli-sifre")
	require.NoError(t, err)

	// Kabul başarılıdır ama dolu alıcı değişmez.
	assert.False(t, result.RecipientBound)
	assert.Equal(t, first.ID, *f.calendar.RecipientID)
}

func TestAcceptInvitationValidation(t *testing.T) {
	f := newInvitationServiceFixture(t)
	inv := f.addInvitation(&models.Invitation{Email: "sevgili@example.com"})
	ctx := context.Background()

	t.Run("ad zorunlu", func(t *testing.T) {
		_, err := f.svc.AcceptInvitation(ctx, inv.Token, "  ", "gizli-sifre")
		assert.ErrorIs(t, err, ErrInvNameRequired)
	})

	t.Run("kısa şifre", func(t *testing.T) {
		_, err := f.svc.AcceptInvitation(ctx, inv.Token, "Sevgili", "kisa")
		assert.ErrorIs(t, err, ErrInvPasswordTooShort)
	})

	t.Run("bilinmeyen token", func(t *testing.T) {
		_, err := f.svc.AcceptInvitation(ctx, "yok", "Sevgili", "gizli-sifre")
		assert.ErrorIs(t, err, ErrInvitationInvalid)
	})
}

func TestAcceptInvitationSecondAcceptLoses(t *testing.T) {
	f := newInvitationServiceFixture(t)
	inv := f.addInvitation(&models.Invitation{
		Email: "sevgili@example.com", CalendarID: &f.calendar.ID,
	})
	ctx := context.Background()

	_, err := f.svc.AcceptInvitation(ctx, inv.Token, "Sevgili", "gizli-sifre")
	require.NoError(t, err)

	_, err = f.svc.AcceptInvitation(ctx, inv.Token, "Sevgili", "gizli-sifre")
	assert.ErrorIs(t, err, ErrInvitationAlreadyUsed)
}

func TestActiveInvitationForCalendar(t *testing.T) {
	f := newInvitationServiceFixture(t)
	ctx := context.Background()

	// Bekleyen davet yokken hata değil nil döner.
	pending, err := f.svc.ActiveInvitationForCalendar(ctx, f.calendar.ID)
	require.NoError(t, err)
	assert.Nil(t, pending)

	inv := f.addInvitation(&models.Invitation{
		Email: "sevgili@example.com", CalendarID: &f.calendar.ID,
	})
	pending, err = f.svc.ActiveInvitationForCalendar(ctx, f.calendar.ID)
	require.NoError(t, err)
	require.NotNil(t, pending)
	assert.Equal(t, inv.ID, pending.ID)
}
