package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"takvim.link/configs"
	"takvim.link/configs/configslog"
	"takvim.link/models"
	"takvim.link/pkg/unlock"
	"takvim.link/repositories"

	"gorm.io/gorm"
)

// InvitationServiceError özel servis hataları.
type InvitationServiceError string

func (e InvitationServiceError) Error() string { return string(e) }

const (
	// Üç red durumu kasıtlı olarak ayrıdır; kullanıcı hangisiyle
	// karşılaştığını bilmelidir.
	ErrInvitationInvalid     InvitationServiceError = "davet bağlantısı geçersiz"
	ErrInvitationExpired     InvitationServiceError = "davet bağlantısının süresi dolmuş"
	ErrInvitationAlreadyUsed InvitationServiceError = "davet bağlantısı daha önce kullanılmış"

	ErrInvitationForbidden      InvitationServiceError = "bu işlem için yetkiniz yok"
	ErrInvitationCreationFailed InvitationServiceError = "davet oluşturulamadı"
	ErrInvitationAcceptFailed   InvitationServiceError = "davet kabul edilemedi"
	ErrInvInvalidEmail          InvitationServiceError = "geçerli bir e-posta adresi girin"
	ErrInvNameRequired          InvitationServiceError = "ad zorunludur"
	ErrInvPasswordTooShort      InvitationServiceError = "şifre en az 8 karakter olmalı"
)

const invitationPasswordMinLen = 8

// AcceptResult davet kabulünün sonucu.
type AcceptResult struct {
	User       *models.User
	Invitation *models.Invitation
	// RecipientBound davet bir takvime bağlıysa ve alıcı bu kabulle
	// atandıysa true olur. Dolu bir alıcı asla üzerine yazılmaz.
	RecipientBound bool
}

// IInvitationService davet yaşam döngüsü işlemleri için arayüz.
type IInvitationService interface {
	InviteRecipient(ctx context.Context, calendarID, invitingUserID uint, email string) (*models.Invitation, error)
	ResolveToken(ctx context.Context, token string) (*models.Invitation, error)
	AcceptInvitation(ctx context.Context, token, name, password string) (*AcceptResult, error)
	ActiveInvitationForCalendar(ctx context.Context, calendarID uint) (*models.Invitation, error)
}

// InvitationService IInvitationService arayüzünü uygular.
type InvitationService struct {
	repo         repositories.IInvitationRepository
	calendarRepo repositories.ICalendarRepository
	userRepo     repositories.IUserRepository
	userService  IUserService
	mailService  IMailService
	clock        unlock.Clock
	baseURL      string
	db           *gorm.DB
}

// NewInvitationService yeni bir InvitationService örneği oluşturur.
func NewInvitationService() IInvitationService {
	return &InvitationService{
		repo:         repositories.NewInvitationRepository(),
		calendarRepo: repositories.NewCalendarRepository(),
		userRepo:     repositories.NewUserRepository(),
		userService:  NewUserService(),
		mailService:  NewMailService(),
		clock:        unlock.SystemClock{},
		baseURL:      configs.GetConfig().BaseURL,
		db:           configs.GetDB(),
	}
}

// InviteRecipient takvim için yeni bir davet üretir ve kabul bağlantısını
// e-postayla gönderir. Davet edilenin kayıtlı olması gerekmez; hesap kabul
// sırasında oluşturulur. E-posta gönderimi kabul akışını bloklamaz.
func (s *InvitationService) InviteRecipient(ctx context.Context, calendarID, invitingUserID uint, email string) (*models.Invitation, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvInvalidEmail
	}

	calendar, err := s.calendarRepo.FindByID(ctx, calendarID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCalendarNotFound
		}
		return nil, err
	}
	inviter, err := s.userRepo.FindByID(ctx, invitingUserID)
	if err != nil {
		return nil, ErrInvitationForbidden
	}
	if !calendar.IsManageableBy(inviter) {
		return nil, ErrInvitationForbidden
	}

	token, err := generateInvitationToken()
	if err != nil {
		configslog.SLog.Errorf("Davet token'ı üretilemedi: %v", err)
		return nil, ErrInvitationCreationFailed
	}

	invitation := &models.Invitation{
		Email:      email,
		Token:      token,
		CalendarID: &calendarID,
		ExpiresAt:  s.clock.Now().Add(models.InvitationTTL),
	}
	if err := s.repo.Create(models.ContextWithUserID(ctx, invitingUserID), invitation); err != nil {
		configslog.SLog.Errorf("Davet kaydedilemedi: Takvim %d: %v", calendarID, err)
		return nil, ErrInvitationCreationFailed
	}

	acceptURL := BuildInvitationAcceptURL(s.baseURL, token)
	sendInvitationMailAsync(s.mailService, email, acceptURL)

	configslog.SLog.Infof("Davet oluşturuldu: Takvim %d, E-posta: %s (Davet eden: %d)",
		calendarID, email, invitingUserID)
	return invitation, nil
}

// classify daveti üç ayrı red durumuna göre sınıflandırır. Sıra önemlidir:
// kullanılmış bir davet süresi dolmuş olsa da "kullanılmış" olarak raporlanır.
func (s *InvitationService) classify(invitation *models.Invitation) error {
	if invitation.IsAccepted() {
		return ErrInvitationAlreadyUsed
	}
	if invitation.IsExpired(s.clock.Now()) {
		return ErrInvitationExpired
	}
	return nil
}

// ResolveToken token'ı davete çözer. Bilinmeyen token, süresi dolmuş davet ve
// kullanılmış davet ayrı hatalarla reddedilir.
func (s *InvitationService) ResolveToken(ctx context.Context, token string) (*models.Invitation, error) {
	if token == "" {
		return nil, ErrInvitationInvalid
	}
	invitation, err := s.repo.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvitationInvalid
		}
		return nil, err
	}
	if err := s.classify(invitation); err != nil {
		return nil, err
	}
	return invitation, nil
}

// AcceptInvitation daveti kabul eder: kullanıcıyı bulur veya oluşturur, daveti
// tek atomik yazımla kullanılmış işaretler ve davet bir takvime bağlıysa boş
// alıcıyı atar. Tamamı tek transaction'dır; yarışan iki kabulden yalnızca biri
// kazanır, kaybeden "kullanılmış" hatası alır.
func (s *InvitationService) AcceptInvitation(ctx context.Context, token, name, password string) (*AcceptResult, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvNameRequired
	}
	if len(password) < invitationPasswordMinLen {
		return nil, ErrInvPasswordTooShort
	}

	var result *AcceptResult
	txErr := runInTx(s.db, ctx, func(txCtx context.Context, tx *gorm.DB) error {
		invitation, err := s.repo.FindByToken(txCtx, token)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrInvitationInvalid
			}
			return err
		}
		if err := s.classify(invitation); err != nil {
			return err
		}

		now := s.clock.Now()
		user, err := s.userService.EnsureUserForInvitation(txCtx, invitation.Email, name, password, now)
		if err != nil {
			return err
		}

		won, err := s.repo.MarkAccepted(txCtx, invitation.ID, user.ID, now)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvitationAcceptFailed, err)
		}
		if !won {
			// Yarışı başka bir kabul kazandı.
			return ErrInvitationAlreadyUsed
		}
		invitation.AcceptedAt = &now
		invitation.UserID = &user.ID

		result = &AcceptResult{User: user, Invitation: invitation}
		if invitation.CalendarID != nil {
			bound, err := s.calendarRepo.SetRecipientIfEmpty(txCtx, *invitation.CalendarID, user.ID)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrInvitationAcceptFailed, err)
			}
			result.RecipientBound = bound
			if !bound {
				configslog.SLog.Warnf("Takvim %d alıcısı zaten dolu; davet %d alıcıyı değiştirmedi",
					*invitation.CalendarID, invitation.ID)
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	configslog.SLog.Infof("Davet kabul edildi: ID %d, Kullanıcı: %d (Alıcı bağlandı: %t)",
		result.Invitation.ID, result.User.ID, result.RecipientBound)
	return result, nil
}

// ActiveInvitationForCalendar takvimin bekleyen davetini döndürür (yoksa nil).
// Takvim yönetim sayfasında kabul bağlantısını göstermek için kullanılır.
func (s *InvitationService) ActiveInvitationForCalendar(ctx context.Context, calendarID uint) (*models.Invitation, error) {
	invitation, err := s.repo.FindActiveByCalendar(ctx, calendarID, s.clock.Now())
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return invitation, nil
}

var _ IInvitationService = (*InvitationService)(nil)
