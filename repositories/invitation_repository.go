package repositories

import (
	"context"
	"errors"
	"time"

	"takvim.link/configs"
	"takvim.link/configs/configslog"
	"takvim.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IInvitationRepository davet veritabanı işlemleri için arayüz.
type IInvitationRepository interface {
	Create(ctx context.Context, invitation *models.Invitation) error
	FindByToken(ctx context.Context, token string) (*models.Invitation, error)
	FindActiveByCalendar(ctx context.Context, calendarID uint, now time.Time) (*models.Invitation, error)
	MarkAccepted(ctx context.Context, invitationID, userID uint, at time.Time) (bool, error)
	WithTx(tx *gorm.DB) IInvitationRepository
}

// InvitationRepository IInvitationRepository arayüzünü uygular.
type InvitationRepository struct {
	db   *gorm.DB
	base *BaseRepository[models.Invitation]
}

// NewInvitationRepository yeni bir InvitationRepository örneği oluşturur.
func NewInvitationRepository() IInvitationRepository {
	db := configs.GetDB()
	return &InvitationRepository{db: db, base: NewBaseRepository[models.Invitation](db)}
}

// NewInvitationRepositoryTx transaction'a bağlı repository oluşturur.
func NewInvitationRepositoryTx(tx *gorm.DB) IInvitationRepository {
	return &InvitationRepository{db: tx, base: NewBaseRepository[models.Invitation](tx)}
}

// WithTx transaction'a bağlı kopyayı döndürür (tx nil ise kendisi).
func (r *InvitationRepository) WithTx(tx *gorm.DB) IInvitationRepository {
	if tx == nil {
		return r
	}
	return NewInvitationRepositoryTx(tx)
}

func (r *InvitationRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

// Create yeni bir davet kaydı oluşturur.
func (r *InvitationRepository) Create(ctx context.Context, invitation *models.Invitation) error {
	if invitation == nil || invitation.Token == "" {
		return errors.New("token'sız davet oluşturulamaz")
	}
	return r.base.Create(ctx, invitation)
}

// FindByToken daveti token ile bulur. Arama benzersiz indeksli sütunda tam
// eşleşmeyle yapılır.
func (r *InvitationRepository) FindByToken(ctx context.Context, token string) (*models.Invitation, error) {
	if token == "" {
		return nil, ErrNotFound
	}
	var invitation models.Invitation
	err := r.getDB(ctx).Preload("Calendar").Where("token = ?", token).First(&invitation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("InvitationRepository.FindByToken: DB error", zap.Error(err))
		return nil, err
	}
	return &invitation, nil
}

// FindActiveByCalendar takvimin hâlâ kabul edilebilir (süresi geçmemiş,
// kullanılmamış) davetini getirir; en geç sona erecek olan tercih edilir.
func (r *InvitationRepository) FindActiveByCalendar(ctx context.Context, calendarID uint, now time.Time) (*models.Invitation, error) {
	if calendarID == 0 {
		return nil, errors.New("geçersiz Calendar ID")
	}
	var invitation models.Invitation
	err := r.getDB(ctx).
		Where("calendar_id = ? AND accepted_at IS NULL AND expires_at > ?", calendarID, now).
		Order("expires_at desc").
		First(&invitation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("InvitationRepository.FindActiveByCalendar: DB error",
			zap.Uint("calendarID", calendarID), zap.Error(err))
		return nil, err
	}
	return &invitation, nil
}

// MarkAccepted daveti yalnızca henüz kabul edilmemişse kullanıcıya bağlar ve
// accepted_at'i damgalar (compare-and-set). Kabul terminaldir, geri alınamaz.
func (r *InvitationRepository) MarkAccepted(ctx context.Context, invitationID, userID uint, at time.Time) (bool, error) {
	if invitationID == 0 || userID == 0 {
		return false, errors.New("geçersiz Invitation veya User ID")
	}
	result := r.getDB(ctx).Model(&models.Invitation{}).
		Where("id = ? AND accepted_at IS NULL", invitationID).
		Updates(map[string]interface{}{"accepted_at": at, "user_id": userID})
	if result.Error != nil {
		configslog.Log.Error("InvitationRepository.MarkAccepted: DB error",
			zap.Uint("invitationID", invitationID), zap.Error(result.Error))
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

var _ IInvitationRepository = (*InvitationRepository)(nil)
