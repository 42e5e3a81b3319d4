package services

import (
	"bytes"
	"context"
	"io"
	"sort"
	"sync"
	"time"

	"takvim.link/models"
	"takvim.link/pkg/queryparams"
	"takvim.link/repositories"

	"gorm.io/gorm"
)

// Bellek içi repository sahteleri. WithTx kendilerini döndürür; servisler nil
// db ile kurulduğunda runInTx transaction açmadan çalışır.

type fakeUserRepo struct {
	users  map[uint]*models.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uint]*models.User{}, nextID: 1}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uint) (*models.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, userID uint, passwordHash string) error {
	u, ok := r.users[userID]
	if !ok {
		return repositories.ErrNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (r *fakeUserRepo) FindAllOrdered(_ context.Context) ([]models.User, error) {
	out := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeUserRepo) WithTx(*gorm.DB) repositories.IUserRepository { return r }

func (r *fakeUserRepo) add(user *models.User) *models.User {
	if user.ID == 0 {
		user.ID = r.nextID
		r.nextID++
	} else if user.ID >= r.nextID {
		r.nextID = user.ID + 1
	}
	r.users[user.ID] = user
	return user
}

type fakeCalendarRepo struct {
	calendars map[uint]*models.Calendar
	dayRepo   *fakeCalendarDayRepo
	nextID    uint
}

func newFakeCalendarRepo(dayRepo *fakeCalendarDayRepo) *fakeCalendarRepo {
	return &fakeCalendarRepo{calendars: map[uint]*models.Calendar{}, dayRepo: dayRepo, nextID: 1}
}

func (r *fakeCalendarRepo) Create(_ context.Context, calendar *models.Calendar) error {
	calendar.ID = r.nextID
	r.nextID++
	r.calendars[calendar.ID] = calendar
	return nil
}

func (r *fakeCalendarRepo) FindByID(_ context.Context, id uint) (*models.Calendar, error) {
	if c, ok := r.calendars[id]; ok {
		return c, nil
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeCalendarRepo) FindByIDWithDays(ctx context.Context, id uint) (*models.Calendar, error) {
	c, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.dayRepo != nil {
		days, _ := r.dayRepo.FindByCalendarOrdered(ctx, id)
		c.Days = days
	}
	return c, nil
}

func (r *fakeCalendarRepo) FindAllForUser(_ context.Context, userID uint) ([]models.Calendar, error) {
	var out []models.Calendar
	for _, c := range r.calendars {
		if c.OwnerID == userID || (c.RecipientID != nil && *c.RecipientID == userID) {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeCalendarRepo) FindAllPaginated(_ context.Context, _ queryparams.ListParams) ([]models.Calendar, int64, error) {
	var out []models.Calendar
	for _, c := range r.calendars {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (r *fakeCalendarRepo) SetRecipientIfEmpty(_ context.Context, calendarID, userID uint) (bool, error) {
	c, ok := r.calendars[calendarID]
	if !ok {
		return false, repositories.ErrNotFound
	}
	if c.RecipientID != nil {
		return false, nil
	}
	c.RecipientID = &userID
	return true, nil
}

func (r *fakeCalendarRepo) Delete(_ context.Context, calendar *models.Calendar, _ uint) error {
	if _, ok := r.calendars[calendar.ID]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.calendars, calendar.ID)
	if r.dayRepo != nil {
		r.dayRepo.deleteByCalendar(calendar.ID)
	}
	return nil
}

func (r *fakeCalendarRepo) WithTx(*gorm.DB) repositories.ICalendarRepository { return r }

type fakeCalendarDayRepo struct {
	days     map[uint]*models.CalendarDay
	calRepo  *fakeCalendarRepo
	nextID   uint
	unlockAt map[uint]time.Time
}

func newFakeCalendarDayRepo() *fakeCalendarDayRepo {
	return &fakeCalendarDayRepo{days: map[uint]*models.CalendarDay{}, nextID: 1, unlockAt: map[uint]time.Time{}}
}

func (r *fakeCalendarDayRepo) CreateBatch(_ context.Context, days []models.CalendarDay) error {
	for i := range days {
		d := days[i]
		d.ID = r.nextID
		r.nextID++
		r.days[d.ID] = &d
	}
	return nil
}

func (r *fakeCalendarDayRepo) FindByID(_ context.Context, id uint) (*models.CalendarDay, error) {
	d, ok := r.days[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	if r.calRepo != nil {
		if c, ok := r.calRepo.calendars[d.CalendarID]; ok {
			d.Calendar = *c
		}
	}
	return d, nil
}

func (r *fakeCalendarDayRepo) FindByCalendarOrdered(_ context.Context, calendarID uint) ([]models.CalendarDay, error) {
	var out []models.CalendarDay
	for _, d := range r.days {
		if d.CalendarID == calendarID {
			out = append(out, *d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DayNumber < out[j].DayNumber })
	return out, nil
}

func (r *fakeCalendarDayRepo) Save(_ context.Context, day *models.CalendarDay) error {
	if _, ok := r.days[day.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.days[day.ID] = day
	return nil
}

func (r *fakeCalendarDayRepo) Unlock(_ context.Context, dayID uint, at time.Time) (bool, error) {
	d, ok := r.days[dayID]
	if !ok {
		return false, repositories.ErrNotFound
	}
	if d.UnlockedAt != nil {
		return false, nil
	}
	unlockedAt := at
	d.UnlockedAt = &unlockedAt
	r.unlockAt[dayID] = at
	return true, nil
}

func (r *fakeCalendarDayRepo) CountByAudioFileID(_ context.Context, audioFileID uint) (int64, error) {
	var n int64
	for _, d := range r.days {
		if d.AudioFileID != nil && *d.AudioFileID == audioFileID {
			n++
		}
	}
	return n, nil
}

func (r *fakeCalendarDayRepo) WithTx(*gorm.DB) repositories.ICalendarDayRepository { return r }

func (r *fakeCalendarDayRepo) deleteByCalendar(calendarID uint) {
	for id, d := range r.days {
		if d.CalendarID == calendarID {
			delete(r.days, id)
		}
	}
}

func (r *fakeCalendarDayRepo) add(day *models.CalendarDay) *models.CalendarDay {
	if day.ID == 0 {
		day.ID = r.nextID
		r.nextID++
	} else if day.ID >= r.nextID {
		r.nextID = day.ID + 1
	}
	r.days[day.ID] = day
	return day
}

type fakeInvitationRepo struct {
	invitations map[uint]*models.Invitation
	nextID      uint
}

func newFakeInvitationRepo() *fakeInvitationRepo {
	return &fakeInvitationRepo{invitations: map[uint]*models.Invitation{}, nextID: 1}
}

func (r *fakeInvitationRepo) Create(_ context.Context, invitation *models.Invitation) error {
	invitation.ID = r.nextID
	r.nextID++
	r.invitations[invitation.ID] = invitation
	return nil
}

func (r *fakeInvitationRepo) FindByToken(_ context.Context, token string) (*models.Invitation, error) {
	for _, inv := range r.invitations {
		if inv.Token == token {
			return inv, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeInvitationRepo) FindActiveByCalendar(_ context.Context, calendarID uint, now time.Time) (*models.Invitation, error) {
	for _, inv := range r.invitations {
		if inv.CalendarID != nil && *inv.CalendarID == calendarID && !inv.IsAccepted() && !inv.IsExpired(now) {
			return inv, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeInvitationRepo) MarkAccepted(_ context.Context, invitationID, userID uint, at time.Time) (bool, error) {
	inv, ok := r.invitations[invitationID]
	if !ok {
		return false, repositories.ErrNotFound
	}
	if inv.AcceptedAt != nil {
		return false, nil
	}
	acceptedAt := at
	inv.AcceptedAt = &acceptedAt
	inv.UserID = &userID
	return true, nil
}

func (r *fakeInvitationRepo) WithTx(*gorm.DB) repositories.IInvitationRepository { return r }

type fakeAudioFileRepo struct {
	files  map[uint]*models.AudioFile
	nextID uint
}

func newFakeAudioFileRepo() *fakeAudioFileRepo {
	return &fakeAudioFileRepo{files: map[uint]*models.AudioFile{}, nextID: 1}
}

func (r *fakeAudioFileRepo) Create(_ context.Context, file *models.AudioFile) error {
	file.ID = r.nextID
	r.nextID++
	r.files[file.ID] = file
	return nil
}

func (r *fakeAudioFileRepo) FindByID(_ context.Context, id uint) (*models.AudioFile, error) {
	if f, ok := r.files[id]; ok {
		return f, nil
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeAudioFileRepo) FindAllOrdered(_ context.Context) ([]models.AudioFile, error) {
	out := make([]models.AudioFile, 0, len(r.files))
	for _, f := range r.files {
		out = append(out, *f)
	}
	return out, nil
}

func (r *fakeAudioFileRepo) Delete(_ context.Context, file *models.AudioFile) error {
	if _, ok := r.files[file.ID]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.files, file.ID)
	return nil
}

func (r *fakeAudioFileRepo) WithTx(*gorm.DB) repositories.IAudioFileRepository { return r }

// fakeStorage diske dokunmadan yazılan ve silinen yolları kaydeder.
type fakeStorage struct {
	stored  []string
	deleted []string
	nextN   int
}

func (s *fakeStorage) Store(dir, originalFilename string, content io.Reader) (string, error) {
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(content)
	s.nextN++
	path := dir + "/fake-" + originalFilename
	s.stored = append(s.stored, path)
	return path, nil
}

func (s *fakeStorage) Delete(path string) error {
	s.deleted = append(s.deleted, path)
	return nil
}

func (s *fakeStorage) URL(path string) string { return "/storage/" + path }

// fakeMailService gönderilen davet postalarını kaydeder. Gönderim arka plan
// goroutine'inden geldiği için erişim kilitle korunur.
type fakeMailService struct {
	mu       sync.Mutex
	sentTo   []string
	sentURLs []string
}

func (m *fakeMailService) SendInvitationMail(toEmail, acceptURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sentTo = append(m.sentTo, toEmail)
	m.sentURLs = append(m.sentURLs, acceptURL)
	return nil
}

func (m *fakeMailService) sentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sentTo)
}

func (m *fakeMailService) lastSent() (string, string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sentTo) == 0 {
		return "", ""
	}
	return m.sentTo[len(m.sentTo)-1], m.sentURLs[len(m.sentURLs)-1]
}
