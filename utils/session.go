package utils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// Oturum anahtarları.
const (
	SessionKeyUserID   = "user_id"
	SessionKeyUserName = "user_name"
	SessionKeyIsAdmin  = "is_admin"
)

var ErrSessionStoreMissing = errors.New("session store locals içinde bulunamadı")

// SessionStart locals'a konan store üzerinden isteğin oturumunu açar.
func SessionStart(c *fiber.Ctx) (*session.Session, error) {
	store, ok := c.Locals("session_store").(*session.Store)
	if !ok || store == nil {
		return nil, ErrSessionStoreMissing
	}
	return store.Get(c)
}

// GetUserIDFromSession oturumdaki kullanıcı ID'sini döndürür.
func GetUserIDFromSession(sess *session.Session) (uint, error) {
	userID, ok := sess.Get(SessionKeyUserID).(uint)
	if !ok || userID == 0 {
		return 0, errors.New("oturumda kullanıcı yok")
	}
	return userID, nil
}

// GetIsAdminFromSession oturumdaki admin bayrağını döndürür.
func GetIsAdminFromSession(sess *session.Session) (bool, error) {
	isAdmin, ok := sess.Get(SessionKeyIsAdmin).(bool)
	if !ok {
		return false, errors.New("oturumda admin bilgisi yok")
	}
	return isAdmin, nil
}

// SetUserSession giriş sonrası oturum alanlarını yazar.
func SetUserSession(sess *session.Session, userID uint, name string, isAdmin bool) error {
	sess.Set(SessionKeyUserID, userID)
	sess.Set(SessionKeyUserName, name)
	sess.Set(SessionKeyIsAdmin, isAdmin)
	return sess.Save()
}

// ClearUserSession çıkışta oturumu yok eder.
func ClearUserSession(sess *session.Session) error {
	return sess.Destroy()
}
