package configs

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/middleware/session"
)

var (
	sessionStore     *session.Store
	sessionStoreOnce sync.Once
)

// SetupSession oturum deposunu kurar ve tek örnek olarak döndürür.
func SetupSession() *session.Store {
	sessionStoreOnce.Do(func() {
		sessionStore = session.New(session.Config{
			Expiration:     72 * time.Hour,
			KeyLookup:      "cookie:takvim_session",
			CookieHTTPOnly: true,
			CookieSameSite: "Lax",
		})
	})
	return sessionStore
}
