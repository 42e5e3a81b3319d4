// Package middlewares oturum tabanlı erişim kontrolü middleware'lerini içerir.
package middlewares

import (
	"takvim.link/pkg/flashmessages"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware giriş yapılmış bir oturum ister; yoksa login sayfasına yönlendirir.
func AuthMiddleware(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok || userID == 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Devam etmek için giriş yapın.")
		return c.Redirect("/auth/login", fiber.StatusSeeOther)
	}
	return c.Next()
}

// GuestMiddleware yalnızca oturumu olmayan ziyaretçilere izin verir.
func GuestMiddleware(c *fiber.Ctx) error {
	if userID, ok := c.Locals("userID").(uint); ok && userID != 0 {
		if isAdmin, _ := c.Locals("isAdmin").(bool); isAdmin {
			return c.Redirect("/dashboard/home", fiber.StatusFound)
		}
		return c.Redirect("/panel/home", fiber.StatusFound)
	}
	return c.Next()
}

// RequireAdmin yalnızca admin kullanıcıların geçmesine izin verir.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if isAdmin, ok := c.Locals("isAdmin").(bool); !ok || !isAdmin {
			_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Bu sayfaya erişim yetkiniz yok.")
			return c.Redirect("/panel/home", fiber.StatusSeeOther)
		}
		return c.Next()
	}
}
