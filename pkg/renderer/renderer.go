// Package renderer view render çağrılarını tek biçime sokar.
package renderer

import (
	"takvim.link/pkg/flashmessages"

	"github.com/gofiber/fiber/v2"
)

// View veri anahtarları.
const (
	FlashSuccessKeyView = "FlashSuccess"
	FlashErrorKeyView   = "FlashError"
)

// SetFlashMessages flash verisini view map'ine taşır.
func SetFlashMessages(data fiber.Map, flash flashmessages.FlashData) {
	if flash.Success != "" {
		data[FlashSuccessKeyView] = flash.Success
	}
	if flash.Error != "" {
		data[FlashErrorKeyView] = flash.Error
	}
}

// Render verilen view'ı layout ile render eder. Status verilmezse 200 kullanılır.
func Render(c *fiber.Ctx, view, layout string, data fiber.Map, status ...int) error {
	code := fiber.StatusOK
	if len(status) > 0 {
		code = status[0]
	}
	if data == nil {
		data = fiber.Map{}
	}
	// Oturumdaki kullanıcı bilgileri her view'da kullanılabilir olmalı.
	if userName, ok := c.Locals("userName").(string); ok {
		data["CurrentUserName"] = userName
	}
	if isAdmin, ok := c.Locals("isAdmin").(bool); ok {
		data["CurrentUserIsAdmin"] = isAdmin
	}
	return c.Status(code).Render(view, data, layout)
}
