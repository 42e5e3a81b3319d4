package handlers

import (
	"takvim.link/configs/configslog"
	"takvim.link/pkg/flashmessages"
	"takvim.link/pkg/renderer"
	"takvim.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// UserHandler kullanıcı listesi için handler (Dashboard).
type UserHandler struct {
	userService services.IUserService
}

// NewUserHandler yeni bir UserHandler örneği oluşturur.
func NewUserHandler() *UserHandler {
	return &UserHandler{userService: services.NewUserService()}
}

// ListUsers tüm kullanıcıları listeler.
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	flashData, _ := flashmessages.GetFlashMessages(c)

	users, err := h.userService.ListUsers(c.UserContext())
	renderData := fiber.Map{
		"Title": "Kullanıcılar",
		"Users": users,
	}
	renderer.SetFlashMessages(renderData, flashData)

	if err != nil {
		configslog.Log.Error("Dashboard - ListUsers Error", zap.Error(err))
		renderData[renderer.FlashErrorKeyView] = "Kullanıcılar listelenirken bir hata oluştu."
	}
	return renderer.Render(c, "dashboard/users/list", "layouts/dashboard_layout", renderData)
}
