package handlers

import (
	"errors"

	"takvim.link/configs/configslog"
	"takvim.link/pkg/flashmessages"
	"takvim.link/pkg/renderer"
	"takvim.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// IntroPageHandler karşılama sayfası içeriğinin yönetimi için handler.
type IntroPageHandler struct {
	introService services.IIntroPageService
}

// NewIntroPageHandler yeni bir IntroPageHandler örneği oluşturur.
func NewIntroPageHandler() *IntroPageHandler {
	return &IntroPageHandler{introService: services.NewIntroPageService()}
}

// ShowUpdateIntroPage karşılama sayfası düzenleme formunu gösterir.
func (h *IntroPageHandler) ShowUpdateIntroPage(c *fiber.Ctx) error {
	page, err := h.introService.GetIntroPage(c.UserContext())
	if err != nil {
		configslog.Log.Error("Dashboard - ShowUpdateIntroPage Error", zap.Error(err))
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Karşılama sayfası yüklenemedi.")
		return c.Redirect("/dashboard/home", fiber.StatusSeeOther)
	}

	flashData, _ := flashmessages.GetFlashMessages(c)
	renderData := fiber.Map{
		"Title": "Karşılama Sayfası",
		"Page":  page,
	}
	renderer.SetFlashMessages(renderData, flashData)
	return renderer.Render(c, "dashboard/intro/update", "layouts/dashboard_layout", renderData)
}

// UpdateIntroPage karşılama sayfası içeriğini günceller.
func (h *IntroPageHandler) UpdateIntroPage(c *fiber.Ctx) error {
	adminUserID, _ := c.Locals("userID").(uint)
	title := c.FormValue("title")
	body := c.FormValue("body")

	if _, err := h.introService.UpdateIntroPage(c.UserContext(), adminUserID, title, body); err != nil {
		if errors.Is(err, services.ErrIntroPageInvalidInput) {
			_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, err.Error())
		} else {
			configslog.Log.Error("Dashboard - UpdateIntroPage Error", zap.Error(err))
			_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Karşılama sayfası güncellenemedi.")
		}
		return c.Redirect("/dashboard/intro", fiber.StatusSeeOther)
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Karşılama sayfası güncellendi.")
	return c.Redirect("/dashboard/intro", fiber.StatusSeeOther)
}
