package handlers

import (
	"takvim.link/configs/configslog"
	"takvim.link/pkg/renderer"
	"takvim.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// IntroHandler kök URL'deki karşılama sayfası için handler.
type IntroHandler struct {
	introService services.IIntroPageService
}

// NewIntroHandler yeni bir IntroHandler örneği oluşturur.
func NewIntroHandler() *IntroHandler {
	return &IntroHandler{introService: services.NewIntroPageService()}
}

// ShowIntro karşılama sayfasını gösterir. Oturumu olan kullanıcı panele yönlendirilir.
func (h *IntroHandler) ShowIntro(c *fiber.Ctx) error {
	if userID, ok := c.Locals("userID").(uint); ok && userID != 0 {
		if isAdmin, _ := c.Locals("isAdmin").(bool); isAdmin {
			return c.Redirect("/dashboard/home", fiber.StatusFound)
		}
		return c.Redirect("/panel/home", fiber.StatusFound)
	}

	page, err := h.introService.GetIntroPage(c.UserContext())
	if err != nil {
		configslog.Log.Error("Public - ShowIntro Error", zap.Error(err))
		return c.Redirect("/auth/login", fiber.StatusTemporaryRedirect)
	}
	return renderer.Render(c, "public/intro", "layouts/public_layout", fiber.Map{
		"Title": page.Title,
		"Page":  page,
	})
}
