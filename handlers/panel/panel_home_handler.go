package handlers

import (
	"takvim.link/configs/configslog"
	"takvim.link/pkg/flashmessages"
	"takvim.link/pkg/renderer"
	"takvim.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PanelHomeHandler kullanıcı paneli ana sayfası için handler.
type PanelHomeHandler struct {
	calendarService services.ICalendarService
}

// NewPanelHomeHandler yeni bir PanelHomeHandler örneği oluşturur.
func NewPanelHomeHandler() *PanelHomeHandler {
	return &PanelHomeHandler{calendarService: services.NewCalendarService()}
}

// HomePage kullanıcının sahibi veya alıcısı olduğu takvimleri listeler.
func (h *PanelHomeHandler) HomePage(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(uint)
	flashData, _ := flashmessages.GetFlashMessages(c)

	calendars, err := h.calendarService.ListCalendarsForUser(c.UserContext(), userID)
	renderData := fiber.Map{
		"Title":     "Takvimlerim",
		"Calendars": calendars,
	}
	renderer.SetFlashMessages(renderData, flashData)

	if err != nil {
		configslog.Log.Error("Panel - HomePage Error", zap.Uint("userID", userID), zap.Error(err))
		renderData[renderer.FlashErrorKeyView] = "Takvimler listelenirken bir hata oluştu."
	}
	return renderer.Render(c, "panel/home", "layouts/panel_layout", renderData)
}
