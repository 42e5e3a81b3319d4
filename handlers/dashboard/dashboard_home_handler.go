package handlers

import (
	"takvim.link/configs/configslog"
	"takvim.link/pkg/flashmessages"
	"takvim.link/pkg/queryparams"
	"takvim.link/pkg/renderer"
	"takvim.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// HomeHandler admin panosu ana sayfası için handler.
type HomeHandler struct {
	calendarService services.ICalendarService
	userService     services.IUserService
}

// NewHomeHandler yeni bir HomeHandler örneği oluşturur.
func NewHomeHandler() *HomeHandler {
	return &HomeHandler{
		calendarService: services.NewCalendarService(),
		userService:     services.NewUserService(),
	}
}

// HomePage son takvimleri ve kullanıcı sayısını gösterir.
func (h *HomeHandler) HomePage(c *fiber.Ctx) error {
	flashData, _ := flashmessages.GetFlashMessages(c)

	params := queryparams.DefaultListParams("created_at")
	params.PerPage = 5
	recent, err := h.calendarService.GetAllCalendarsPaginated(c.UserContext(), params)
	if err != nil {
		configslog.Log.Error("Dashboard - HomePage Error", zap.Error(err))
		recent = &queryparams.PaginatedResult{}
	}

	users, err := h.userService.ListUsers(c.UserContext())
	if err != nil {
		configslog.Log.Error("Dashboard - HomePage kullanıcılar alınamadı", zap.Error(err))
	}

	renderData := fiber.Map{
		"Title":           "Yönetim Paneli",
		"RecentCalendars": recent,
		"UserCount":       len(users),
	}
	renderer.SetFlashMessages(renderData, flashData)
	return renderer.Render(c, "dashboard/home", "layouts/dashboard_layout", renderData)
}
