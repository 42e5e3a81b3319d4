package routes

import (
	panel_handlers "takvim.link/handlers/panel"
	"takvim.link/middlewares"
	"takvim.link/pkg/filestore"
	"takvim.link/services"

	"github.com/gofiber/fiber/v2"
)

// registerPanelRoutes /panel altındaki rotaları tanımlar. Giriş yapmış her
// kullanıcı erişebilir; takvim bazında yetki servis katmanında denetlenir.
func registerPanelRoutes(app *fiber.App, storage filestore.Storage) {
	homeHandler := panel_handlers.NewPanelHomeHandler()
	calendarHandler := panel_handlers.NewPanelCalendarHandler()
	dayHandler := panel_handlers.NewPanelDayHandler(services.NewCalendarDayService(storage))

	panelGroup := app.Group("/panel")
	panelGroup.Use(middlewares.AuthMiddleware)

	panelGroup.Get("/home", homeHandler.HomePage)

	// --- Takvimler ---
	panelGroup.Get("/calendars/create", calendarHandler.ShowCreateCalendar)
	panelGroup.Post("/calendars/create", calendarHandler.CreateCalendar)
	panelGroup.Get("/calendars/:id", calendarHandler.ShowCalendar)
	panelGroup.Post("/calendars/delete/:id", calendarHandler.DeleteCalendar)
	panelGroup.Delete("/calendars/delete/:id", calendarHandler.DeleteCalendar)
	panelGroup.Post("/calendars/:id/invite", calendarHandler.InviteRecipient)
	panelGroup.Get("/calendars/:id/export", calendarHandler.ExportCalendar)

	// --- Günler (JSON uçları) ---
	panelGroup.Get("/days/:id", dayHandler.GetDay)
	panelGroup.Post("/days/:id/unlock", dayHandler.UnlockDay)
}
