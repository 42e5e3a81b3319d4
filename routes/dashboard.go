package routes

import (
	handlers "takvim.link/handlers/dashboard"
	"takvim.link/middlewares"
	"takvim.link/pkg/filestore"
	"takvim.link/services"

	"github.com/gofiber/fiber/v2"
)

// registerDashboardRoutes /dashboard altındaki rotaları tanımlar.
// Sadece admin kullanıcılar erişebilir.
func registerDashboardRoutes(app *fiber.App, storage filestore.Storage) {
	homeHandler := handlers.NewHomeHandler()
	userHandler := handlers.NewUserHandler()
	calendarHandler := handlers.NewCalendarHandler()
	dayHandler := handlers.NewDayHandler(
		services.NewCalendarDayService(storage),
		services.NewAudioFileService(storage),
		storage,
	)
	audioHandler := handlers.NewAudioFileHandler(services.NewAudioFileService(storage))
	introHandler := handlers.NewIntroPageHandler()

	dashboardGroup := app.Group("/dashboard")
	dashboardGroup.Use(
		middlewares.AuthMiddleware,
		middlewares.RequireAdmin(),
	)

	dashboardGroup.Get("/home", homeHandler.HomePage)

	// --- Kullanıcılar ---
	dashboardGroup.Get("/users", userHandler.ListUsers)

	// --- Takvim Yönetimi ---
	dashboardGroup.Get("/calendars", calendarHandler.ListCalendars)
	dashboardGroup.Get("/calendars/create", calendarHandler.ShowCreateCalendar)
	dashboardGroup.Post("/calendars/create", calendarHandler.CreateCalendar)
	dashboardGroup.Get("/calendars/:id/days", calendarHandler.ShowCalendarDays)
	dashboardGroup.Post("/calendars/delete/:id", calendarHandler.DeleteCalendar)
	dashboardGroup.Delete("/calendars/delete/:id", calendarHandler.DeleteCalendar)

	// --- Gün İçeriği ---
	dashboardGroup.Get("/days/update/:id", dayHandler.ShowUpdateDay)
	dashboardGroup.Post("/days/update/:id", dayHandler.UpdateDay)
	dashboardGroup.Post("/days/:id/early-unlock", dayHandler.ToggleEarlyUnlock)

	// --- Ses Kütüphanesi ---
	dashboardGroup.Get("/audio-files", audioHandler.ListAudioFiles)
	dashboardGroup.Post("/audio-files/upload", audioHandler.UploadAudioFile)
	dashboardGroup.Post("/audio-files/delete/:id", audioHandler.DeleteAudioFile)
	dashboardGroup.Delete("/audio-files/delete/:id", audioHandler.DeleteAudioFile)

	// --- Karşılama Sayfası ---
	dashboardGroup.Get("/intro", introHandler.ShowUpdateIntroPage)
	dashboardGroup.Post("/intro", introHandler.UpdateIntroPage)
}
