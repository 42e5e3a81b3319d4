package routes

import (
	public_handlers "takvim.link/handlers/public"

	"github.com/gofiber/fiber/v2"
)

// registerPublicRoutes oturum gerektirmeyen rotaları tanımlar: karşılama
// sayfası ve davet kabul akışı.
func registerPublicRoutes(app *fiber.App) {
	introHandler := public_handlers.NewIntroHandler()
	acceptHandler := public_handlers.NewInvitationAcceptHandler()

	app.Get("/", introHandler.ShowIntro)

	// Davet bağlantıları e-postayla gelir; token URL'nin parçasıdır.
	app.Get("/invitations/accept/:token", acceptHandler.ShowAccept)
	app.Post("/invitations/accept/:token", acceptHandler.Accept)
}
