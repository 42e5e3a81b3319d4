package handlers

import (
	"errors"
	"fmt"

	"takvim.link/configs/configslog"
	"takvim.link/pkg/flashmessages"
	"takvim.link/pkg/renderer"
	"takvim.link/services"
	"takvim.link/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// InvitationAcceptHandler public davet kabul akışı için handler.
type InvitationAcceptHandler struct {
	invitationService services.IInvitationService
}

// NewInvitationAcceptHandler yeni bir InvitationAcceptHandler örneği oluşturur.
func NewInvitationAcceptHandler() *InvitationAcceptHandler {
	return &InvitationAcceptHandler{invitationService: services.NewInvitationService()}
}

// invitationRejectionMessage üç red durumunu ayrı mesajlarla raporlar.
func invitationRejectionMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, services.ErrInvitationInvalid):
		return "Bu davet bağlantısı geçersiz. Bağlantıyı kontrol edin.", true
	case errors.Is(err, services.ErrInvitationExpired):
		return "Bu davet bağlantısının süresi dolmuş. Yeni bir davet isteyin.", true
	case errors.Is(err, services.ErrInvitationAlreadyUsed):
		return "Bu davet bağlantısı daha önce kullanılmış.", true
	}
	return "", false
}

// ShowAccept davet kabul formunu gösterir. Token geçersizse form yerine
// uygun hata sayfası render edilir.
func (h *InvitationAcceptHandler) ShowAccept(c *fiber.Ctx) error {
	token := c.Params("token")

	invitation, err := h.invitationService.ResolveToken(c.UserContext(), token)
	if err != nil {
		if msg, ok := invitationRejectionMessage(err); ok {
			return renderer.Render(c, "public/invitation_rejected", "layouts/public_layout", fiber.Map{
				"Title":   "Davet Geçersiz",
				"Message": msg,
			}, fiber.StatusGone)
		}
		configslog.Log.Error("Public - ShowAccept Error", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).SendString("Davet yüklenirken bir hata oluştu.")
	}

	flashData, _ := flashmessages.GetFlashMessages(c)
	renderData := fiber.Map{
		"Title":      "Daveti Kabul Et",
		"Invitation": invitation,
		"Token":      token,
	}
	renderer.SetFlashMessages(renderData, flashData)
	return renderer.Render(c, "public/invitation_accept", "layouts/public_layout", renderData)
}

// Accept daveti kabul eder: hesabı açar, daveti kullanılmış işaretler, takvimin
// boş alıcısını bağlar ve kullanıcıyı oturum açmış halde panele yönlendirir.
func (h *InvitationAcceptHandler) Accept(c *fiber.Ctx) error {
	token := c.Params("token")
	name := c.FormValue("name")
	password := c.FormValue("password")
	redirectPathOnError := fmt.Sprintf("/invitations/accept/%s", token)

	result, err := h.invitationService.AcceptInvitation(c.UserContext(), token, name, password)
	if err != nil {
		if msg, ok := invitationRejectionMessage(err); ok {
			return renderer.Render(c, "public/invitation_rejected", "layouts/public_layout", fiber.Map{
				"Title":   "Davet Geçersiz",
				"Message": msg,
			}, fiber.StatusGone)
		}
		switch {
		case errors.Is(err, services.ErrInvNameRequired), errors.Is(err, services.ErrInvPasswordTooShort):
			_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, err.Error())
		default:
			configslog.Log.Error("Public - Accept Error", zap.Error(err))
			_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Davet kabul edilirken bir hata oluştu.")
		}
		return c.Redirect(redirectPathOnError, fiber.StatusSeeOther)
	}

	// Kabul sonrası kullanıcı doğrudan oturum açmış sayılır.
	sess, sessErr := utils.SessionStart(c)
	if sessErr == nil {
		_ = utils.SetUserSession(sess, result.User.ID, result.User.Name, result.User.IsAdmin)
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Davet kabul edildi, hoş geldiniz!")
	if result.Invitation.CalendarID != nil {
		return c.Redirect(fmt.Sprintf("/panel/calendars/%d", *result.Invitation.CalendarID), fiber.StatusSeeOther)
	}
	return c.Redirect("/panel/home", fiber.StatusSeeOther)
}
