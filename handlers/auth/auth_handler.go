package handlers

import (
	"errors"

	"takvim.link/configs/configslog"
	"takvim.link/pkg/flashmessages"
	"takvim.link/pkg/renderer"
	"takvim.link/services"
	"takvim.link/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AuthHandler giriş/çıkış ve profil işlemleri için handler.
type AuthHandler struct {
	authService services.IAuthService
	userService services.IUserService
}

// NewAuthHandler yeni bir AuthHandler örneği oluşturur.
func NewAuthHandler() *AuthHandler {
	return &AuthHandler{
		authService: services.NewAuthService(),
		userService: services.NewUserService(),
	}
}

// ShowLogin giriş formunu gösterir.
func (h *AuthHandler) ShowLogin(c *fiber.Ctx) error {
	flashData, _ := flashmessages.GetFlashMessages(c)
	renderData := fiber.Map{"Title": "Giriş Yap"}
	renderer.SetFlashMessages(renderData, flashData)
	return renderer.Render(c, "auth/login", "layouts/auth_layout", renderData)
}

// Login formdan gelen bilgilerle oturum açar.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	email := c.FormValue("email")
	password := c.FormValue("password")

	user, err := h.authService.Authenticate(c.UserContext(), email, password)
	if err != nil {
		if !errors.Is(err, services.ErrInvalidCredentials) {
			configslog.Log.Error("Login hatası", zap.String("email", email), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "E-posta veya parola hatalı.")
		return c.Redirect("/auth/login", fiber.StatusSeeOther)
	}

	sess, err := utils.SessionStart(c)
	if err != nil {
		configslog.Log.Error("Login: oturum açılamadı", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).SendString("Oturum başlatılamadı.")
	}
	if err := utils.SetUserSession(sess, user.ID, user.Name, user.IsAdmin); err != nil {
		configslog.Log.Error("Login: oturum kaydedilemedi", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).SendString("Oturum başlatılamadı.")
	}

	if user.IsAdmin {
		return c.Redirect("/dashboard/home", fiber.StatusFound)
	}
	return c.Redirect("/panel/home", fiber.StatusFound)
}

// Logout oturumu sonlandırır.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sess, err := utils.SessionStart(c)
	if err == nil {
		_ = utils.ClearUserSession(sess)
	}
	return c.Redirect("/auth/login", fiber.StatusSeeOther)
}

// Profile kullanıcının profil sayfasını gösterir.
func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(uint)
	user, err := h.userService.GetUserByID(c.UserContext(), userID)
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Profil bilgileri alınamadı.")
		return c.Redirect("/panel/home", fiber.StatusSeeOther)
	}

	flashData, _ := flashmessages.GetFlashMessages(c)
	renderData := fiber.Map{"Title": "Profilim", "User": user}
	renderer.SetFlashMessages(renderData, flashData)
	return renderer.Render(c, "auth/profile", "layouts/panel_layout", renderData)
}

// UpdatePassword profil sayfasından parola değiştirir.
func (h *AuthHandler) UpdatePassword(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(uint)
	currentPassword := c.FormValue("current_password")
	newPassword := c.FormValue("new_password")
	newPasswordConfirm := c.FormValue("new_password_confirm")

	if newPassword != newPasswordConfirm {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Yeni parolalar eşleşmiyor.")
		return c.Redirect("/auth/profile", fiber.StatusSeeOther)
	}

	if err := h.authService.UpdatePassword(c.UserContext(), userID, currentPassword, newPassword); err != nil {
		switch {
		case errors.Is(err, services.ErrCurrentPassword), errors.Is(err, services.ErrPasswordTooShort):
			_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, err.Error())
		default:
			configslog.Log.Error("UpdatePassword hatası", zap.Uint("userID", userID), zap.Error(err))
			_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Parola güncellenemedi.")
		}
		return c.Redirect("/auth/profile", fiber.StatusSeeOther)
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Parolanız güncellendi.")
	return c.Redirect("/auth/profile", fiber.StatusSeeOther)
}
