package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"takvim.link/configs/configslog"
	"takvim.link/pkg/flashmessages"
	"takvim.link/pkg/queryparams"
	"takvim.link/pkg/renderer"
	"takvim.link/pkg/themes"
	"takvim.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CalendarHandler tüm takvimlerin admin yönetimi için handler.
type CalendarHandler struct {
	calendarService   services.ICalendarService
	invitationService services.IInvitationService
	userService       services.IUserService
}

// NewCalendarHandler yeni bir CalendarHandler örneği oluşturur.
func NewCalendarHandler() *CalendarHandler {
	return &CalendarHandler{
		calendarService:   services.NewCalendarService(),
		invitationService: services.NewInvitationService(),
		userService:       services.NewUserService(),
	}
}

// ListCalendars tüm takvimleri sayfalayarak listeler.
func (h *CalendarHandler) ListCalendars(c *fiber.Ctx) error {
	flashData, _ := flashmessages.GetFlashMessages(c)
	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		params = queryparams.DefaultListParams("created_at")
	}
	params.Validate()

	paginatedResult, err := h.calendarService.GetAllCalendarsPaginated(c.UserContext(), params)

	renderData := fiber.Map{
		"Title":  "Tüm Takvimler",
		"Result": paginatedResult,
		"Params": params,
	}
	renderer.SetFlashMessages(renderData, flashData)

	if err != nil {
		configslog.Log.Error("Dashboard - ListCalendars Error", zap.Error(err))
		renderData[renderer.FlashErrorKeyView] = "Takvimler listelenirken bir hata oluştu."
		renderData["Result"] = &queryparams.PaginatedResult{}
	}
	return renderer.Render(c, "dashboard/calendars/list", "layouts/dashboard_layout", renderData)
}

// ShowCreateCalendar admin için yeni takvim formunu gösterir. Form, sahibi
// seçmeye ve isteğe bağlı alıcı daveti göndermeye izin verir.
func (h *CalendarHandler) ShowCreateCalendar(c *fiber.Ctx) error {
	flashData, _ := flashmessages.GetFlashMessages(c)
	formData := flashmessages.GetFlashFormData(c)

	users, err := h.userService.ListUsers(c.UserContext())
	if err != nil {
		configslog.Log.Error("Dashboard - ShowCreateCalendar kullanıcılar alınamadı", zap.Error(err))
	}

	renderData := fiber.Map{
		"Title":        "Yeni Takvim (Admin)",
		"ThemeCatalog": themes.Catalog(),
		"Users":        users,
		"FormData":     formData,
	}
	renderer.SetFlashMessages(renderData, flashData)
	return renderer.Render(c, "dashboard/calendars/create", "layouts/dashboard_layout", renderData)
}

// CreateCalendar admin adına takvim oluşturur. owner_id verilirse takvim o
// kullanıcıya ait olur; invite_email verilirse alıcı daveti de gönderilir.
// Günlerin oluşturulma davranışı rolden bağımsızdır: 31 yer tutucu gün.
func (h *CalendarHandler) CreateCalendar(c *fiber.Ctx) error {
	adminUserID, _ := c.Locals("userID").(uint)

	year, err := strconv.Atoi(c.FormValue("year"))
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz yıl.")
		return c.Redirect("/dashboard/calendars/create", fiber.StatusSeeOther)
	}

	input := services.CreateCalendarInput{
		Title:          c.FormValue("title"),
		Year:           year,
		Description:    c.FormValue("description"),
		ThemeType:      themes.ThemeType(c.FormValue("theme_type", string(themes.ThemeTypeSingle))),
		PrimaryColor:   c.FormValue("primary_color"),
		SecondaryColor: c.FormValue("secondary_color"),
		AudioURL:       c.FormValue("audio_url"),
	}
	if input.ThemeType == themes.ThemeTypeSeasonal {
		if raw := c.FormValue("seasonal_config"); raw != "" {
			var cfg themes.SeasonalConfig
			if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
				_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Sezon konfigürasyonu çözümlenemedi.")
				return c.Redirect("/dashboard/calendars/create", fiber.StatusSeeOther)
			}
			input.SeasonalConfig = &cfg
		} else {
			input.SeasonalConfig = &themes.SeasonalConfig{Ranges: themes.DefaultSeasonalRanges()}
		}
	}

	ownerID := adminUserID
	if ownerStr := c.FormValue("owner_id"); ownerStr != "" {
		parsed, err := strconv.Atoi(ownerStr)
		if err != nil || parsed <= 0 {
			_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz sahip seçimi.")
			return c.Redirect("/dashboard/calendars/create", fiber.StatusSeeOther)
		}
		ownerID = uint(parsed)
	}

	calendar, err := h.calendarService.CreateCalendar(c.UserContext(), ownerID, input)
	if err != nil {
		if errors.Is(err, services.ErrCalendarCreationFailed) {
			configslog.Log.Error("Dashboard - CreateCalendar Error", zap.Uint("adminUserID", adminUserID), zap.Error(err))
			_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Takvim oluşturulurken bir hata oluştu.")
		} else {
			_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, err.Error())
		}
		_ = flashmessages.SetFlashFormData(c, input)
		return c.Redirect("/dashboard/calendars/create", fiber.StatusSeeOther)
	}

	successMsg := "Takvim 31 günüyle birlikte oluşturuldu."
	if inviteEmail := c.FormValue("invite_email"); inviteEmail != "" {
		// Davet, takvimin sahibi adına değil admin adına gönderilir.
		if _, invErr := h.invitationService.InviteRecipient(c.UserContext(), calendar.ID, adminUserID, inviteEmail); invErr != nil {
			configslog.Log.Error("Dashboard - CreateCalendar davet gönderilemedi",
				zap.Uint("calendarID", calendar.ID), zap.Error(invErr))
			_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey,
				"Takvim oluşturuldu ancak davet gönderilemedi: "+invErr.Error())
			return c.Redirect(fmt.Sprintf("/dashboard/calendars/%d/days", calendar.ID), fiber.StatusSeeOther)
		}
		successMsg = fmt.Sprintf("Takvim oluşturuldu ve %s adresine davet gönderildi.", inviteEmail)
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, successMsg)
	return c.Redirect(fmt.Sprintf("/dashboard/calendars/%d/days", calendar.ID), fiber.StatusSeeOther)
}

// DeleteCalendar bir takvimi admin yetkisiyle siler.
func (h *CalendarHandler) DeleteCalendar(c *fiber.Ctx) error {
	adminUserID, _ := c.Locals("userID").(uint)
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect("/dashboard/calendars", fiber.StatusSeeOther)
	}

	if err := h.calendarService.DeleteCalendar(c.UserContext(), uint(id), adminUserID); err != nil {
		if !errors.Is(err, services.ErrCalendarNotFound) {
			configslog.Log.Error("Dashboard - DeleteCalendar Error", zap.Int("id", id), zap.Uint("adminUserID", adminUserID), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Silme hatası: "+err.Error())
	} else {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Takvim başarıyla silindi.")
	}
	return c.Redirect("/dashboard/calendars", fiber.StatusSeeOther)
}

// ShowCalendarDays takvimin günlerini düzenleme listesi olarak gösterir.
func (h *CalendarHandler) ShowCalendarDays(c *fiber.Ctx) error {
	adminUserID, _ := c.Locals("userID").(uint)
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect("/dashboard/calendars", fiber.StatusSeeOther)
	}

	calendar, err := h.calendarService.GetCalendarForUser(c.UserContext(), uint(id), adminUserID)
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Takvim bulunamadı.")
		return c.Redirect("/dashboard/calendars", fiber.StatusSeeOther)
	}

	flashData, _ := flashmessages.GetFlashMessages(c)
	renderData := fiber.Map{
		"Title":    calendar.Title + " - Günler",
		"Calendar": calendar,
		"Days":     h.calendarService.PresentDays(calendar),
	}
	renderer.SetFlashMessages(renderData, flashData)
	return renderer.Render(c, "dashboard/calendars/days", "layouts/dashboard_layout", renderData)
}
