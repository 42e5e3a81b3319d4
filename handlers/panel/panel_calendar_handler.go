package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"takvim.link/configs"
	"takvim.link/configs/configslog"
	"takvim.link/models"
	"takvim.link/pkg/flashmessages"
	"takvim.link/pkg/renderer"
	"takvim.link/pkg/themes"
	"takvim.link/pkg/unlock"
	"takvim.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PanelCalendarHandler kullanıcının kendi takvimleri için handler.
type PanelCalendarHandler struct {
	calendarService   services.ICalendarService
	invitationService services.IInvitationService
}

// NewPanelCalendarHandler yeni bir PanelCalendarHandler örneği oluşturur.
func NewPanelCalendarHandler() *PanelCalendarHandler {
	return &PanelCalendarHandler{
		calendarService:   services.NewCalendarService(),
		invitationService: services.NewInvitationService(),
	}
}

func parseIDParam(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("geçersiz ID")
	}
	return uint(id), nil
}

// ShowCreateCalendar yeni takvim formunu gösterir.
func (h *PanelCalendarHandler) ShowCreateCalendar(c *fiber.Ctx) error {
	flashData, _ := flashmessages.GetFlashMessages(c)
	formData := flashmessages.GetFlashFormData(c)

	renderData := fiber.Map{
		"Title":        "Yeni Takvim",
		"ThemeCatalog": themes.Catalog(),
		"FormData":     formData,
	}
	renderer.SetFlashMessages(renderData, flashData)
	return renderer.Render(c, "panel/calendars/create", "layouts/panel_layout", renderData)
}

// parseCalendarForm ortak takvim form alanlarını okur.
func parseCalendarForm(c *fiber.Ctx) (services.CreateCalendarInput, error) {
	year, err := strconv.Atoi(c.FormValue("year"))
	if err != nil {
		return services.CreateCalendarInput{}, fmt.Errorf("geçersiz yıl")
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
				return input, fmt.Errorf("sezon konfigürasyonu çözümlenemedi")
			}
			input.SeasonalConfig = &cfg
		} else {
			// Form özel aralık vermezse ürünün standart sezon takvimi kullanılır.
			input.SeasonalConfig = &themes.SeasonalConfig{Ranges: themes.DefaultSeasonalRanges()}
		}
	}
	return input, nil
}

// CreateCalendar yeni takvimi 31 günüyle birlikte oluşturur.
func (h *PanelCalendarHandler) CreateCalendar(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(uint)

	input, err := parseCalendarForm(c)
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, err.Error())
		return c.Redirect("/panel/calendars/create", fiber.StatusSeeOther)
	}

	calendar, err := h.calendarService.CreateCalendar(c.UserContext(), userID, input)
	if err != nil {
		if !errors.Is(err, services.ErrCalendarCreationFailed) {
			// Doğrulama hataları kullanıcıya aynen gösterilir.
			_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, err.Error())
		} else {
			configslog.Log.Error("Panel - CreateCalendar Error", zap.Uint("userID", userID), zap.Error(err))
			_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Takvim oluşturulurken bir hata oluştu.")
		}
		_ = flashmessages.SetFlashFormData(c, input)
		return c.Redirect("/panel/calendars/create", fiber.StatusSeeOther)
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Takviminiz 31 günüyle birlikte oluşturuldu.")
	return c.Redirect(fmt.Sprintf("/panel/calendars/%d", calendar.ID), fiber.StatusSeeOther)
}

// ShowCalendar takvimi gün kartlarıyla gösterir. Yönetebilen kullanıcıya
// bekleyen davet bağlantısı da gösterilir.
func (h *PanelCalendarHandler) ShowCalendar(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(uint)
	calendarID, err := parseIDParam(c)
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz takvim.")
		return c.Redirect("/panel/home", fiber.StatusSeeOther)
	}

	calendar, err := h.calendarService.GetCalendarForUser(c.UserContext(), calendarID, userID)
	if err != nil {
		errMsg := "Takvim bulunamadı."
		if errors.Is(err, services.ErrCalendarForbidden) {
			errMsg = "Bu takvime erişim yetkiniz yok."
		} else if !errors.Is(err, services.ErrCalendarNotFound) {
			configslog.Log.Error("Panel - ShowCalendar Error", zap.Uint("id", calendarID), zap.Error(err))
			errMsg = "Takvim yüklenirken bir hata oluştu."
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, errMsg)
		return c.Redirect("/panel/home", fiber.StatusSeeOther)
	}

	dayStates := make([]unlock.DayState, 0, len(calendar.Days))
	for _, day := range calendar.Days {
		dayStates = append(dayStates, unlock.DayState{DayNumber: day.DayNumber, Unlocked: day.IsUnlocked()})
	}

	flashData, _ := flashmessages.GetFlashMessages(c)
	renderData := fiber.Map{
		"Title":        calendar.Title,
		"Calendar":     calendar,
		"Days":         h.calendarService.PresentDays(calendar),
		"CountdownDay": unlock.NextCountdownDay(dayStates),
		"IsOwner":      calendar.OwnerID == userID,
		// Hediyeleri açacak kişi: alıcı atanmışsa alıcı, yoksa sahip.
		"IsPrimaryViewer": calendar.PrimaryViewerID() == userID,
	}
	renderer.SetFlashMessages(renderData, flashData)

	if calendar.OwnerID == userID && calendar.RecipientID == nil {
		invitation, invErr := h.invitationService.ActiveInvitationForCalendar(c.UserContext(), calendarID)
		if invErr == nil && invitation != nil {
			renderData["PendingInvitation"] = invitation
			renderData["InvitationAcceptURL"] = services.BuildInvitationAcceptURL(configs.GetConfig().BaseURL, invitation.Token)
		}
	}

	return renderer.Render(c, "panel/calendars/show", "layouts/panel_layout", renderData)
}

// DeleteCalendar takvimi ve günlerini siler.
func (h *PanelCalendarHandler) DeleteCalendar(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(uint)
	calendarID, err := parseIDParam(c)
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz takvim.")
		return c.Redirect("/panel/home", fiber.StatusSeeOther)
	}

	if err := h.calendarService.DeleteCalendar(c.UserContext(), calendarID, userID); err != nil {
		errMsg := "Silme hatası: " + err.Error()
		if !errors.Is(err, services.ErrCalendarNotFound) && !errors.Is(err, services.ErrCalendarForbidden) {
			configslog.Log.Error("Panel - DeleteCalendar Error", zap.Uint("id", calendarID), zap.Uint("userID", userID), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, errMsg)
	} else {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Takvim başarıyla silindi.")
	}
	return c.Redirect("/panel/home", fiber.StatusSeeOther)
}

// InviteRecipient takvim için alıcı daveti gönderir.
func (h *PanelCalendarHandler) InviteRecipient(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(uint)
	calendarID, err := parseIDParam(c)
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz takvim.")
		return c.Redirect("/panel/home", fiber.StatusSeeOther)
	}
	redirectPath := fmt.Sprintf("/panel/calendars/%d", calendarID)

	email := c.FormValue("email")
	if _, err := h.invitationService.InviteRecipient(c.UserContext(), calendarID, userID, email); err != nil {
		switch {
		case errors.Is(err, services.ErrInvInvalidEmail),
			errors.Is(err, services.ErrInvitationForbidden),
			errors.Is(err, services.ErrCalendarNotFound):
			_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, err.Error())
		default:
			configslog.Log.Error("Panel - InviteRecipient Error", zap.Uint("calendarID", calendarID), zap.Error(err))
			_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Davet gönderilirken bir hata oluştu.")
		}
		return c.Redirect(redirectPath, fiber.StatusSeeOther)
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey,
		fmt.Sprintf("Davet %s adresine gönderildi. Bağlantı %d gün geçerlidir.", email, int(models.InvitationTTL.Hours()/24)))
	return c.Redirect(redirectPath, fiber.StatusSeeOther)
}

// ExportCalendar takvimin yazdırılabilir görünümünü üretir. Yalnızca gerçek
// içeriği olan günler dahil edilir.
func (h *PanelCalendarHandler) ExportCalendar(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(uint)
	calendarID, err := parseIDParam(c)
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz takvim.")
		return c.Redirect("/panel/home", fiber.StatusSeeOther)
	}

	calendar, days, err := h.calendarService.GetExportableDays(c.UserContext(), calendarID, userID)
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Dışa aktarma için takvim yüklenemedi.")
		return c.Redirect("/panel/home", fiber.StatusSeeOther)
	}

	return renderer.Render(c, "panel/calendars/export", "layouts/print_layout", fiber.Map{
		"Title":    calendar.Title + " - Dışa Aktar",
		"Calendar": calendar,
		"Days":     days,
	})
}
