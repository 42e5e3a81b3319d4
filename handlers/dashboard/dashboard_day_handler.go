package handlers

import (
	"errors"
	"fmt"
	"strconv"

	"takvim.link/configs/configslog"
	"takvim.link/models"
	"takvim.link/pkg/filestore"
	"takvim.link/pkg/flashmessages"
	"takvim.link/pkg/renderer"
	"takvim.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const dayImageStorageDir = "day_images"

// DayHandler takvim günlerinin içerik düzenlemesi için handler (Dashboard).
type DayHandler struct {
	dayService   services.ICalendarDayService
	audioService services.IAudioFileService
	storage      filestore.Storage
}

// NewDayHandler yeni bir DayHandler örneği oluşturur.
func NewDayHandler(dayService services.ICalendarDayService, audioService services.IAudioFileService, storage filestore.Storage) *DayHandler {
	return &DayHandler{
		dayService:   dayService,
		audioService: audioService,
		storage:      storage,
	}
}

// ShowUpdateDay günün düzenleme formunu gösterir.
func (h *DayHandler) ShowUpdateDay(c *fiber.Ctx) error {
	adminUserID, _ := c.Locals("userID").(uint)
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect("/dashboard/calendars", fiber.StatusSeeOther)
	}

	day, err := h.dayService.GetDayForUser(c.UserContext(), uint(id), adminUserID)
	if err != nil {
		errMsg := "Gün bulunamadı."
		if !errors.Is(err, services.ErrDayNotFound) {
			configslog.Log.Error("Dashboard - ShowUpdateDay Error", zap.Int("id", id), zap.Error(err))
			errMsg = "Gün bilgileri alınırken hata oluştu."
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, errMsg)
		return c.Redirect("/dashboard/calendars", fiber.StatusSeeOther)
	}

	audioFiles, err := h.audioService.ListAudioFiles(c.UserContext())
	if err != nil {
		configslog.Log.Error("Dashboard - ShowUpdateDay ses dosyaları alınamadı", zap.Error(err))
	}

	flashData, _ := flashmessages.GetFlashMessages(c)
	formData := flashmessages.GetFlashFormData(c)
	renderData := fiber.Map{
		"Title":      fmt.Sprintf("%s - Gün %d", day.Calendar.Title, day.DayNumber),
		"Day":        day,
		"Calendar":   day.Calendar,
		"AudioFiles": audioFiles,
		"GiftTypes":  []models.GiftType{models.GiftTypeText, models.GiftTypeImageText, models.GiftTypeProduct},
		"FormData":   formData,
	}
	renderer.SetFlashMessages(renderData, flashData)
	return renderer.Render(c, "dashboard/days/update", "layouts/dashboard_layout", renderData)
}

// UpdateDay gün içeriğini günceller. Görsel yüklenmişse önce depoya yazılır,
// eski görselin temizliği servise bırakılır.
func (h *DayHandler) UpdateDay(c *fiber.Ctx) error {
	adminUserID, _ := c.Locals("userID").(uint)
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect("/dashboard/calendars", fiber.StatusSeeOther)
	}
	dayID := uint(id)
	redirectPathOnError := fmt.Sprintf("/dashboard/days/update/%d", dayID)

	input := services.UpdateDayInput{
		GiftType:       models.GiftType(c.FormValue("gift_type", string(models.GiftTypeText))),
		Title:          c.FormValue("title"),
		ContentText:    c.FormValue("content_text"),
		ProductCode:    c.FormValue("product_code"),
		AudioMode:      services.AudioMode(c.FormValue("audio_mode", string(services.AudioModeKeep))),
		AudioURL:       c.FormValue("audio_url"),
		ThemePrimary:   c.FormValue("theme_primary"),
		ThemeSecondary: c.FormValue("theme_secondary"),
	}
	if fileIDStr := c.FormValue("audio_file_id"); fileIDStr != "" {
		fileID, convErr := strconv.Atoi(fileIDStr)
		if convErr != nil || fileID <= 0 {
			_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ses dosyası seçimi.")
			return c.Redirect(redirectPathOnError, fiber.StatusSeeOther)
		}
		input.AudioFileID = uint(fileID)
	}

	if fileHeader, fhErr := c.FormFile("image"); fhErr == nil && fileHeader != nil {
		f, openErr := fileHeader.Open()
		if openErr != nil {
			_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Görsel okunamadı.")
			return c.Redirect(redirectPathOnError, fiber.StatusSeeOther)
		}
		path, storeErr := h.storage.Store(dayImageStorageDir, fileHeader.Filename, f)
		_ = f.Close()
		if storeErr != nil {
			configslog.Log.Error("Dashboard - UpdateDay görsel kaydedilemedi", zap.Uint("dayID", dayID), zap.Error(storeErr))
			_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Görsel kaydedilemedi.")
			return c.Redirect(redirectPathOnError, fiber.StatusSeeOther)
		}
		input.NewImagePath = path
	}

	if _, err := h.dayService.UpdateDay(c.UserContext(), dayID, adminUserID, input); err != nil {
		switch {
		case errors.Is(err, services.ErrDayUpdateFailed):
			configslog.Log.Error("Dashboard - UpdateDay Error", zap.Uint("dayID", dayID), zap.Uint("adminUserID", adminUserID), zap.Error(err))
			_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Gün güncellenirken bir hata oluştu.")
		default:
			_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, err.Error())
		}
		_ = flashmessages.SetFlashFormData(c, input)
		return c.Redirect(redirectPathOnError, fiber.StatusSeeOther)
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Gün başarıyla güncellendi.")
	return c.Redirect(redirectPathOnError, fiber.StatusFound)
}

// ToggleEarlyUnlock günün erken açma bayrağını değiştirir.
func (h *DayHandler) ToggleEarlyUnlock(c *fiber.Ctx) error {
	adminUserID, _ := c.Locals("userID").(uint)
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect("/dashboard/calendars", fiber.StatusSeeOther)
	}
	allowStr := c.FormValue("allow", "false")
	allow := allowStr == "true" || allowStr == "on" || allowStr == "1"

	if err := h.dayService.SetEarlyUnlock(c.UserContext(), uint(id), adminUserID, allow); err != nil {
		configslog.Log.Error("Dashboard - ToggleEarlyUnlock Error", zap.Int("id", id), zap.Error(err))
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Erken açma ayarı değiştirilemedi.")
	} else if allow {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Gün artık beklemeden açılabilir.")
	} else {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Gün normal açılış kurallarına döndü.")
	}
	return c.Redirect(fmt.Sprintf("/dashboard/days/update/%d", id), fiber.StatusSeeOther)
}
