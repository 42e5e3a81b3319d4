package handlers

import (
	"errors"

	"takvim.link/configs/configslog"
	"takvim.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PanelDayHandler gün açma ve gün içeriği uçları için handler. Takvim sayfası
// bu uçları fetch ile çağırır, yanıtlar JSON'dur.
type PanelDayHandler struct {
	dayService services.ICalendarDayService
}

// NewPanelDayHandler yeni bir PanelDayHandler örneği oluşturur.
func NewPanelDayHandler(dayService services.ICalendarDayService) *PanelDayHandler {
	return &PanelDayHandler{dayService: dayService}
}

func dayJSON(result *services.UnlockResult) fiber.Map {
	day := result.Day
	return fiber.Map{
		"id":          day.ID,
		"day_number":  day.DayNumber,
		"gift_type":   day.GiftType,
		"title":       day.Title,
		"content":     day.ContentText,
		"image_path":  day.ContentImagePath,
		"product":     day.ProductCode,
		"audio_url":   day.EffectiveAudioURL(),
		"unlocked_at": day.UnlockedAt,
	}
}

// UnlockDay bir günün kilidini açmayı dener. Açılmış günü tekrar açmak ve
// yarışta kaybetmek de başarı sayılır; içerik her iki durumda da döner.
func (h *PanelDayHandler) UnlockDay(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(uint)
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Geçersiz gün."})
	}
	debugRequested := c.Query("debug") == "1"

	result, err := h.dayService.UnlockDay(c.UserContext(), uint(id), userID, debugRequested)
	if err != nil {
		var rejected *services.UnlockRejectedError
		if errors.As(err, &rejected) {
			// "Henüz değil" beklenen bir sonuçtur, hata loglanmaz.
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"unlocked": false,
				"reason":   rejected.Reason,
				"message":  rejected.Error(),
			})
		}
		switch {
		case errors.Is(err, services.ErrDayNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, services.ErrDayForbidden):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
		}
		configslog.Log.Error("Panel - UnlockDay Error", zap.Int("dayID", id), zap.Uint("userID", userID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gün açılırken bir hata oluştu."})
	}

	return c.JSON(fiber.Map{
		"unlocked":         true,
		"already_unlocked": result.AlreadyUnlocked,
		"reason":           result.Reason,
		"day":              dayJSON(result),
	})
}

// GetDay açılmış bir günün içeriğini döndürür. Kilitli günün içeriği sızdırılmaz.
func (h *PanelDayHandler) GetDay(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(uint)
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Geçersiz gün."})
	}

	day, err := h.dayService.GetDayForUser(c.UserContext(), uint(id), userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDayNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, services.ErrDayForbidden):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
		}
		configslog.Log.Error("Panel - GetDay Error", zap.Int("dayID", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gün yüklenirken bir hata oluştu."})
	}

	if !day.IsUnlocked() {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"unlocked": false,
			"message":  "Bu günün kilidi henüz açılmadı.",
		})
	}
	return c.JSON(fiber.Map{
		"unlocked": true,
		"day":      dayJSON(&services.UnlockResult{Day: day}),
	})
}
