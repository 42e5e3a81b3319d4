package handlers

import (
	"errors"

	"takvim.link/configs/configslog"
	"takvim.link/pkg/flashmessages"
	"takvim.link/pkg/renderer"
	"takvim.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AudioFileHandler paylaşılan ses kütüphanesi yönetimi için handler.
type AudioFileHandler struct {
	audioService services.IAudioFileService
}

// NewAudioFileHandler yeni bir AudioFileHandler örneği oluşturur.
func NewAudioFileHandler(audioService services.IAudioFileService) *AudioFileHandler {
	return &AudioFileHandler{audioService: audioService}
}

// ListAudioFiles kütüphanedeki ses dosyalarını listeler.
func (h *AudioFileHandler) ListAudioFiles(c *fiber.Ctx) error {
	flashData, _ := flashmessages.GetFlashMessages(c)

	audioFiles, err := h.audioService.ListAudioFiles(c.UserContext())
	renderData := fiber.Map{
		"Title":      "Ses Kütüphanesi",
		"AudioFiles": audioFiles,
	}
	renderer.SetFlashMessages(renderData, flashData)

	if err != nil {
		configslog.Log.Error("Dashboard - ListAudioFiles Error", zap.Error(err))
		renderData[renderer.FlashErrorKeyView] = "Ses dosyaları listelenirken bir hata oluştu."
	}
	return renderer.Render(c, "dashboard/audio_files/list", "layouts/dashboard_layout", renderData)
}

// UploadAudioFile yeni bir ses dosyası yükler.
func (h *AudioFileHandler) UploadAudioFile(c *fiber.Ctx) error {
	adminUserID, _ := c.Locals("userID").(uint)

	fileHeader, err := c.FormFile("file")
	if err != nil || fileHeader == nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Yüklenecek bir dosya seçin.")
		return c.Redirect("/dashboard/audio-files", fiber.StatusSeeOther)
	}
	f, err := fileHeader.Open()
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Dosya okunamadı.")
		return c.Redirect("/dashboard/audio-files", fiber.StatusSeeOther)
	}
	defer f.Close()

	input := services.UploadAudioInput{
		Name:             c.FormValue("name", fileHeader.Filename),
		Description:      c.FormValue("description"),
		OriginalFilename: fileHeader.Filename,
		MimeType:         fileHeader.Header.Get("Content-Type"),
		FileSize:         fileHeader.Size,
		Content:          f,
	}
	if _, err := h.audioService.UploadAudioFile(c.UserContext(), adminUserID, input); err != nil {
		if errors.Is(err, services.ErrAudioUploadFailed) {
			configslog.Log.Error("Dashboard - UploadAudioFile Error", zap.String("file", fileHeader.Filename), zap.Error(err))
			_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Ses dosyası yüklenirken bir hata oluştu.")
		} else {
			_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, err.Error())
		}
		return c.Redirect("/dashboard/audio-files", fiber.StatusSeeOther)
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Ses dosyası kütüphaneye eklendi.")
	return c.Redirect("/dashboard/audio-files", fiber.StatusSeeOther)
}

// DeleteAudioFile bir ses dosyasını siler. Günlerde kullanılan dosya reddedilir.
func (h *AudioFileHandler) DeleteAudioFile(c *fiber.Ctx) error {
	adminUserID, _ := c.Locals("userID").(uint)
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect("/dashboard/audio-files", fiber.StatusSeeOther)
	}

	if err := h.audioService.DeleteAudioFile(c.UserContext(), uint(id), adminUserID); err != nil {
		switch {
		case errors.Is(err, services.ErrAudioFileInUse), errors.Is(err, services.ErrAudioNotFound):
			_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, err.Error())
		default:
			configslog.Log.Error("Dashboard - DeleteAudioFile Error", zap.Int("id", id), zap.Error(err))
			_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Ses dosyası silinirken bir hata oluştu.")
		}
	} else {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Ses dosyası silindi.")
	}
	return c.Redirect("/dashboard/audio-files", fiber.StatusSeeOther)
}
