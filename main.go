package main

import (
	"os"
	"os/signal"
	"syscall"

	"takvim.link/configs"
	"takvim.link/configs/configsdatabase"
	"takvim.link/configs/configslog"
	"takvim.link/pkg/filestore"
	"takvim.link/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"go.uber.org/zap"
)

func main() {
	configslog.InitLogger()
	defer configslog.SyncLogger()

	cfg := configs.LoadConfig()

	configsdatabase.InitDB()
	defer configsdatabase.CloseDB()

	storage, err := filestore.NewLocalStorage("./storage", "/storage")
	if err != nil {
		configslog.Log.Fatal("Dosya deposu hazırlanamadı", zap.Error(err))
	}

	engine := html.New("./views", ".html")

	app := fiber.New(fiber.Config{
		Views:        engine,
		ErrorHandler: appErrorHandler,
	})

	app.Static("/storage", "./storage")
	app.Static("/assets", "./assets")

	routes.SetupRoutes(app, storage)

	// Graceful shutdown: sinyal gelince dinlemeyi bırak, açık istekleri tamamla.
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		configslog.SLog.Info("Kapatma sinyali alındı, sunucu durduruluyor...")
		_ = app.Shutdown()
	}()

	configslog.SLog.Infof("Sunucu %s adresinde dinliyor...", cfg.ListenAddr)
	if err := app.Listen(cfg.ListenAddr); err != nil {
		configslog.Log.Fatal("Sunucu başlatılamadı", zap.Error(err))
	}
}

func appErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	configslog.Log.Error("İşlenmemiş istek hatası",
		zap.Int("status", code),
		zap.String("path", c.Path()),
		zap.Error(err),
	)
	if c.Accepts("application/json", "text/html") == "application/json" {
		return c.Status(code).JSON(fiber.Map{"error": "Beklenmeyen bir hata oluştu"})
	}
	return c.Status(code).Render("errors/500", fiber.Map{"Title": "Hata"}, "layouts/error_layout")
}
