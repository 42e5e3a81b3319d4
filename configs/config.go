package configs

import (
	"os"
	"strconv"
	"sync"

	"takvim.link/configs/configsdatabase"
	"takvim.link/configs/configslog"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

// AppConfig uygulamanın .env üzerinden okunan ayarlarını tutar.
type AppConfig struct {
	AppEnv     string
	ListenAddr string
	BaseURL    string // Mutlak URL üretimi için (davet kabul linki vb.)

	SessionSecret string

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	MailFrom     string

	// Takvim debug modu: Allowed=false ise istekle gelen debug parametresi
	// asla dikkate alınmaz. Forced=true ise tüm tarih kontrolleri kapalıdır.
	CalendarDebugAllowed bool
	CalendarDebugForced  bool
}

var (
	appConfig     *AppConfig
	appConfigOnce sync.Once
)

// LoadConfig .env dosyasını okur ve AppConfig'i doldurur.
// .env bulunamazsa ortam değişkenleriyle devam edilir.
func LoadConfig() *AppConfig {
	appConfigOnce.Do(func() {
		if err := godotenv.Load(); err != nil {
			configslog.SLog.Info(".env dosyası bulunamadı, ortam değişkenleri kullanılacak.")
		}

		smtpPort, _ := strconv.Atoi(getEnv("SMTP_PORT", "587"))

		appConfig = &AppConfig{
			AppEnv:               getEnv("APP_ENV", "development"),
			ListenAddr:           getEnv("LISTEN_ADDR", ":3000"),
			BaseURL:              getEnv("APP_BASE_URL", "http://localhost:3000"),
			SessionSecret:        getEnv("SESSION_SECRET", ""),
			SMTPHost:             getEnv("SMTP_HOST", ""),
			SMTPPort:             smtpPort,
			SMTPUser:             getEnv("SMTP_USER", ""),
			SMTPPassword:         getEnv("SMTP_PASSWORD", ""),
			MailFrom:             getEnv("MAIL_FROM", "noreply@takvim.link"),
			CalendarDebugAllowed: getEnvBool("CALENDAR_DEBUG_ALLOWED", false),
			CalendarDebugForced:  getEnvBool("CALENDAR_DEBUG_FORCED", false),
		}
	})
	return appConfig
}

// GetConfig yüklü konfigürasyonu döndürür (gerekirse yükler).
func GetConfig() *AppConfig {
	return LoadConfig()
}

// GetDB veritabanı bağlantısını döndürür (configsdatabase'e delege eder).
func GetDB() *gorm.DB {
	return configsdatabase.GetDB()
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		configslog.SLog.Warnf("Geçersiz boolean ortam değişkeni %s=%q, varsayılan (%v) kullanılıyor.", key, v, fallback)
		return fallback
	}
	return b
}
