package services

import (
	"fmt"
	"strings"

	"takvim.link/configs"
	"takvim.link/configs/configslog"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// IMailService e-posta gönderim işbirlikçisi. Çekirdek mantık yalnızca kabul
// URL'sini ve içeriği kurar; teslimatın kendisi bu arayüzün arkasındadır.
type IMailService interface {
	SendInvitationMail(toEmail, acceptURL string) error
}

// MailService gomail ile SMTP üzerinden gönderim yapar.
type MailService struct {
	dialer *gomail.Dialer
	from   string
}

// NewMailService SMTP ayarlarını konfigürasyondan okuyarak servis oluşturur.
func NewMailService() IMailService {
	cfg := configs.GetConfig()
	return &MailService{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		from:   cfg.MailFrom,
	}
}

// SendInvitationMail davet kabul linkini içeren e-postayı gönderir.
func (m *MailService) SendInvitationMail(toEmail, acceptURL string) error {
	message := gomail.NewMessage()
	message.SetHeader("From", m.from)
	message.SetHeader("To", toEmail)
	message.SetHeader("Subject", "Advent takvimin için davet")
	message.SetBody("text/html", `
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: auto; padding: 20px; border: 1px solid #ddd; border-radius: 8px;">
			<h2 style="color: #333; text-align: center;">Kişisel advent takvimin hazır</h2>
			<p>Merhaba,</p>
			<p>Senin için hazırlanan advent takvimini görmek üzere davet edildin. Hesabını oluşturmak ve parolanı belirlemek için aşağıdaki bağlantıya tıkla:</p>
			<p style="text-align: center;"><a href="`+acceptURL+`" style="display: inline-block; padding: 10px 20px; background-color: #dc2626; color: #fff; text-decoration: none; border-radius: 5px;">Hesabını oluştur</a></p>
			<p>Bu davet 7 gün içinde geçerliliğini yitirir.</p>
			<p>Bu daveti sen istemediysen bu e-postayı yok sayabilirsin.</p>
		</div>
	`)
	return m.dialer.DialAndSend(message)
}

var _ IMailService = (*MailService)(nil)

// BuildInvitationAcceptURL token için mutlak kabul adresini üretir.
func BuildInvitationAcceptURL(baseURL, token string) string {
	return fmt.Sprintf("%s/invitations/accept/%s", strings.TrimRight(baseURL, "/"), token)
}

// sendInvitationMailAsync gönderimi arka planda yapar; başarısızlık yalnızca
// loglanır, tetikleyen işlemi asla bloklamaz veya geri aldırmaz. Yeniden deneme
// posta altyapısının sorumluluğudur.
func sendInvitationMailAsync(mail IMailService, toEmail, acceptURL string) {
	go func() {
		if err := mail.SendInvitationMail(toEmail, acceptURL); err != nil {
			configslog.Log.Error("Davet e-postası gönderilemedi",
				zap.String("email", toEmail), zap.Error(err))
			return
		}
		configslog.SLog.Infof("Davet e-postası gönderildi: %s", toEmail)
	}()
}
