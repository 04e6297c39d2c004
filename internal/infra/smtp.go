package infra

import (
	"fmt"
	"net/smtp"

	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/config"

	"github.com/jordan-wright/email"
)

// Mailer envía correos con adjuntos PDF vía SMTP.
type Mailer struct {
	host     string
	user     string
	password string
	addr     string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		host:     cfg.SMTPHost,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		addr:     fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
	}
}

// Enviar manda el mensaje a los destinatarios; adjuntos son rutas en el
// almacenamiento local de PDFs.
func (m *Mailer) Enviar(para []string, asunto, cuerpo string, adjuntos []string) error {
	e := email.NewEmail()
	e.From = m.user
	e.To = para
	e.Subject = asunto
	e.Text = []byte(cuerpo)

	for _, ruta := range adjuntos {
		if _, err := e.AttachFile(ruta); err != nil {
			return fmt.Errorf("mailer: adjuntar %s: %w", ruta, err)
		}
	}

	auth := smtp.PlainAuth("", m.user, m.password, m.host)
	return e.Send(m.addr, auth)
}
