package notifications

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/vigilant-ops/cuadrante-api/pkg/config"
	"github.com/vigilant-ops/cuadrante-api/pkg/db/models"
	"github.com/vigilant-ops/cuadrante-api/pkg/logger"
)

// sendFunc matches smtp.SendMail so tests can capture deliveries.
type sendFunc func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error

// Mailer sends workflow emails over SMTP. Deliveries run in a goroutine and
// failures are logged, never returned: a dropped email must not fail the
// request that triggered it. When SMTP is not configured the mailer logs the
// delivery instead of sending it.
type Mailer struct {
	cfg  config.SMTPConfig
	logg *logger.Logger
	send sendFunc
}

// NewMailer constructs a mailer. logg is required; cfg may be empty, in which
// case deliveries are logged only.
func NewMailer(cfg config.SMTPConfig, logg *logger.Logger) (*Mailer, error) {
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &Mailer{cfg: cfg, logg: logg, send: smtp.SendMail}, nil
}

// SwapRequested emails the receiver of a new permuta.
func (m *Mailer) SwapRequested(ctx context.Context, recipientEmail string, swap *models.SwapRequest) {
	subject := "Nueva solicitud de permuta"
	body := fmt.Sprintf(
		"Has recibido una solicitud de permuta.\r\n\r\nTurno ofrecido: %s\r\nTurno solicitado: %s\r\n\r\nEntra en la aplicacion para aceptarla o rechazarla.\r\n",
		swap.OriginDate, swap.DestinationDate,
	)
	m.deliver(ctx, recipientEmail, subject, body)
}

// VacationRequested confirms a new vacation request to its requester.
func (m *Mailer) VacationRequested(ctx context.Context, recipientEmail string, vacation *models.VacationRequest) {
	subject := "Solicitud de vacaciones registrada"
	body := fmt.Sprintf(
		"Tu solicitud de vacaciones del %s al %s ha quedado registrada en estado pendiente.\r\n",
		vacation.StartDate, vacation.EndDate,
	)
	m.deliver(ctx, recipientEmail, subject, body)
}

func (m *Mailer) deliver(ctx context.Context, recipient, subject, body string) {
	recipient = strings.TrimSpace(recipient)
	if recipient == "" {
		return
	}

	ctx = m.logg.WithFields(context.WithoutCancel(ctx), map[string]any{
		"recipient": recipient,
		"subject":   subject,
	})

	if !m.cfg.Enabled() {
		m.logg.Info(ctx, "smtp not configured, logging email instead of sending")
		return
	}

	go func() {
		addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
		auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)
		msg := buildMessage(m.from(), recipient, subject, body)
		if err := m.send(addr, auth, m.from(), []string{recipient}, msg); err != nil {
			m.logg.Error(ctx, "email delivery failed", err)
			return
		}
		m.logg.Info(ctx, "email delivered")
	}()
}

func (m *Mailer) from() string {
	if m.cfg.From != "" {
		return m.cfg.From
	}
	return m.cfg.User
}

func buildMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}
