// Package mailer sends transactional email through SendGrid: the
// decision notice to the requester and the daily digest of stale
// pending requests to the condo manager.
package mailer

import (
	"fmt"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/condohub/reservation-service/internal/domain"
)

// Logger interface de log usada pelo mailer
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Mailer envia emails transacionais via SendGrid.
type Mailer struct {
	apiKey       string
	fromName     string
	fromEmail    string
	managerEmail string
	log          Logger
}

// New cria o mailer.
func New(apiKey, fromName, fromEmail, managerEmail string, log Logger) *Mailer {
	return &Mailer{
		apiKey:       apiKey,
		fromName:     fromName,
		fromEmail:    fromEmail,
		managerEmail: managerEmail,
		log:          log,
	}
}

// SendDecision envia ao morador o aviso de decisão sobre a reserva.
func (m *Mailer) SendDecision(toName, toEmail string, res *domain.Reservation) error {
	var subject, body string
	date := res.ReservationDate.Format("02/01/2006")

	switch res.Status {
	case domain.StatusConfirmed:
		subject = "Reserva Aprovada"
		body = fmt.Sprintf(
			"Olá %s,\n\nSua reserva de %s para %s (%s às %s) foi aprovada.\n\nAtenciosamente,\n%s",
			toName, res.AreaName, date, res.StartTime, res.EndTime, m.fromName,
		)
	case domain.StatusRejected:
		reason := ""
		if res.RejectionReason != nil {
			reason = *res.RejectionReason
		}
		subject = "Reserva Rejeitada"
		body = fmt.Sprintf(
			"Olá %s,\n\nSua reserva de %s para %s (%s às %s) foi rejeitada.\nMotivo: %s\n\nAtenciosamente,\n%s",
			toName, res.AreaName, date, res.StartTime, res.EndTime, reason, m.fromName,
		)
	default:
		return fmt.Errorf("mailer: no decision mail for status %q", res.Status)
	}

	return m.send(toName, toEmail, subject, body)
}

// SendPendingDigest envia ao síndico o resumo de pendências antigas.
func (m *Mailer) SendPendingDigest(pending []*domain.Reservation) error {
	if len(pending) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString("Reservas aguardando aprovação:\n\n")
	for _, res := range pending {
		fmt.Fprintf(&sb, "- %s em %s, %s às %s (Apto %s, pedido por %s)\n",
			res.AreaName,
			res.ReservationDate.Format("02/01/2006"),
			res.StartTime,
			res.EndTime,
			res.ApartmentLabel,
			res.RequesterName,
		)
	}
	sb.WriteString("\nAcesse o painel para aprovar ou rejeitar.\n")

	subject := fmt.Sprintf("Resumo: %d reservas pendentes", len(pending))

	return m.send("Síndico", m.managerEmail, subject, sb.String())
}

func (m *Mailer) send(toName, toEmail, subject, plainText string) error {
	if toEmail == "" {
		return fmt.Errorf("mailer: empty recipient for %q", subject)
	}

	from := mail.NewEmail(m.fromName, m.fromEmail)
	to := mail.NewEmail(toName, toEmail)
	html := strings.ReplaceAll(plainText, "\n", "<br>")
	message := mail.NewSingleEmail(from, subject, to, plainText, html)

	client := sendgrid.NewSendClient(m.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("mailer: send %q to %s: %w", subject, toEmail, err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("mailer: send %q to %s: status %d: %s", subject, toEmail, response.StatusCode, response.Body)
	}

	m.log.Info("Email %q sent to %s", subject, toEmail)
	return nil
}
