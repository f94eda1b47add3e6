package mailer

import (
	"fmt"
	"log/slog"

	"careerpath/internal/config"
	sl "careerpath/internal/lib/logger/sl"
	"careerpath/internal/models"
	"careerpath/internal/rabbitmq"

	"gopkg.in/gomail.v2"
)

type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type Mailer struct {
	from   string
	dialer Dialer
}

func New(cfg *config.Mail) *Mailer {
	return &Mailer{
		from:   cfg.From,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

// NewWithDialer is used by tests to capture outgoing mail.
func NewWithDialer(from string, d Dialer) *Mailer {
	return &Mailer{from: from, dialer: d}
}

func (m *Mailer) Send(msg models.Message) error {
	const op = "mailer.Send"

	if err := m.dialer.DialAndSend(m.Compose(msg)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (m *Mailer) Compose(msg models.Message) *gomail.Message {
	out := gomail.NewMessage()
	out.SetHeader("From", m.from)
	out.SetHeader("To", msg.Email)
	out.SetHeader("Subject", msg.Subject)
	out.SetBody("text/plain", Body(msg))

	return out
}

func Body(msg models.Message) string {
	name := msg.Name
	if name == "" {
		name = "there"
	}

	return fmt.Sprintf(
		"Hi %s,\n\nyour CareerPath account is ready. Complete your profile and take the "+
			"self-assessment to get your first career recommendations.\n\nThe CareerPath team\n",
		name,
	)
}

// Deliveries returns the queue handler. Malformed bodies and failed sends are
// logged and dropped so one bad message cannot stall the queue.
func (m *Mailer) Deliveries(log *slog.Logger) func(body []byte) {
	const op = "mailer.Deliveries"

	log = log.With(slog.String("op", op))

	return func(body []byte) {
		msg, err := rabbitmq.Decode(body)
		if err != nil {
			log.Error("failed to decode message", sl.Err(err))
			return
		}

		if err := m.Send(msg); err != nil {
			log.Error("failed to send message", sl.Err(err), slog.String("purpose", msg.Purpose))
			return
		}

		log.Info("message sent successfully", slog.String("purpose", msg.Purpose))
	}
}
