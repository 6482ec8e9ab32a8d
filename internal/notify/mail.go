package notify

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/BruksfildServices01/massage-scheduler/internal/config"
)

// Sender is satisfied by *gomail.Dialer.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type MailNotifier struct {
	sender Sender
	from   string
	to     string
}

func NewMailNotifier(cfg config.SMTPConfig) *MailNotifier {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	from := cfg.From
	if from == "" {
		from = cfg.Username
	}
	return NewMailNotifierWith(d, from, cfg.To)
}

func NewMailNotifierWith(sender Sender, from, to string) *MailNotifier {
	return &MailNotifier{sender: sender, from: from, to: to}
}

func (m *MailNotifier) Notify(_ context.Context, n Notification) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", m.to)
	msg.SetHeader("Subject", n.Title)

	body := n.Body
	if n.URL != "" {
		body += "\n\n" + n.URL
	}
	msg.SetBody("text/plain", body)

	if err := m.sender.DialAndSend(msg); err != nil {
		return fmt.Errorf("send reminder mail: %w", err)
	}
	return nil
}
