package mailer

import (
	"context"
	"time"

	"github.com/go-gomail/gomail"

	"github.com/BruksfildServices01/medical-scheduler/internal/notification"
)

// SMTPSender delivers notifications through an SMTP relay.
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
	loc    *time.Location
}

func NewSMTPSender(host string, port int, user, password, from string, loc *time.Location) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(host, port, user, password),
		from:   from,
		loc:    loc,
	}
}

func (s *SMTPSender) Send(ctx context.Context, msg notification.Message) error {
	m, err := s.build(msg)
	if err != nil {
		return err
	}
	// gomail has no context support; at least honour cancellation before dialing
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.dialer.DialAndSend(m)
}

func (s *SMTPSender) build(msg notification.Message) (*gomail.Message, error) {
	body, err := notification.RenderHTML(msg, s.loc)
	if err != nil {
		return nil, err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", body)
	return m, nil
}

var _ notification.Sender = (*SMTPSender)(nil)
