package mail

import (
	"context"
	"fmt"

	"github.com/offer-fe/offer-be/config"
	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"
)

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPNotifier sends offer notifications to article writers.
type SMTPNotifier struct {
	dialer dialer
	sender string
}

func CreateSMTPNotifier(conf config.SMTPConfig) *SMTPNotifier {
	return &SMTPNotifier{
		dialer: gomail.NewDialer(conf.Host, conf.Port, conf.Sender, conf.Password),
		sender: conf.Sender,
	}
}

func (n *SMTPNotifier) NotifyOffer(ctx context.Context, to string, articleTitle string, price int64) error {
	m := gomail.NewMessage()
	m.SetHeader("From", n.sender)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("New offer on %q", articleTitle))
	m.SetBody("text/plain", fmt.Sprintf("You received an offer of %d for %q.", price, articleTitle))

	if err := n.dialer.DialAndSend(m); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "NotifyOffer").Msg("")
		return err
	}

	return nil
}

// NoopNotifier is used when no SMTP host is configured.
type NoopNotifier struct{}

func (NoopNotifier) NotifyOffer(ctx context.Context, to string, articleTitle string, price int64) error {
	log.Ctx(ctx).Debug().Str("to", to).Msg("mail disabled, offer notification skipped")
	return nil
}
