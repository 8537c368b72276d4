package notification

import (
	"context"
	"fmt"

	"kledje/domain"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	SenderEmail string
	SenderName  string
}

type SMTPRepository struct {
	config SMTPConfig
	dialer *gomail.Dialer
}

func NewSMTPRepository(cfg SMTPConfig) *SMTPRepository {
	return &SMTPRepository{
		config: cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

func (r *SMTPRepository) SendEmail(ctx context.Context, msg domain.EmailMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := r.dialer.DialAndSend(r.buildMessage(msg)); err != nil {
		return fmt.Errorf("failed to send email via smtp: %w", err)
	}

	return nil
}

func (r *SMTPRepository) buildMessage(msg domain.EmailMessage) *gomail.Message {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", r.config.SenderEmail, r.config.SenderName)
	if msg.ToName != "" {
		m.SetAddressHeader("To", msg.ToEmail, msg.ToName)
	} else {
		m.SetHeader("To", msg.ToEmail)
	}
	m.SetHeader("Subject", msg.Subject)

	if msg.Text != "" {
		m.SetBody("text/plain", msg.Text)
		if msg.HTML != "" {
			m.AddAlternative("text/html", msg.HTML)
		}
	} else {
		m.SetBody("text/html", msg.HTML)
	}

	return m
}
