package mailer

import (
	"fmt"
	"log"
	"net/smtp"

	"github.com/CategoryLeaders/productlobby-sub003/internal/config"
)

type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender delivers one email. The digest job only depends on this interface;
// tests and development use the log-only implementation.
type Sender interface {
	Send(msg Message) error
}

type SMTPMailer struct {
	addr string
	auth smtp.Auth
	from string
}

func NewSMTPMailer(cfg config.MailConfig) *SMTPMailer {
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.SMTPHost)
	}

	return &SMTPMailer{
		addr: fmt.Sprintf("%s:%s", cfg.SMTPHost, cfg.SMTPPort),
		auth: auth,
		from: cfg.From,
	}
}

func (m *SMTPMailer) Send(msg Message) error {
	body := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s",
		m.from, msg.To, msg.Subject, msg.Body,
	)

	if err := smtp.SendMail(m.addr, m.auth, m.from, []string{msg.To}, []byte(body)); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", msg.To, err)
	}

	return nil
}

// LogMailer writes mail to the log instead of sending it. Used when no SMTP
// host is configured (development).
type LogMailer struct{}

func (LogMailer) Send(msg Message) error {
	log.Printf("📧 [dry-run] to=%s subject=%q (%d bytes)", msg.To, msg.Subject, len(msg.Body))
	return nil
}
