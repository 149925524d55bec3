package contact

import (
	"fmt"
	"log/slog"
	"net/smtp"
)

type SMTPConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	To       string
}

// Configured reports whether credentials are present.
func (c SMTPConfig) Configured() bool { return c.User != "" && c.Password != "" }

// SendFunc matches smtp.SendMail.
type SendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// Mailer forwards contact submissions by SMTP.
type Mailer struct {
	cfg    SMTPConfig
	send   SendFunc
	logger *slog.Logger
}

func NewMailer(cfg SMTPConfig, logger *slog.Logger) *Mailer {
	if cfg.Host == "" {
		cfg.Host = "smtp.gmail.com"
	}
	if cfg.Port == "" {
		cfg.Port = "587"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Mailer{cfg: cfg, send: smtp.SendMail, logger: logger}
}

// WithSender replaces the transport, for tests.
func (m *Mailer) WithSender(fn SendFunc) *Mailer {
	m.send = fn
	return m
}

func (m *Mailer) Configured() bool { return m.cfg.Configured() }

// Send mails f to the configured recipient with Reply-To set to the visitor.
func (m *Mailer) Send(f Form) error {
	if !m.cfg.Configured() {
		return ErrNotConfigured
	}
	if err := f.Validate(); err != nil {
		return err
	}
	to := m.cfg.To
	if to == "" {
		to = m.cfg.User
	}
	body := fmt.Sprintf("New contact form submission from your portfolio:\n\n"+
		"Name: %s\nEmail: %s\nMessage:\n%s\n\n---\nSent from your portfolio contact form\n",
		f.Name, f.Email, f.Message)
	msg := []byte("To: " + to + "\r\n" +
		"Subject: " + f.Subject() + "\r\n" +
		"From: " + m.cfg.User + "\r\n" +
		"Reply-To: " + f.Email + "\r\n" +
		"\r\n" +
		body + "\r\n")

	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)
	if err := m.send(m.cfg.Host+":"+m.cfg.Port, auth, m.cfg.User, []string{to}, msg); err != nil {
		m.logger.Error("sending contact email", "error", err)
		return fmt.Errorf("send contact email: %w", err)
	}
	m.logger.Info("contact email sent", "from", f.Email)
	return nil
}
