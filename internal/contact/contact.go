// Package contact validates the contact form and turns it into outbound
// actions: a WhatsApp deep link, a mailto link or an SMTP message.
package contact

import (
	"errors"
	"fmt"
	"net/mail"
	"net/url"
	"strings"
)

var (
	ErrNameRequired    = errors.New("contact: name is required")
	ErrInvalidName     = errors.New("contact: name must be a single line")
	ErrInvalidEmail    = errors.New("contact: a valid email is required")
	ErrMessageRequired = errors.New("contact: message is required")
	ErrNotConfigured   = errors.New("contact: SMTP credentials not configured")
)

type Form struct {
	Name    string `form:"fullName" json:"name"`
	Email   string `form:"email" json:"email"`
	Message string `form:"message" json:"message"`
}

// Normalize trims surrounding whitespace from every field.
func (f Form) Normalize() Form {
	return Form{
		Name:    strings.TrimSpace(f.Name),
		Email:   strings.TrimSpace(f.Email),
		Message: strings.TrimSpace(f.Message),
	}
}

func (f Form) Validate() error {
	var errs []error
	switch {
	case f.Name == "":
		errs = append(errs, ErrNameRequired)
	case strings.ContainsAny(f.Name, "\r\n"):
		// the name is written into the Subject header
		errs = append(errs, ErrInvalidName)
	}
	if _, err := mail.ParseAddress(f.Email); err != nil || !strings.Contains(f.Email, "@") ||
		strings.ContainsAny(f.Email, "\r\n") {
		errs = append(errs, ErrInvalidEmail)
	}
	if f.Message == "" {
		errs = append(errs, ErrMessageRequired)
	}
	return errors.Join(errs...)
}

// Subject is the subject line used for both mail paths.
func (f Form) Subject() string {
	return fmt.Sprintf("Portfolio Contact from %s", f.Name)
}

// WhatsAppLink opens a chat with phone pre-filled with the form.
func WhatsAppLink(phone string, f Form) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
	text := fmt.Sprintf("Hi, I'm %s (%s).\n\n%s", f.Name, f.Email, f.Message)
	return "https://wa.me/" + digits + "?text=" + url.QueryEscape(text)
}

// MailtoLink opens the visitor's mail composer addressed to addr.
func MailtoLink(addr string, f Form) string {
	body := fmt.Sprintf("%s\n\nFrom: %s\nEmail: %s", f.Message, f.Name, f.Email)
	q := "subject=" + componentEscape(f.Subject()) + "&body=" + componentEscape(body)
	return "mailto:" + addr + "?" + q
}

// componentEscape escapes like a URI component: mail clients do not read
// '+' as a space.
func componentEscape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
