package contact

import (
	"errors"
	"net/smtp"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ada = Form{Name: "Ada Lovelace", Email: "ada@example.com", Message: "Loved the trail & the counters?"}

func TestValidate(t *testing.T) {
	assert.NoError(t, ada.Validate())

	err := Form{Email: "nope", Message: " "}.Normalize().Validate()
	assert.ErrorIs(t, err, ErrNameRequired)
	assert.ErrorIs(t, err, ErrInvalidEmail)
	assert.ErrorIs(t, err, ErrMessageRequired)
}

func TestValidateRejectsHeaderInjection(t *testing.T) {
	f := ada
	f.Name = "Bob\r\nBcc: victim@example.com"
	assert.ErrorIs(t, f.Normalize().Validate(), ErrInvalidName)

	f = ada
	f.Email = "ada@example.com\nBcc: victim@example.com"
	assert.ErrorIs(t, f.Validate(), ErrInvalidEmail)

	sent := false
	m := NewMailer(SMTPConfig{User: "u", Password: "p"}, nil).
		WithSender(func(string, smtp.Auth, string, []string, []byte) error {
			sent = true
			return nil
		})
	f = ada
	f.Name = "Bob\nBcc: victim@example.com"
	assert.ErrorIs(t, m.Send(f), ErrInvalidName)
	assert.False(t, sent)
}

func TestWhatsAppLink(t *testing.T) {
	link := WhatsAppLink("+1 (612) 555-0100", ada)
	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "wa.me", u.Host)
	assert.Equal(t, "/16125550100", u.Path)
	assert.Equal(t, "Hi, I'm Ada Lovelace (ada@example.com).\n\nLoved the trail & the counters?", u.Query().Get("text"))
}

func TestMailtoLink(t *testing.T) {
	link := MailtoLink("zach@example.com", ada)
	require.True(t, strings.HasPrefix(link, "mailto:zach@example.com?"))

	q, err := url.ParseQuery(strings.SplitN(link, "?", 2)[1])
	require.NoError(t, err)
	assert.Equal(t, "Portfolio Contact from Ada Lovelace", q.Get("subject"))
	assert.Equal(t, "Loved the trail & the counters?\n\nFrom: Ada Lovelace\nEmail: ada@example.com", q.Get("body"))
	assert.NotContains(t, link, "+", "spaces must not be encoded as plus in mailto")
}

func TestMailerRequiresCredentials(t *testing.T) {
	m := NewMailer(SMTPConfig{}, nil)
	assert.ErrorIs(t, m.Send(ada), ErrNotConfigured)
}

func TestMailerSends(t *testing.T) {
	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte
	m := NewMailer(SMTPConfig{User: "me@example.com", Password: "secret", To: "inbox@example.com"}, nil).
		WithSender(func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
			gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
			return nil
		})

	require.NoError(t, m.Send(ada))
	assert.Equal(t, "smtp.gmail.com:587", gotAddr)
	assert.Equal(t, "me@example.com", gotFrom)
	assert.Equal(t, []string{"inbox@example.com"}, gotTo)
	assert.Contains(t, string(gotMsg), "Reply-To: ada@example.com\r\n")
	assert.Contains(t, string(gotMsg), "Subject: Portfolio Contact from Ada Lovelace\r\n")
}

func TestMailerWrapsTransportError(t *testing.T) {
	boom := errors.New("boom")
	m := NewMailer(SMTPConfig{User: "u", Password: "p"}, nil).
		WithSender(func(string, smtp.Auth, string, []string, []byte) error { return boom })
	assert.ErrorIs(t, m.Send(ada), boom)
}
