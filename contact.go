package main

import (
	"context"
	"fmt"
	"net/http"
	"net/mail"
	"net/smtp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/PedroHSSoares-Dev/portfolio/config"
	"github.com/PedroHSSoares-Dev/portfolio/store"
)

// ErrMailNotConfigured is returned by a mailer without SMTP credentials.
var ErrMailNotConfigured = errors.New("SMTP credentials not configured")

// Mailer delivers contact messages.
type Mailer interface {
	Send(ctx context.Context, m store.Message) error
}

type smtpMailer struct {
	cfg config.SMTP
}

func newMailer(cfg *config.Config) Mailer {
	return &smtpMailer{cfg: cfg.SMTP}
}

func (s *smtpMailer) Send(_ context.Context, m store.Message) error {
	if !s.cfg.Configured() || s.cfg.To == "" {
		return ErrMailNotConfigured
	}

	subject := fmt.Sprintf("Portfolio Contact: %s", m.Name)
	body := fmt.Sprintf(`
New contact form submission from your portfolio:

Name: %s
Email: %s
Message:
%s

---
Sent from your portfolio contact form
`, m.Name, m.Email, m.Body)

	msg := []byte("To: " + s.cfg.To + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"From: " + s.cfg.User + "\r\n" +
		"Reply-To: " + m.Email + "\r\n" +
		"\r\n" +
		body + "\r\n")

	auth := smtp.PlainAuth("", s.cfg.User, s.cfg.Password, s.cfg.Host)
	if err := smtp.SendMail(s.cfg.Host+":"+s.cfg.Port, auth, s.cfg.User, []string{s.cfg.To}, msg); err != nil {
		return errors.Wrap(err, "failed to send contact email")
	}
	return nil
}

// contactForm reads and checks the submitted fields. Header injection is
// ruled out by rejecting line breaks in name and email.
func contactForm(c *gin.Context) (store.Message, bool) {
	m := store.Message{
		Name:  strings.TrimSpace(c.PostForm("fullName")),
		Email: strings.TrimSpace(c.PostForm("email")),
		Body:  strings.TrimSpace(c.PostForm("message")),
	}
	if m.Name == "" || m.Body == "" || strings.ContainsAny(m.Name+m.Email, "\r\n") {
		return m, false
	}
	if _, err := mail.ParseAddress(m.Email); err != nil {
		return m, false
	}
	return m, true
}

// contact stores the submission and mails it when SMTP is configured.
// Without SMTP the message is still kept for the admin pages.
func (a *App) contact(c *gin.Context) {
	dict := a.catalog.For(currentPrefs(c).Language)
	fail := func(status int) {
		c.HTML(status, "contact-error.html", gin.H{"error": dict.Contact.Failed})
	}

	m, ok := contactForm(c)
	if !ok {
		fail(http.StatusBadRequest)
		return
	}
	ctx := c.Request.Context()
	m.CreatedAt = a.now()

	id, err := a.db.SaveMessage(ctx, m)
	if err != nil {
		a.logger.Error("saving contact message", zap.Error(err))
		fail(http.StatusOK)
		return
	}

	switch err := a.mailer.Send(ctx, m); {
	case errors.Is(err, ErrMailNotConfigured):
		a.logger.Warn("contact message stored without email", zap.Int64("message", id))
	case err != nil:
		a.logger.Error("sending contact email", zap.Int64("message", id), zap.Error(err))
		fail(http.StatusOK)
		return
	default:
		if err := a.db.MarkDelivered(ctx, id); err != nil {
			a.logger.Error("marking message delivered", zap.Int64("message", id), zap.Error(err))
		}
		a.logger.Info("contact email sent", zap.Int64("message", id))
	}

	c.HTML(http.StatusOK, "contact-success.html", gin.H{"success": dict.Contact.Sent})
}
