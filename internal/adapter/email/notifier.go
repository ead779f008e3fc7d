// Package email provides the SMTP notifier for contact-form alerts.
package email

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/foliohq/folio/internal/config"
	"github.com/foliohq/folio/internal/port/notifier"
)

// Notifier sends contact notifications to the site owner via SMTP.
type Notifier struct {
	cfg config.SMTP
}

// NewNotifier creates a new email notifier.
func NewNotifier(cfg config.SMTP) *Notifier {
	return &Notifier{cfg: cfg}
}

// Name implements notifier.Notifier.
func (n *Notifier) Name() string { return "email" }

// Send delivers a notification to the configured owner address.
func (n *Notifier) Send(_ context.Context, notification notifier.Notification) error {
	if n.cfg.Host == "" || n.cfg.NotifyTo == "" {
		return notifier.ErrNotConfigured
	}

	addr := fmt.Sprintf("%s:%d", n.cfg.Host, n.cfg.Port)

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n%s",
		n.cfg.From, n.cfg.NotifyTo, notification.Title, notification.Message)

	var auth smtp.Auth
	if n.cfg.Password != "" {
		auth = smtp.PlainAuth("", n.cfg.From, n.cfg.Password, n.cfg.Host)
	}

	return smtp.SendMail(addr, auth, n.cfg.From, []string{n.cfg.NotifyTo}, []byte(msg))
}
