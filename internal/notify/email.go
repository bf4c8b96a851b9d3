// Package notify delivers email notifications. Delivery is fire-and-forget:
// callers invoke Send in a goroutine outside any transaction, and failures
// are logged, never propagated.
package notify

import (
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Notifier sends a notification to a recipient.
type Notifier interface {
	Send(to, subject, html string)
}

// EmailNotifier sends HTML mail over SMTP.
type EmailNotifier struct {
	dialer *gomail.Dialer
	from   string
	log    *zap.Logger
}

// NewEmailNotifier builds a notifier for the given SMTP endpoint.
func NewEmailNotifier(host string, port int, user, pass string, log *zap.Logger) *EmailNotifier {
	return &EmailNotifier{
		dialer: gomail.NewDialer(host, port, user, pass),
		from:   "Fleet Management <" + user + ">",
		log:    log,
	}
}

// Send delivers one message. Errors are logged and swallowed.
func (n *EmailNotifier) Send(to, subject, html string) {
	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", html)

	if err := n.dialer.DialAndSend(m); err != nil {
		n.log.Error("email sending failed", zap.String("to", to), zap.Error(err))
		return
	}
	n.log.Info("email sent", zap.String("to", to))
}

// Noop discards all notifications. Used in tests and when SMTP is not
// configured.
type Noop struct{}

// Send implements Notifier.
func (Noop) Send(to, subject, html string) {}
