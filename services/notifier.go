package services

import (
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/officeeats/cafeteria-app/models"
	"github.com/officeeats/cafeteria-app/utils"

	"time"
)

// Sender delivers one notification. The order ledger only depends on this
// contract; how a message travels (email, push, log line) is the sender's
// business.
type Sender interface {
	Send(recipient, subject, body string) error
}

// LogSender "delivers" by writing a structured log line and recording the
// notification so admins can review what went out.
type LogSender struct {
	DB *gorm.DB
}

func (s *LogSender) Send(recipient, subject, body string) error {
	utils.InfoLogger.WithFields(logrus.Fields{
		"recipient": recipient,
		"subject":   subject,
	}).Info(body)

	return s.DB.Create(&models.Notification{
		Recipient: recipient,
		Subject:   subject,
		Message:   body,
	}).Error
}

// Notifier runs sends in the background, bounded by a timeout, so order
// mutations never block on delivery. Failures are logged and swallowed: a
// lost notification must not unwind a committed order or status change.
type Notifier struct {
	sender  Sender
	timeout time.Duration
}

func NewNotifier(sender Sender, timeout time.Duration) *Notifier {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Notifier{sender: sender, timeout: timeout}
}

func (n *Notifier) Dispatch(recipient, subject, body string) {
	go func() {
		done := make(chan error, 1)
		go func() {
			done <- n.sender.Send(recipient, subject, body)
		}()

		select {
		case err := <-done:
			if err != nil {
				utils.ErrorLogger.Printf("notification to %s failed: %v", recipient, err)
			}
		case <-time.After(n.timeout):
			utils.ErrorLogger.Printf("notification to %s timed out after %s", recipient, n.timeout)
		}
	}()
}
