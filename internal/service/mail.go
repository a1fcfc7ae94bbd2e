// Package service holds the moving parts behind the HTTP handlers: the
// avatar pipeline and the verification mail dispatcher
package service

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

const mailQueueSize = 64

// Mailer delivers verification emails over SMTP. Sends go through a
// small bounded queue worked by background goroutines so handlers never
// block on the mail server. Delivery is best-effort: failures are
// logged and dropped, never retried
type Mailer struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	AppURL   string

	jobs chan mailJob

	// Replaced in tests to avoid dialing a real SMTP server
	send func(msg *gomail.Message) error
}

type mailJob struct {
	to    string
	token string
}

// NewMailer builds a Mailer from the loaded config. Config is threaded
// in here once instead of being read ambiently on every send
func NewMailer() *Mailer {
	m := &Mailer{
		Host:     viper.GetString("mail.host"),
		Port:     viper.GetInt("mail.port"),
		Username: viper.GetString("mail.username"),
		Password: viper.GetString("mail.password"),
		From:     viper.GetString("mail.from"),
		AppURL:   viper.GetString("app.url"),
		jobs:     make(chan mailJob, mailQueueSize),
	}

	d := gomail.NewDialer(m.Host, m.Port, m.Username, m.Password)
	m.send = func(msg *gomail.Message) error {
		return d.DialAndSend(msg)
	}

	return m
}

// StartWorkers attaches n background workers draining the mail queue
func (m *Mailer) StartWorkers(n int) {
	if n <= 0 {
		n = 1
	}

	for range n {
		go m.worker()
	}
}

func (m *Mailer) worker() {
	for job := range m.jobs {
		if err := m.SendVerification(job.to, job.token); err != nil {
			zap.L().Error("Failed to send verification email",
				zap.String("to", job.to),
				zap.Error(err))
		} else {
			zap.L().Debug("Verification email sent", zap.String("to", job.to))
		}
	}
}

// QueueVerification enqueues a verification email without blocking.
// The returned error only reports that the mail couldn't be queued,
// callers are free to ignore it since delivery is best-effort anyway
func (m *Mailer) QueueVerification(to, token string) error {
	select {
	case m.jobs <- mailJob{to: to, token: token}:
		return nil
	default:
		return errors.New("mail queue is full")
	}
}

// SendVerification synchronously sends the verification email with
// the confirmation link
func (m *Mailer) SendVerification(to, token string) error {
	if m.From == "" || to == m.From {
		return errors.New("invalid email address")
	}

	verifLink := fmt.Sprintf("%s/api/users/verify/%s", m.AppURL, token)

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Email Verification")
	msg.SetBody("text/html", fmt.Sprintf(
		"<p>Click the following link to verify your email:</p><a href='%s'>%s</a>",
		verifLink, verifLink))

	return m.send(msg)
}
