// internal/app/system/mailer/mailer.go
package mailer

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"net/mail"
	"strings"
	"time"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Email is one outgoing message with text and HTML alternatives.
type Email struct {
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

// Sender delivers an Email.
type Sender interface {
	Send(ctx context.Context, e Email) error
}

// Config holds SMTP settings. A blank Host disables delivery.
type Config struct {
	Host     string
	Port     int
	User     string
	Pass     string
	From     string
	FromName string
}

// SMTPMailer sends through an SMTP relay (Mailpit in dev, SES or similar in prod).
type SMTPMailer struct {
	cfg Config
	log *zap.Logger
}

// New returns an SMTP sender, or a LogSender when no host is configured.
func New(cfg Config, logger *zap.Logger) Sender {
	if strings.TrimSpace(cfg.Host) == "" {
		logger.Info("mail host not configured; emails will be logged")
		return LogSender{Log: logger}
	}
	return &SMTPMailer{cfg: cfg, log: logger}
}

// Send delivers e. SMTP has no context support, so ctx is only checked up front.
func (m *SMTPMailer) Send(ctx context.Context, e Email) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var auth sasl.Client
	if m.cfg.User != "" {
		auth = sasl.NewPlainClient("", m.cfg.User, m.cfg.Pass)
	}

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	msg := buildMessage(m.cfg, e, time.Now())
	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{e.To}, bytes.NewReader(msg)); err != nil {
		return fmt.Errorf("send mail to %s: %w", e.To, err)
	}

	m.log.Info("email sent", zap.String("to", e.To), zap.String("subject", e.Subject))
	return nil
}

// LogSender writes the message to the log instead of sending it.
type LogSender struct {
	Log *zap.Logger
}

func (s LogSender) Send(_ context.Context, e Email) error {
	s.Log.Info("email (not sent; mail disabled)",
		zap.String("to", e.To),
		zap.String("subject", e.Subject),
		zap.String("body", e.TextBody))
	return nil
}

// buildMessage renders a multipart/alternative RFC 5322 message.
func buildMessage(cfg Config, e Email, now time.Time) []byte {
	boundary := "gh-" + uuid.NewString()
	from := (&mail.Address{Name: cfg.FromName, Address: cfg.From}).String()

	var b bytes.Buffer
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", e.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", e.Subject))
	fmt.Fprintf(&b, "Date: %s\r\n", now.Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=%q\r\n\r\n", boundary)

	fmt.Fprintf(&b, "--%s\r\n", boundary)
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
	b.WriteString(e.TextBody)
	b.WriteString("\r\n")

	if e.HTMLBody != "" {
		fmt.Fprintf(&b, "--%s\r\n", boundary)
		b.WriteString("Content-Type: text/html; charset=UTF-8\r\n\r\n")
		b.WriteString(e.HTMLBody)
		b.WriteString("\r\n")
	}
	fmt.Fprintf(&b, "--%s--\r\n", boundary)
	return b.Bytes()
}
