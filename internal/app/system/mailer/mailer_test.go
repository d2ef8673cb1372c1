package mailer

import (
	"context"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestBuildPasswordResetEmail(t *testing.T) {
	e := BuildPasswordResetEmail("ann@example.com", PasswordResetData{
		SiteName:  "GraceHub",
		Name:      "Ann",
		ResetLink: "http://localhost:3000/reset-password?token=abc",
		ExpiresIn: "1 hour",
	})

	if e.To != "ann@example.com" {
		t.Errorf("To = %q", e.To)
	}
	if e.Subject != "Reset your GraceHub password" {
		t.Errorf("Subject = %q", e.Subject)
	}
	for _, body := range []string{e.TextBody, e.HTMLBody} {
		if !strings.Contains(body, "reset-password?token=abc") {
			t.Errorf("body missing reset link: %q", body)
		}
		if !strings.Contains(body, "1 hour") {
			t.Errorf("body missing expiry: %q", body)
		}
	}
}

func TestBuildMessage_Multipart(t *testing.T) {
	cfg := Config{From: "noreply@gracehub.local", FromName: "GraceHub"}
	msg := string(buildMessage(cfg, Email{
		To:       "ann@example.com",
		Subject:  "Hello",
		TextBody: "plain",
		HTMLBody: "<p>html</p>",
	}, time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)))

	for _, want := range []string{
		`From: "GraceHub" <noreply@gracehub.local>`,
		"To: ann@example.com",
		"multipart/alternative",
		"text/plain; charset=UTF-8",
		"text/html; charset=UTF-8",
		"<p>html</p>",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q:\n%s", want, msg)
		}
	}
}

func TestNew_NoHostLogs(t *testing.T) {
	s := New(Config{}, zap.NewNop())
	if _, ok := s.(LogSender); !ok {
		t.Fatalf("New without host = %T, want LogSender", s)
	}
	if err := s.Send(context.Background(), Email{To: "x@example.com"}); err != nil {
		t.Errorf("LogSender.Send: %v", err)
	}
}
