package notify

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		want    string
		wantErr bool
	}{
		{"no provider", Config{}, "*notify.LogMailer", false},
		{"resend", Config{Provider: "resend", APIKey: "re_x", Sender: "noreply@example.org"}, "*notify.ResendMailer", false},
		{"sendgrid", Config{Provider: "sendgrid", APIKey: "SG.x", Sender: "noreply@example.org"}, "*notify.SendGridMailer", false},
		{"resend without key", Config{Provider: "resend", Sender: "noreply@example.org"}, "", true},
		{"sendgrid without sender", Config{Provider: "sendgrid", APIKey: "SG.x"}, "", true},
		{"unknown", Config{Provider: "pigeon"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := New(tt.cfg, discardLogger())
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}
			if got := typeName(m); got != tt.want {
				t.Errorf("New returned %s, want %s", got, tt.want)
			}
		})
	}
}

func typeName(m Mailer) string {
	switch m.(type) {
	case *LogMailer:
		return "*notify.LogMailer"
	case *ResendMailer:
		return "*notify.ResendMailer"
	case *SendGridMailer:
		return "*notify.SendGridMailer"
	}
	return "unknown"
}

func TestLogMailer(t *testing.T) {
	if err := NewLogMailer(discardLogger()).SendOTP(context.Background(), "a@example.org", "123456"); err != nil {
		t.Errorf("SendOTP failed: %v", err)
	}
}

func TestResendMailer(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/emails" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"email_1"}`))
	}))
	defer srv.Close()

	m := NewResendMailer("re_test", "noreply@example.org", discardLogger())
	base, _ := url.Parse(srv.URL + "/")
	m.client.BaseURL = base

	if err := m.SendOTP(context.Background(), "a@example.org", "654321"); err != nil {
		t.Fatalf("SendOTP failed: %v", err)
	}
	if got["subject"] != "Your OTP Code" {
		t.Errorf("subject = %v", got["subject"])
	}
	if got["text"] != "Your OTP code is: 654321" {
		t.Errorf("text = %v", got["text"])
	}
}
