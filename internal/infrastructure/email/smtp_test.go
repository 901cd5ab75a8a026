package email

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"rentora/internal/domain/notifications/emailtemplate"
)

func TestSMTPSender_BuildMessage(t *testing.T) {
	s := NewSMTPSender(Config{Host: "localhost", Port: 1025, From: "noreply@rentora.dev"})

	tests := []struct {
		name     string
		msg      emailtemplate.Message
		wantFrom string
	}{
		{
			name:     "explicit sender",
			msg:      emailtemplate.Message{Sender: "host@rentora.dev", Receiver: "ann@example.com", Subject: "Hi", Body: "plain"},
			wantFrom: "host@rentora.dev",
		},
		{
			name:     "default sender",
			msg:      emailtemplate.Message{Receiver: "ann@example.com", Subject: "Hi", Body: "<html><body>hi</body></html>"},
			wantFrom: "noreply@rentora.dev",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := s.buildMessage(tt.msg)
			assert.Equal(t, []string{tt.wantFrom}, m.GetHeader("From"))
			assert.Equal(t, []string{tt.msg.Receiver}, m.GetHeader("To"))
			assert.Equal(t, []string{tt.msg.Subject}, m.GetHeader("Subject"))
		})
	}
}

func TestSMTPSender_CancelledContext(t *testing.T) {
	s := NewSMTPSender(Config{Host: "localhost", Port: 1025})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Send(ctx, emailtemplate.Message{Receiver: "ann@example.com"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLooksLikeHTML(t *testing.T) {
	assert.True(t, looksLikeHTML("  <!DOCTYPE html><html></html>"))
	assert.True(t, looksLikeHTML("<HTML>"))
	assert.False(t, looksLikeHTML("Hello <b>there</b>"))
}
