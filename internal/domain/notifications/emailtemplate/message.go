package emailtemplate

import (
	"context"
	"regexp"
	"strings"

	"rentora/internal/core/apperror"
)

// Message is a rendered email ready for delivery.
type Message struct {
	Sender   string `json:"sender"`
	Receiver string `json:"receiver"`
	Subject  string `json:"subject"`
	Body     string `json:"body"`
}

// Mailer delivers rendered messages.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

var placeholder = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_.-]+)\s*\}\}`)

// ConvertToMessage renders t with values. Placeholders without a value are left intact.
func ConvertToMessage(t *EmailTemplate, values map[string]string, sender, receiver string) (Message, error) {
	if strings.TrimSpace(receiver) == "" {
		return Message{}, apperror.NewFieldValidation("receiver", "receiver is required")
	}
	return Message{
		Sender:   sender,
		Receiver: receiver,
		Subject:  render(t.Subject, values),
		Body:     render(t.Body, values),
	}, nil
}

func render(text string, values map[string]string) string {
	return placeholder.ReplaceAllStringFunc(text, func(m string) string {
		key := placeholder.FindStringSubmatch(m)[1]
		if v, ok := values[key]; ok {
			return v
		}
		return m
	})
}
