// Package emailtemplate provides reusable email templates and their rendering
// into concrete messages.
package emailtemplate

import (
	"context"

	"rentora/internal/core/entity"
)

// EmailTemplate is a subject/body pair with {{key}} placeholders.
type EmailTemplate struct {
	entity.BaseEntity

	Subject string `db:"subject" json:"subject"`
	Body    string `db:"body" json:"body"`
}

// Validate implements entity.Validatable interface.
func (t *EmailTemplate) Validate(ctx context.Context) error {
	return entity.FirstError(
		entity.RequireNonEmpty("subject", t.Subject),
		entity.RequireNonEmpty("body", t.Body),
	)
}
