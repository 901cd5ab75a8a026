package emailtemplate

import (
	"context"

	"rentora/internal/core/apperror"
	"rentora/internal/core/id"
	"rentora/internal/domain"
	"rentora/internal/domain/filter"
	"rentora/pkg/logger"
)

// Service provides business logic for email templates.
type Service struct {
	*domain.EntityService[*EmailTemplate]
	mailer Mailer
}

// NewService creates a new EmailTemplate service. mailer may be nil when
// delivery is not configured.
func NewService(coll domain.Collection[*EmailTemplate], deps domain.ServiceDeps, mailer Mailer) *Service {
	base := domain.NewEntityService(domain.EntityServiceConfig[*EmailTemplate]{
		Collection: coll,
		Store:      deps.Store,
		EntityName: "email template",
		ApplyUpdate: func(dst, src *EmailTemplate) {
			dst.Subject = src.Subject
			dst.Body = src.Body
		},
		Clock: deps.Clock,
	})

	svc := &Service{EntityService: base, mailer: mailer}
	base.Hooks().OnBeforeSave(svc.ensureNotDuplicate)

	return svc
}

func (s *Service) ensureNotDuplicate(ctx context.Context, t *EmailTemplate) error {
	return s.EnsureUnique(ctx, t,
		filter.Eq("subject", t.Subject),
		filter.Eq("body", t.Body),
	)
}

// Render loads a live template and renders it for receiver.
func (s *Service) Render(ctx context.Context, templateID id.ID, values map[string]string, sender, receiver string) (Message, error) {
	t, err := s.GetByID(ctx, templateID)
	if err != nil {
		return Message{}, err
	}
	return ConvertToMessage(t, values, sender, receiver)
}

// Send renders a live template and delivers it through the configured mailer.
// Without a mailer nothing is rendered and UnsupportedOperation is returned.
func (s *Service) Send(ctx context.Context, templateID id.ID, values map[string]string, sender, receiver string) (Message, error) {
	if s.mailer == nil {
		logger.Warn(ctx, "mailer not configured, send refused", "template_id", templateID, "receiver", receiver)
		return Message{}, apperror.NewUnsupportedOperation("email template", "send").
			WithDetail("reason", "mail delivery is not configured")
	}
	msg, err := s.Render(ctx, templateID, values, sender, receiver)
	if err != nil {
		return Message{}, err
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		return Message{}, err
	}
	logger.Info(ctx, "email sent", "template_id", templateID, "receiver", receiver)
	return msg, nil
}
