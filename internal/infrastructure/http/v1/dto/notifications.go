package dto

import (
	"rentora/internal/core/id"
	"rentora/internal/domain/notifications/emailtemplate"
)

// EmailTemplateRequest for creating or replacing an email template.
type EmailTemplateRequest struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func (r EmailTemplateRequest) ToEntity() *emailtemplate.EmailTemplate {
	return &emailtemplate.EmailTemplate{BaseEntity: base(id.Nil()), Subject: r.Subject, Body: r.Body}
}

// SendEmailRequest renders a template and optionally delivers it.
type SendEmailRequest struct {
	Values   map[string]string `json:"values"`
	Sender   string            `json:"sender"`
	Receiver string            `json:"receiver" binding:"required"`
}
