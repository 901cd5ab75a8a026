package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"rentora/internal/core/id"
	"rentora/internal/domain/notifications/emailtemplate"
	"rentora/internal/infrastructure/http/v1/dto"
)

// EmailHandler renders and delivers email templates.
type EmailHandler struct {
	*BaseHandler
	service *emailtemplate.Service
}

// NewEmailHandler creates a new email handler.
func NewEmailHandler(base *BaseHandler, service *emailtemplate.Service) *EmailHandler {
	return &EmailHandler{BaseHandler: base, service: service}
}

// Render handles POST /email-templates/:id/render.
func (h *EmailHandler) Render(c *gin.Context) {
	h.handle(c, h.service.Render)
}

// Send handles POST /email-templates/:id/send.
func (h *EmailHandler) Send(c *gin.Context) {
	h.handle(c, h.service.Send)
}

type renderFunc func(ctx context.Context, templateID id.ID, values map[string]string, sender, receiver string) (emailtemplate.Message, error)

func (h *EmailHandler) handle(c *gin.Context, fn renderFunc) {
	templateID, ok := h.ParamID(c)
	if !ok {
		return
	}

	var req dto.SendEmailRequest
	if !h.BindJSON(c, &req) {
		return
	}

	msg, err := fn(c.Request.Context(), templateID, req.Values, req.Sender, req.Receiver)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, msg)
}
