package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/secura-qr/secura-qr/internal/api/handler/v1/request"
	"github.com/secura-qr/secura-qr/internal/api/handler/v1/response"
	"github.com/secura-qr/secura-qr/internal/domain"
	"github.com/secura-qr/secura-qr/internal/service"
)

type MessageService interface {
	CreateMessage(ctx context.Context, message domain.Message) (domain.Message, error)
	GetMessage(ctx context.Context, id uint) (domain.Message, error)
	GetMessages(ctx context.Context, eventID uint) ([]domain.Message, error)
	UpdateMessage(ctx context.Context, message domain.Message) (domain.Message, error)
	DeleteMessage(ctx context.Context, id uint) error
	PreviewMessage(ctx context.Context, messageID, guestID uint) (subject, body string, err error)
}

type MessageHandler struct {
	svc MessageService
}

func NewMessageHandler(svc MessageService) *MessageHandler {
	return &MessageHandler{
		svc: svc,
	}
}

// HandleCreateMessage godoc
// @Summary      Create an email template for an event
// @Tags         messages
// @Accept       json
// @Produce      json
// @Param        eventID  path      int  true  "event ID"
// @Param        input  body      request.CreateMessageRequest  true  "Template details"
// @Success      201    {object}  domain.Message
// @Failure      400    {object}  response.Err
// @Failure      404    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /events/{eventID}/messages [post]
// @Security BearerAuth
func (h *MessageHandler) HandleCreateMessage(ctx *gin.Context) {
	eventID, ok := parseIDParam(ctx, "eventID")
	if !ok {
		return
	}

	var input request.CreateMessageRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	message := domain.Message{
		EventID: eventID,
		Kind:    domain.MessageKind(input.Kind),
		Subject: input.Subject,
		Body:    input.Body,
	}

	created, err := h.svc.CreateMessage(ctx.Request.Context(), message)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
			return
		}

		err = fmt.Errorf("v1.HandleCreateMessage -> h.svc.CreateMessage -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleGetMessages godoc
// @Summary      List an event's email templates
// @Tags         messages
// @Produce      json
// @Param        eventID  path      int  true  "event ID"
// @Success      200  {array}   domain.Message
// @Failure      500  {object}  response.Err
// @Router       /events/{eventID}/messages [get]
// @Security BearerAuth
func (h *MessageHandler) HandleGetMessages(ctx *gin.Context) {
	eventID, ok := parseIDParam(ctx, "eventID")
	if !ok {
		return
	}

	messages, err := h.svc.GetMessages(ctx.Request.Context(), eventID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetMessages -> h.svc.GetMessages -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, messages)
}

// HandleGetMessage godoc
// @Summary      Get an email template by ID
// @Tags         messages
// @Produce      json
// @Param        messageID  path      int  true  "message ID"
// @Success      200  {object}  domain.Message
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /messages/{messageID} [get]
// @Security BearerAuth
func (h *MessageHandler) HandleGetMessage(ctx *gin.Context) {
	messageID, ok := parseIDParam(ctx, "messageID")
	if !ok {
		return
	}

	message, err := h.svc.GetMessage(ctx.Request.Context(), messageID)
	if err != nil {
		if errors.Is(err, service.ErrMessageNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("message", "ID", messageID))
			return
		}

		err = fmt.Errorf("v1.HandleGetMessage -> h.svc.GetMessage -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, message)
}

// HandleUpdateMessage godoc
// @Summary      Update an email template
// @Tags         messages
// @Accept       json
// @Produce      json
// @Param        messageID  path      int  true  "message ID"
// @Param        input  body      request.CreateMessageRequest  true  "Template details"
// @Success      200    {object}  domain.Message
// @Failure      400    {object}  response.Err
// @Failure      404    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /messages/{messageID} [put]
// @Security BearerAuth
func (h *MessageHandler) HandleUpdateMessage(ctx *gin.Context) {
	messageID, ok := parseIDParam(ctx, "messageID")
	if !ok {
		return
	}

	var input request.CreateMessageRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	message := domain.Message{
		ID:      messageID,
		Kind:    domain.MessageKind(input.Kind),
		Subject: input.Subject,
		Body:    input.Body,
	}

	updated, err := h.svc.UpdateMessage(ctx.Request.Context(), message)
	if err != nil {
		if errors.Is(err, service.ErrMessageNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("message", "ID", messageID))
			return
		}

		err = fmt.Errorf("v1.HandleUpdateMessage -> h.svc.UpdateMessage -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// HandleDeleteMessage godoc
// @Summary      Delete an email template
// @Tags         messages
// @Produce      json
// @Param        messageID  path      int  true  "message ID"
// @Success      204
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /messages/{messageID} [delete]
// @Security BearerAuth
func (h *MessageHandler) HandleDeleteMessage(ctx *gin.Context) {
	messageID, ok := parseIDParam(ctx, "messageID")
	if !ok {
		return
	}

	if err := h.svc.DeleteMessage(ctx.Request.Context(), messageID); err != nil {
		if errors.Is(err, service.ErrMessageNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("message", "ID", messageID))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteMessage -> h.svc.DeleteMessage -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandlePreviewMessage godoc
// @Summary      Preview a template rendered for one guest
// @Tags         messages
// @Accept       json
// @Produce      json
// @Param        messageID  path      int  true  "message ID"
// @Param        input  body      request.PreviewMessageRequest  true  "Guest to render for"
// @Success      200    {object}  response.MessagePreviewResponse
// @Failure      400    {object}  response.Err
// @Failure      404    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /messages/{messageID}/preview [post]
// @Security BearerAuth
func (h *MessageHandler) HandlePreviewMessage(ctx *gin.Context) {
	messageID, ok := parseIDParam(ctx, "messageID")
	if !ok {
		return
	}

	var input request.PreviewMessageRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	subject, body, err := h.svc.PreviewMessage(ctx.Request.Context(), messageID, input.GuestID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMessageNotFound):
			response.RenderErr(ctx, response.ErrNotFound("message", "ID", messageID))
		case errors.Is(err, service.ErrGuestNotFound):
			response.RenderErr(ctx, response.ErrNotFound("guest", "ID", input.GuestID))
		case errors.Is(err, service.ErrGuestNotInEvent):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandlePreviewMessage -> h.svc.PreviewMessage -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.MessagePreviewResponse{
		Subject: subject,
		Body:    body,
	})
}
