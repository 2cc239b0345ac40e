package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/secura-qr/secura-qr/internal/api/handler/v1/request"
	"github.com/secura-qr/secura-qr/internal/api/handler/v1/response"
	"github.com/secura-qr/secura-qr/internal/domain"
	"github.com/secura-qr/secura-qr/internal/service"
)

type InvitationService interface {
	CreateInvitation(ctx context.Context, guestID uint) (domain.Invitation, error)
	GetByToken(ctx context.Context, token string) (domain.Invitation, error)
	GetByGuest(ctx context.Context, guestID uint) ([]domain.Invitation, error)
	MarkSent(ctx context.Context, token string) (domain.Invitation, error)
	MarkOpened(ctx context.Context, token string) (domain.Invitation, error)
	QRCodePNG(ctx context.Context, token string, size int) ([]byte, error)
}

type InvitationGuestService interface {
	ScanGuest(ctx context.Context, id uint, station string) (domain.Guest, bool, error)
}

type InvitationHandler struct {
	svc      InvitationService
	guestSvc InvitationGuestService
}

func NewInvitationHandler(svc InvitationService, guestSvc InvitationGuestService) *InvitationHandler {
	return &InvitationHandler{
		svc:      svc,
		guestSvc: guestSvc,
	}
}

// HandleCreateInvitation godoc
// @Summary      Create an invitation for a guest
// @Tags         invitations
// @Produce      json
// @Param        guestID  path      int  true  "guest ID"
// @Success      201  {object}  domain.Invitation
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /guests/{guestID}/invitations [post]
// @Security BearerAuth
func (h *InvitationHandler) HandleCreateInvitation(ctx *gin.Context) {
	guestID, ok := parseIDParam(ctx, "guestID")
	if !ok {
		return
	}

	invitation, err := h.svc.CreateInvitation(ctx.Request.Context(), guestID)
	if err != nil {
		if errors.Is(err, service.ErrGuestNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("guest", "ID", guestID))
			return
		}

		err = fmt.Errorf("v1.HandleCreateInvitation -> h.svc.CreateInvitation -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, invitation)
}

// HandleGetInvitations godoc
// @Summary      List a guest's invitations
// @Tags         invitations
// @Produce      json
// @Param        guestID  path      int  true  "guest ID"
// @Success      200  {array}   domain.Invitation
// @Failure      500  {object}  response.Err
// @Router       /guests/{guestID}/invitations [get]
// @Security BearerAuth
func (h *InvitationHandler) HandleGetInvitations(ctx *gin.Context) {
	guestID, ok := parseIDParam(ctx, "guestID")
	if !ok {
		return
	}

	invitations, err := h.svc.GetByGuest(ctx.Request.Context(), guestID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetInvitations -> h.svc.GetByGuest -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, invitations)
}

// HandleGetInvitation godoc
// @Summary      Get an invitation by token
// @Tags         invitations
// @Produce      json
// @Param        token  path      string  true  "invitation token"
// @Success      200  {object}  domain.Invitation
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /invitations/{token} [get]
// @Security BearerAuth
func (h *InvitationHandler) HandleGetInvitation(ctx *gin.Context) {
	token := ctx.Param("token")

	invitation, err := h.svc.GetByToken(ctx.Request.Context(), token)
	if err != nil {
		if errors.Is(err, service.ErrInvitationNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("invitation", "token", token))
			return
		}

		err = fmt.Errorf("v1.HandleGetInvitation -> h.svc.GetByToken -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, invitation)
}

// HandleInvitationQR godoc
// @Summary      Render the invitation's check-in QR code as PNG
// @Tags         invitations
// @Produce      png
// @Param        token  path   string  true   "invitation token"
// @Param        size   query  int     false  "image size in pixels"
// @Success      200
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /invitations/{token}/qr [get]
// @Security BearerAuth
func (h *InvitationHandler) HandleInvitationQR(ctx *gin.Context) {
	token := ctx.Param("token")

	size, _ := strconv.Atoi(ctx.Query("size"))

	png, err := h.svc.QRCodePNG(ctx.Request.Context(), token, size)
	if err != nil {
		if errors.Is(err, service.ErrInvitationNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("invitation", "token", token))
			return
		}

		err = fmt.Errorf("v1.HandleInvitationQR -> h.svc.QRCodePNG -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Data(http.StatusOK, "image/png", png)
}

// HandleMarkInvitationSent godoc
// @Summary      Mark an invitation as sent
// @Tags         invitations
// @Produce      json
// @Param        token  path      string  true  "invitation token"
// @Success      200  {object}  domain.Invitation
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /invitations/{token}/sent [post]
// @Security BearerAuth
func (h *InvitationHandler) HandleMarkInvitationSent(ctx *gin.Context) {
	token := ctx.Param("token")

	invitation, err := h.svc.MarkSent(ctx.Request.Context(), token)
	if err != nil {
		if errors.Is(err, service.ErrInvitationNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("invitation", "token", token))
			return
		}

		err = fmt.Errorf("v1.HandleMarkInvitationSent -> h.svc.MarkSent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, invitation)
}

// HandleCheckIn godoc
// @Summary      Check in a guest by invitation token
// @Description  Resolves the invitation, marks it opened and records a scan on
// @Description  the guest. Scanning twice is reported, not rejected.
// @Tags         invitations
// @Accept       json
// @Produce      json
// @Param        token  path      string  true   "invitation token"
// @Param        input  body      request.ScanGuestRequest  false  "Scan details"
// @Success      200  {object}  response.ScanGuestResponse
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /invitations/{token}/checkin [post]
func (h *InvitationHandler) HandleCheckIn(ctx *gin.Context) {
	token := ctx.Param("token")

	var input request.ScanGuestRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&input); err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		if err := input.Validate(); err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}
	}

	invitation, err := h.svc.MarkOpened(ctx.Request.Context(), token)
	if err != nil {
		if errors.Is(err, service.ErrInvitationNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("invitation", "token", token))
			return
		}

		err = fmt.Errorf("v1.HandleCheckIn -> h.svc.MarkOpened -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	guest, alreadyScanned, err := h.guestSvc.ScanGuest(ctx.Request.Context(), invitation.GuestID, input.Station)
	if err != nil {
		err = fmt.Errorf("v1.HandleCheckIn -> h.guestSvc.ScanGuest -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.ScanGuestResponse{
		Guest:          guest,
		AlreadyScanned: alreadyScanned,
	})
}
