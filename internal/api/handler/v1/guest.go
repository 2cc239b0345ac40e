package v1

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/secura-qr/secura-qr/internal/api/handler/v1/request"
	"github.com/secura-qr/secura-qr/internal/api/handler/v1/response"
	"github.com/secura-qr/secura-qr/internal/config"
	"github.com/secura-qr/secura-qr/internal/domain"
	"github.com/secura-qr/secura-qr/internal/service"
)

type GuestService interface {
	CreateGuest(ctx context.Context, guest domain.Guest) (domain.Guest, error)
	GetGuest(ctx context.Context, id uint) (domain.Guest, error)
	ListGuests(ctx context.Context, eventID uint, status domain.GuestStatus) ([]domain.Guest, error)
	UpdateGuest(ctx context.Context, guest domain.Guest) (domain.Guest, error)
	DeleteGuest(ctx context.Context, id uint) error
	ConfirmGuest(ctx context.Context, id uint) (domain.Guest, error)
	CancelGuest(ctx context.Context, id uint) (domain.Guest, error)
	ScanGuest(ctx context.Context, id uint, station string) (domain.Guest, bool, error)
	ImportGuestsCSV(ctx context.Context, eventID uint, r io.Reader, opts service.ImportOptions) (domain.GuestImportResult, error)
	ExportGuestsCSV(ctx context.Context, eventID uint, w io.Writer) error
}

type GuestHandler struct {
	conf *config.ImportConfig
	svc  GuestService
}

func NewGuestHandler(conf *config.ImportConfig, svc GuestService) *GuestHandler {
	return &GuestHandler{
		conf: conf,
		svc:  svc,
	}
}

// HandleCreateGuest godoc
// @Summary      Add a guest to an event
// @Tags         guests
// @Accept       json
// @Produce      json
// @Param        eventID  path      int  true  "event ID"
// @Param        input  body      request.CreateGuestRequest  true  "Guest details"
// @Success      201    {object}  domain.Guest
// @Failure      400    {object}  response.Err
// @Failure      404    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /events/{eventID}/guests [post]
// @Security BearerAuth
func (h *GuestHandler) HandleCreateGuest(ctx *gin.Context) {
	eventID, ok := parseIDParam(ctx, "eventID")
	if !ok {
		return
	}

	var input request.CreateGuestRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	guest := domain.Guest{
		EventID:   eventID,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Phone:     input.Phone,
		Company:   input.Company,
		Notes:     input.Notes,
		Seats:     input.Seats,
		Metadata: domain.GuestMetadata{
			Category:    input.Category,
			TableNumber: input.TableNumber,
		},
	}

	created, err := h.svc.CreateGuest(ctx.Request.Context(), guest)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
		case errors.Is(err, service.ErrGuestEmailExists),
			errors.Is(err, service.ErrEventFull):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleCreateGuest -> h.svc.CreateGuest -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleGetGuests godoc
// @Summary      List guests of an event
// @Tags         guests
// @Produce      json
// @Param        eventID  path      int     true   "event ID"
// @Param        status   query     string  false  "filter by status"
// @Success      200  {array}   domain.Guest
// @Failure      500  {object}  response.Err
// @Router       /events/{eventID}/guests [get]
// @Security BearerAuth
func (h *GuestHandler) HandleGetGuests(ctx *gin.Context) {
	eventID, ok := parseIDParam(ctx, "eventID")
	if !ok {
		return
	}

	status := domain.GuestStatus(ctx.Query("status"))

	guests, err := h.svc.ListGuests(ctx.Request.Context(), eventID, status)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetGuests -> h.svc.ListGuests -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, guests)
}

// HandleGetGuest godoc
// @Summary      Get a guest
// @Tags         guests
// @Produce      json
// @Param        guestID  path      int  true  "guest ID"
// @Success      200  {object}  domain.Guest
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /guests/{guestID} [get]
// @Security BearerAuth
func (h *GuestHandler) HandleGetGuest(ctx *gin.Context) {
	guestID, ok := parseIDParam(ctx, "guestID")
	if !ok {
		return
	}

	guest, err := h.svc.GetGuest(ctx.Request.Context(), guestID)
	if err != nil {
		if errors.Is(err, service.ErrGuestNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("guest", "ID", guestID))
			return
		}

		err = fmt.Errorf("v1.HandleGetGuest -> h.svc.GetGuest -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, guest)
}

// HandleUpdateGuest godoc
// @Summary      Update a guest
// @Tags         guests
// @Accept       json
// @Produce      json
// @Param        guestID  path      int  true  "guest ID"
// @Param        input  body      request.UpdateGuestRequest  true  "Guest details"
// @Success      200    {object}  domain.Guest
// @Failure      400    {object}  response.Err
// @Failure      404    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /guests/{guestID} [put]
// @Security BearerAuth
func (h *GuestHandler) HandleUpdateGuest(ctx *gin.Context) {
	guestID, ok := parseIDParam(ctx, "guestID")
	if !ok {
		return
	}

	var input request.UpdateGuestRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	guest := domain.Guest{
		ID:        guestID,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Phone:     input.Phone,
		Company:   input.Company,
		Notes:     input.Notes,
		Seats:     input.Seats,
		Status:    domain.GuestStatus(input.Status),
		Metadata: domain.GuestMetadata{
			Category:    input.Category,
			TableNumber: input.TableNumber,
		},
	}

	updated, err := h.svc.UpdateGuest(ctx.Request.Context(), guest)
	if err != nil {
		if errors.Is(err, service.ErrGuestNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("guest", "ID", guestID))
			return
		}

		err = fmt.Errorf("v1.HandleUpdateGuest -> h.svc.UpdateGuest -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// HandleDeleteGuest godoc
// @Summary      Delete a guest
// @Tags         guests
// @Produce      json
// @Param        guestID  path      int  true  "guest ID"
// @Success      204
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /guests/{guestID} [delete]
// @Security BearerAuth
func (h *GuestHandler) HandleDeleteGuest(ctx *gin.Context) {
	guestID, ok := parseIDParam(ctx, "guestID")
	if !ok {
		return
	}

	if err := h.svc.DeleteGuest(ctx.Request.Context(), guestID); err != nil {
		if errors.Is(err, service.ErrGuestNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("guest", "ID", guestID))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteGuest -> h.svc.DeleteGuest -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleConfirmGuest godoc
// @Summary      Confirm a guest
// @Tags         guests
// @Produce      json
// @Param        guestID  path      int  true  "guest ID"
// @Success      200  {object}  domain.Guest
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /guests/{guestID}/confirm [post]
// @Security BearerAuth
func (h *GuestHandler) HandleConfirmGuest(ctx *gin.Context) {
	h.handleStatusChange(ctx, h.svc.ConfirmGuest)
}

// HandleCancelGuest godoc
// @Summary      Cancel a guest
// @Tags         guests
// @Produce      json
// @Param        guestID  path      int  true  "guest ID"
// @Success      200  {object}  domain.Guest
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /guests/{guestID}/cancel [post]
// @Security BearerAuth
func (h *GuestHandler) HandleCancelGuest(ctx *gin.Context) {
	h.handleStatusChange(ctx, h.svc.CancelGuest)
}

func (h *GuestHandler) handleStatusChange(ctx *gin.Context, change func(context.Context, uint) (domain.Guest, error)) {
	guestID, ok := parseIDParam(ctx, "guestID")
	if !ok {
		return
	}

	guest, err := change(ctx.Request.Context(), guestID)
	if err != nil {
		if errors.Is(err, service.ErrGuestNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("guest", "ID", guestID))
			return
		}

		err = fmt.Errorf("v1.handleStatusChange -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, guest)
}

// HandleScanGuest godoc
// @Summary      Record a check-in scan for a guest
// @Tags         guests
// @Accept       json
// @Produce      json
// @Param        guestID  path      int  true  "guest ID"
// @Param        input  body      request.ScanGuestRequest  false  "Scan details"
// @Success      200    {object}  response.ScanGuestResponse
// @Failure      404    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /guests/{guestID}/scan [post]
// @Security BearerAuth
func (h *GuestHandler) HandleScanGuest(ctx *gin.Context) {
	guestID, ok := parseIDParam(ctx, "guestID")
	if !ok {
		return
	}

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

	guest, alreadyScanned, err := h.svc.ScanGuest(ctx.Request.Context(), guestID, input.Station)
	if err != nil {
		if errors.Is(err, service.ErrGuestNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("guest", "ID", guestID))
			return
		}

		err = fmt.Errorf("v1.HandleScanGuest -> h.svc.ScanGuest -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.ScanGuestResponse{
		Guest:          guest,
		AlreadyScanned: alreadyScanned,
	})
}

// HandleImportGuests godoc
// @Summary      Import guests from a CSV file
// @Description  Parses the uploaded CSV and creates guests row by row. A failed
// @Description  row never aborts the batch; the response details every failure.
// @Tags         guests
// @Accept       multipart/form-data
// @Produce      json
// @Param        eventID           path      int     true   "event ID"
// @Param        file              formData  file    true   "CSV file"
// @Param        send_invitations  query     bool    false  "send an invitation per created guest"
// @Success      200  {object}  response.ImportGuestsResponse
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{eventID}/guests/import [post]
// @Security BearerAuth
func (h *GuestHandler) HandleImportGuests(ctx *gin.Context) {
	eventID, ok := parseIDParam(ctx, "eventID")
	if !ok {
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("file is required")))
		return
	}

	maxSize := int64(h.conf.MaxFileSizeMB) * 1024 * 1024
	if maxSize > 0 && file.Size > maxSize {
		response.RenderErr(ctx, response.ErrBadRequest(
			fmt.Errorf("file exceeds the maximum size of %dMB", h.conf.MaxFileSizeMB)))
		return
	}

	if !strings.HasSuffix(strings.ToLower(file.Filename), ".csv") {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("file must be a CSV")))
		return
	}

	f, err := file.Open()
	if err != nil {
		err = fmt.Errorf("v1.HandleImportGuests -> file.Open -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}
	defer f.Close()

	opts := service.ImportOptions{
		SendInvitations: ctx.Query("send_invitations") == "true",
	}

	result, err := h.svc.ImportGuestsCSV(ctx.Request.Context(), eventID, f, opts)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
		case errors.Is(err, service.ErrBatchTooLarge),
			errors.Is(err, service.ErrMissingEventID):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleImportGuests -> h.svc.ImportGuestsCSV -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.ImportGuestsResponse{
		Created: result.Created,
		Failed:  result.Failed,
		Errors:  result.Errors,
		Guests:  result.Guests,
	})
}

// HandleExportGuests godoc
// @Summary      Export an event's guests as CSV
// @Tags         guests
// @Produce      text/csv
// @Param        eventID  path  int  true  "event ID"
// @Success      200
// @Failure      500  {object}  response.Err
// @Router       /events/{eventID}/guests/export [get]
// @Security BearerAuth
func (h *GuestHandler) HandleExportGuests(ctx *gin.Context) {
	eventID, ok := parseIDParam(ctx, "eventID")
	if !ok {
		return
	}

	ctx.Header("Content-Type", "text/csv")
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=guests_event_%d.csv", eventID))

	if err := h.svc.ExportGuestsCSV(ctx.Request.Context(), eventID, ctx.Writer); err != nil {
		err = fmt.Errorf("v1.HandleExportGuests -> h.svc.ExportGuestsCSV -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}
}
