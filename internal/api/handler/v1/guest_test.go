package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secura-qr/secura-qr/internal/config"
	"github.com/secura-qr/secura-qr/internal/domain"
	"github.com/secura-qr/secura-qr/internal/service"
)

type stubGuestService struct {
	GuestService

	importResult domain.GuestImportResult
	importErr    error
	importedOpts service.ImportOptions

	scanGuest   domain.Guest
	scanAlready bool
	scanErr     error
}

func (s *stubGuestService) ImportGuestsCSV(_ context.Context, _ uint, r io.Reader, opts service.ImportOptions) (domain.GuestImportResult, error) {
	s.importedOpts = opts
	_, _ = io.ReadAll(r)

	return s.importResult, s.importErr
}

func (s *stubGuestService) ScanGuest(_ context.Context, _ uint, _ string) (domain.Guest, bool, error) {
	return s.scanGuest, s.scanAlready, s.scanErr
}

func (s *stubGuestService) ExportGuestsCSV(_ context.Context, _ uint, w io.Writer) error {
	_, err := w.Write([]byte("firstName,lastName\nAlice,Martin\n"))

	return err
}

func newGuestRouter(svc GuestService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewGuestHandler(&config.ImportConfig{MaxBatchRows: 1000, MaxFileSizeMB: 5}, svc)

	router := gin.New()
	router.POST("/events/:eventID/guests/import", handler.HandleImportGuests)
	router.GET("/events/:eventID/guests/export", handler.HandleExportGuests)
	router.POST("/guests/:guestID/scan", handler.HandleScanGuest)

	return router
}

func multipartCSV(t *testing.T, filename, content string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return &buf, writer.FormDataContentType()
}

func TestHandleImportGuests(t *testing.T) {
	stub := &stubGuestService{
		importResult: domain.GuestImportResult{
			Created: 2,
			Failed:  1,
			Errors: []domain.GuestImportRowError{
				{Index: 2, Reason: "duplicate in batch"},
			},
		},
	}
	router := newGuestRouter(stub)

	body, contentType := multipartCSV(t, "guests.csv", "firstName\nAlice\nBob\nAlice\n")
	req := httptest.NewRequest(http.MethodPost, "/events/1/guests/import", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Created int                          `json:"created"`
		Failed  int                          `json:"failed"`
		Errors  []domain.GuestImportRowError `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Created)
	assert.Equal(t, 1, resp.Failed)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "duplicate in batch", resp.Errors[0].Reason)
}

func TestHandleImportGuests_SendInvitationsFlag(t *testing.T) {
	stub := &stubGuestService{}
	router := newGuestRouter(stub)

	body, contentType := multipartCSV(t, "guests.csv", "firstName\nAlice\n")
	req := httptest.NewRequest(http.MethodPost, "/events/1/guests/import?send_invitations=true", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, stub.importedOpts.SendInvitations)
}

func TestHandleImportGuests_RejectsNonCSV(t *testing.T) {
	router := newGuestRouter(&stubGuestService{})

	body, contentType := multipartCSV(t, "guests.xlsx", "not a csv")
	req := httptest.NewRequest(http.MethodPost, "/events/1/guests/import", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleImportGuests_MissingFile(t *testing.T) {
	router := newGuestRouter(&stubGuestService{})

	req := httptest.NewRequest(http.MethodPost, "/events/1/guests/import", nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleImportGuests_BatchTooLarge(t *testing.T) {
	router := newGuestRouter(&stubGuestService{importErr: service.ErrBatchTooLarge})

	body, contentType := multipartCSV(t, "guests.csv", "firstName\nAlice\n")
	req := httptest.NewRequest(http.MethodPost, "/events/1/guests/import", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleImportGuests_InvalidEventID(t *testing.T) {
	router := newGuestRouter(&stubGuestService{})

	body, contentType := multipartCSV(t, "guests.csv", "firstName\nAlice\n")
	req := httptest.NewRequest(http.MethodPost, "/events/abc/guests/import", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleExportGuests(t *testing.T) {
	router := newGuestRouter(&stubGuestService{})

	req := httptest.NewRequest(http.MethodGet, "/events/1/guests/export", nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "guests_event_1.csv")
	assert.Contains(t, rec.Body.String(), "Alice,Martin")
}

func TestHandleScanGuest(t *testing.T) {
	stub := &stubGuestService{
		scanGuest:   domain.Guest{ID: 1, FirstName: "Alice", Scanned: true, ScanCount: 2},
		scanAlready: true,
	}
	router := newGuestRouter(stub)

	req := httptest.NewRequest(http.MethodPost, "/guests/1/scan", nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Guest          domain.Guest `json:"guest"`
		AlreadyScanned bool         `json:"already_scanned"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.AlreadyScanned)
	assert.Equal(t, 2, resp.Guest.ScanCount)
}
