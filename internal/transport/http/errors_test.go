package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/njprem/TripPlanner_APP_BackEnd/internal/service"
)

func TestStatusForError(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "validation shows wrapped detail",
			err:        fmt.Errorf("%w: days must be between 1 and 14", service.ErrItineraryValidation),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "no candidates",
			err:        fmt.Errorf("generate: %w", service.ErrNoMatchingDestinations),
			wantStatus: http.StatusNotFound,
			wantMsg:    "no destinations match your criteria",
		},
		{
			name:       "trip version conflict",
			err:        service.ErrTripVersionConflict,
			wantStatus: http.StatusConflict,
			wantMsg:    "trip was modified by another request, reload and retry",
		},
		{
			name:       "forbidden",
			err:        service.ErrForbidden,
			wantStatus: http.StatusForbidden,
			wantMsg:    "you do not have access to this resource",
		},
		{
			name:       "storage missing",
			err:        service.ErrStorageUnavailable,
			wantStatus: http.StatusServiceUnavailable,
			wantMsg:    "image storage is not configured",
		},
		{
			name:       "unknown error",
			err:        errors.New("connection reset by peer"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "fallback",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, msg := statusForError(tc.err, "fallback")
			if status != tc.wantStatus {
				t.Fatalf("expected status %d, got %d", tc.wantStatus, status)
			}
			want := tc.wantMsg
			if want == "" {
				want = tc.err.Error()
			}
			if msg != want {
				t.Fatalf("expected message %q, got %q", want, msg)
			}
		})
	}
}

func TestWriteErrorHidesInternalDetail(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/v1/trips", nil), rec)

	if err := writeError(c, errors.New("pq: relation \"trip\" does not exist"), "failed to list trips"); err != nil {
		t.Fatalf("writeError returned error: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if body := rec.Body.String(); body != "{\"error\":\"failed to list trips\"}\n" {
		t.Fatalf("unexpected body %q", body)
	}
}
