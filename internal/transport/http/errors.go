package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/njprem/TripPlanner_APP_BackEnd/internal/service"
	"github.com/njprem/TripPlanner_APP_BackEnd/internal/util"
)

type errorMapping struct {
	target  error
	status  int
	message string // empty means the wrapped error text is shown
}

var serviceErrorMappings = []errorMapping{
	{service.ErrItineraryValidation, http.StatusBadRequest, ""},
	{service.ErrTripValidation, http.StatusBadRequest, ""},
	{service.ErrBookingValidation, http.StatusBadRequest, ""},
	{service.ErrReviewValidation, http.StatusBadRequest, ""},
	{service.ErrDestinationValidation, http.StatusBadRequest, ""},
	{service.ErrCategoryValidation, http.StatusBadRequest, ""},
	{service.ErrHeroImageInvalid, http.StatusBadRequest, ""},
	{service.ErrInvalidEmail, http.StatusBadRequest, ""},
	{service.ErrInvalidFullName, http.StatusBadRequest, ""},
	{service.ErrPasswordTooWeak, http.StatusBadRequest, ""},

	{service.ErrInvalidCredentials, http.StatusUnauthorized, "invalid email or password"},
	{service.ErrInvalidGoogleToken, http.StatusUnauthorized, "invalid google token"},
	{service.ErrSessionNotFound, http.StatusUnauthorized, "session not found or expired"},

	{service.ErrForbidden, http.StatusForbidden, "you do not have access to this resource"},
	{service.ErrReviewForbidden, http.StatusForbidden, "not allowed to manage this review"},

	{service.ErrNoMatchingDestinations, http.StatusNotFound, "no destinations match your criteria"},
	{service.ErrDestinationNotFound, http.StatusNotFound, "destination not found"},
	{service.ErrTripNotFound, http.StatusNotFound, "trip not found"},
	{service.ErrTripItemNotFound, http.StatusNotFound, "destination is not in this trip"},
	{service.ErrItineraryNotFound, http.StatusNotFound, "itinerary not found"},
	{service.ErrBookingNotFound, http.StatusNotFound, "booking not found"},
	{service.ErrReviewNotFound, http.StatusNotFound, "review not found"},
	{service.ErrFavoriteNotFound, http.StatusNotFound, "destination is not in your favorites"},
	{service.ErrCategoryNotFound, http.StatusNotFound, "category not found"},

	{service.ErrTripVersionConflict, http.StatusConflict, "trip was modified by another request, reload and retry"},
	{service.ErrDestinationVersionConflict, http.StatusConflict, "destination was modified by another request, reload and retry"},
	{service.ErrTripItemExists, http.StatusConflict, "destination already in trip"},
	{service.ErrFavoriteAlreadyExists, http.StatusConflict, "destination already saved"},
	{service.ErrReviewAlreadyExist, http.StatusConflict, "you already reviewed this destination"},
	{service.ErrEmailAlreadyUsed, http.StatusConflict, "email already registered"},
	{service.ErrDestinationSlugExists, http.StatusConflict, "destination slug already exists"},
	{service.ErrCategoryExists, http.StatusConflict, "category slug already exists"},
	{service.ErrCategoryInUse, http.StatusConflict, "category is still used by destinations"},
	{service.ErrProvinceExists, http.StatusConflict, "province already exists"},
	{service.ErrBookingNotCancellable, http.StatusConflict, "booking cannot be cancelled"},

	{service.ErrStorageUnavailable, http.StatusServiceUnavailable, "image storage is not configured"},
	{service.ErrItineraryUnavailable, http.StatusInternalServerError, "unable to generate itinerary, please try again"},
}

// statusForError resolves a service error to a status code and a client-safe
// message. Unknown errors fall back to fallback with a 500.
func statusForError(err error, fallback string) (int, string) {
	for _, m := range serviceErrorMappings {
		if errors.Is(err, m.target) {
			if m.message == "" {
				return m.status, err.Error()
			}
			return m.status, m.message
		}
	}
	return http.StatusInternalServerError, fallback
}

func writeError(c echo.Context, err error, fallback string) error {
	status, message := statusForError(err, fallback)
	if status >= http.StatusInternalServerError {
		c.Logger().Errorf("%s %s: %v", c.Request().Method, c.Path(), err)
	}
	return c.JSON(status, util.Error(message))
}
