package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/njprem/TripPlanner_APP_BackEnd/internal/service"
	"github.com/njprem/TripPlanner_APP_BackEnd/internal/util"
)

type BookingHandler struct {
	bookings *service.BookingService
}

type bookingRequest struct {
	Travelers    *int    `json:"travelers"`
	ContactEmail *string `json:"contact_email"`
	Notes        *string `json:"notes"`
}

func RegisterBookings(e *echo.Echo, auth *service.AuthService, bookings *service.BookingService) {
	handler := &BookingHandler{bookings: bookings}

	protected := e.Group("/api/v1", RequireAuth(auth))
	protected.POST("/trips/:id/bookings", handler.confirm)
	protected.GET("/bookings", handler.list)
	protected.GET("/bookings/:id", handler.get)
	protected.POST("/bookings/:id/cancel", handler.cancel)
}

func (h *BookingHandler) confirm(c echo.Context) error {
	principal, ok, err := requirePrincipal(c)
	if !ok {
		return err
	}
	tripID, err := parseUUIDParam(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	var req bookingRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	booking, err := h.bookings.Confirm(c.Request().Context(), principal, tripID, service.BookingInput(req))
	if err != nil {
		return writeError(c, err, "unable to confirm booking")
	}
	return c.JSON(http.StatusCreated, util.Envelope{
		"booking": booking,
		"message": "Booking confirmed",
	})
}

func (h *BookingHandler) list(c echo.Context) error {
	principal, ok, err := requirePrincipal(c)
	if !ok {
		return err
	}
	limit, offset := parsePagination(c, 20, 0)
	result, err := h.bookings.List(c.Request().Context(), principal, limit, offset)
	if err != nil {
		return writeError(c, err, "unable to list bookings")
	}
	return c.JSON(http.StatusOK, util.Envelope{
		"bookings": result.Items,
		"meta":     pageMeta(result.Limit, result.Offset, result.Total, len(result.Items)),
	})
}

func (h *BookingHandler) get(c echo.Context) error {
	principal, ok, err := requirePrincipal(c)
	if !ok {
		return err
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	booking, err := h.bookings.Get(c.Request().Context(), principal, id)
	if err != nil {
		return writeError(c, err, "unable to load booking")
	}
	return c.JSON(http.StatusOK, util.Data("booking", booking))
}

func (h *BookingHandler) cancel(c echo.Context) error {
	principal, ok, err := requirePrincipal(c)
	if !ok {
		return err
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	booking, err := h.bookings.Cancel(c.Request().Context(), principal, id)
	if err != nil {
		return writeError(c, err, "unable to cancel booking")
	}
	return c.JSON(http.StatusOK, util.Envelope{
		"booking": booking,
		"message": "Booking cancelled",
	})
}
