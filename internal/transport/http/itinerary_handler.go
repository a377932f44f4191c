package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/njprem/TripPlanner_APP_BackEnd/internal/domain"
	"github.com/njprem/TripPlanner_APP_BackEnd/internal/service"
	"github.com/njprem/TripPlanner_APP_BackEnd/internal/util"
)

type ItineraryHandler struct {
	itineraries *service.ItineraryService
}

type convertItineraryRequest struct {
	Name *string `json:"name"`
}

// RegisterItineraries mounts the generator behind limiter; a nil limiter
// leaves generation unthrottled.
func RegisterItineraries(e *echo.Echo, auth *service.AuthService, itineraries *service.ItineraryService, limiter *RateLimiter) {
	handler := &ItineraryHandler{itineraries: itineraries}

	var generateMiddleware []echo.MiddlewareFunc
	if limiter != nil {
		generateMiddleware = append(generateMiddleware, limiter.Middleware())
	}
	e.POST("/api/v1/itineraries/generate", handler.generate, generateMiddleware...)

	protected := e.Group("/api/v1/itineraries", RequireAuth(auth))
	protected.POST("", handler.save, generateMiddleware...)
	protected.GET("", handler.list)
	protected.GET("/:id", handler.get)
	protected.DELETE("/:id", handler.delete)
	protected.POST("/:id/trip", handler.convertToTrip)
}

func (h *ItineraryHandler) generate(c echo.Context) error {
	var req domain.ItineraryRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	itinerary, err := h.itineraries.Generate(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err, "unable to generate itinerary, please try again")
	}
	return c.JSON(http.StatusOK, util.Data("itinerary", itinerary))
}

func (h *ItineraryHandler) save(c echo.Context) error {
	principal, ok, err := requirePrincipal(c)
	if !ok {
		return err
	}
	var req domain.ItineraryRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	saved, err := h.itineraries.GenerateAndSave(c.Request().Context(), principal, req)
	if err != nil {
		return writeError(c, err, "unable to generate itinerary, please try again")
	}
	return c.JSON(http.StatusCreated, util.Data("itinerary", saved))
}

func (h *ItineraryHandler) list(c echo.Context) error {
	principal, ok, err := requirePrincipal(c)
	if !ok {
		return err
	}
	limit, offset := parsePagination(c, 20, 0)
	result, err := h.itineraries.List(c.Request().Context(), principal, limit, offset)
	if err != nil {
		return writeError(c, err, "unable to list itineraries")
	}
	return c.JSON(http.StatusOK, util.Envelope{
		"itineraries": result.Items,
		"meta":        pageMeta(result.Limit, result.Offset, result.Total, len(result.Items)),
	})
}

func (h *ItineraryHandler) get(c echo.Context) error {
	principal, ok, err := requirePrincipal(c)
	if !ok {
		return err
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	itinerary, err := h.itineraries.Get(c.Request().Context(), principal, id)
	if err != nil {
		return writeError(c, err, "unable to load itinerary")
	}
	return c.JSON(http.StatusOK, util.Data("itinerary", itinerary))
}

func (h *ItineraryHandler) delete(c echo.Context) error {
	principal, ok, err := requirePrincipal(c)
	if !ok {
		return err
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	if err := h.itineraries.Delete(c.Request().Context(), principal, id); err != nil {
		return writeError(c, err, "unable to delete itinerary")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ItineraryHandler) convertToTrip(c echo.Context) error {
	principal, ok, err := requirePrincipal(c)
	if !ok {
		return err
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	var req convertItineraryRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	trip, err := h.itineraries.ConvertToTrip(c.Request().Context(), principal, id, req.Name)
	if err != nil {
		return writeError(c, err, "unable to create trip from itinerary")
	}
	return c.JSON(http.StatusCreated, util.Data("trip", buildTripResponse(trip)))
}
