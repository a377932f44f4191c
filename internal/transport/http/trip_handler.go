package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/njprem/TripPlanner_APP_BackEnd/internal/domain"
	"github.com/njprem/TripPlanner_APP_BackEnd/internal/service"
	"github.com/njprem/TripPlanner_APP_BackEnd/internal/util"
)

type TripHandler struct {
	trips *service.TripService
}

type tripCreateRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Travelers   *int    `json:"travelers"`
	StartDate   *string `json:"start_date"`
}

type tripUpdateRequest struct {
	Name            *string `json:"name"`
	Description     *string `json:"description"`
	Status          *string `json:"status"`
	Travelers       *int    `json:"travelers"`
	StartDate       *string `json:"start_date"`
	ExpectedVersion int     `json:"expected_version"`
}

type tripItemAddRequest struct {
	DestinationID string  `json:"destination_id"`
	Notes         *string `json:"notes"`
}

type tripItemUpdateRequest struct {
	Notes       *string `json:"notes"`
	PlannedDate *string `json:"planned_date"`
}

type tripReorderRequest struct {
	DestinationIDs []uuid.UUID `json:"destination_ids"`
}

type costEstimateRequest struct {
	DestinationIDs []uuid.UUID `json:"destination_ids"`
	Travelers      *int        `json:"travelers"`
}

func RegisterTrips(e *echo.Echo, auth *service.AuthService, trips *service.TripService) {
	handler := &TripHandler{trips: trips}

	e.POST("/api/v1/trips/estimate", handler.estimateDestinations)

	protected := e.Group("/api/v1/trips", RequireAuth(auth))
	protected.POST("", handler.createTrip)
	protected.GET("", handler.listTrips)
	protected.GET("/:id", handler.getTrip)
	protected.PUT("/:id", handler.updateTrip)
	protected.DELETE("/:id", handler.deleteTrip)
	protected.GET("/:id/cost", handler.estimateTrip)
	protected.POST("/:id/items", handler.addItem)
	protected.PUT("/:id/items/order", handler.reorderItems)
	protected.PATCH("/:id/items/:destination_id", handler.updateItem)
	protected.DELETE("/:id/items/:destination_id", handler.removeItem)
}

func (h *TripHandler) createTrip(c echo.Context) error {
	principal, ok, err := requirePrincipal(c)
	if !ok {
		return err
	}
	var req tripCreateRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	startDate, err := parseOptionalDate(req.StartDate, "start_date")
	if err != nil {
		return badRequest(c, err.Error())
	}
	trip, err := h.trips.Create(c.Request().Context(), principal, service.TripCreateInput{
		Name:        req.Name,
		Description: req.Description,
		Travelers:   req.Travelers,
		StartDate:   startDate,
	})
	if err != nil {
		return writeError(c, err, "unable to create trip")
	}
	return c.JSON(http.StatusCreated, util.Data("trip", buildTripResponse(trip)))
}

func (h *TripHandler) listTrips(c echo.Context) error {
	principal, ok, err := requirePrincipal(c)
	if !ok {
		return err
	}
	limit, offset := parsePagination(c, 20, 0)
	result, err := h.trips.List(c.Request().Context(), principal, limit, offset)
	if err != nil {
		return writeError(c, err, "unable to list trips")
	}
	payload := make([]util.Envelope, 0, len(result.Items))
	for i := range result.Items {
		payload = append(payload, buildTripResponse(&result.Items[i]))
	}
	return c.JSON(http.StatusOK, util.Envelope{
		"trips": payload,
		"meta":  pageMeta(result.Limit, result.Offset, result.Total, len(payload)),
	})
}

func (h *TripHandler) getTrip(c echo.Context) error {
	principal, ok, err := requirePrincipal(c)
	if !ok {
		return err
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	trip, err := h.trips.Get(c.Request().Context(), principal, id)
	if err != nil {
		return writeError(c, err, "unable to load trip")
	}
	return c.JSON(http.StatusOK, util.Data("trip", buildTripResponse(trip)))
}

func (h *TripHandler) updateTrip(c echo.Context) error {
	principal, ok, err := requirePrincipal(c)
	if !ok {
		return err
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	var req tripUpdateRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	startDate, err := parseOptionalDate(req.StartDate, "start_date")
	if err != nil {
		return badRequest(c, err.Error())
	}
	input := service.TripUpdateInput{
		Name:            req.Name,
		Description:     req.Description,
		Travelers:       req.Travelers,
		StartDate:       startDate,
		ExpectedVersion: req.ExpectedVersion,
	}
	if req.Status != nil {
		status := domain.TripStatus(strings.ToLower(strings.TrimSpace(*req.Status)))
		input.Status = &status
	}
	trip, err := h.trips.Update(c.Request().Context(), principal, id, input)
	if err != nil {
		return writeError(c, err, "unable to update trip")
	}
	return c.JSON(http.StatusOK, util.Data("trip", buildTripResponse(trip)))
}

func (h *TripHandler) deleteTrip(c echo.Context) error {
	principal, ok, err := requirePrincipal(c)
	if !ok {
		return err
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	if err := h.trips.Delete(c.Request().Context(), principal, id); err != nil {
		return writeError(c, err, "unable to delete trip")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *TripHandler) addItem(c echo.Context) error {
	principal, ok, err := requirePrincipal(c)
	if !ok {
		return err
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	var req tripItemAddRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	destinationID, err := uuid.Parse(strings.TrimSpace(req.DestinationID))
	if err != nil {
		return badRequest(c, "destination_id must be a valid UUID")
	}
	trip, err := h.trips.AddDestination(c.Request().Context(), principal, id, destinationID, req.Notes)
	if err != nil {
		return writeError(c, err, "unable to update trip")
	}
	return c.JSON(http.StatusCreated, util.Data("trip", buildTripResponse(trip)))
}

func (h *TripHandler) removeItem(c echo.Context) error {
	principal, ok, err := requirePrincipal(c)
	if !ok {
		return err
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	destinationID, err := parseUUIDParam(c, "destination_id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	trip, err := h.trips.RemoveDestination(c.Request().Context(), principal, id, destinationID)
	if err != nil {
		return writeError(c, err, "unable to update trip")
	}
	return c.JSON(http.StatusOK, util.Data("trip", buildTripResponse(trip)))
}

func (h *TripHandler) updateItem(c echo.Context) error {
	principal, ok, err := requirePrincipal(c)
	if !ok {
		return err
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	destinationID, err := parseUUIDParam(c, "destination_id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	var req tripItemUpdateRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	plannedDate, err := parseOptionalDate(req.PlannedDate, "planned_date")
	if err != nil {
		return badRequest(c, err.Error())
	}
	trip, err := h.trips.UpdateDestination(c.Request().Context(), principal, id, destinationID, req.Notes, plannedDate)
	if err != nil {
		return writeError(c, err, "unable to update trip")
	}
	return c.JSON(http.StatusOK, util.Data("trip", buildTripResponse(trip)))
}

func (h *TripHandler) reorderItems(c echo.Context) error {
	principal, ok, err := requirePrincipal(c)
	if !ok {
		return err
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	var req tripReorderRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	trip, err := h.trips.ReorderDestinations(c.Request().Context(), principal, id, req.DestinationIDs)
	if err != nil {
		return writeError(c, err, "unable to reorder trip")
	}
	return c.JSON(http.StatusOK, util.Data("trip", buildTripResponse(trip)))
}

func (h *TripHandler) estimateTrip(c echo.Context) error {
	principal, ok, err := requirePrincipal(c)
	if !ok {
		return err
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	var travelers *int
	if raw := strings.TrimSpace(c.QueryParam("travelers")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return badRequest(c, "travelers must be an integer")
		}
		travelers = &parsed
	}
	estimate, err := h.trips.EstimateCost(c.Request().Context(), principal, id, travelers)
	if err != nil {
		return writeError(c, err, "unable to estimate trip cost")
	}
	return c.JSON(http.StatusOK, util.Data("estimate", estimate))
}

// estimateDestinations prices a destination list without a saved trip.
func (h *TripHandler) estimateDestinations(c echo.Context) error {
	var req costEstimateRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	travelers := 1
	if req.Travelers != nil {
		travelers = *req.Travelers
	}
	estimate, err := h.trips.EstimateDestinations(c.Request().Context(), req.DestinationIDs, travelers)
	if err != nil {
		return writeError(c, err, "unable to estimate cost")
	}
	return c.JSON(http.StatusOK, util.Data("estimate", estimate))
}

func buildTripResponse(trip *domain.Trip) util.Envelope {
	if trip == nil {
		return util.Envelope{}
	}
	items := make([]util.Envelope, 0, len(trip.Items))
	for _, item := range trip.Items {
		entry := util.Envelope{
			"id":               item.ID,
			"destination_id":   item.DestinationID,
			"destination_name": item.DestinationName,
			"destination_slug": item.DestinationSlug,
			"order_index":      item.OrderIndex,
		}
		if item.Notes != nil {
			entry["notes"] = *item.Notes
		}
		if item.PlannedDate != nil {
			entry["planned_date"] = item.PlannedDate.Format(dateLayout)
		}
		if item.Duration != nil {
			entry["duration"] = *item.Duration
		}
		dest := item.Destination()
		if price := dest.PriceRange(); price != nil {
			entry["price_range"] = price
		}
		items = append(items, entry)
	}

	resp := util.Envelope{
		"id":         trip.ID,
		"name":       trip.Name,
		"status":     trip.Status,
		"travelers":  trip.Travelers,
		"version":    trip.Version,
		"items":      items,
		"created_at": trip.CreatedAt,
		"updated_at": trip.UpdatedAt,
	}
	if trip.Description != nil {
		resp["description"] = *trip.Description
	}
	if trip.StartDate != nil {
		resp["start_date"] = trip.StartDate.Format(dateLayout)
	}
	return resp
}
