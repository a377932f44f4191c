package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/njprem/TripPlanner_APP_BackEnd/internal/domain"
	"github.com/njprem/TripPlanner_APP_BackEnd/internal/service"
	"github.com/njprem/TripPlanner_APP_BackEnd/internal/util"
)

type FavoriteHandler struct {
	favorites *service.FavoriteService
}

type FavoriteItemResponse struct {
	ID            uuid.UUID                   `json:"id"`
	DestinationID uuid.UUID                   `json:"destination_id"`
	SavedAt       string                      `json:"saved_at"`
	Destination   FavoriteDestinationResponse `json:"destination"`
}

type FavoriteDestinationResponse struct {
	Name         string  `json:"name"`
	Slug         string  `json:"slug"`
	Province     *string `json:"province,omitempty"`
	Category     *string `json:"category,omitempty"`
	Rating       float64 `json:"rating"`
	HeroImageURL *string `json:"hero_image_url,omitempty"`
}

func RegisterFavorites(e *echo.Echo, auth *service.AuthService, favorites *service.FavoriteService) {
	handler := &FavoriteHandler{favorites: favorites}

	protected := e.Group("/api/v1/users/me/favorites", RequireAuth(auth))
	protected.POST("", handler.saveFavorite)
	protected.DELETE("/:destination_id", handler.removeFavorite)
	protected.GET("", handler.listFavorites)

	e.GET("/api/v1/destinations/:destination_id/favorites/count", handler.countFavorites)
}

func (h *FavoriteHandler) saveFavorite(c echo.Context) error {
	principal, ok, err := requirePrincipal(c)
	if !ok {
		return err
	}

	var req struct {
		DestinationID string `json:"destination_id"`
	}
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if strings.TrimSpace(req.DestinationID) == "" {
		return badRequest(c, "destination_id is required")
	}
	destinationID, err := uuid.Parse(strings.TrimSpace(req.DestinationID))
	if err != nil {
		return badRequest(c, "destination_id must be a valid UUID")
	}

	favorite, err := h.favorites.Save(c.Request().Context(), principal, destinationID)
	if err != nil {
		return writeError(c, err, "could not update favorites")
	}

	return c.JSON(http.StatusCreated, util.Envelope{
		"favorite": util.Envelope{
			"id":             favorite.ID,
			"destination_id": favorite.DestinationID,
			"saved_at":       favorite.CreatedAt.UTC().Format(time.RFC3339),
		},
		"message": "Destination saved to Favorites",
	})
}

func (h *FavoriteHandler) removeFavorite(c echo.Context) error {
	principal, ok, err := requirePrincipal(c)
	if !ok {
		return err
	}
	destinationID, err := parseUUIDParam(c, "destination_id")
	if err != nil {
		return badRequest(c, err.Error())
	}

	if err := h.favorites.Remove(c.Request().Context(), principal, destinationID); err != nil {
		return writeError(c, err, "could not update favorites")
	}

	return c.JSON(http.StatusOK, util.Envelope{
		"destination_id": destinationID,
		"message":        "Destination removed from Favorites",
	})
}

func (h *FavoriteHandler) listFavorites(c echo.Context) error {
	principal, ok, err := requirePrincipal(c)
	if !ok {
		return err
	}

	limit, offset := parsePagination(c, 20, 0)
	result, err := h.favorites.List(c.Request().Context(), principal, limit, offset)
	if err != nil {
		return writeError(c, err, "unable to load favorites")
	}

	items := make([]FavoriteItemResponse, 0, len(result.Items))
	for _, item := range result.Items {
		items = append(items, toFavoriteItemResponse(item))
	}

	return c.JSON(http.StatusOK, util.Envelope{
		"items":      items,
		"pagination": pageMeta(result.Limit, result.Offset, result.Total, len(items)),
	})
}

func (h *FavoriteHandler) countFavorites(c echo.Context) error {
	destinationID, err := parseUUIDParam(c, "destination_id")
	if err != nil {
		return badRequest(c, err.Error())
	}

	count, err := h.favorites.Count(c.Request().Context(), destinationID)
	if err != nil {
		return writeError(c, err, "unable to fetch favorites count")
	}

	return c.JSON(http.StatusOK, util.Envelope{
		"destination_id":   destinationID,
		"favorites_count":  count,
		"last_updated_utc": time.Now().UTC().Format(time.RFC3339),
	})
}

func toFavoriteItemResponse(item domain.FavoriteListItem) FavoriteItemResponse {
	return FavoriteItemResponse{
		ID:            item.ID,
		DestinationID: item.DestinationID,
		SavedAt:       item.CreatedAt.UTC().Format(time.RFC3339),
		Destination: FavoriteDestinationResponse{
			Name:         item.DestinationName,
			Slug:         item.DestinationSlug,
			Province:     item.ProvinceName,
			Category:     item.CategorySlug,
			Rating:       item.Rating,
			HeroImageURL: item.HeroImage,
		},
	}
}
