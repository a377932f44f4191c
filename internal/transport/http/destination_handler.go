package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/njprem/TripPlanner_APP_BackEnd/internal/domain"
	"github.com/njprem/TripPlanner_APP_BackEnd/internal/media"
	"github.com/njprem/TripPlanner_APP_BackEnd/internal/service"
	"github.com/njprem/TripPlanner_APP_BackEnd/internal/util"
)

type DestinationHandler struct {
	destinations *service.DestinationService
}

type destinationWriteRequest struct {
	domain.DestinationInput
	ExpectedVersion int `json:"expected_version"`
}

func RegisterDestinations(e *echo.Echo, auth *service.AuthService, destService *service.DestinationService) {
	handler := &DestinationHandler{destinations: destService}

	public := e.Group("/api/v1/destinations")
	public.GET("", handler.listDestinations)
	public.GET("/:id", handler.getDestination)

	admin := e.Group("/api/v1/admin/destinations", RequireAuth(auth), RequireAdmin())
	admin.POST("", handler.createDestination)
	admin.PUT("/:id", handler.updateDestination)
	admin.DELETE("/:id", handler.deactivateDestination)
	admin.POST("/:id/hero-image", handler.uploadHeroImage)
}

func (h *DestinationHandler) listDestinations(c echo.Context) error {
	filter, err := parseDestinationListFilter(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	filter.Limit, filter.Offset = parsePagination(c, 20, 0)

	result, err := h.destinations.List(c.Request().Context(), filter)
	if err != nil {
		return writeError(c, err, "unable to list destinations")
	}
	payload := make([]util.Envelope, 0, len(result.Items))
	for i := range result.Items {
		payload = append(payload, buildDestinationResponse(&result.Items[i]))
	}
	return c.JSON(http.StatusOK, util.Envelope{
		"destinations": payload,
		"meta":         pageMeta(result.Limit, result.Offset, result.Total, len(payload)),
	})
}

// getDestination accepts either a UUID or a slug.
func (h *DestinationHandler) getDestination(c echo.Context) error {
	key := strings.TrimSpace(c.Param("id"))
	if key == "" {
		return badRequest(c, "identifier required")
	}

	var (
		dest *domain.Destination
		err  error
	)
	if id, parseErr := uuid.Parse(key); parseErr == nil {
		dest, err = h.destinations.GetByID(c.Request().Context(), id)
	} else {
		dest, err = h.destinations.GetBySlug(c.Request().Context(), key)
	}
	if err != nil {
		return writeError(c, err, "unable to load destination")
	}
	return c.JSON(http.StatusOK, util.Envelope{
		"destination": buildDestinationResponse(dest),
	})
}

func (h *DestinationHandler) createDestination(c echo.Context) error {
	principal, ok, err := requirePrincipal(c)
	if !ok {
		return err
	}
	var req destinationWriteRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	dest, err := h.destinations.Create(c.Request().Context(), principal, req.DestinationInput)
	if err != nil {
		return writeError(c, err, "unable to create destination")
	}
	return c.JSON(http.StatusCreated, util.Envelope{
		"destination": buildDestinationResponse(dest),
	})
}

func (h *DestinationHandler) updateDestination(c echo.Context) error {
	principal, ok, err := requirePrincipal(c)
	if !ok {
		return err
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	var req destinationWriteRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	dest, err := h.destinations.Update(c.Request().Context(), principal, id, req.DestinationInput, req.ExpectedVersion)
	if err != nil {
		return writeError(c, err, "unable to update destination")
	}
	return c.JSON(http.StatusOK, util.Envelope{
		"destination": buildDestinationResponse(dest),
	})
}

func (h *DestinationHandler) deactivateDestination(c echo.Context) error {
	principal, ok, err := requirePrincipal(c)
	if !ok {
		return err
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	dest, err := h.destinations.Deactivate(c.Request().Context(), principal, id)
	if err != nil {
		return writeError(c, err, "unable to deactivate destination")
	}
	return c.JSON(http.StatusOK, util.Envelope{
		"destination": buildDestinationResponse(dest),
		"message":     "Destination deactivated",
	})
}

func (h *DestinationHandler) uploadHeroImage(c echo.Context) error {
	principal, ok, err := requirePrincipal(c)
	if !ok {
		return err
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "file upload required")
	}
	src, err := fileHeader.Open()
	if err != nil {
		return badRequest(c, "unable to read upload")
	}
	defer src.Close()

	dest, err := h.destinations.UploadHeroImage(c.Request().Context(), principal, id, media.Upload{
		Reader:      src,
		Size:        fileHeader.Size,
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
	})
	if err != nil {
		return writeError(c, err, "unable to upload hero image")
	}
	return c.JSON(http.StatusOK, util.Envelope{
		"destination": buildDestinationResponse(dest),
	})
}

func buildDestinationResponse(dest *domain.Destination) util.Envelope {
	if dest == nil {
		return util.Envelope{}
	}
	resp := util.Envelope{
		"id":           dest.ID,
		"slug":         dest.Slug,
		"name":         dest.Name,
		"rating":       dest.Rating,
		"review_count": dest.ReviewCount,
		"is_active":    dest.IsActive,
		"is_featured":  dest.IsFeatured,
		"version":      dest.Version,
		"created_at":   dest.CreatedAt,
		"updated_at":   dest.UpdatedAt,
	}
	if dest.Description != nil {
		resp["description"] = *dest.Description
	}
	if dest.CategoryID != nil {
		category := util.Envelope{"id": *dest.CategoryID}
		if dest.CategorySlug != nil {
			category["slug"] = *dest.CategorySlug
		}
		if dest.CategoryName != nil {
			category["name"] = *dest.CategoryName
		}
		resp["category"] = category
	}
	if dest.ProvinceID != nil {
		province := util.Envelope{"id": *dest.ProvinceID}
		if dest.ProvinceName != nil {
			province["name"] = *dest.ProvinceName
		}
		resp["province"] = province
	}
	if price := dest.PriceRange(); price != nil {
		resp["price_range"] = price
	}
	if dest.Duration != nil {
		resp["duration"] = *dest.Duration
	}
	if dest.HeroImage != nil {
		resp["hero_image_url"] = *dest.HeroImage
	}
	return resp
}

func parseDestinationListFilter(c echo.Context) (domain.DestinationListFilter, error) {
	filter := domain.DestinationListFilter{
		Search: strings.TrimSpace(c.QueryParam("query")),
		Sort:   domain.DestinationSortRating,
	}

	categories := make([]string, 0)
	if raw := c.QueryParam("categories"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				categories = append(categories, trimmed)
			}
		}
	}
	if rawValues, ok := c.QueryParams()["category"]; ok {
		for _, part := range rawValues {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				categories = append(categories, trimmed)
			}
		}
	}
	if len(categories) > 0 {
		filter.CategorySlugs = categories
	}

	if v := strings.TrimSpace(c.QueryParam("province_id")); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return domain.DestinationListFilter{}, errors.New("province_id must be a valid UUID")
		}
		filter.ProvinceID = &id
	}

	if v := strings.TrimSpace(c.QueryParam("min_rating")); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return domain.DestinationListFilter{}, errors.New("min_rating must be a number")
		}
		if parsed < 0 || parsed > 5 {
			return domain.DestinationListFilter{}, errors.New("min_rating must be between 0 and 5")
		}
		filter.MinRating = &parsed
	}

	if v := strings.TrimSpace(c.QueryParam("featured")); v != "" {
		featured, err := strconv.ParseBool(v)
		if err != nil {
			return domain.DestinationListFilter{}, errors.New("featured must be true or false")
		}
		filter.FeaturedOnly = featured
	}

	if raw := strings.TrimSpace(c.QueryParam("sort")); raw != "" {
		switch strings.ToLower(raw) {
		case string(domain.DestinationSortRating), "rating_desc", "top":
			filter.Sort = domain.DestinationSortRating
		case string(domain.DestinationSortName), "alpha", "alphabetical":
			filter.Sort = domain.DestinationSortName
		case string(domain.DestinationSortNewest), "recent":
			filter.Sort = domain.DestinationSortNewest
		case string(domain.DestinationSortPriceLo), "price":
			filter.Sort = domain.DestinationSortPriceLo
		case string(domain.DestinationSortPriceHi):
			filter.Sort = domain.DestinationSortPriceHi
		default:
			return domain.DestinationListFilter{}, fmt.Errorf("invalid sort value %q", raw)
		}
	}

	return filter, nil
}
