package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/njprem/TripPlanner_APP_BackEnd/internal/service"
	"github.com/njprem/TripPlanner_APP_BackEnd/internal/util"
)

type CategoryHandler struct {
	categories  *service.CategoryService
	itineraries *service.ItineraryService
}

type categoryRequest struct {
	Name        *string `json:"name"`
	Slug        *string `json:"slug"`
	Icon        *string `json:"icon"`
	Description *string `json:"description"`
}

type provinceRequest struct {
	Name   string  `json:"name"`
	Region *string `json:"region"`
}

func RegisterCategories(e *echo.Echo, auth *service.AuthService, categories *service.CategoryService, itineraries *service.ItineraryService) {
	handler := &CategoryHandler{categories: categories, itineraries: itineraries}

	e.GET("/api/v1/categories", handler.listCategories)
	e.GET("/api/v1/provinces", handler.listProvinces)
	e.GET("/api/v1/preference-tags", handler.listPreferenceTags)

	admin := e.Group("/api/v1/admin", RequireAuth(auth), RequireAdmin())
	admin.POST("/categories", handler.createCategory)
	admin.PUT("/categories/:id", handler.updateCategory)
	admin.DELETE("/categories/:id", handler.deleteCategory)
	admin.POST("/provinces", handler.createProvince)
}

func (h *CategoryHandler) listCategories(c echo.Context) error {
	categories, err := h.categories.ListCategories(c.Request().Context())
	if err != nil {
		return writeError(c, err, "unable to list categories")
	}
	return c.JSON(http.StatusOK, util.Data("categories", categories))
}

func (h *CategoryHandler) listProvinces(c echo.Context) error {
	provinces, err := h.categories.ListProvinces(c.Request().Context())
	if err != nil {
		return writeError(c, err, "unable to list provinces")
	}
	return c.JSON(http.StatusOK, util.Data("provinces", provinces))
}

func (h *CategoryHandler) listPreferenceTags(c echo.Context) error {
	return c.JSON(http.StatusOK, util.Data("tags", h.itineraries.PreferenceTags()))
}

func (h *CategoryHandler) createCategory(c echo.Context) error {
	principal, ok, err := requirePrincipal(c)
	if !ok {
		return err
	}
	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	category, err := h.categories.CreateCategory(c.Request().Context(), principal, service.CategoryInput(req))
	if err != nil {
		return writeError(c, err, "unable to create category")
	}
	return c.JSON(http.StatusCreated, util.Data("category", category))
}

func (h *CategoryHandler) updateCategory(c echo.Context) error {
	principal, ok, err := requirePrincipal(c)
	if !ok {
		return err
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	category, err := h.categories.UpdateCategory(c.Request().Context(), principal, id, service.CategoryInput(req))
	if err != nil {
		return writeError(c, err, "unable to update category")
	}
	return c.JSON(http.StatusOK, util.Data("category", category))
}

func (h *CategoryHandler) deleteCategory(c echo.Context) error {
	principal, ok, err := requirePrincipal(c)
	if !ok {
		return err
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	if err := h.categories.DeleteCategory(c.Request().Context(), principal, id); err != nil {
		return writeError(c, err, "unable to delete category")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CategoryHandler) createProvince(c echo.Context) error {
	principal, ok, err := requirePrincipal(c)
	if !ok {
		return err
	}
	var req provinceRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	province, err := h.categories.CreateProvince(c.Request().Context(), principal, service.ProvinceInput(req))
	if err != nil {
		return writeError(c, err, "unable to create province")
	}
	return c.JSON(http.StatusCreated, util.Data("province", province))
}
