package http

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/njprem/TripPlanner_APP_BackEnd/internal/domain"
	"github.com/njprem/TripPlanner_APP_BackEnd/internal/service"
	"github.com/njprem/TripPlanner_APP_BackEnd/internal/util"
)

type ReviewHandler struct {
	reviews *service.ReviewService
}

type ReviewResponse struct {
	ID            uuid.UUID `json:"id"`
	DestinationID uuid.UUID `json:"destination_id"`
	Rating        int       `json:"rating"`
	Title         *string   `json:"title,omitempty"`
	Comment       *string   `json:"comment,omitempty"`
	IsApproved    bool      `json:"is_approved"`
	ReviewerName  string    `json:"reviewer_name"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ReviewAggregateResponse is the destination rating after a mutation.
type ReviewAggregateResponse struct {
	DestinationID uuid.UUID `json:"destination_id"`
	Rating        float64   `json:"rating"`
	ReviewCount   int       `json:"review_count"`
}

type ReviewMutationResponse struct {
	Review    *ReviewResponse         `json:"review,omitempty"`
	Aggregate ReviewAggregateResponse `json:"aggregate"`
}

type ReviewListResponse struct {
	DestinationID uuid.UUID               `json:"destination_id"`
	Aggregate     ReviewAggregateResponse `json:"aggregate"`
	Reviews       []ReviewResponse        `json:"reviews"`
	Total         int64                   `json:"total"`
	Limit         int                     `json:"limit"`
	Offset        int                     `json:"offset"`
}

type reviewRequest struct {
	Rating  int     `json:"rating"`
	Title   *string `json:"title"`
	Comment *string `json:"comment"`
}

type reviewApprovalRequest struct {
	Approved bool `json:"approved"`
}

func RegisterReviews(e *echo.Echo, auth *service.AuthService, reviews *service.ReviewService) {
	handler := &ReviewHandler{reviews: reviews}

	e.GET("/api/v1/destinations/:destination_id/reviews", handler.listReviews)

	protected := e.Group("/api/v1", RequireAuth(auth))
	protected.POST("/destinations/:destination_id/reviews", handler.createReview)
	protected.PUT("/reviews/:id", handler.updateReview)
	protected.DELETE("/reviews/:id", handler.deleteReview)

	admin := e.Group("/api/v1/admin/reviews", RequireAuth(auth), RequireAdmin())
	admin.GET("/pending", handler.listPending)
	admin.PUT("/:id/approval", handler.setApproval)
	admin.POST("/recompute/:destination_id", handler.recompute)
}

// createReview handles POST /api/v1/destinations/{destination_id}/reviews
func (h *ReviewHandler) createReview(c echo.Context) error {
	principal, ok, err := requirePrincipal(c)
	if !ok {
		return err
	}
	destID, err := parseUUIDParam(c, "destination_id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	var req reviewRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	mutation, err := h.reviews.Create(c.Request().Context(), principal, destID, service.ReviewInput(req))
	if err != nil {
		return writeError(c, err, "unable to create review")
	}
	return c.JSON(http.StatusCreated, toMutationResponse(mutation))
}

// updateReview handles PUT /api/v1/reviews/{id}
func (h *ReviewHandler) updateReview(c echo.Context) error {
	principal, ok, err := requirePrincipal(c)
	if !ok {
		return err
	}
	reviewID, err := parseUUIDParam(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	var req reviewRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	mutation, err := h.reviews.Update(c.Request().Context(), principal, reviewID, service.ReviewInput(req))
	if err != nil {
		return writeError(c, err, "unable to update review")
	}
	return c.JSON(http.StatusOK, toMutationResponse(mutation))
}

// deleteReview handles DELETE /api/v1/reviews/{id}
func (h *ReviewHandler) deleteReview(c echo.Context) error {
	principal, ok, err := requirePrincipal(c)
	if !ok {
		return err
	}
	reviewID, err := parseUUIDParam(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	aggregate, err := h.reviews.Delete(c.Request().Context(), principal, reviewID)
	if err != nil {
		return writeError(c, err, "unable to delete review")
	}
	return c.JSON(http.StatusOK, ReviewMutationResponse{Aggregate: toAggregateResponse(aggregate)})
}

// listReviews handles GET /api/v1/destinations/{destination_id}/reviews
func (h *ReviewHandler) listReviews(c echo.Context) error {
	destID, err := parseUUIDParam(c, "destination_id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	limit, offset := parsePagination(c, 20, 0)
	result, err := h.reviews.ListForDestination(c.Request().Context(), destID, limit, offset)
	if err != nil {
		return writeError(c, err, "unable to list reviews")
	}
	return c.JSON(http.StatusOK, ReviewListResponse{
		DestinationID: result.DestinationID,
		Aggregate:     toAggregateResponse(&result.Aggregate),
		Reviews:       toReviewResponses(result.Reviews),
		Total:         result.Total,
		Limit:         result.Limit,
		Offset:        result.Offset,
	})
}

func (h *ReviewHandler) listPending(c echo.Context) error {
	principal, ok, err := requirePrincipal(c)
	if !ok {
		return err
	}
	limit, offset := parsePagination(c, 20, 0)
	result, err := h.reviews.ListPending(c.Request().Context(), principal, limit, offset)
	if err != nil {
		return writeError(c, err, "unable to list pending reviews")
	}
	reviews := toReviewResponses(result.Items)
	return c.JSON(http.StatusOK, util.Envelope{
		"reviews": reviews,
		"meta":    pageMeta(result.Limit, result.Offset, result.Total, len(reviews)),
	})
}

func (h *ReviewHandler) setApproval(c echo.Context) error {
	principal, ok, err := requirePrincipal(c)
	if !ok {
		return err
	}
	reviewID, err := parseUUIDParam(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	var req reviewApprovalRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	mutation, err := h.reviews.SetApproval(c.Request().Context(), principal, reviewID, req.Approved)
	if err != nil {
		return writeError(c, err, "unable to update review approval")
	}
	return c.JSON(http.StatusOK, toMutationResponse(mutation))
}

// recompute rebuilds a destination's rating from its approved reviews.
func (h *ReviewHandler) recompute(c echo.Context) error {
	destID, err := parseUUIDParam(c, "destination_id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	aggregate, err := h.reviews.RecomputeRating(c.Request().Context(), destID)
	if err != nil {
		return writeError(c, err, "unable to recompute rating")
	}
	return c.JSON(http.StatusOK, util.Data("aggregate", toAggregateResponse(aggregate)))
}

func toReviewResponse(review domain.Review) ReviewResponse {
	name := "Traveler"
	if review.ReviewerName != nil && *review.ReviewerName != "" {
		name = *review.ReviewerName
	}
	return ReviewResponse{
		ID:            review.ID,
		DestinationID: review.DestinationID,
		Rating:        review.Rating,
		Title:         review.Title,
		Comment:       review.Comment,
		IsApproved:    review.IsApproved,
		ReviewerName:  name,
		CreatedAt:     review.CreatedAt,
		UpdatedAt:     review.UpdatedAt,
	}
}

func toReviewResponses(reviews []domain.Review) []ReviewResponse {
	out := make([]ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		out = append(out, toReviewResponse(review))
	}
	return out
}

func toAggregateResponse(aggregate *domain.RatingAggregate) ReviewAggregateResponse {
	if aggregate == nil {
		return ReviewAggregateResponse{}
	}
	return ReviewAggregateResponse{
		DestinationID: aggregate.DestinationID,
		Rating:        aggregate.Rating,
		ReviewCount:   aggregate.ReviewCount,
	}
}

func toMutationResponse(mutation *service.ReviewMutation) ReviewMutationResponse {
	resp := ReviewMutationResponse{Aggregate: toAggregateResponse(mutation.Aggregate)}
	if mutation.Review != nil {
		review := toReviewResponse(*mutation.Review)
		resp.Review = &review
	}
	return resp
}
