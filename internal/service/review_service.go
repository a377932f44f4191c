package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/njprem/TripPlanner_APP_BackEnd/internal/domain"
	"github.com/njprem/TripPlanner_APP_BackEnd/internal/repository/ports"
)

var (
	ErrReviewValidation   = errors.New("review validation failed")
	ErrReviewAlreadyExist = errors.New("review already exists for this destination")
	ErrReviewNotFound     = errors.New("review not found")
	ErrReviewForbidden    = errors.New("not allowed to manage this review")
)

const (
	maxReviewTitleLength   = 150
	maxReviewCommentLength = 4000
)

type ReviewServiceConfig struct {
	AutoApprove bool
}

type ReviewInput struct {
	Rating  int
	Title   *string
	Comment *string
}

// ReviewMutation is a changed review together with the destination's fresh aggregate.
type ReviewMutation struct {
	Review    *domain.Review          `json:"review,omitempty"`
	Aggregate *domain.RatingAggregate `json:"aggregate"`
}

type PendingReviewResult struct {
	Items  []domain.Review
	Total  int64
	Limit  int
	Offset int
}

type ReviewService struct {
	reviews      ports.ReviewRepository
	destinations ports.DestinationRepository
	autoApprove  bool
}

func NewReviewService(reviews ports.ReviewRepository, destinations ports.DestinationRepository, cfg ReviewServiceConfig) *ReviewService {
	return &ReviewService{
		reviews:      reviews,
		destinations: destinations,
		autoApprove:  cfg.AutoApprove,
	}
}

func (s *ReviewService) Create(ctx context.Context, principal domain.Principal, destinationID uuid.UUID, input ReviewInput) (*ReviewMutation, error) {
	title, comment, err := validateReviewInput(input)
	if err != nil {
		return nil, err
	}
	if err := s.ensureDestinationExists(ctx, destinationID); err != nil {
		return nil, err
	}

	stored, err := s.reviews.Create(ctx, &domain.Review{
		DestinationID: destinationID,
		UserID:        principal.UserID,
		Rating:        input.Rating,
		Title:         title,
		Comment:       comment,
		IsApproved:    s.autoApprove,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrReviewAlreadyExist
		}
		return nil, err
	}
	return s.mutationResult(ctx, stored.ID, destinationID)
}

// Update edits the caller's own review. Edits go back to moderation unless
// reviews are auto-approved.
func (s *ReviewService) Update(ctx context.Context, principal domain.Principal, reviewID uuid.UUID, input ReviewInput) (*ReviewMutation, error) {
	title, comment, err := validateReviewInput(input)
	if err != nil {
		return nil, err
	}
	review, err := s.load(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if review.UserID != principal.UserID {
		return nil, ErrReviewForbidden
	}

	review.Rating = input.Rating
	review.Title = title
	review.Comment = comment
	review.IsApproved = s.autoApprove

	if _, err := s.reviews.Update(ctx, review); err != nil {
		if isNotFound(err) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return s.mutationResult(ctx, review.ID, review.DestinationID)
}

func (s *ReviewService) Delete(ctx context.Context, principal domain.Principal, reviewID uuid.UUID) (*domain.RatingAggregate, error) {
	review, err := s.load(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if review.UserID != principal.UserID && !principal.IsAdmin {
		return nil, ErrReviewForbidden
	}
	if err := s.reviews.Delete(ctx, reviewID); err != nil {
		if isNotFound(err) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return s.RecomputeRating(ctx, review.DestinationID)
}

func (s *ReviewService) SetApproval(ctx context.Context, principal domain.Principal, reviewID uuid.UUID, approved bool) (*ReviewMutation, error) {
	if !principal.IsAdmin {
		return nil, ErrForbidden
	}
	review, err := s.reviews.SetApproval(ctx, reviewID, approved)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return s.mutationResult(ctx, review.ID, review.DestinationID)
}

func (s *ReviewService) ListForDestination(ctx context.Context, destinationID uuid.UUID, limit, offset int) (*domain.ReviewListResult, error) {
	dest, err := s.destinations.FindActiveByID(ctx, destinationID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrDestinationNotFound
		}
		return nil, err
	}

	limit, offset = normalizePagination(limit, offset)
	reviews, err := s.reviews.ListApprovedByDestination(ctx, destinationID, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := s.reviews.CountApprovedByDestination(ctx, destinationID)
	if err != nil {
		return nil, err
	}

	return &domain.ReviewListResult{
		DestinationID: destinationID,
		Reviews:       reviews,
		Aggregate: domain.RatingAggregate{
			DestinationID: dest.ID,
			Rating:        dest.Rating,
			ReviewCount:   dest.ReviewCount,
		},
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}, nil
}

func (s *ReviewService) ListPending(ctx context.Context, principal domain.Principal, limit, offset int) (*PendingReviewResult, error) {
	if !principal.IsAdmin {
		return nil, ErrForbidden
	}
	limit, offset = normalizePagination(limit, offset)
	reviews, err := s.reviews.ListPending(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := s.reviews.CountPending(ctx)
	if err != nil {
		return nil, err
	}
	return &PendingReviewResult{Items: reviews, Total: total, Limit: limit, Offset: offset}, nil
}

// RecomputeRating stores the rounded mean and count of approved reviews on the destination.
func (s *ReviewService) RecomputeRating(ctx context.Context, destinationID uuid.UUID) (*domain.RatingAggregate, error) {
	aggregate, err := s.reviews.RecordApprovedAggregate(ctx, destinationID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrDestinationNotFound
		}
		log.Printf("review: recompute rating for %s: %v", destinationID, err)
		return nil, err
	}
	return aggregate, nil
}

func (s *ReviewService) mutationResult(ctx context.Context, reviewID, destinationID uuid.UUID) (*ReviewMutation, error) {
	aggregate, err := s.RecomputeRating(ctx, destinationID)
	if err != nil {
		return nil, err
	}
	review, err := s.load(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	return &ReviewMutation{Review: review, Aggregate: aggregate}, nil
}

func (s *ReviewService) load(ctx context.Context, reviewID uuid.UUID) (*domain.Review, error) {
	review, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) ensureDestinationExists(ctx context.Context, destinationID uuid.UUID) error {
	if destinationID == uuid.Nil {
		return ErrDestinationNotFound
	}
	if _, err := s.destinations.FindActiveByID(ctx, destinationID); err != nil {
		if isNotFound(err) {
			return ErrDestinationNotFound
		}
		return err
	}
	return nil
}

func validateReviewInput(input ReviewInput) (*string, *string, error) {
	if input.Rating < domain.MinReviewRating || input.Rating > domain.MaxReviewRating {
		return nil, nil, fmt.Errorf("%w: rating must be between %d and %d", ErrReviewValidation, domain.MinReviewRating, domain.MaxReviewRating)
	}
	title := normalizeString(input.Title)
	comment := normalizeString(input.Comment)
	if comment != nil && title == nil {
		return nil, nil, fmt.Errorf("%w: comment requires title", ErrReviewValidation)
	}
	if title != nil && len([]rune(*title)) > maxReviewTitleLength {
		return nil, nil, fmt.Errorf("%w: title must be at most %d characters", ErrReviewValidation, maxReviewTitleLength)
	}
	if comment != nil && len([]rune(*comment)) > maxReviewCommentLength {
		return nil, nil, fmt.Errorf("%w: comment must be at most %d characters", ErrReviewValidation, maxReviewCommentLength)
	}
	return title, comment, nil
}
