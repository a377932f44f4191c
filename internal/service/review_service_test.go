package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/njprem/TripPlanner_APP_BackEnd/internal/domain"
)

func newReviewFixture(autoApprove bool) (*ReviewService, *memoryReviewRepo, *memoryDestinationRepo, domain.Destination) {
	dest := catalogDestination("Trang An", nil, 0, 100_000, 200_000)
	destRepo := newMemoryDestinationRepo(dest)
	reviewRepo := newMemoryReviewRepo(destRepo)
	svc := NewReviewService(reviewRepo, destRepo, ReviewServiceConfig{AutoApprove: autoApprove})
	return svc, reviewRepo, destRepo, dest
}

func TestReviewServiceRecomputesOnEveryMutation(t *testing.T) {
	ctx := context.Background()
	svc, repo, destRepo, dest := newReviewFixture(true)

	ratings := []int{5, 4, 4}
	var last *ReviewMutation
	var firstReviewID uuid.UUID
	for i, rating := range ratings {
		mutation, err := svc.Create(ctx, domain.Principal{UserID: uuid.New()}, dest.ID, ReviewInput{Rating: rating})
		if err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
		if i == 0 {
			firstReviewID = mutation.Review.ID
		}
		last = mutation
	}
	// mean 13/3 = 4.333 -> 4.3
	if last.Aggregate.Rating != 4.3 || last.Aggregate.ReviewCount != 3 {
		t.Fatalf("unexpected aggregate %+v", last.Aggregate)
	}
	if destRepo.items[dest.ID].Rating != 4.3 {
		t.Fatalf("destination rating not stored, got %v", destRepo.items[dest.ID].Rating)
	}

	admin := domain.Principal{UserID: uuid.New(), IsAdmin: true}
	mutation, err := svc.SetApproval(ctx, admin, firstReviewID, false)
	if err != nil {
		t.Fatalf("SetApproval returned error: %v", err)
	}
	if mutation.Aggregate.Rating != 4 || mutation.Aggregate.ReviewCount != 2 {
		t.Fatalf("unexpected aggregate after unapprove %+v", mutation.Aggregate)
	}

	for id := range repo.reviews {
		if _, err := svc.Delete(ctx, admin, id); err != nil {
			t.Fatalf("Delete returned error: %v", err)
		}
	}
	if destRepo.items[dest.ID].Rating != 0 || destRepo.items[dest.ID].ReviewCount != 0 {
		t.Fatalf("expected aggregate reset to zero, got %+v", destRepo.items[dest.ID])
	}
	if len(repo.recomputed) != len(ratings)+1+len(ratings) {
		t.Fatalf("expected a recompute per mutation, got %d", len(repo.recomputed))
	}
}

func TestReviewServiceRoundsHalfUp(t *testing.T) {
	ctx := context.Background()
	svc, _, _, dest := newReviewFixture(true)

	// ratings 5,4,4,4 -> 4.25 -> 4.3
	for _, rating := range []int{5, 4, 4, 4} {
		if _, err := svc.Create(ctx, domain.Principal{UserID: uuid.New()}, dest.ID, ReviewInput{Rating: rating}); err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
	}
	agg, err := svc.RecomputeRating(ctx, dest.ID)
	if err != nil {
		t.Fatalf("RecomputeRating returned error: %v", err)
	}
	if agg.Rating != 4.3 || agg.ReviewCount != 4 {
		t.Fatalf("unexpected aggregate %+v", agg)
	}
}

func TestReviewServicePendingReviewsDoNotCount(t *testing.T) {
	ctx := context.Background()
	svc, _, _, dest := newReviewFixture(false)
	user := domain.Principal{UserID: uuid.New()}

	mutation, err := svc.Create(ctx, user, dest.ID, ReviewInput{Rating: 2})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if mutation.Review.IsApproved || mutation.Aggregate.ReviewCount != 0 {
		t.Fatalf("pending review must not affect aggregate: %+v", mutation.Aggregate)
	}

	if _, err := svc.ListPending(ctx, user, 10, 0); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-admin, got %v", err)
	}
	pending, err := svc.ListPending(ctx, domain.Principal{IsAdmin: true}, 10, 0)
	if err != nil || pending.Total != 1 {
		t.Fatalf("expected one pending review, got %+v (%v)", pending, err)
	}

	if _, err := svc.SetApproval(ctx, user, mutation.Review.ID, true); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-admin approval, got %v", err)
	}
	approved, err := svc.SetApproval(ctx, domain.Principal{IsAdmin: true}, mutation.Review.ID, true)
	if err != nil {
		t.Fatalf("SetApproval returned error: %v", err)
	}
	if approved.Aggregate.Rating != 2 || approved.Aggregate.ReviewCount != 1 {
		t.Fatalf("unexpected aggregate %+v", approved.Aggregate)
	}

	edited, err := svc.Update(ctx, user, mutation.Review.ID, ReviewInput{Rating: 5})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if edited.Review.IsApproved || edited.Aggregate.ReviewCount != 0 {
		t.Fatalf("edit must return the review to moderation: %+v", edited)
	}

	list, err := svc.ListForDestination(ctx, dest.ID, 0, 0)
	if err != nil {
		t.Fatalf("ListForDestination returned error: %v", err)
	}
	if list.Total != 0 || list.Aggregate.ReviewCount != 0 || list.Limit != defaultPageLimit {
		t.Fatalf("unexpected list %+v", list)
	}
}

func TestReviewServiceValidationAndOwnership(t *testing.T) {
	ctx := context.Background()
	svc, _, _, dest := newReviewFixture(true)
	user := domain.Principal{UserID: uuid.New()}

	for _, rating := range []int{0, 6} {
		if _, err := svc.Create(ctx, user, dest.ID, ReviewInput{Rating: rating}); !errors.Is(err, ErrReviewValidation) {
			t.Fatalf("expected ErrReviewValidation for rating %d, got %v", rating, err)
		}
	}
	if _, err := svc.Create(ctx, user, dest.ID, ReviewInput{Rating: 3, Comment: stringPtr("Lovely")}); !errors.Is(err, ErrReviewValidation) {
		t.Fatalf("expected ErrReviewValidation for comment without title, got %v", err)
	}
	if _, err := svc.Create(ctx, user, uuid.New(), ReviewInput{Rating: 3}); !errors.Is(err, ErrDestinationNotFound) {
		t.Fatalf("expected ErrDestinationNotFound, got %v", err)
	}

	created, err := svc.Create(ctx, user, dest.ID, ReviewInput{Rating: 3, Title: stringPtr("Boat ride"), Comment: stringPtr("Lovely")})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if _, err := svc.Create(ctx, user, dest.ID, ReviewInput{Rating: 4}); !errors.Is(err, ErrReviewAlreadyExist) {
		t.Fatalf("expected ErrReviewAlreadyExist, got %v", err)
	}

	stranger := domain.Principal{UserID: uuid.New()}
	if _, err := svc.Update(ctx, stranger, created.Review.ID, ReviewInput{Rating: 1}); !errors.Is(err, ErrReviewForbidden) {
		t.Fatalf("expected ErrReviewForbidden on update, got %v", err)
	}
	if _, err := svc.Delete(ctx, stranger, created.Review.ID); !errors.Is(err, ErrReviewForbidden) {
		t.Fatalf("expected ErrReviewForbidden on delete, got %v", err)
	}
	if _, err := svc.Delete(ctx, user, uuid.New()); !errors.Is(err, ErrReviewNotFound) {
		t.Fatalf("expected ErrReviewNotFound, got %v", err)
	}
}
