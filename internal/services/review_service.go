package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tourcraft/tourcraft-api/internal/apperrors"
	"github.com/tourcraft/tourcraft-api/internal/models"
	"github.com/tourcraft/tourcraft-api/internal/store"
)

type CreateReviewRequest struct {
	Tour    string `json:"tour"`
	Rating  *int   `json:"rating"`
	Comment string `json:"comment"`
}

// ReviewService follows the same admission shape as bookings: a
// friendly duplicate pre-check, with the (user, tour) unique index as
// the real guard, and the shared owner-or-admin deletion policy.
type ReviewService struct {
	reviews store.ReviewStore

	now func() time.Time
}

func NewReviewService(reviews store.ReviewStore) *ReviewService {
	return &ReviewService{reviews: reviews, now: time.Now}
}

func (s *ReviewService) Create(ctx context.Context, callerID primitive.ObjectID, req *CreateReviewRequest) (*models.Review, error) {
	if req.Tour == "" {
		return nil, apperrors.Validation("tour is required")
	}
	if req.Rating == nil {
		return nil, apperrors.Validation("rating is required")
	}
	if *req.Rating < 1 || *req.Rating > 5 {
		return nil, apperrors.Validation("Rating must be between 1 and 5")
	}
	tourID, err := primitive.ObjectIDFromHex(req.Tour)
	if err != nil {
		return nil, apperrors.Validation("Invalid tour ID")
	}

	exists, err := s.reviews.Exists(ctx, callerID, tourID)
	if err != nil {
		return nil, apperrors.Internal("Failed to check existing reviews", err)
	}
	if exists {
		return nil, apperrors.ConflictBadRequest("You have already reviewed this tour.")
	}

	review := &models.Review{
		UserID:    callerID,
		TourID:    tourID,
		Rating:    *req.Rating,
		Comment:   req.Comment,
		CreatedAt: s.now(),
	}
	if err := s.reviews.Insert(ctx, review); err != nil {
		if errors.Is(err, store.ErrDuplicateReview) {
			return nil, apperrors.ConflictBadRequest("You have already reviewed this tour.")
		}
		return nil, apperrors.Internal("Failed to create review", err)
	}
	return review, nil
}

func (s *ReviewService) ListForTour(ctx context.Context, tourID string) ([]models.Review, error) {
	id, err := primitive.ObjectIDFromHex(tourID)
	if err != nil {
		return nil, apperrors.Validation("Invalid tour ID")
	}
	reviews, err := s.reviews.ListByTour(ctx, id)
	if err != nil {
		return nil, apperrors.Internal("Failed to retrieve reviews", err)
	}
	return reviews, nil
}

func (s *ReviewService) Delete(ctx context.Context, callerID primitive.ObjectID, role models.Role, id string) error {
	reviewID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperrors.Validation("Invalid review ID")
	}
	review, err := s.reviews.FindByID(ctx, reviewID)
	if errors.Is(err, store.ErrNotFound) {
		return apperrors.NotFound("Review not found")
	}
	if err != nil {
		return apperrors.Internal("Failed to retrieve review", err)
	}
	if !canMutate(callerID, role, review.UserID) {
		return apperrors.Forbidden("Not authorized")
	}
	if err := s.reviews.Delete(ctx, reviewID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperrors.NotFound("Review not found")
		}
		return apperrors.Internal("Failed to delete review", err)
	}
	return nil
}
