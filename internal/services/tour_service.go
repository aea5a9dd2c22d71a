package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tourcraft/tourcraft-api/internal/apperrors"
	"github.com/tourcraft/tourcraft-api/internal/models"
	"github.com/tourcraft/tourcraft-api/internal/store"
)

type TourRequest struct {
	// Name is accepted as an alias for Title.
	Name        string             `json:"name"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Price       *float64           `json:"price"`
	Duration    *int               `json:"duration"`
	Location    *string            `json:"location"`
	Image       *string            `json:"image"`
	Category    *string            `json:"category"`
	Status      *models.TourStatus `json:"status"`
}

// TourService is plain catalog CRUD, an external collaborator to the
// admission core.
type TourService struct {
	tours store.TourStore
}

func NewTourService(tours store.TourStore) *TourService {
	return &TourService{tours: tours}
}

func (s *TourService) List(ctx context.Context) ([]models.Tour, error) {
	tours, err := s.tours.List(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to retrieve tours", err)
	}
	return tours, nil
}

func (s *TourService) Get(ctx context.Context, id string) (*models.Tour, error) {
	tourID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.Validation("Invalid tour ID")
	}
	tour, err := s.tours.FindByID(ctx, tourID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperrors.NotFound("Tour not found")
	}
	if err != nil {
		return nil, apperrors.Internal("Failed to retrieve tour", err)
	}
	return tour, nil
}

func (s *TourService) Create(ctx context.Context, req *TourRequest) (*models.Tour, error) {
	title := req.Title
	if title == "" {
		title = req.Name
	}
	switch {
	case title == "":
		return nil, apperrors.Validation("title is required")
	case req.Description == "":
		return nil, apperrors.Validation("description is required")
	case req.Price == nil:
		return nil, apperrors.Validation("price is required")
	}

	tour := &models.Tour{
		Title:       title,
		Description: req.Description,
		Price:       *req.Price,
		Status:      models.TourUpcoming,
	}
	if req.Duration != nil {
		tour.Duration = *req.Duration
	}
	if req.Location != nil {
		tour.Location = *req.Location
	}
	if req.Image != nil {
		tour.Image = *req.Image
	}
	if req.Category != nil {
		tour.Category = *req.Category
	}
	if req.Status != nil {
		tour.Status = *req.Status
	}

	if err := s.tours.Insert(ctx, tour); err != nil {
		return nil, apperrors.Internal("Failed to create tour", err)
	}
	return tour, nil
}

func (s *TourService) Update(ctx context.Context, id string, req *TourRequest) (*models.Tour, error) {
	tour, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if title := req.Title; title != "" {
		tour.Title = title
	} else if req.Name != "" {
		tour.Title = req.Name
	}
	if req.Description != "" {
		tour.Description = req.Description
	}
	if req.Price != nil {
		tour.Price = *req.Price
	}
	if req.Duration != nil {
		tour.Duration = *req.Duration
	}
	if req.Location != nil {
		tour.Location = *req.Location
	}
	if req.Image != nil {
		tour.Image = *req.Image
	}
	if req.Category != nil {
		tour.Category = *req.Category
	}
	if req.Status != nil {
		tour.Status = *req.Status
	}

	if err := s.tours.Replace(ctx, tour); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("Tour not found")
		}
		return nil, apperrors.Internal("Failed to update tour", err)
	}
	return tour, nil
}

func (s *TourService) Delete(ctx context.Context, id string) error {
	tourID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperrors.Validation("Invalid tour ID")
	}
	if err := s.tours.Delete(ctx, tourID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperrors.NotFound("Tour not found")
		}
		return apperrors.Internal("Failed to delete tour", err)
	}
	return nil
}
