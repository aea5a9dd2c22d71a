package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tourcraft/tourcraft-api/internal/apperrors"
	"github.com/tourcraft/tourcraft-api/internal/models"
	"github.com/tourcraft/tourcraft-api/internal/store"
)

const (
	minPeople = 1
	maxPeople = 10

	nationalIDLen = 12
	phoneLen      = 10
)

type CreateBookingRequest struct {
	TourID         string          `json:"tourId"`
	BookingDate    string          `json:"bookingDate"`
	NumberOfPeople *int            `json:"numberOfPeople"`
	TotalPrice     *float64        `json:"totalPrice"`
	People         []models.Person `json:"people"`
}

type UpdateBookingRequest struct {
	BookingDate    *string          `json:"bookingDate,omitempty"`
	NumberOfPeople *int             `json:"numberOfPeople,omitempty"`
	TotalPrice     *float64         `json:"totalPrice,omitempty"`
	People         *[]models.Person `json:"people,omitempty"`
}

// BookingService is the admission engine: it decides whether a
// reservation request is admissible and persists it. The compound
// unique index on (user, tour, bookingDate) is the authoritative
// duplicate guard; the pre-check only buys a friendlier error.
type BookingService struct {
	bookings store.BookingStore
	tours    store.TourStore

	now func() time.Time
}

func NewBookingService(bookings store.BookingStore, tours store.TourStore) *BookingService {
	return &BookingService{
		bookings: bookings,
		tours:    tours,
		now:      time.Now,
	}
}

// Create validates and persists a booking for the caller, returning it
// joined with its tour.
func (s *BookingService) Create(ctx context.Context, callerID primitive.ObjectID, req *CreateBookingRequest) (*models.BookingWithTour, error) {
	if err := s.validateStructure(req); err != nil {
		return nil, err
	}

	if *req.NumberOfPeople < minPeople || *req.NumberOfPeople > maxPeople {
		return nil, apperrors.Validation("Number of people must be between 1 and 10")
	}

	bookingDate, err := parseBookingDate(req.BookingDate)
	if err != nil {
		return nil, err
	}
	if bookingDate.Before(dateOnly(s.now())) {
		return nil, apperrors.Validation("Cannot book for past dates. Please select a future date.")
	}

	if len(req.People) != *req.NumberOfPeople {
		return nil, apperrors.Validation("Number of people does not match the people array length")
	}
	if err := validatePeople(req.People); err != nil {
		return nil, err
	}

	tourID, err := primitive.ObjectIDFromHex(req.TourID)
	if err != nil {
		return nil, apperrors.Validation("Invalid tour ID")
	}
	tour, err := s.tours.FindByID(ctx, tourID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperrors.NotFound("Tour not found")
	}
	if err != nil {
		return nil, apperrors.Internal("Failed to look up tour", err)
	}

	exists, err := s.bookings.Exists(ctx, callerID, tourID, bookingDate)
	if err != nil {
		return nil, apperrors.Internal("Failed to check existing bookings", err)
	}
	if exists {
		return nil, apperrors.ConflictBadRequest("You have already booked this tour for this date.")
	}

	booking := &models.Booking{
		UserID:         callerID,
		TourID:         tourID,
		BookingDate:    bookingDate,
		NumberOfPeople: *req.NumberOfPeople,
		TotalPrice:     *req.TotalPrice,
		People:         req.People,
		CreatedAt:      s.now(),
	}
	if err := s.bookings.Insert(ctx, booking); err != nil {
		if errors.Is(err, store.ErrDuplicateBooking) {
			// Lost the race with a concurrent identical request.
			return nil, apperrors.ConflictBadRequest("You have already booked this tour for this date.")
		}
		return nil, apperrors.Internal("Failed to create booking", err)
	}

	return &models.BookingWithTour{Booking: *booking, Tour: tour}, nil
}

// Get returns a booking joined with its tour. Only the owner or an
// admin may read it.
func (s *BookingService) Get(ctx context.Context, callerID primitive.ObjectID, role models.Role, id string) (*models.BookingWithTour, error) {
	booking, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canMutate(callerID, role, booking.UserID) {
		return nil, apperrors.Forbidden("Not authorized to view this booking")
	}

	tour, err := s.tours.FindByID(ctx, booking.TourID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, apperrors.Internal("Failed to look up tour", err)
	}
	return &models.BookingWithTour{Booking: *booking, Tour: tour}, nil
}

// ListForUser returns the caller's own bookings.
func (s *BookingService) ListForUser(ctx context.Context, callerID primitive.ObjectID) ([]models.Booking, error) {
	bookings, err := s.bookings.ListByUser(ctx, callerID)
	if err != nil {
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}
	return bookings, nil
}

// ListAll returns every booking. Admin only; the handler gates the
// route, this is just the data path.
func (s *BookingService) ListAll(ctx context.Context) ([]models.Booking, error) {
	bookings, err := s.bookings.ListAll(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}
	return bookings, nil
}

// Update applies a partial update. The owner-or-admin rule applies,
// and the merged booking must still satisfy every admission rule.
func (s *BookingService) Update(ctx context.Context, callerID primitive.ObjectID, role models.Role, id string, req *UpdateBookingRequest) (*models.Booking, error) {
	booking, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canMutate(callerID, role, booking.UserID) {
		return nil, apperrors.Forbidden("Not authorized to update this booking")
	}

	if req.BookingDate != nil {
		bookingDate, err := parseBookingDate(*req.BookingDate)
		if err != nil {
			return nil, err
		}
		if bookingDate.Before(dateOnly(s.now())) {
			return nil, apperrors.Validation("Cannot book for past dates. Please select a future date.")
		}
		booking.BookingDate = bookingDate
	}
	if req.NumberOfPeople != nil {
		booking.NumberOfPeople = *req.NumberOfPeople
	}
	if req.TotalPrice != nil {
		booking.TotalPrice = *req.TotalPrice
	}
	if req.People != nil {
		booking.People = *req.People
	}

	if booking.NumberOfPeople < minPeople || booking.NumberOfPeople > maxPeople {
		return nil, apperrors.Validation("Number of people must be between 1 and 10")
	}
	if len(booking.People) != booking.NumberOfPeople {
		return nil, apperrors.Validation("Number of people does not match the people array length")
	}
	if err := validatePeople(booking.People); err != nil {
		return nil, err
	}

	if err := s.bookings.Replace(ctx, booking); err != nil {
		switch {
		case errors.Is(err, store.ErrDuplicateBooking):
			return nil, apperrors.ConflictBadRequest("You have already booked this tour for this date.")
		case errors.Is(err, store.ErrNotFound):
			return nil, apperrors.NotFound("Booking not found")
		}
		return nil, apperrors.Internal("Failed to update booking", err)
	}
	return booking, nil
}

// Cancel deletes a booking. Owner or admin only.
func (s *BookingService) Cancel(ctx context.Context, callerID primitive.ObjectID, role models.Role, id string) error {
	booking, err := s.fetch(ctx, id)
	if err != nil {
		return err
	}
	if !canMutate(callerID, role, booking.UserID) {
		return apperrors.Forbidden("Not authorized to delete this booking")
	}
	if err := s.bookings.Delete(ctx, booking.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperrors.NotFound("Booking not found")
		}
		return apperrors.Internal("Failed to delete booking", err)
	}
	return nil
}

func (s *BookingService) fetch(ctx context.Context, id string) (*models.Booking, error) {
	bookingID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.Validation("Invalid booking ID")
	}
	booking, err := s.bookings.FindByID(ctx, bookingID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperrors.NotFound("Booking not found")
	}
	if err != nil {
		return nil, apperrors.Internal("Failed to retrieve booking", err)
	}
	return booking, nil
}

func (s *BookingService) validateStructure(req *CreateBookingRequest) error {
	switch {
	case req.TourID == "":
		return apperrors.Validation("tourId is required")
	case req.BookingDate == "":
		return apperrors.Validation("bookingDate is required")
	case req.NumberOfPeople == nil:
		return apperrors.Validation("numberOfPeople is required")
	case req.TotalPrice == nil:
		return apperrors.Validation("totalPrice is required")
	case len(req.People) == 0:
		return apperrors.Validation("people is required")
	}
	return nil
}

func validatePeople(people []models.Person) error {
	for i, p := range people {
		n := i + 1
		if p.Name == "" || p.NationalID == "" || p.Phone == "" || p.Photo == "" {
			return apperrors.Validation(fmt.Sprintf("Person %d is missing required fields", n))
		}
		if len(p.NationalID) != nationalIDLen || !isDigits(p.NationalID) {
			return apperrors.Validation(fmt.Sprintf("Person %d national ID must be 12 digits", n))
		}
		if len(p.Phone) != phoneLen || !isDigits(p.Phone) {
			return apperrors.Validation(fmt.Sprintf("Person %d phone number must be 10 digits", n))
		}
	}
	return nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// parseBookingDate accepts a plain calendar date or an RFC3339
// timestamp and normalizes to midnight UTC, so the unique index on
// (user, tour, bookingDate) compares whole days.
func parseBookingDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return dateOnly(t), nil
	}
	return time.Time{}, apperrors.Validation("Invalid booking date format, use YYYY-MM-DD")
}

func dateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
