// Package store is the persistence boundary: interfaces the services
// program against, with MongoDB implementations alongside. Uniqueness
// is enforced by the indexes in internal/database; duplicate-key
// errors surface here as typed sentinels.
package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tourcraft/tourcraft-api/internal/models"
)

var (
	ErrNotFound         = errors.New("record not found")
	ErrDuplicateEmail   = errors.New("email already taken")
	ErrDuplicateBooking = errors.New("booking already exists for user, tour and date")
	ErrDuplicateReview  = errors.New("review already exists for user and tour")
	ErrBootstrapTaken   = errors.New("bootstrap admin already created")
)

type UserStore interface {
	Insert(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	CountAdmins(ctx context.Context) (int64, error)
	// UpdateProfile applies the non-empty fields only.
	UpdateProfile(ctx context.Context, id primitive.ObjectID, name, email string) error
	UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	// DeleteAdminsExcept removes every admin other than keep and
	// returns how many were removed.
	DeleteAdminsExcept(ctx context.Context, keep primitive.ObjectID) (int64, error)
}

type TourStore interface {
	Insert(ctx context.Context, tour *models.Tour) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Tour, error)
	List(ctx context.Context) ([]models.Tour, error)
	Replace(ctx context.Context, tour *models.Tour) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type BookingStore interface {
	Insert(ctx context.Context, booking *models.Booking) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error)
	// Exists is the friendly pre-check; the unique index on
	// (user, tour, bookingDate) remains the authoritative guard.
	Exists(ctx context.Context, user, tour primitive.ObjectID, bookingDate time.Time) (bool, error)
	ListByUser(ctx context.Context, user primitive.ObjectID) ([]models.Booking, error)
	ListAll(ctx context.Context) ([]models.Booking, error)
	Replace(ctx context.Context, booking *models.Booking) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type ReviewStore interface {
	Insert(ctx context.Context, review *models.Review) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Review, error)
	Exists(ctx context.Context, user, tour primitive.ObjectID) (bool, error)
	ListByTour(ctx context.Context, tour primitive.ObjectID) ([]models.Review, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}
