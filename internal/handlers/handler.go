package handlers

import (
	"github.com/rs/zerolog"

	"github.com/tourcraft/tourcraft-api/internal/services"
)

// Handler carries the services every route handler needs. All
// handlers are methods on it.
type Handler struct {
	Users    *services.UserService
	Tours    *services.TourService
	Bookings *services.BookingService
	Reviews  *services.ReviewService
	Log      zerolog.Logger
}

func NewHandler(
	users *services.UserService,
	tours *services.TourService,
	bookings *services.BookingService,
	reviews *services.ReviewService,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		Users:    users,
		Tours:    tours,
		Bookings: bookings,
		Reviews:  reviews,
		Log:      log,
	}
}
