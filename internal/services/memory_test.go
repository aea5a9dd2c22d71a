package services

// In-memory store fakes backing the service tests. They enforce the
// same uniqueness rules the mongo indexes do, so the check-then-insert
// races are observable under test.

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tourcraft/tourcraft-api/internal/models"
	"github.com/tourcraft/tourcraft-api/internal/store"
)

type memUserStore struct {
	mu               sync.Mutex
	users            map[primitive.ObjectID]*models.User
	bootstrapClaimed bool
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[primitive.ObjectID]*models.User)}
}

func (m *memUserStore) Insert(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user.BootstrapAdmin && m.bootstrapClaimed {
		return store.ErrBootstrapTaken
	}
	for _, u := range m.users {
		if u.Email == user.Email {
			return store.ErrDuplicateEmail
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if user.BootstrapAdmin {
		m.bootstrapClaimed = true
	}
	clone := *user
	m.users[user.ID] = &clone
	return nil
}

func (m *memUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memUserStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, store.ErrNotFound
}

func (m *memUserStore) List(_ context.Context) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	users := make([]models.User, 0, len(m.users))
	for _, u := range m.users {
		users = append(users, *u)
	}
	return users, nil
}

func (m *memUserStore) CountAdmins(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for _, u := range m.users {
		if u.Role == models.RoleAdmin {
			count++
		}
	}
	return count, nil
}

func (m *memUserStore) UpdateProfile(_ context.Context, id primitive.ObjectID, name, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return store.ErrNotFound
	}
	if email != "" {
		for otherID, other := range m.users {
			if otherID != id && other.Email == email {
				return store.ErrDuplicateEmail
			}
		}
		u.Email = email
	}
	if name != "" {
		u.Name = name
	}
	return nil
}

func (m *memUserStore) UpdatePassword(_ context.Context, id primitive.ObjectID, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return store.ErrNotFound
	}
	u.Password = passwordHash
	return nil
}

func (m *memUserStore) Delete(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *memUserStore) DeleteAdminsExcept(_ context.Context, keep primitive.ObjectID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for id, u := range m.users {
		if u.Role == models.RoleAdmin && id != keep {
			delete(m.users, id)
			count++
		}
	}
	return count, nil
}

type memTourStore struct {
	mu    sync.Mutex
	tours map[primitive.ObjectID]*models.Tour
}

func newMemTourStore() *memTourStore {
	return &memTourStore{tours: make(map[primitive.ObjectID]*models.Tour)}
}

func (m *memTourStore) Insert(_ context.Context, tour *models.Tour) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if tour.ID.IsZero() {
		tour.ID = primitive.NewObjectID()
	}
	clone := *tour
	m.tours[tour.ID] = &clone
	return nil
}

func (m *memTourStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Tour, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.tours[id]; ok {
		clone := *t
		return &clone, nil
	}
	return nil, store.ErrNotFound
}

func (m *memTourStore) List(_ context.Context) ([]models.Tour, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	tours := make([]models.Tour, 0, len(m.tours))
	for _, t := range m.tours {
		tours = append(tours, *t)
	}
	return tours, nil
}

func (m *memTourStore) Replace(_ context.Context, tour *models.Tour) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tours[tour.ID]; !ok {
		return store.ErrNotFound
	}
	clone := *tour
	m.tours[tour.ID] = &clone
	return nil
}

func (m *memTourStore) Delete(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tours[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.tours, id)
	return nil
}

type memBookingStore struct {
	mu       sync.Mutex
	bookings map[primitive.ObjectID]*models.Booking
}

func newMemBookingStore() *memBookingStore {
	return &memBookingStore{bookings: make(map[primitive.ObjectID]*models.Booking)}
}

func (m *memBookingStore) Insert(_ context.Context, booking *models.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.bookings {
		if b.UserID == booking.UserID && b.TourID == booking.TourID && b.BookingDate.Equal(booking.BookingDate) {
			return store.ErrDuplicateBooking
		}
	}
	if booking.ID.IsZero() {
		booking.ID = primitive.NewObjectID()
	}
	clone := *booking
	m.bookings[booking.ID] = &clone
	return nil
}

func (m *memBookingStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b, ok := m.bookings[id]; ok {
		clone := *b
		return &clone, nil
	}
	return nil, store.ErrNotFound
}

func (m *memBookingStore) Exists(_ context.Context, user, tour primitive.ObjectID, bookingDate time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.bookings {
		if b.UserID == user && b.TourID == tour && b.BookingDate.Equal(bookingDate) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memBookingStore) ListByUser(_ context.Context, user primitive.ObjectID) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	bookings := make([]models.Booking, 0)
	for _, b := range m.bookings {
		if b.UserID == user {
			bookings = append(bookings, *b)
		}
	}
	return bookings, nil
}

func (m *memBookingStore) ListAll(_ context.Context) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	bookings := make([]models.Booking, 0, len(m.bookings))
	for _, b := range m.bookings {
		bookings = append(bookings, *b)
	}
	return bookings, nil
}

func (m *memBookingStore) Replace(_ context.Context, booking *models.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.bookings[booking.ID]; !ok {
		return store.ErrNotFound
	}
	for id, b := range m.bookings {
		if id != booking.ID && b.UserID == booking.UserID && b.TourID == booking.TourID && b.BookingDate.Equal(booking.BookingDate) {
			return store.ErrDuplicateBooking
		}
	}
	clone := *booking
	m.bookings[booking.ID] = &clone
	return nil
}

func (m *memBookingStore) Delete(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.bookings[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.bookings, id)
	return nil
}

type memReviewStore struct {
	mu      sync.Mutex
	reviews map[primitive.ObjectID]*models.Review
}

func newMemReviewStore() *memReviewStore {
	return &memReviewStore{reviews: make(map[primitive.ObjectID]*models.Review)}
}

func (m *memReviewStore) Insert(_ context.Context, review *models.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.reviews {
		if r.UserID == review.UserID && r.TourID == review.TourID {
			return store.ErrDuplicateReview
		}
	}
	if review.ID.IsZero() {
		review.ID = primitive.NewObjectID()
	}
	clone := *review
	m.reviews[review.ID] = &clone
	return nil
}

func (m *memReviewStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.reviews[id]; ok {
		clone := *r
		return &clone, nil
	}
	return nil, store.ErrNotFound
}

func (m *memReviewStore) Exists(_ context.Context, user, tour primitive.ObjectID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.reviews {
		if r.UserID == user && r.TourID == tour {
			return true, nil
		}
	}
	return false, nil
}

func (m *memReviewStore) ListByTour(_ context.Context, tour primitive.ObjectID) ([]models.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	reviews := make([]models.Review, 0)
	for _, r := range m.reviews {
		if r.TourID == tour {
			reviews = append(reviews, *r)
		}
	}
	return reviews, nil
}

func (m *memReviewStore) Delete(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.reviews[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.reviews, id)
	return nil
}
