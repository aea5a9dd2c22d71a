package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tourcraft/tourcraft-api/internal/models"
)

type MongoBookingStore struct {
	coll *mongo.Collection
}

func NewMongoBookingStore(db *mongo.Database) *MongoBookingStore {
	return &MongoBookingStore{coll: db.Collection("bookings")}
}

func (s *MongoBookingStore) Insert(ctx context.Context, booking *models.Booking) error {
	if booking.ID.IsZero() {
		booking.ID = primitive.NewObjectID()
	}
	_, err := s.coll.InsertOne(ctx, booking)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateBooking
	}
	return err
}

func (s *MongoBookingStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	var booking models.Booking
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&booking)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (s *MongoBookingStore) Exists(ctx context.Context, user, tour primitive.ObjectID, bookingDate time.Time) (bool, error) {
	err := s.coll.FindOne(ctx, bson.M{
		"user":        user,
		"tour":        tour,
		"bookingDate": bookingDate,
	}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *MongoBookingStore) ListByUser(ctx context.Context, user primitive.ObjectID) ([]models.Booking, error) {
	return s.list(ctx, bson.M{"user": user})
}

func (s *MongoBookingStore) ListAll(ctx context.Context) ([]models.Booking, error) {
	return s.list(ctx, bson.M{})
}

func (s *MongoBookingStore) list(ctx context.Context, filter bson.M) ([]models.Booking, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "bookingDate", Value: 1}})
	cursor, err := s.coll.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	bookings := make([]models.Booking, 0)
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (s *MongoBookingStore) Replace(ctx context.Context, booking *models.Booking) error {
	result, err := s.coll.ReplaceOne(ctx, bson.M{"_id": booking.ID}, booking)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateBooking
	}
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoBookingStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
