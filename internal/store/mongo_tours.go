package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tourcraft/tourcraft-api/internal/models"
)

type MongoTourStore struct {
	coll *mongo.Collection
}

func NewMongoTourStore(db *mongo.Database) *MongoTourStore {
	return &MongoTourStore{coll: db.Collection("tours")}
}

func (s *MongoTourStore) Insert(ctx context.Context, tour *models.Tour) error {
	if tour.ID.IsZero() {
		tour.ID = primitive.NewObjectID()
	}
	_, err := s.coll.InsertOne(ctx, tour)
	return err
}

func (s *MongoTourStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Tour, error) {
	var tour models.Tour
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&tour)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &tour, nil
}

func (s *MongoTourStore) List(ctx context.Context) ([]models.Tour, error) {
	cursor, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	tours := make([]models.Tour, 0)
	if err := cursor.All(ctx, &tours); err != nil {
		return nil, err
	}
	return tours, nil
}

func (s *MongoTourStore) Replace(ctx context.Context, tour *models.Tour) error {
	result, err := s.coll.ReplaceOne(ctx, bson.M{"_id": tour.ID}, tour)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoTourStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
