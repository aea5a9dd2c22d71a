package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const connectTimeout = 10 * time.Second

// Connect opens the mongo client, pings it and returns the database
// plus a disconnect func for shutdown.
func Connect(ctx context.Context, uri, name string) (*mongo.Database, func(context.Context) error, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, fmt.Errorf("ping MongoDB: %w", err)
	}
	return client.Database(name), client.Disconnect, nil
}

// EnsureIndexes creates the unique indexes that back every
// check-then-insert path: only one of two racing conflicting writes
// can succeed, the loser sees a duplicate-key error.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	users := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			// At most one identity ever carries bootstrapAdmin, which
			// makes the open first-admin endpoint single-winner.
			Keys: bson.D{{Key: "bootstrapAdmin", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.D{{Key: "bootstrapAdmin", Value: true}}),
		},
	}
	if _, err := db.Collection("users").Indexes().CreateMany(ctx, users); err != nil {
		return fmt.Errorf("create user indexes: %w", err)
	}

	bookings := mongo.IndexModel{
		Keys: bson.D{
			{Key: "user", Value: 1},
			{Key: "tour", Value: 1},
			{Key: "bookingDate", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	}
	if _, err := db.Collection("bookings").Indexes().CreateOne(ctx, bookings); err != nil {
		return fmt.Errorf("create booking index: %w", err)
	}

	reviews := mongo.IndexModel{
		Keys: bson.D{
			{Key: "user", Value: 1},
			{Key: "tour", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	}
	if _, err := db.Collection("reviews").Indexes().CreateOne(ctx, reviews); err != nil {
		return fmt.Errorf("create review index: %w", err)
	}
	return nil
}
