package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type TourStatus string

const (
	TourUpcoming TourStatus = "upcoming"
	TourOngoing  TourStatus = "ongoing"
)

type Tour struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Price       float64            `bson:"price" json:"price"`
	Duration    int                `bson:"duration,omitempty" json:"duration,omitempty"`
	Location    string             `bson:"location,omitempty" json:"location,omitempty"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
	Category    string             `bson:"category,omitempty" json:"category,omitempty"`
	Status      TourStatus         `bson:"status,omitempty" json:"status,omitempty"`
}
