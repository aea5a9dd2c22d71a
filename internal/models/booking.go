package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Person is one traveler on a booking. NationalID must be exactly 12
// digits and Phone exactly 10; Photo is an opaque encoded blob.
type Person struct {
	Name       string `bson:"name" json:"name"`
	NationalID string `bson:"nationalId" json:"nationalId"`
	Phone      string `bson:"phone" json:"phone"`
	Photo      string `bson:"photo" json:"photo"`
}

type Booking struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID primitive.ObjectID `bson:"user" json:"user"`
	TourID primitive.ObjectID `bson:"tour" json:"tour"`
	// BookingDate is a calendar date stored at midnight UTC so the
	// (user, tour, bookingDate) unique index compares whole days.
	BookingDate    time.Time `bson:"bookingDate" json:"bookingDate"`
	NumberOfPeople int       `bson:"numberOfPeople" json:"numberOfPeople"`
	TotalPrice     float64   `bson:"totalPrice" json:"totalPrice"`
	People         []Person  `bson:"people" json:"people"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
}

// BookingWithTour is the create/get response shape: the booking joined
// with its referenced tour.
type BookingWithTour struct {
	Booking `bson:",inline"`
	Tour    *Tour `bson:"tourDetails,omitempty" json:"tourDetails,omitempty"`
}
