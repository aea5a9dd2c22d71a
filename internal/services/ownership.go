package services

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tourcraft/tourcraft-api/internal/models"
)

// canMutate is the ownership policy for bookings and reviews: the
// record's creator may act on it, and admins may act on anything.
func canMutate(callerID primitive.ObjectID, role models.Role, owner primitive.ObjectID) bool {
	return role == models.RoleAdmin || callerID == owner
}
