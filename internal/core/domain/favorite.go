package domain

import "time"

// Favorite bookmarks a property for a user. A pair is stored at most once.
type Favorite struct {
	UserID     string    `json:"userId" bson:"user_id"`
	PropertyID string    `json:"propertyId" bson:"property_id"`
	CreatedAt  time.Time `json:"createdAt" bson:"created_at"`
}
