package models

import "time"

// Feedback is an unauthenticated rating submission from the public site.
type Feedback struct {
	ID         string    `bson:"id" json:"id"`
	Name       string    `bson:"name" json:"name"`
	Email      string    `bson:"email" json:"email"`
	Phone      string    `bson:"phone" json:"phone"`
	Department string    `bson:"department" json:"department"`
	Rating     int       `bson:"rating" json:"rating"`
	Message    string    `bson:"message" json:"message"`
	CreatedAt  time.Time `bson:"created_at" json:"createdAt"`
}
