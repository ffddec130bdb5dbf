package models

import "time"

// Doctor is a registered practitioner who onboards and manages patients.
type Doctor struct {
	ID             string    `bson:"id" json:"id"`
	Email          string    `bson:"email" json:"email"`
	PasswordHash   string    `bson:"password_hash" json:"-"`
	Name           string    `bson:"name" json:"name"`
	Specialization string    `bson:"specialization" json:"specialization"`
	LicenseNumber  string    `bson:"license_number" json:"licenseNumber"`
	CreatedAt      time.Time `bson:"created_at" json:"createdAt"`
}
