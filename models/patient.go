package models

import "time"

// Patient is an account created by a doctor. The password hash is set from a
// doctor-supplied or generated credential; the plaintext is only ever held
// transiently for email delivery.
type Patient struct {
	ID             string    `bson:"id" json:"id"`
	Email          string    `bson:"email" json:"email"`
	PasswordHash   string    `bson:"password_hash" json:"-"`
	FullName       string    `bson:"full_name" json:"fullName"`
	Age            int       `bson:"age" json:"age"`
	Gender         string    `bson:"gender" json:"gender"`
	Phone          string    `bson:"phone" json:"phone"`
	Address        string    `bson:"address" json:"address"`
	MedicalHistory string    `bson:"medical_history" json:"medicalHistory"`
	DoctorID       string    `bson:"doctor_id" json:"doctorId"`
	CreatedAt      time.Time `bson:"created_at" json:"createdAt"`
}
