package model

import "time"

// UserProfile is one-to-one with a user. A user without a stored row has a
// blank profile.
type UserProfile struct {
	UserID            string    `db:"user_id" json:"user_id"`
	FullName          string    `db:"full_name" json:"full_name"`
	DateOfBirth       *Date     `db:"date_of_birth" json:"date_of_birth"`
	Phone             string    `db:"phone" json:"phone"`
	Address           string    `db:"address" json:"address"`
	EmergencyContact  string    `db:"emergency_contact" json:"emergency_contact"`
	BloodType         string    `db:"blood_type" json:"blood_type"`
	Allergies         string    `db:"allergies" json:"allergies"`
	MedicalConditions string    `db:"medical_conditions" json:"medical_conditions"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}

func BlankProfile(userID string) *UserProfile {
	return &UserProfile{UserID: userID}
}
