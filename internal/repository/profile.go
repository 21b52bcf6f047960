package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/healthpath/portal/internal/model"
	"github.com/jmoiron/sqlx"
)

var ErrProfileNotFound = errors.New("profile not found")

type ProfileRepository interface {
	ByUserID(ctx context.Context, userID string) (*model.UserProfile, error)
	Upsert(ctx context.Context, profile *model.UserProfile) error
}

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) ByUserID(ctx context.Context, userID string) (*model.UserProfile, error) {
	var profile model.UserProfile
	err := r.db.GetContext(ctx, &profile, `SELECT * FROM user_profiles WHERE user_id = $1`, userID)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}

	return &profile, nil
}

// Upsert writes every field of the profile. CreatedAt is only set on insert;
// zero timestamps are filled with the current time.
func (r *profileRepository) Upsert(ctx context.Context, profile *model.UserProfile) error {
	now := time.Now().UTC()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	if profile.UpdatedAt.IsZero() {
		profile.UpdatedAt = now
	}

	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO user_profiles (
			user_id, full_name, date_of_birth, phone, address, emergency_contact,
			blood_type, allergies, medical_conditions, created_at, updated_at
		) VALUES (
			:user_id, :full_name, :date_of_birth, :phone, :address, :emergency_contact,
			:blood_type, :allergies, :medical_conditions, :created_at, :updated_at
		)
		ON CONFLICT (user_id) DO UPDATE SET
			full_name = excluded.full_name,
			date_of_birth = excluded.date_of_birth,
			phone = excluded.phone,
			address = excluded.address,
			emergency_contact = excluded.emergency_contact,
			blood_type = excluded.blood_type,
			allergies = excluded.allergies,
			medical_conditions = excluded.medical_conditions,
			updated_at = excluded.updated_at
	`, profile)

	return err
}
