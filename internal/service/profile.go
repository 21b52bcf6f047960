package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/healthpath/portal/internal/model"
	"github.com/healthpath/portal/internal/repository"
	"github.com/healthpath/portal/internal/validation"
)

// FieldError rejects one field of a submitted form.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// ProfileInput is the profile form as submitted. Every field is optional.
type ProfileInput struct {
	FullName          string `json:"full_name"`
	DateOfBirth       string `json:"date_of_birth"`
	Phone             string `json:"phone"`
	Address           string `json:"address"`
	EmergencyContact  string `json:"emergency_contact"`
	BloodType         string `json:"blood_type"`
	Allergies         string `json:"allergies"`
	MedicalConditions string `json:"medical_conditions"`
}

type ProfileService struct {
	profileRepo repository.ProfileRepository
	now         Clock
}

func NewProfileService(profileRepo repository.ProfileRepository) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
		now:         utcNow,
	}
}

// ByUserID returns the stored profile, or a blank one if none was saved yet.
func (s *ProfileService) ByUserID(ctx context.Context, userID string) (*model.UserProfile, error) {
	profile, err := s.profileRepo.ByUserID(ctx, userID)
	if errors.Is(err, repository.ErrProfileNotFound) {
		return model.BlankProfile(userID), nil
	}
	if err != nil {
		return nil, storageError("get profile", err)
	}
	return profile, nil
}

// Save validates the form and upserts the profile.
func (s *ProfileService) Save(ctx context.Context, userID string, input ProfileInput) (*model.UserProfile, error) {
	now := s.now()

	profile, err := s.parse(userID, input, now)
	if err != nil {
		return nil, err
	}

	existing, err := s.profileRepo.ByUserID(ctx, userID)
	switch {
	case err == nil:
		profile.CreatedAt = existing.CreatedAt
	case errors.Is(err, repository.ErrProfileNotFound):
		profile.CreatedAt = now
	default:
		return nil, storageError("get profile", err)
	}
	profile.UpdatedAt = now

	err = s.profileRepo.Upsert(ctx, profile)
	if err != nil {
		return nil, storageError("save profile", err)
	}

	return profile, nil
}

func (s *ProfileService) parse(userID string, input ProfileInput, now time.Time) (*model.UserProfile, error) {
	profile := &model.UserProfile{
		UserID:            userID,
		FullName:          strings.TrimSpace(input.FullName),
		Phone:             strings.TrimSpace(input.Phone),
		Address:           strings.TrimSpace(input.Address),
		EmergencyContact:  strings.TrimSpace(input.EmergencyContact),
		BloodType:         strings.ToUpper(strings.TrimSpace(input.BloodType)),
		Allergies:         strings.TrimSpace(input.Allergies),
		MedicalConditions: strings.TrimSpace(input.MedicalConditions),
	}

	err := validation.ValidateFullName(profile.FullName)
	if err != nil {
		return nil, &FieldError{Field: "full_name", Message: err.Error()}
	}

	if dob := strings.TrimSpace(input.DateOfBirth); dob != "" {
		date, err := model.ParseDate(dob)
		if err != nil {
			return nil, &FieldError{Field: "date_of_birth", Message: err.Error()}
		}
		err = validation.ValidateDateOfBirth(date, now)
		if err != nil {
			return nil, &FieldError{Field: "date_of_birth", Message: err.Error()}
		}
		profile.DateOfBirth = &date
	}

	err = validation.ValidatePhone(profile.Phone)
	if err != nil {
		return nil, &FieldError{Field: "phone", Message: err.Error()}
	}

	err = validation.ValidateBloodType(profile.BloodType)
	if err != nil {
		return nil, &FieldError{Field: "blood_type", Message: err.Error()}
	}

	freeText := []struct{ field, value string }{
		{"address", profile.Address},
		{"emergency_contact", profile.EmergencyContact},
		{"allergies", profile.Allergies},
		{"medical_conditions", profile.MedicalConditions},
	}
	for _, f := range freeText {
		err = validation.ValidateFreeText(f.field, f.value)
		if err != nil {
			return nil, &FieldError{Field: f.field, Message: err.Error()}
		}
	}

	return profile, nil
}
