package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/healthpath/portal/internal/model"
	"github.com/healthpath/portal/internal/repository"
	"github.com/healthpath/portal/internal/validation"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserNotFound           = errors.New("user not found")
	ErrInvalidCurrentPassword = errors.New("current password is incorrect")
)

type UserService struct {
	userRepository    repository.UserRepository
	profileRepository repository.ProfileRepository
	emailService      *EmailService
}

func NewUserService(
	userRepository repository.UserRepository,
	profileRepository repository.ProfileRepository,
	emailService *EmailService,
) *UserService {
	return &UserService{
		userRepository:    userRepository,
		profileRepository: profileRepository,
		emailService:      emailService,
	}
}

func (s *UserService) ByID(ctx context.Context, id string) (*model.User, error) {
	user, err := s.userRepository.ByID(ctx, id)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, storageError("get user", err)
	}
	return user, nil
}

func (s *UserService) UpdatePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := s.ByID(ctx, userID)
	if err != nil {
		return err
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword))
	if err != nil {
		return ErrInvalidCurrentPassword
	}

	err = validation.ValidatePassword(newPassword)
	if err != nil {
		return &FieldError{Field: "new_password", Message: err.Error()}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	err = s.userRepository.UpdatePasswordHash(ctx, userID, string(hashedPassword))
	if err != nil {
		return storageError("update password", err)
	}

	slog.Info("password updated", "user_id", userID)
	return nil
}

// DeleteAccount removes the user. Profile and goals go with it through
// ON DELETE CASCADE.
func (s *UserService) DeleteAccount(ctx context.Context, userID string) error {
	user, err := s.ByID(ctx, userID)
	if err != nil {
		return err
	}

	name := ""
	profile, err := s.profileRepository.ByUserID(ctx, userID)
	if err == nil {
		name = profile.FullName
	} else if !errors.Is(err, repository.ErrProfileNotFound) {
		slog.Warn("failed to get profile for deletion email", "user_id", userID, "error", err)
	}

	err = s.userRepository.Delete(ctx, userID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return storageError("delete user", err)
	}

	err = s.emailService.SendAccountDeletedEmail(ctx, user.Email, name)
	if err != nil {
		slog.Warn("failed to send account deleted email", "user_id", userID, "error", err)
	}

	slog.Info("account deleted", "user_id", userID)
	return nil
}
