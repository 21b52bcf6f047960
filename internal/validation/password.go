package validation

import (
	"errors"
	"strings"
)

const (
	MinPasswordLength = 8
	// bcrypt silently truncates anything past 72 bytes
	MaxPasswordLength = 72
)

var commonPasswordPatterns = []string{
	"password", "123456", "qwerty", "letmein", "welcome",
}

// ValidatePassword enforces the sign-up password policy.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return errors.New("password must be at least 8 characters")
	}

	if len(password) > MaxPasswordLength {
		return errors.New("password must not exceed 72 characters")
	}

	lower := strings.ToLower(password)
	for _, pattern := range commonPasswordPatterns {
		if strings.Contains(lower, pattern) {
			return errors.New("password is too common, please choose a stronger one")
		}
	}

	return nil
}
