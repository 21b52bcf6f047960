package validation

import (
	"errors"
	"strings"
	"unicode/utf8"
)

const MaxFullNameLength = 100

// ValidateFullName checks the profile name. A blank name is allowed because
// the profile form may be saved before it is filled in.
func ValidateFullName(name string) error {
	trimmed := strings.TrimSpace(name)

	if utf8.RuneCountInString(trimmed) > MaxFullNameLength {
		return errors.New("name is too long (max 100 characters)")
	}

	return nil
}
