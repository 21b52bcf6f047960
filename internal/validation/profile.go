package validation

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/healthpath/portal/internal/model"
)

const (
	MaxPhoneLength    = 32
	MaxFreeTextLength = 2000
)

var bloodTypes = map[string]bool{
	"A+": true, "A-": true,
	"B+": true, "B-": true,
	"AB+": true, "AB-": true,
	"O+": true, "O-": true,
}

// BloodTypes lists the accepted blood type values in display order.
func BloodTypes() []string {
	return []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}
}

// ValidateBloodType accepts an empty value or one of the eight ABO/Rh groups.
func ValidateBloodType(bloodType string) error {
	if bloodType == "" || bloodTypes[strings.ToUpper(bloodType)] {
		return nil
	}
	return fmt.Errorf("blood type must be one of %s", strings.Join(BloodTypes(), ", "))
}

// ValidateDateOfBirth rejects dates after the current day.
func ValidateDateOfBirth(dob model.Date, now time.Time) error {
	if dob.Time().After(now) {
		return errors.New("date of birth cannot be in the future")
	}
	return nil
}

func ValidatePhone(phone string) error {
	if len(phone) > MaxPhoneLength {
		return errors.New("phone number is too long (max 32 characters)")
	}
	for _, r := range phone {
		if !strings.ContainsRune("0123456789+-() .", r) {
			return errors.New("phone number may only contain digits, spaces and + - ( ) .")
		}
	}
	return nil
}

func ValidateFreeText(field, value string) error {
	if len(value) > MaxFreeTextLength {
		return fmt.Errorf("%s is too long (max 2000 characters)", field)
	}
	return nil
}
