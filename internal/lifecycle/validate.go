package lifecycle

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/healthpath/portal/internal/model"
)

const MaxTitleLength = 200

type ValidationCode string

const (
	CodeEmptyTitle    ValidationCode = "empty_title"
	CodeTooLong       ValidationCode = "too_long"
	CodeInvalidNumber ValidationCode = "invalid_number"
	CodeInvalidDate   ValidationCode = "invalid_date"
)

// ValidationError describes a single rejected input field.
type ValidationError struct {
	Field string
	Code  ValidationCode
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

// NewGoalInput holds the raw form values of the "add goal" action. Empty
// strings mean the field was not provided.
type NewGoalInput struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	TargetValue  string `json:"target_value"`
	CurrentValue string `json:"current_value"`
	Unit         string `json:"unit"`
	TargetDate   string `json:"target_date"`
}

// ValidateNewGoal turns raw input into an active goal ready for insertion.
// ID, owner and timestamps are left for the repository.
func ValidateNewGoal(input NewGoalInput) (model.HealthGoal, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return model.HealthGoal{}, &ValidationError{Field: "title", Code: CodeEmptyTitle, Msg: "title is required"}
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return model.HealthGoal{}, &ValidationError{
			Field: "title",
			Code:  CodeTooLong,
			Msg:   fmt.Sprintf("title is too long (max %d characters)", MaxTitleLength),
		}
	}

	goal := model.HealthGoal{
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Unit:        strings.TrimSpace(input.Unit),
		Status:      model.GoalStatusActive,
	}

	if strings.TrimSpace(input.TargetValue) != "" {
		v, err := ParseNumber(input.TargetValue)
		if err != nil {
			return model.HealthGoal{}, invalidNumber("target_value")
		}
		goal.TargetValue = &v
	}

	if strings.TrimSpace(input.CurrentValue) != "" {
		v, err := ParseNumber(input.CurrentValue)
		if err != nil {
			return model.HealthGoal{}, invalidNumber("current_value")
		}
		goal.CurrentValue = v
	}

	if strings.TrimSpace(input.TargetDate) != "" {
		d, err := model.ParseDate(input.TargetDate)
		if err != nil {
			return model.HealthGoal{}, &ValidationError{Field: "target_date", Code: CodeInvalidDate, Msg: "target date must be a valid YYYY-MM-DD date"}
		}
		goal.TargetDate = &d
	}

	return goal, nil
}

// ValidateProgressValue parses the value of an "update progress" action.
func ValidateProgressValue(raw string) (float64, error) {
	v, err := ParseNumber(raw)
	if err != nil {
		return 0, invalidNumber("current_value")
	}
	return v, nil
}

func invalidNumber(field string) *ValidationError {
	return &ValidationError{Field: field, Code: CodeInvalidNumber, Msg: "must be a number"}
}
