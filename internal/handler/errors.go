package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/healthpath/portal/internal/ctxkeys"
	"github.com/healthpath/portal/internal/lifecycle"
	"github.com/healthpath/portal/internal/service"
	"github.com/healthpath/portal/internal/ui"
)

const maxBodyBytes = 1 << 20

var errBadRequest = errors.New("malformed request body")

// decode reads a JSON body of at most 1 MB into dst.
func decode(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	err := json.NewDecoder(r.Body).Decode(dst)
	if errors.Is(err, io.EOF) {
		return fmt.Errorf("empty body: %w", errBadRequest)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", err.Error(), errBadRequest)
	}
	return nil
}

// formValue accepts a JSON string, number or null and keeps the raw text,
// so number fields get the same parsing as HTML form input.
type formValue string

func (v *formValue) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*v = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		err := json.Unmarshal(b, &s)
		if err != nil {
			return err
		}
		*v = formValue(s)
		return nil
	}
	*v = formValue(b)
	return nil
}

// writeError maps service and lifecycle errors to a status and error body.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, body := classify(err)

	if status >= http.StatusInternalServerError {
		user := ctxkeys.User(r.Context())
		userID := ""
		if user != nil {
			userID = user.ID
		}
		slog.Error("request failed",
			"error", err,
			"path", r.URL.Path,
			"user_id", userID,
			"request_id", ctxkeys.RequestID(r.Context()),
		)
	}

	ui.Error(w, r, status, body)
}

func classify(err error) (int, ui.ErrorBody) {
	var verr *lifecycle.ValidationError
	var ferr *service.FieldError

	switch {
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity, ui.ErrorBody{Code: string(verr.Code), Message: verr.Msg, Field: verr.Field}
	case errors.As(err, &ferr):
		return http.StatusUnprocessableEntity, ui.ErrorBody{Code: "invalid_field", Message: ferr.Message, Field: ferr.Field}
	case errors.Is(err, errBadRequest):
		return http.StatusBadRequest, ui.ErrorBody{Code: "bad_request", Message: "The request body could not be read."}

	case errors.Is(err, service.ErrInvalidEmail):
		return http.StatusUnprocessableEntity, ui.ErrorBody{Code: "invalid_email", Message: err.Error(), Field: "email"}
	case errors.Is(err, service.ErrWeakPassword):
		return http.StatusUnprocessableEntity, ui.ErrorBody{Code: "weak_password", Message: err.Error(), Field: "password"}
	case errors.Is(err, service.ErrInvalidRole):
		return http.StatusUnprocessableEntity, ui.ErrorBody{Code: "invalid_role", Message: err.Error(), Field: "role"}
	case errors.Is(err, service.ErrInvalidCurrentPassword):
		return http.StatusUnprocessableEntity, ui.ErrorBody{Code: "invalid_current_password", Message: err.Error(), Field: "current_password"}
	case errors.Is(err, service.ErrEmailAlreadyExists):
		return http.StatusConflict, ui.ErrorBody{Code: "email_taken", Message: "An account with this email already exists.", Field: "email"}
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, ui.ErrorBody{Code: "invalid_credentials", Message: "Invalid email or password."}
	case errors.Is(err, service.ErrInvalidSession):
		return http.StatusUnauthorized, ui.ErrorBody{Code: "unauthenticated", Message: "Please sign in to continue."}

	case errors.Is(err, service.ErrGoalNotFound):
		return http.StatusNotFound, ui.ErrorBody{Code: "not_found", Message: "Goal not found."}
	case errors.Is(err, service.ErrArticleNotFound):
		return http.StatusNotFound, ui.ErrorBody{Code: "not_found", Message: "Article not found."}
	case errors.Is(err, service.ErrUserNotFound):
		return http.StatusNotFound, ui.ErrorBody{Code: "not_found", Message: "Account not found."}
	case errors.Is(err, service.ErrGoalNotActive):
		return http.StatusConflict, ui.ErrorBody{Code: "goal_not_active", Message: "Only active goals can record progress."}
	case errors.Is(err, lifecycle.ErrTerminal):
		return http.StatusConflict, ui.ErrorBody{Code: "goal_terminal", Message: "This goal can no longer change status."}

	case service.IsStorageError(err):
		return http.StatusServiceUnavailable, ui.ErrorBody{Code: "storage_unavailable", Message: "We couldn't save or load your data. Please try again."}
	}

	return http.StatusInternalServerError, ui.ErrorBody{Code: "internal", Message: "Something went wrong."}
}
