package handler

import (
	"net/http"

	"github.com/healthpath/portal/internal/ctxkeys"
	"github.com/healthpath/portal/internal/service"
	"github.com/healthpath/portal/internal/ui"
)

type AccountHandler struct {
	authService *service.AuthService
	userService *service.UserService
}

func NewAccountHandler(authService *service.AuthService, userService *service.UserService) *AccountHandler {
	return &AccountHandler{
		authService: authService,
		userService: userService,
	}
}

func (h *AccountHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var in struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	err := decode(w, r, &in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	err = h.userService.UpdatePassword(r.Context(), user.ID, in.CurrentPassword, in.NewPassword)
	if err != nil {
		writeError(w, r, err)
		return
	}

	ui.NoContent(w)
}

// DeleteAccount removes the user with their profile and goals, then signs
// them out.
func (h *AccountHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	err := h.userService.DeleteAccount(r.Context(), user.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.authService.ClearJWTCookie(w)
	ui.NoContent(w)
}
