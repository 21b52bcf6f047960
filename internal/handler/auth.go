package handler

import (
	"net/http"
	"time"

	"github.com/healthpath/portal/internal/ctxkeys"
	"github.com/healthpath/portal/internal/model"
	"github.com/healthpath/portal/internal/service"
	"github.com/healthpath/portal/internal/ui"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type sessionResponse struct {
	User      *model.User `json:"user"`
	ExpiresAt time.Time   `json:"expires_at"`
	Token     string      `json:"token,omitempty"`
}

func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var in credentials
	err := decode(w, r, &in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.authService.SignUp(r.Context(), in.Email, in.Password, in.Role)
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.startSession(w, r, user, http.StatusCreated)
}

func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var in credentials
	err := decode(w, r, &in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.authService.SignIn(r.Context(), in.Email, in.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.startSession(w, r, user, http.StatusOK)
}

func (h *AuthHandler) startSession(w http.ResponseWriter, r *http.Request, user *model.User, status int) {
	token, expiresAt, err := h.authService.GenerateJWT(user)
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.authService.SetJWTCookie(w, token, expiresAt)
	ui.JSON(w, r, status, sessionResponse{User: user, ExpiresAt: expiresAt, Token: token})
}

func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	h.authService.ClearJWTCookie(w)
	ui.NoContent(w)
}

// Session reports the signed-in user, or 401.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	if user == nil {
		writeError(w, r, service.ErrInvalidSession)
		return
	}

	ui.JSON(w, r, http.StatusOK, sessionResponse{
		User:      user,
		ExpiresAt: ctxkeys.SessionExpiresAt(r.Context()),
	})
}
