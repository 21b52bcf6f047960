package handler

import (
	"net/http"

	"github.com/healthpath/portal/internal/ctxkeys"
	"github.com/healthpath/portal/internal/service"
	"github.com/healthpath/portal/internal/ui"
)

type ProfileHandler struct {
	profileService *service.ProfileService
}

func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
	}
}

func (h *ProfileHandler) Show(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	profile, err := h.profileService.ByUserID(r.Context(), user.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	ui.JSON(w, r, http.StatusOK, profile)
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var in service.ProfileInput
	err := decode(w, r, &in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	profile, err := h.profileService.Save(r.Context(), user.ID, in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	ui.JSON(w, r, http.StatusOK, profile)
}
