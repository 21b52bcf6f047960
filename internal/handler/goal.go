package handler

import (
	"fmt"
	"net/http"

	"github.com/healthpath/portal/internal/ctxkeys"
	"github.com/healthpath/portal/internal/lifecycle"
	"github.com/healthpath/portal/internal/model"
	"github.com/healthpath/portal/internal/service"
	"github.com/healthpath/portal/internal/ui"
)

type GoalHandler struct {
	goalService *service.GoalService
}

func NewGoalHandler(goalService *service.GoalService) *GoalHandler {
	return &GoalHandler{
		goalService: goalService,
	}
}

type goalForm struct {
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	TargetValue  formValue `json:"target_value"`
	CurrentValue formValue `json:"current_value"`
	Unit         string    `json:"unit"`
	TargetDate   string    `json:"target_date"`
}

// List returns the user's goals newest first. ?status= narrows the list to
// one status.
func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var status model.GoalStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		parsed, err := model.ParseGoalStatus(raw)
		if err != nil {
			writeError(w, r, &lifecycle.ValidationError{Field: "status", Code: "invalid_status", Msg: err.Error()})
			return
		}
		status = parsed
	}

	goals, err := h.goalService.GoalsWithStatus(r.Context(), user.ID, status)
	if err != nil {
		writeError(w, r, err)
		return
	}

	ui.JSON(w, r, http.StatusOK, map[string]any{"goals": goals})
}

func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var in goalForm
	err := decode(w, r, &in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	goal, err := h.goalService.Create(r.Context(), user.ID, lifecycle.NewGoalInput{
		Title:        in.Title,
		Description:  in.Description,
		TargetValue:  string(in.TargetValue),
		CurrentValue: string(in.CurrentValue),
		Unit:         in.Unit,
		TargetDate:   in.TargetDate,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	ui.JSON(w, r, http.StatusCreated, goal)
}

func (h *GoalHandler) UpdateProgress(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var in struct {
		CurrentValue formValue `json:"current_value"`
	}
	err := decode(w, r, &in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	value, err := lifecycle.ValidateProgressValue(string(in.CurrentValue))
	if err != nil {
		writeError(w, r, err)
		return
	}

	goal, err := h.goalService.UpdateProgress(r.Context(), user.ID, r.PathValue("id"), value)
	if err != nil {
		writeError(w, r, err)
		return
	}

	ui.JSON(w, r, http.StatusOK, goal)
}

func (h *GoalHandler) Complete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	goal, err := h.goalService.Complete(r.Context(), user.ID, r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	ui.JSON(w, r, http.StatusOK, goal)
}

func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	err := h.goalService.Delete(r.Context(), user.ID, r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	ui.NoContent(w)
}

// Export downloads every goal as a JSON file.
func (h *GoalHandler) Export(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	export, err := h.goalService.Export(r.Context(), user.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	filename := fmt.Sprintf("health-goals-%s.json", export.ExportedAt[:len("2006-01-02")])
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	ui.JSON(w, r, http.StatusOK, export)
}
