package handler

import (
	"net/http"

	"github.com/healthpath/portal/internal/db"
	"github.com/healthpath/portal/internal/ui"
	"github.com/jmoiron/sqlx"
)

type HealthHandler struct {
	db *sqlx.DB
}

func NewHealthHandler(database *sqlx.DB) *HealthHandler {
	return &HealthHandler{db: database}
}

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	err := db.Ping(r.Context(), h.db)
	if err != nil {
		ui.JSON(w, r, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "database": "down"})
		return
	}

	ui.JSON(w, r, http.StatusOK, map[string]string{"status": "ok", "database": "up"})
}

func NotFound(w http.ResponseWriter, r *http.Request) {
	ui.Error(w, r, http.StatusNotFound, ui.ErrorBody{Code: "not_found", Message: "No such endpoint."})
}
