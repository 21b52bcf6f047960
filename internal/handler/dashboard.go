package handler

import (
	"log/slog"
	"net/http"

	"github.com/healthpath/portal/internal/ctxkeys"
	"github.com/healthpath/portal/internal/lifecycle"
	"github.com/healthpath/portal/internal/model"
	"github.com/healthpath/portal/internal/service"
	"github.com/healthpath/portal/internal/ui"
)

const dashboardArticles = 3

type DashboardHandler struct {
	goalService    *service.GoalService
	articleService *service.ArticleService
}

func NewDashboardHandler(goalService *service.GoalService, articleService *service.ArticleService) *DashboardHandler {
	return &DashboardHandler{
		goalService:    goalService,
		articleService: articleService,
	}
}

type dashboardResponse struct {
	User           *model.User           `json:"user"`
	Summary        lifecycle.Summary     `json:"summary"`
	ActiveGoals    []service.GoalView    `json:"active_goals"`
	LatestArticles []model.HealthArticle `json:"latest_articles"`
}

// Show returns the stat cards, active goals and the newest articles. The
// article list is optional: if it fails the dashboard still renders.
func (h *DashboardHandler) Show(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	goals, err := h.goalService.Goals(r.Context(), user.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := dashboardResponse{
		User:           user,
		ActiveGoals:    []service.GoalView{},
		LatestArticles: []model.HealthArticle{},
	}

	stored := make([]model.HealthGoal, len(goals))
	for i, g := range goals {
		stored[i] = g.HealthGoal
		if g.Status == model.GoalStatusActive {
			resp.ActiveGoals = append(resp.ActiveGoals, g)
		}
	}
	resp.Summary = lifecycle.Summarize(stored, h.goalService.Now())

	articles, err := h.articleService.Articles(r.Context(), service.CategoryAll)
	if err != nil {
		slog.Warn("dashboard articles unavailable", "error", err)
	} else {
		if len(articles) > dashboardArticles {
			articles = articles[:dashboardArticles]
		}
		for _, a := range articles {
			a.Content = ""
			resp.LatestArticles = append(resp.LatestArticles, a)
		}
	}

	ui.JSON(w, r, http.StatusOK, resp)
}
