package handler

import (
	"net/http"

	"github.com/healthpath/portal/internal/service"
	"github.com/healthpath/portal/internal/ui"
)

type ArticleHandler struct {
	articleService *service.ArticleService
}

func NewArticleHandler(articleService *service.ArticleService) *ArticleHandler {
	return &ArticleHandler{
		articleService: articleService,
	}
}

// List returns articles newest first, filtered by ?category= unless it is
// empty or "all".
func (h *ArticleHandler) List(w http.ResponseWriter, r *http.Request) {
	articles, err := h.articleService.Articles(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	ui.JSON(w, r, http.StatusOK, map[string]any{"articles": articles})
}

func (h *ArticleHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.articleService.Categories(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	ui.JSON(w, r, http.StatusOK, map[string]any{"categories": categories})
}

func (h *ArticleHandler) Show(w http.ResponseWriter, r *http.Request) {
	article, err := h.articleService.Article(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	ui.JSON(w, r, http.StatusOK, article)
}

// Read renders the article as a standalone HTML page.
func (h *ArticleHandler) Read(w http.ResponseWriter, r *http.Request) {
	article, err := h.articleService.Article(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	ui.Render(w, r, ui.ArticleReader(article, service.CategoryLabel(article.Category)))
}
