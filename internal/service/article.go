package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/healthpath/portal/internal/cache"
	"github.com/healthpath/portal/internal/markdown"
	"github.com/healthpath/portal/internal/model"
	"github.com/healthpath/portal/internal/repository"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	CategoryAll = "all"

	articlesCacheKey = "articles:all"
)

var ErrArticleNotFound = errors.New("article not found")

type Category struct {
	Slug  string `json:"slug"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

type ArticleService struct {
	repo     repository.ArticleRepository
	cache    cache.Cache
	cacheTTL time.Duration
	parser   *markdown.Parser
}

func NewArticleService(repo repository.ArticleRepository, c cache.Cache, cacheTTL time.Duration) *ArticleService {
	if c == nil {
		c = cache.Noop{}
	}
	return &ArticleService{
		repo:     repo,
		cache:    c,
		cacheTTL: cacheTTL,
		parser:   markdown.NewParser(),
	}
}

// all reads the full list through the cache. Cache failures are logged and
// the repository answers instead.
func (s *ArticleService) all(ctx context.Context) ([]model.HealthArticle, error) {
	var articles []model.HealthArticle

	err := s.cache.Get(ctx, articlesCacheKey, &articles)
	if err == nil {
		return articles, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		slog.Warn("article cache read failed", "error", err)
	}

	articles, err = s.repo.List(ctx)
	if err != nil {
		return nil, storageError("list articles", err)
	}

	for i := range articles {
		articles[i].ReadTime = markdown.ReadTime(articles[i].Content)
	}

	err = s.cache.Set(ctx, articlesCacheKey, articles, s.cacheTTL)
	if err != nil {
		slog.Warn("article cache write failed", "error", err)
	}

	return articles, nil
}

// Articles returns articles newest first. An empty category or "all"
// disables the filter.
func (s *ArticleService) Articles(ctx context.Context, category string) ([]model.HealthArticle, error) {
	articles, err := s.all(ctx)
	if err != nil {
		return nil, err
	}

	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" || category == CategoryAll {
		return articles, nil
	}

	filtered := make([]model.HealthArticle, 0, len(articles))
	for _, a := range articles {
		if strings.EqualFold(a.Category, category) {
			filtered = append(filtered, a)
		}
	}
	return filtered, nil
}

// Categories returns "all" followed by each category in the order it first
// appears in the article list.
func (s *ArticleService) Categories(ctx context.Context) ([]Category, error) {
	articles, err := s.all(ctx)
	if err != nil {
		return nil, err
	}

	categories := []Category{{Slug: CategoryAll, Label: "All", Count: len(articles)}}
	index := map[string]int{}

	for _, a := range articles {
		slug := strings.ToLower(a.Category)
		i, ok := index[slug]
		if !ok {
			categories = append(categories, Category{Slug: slug, Label: CategoryLabel(slug)})
			i = len(categories) - 1
			index[slug] = i
		}
		categories[i].Count++
	}

	return categories, nil
}

// CategoryLabel turns a slug like "mental-health" into "Mental Health".
func CategoryLabel(slug string) string {
	words := strings.FieldsFunc(slug, func(r rune) bool {
		return r == '-' || r == '_' || r == ' '
	})
	return cases.Title(language.English).String(strings.Join(words, " "))
}

// Article returns one article, by id or slug, with its HTML rendered.
func (s *ArticleService) Article(ctx context.Context, id string) (*model.HealthArticle, error) {
	article, err := s.repo.ByID(ctx, id)
	if errors.Is(err, repository.ErrArticleNotFound) {
		return nil, ErrArticleNotFound
	}
	if err != nil {
		return nil, storageError("get article", err)
	}

	html, err := s.parser.Render([]byte(article.Content))
	if err != nil {
		slog.Error("failed to render article", "error", err, "article_id", article.ID)
	}

	article.HTMLContent = string(html)
	article.ReadTime = markdown.ReadTime(article.Content)

	return article, nil
}

// Invalidate drops the cached list. The seed command calls it after loading.
func (s *ArticleService) Invalidate(ctx context.Context) error {
	return s.cache.Delete(ctx, articlesCacheKey)
}
