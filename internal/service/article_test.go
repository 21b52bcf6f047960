package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/healthpath/portal/internal/cache"
	"github.com/healthpath/portal/internal/db/dbtest"
	"github.com/healthpath/portal/internal/model"
	"github.com/healthpath/portal/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingArticleRepo struct {
	repository.ArticleRepository
	mu    sync.Mutex
	lists int
}

func (r *countingArticleRepo) List(ctx context.Context) ([]model.HealthArticle, error) {
	r.mu.Lock()
	r.lists++
	r.mu.Unlock()
	return r.ArticleRepository.List(ctx)
}

// mapCache stores values by reference, which is enough to observe hits.
type mapCache struct {
	mu   sync.Mutex
	data map[string][]model.HealthArticle
}

func (c *mapCache) Get(_ context.Context, key string, dst any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if !ok {
		return cache.ErrMiss
	}
	*dst.(*[]model.HealthArticle) = v
	return nil
}

func (c *mapCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value.([]model.HealthArticle)
	return nil
}

func (c *mapCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

func newArticleFixture(t *testing.T) (*ArticleService, *countingArticleRepo) {
	t.Helper()
	database := dbtest.New(t)
	writer := repository.NewArticleWriter(database)
	ctx := context.Background()

	articles := []model.HealthArticle{
		{Slug: "box-breathing", Title: "Box breathing", Category: "mental-health", Content: "Breathe in for four.", PublishedAt: time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC)},
		{Slug: "protein-basics", Title: "Protein basics", Category: "nutrition", Content: "# Protein\n\nEat **enough**.", PublishedAt: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)},
		{Slug: "fiber", Title: "Fiber", Category: "nutrition", Content: "Vegetables.", PublishedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	for i := range articles {
		require.NoError(t, writer.Upsert(ctx, &articles[i]))
	}

	repo := &countingArticleRepo{ArticleRepository: repository.NewArticleRepository(database)}
	return NewArticleService(repo, &mapCache{data: map[string][]model.HealthArticle{}}, time.Minute), repo
}

func TestArticleService_Articles(t *testing.T) {
	svc, _ := newArticleFixture(t)
	ctx := context.Background()

	for _, category := range []string{"", "all", "ALL"} {
		articles, err := svc.Articles(ctx, category)
		require.NoError(t, err)
		require.Len(t, articles, 3, category)
		assert.Equal(t, "box-breathing", articles[0].Slug)
		assert.Equal(t, 1, articles[0].ReadTime)
	}

	nutrition, err := svc.Articles(ctx, "nutrition")
	require.NoError(t, err)
	require.Len(t, nutrition, 2)
	assert.Equal(t, "protein-basics", nutrition[0].Slug)
	assert.Equal(t, "fiber", nutrition[1].Slug)

	none, err := svc.Articles(ctx, "cardiology")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestArticleService_ReadsThroughCache(t *testing.T) {
	svc, repo := newArticleFixture(t)
	ctx := context.Background()

	_, err := svc.Articles(ctx, "")
	require.NoError(t, err)
	_, err = svc.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.lists)

	require.NoError(t, svc.Invalidate(ctx))
	_, err = svc.Articles(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 2, repo.lists)
}

func TestArticleService_Categories(t *testing.T) {
	svc, _ := newArticleFixture(t)

	categories, err := svc.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Category{
		{Slug: "all", Label: "All", Count: 3},
		{Slug: "mental-health", Label: "Mental Health", Count: 1},
		{Slug: "nutrition", Label: "Nutrition", Count: 2},
	}, categories)
}

func TestArticleService_Article(t *testing.T) {
	svc, _ := newArticleFixture(t)
	ctx := context.Background()

	article, err := svc.Article(ctx, "protein-basics")
	require.NoError(t, err)
	assert.Contains(t, article.HTMLContent, "<strong>enough</strong>")
	assert.Equal(t, 1, article.ReadTime)

	byID, err := svc.Article(ctx, article.ID)
	require.NoError(t, err)
	assert.Equal(t, "Protein basics", byID.Title)

	_, err = svc.Article(ctx, "missing")
	assert.ErrorIs(t, err, ErrArticleNotFound)
}

type brokenArticleRepo struct {
	repository.ArticleRepository
}

func (brokenArticleRepo) List(context.Context) ([]model.HealthArticle, error) {
	return nil, errors.New("disk I/O error")
}

func TestArticleService_StorageError(t *testing.T) {
	svc := NewArticleService(brokenArticleRepo{}, nil, time.Minute)

	_, err := svc.Articles(context.Background(), "")
	assert.True(t, IsStorageError(err))
}

func TestCategoryLabel(t *testing.T) {
	assert.Equal(t, "Mental Health", CategoryLabel("mental-health"))
	assert.Equal(t, "Sleep", CategoryLabel("sleep"))
	assert.Equal(t, "Heart Health", CategoryLabel("heart_health"))
}
