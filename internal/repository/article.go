package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/healthpath/portal/internal/model"
	"github.com/jmoiron/sqlx"
)

var ErrArticleNotFound = errors.New("article not found")

// ArticleRepository is the read side used by the portal.
type ArticleRepository interface {
	List(ctx context.Context) ([]model.HealthArticle, error)
	ByID(ctx context.Context, id string) (*model.HealthArticle, error)
}

// ArticleWriter loads reference articles. Only the seed command uses it.
type ArticleWriter interface {
	Upsert(ctx context.Context, article *model.HealthArticle) error
}

type articleRepository struct {
	db *sqlx.DB
}

func NewArticleRepository(db *sqlx.DB) ArticleRepository {
	return &articleRepository{db: db}
}

func NewArticleWriter(db *sqlx.DB) ArticleWriter {
	return &articleRepository{db: db}
}

const articleColumns = `id, slug, title, category, summary, content, author, published_at`

// List returns every article, most recently published first.
func (r *articleRepository) List(ctx context.Context) ([]model.HealthArticle, error) {
	articles := []model.HealthArticle{}
	query := `SELECT ` + articleColumns + ` FROM health_articles ORDER BY published_at DESC, slug`

	err := r.db.SelectContext(ctx, &articles, query)
	if err != nil {
		return nil, err
	}

	return articles, nil
}

func (r *articleRepository) ByID(ctx context.Context, id string) (*model.HealthArticle, error) {
	article := &model.HealthArticle{}
	query := `SELECT ` + articleColumns + ` FROM health_articles WHERE id = $1 OR slug = $1`

	err := r.db.GetContext(ctx, article, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrArticleNotFound
	}
	if err != nil {
		return nil, err
	}

	return article, nil
}

// Upsert inserts the article or replaces the one with the same slug.
func (r *articleRepository) Upsert(ctx context.Context, article *model.HealthArticle) error {
	if article.ID == "" {
		article.ID = uuid.New().String()
	}

	query := `INSERT INTO health_articles (` + articleColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          ON CONFLICT (slug) DO UPDATE SET
	              title = excluded.title,
	              category = excluded.category,
	              summary = excluded.summary,
	              content = excluded.content,
	              author = excluded.author,
	              published_at = excluded.published_at
	          RETURNING id`

	return r.db.GetContext(ctx, &article.ID, query,
		article.ID,
		article.Slug,
		article.Title,
		article.Category,
		article.Summary,
		article.Content,
		article.Author,
		article.PublishedAt,
	)
}
