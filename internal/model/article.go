package model

import (
	"time"
)

type HealthArticle struct {
	ID          string    `db:"id" json:"id"`
	Slug        string    `db:"slug" json:"slug"`
	Title       string    `db:"title" json:"title"`
	Category    string    `db:"category" json:"category"`
	Summary     string    `db:"summary" json:"summary"`
	Content     string    `db:"content" json:"content,omitempty"`
	Author      string    `db:"author" json:"author"`
	PublishedAt time.Time `db:"published_at" json:"published_at"`

	// Computed fields (not in database)
	HTMLContent string `db:"-" json:"html_content,omitempty"`
	ReadTime    int    `db:"-" json:"read_time"`
}
