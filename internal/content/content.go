// Package content loads the markdown health library into article records.
package content

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/healthpath/portal/internal/markdown"
	"github.com/healthpath/portal/internal/model"
)

// LoadArticles parses every *.md file under dir in fsys. A file without a
// slug in its frontmatter uses its file name.
func LoadArticles(fsys fs.FS, dir string) ([]model.HealthArticle, error) {
	paths, err := fs.Glob(fsys, path.Join(dir, "*.md"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	parser := markdown.NewParser()
	articles := make([]model.HealthArticle, 0, len(paths))
	seen := map[string]string{}

	for _, p := range paths {
		source, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}

		doc, err := parser.ParseDocument(source)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", p, err)
		}

		slug := doc.Meta.Slug
		if slug == "" {
			slug = strings.TrimSuffix(path.Base(p), ".md")
		}
		if other, ok := seen[slug]; ok {
			return nil, fmt.Errorf("duplicate slug %q in %s and %s", slug, other, p)
		}
		seen[slug] = p

		articles = append(articles, model.HealthArticle{
			Slug:        slug,
			Title:       doc.Meta.Title,
			Category:    strings.ToLower(doc.Meta.Category),
			Summary:     doc.Meta.Summary,
			Content:     doc.Body,
			Author:      doc.Meta.Author,
			PublishedAt: doc.PublishedAt,
		})
	}

	return articles, nil
}
