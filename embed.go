package portal

import "embed"

// ArticlesFS holds the bundled health library. "do seed" loads it into the
// health_articles table.
//
//go:embed content/articles/*.md
var ArticlesFS embed.FS
