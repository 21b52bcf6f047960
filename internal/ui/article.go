package ui

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"
	"github.com/healthpath/portal/internal/ctxkeys"
	"github.com/healthpath/portal/internal/model"
)

const readerStyle = `body{font-family:system-ui,sans-serif;max-width:42rem;margin:2rem auto;padding:0 1rem;line-height:1.6;color:#1f2937}
header p{color:#6b7280;font-size:.9rem}
.category{text-transform:uppercase;letter-spacing:.05em;font-size:.75rem;color:#047857}`

// ArticleReader is the standalone page for one article. HTMLContent must
// come from the markdown renderer, which drops raw HTML.
func ArticleReader(article *model.HealthArticle, categoryLabel string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		suffix := ""
		if cfg := ctxkeys.Config(ctx); cfg != nil && cfg.AppName != "" {
			suffix = " | " + cfg.AppName
		}

		_, err := fmt.Fprintf(w, `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s%s</title>
<style nonce="%s">%s</style>
</head>
<body>
<article>
<header>
<span class="category">%s</span>
<h1>%s</h1>
<p>%s · %d min read · %s</p>
</header>
`,
			html.EscapeString(article.Title),
			html.EscapeString(suffix),
			html.EscapeString(templ.GetNonce(ctx)),
			readerStyle,
			html.EscapeString(categoryLabel),
			html.EscapeString(article.Title),
			html.EscapeString(article.Author),
			article.ReadTime,
			article.PublishedAt.Format("January 2, 2006"),
		)
		if err != nil {
			return err
		}

		err = templ.Raw(article.HTMLContent).Render(ctx, w)
		if err != nil {
			return err
		}

		_, err = io.WriteString(w, "</article>\n</body>\n</html>\n")
		return err
	})
}
