package cmd

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	portal "github.com/healthpath/portal"
	"github.com/healthpath/portal/internal/app"
	"github.com/healthpath/portal/internal/content"
	"github.com/healthpath/portal/internal/repository"
	"github.com/spf13/cobra"
)

func SeedCmd() *cobra.Command {
	var dir string

	c := &cobra.Command{
		Use:   "seed",
		Short: "Load the health article library into the database",
		Long: "Parses markdown articles with frontmatter and upserts them by slug.\n" +
			"Reads --dir, else CONTENT_PATH when it exists on disk, else the library\n" +
			"bundled into the binary.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			if dir == "" {
				if info, err := os.Stat(cfg.ContentPath); err == nil && info.IsDir() {
					dir = cfg.ContentPath
				}
			}

			var fsys fs.FS = portal.ArticlesFS
			root := "content/articles"
			if dir != "" {
				fsys = os.DirFS(dir)
				root = "."
			}

			articles, err := content.LoadArticles(fsys, root)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			a, err := app.New(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			writer := repository.NewArticleWriter(a.DB)
			for i := range articles {
				if err := writer.Upsert(ctx, &articles[i]); err != nil {
					return fmt.Errorf("seed %s: %w", articles[i].Slug, err)
				}
			}

			if err := a.ArticleService.Invalidate(ctx); err != nil {
				slog.Warn("failed to invalidate article cache", "error", err)
			}

			slog.Info("articles seeded", "count", len(articles))
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d articles\n", len(articles))
			return nil
		},
	}
	c.Flags().StringVar(&dir, "dir", "", "directory of markdown articles (default CONTENT_PATH)")
	return c
}
