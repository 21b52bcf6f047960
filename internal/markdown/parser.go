package markdown

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
	"go.abhg.dev/goldmark/frontmatter"
)

const wordsPerMinute = 200

type Parser struct {
	md goldmark.Markdown
}

// NewParser renders GFM without raw HTML passthrough, so article bodies can
// be embedded in pages as-is.
func NewParser() *Parser {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Typographer,
			&frontmatter.Extender{},
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			goldmarkhtml.WithXHTML(),
		),
	)

	return &Parser{
		md: md,
	}
}

func (p *Parser) Render(source []byte) ([]byte, error) {
	var buf bytes.Buffer
	err := p.md.Convert(source, &buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Meta is the frontmatter block of an article file.
type Meta struct {
	Title    string `yaml:"title"`
	Slug     string `yaml:"slug"`
	Category string `yaml:"category"`
	Summary  string `yaml:"summary"`
	Author   string `yaml:"author"`
	Date     string `yaml:"date"`
}

// Document is an article file split into metadata and markdown body.
type Document struct {
	Meta        Meta
	Body        string
	PublishedAt time.Time
}

// ParseDocument reads the frontmatter of an article file. The body is
// returned as markdown; rendering happens when the article is served.
func (p *Parser) ParseDocument(source []byte) (*Document, error) {
	ctx := parser.NewContext()

	var discard bytes.Buffer
	err := p.md.Convert(source, &discard, parser.WithContext(ctx))
	if err != nil {
		return nil, err
	}

	doc := &Document{Body: strings.TrimSpace(stripFrontmatter(string(source)))}

	data := frontmatter.Get(ctx)
	if data == nil {
		return nil, fmt.Errorf("missing frontmatter")
	}
	err = data.Decode(&doc.Meta)
	if err != nil {
		return nil, fmt.Errorf("decode frontmatter: %w", err)
	}

	if doc.Meta.Title == "" {
		return nil, fmt.Errorf("frontmatter: title is required")
	}
	if doc.Meta.Category == "" {
		return nil, fmt.Errorf("frontmatter: category is required")
	}

	if doc.Meta.Date != "" {
		doc.PublishedAt, err = time.Parse("2006-01-02", doc.Meta.Date)
		if err != nil {
			return nil, fmt.Errorf("frontmatter: date must be YYYY-MM-DD: %w", err)
		}
	}

	return doc, nil
}

func stripFrontmatter(source string) string {
	normalized := strings.ReplaceAll(source, "\r\n", "\n")
	if !strings.HasPrefix(normalized, "---\n") {
		return normalized
	}
	rest := normalized[len("---\n"):]
	end := strings.Index(rest, "\n---")
	if end < 0 {
		return normalized
	}
	rest = rest[end+len("\n---"):]
	return strings.TrimPrefix(rest, "\n")
}

// ReadTime estimates reading minutes at 200 words per minute, never less
// than one.
func ReadTime(content string) int {
	words := len(strings.Fields(content))
	minutes := int(math.Ceil(float64(words) / wordsPerMinute))
	if minutes < 1 {
		return 1
	}
	return minutes
}
