package markdown

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/adrg/frontmatter"

	"github.com/goliatone/go-sitecms/internal/identity"
	"github.com/goliatone/go-sitecms/internal/site"
)

var (
	ErrTitleRequired  = errors.New("markdown: front matter title required")
	ErrInvalidArticle = errors.New("markdown: article invalid")
)

// FrontMatter holds the article metadata recognised at the top of a file.
type FrontMatter struct {
	ID       string    `yaml:"id"`
	Title    string    `yaml:"title"`
	Slug     string    `yaml:"slug"`
	Date     time.Time `yaml:"date"`
	Category string    `yaml:"category"`
	Excerpt  string    `yaml:"excerpt"`
	Summary  string    `yaml:"summary"`
	Status   string    `yaml:"status"`
	Draft    bool      `yaml:"draft"`
}

// ParseFrontMatter splits source into its metadata and the markdown body
// without delimiters.
func ParseFrontMatter(source []byte) (FrontMatter, []byte, error) {
	var meta FrontMatter
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return FrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	return meta, body, nil
}

// BuildArticle turns a markdown file into an article. A missing slug comes from
// the title, a missing id is derived from the slug, and a missing date falls
// back to modified.
func BuildArticle(path string, source []byte, modified time.Time) (site.Article, error) {
	meta, body, err := ParseFrontMatter(source)
	if err != nil {
		return site.Article{}, fmt.Errorf("%s: %w", path, err)
	}

	title := strings.TrimSpace(meta.Title)
	if title == "" {
		return site.Article{}, fmt.Errorf("%s: %w", path, ErrTitleRequired)
	}

	article := site.Article{
		Title:    title,
		Category: strings.TrimSpace(meta.Category),
		Excerpt:  strings.TrimSpace(meta.Excerpt),
		Content:  strings.TrimSpace(string(body)),
		Status:   articleStatus(meta),
	}
	if article.Excerpt == "" {
		article.Excerpt = strings.TrimSpace(meta.Summary)
	}
	article.SetSlug(meta.Slug)

	article.ID = strings.TrimSpace(meta.ID)
	if article.ID == "" {
		article.ID = identity.ArticleUUID(article.Slug).String()
	}

	date := meta.Date
	if date.IsZero() {
		date = modified
	}
	article.Date = date.Format(site.DateLayout)

	if err := article.Validate(); err != nil {
		return site.Article{}, fmt.Errorf("%s: %w: %w", path, ErrInvalidArticle, err)
	}
	return article, nil
}

// explicit status wins, then the draft flag, otherwise published
func articleStatus(meta FrontMatter) site.ArticleStatus {
	if status := strings.ToLower(strings.TrimSpace(meta.Status)); status != "" {
		return site.ArticleStatus(status)
	}
	if meta.Draft {
		return site.StatusDraft
	}
	return site.StatusPublished
}
