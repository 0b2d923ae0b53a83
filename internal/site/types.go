package site

import (
	"cmp"
	"slices"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// DateLayout is the storage format of Article.Date.
const DateLayout = "2006-01-02"

// Brand holds the site identity shown in the header.
type Brand struct {
	Name         string `json:"name"`
	Tagline      string `json:"tagline"`
	PrimaryColor string `json:"primary_color"`
	AccentColor  string `json:"accent_color"`
}

// PageConfig describes one navigable page.
type PageConfig struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Path    string `json:"path"`
	Enabled bool   `json:"enabled"`
	Order   int    `json:"order"`
}

// Settings is the singleton site configuration. AdminPasswordHash is an
// encoded hash understood by the auth package, never a plaintext password.
type Settings struct {
	Brand             Brand           `json:"brand"`
	Features          map[string]bool `json:"features"`
	Pages             []PageConfig    `json:"pages"`
	AdminPasswordHash string          `json:"admin_password_hash"`
}

// FeatureEnabled reports whether the named toggle is on. Unknown toggles are off.
func (s Settings) FeatureEnabled(name string) bool {
	return s.Features[name]
}

// EnabledPages returns the enabled pages ordered by Order, keeping stored
// order between equal values.
func (s Settings) EnabledPages() []PageConfig {
	pages := make([]PageConfig, 0, len(s.Pages))
	for _, page := range s.Pages {
		if page.Enabled {
			pages = append(pages, page)
		}
	}
	slices.SortStableFunc(pages, func(a, b PageConfig) int {
		return cmp.Compare(a.Order, b.Order)
	})
	return pages
}

func (s Settings) normalized() Settings {
	if s.Features == nil {
		s.Features = map[string]bool{}
	}
	if s.Pages == nil {
		s.Pages = []PageConfig{}
	}
	return s
}

// ArticleStatus is the editorial state of an article.
type ArticleStatus string

const (
	StatusDraft     ArticleStatus = "draft"
	StatusPublished ArticleStatus = "published"
	// StatusTrashed can be set by editors but has no lifecycle of its own;
	// deleting an article always removes it.
	StatusTrashed ArticleStatus = "trashed"
)

// Statuses lists every valid status.
func Statuses() []ArticleStatus {
	return []ArticleStatus{StatusDraft, StatusPublished, StatusTrashed}
}

// Article is a single blog entry. ID never changes after creation.
type Article struct {
	ID       string        `json:"id"`
	Title    string        `json:"title"`
	Slug     string        `json:"slug"`
	Date     string        `json:"date"`
	Category string        `json:"category"`
	Excerpt  string        `json:"excerpt"`
	Content  string        `json:"content"`
	Status   ArticleStatus `json:"status"`
}

// NewArticle returns an empty draft dated at now.
func NewArticle(id string, now time.Time) Article {
	return Article{
		ID:     id,
		Date:   now.Format(DateLayout),
		Status: StatusDraft,
	}
}

// Retitle changes the title. The slug follows the title while it is empty or
// still equal to the slug of the previous title; a manually set slug is kept.
func (a *Article) Retitle(title string) {
	if a.Slug == "" || a.Slug == Slugify(a.Title) {
		a.Slug = Slugify(title)
	}
	a.Title = title
}

// SetSlug overrides the slug. A blank value hands the slug back to the title.
func (a *Article) SetSlug(value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		a.Slug = Slugify(a.Title)
		return
	}
	a.Slug = NormalizeSlug(value)
}

// Validate checks the article invariants.
func (a Article) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.ID, validation.Required),
		validation.Field(&a.Status,
			validation.Required,
			validation.In(StatusDraft, StatusPublished, StatusTrashed),
		),
		validation.Field(&a.Slug, validation.By(validateSlug)),
		validation.Field(&a.Date, validation.Date(DateLayout)),
	)
}

// ArticlesData is the persisted article collection, in insertion order.
type ArticlesData struct {
	Articles []Article `json:"articles"`
}

// Find returns the article with id.
func (d ArticlesData) Find(id string) (Article, bool) {
	idx := slices.IndexFunc(d.Articles, func(a Article) bool { return a.ID == id })
	if idx < 0 {
		return Article{}, false
	}
	return d.Articles[idx], true
}

// FindBySlug returns the first article with slug.
func (d ArticlesData) FindBySlug(slug string) (Article, bool) {
	idx := slices.IndexFunc(d.Articles, func(a Article) bool { return a.Slug == slug })
	if idx < 0 {
		return Article{}, false
	}
	return d.Articles[idx], true
}

// Published returns published articles in collection order.
func (d ArticlesData) Published() []Article {
	out := make([]Article, 0, len(d.Articles))
	for _, article := range d.Articles {
		if article.Status == StatusPublished {
			out = append(out, article)
		}
	}
	return out
}

// Upsert replaces the article with the same id in place or appends it.
func (d *ArticlesData) Upsert(article Article) {
	for i := range d.Articles {
		if d.Articles[i].ID == article.ID {
			d.Articles[i] = article
			return
		}
	}
	d.Articles = append(d.Articles, article)
}

// Delete removes every article with id and reports how many were removed.
func (d *ArticlesData) Delete(id string) int {
	before := len(d.Articles)
	d.Articles = slices.DeleteFunc(d.Articles, func(a Article) bool { return a.ID == id })
	return before - len(d.Articles)
}

func (d ArticlesData) clone() ArticlesData {
	return ArticlesData{Articles: slices.Clone(d.Articles)}
}

func (d ArticlesData) normalized() ArticlesData {
	if d.Articles == nil {
		d.Articles = []Article{}
	}
	return d
}
