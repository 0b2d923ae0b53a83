package markdown

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/goliatone/go-sitecms/internal/site"
)

var ErrDuplicateArticle = errors.New("markdown: duplicate article id")

// LoaderConfig configures how markdown files are discovered.
type LoaderConfig struct {
	// Pattern limits discovered files to those matching the glob (defaults to "*.md").
	Pattern string
	// Recursive controls whether sub-directories are traversed.
	Recursive bool
}

// Loader turns markdown files into articles.
type Loader struct {
	fs        fs.FS
	pattern   string
	recursive bool
}

// NewLoader constructs a Loader over filesystem.
func NewLoader(filesystem fs.FS, cfg LoaderConfig) *Loader {
	pattern := cfg.Pattern
	if strings.TrimSpace(pattern) == "" {
		pattern = "*.md"
	}
	return &Loader{
		fs:        filesystem,
		pattern:   pattern,
		recursive: cfg.Recursive,
	}
}

// LoadArticles reads every *.md file directly under dir.
func LoadArticles(ctx context.Context, dir string) ([]site.Article, error) {
	return NewLoader(os.DirFS(dir), LoaderConfig{}).LoadDirectory(ctx, ".")
}

// LoadFile reads and parses a single markdown article.
func (l *Loader) LoadFile(ctx context.Context, name string) (site.Article, error) {
	if err := ctx.Err(); err != nil {
		return site.Article{}, err
	}

	data, err := fs.ReadFile(l.fs, name)
	if err != nil {
		return site.Article{}, fmt.Errorf("markdown loader read %s: %w", name, err)
	}

	modified := time.Now()
	if info, err := fs.Stat(l.fs, name); err == nil && !info.ModTime().IsZero() {
		modified = info.ModTime()
	}

	return BuildArticle(name, data, modified)
}

// LoadDirectory parses the matching files under dir in path order. Two files
// resolving to the same article id are rejected.
func (l *Loader) LoadDirectory(ctx context.Context, dir string) ([]site.Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	root := path.Clean(dir)
	var names []string

	walkErr := fs.WalkDir(l.fs, root, func(name string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if name != root && !l.recursive {
				return fs.SkipDir
			}
			return nil
		}
		if matched, _ := path.Match(l.pattern, path.Base(name)); matched {
			names = append(names, name)
		}
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("markdown loader walk %s: %w", root, walkErr)
	}

	sort.Strings(names)

	articles := make([]site.Article, 0, len(names))
	sources := make(map[string]string, len(names))
	for _, name := range names {
		article, err := l.LoadFile(ctx, name)
		if err != nil {
			return nil, err
		}
		if prev, ok := sources[article.ID]; ok {
			return nil, fmt.Errorf("%w: %s in %s and %s", ErrDuplicateArticle, article.ID, prev, name)
		}
		sources[article.ID] = name
		articles = append(articles, article)
	}
	return articles, nil
}
