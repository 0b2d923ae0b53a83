package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
)

// PreviewOptions controls the goldmark engine used by a Previewer.
type PreviewOptions struct {
	// Extensions names goldmark extensions. Empty selects gfm, linkify and tasklist.
	Extensions []string
	HardWraps  bool
	// Unsafe lets raw HTML in the source through to the output.
	Unsafe bool
}

// Previewer renders article bodies as full markdown. It is stateless and safe
// for concurrent use.
type Previewer struct {
	engine goldmark.Markdown
}

// NewPreviewer builds a previewer. Raw HTML is omitted unless opts.Unsafe is set.
func NewPreviewer(opts PreviewOptions) *Previewer {
	return &Previewer{engine: newGoldmarkEngine(opts)}
}

// Render converts markdown into HTML.
func (p *Previewer) Render(content string) (string, error) {
	var buf bytes.Buffer
	if err := p.engine.Convert([]byte(content), &buf); err != nil {
		return "", fmt.Errorf("markdown preview: %w", err)
	}
	return buf.String(), nil
}

func newGoldmarkEngine(opts PreviewOptions) goldmark.Markdown {
	parserOptions := []parser.Option{
		parser.WithAutoHeadingID(),
	}

	rendererOptions := []renderer.Option{}
	if opts.HardWraps {
		rendererOptions = append(rendererOptions, html.WithHardWraps())
	}
	if opts.Unsafe {
		rendererOptions = append(rendererOptions, html.WithUnsafe())
	}

	engineOptions := []goldmark.Option{
		goldmark.WithParserOptions(parserOptions...),
	}
	if len(rendererOptions) > 0 {
		engineOptions = append(engineOptions, goldmark.WithRendererOptions(rendererOptions...))
	}
	if exts := collectExtensions(opts.Extensions); len(exts) > 0 {
		engineOptions = append(engineOptions, goldmark.WithExtensions(exts...))
	}

	return goldmark.New(engineOptions...)
}

var extensionRegistry = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"tables":        extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"autolink":      extension.Linkify,
	"tasklist":      extension.TaskList,
	"definition":    extension.DefinitionList,
	"footnote":      extension.Footnote,
}

// unknown names are skipped
func collectExtensions(names []string) []goldmark.Extender {
	if len(names) == 0 {
		return []goldmark.Extender{
			extension.GFM,
			extension.Linkify,
			extension.TaskList,
		}
	}

	var extenders []goldmark.Extender
	seen := map[string]struct{}{}

	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		ext, ok := extensionRegistry[key]
		if !ok {
			continue
		}
		extenders = append(extenders, ext)
		seen[key] = struct{}{}
	}

	return extenders
}
