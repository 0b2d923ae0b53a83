package render

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-sitecms/internal/markup"
)

// DefaultAllowedInline lists the inline elements kept in block text.
var DefaultAllowedInline = []string{"strong"}

// Renderer maps markup blocks to HTML. Block text is sanitised with a
// bluemonday policy that keeps only the allowed inline elements.
type Renderer struct {
	policy *bluemonday.Policy
}

// Option configures a Renderer.
type Option func(*rendererConfig)

type rendererConfig struct {
	allowed []string
}

// WithAllowedInline replaces the inline element allow-list.
func WithAllowedInline(elements ...string) Option {
	return func(cfg *rendererConfig) {
		cleaned := make([]string, 0, len(elements))
		for _, element := range elements {
			if element = strings.ToLower(strings.TrimSpace(element)); element != "" {
				cleaned = append(cleaned, element)
			}
		}
		cfg.allowed = cleaned
	}
}

// New builds a renderer.
func New(opts ...Option) *Renderer {
	cfg := rendererConfig{allowed: DefaultAllowedInline}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	policy := bluemonday.NewPolicy()
	if len(cfg.allowed) > 0 {
		policy.AllowElements(cfg.allowed...)
	}
	return &Renderer{policy: policy}
}

var defaultRenderer = New()

// HTML renders blocks with the default renderer.
func HTML(blocks []markup.Block) string {
	return defaultRenderer.Render(blocks)
}

// Render writes one element per block, newline separated.
func (r *Renderer) Render(blocks []markup.Block) string {
	var b strings.Builder
	for i, block := range blocks {
		if i > 0 {
			b.WriteByte('\n')
		}
		r.writeBlock(&b, block)
	}
	return b.String()
}

// RenderContent parses content and renders the resulting blocks.
func (r *Renderer) RenderContent(content string) string {
	return r.Render(markup.Parse(content))
}

func (r *Renderer) writeBlock(b *strings.Builder, block markup.Block) {
	switch block.Kind {
	case markup.KindHeading2:
		r.wrap(b, "h2", block.Text)
	case markup.KindHeading3:
		r.wrap(b, "h3", block.Text)
	case markup.KindList:
		b.WriteString("<ul>")
		for _, item := range block.Items {
			r.wrap(b, "li", item)
		}
		b.WriteString("</ul>")
	case markup.KindBoldLine:
		b.WriteString("<p><strong>")
		b.WriteString(r.policy.Sanitize(block.Text))
		b.WriteString("</strong></p>")
	default:
		r.wrap(b, "p", block.Text)
	}
}

func (r *Renderer) wrap(b *strings.Builder, tag, text string) {
	b.WriteString("<" + tag + ">")
	b.WriteString(r.policy.Sanitize(text))
	b.WriteString("</" + tag + ">")
}
