package site

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-sitecms/internal/validation"
)

// Document is the combined export format. Both members are always present.
type Document struct {
	Settings Settings     `json:"settings"`
	Articles ArticlesData `json:"articles"`
}

// Export serialises the current settings and articles as indented JSON.
func (r *Repository) Export(ctx context.Context) string {
	doc := Document{
		Settings: r.LoadSettings(ctx).normalized(),
		Articles: r.LoadArticles(ctx).normalized(),
	}
	encoded, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		r.logger.Error("site.export.encode_failed", "error", err)
		return `{"settings": {}, "articles": {"articles": []}}`
	}
	return string(encoded)
}

// WriteExport writes Export to w.
func (r *Repository) WriteExport(ctx context.Context, w io.Writer) error {
	if _, err := io.WriteString(w, r.Export(ctx)+"\n"); err != nil {
		return fmt.Errorf("site: write export: %w", err)
	}
	return nil
}

// Import validates raw completely and then overwrites settings and articles.
// Validation failures return *ImportValidationError before anything is
// written. A failed write returns an error wrapping ErrImportWrite.
func (r *Repository) Import(ctx context.Context, raw []byte) error {
	doc, err := ParseDocument(raw)
	if err != nil {
		r.logger.Warn("site.import.rejected", "error", err)
		return err
	}

	// the gate must not run after the writes below
	r.EnsureFresh(ctx)

	if !r.SaveSettings(ctx, doc.Settings) {
		return fmt.Errorf("%w: settings", ErrImportWrite)
	}
	if !r.SaveArticles(ctx, doc.Articles) {
		return fmt.Errorf("%w: articles", ErrImportWrite)
	}
	r.logger.Info("site.import.applied", "articles", len(doc.Articles.Articles))
	return nil
}

// ParseDocument decodes and validates an import document without touching
// storage.
func ParseDocument(raw []byte) (Document, error) {
	schema, err := validation.SiteDocument()
	if err != nil {
		return Document{}, &ImportValidationError{Cause: err}
	}
	if err := schema.ValidateJSON(raw); err != nil {
		return Document{}, &ImportValidationError{Cause: err, Issues: validation.Issues(err)}
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Document{}, &ImportValidationError{
			Cause:  err,
			Issues: []validation.ValidationIssue{{Location: "#", Message: err.Error()}},
		}
	}

	if issues := articleIssues(doc.Articles); len(issues) > 0 {
		cause := &validation.PayloadValidationError{Issues: issues}
		return Document{}, &ImportValidationError{Cause: cause, Issues: issues}
	}
	return doc, nil
}

func articleIssues(data ArticlesData) []validation.ValidationIssue {
	var issues []validation.ValidationIssue
	seen := make(map[string]int, len(data.Articles))
	for i, article := range data.Articles {
		base := "/articles/articles/" + strconv.Itoa(i)
		if err := article.Validate(); err != nil {
			issues = append(issues, fieldIssues(base, err)...)
		}
		if first, dup := seen[article.ID]; dup {
			issues = append(issues, validation.ValidationIssue{
				Location: base + "/id",
				Message:  fmt.Sprintf("duplicate id also used by article %d", first),
			})
			continue
		}
		seen[article.ID] = i
	}
	return issues
}

func fieldIssues(base string, err error) []validation.ValidationIssue {
	var fieldErrs ozzo.Errors
	if !errors.As(err, &fieldErrs) {
		return []validation.ValidationIssue{{Location: base, Message: err.Error()}}
	}
	issues := make([]validation.ValidationIssue, 0, len(fieldErrs))
	for _, field := range slices.Sorted(maps.Keys(fieldErrs)) {
		issues = append(issues, validation.ValidationIssue{
			Location: base + "/" + field,
			Message:  fieldErrs[field].Error(),
		})
	}
	return issues
}
