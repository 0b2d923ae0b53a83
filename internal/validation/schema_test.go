package validation

import (
	"errors"
	"strings"
	"testing"
)

const validDocument = `{
  "settings": {
    "brand": {"name": "Acme", "tagline": "", "primary_color": "#000", "accent_color": "#fff"},
    "features": {"blog": true},
    "pages": [{"id": "home", "label": "Home", "path": "/", "enabled": true, "order": 1}],
    "admin_password_hash": ""
  },
  "articles": {
    "articles": [{
      "id": "a1", "title": "T", "slug": "t", "date": "2024-06-01",
      "category": "news", "excerpt": "", "content": "", "status": "draft"
    }]
  }
}`

func TestSiteDocumentAcceptsValidDocument(t *testing.T) {
	schema, err := SiteDocument()
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if err := schema.ValidateJSON([]byte(validDocument)); err != nil {
		t.Fatalf("expected valid document, got %v", err)
	}
}

func TestSiteDocumentRejectsMissingArticles(t *testing.T) {
	schema, err := SiteDocument()
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	doc := `{"settings": {"brand": {"name": "A", "tagline": "", "primary_color": "", "accent_color": ""}, "features": {}, "pages": [], "admin_password_hash": ""}}`

	err = schema.ValidateJSON([]byte(doc))
	if !errors.Is(err, ErrSchemaValidation) {
		t.Fatalf("expected ErrSchemaValidation, got %v", err)
	}
	if !strings.Contains(err.Error(), "articles") {
		t.Fatalf("expected message to name the missing member, got %q", err.Error())
	}
	if len(Issues(err)) == 0 {
		t.Fatal("expected issues to be extracted")
	}
}

func TestSiteDocumentRejectsUnknownMemberAndBadStatus(t *testing.T) {
	schema, _ := SiteDocument()

	extra := strings.Replace(validDocument, `"articles": {`, `"theme": "dark", "articles": {`, 1)
	if err := schema.ValidateJSON([]byte(extra)); err == nil {
		t.Fatal("expected unknown top-level member to be rejected")
	}

	badStatus := strings.Replace(validDocument, `"status": "draft"`, `"status": "archived"`, 1)
	err := schema.ValidateJSON([]byte(badStatus))
	if err == nil {
		t.Fatal("expected invalid status to be rejected")
	}
	found := false
	for _, issue := range Issues(err) {
		if strings.Contains(issue.Location, "/articles/articles/0/status") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected issue located at the status field, got %+v", Issues(err))
	}
}

func TestValidateJSONReportsSyntaxErrors(t *testing.T) {
	schema, _ := SiteDocument()
	err := schema.ValidateJSON([]byte(`{"settings": `))
	var payloadErr *PayloadValidationError
	if !errors.As(err, &payloadErr) {
		t.Fatalf("expected PayloadValidationError, got %T", err)
	}
	if len(payloadErr.Issues) != 1 || payloadErr.Issues[0].Location != "#" {
		t.Fatalf("expected single root issue, got %+v", payloadErr.Issues)
	}
}

func TestCompileRejectsBrokenSchema(t *testing.T) {
	if _, err := Compile(`{"type": `); !errors.Is(err, ErrSchemaInvalid) {
		t.Fatalf("expected ErrSchemaInvalid, got %v", err)
	}
}

func TestRecordSchemasRejectEmptyShapes(t *testing.T) {
	settings, err := SettingsRecord()
	if err != nil {
		t.Fatalf("compile settings: %v", err)
	}
	articles, err := ArticlesRecord()
	if err != nil {
		t.Fatalf("compile articles: %v", err)
	}

	for _, raw := range []string{`null`, `{}`, `[]`, `{"unrelated": 1}`} {
		if err := settings.ValidateJSON([]byte(raw)); !errors.Is(err, ErrSchemaValidation) {
			t.Fatalf("expected settings record %s to be rejected, got %v", raw, err)
		}
		if err := articles.ValidateJSON([]byte(raw)); !errors.Is(err, ErrSchemaValidation) {
			t.Fatalf("expected articles record %s to be rejected, got %v", raw, err)
		}
	}

	if err := articles.ValidateJSON([]byte(`{"articles": null}`)); err == nil {
		t.Fatal("expected null collection to be rejected")
	}
	if err := articles.ValidateJSON([]byte(`{"articles": []}`)); err != nil {
		t.Fatalf("expected empty collection to be accepted, got %v", err)
	}
	settingsOnly := `{"brand": {"name": "A", "tagline": "", "primary_color": "", "accent_color": ""}, "features": {}, "pages": [], "admin_password_hash": ""}`
	if err := settings.ValidateJSON([]byte(settingsOnly)); err != nil {
		t.Fatalf("expected settings record to be accepted, got %v", err)
	}
}
