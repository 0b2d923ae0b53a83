package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	ErrSchemaInvalid    = errors.New("schema invalid")
	ErrSchemaValidation = errors.New("schema validation failed")
)

// ValidationIssue captures a single validation failure.
type ValidationIssue struct {
	Location string
	Message  string
}

// PayloadValidationError surfaces validation issues with schema-aware context.
type PayloadValidationError struct {
	Issues []ValidationIssue
	Cause  error
}

func (e *PayloadValidationError) Error() string {
	if len(e.Issues) == 0 {
		if e.Cause != nil {
			return e.Cause.Error()
		}
		return ErrSchemaValidation.Error()
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		location := strings.TrimSpace(issue.Location)
		if location == "" {
			location = "#"
		} else if !strings.HasPrefix(location, "#") {
			location = "#" + location
		}
		if issue.Message == "" {
			parts = append(parts, location)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", location, issue.Message))
	}
	return strings.Join(parts, "; ")
}

func (e *PayloadValidationError) Unwrap() error {
	return ErrSchemaValidation
}

// Issues extracts validation issues from an error.
func Issues(err error) []ValidationIssue {
	if err == nil {
		return nil
	}
	var payloadErr *PayloadValidationError
	if errors.As(err, &payloadErr) && payloadErr != nil {
		return payloadErr.Issues
	}
	var validationErr *jsonschema.ValidationError
	if errors.As(err, &validationErr) && validationErr != nil {
		return collectValidationIssues(validationErr)
	}
	return []ValidationIssue{{Message: err.Error()}}
}

// Schema is a compiled JSON schema.
type Schema struct {
	compiled *jsonschema.Schema
}

// Compile compiles a JSON schema document.
func Compile(document string) (*Schema, error) {
	return CompileFragment(document, "")
}

// CompileFragment compiles the subschema of document addressed by the JSON
// pointer fragment, e.g. "/properties/settings". References inside the
// subschema resolve against the whole document.
func CompileFragment(document, fragment string) (*Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("schema.json", strings.NewReader(document)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaInvalid, err)
	}
	url := "schema.json"
	if fragment = strings.TrimPrefix(strings.TrimSpace(fragment), "#"); fragment != "" {
		url += "#" + fragment
	}
	compiled, err := compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaInvalid, err)
	}
	return &Schema{compiled: compiled}, nil
}

// ValidateJSON decodes raw and validates it. Syntax errors are reported as a
// single issue at the document root.
func (s *Schema) ValidateJSON(raw []byte) error {
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	var payload any
	if err := decoder.Decode(&payload); err != nil {
		return &PayloadValidationError{
			Issues: []ValidationIssue{{Location: "#", Message: err.Error()}},
			Cause:  err,
		}
	}
	if decoder.More() {
		err := errors.New("unexpected data after top-level value")
		return &PayloadValidationError{
			Issues: []ValidationIssue{{Location: "#", Message: err.Error()}},
			Cause:  err,
		}
	}
	return s.Validate(payload)
}

// Validate checks an already decoded payload.
func (s *Schema) Validate(payload any) error {
	if s == nil || s.compiled == nil {
		return nil
	}
	if err := s.compiled.Validate(payload); err != nil {
		return &PayloadValidationError{
			Issues: Issues(err),
			Cause:  err,
		}
	}
	return nil
}

type lazySchema struct {
	once     sync.Once
	fragment string
	schema   *Schema
	err      error
}

func (l *lazySchema) get() (*Schema, error) {
	l.once.Do(func() {
		l.schema, l.err = CompileFragment(SiteDocumentJSONSchema, l.fragment)
	})
	return l.schema, l.err
}

var (
	siteDocument   = &lazySchema{}
	settingsRecord = &lazySchema{fragment: "/properties/settings"}
	articlesRecord = &lazySchema{fragment: "/properties/articles"}
)

// SiteDocument returns the compiled schema of the export/import document.
func SiteDocument() (*Schema, error) {
	return siteDocument.get()
}

// SettingsRecord returns the schema of the stored settings record, the
// "settings" member of the site document.
func SettingsRecord() (*Schema, error) {
	return settingsRecord.get()
}

// ArticlesRecord returns the schema of the stored articles record, the
// "articles" member of the site document.
func ArticlesRecord() (*Schema, error) {
	return articlesRecord.get()
}

func collectValidationIssues(err *jsonschema.ValidationError) []ValidationIssue {
	if err == nil {
		return nil
	}
	issues := []ValidationIssue{}
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			issues = append(issues, ValidationIssue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}
