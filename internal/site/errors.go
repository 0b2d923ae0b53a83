package site

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-sitecms/internal/validation"
)

var (
	ErrImportValidation = errors.New("site: import document invalid")
	ErrImportWrite      = errors.New("site: import write failed")
	ErrSettingsWrite    = errors.New("site: settings write failed")
	ErrPasswordRequired = errors.New("site: password is required")
)

// ImportValidationError reports why an import document was rejected. Nothing
// has been written when it is returned.
type ImportValidationError struct {
	Cause  error
	Issues []validation.ValidationIssue
}

func (e *ImportValidationError) Error() string {
	if e == nil || e.Cause == nil {
		return ErrImportValidation.Error()
	}
	return fmt.Sprintf("%s: %s", ErrImportValidation.Error(), e.Cause.Error())
}

func (e *ImportValidationError) Unwrap() error {
	return ErrImportValidation
}
