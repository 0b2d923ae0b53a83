package sitecmd

import (
	"io"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	importSiteMessageType         = "sitecms.site.import"
	exportSiteMessageType         = "sitecms.site.export"
	deleteArticleMessageType      = "sitecms.site.delete_article"
	resetArticlesMessageType      = "sitecms.site.reset_articles"
	setAdminPasswordMessageType   = "sitecms.site.set_admin_password"
	importArticleFilesMessageType = "sitecms.site.import_article_files"
)

// MinPasswordLength is the shortest admin password accepted by SetAdminPasswordCommand.
const MinPasswordLength = 8

// ImportSiteCommand replaces settings and articles with an exported document.
type ImportSiteCommand struct {
	Document []byte `json:"document"`
}

// Type implements command.Message.
func (ImportSiteCommand) Type() string { return importSiteMessageType }

// Validate ensures a document was supplied.
func (cmd ImportSiteCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Document, validation.Required),
	)
}

// ExportSiteCommand writes the combined settings and articles document to Writer.
type ExportSiteCommand struct {
	Writer io.Writer `json:"-"`
}

// Type implements command.Message.
func (ExportSiteCommand) Type() string { return exportSiteMessageType }

// Validate ensures a destination writer is present.
func (cmd ExportSiteCommand) Validate() error {
	if cmd.Writer == nil {
		return validation.Errors{
			"writer": validation.NewError("sitecms.site.export.writer_required", "writer is required"),
		}
	}
	return nil
}

// DeleteArticleCommand permanently removes one article.
type DeleteArticleCommand struct {
	ID string `json:"id"`
}

// Type implements command.Message.
func (DeleteArticleCommand) Type() string { return deleteArticleMessageType }

// Validate ensures the article id is present.
func (cmd DeleteArticleCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.ID, validation.Required, validation.By(notBlank("sitecms.site.delete_article.id_required", "id is required"))),
	)
}

// ResetArticlesCommand replaces the stored articles with the built-in defaults.
type ResetArticlesCommand struct{}

// Type implements command.Message.
func (ResetArticlesCommand) Type() string { return resetArticlesMessageType }

// Validate implements the validation hook; the command carries no input.
func (ResetArticlesCommand) Validate() error { return nil }

// SetAdminPasswordCommand hashes Password and stores it in the settings.
type SetAdminPasswordCommand struct {
	Password string `json:"password"`
}

// Type implements command.Message.
func (SetAdminPasswordCommand) Type() string { return setAdminPasswordMessageType }

// Validate enforces the minimum password length.
func (cmd SetAdminPasswordCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Password,
			validation.Required,
			validation.RuneLength(MinPasswordLength, 0),
		),
	)
}

// ImportArticleFilesCommand upserts the articles found in markdown files under Directory.
type ImportArticleFilesCommand struct {
	Directory string `json:"directory"`
	Recursive bool   `json:"recursive,omitempty"`
}

// Type implements command.Message.
func (ImportArticleFilesCommand) Type() string { return importArticleFilesMessageType }

// Validate ensures directory input is present before handlers execute.
func (cmd ImportArticleFilesCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(notBlank("sitecms.site.import_article_files.directory_required", "directory is required"))),
	)
}

func notBlank(code, message string) validation.RuleFunc {
	return func(value any) error {
		if s, _ := value.(string); strings.TrimSpace(s) == "" {
			return validation.NewError(code, message)
		}
		return nil
	}
}
