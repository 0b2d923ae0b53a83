package commands

import (
	"context"
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"
)

const (
	commandValidationCode   = "COMMAND_VALIDATION_FAILED"
	commandContextCanceled  = "COMMAND_CONTEXT_CANCELED"
	commandContextTimeout   = "COMMAND_CONTEXT_TIMEOUT"
	commandContextErrorCode = "COMMAND_CONTEXT_ERROR"
	commandExecuteFailed    = "COMMAND_EXECUTION_FAILED"
)

// already categorised errors pass through untouched
func wrap(err error, category goerrors.Category, message, code string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, category, message).WithTextCode(code)
}

// ozzo field errors are kept as go-errors validation entries
func wrapValidationError(err error) error {
	var fields validation.Errors
	if err != nil && !goerrors.IsWrapped(err) && errors.As(err, &fields) {
		return goerrors.FromOzzoValidation(fields, "command validation failed").
			WithTextCode(commandValidationCode)
	}
	return wrap(err, goerrors.CategoryValidation, "command validation failed", commandValidationCode)
}

func wrapContextError(err error) error {
	switch {
	case errors.Is(err, context.Canceled):
		return wrap(err, goerrors.CategoryCommand, "command execution cancelled", commandContextCanceled)
	case errors.Is(err, context.DeadlineExceeded):
		return wrap(err, goerrors.CategoryCommand, "command execution deadline exceeded", commandContextTimeout)
	default:
		return wrap(err, goerrors.CategoryCommand, "command context error", commandContextErrorCode)
	}
}

func wrapExecuteError(err error) error {
	return wrap(err, goerrors.CategoryCommand, "command execution failed", commandExecuteFailed)
}
