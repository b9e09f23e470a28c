package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to command errors.
const (
	CodeValidation    = "ARTICLE_COMMAND_VALIDATION_FAILED"
	CodeInvalidInput  = "ARTICLE_COMMAND_INVALID_INPUT"
	CodeCanceled      = "ARTICLE_COMMAND_CANCELED"
	CodeTimeout       = "ARTICLE_COMMAND_TIMEOUT"
	CodeContext       = "ARTICLE_COMMAND_CONTEXT_ERROR"
	CodeExecuteFailed = "ARTICLE_COMMAND_EXECUTION_FAILED"
)

// InputError tags err as a problem with the command's input rather than the
// export pipeline, so it surfaces with the validation category. Errors already
// wrapped by go-errors are returned unchanged.
func InputError(err error, message string) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, message).
		WithTextCode(CodeInvalidInput)
}

func wrapValidationError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.FromOzzoValidation(err, "article command validation failed").
		WithTextCode(CodeValidation)
}

func wrapContextError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	message, code := "article command context error", CodeContext
	switch {
	case errors.Is(err, context.Canceled):
		message, code = "article command cancelled", CodeCanceled
	case errors.Is(err, context.DeadlineExceeded):
		message, code = "article command timed out", CodeTimeout
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, message).WithTextCode(code)
}

func wrapExecuteError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return wrapContextError(err)
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "article command failed").
		WithTextCode(CodeExecuteFailed)
}
