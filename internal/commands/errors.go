package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

const (
	commandValidationCode  = "COMMAND_VALIDATION_FAILED"
	commandContextCanceled = "COMMAND_CONTEXT_CANCELED"
	commandContextTimeout  = "COMMAND_CONTEXT_TIMEOUT"
	commandExecuteFailed   = "COMMAND_EXECUTION_FAILED"
)

// classify tags err with a category and text code. Validation failures are
// always tagged COMMAND_VALIDATION_FAILED. Other errors that already carry a
// category, such as marker protocol errors, pass through unchanged so their
// codes reach the caller.
func classify(err error, commandType string, validation bool) error {
	if err == nil {
		return nil
	}
	if validation {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "command validation failed").
			WithTextCode(commandValidationCode).
			WithMetadata(map[string]any{"command": commandType})
	}
	if goerrors.IsWrapped(err) {
		return err
	}

	code, message := commandExecuteFailed, "command execution failed"
	switch {
	case errors.Is(err, context.Canceled):
		code, message = commandContextCanceled, "command execution cancelled"
	case errors.Is(err, context.DeadlineExceeded):
		code, message = commandContextTimeout, "command execution deadline exceeded"
	}

	return goerrors.Wrap(err, goerrors.CategoryCommand, message).
		WithTextCode(code).
		WithMetadata(map[string]any{"command": commandType})
}

func isContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
