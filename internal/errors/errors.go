package errors

import (
	"github.com/fulmenhq/gofulmen/errors"
	"github.com/google/uuid"
)

// ExitNoMatch is the process exit code for every input, validation,
// selection, and configuration failure.
const ExitNoMatch = 2

// Error codes used across the CLI.
const (
	CodeInvalidInput    = "INVALID_INPUT"
	CodeValidation      = "VALIDATION_FAILED"
	CodeNotFound        = "NOT_FOUND"
	CodeConfigInvalid   = "CONFIG_INVALID"
	CodeExternalService = "EXTERNAL_SERVICE_ERROR"
	CodeInternal        = "INTERNAL_ERROR"
)

// Transport and parse errors
func NewInvalidInputError(message string) *errors.ErrorEnvelope {
	env, _ := newEnvelope(CodeInvalidInput, message).WithSeverity(errors.SeverityMedium)
	return env
}

func NewExternalServiceError(message string) *errors.ErrorEnvelope {
	env, _ := newEnvelope(CodeExternalService, message).WithSeverity(errors.SeverityHigh)
	return env
}

// Schema errors
func NewValidationError(message string) *errors.ErrorEnvelope {
	env, _ := newEnvelope(CodeValidation, message).WithSeverity(errors.SeverityMedium)
	return env
}

// Selection errors
func NewNotFoundError(message string) *errors.ErrorEnvelope {
	return newEnvelope(CodeNotFound, message)
}

// Configuration errors
func NewConfigInvalidError(message string) *errors.ErrorEnvelope {
	env, _ := newEnvelope(CodeConfigInvalid, message).WithSeverity(errors.SeverityMedium)
	return env
}

// WrapInvalidInput records err as the wrapped cause of an INVALID_INPUT envelope.
func WrapInvalidInput(err error, message string) *errors.ErrorEnvelope {
	return withWrappedError(NewInvalidInputError(message), err)
}

// WrapExternalService records err as the wrapped cause of an EXTERNAL_SERVICE_ERROR envelope.
func WrapExternalService(err error, message string) *errors.ErrorEnvelope {
	return withWrappedError(NewExternalServiceError(message), err)
}

// WrapConfigInvalid records err as the wrapped cause of a CONFIG_INVALID envelope.
func WrapConfigInvalid(err error, message string) *errors.ErrorEnvelope {
	return withWrappedError(NewConfigInvalidError(message), err)
}

// newEnvelope tags every envelope with a correlation ID so verbose logs can be
// matched to a single invocation.
func newEnvelope(code, message string) *errors.ErrorEnvelope {
	return errors.NewErrorEnvelope(code, message).WithCorrelationID(uuid.New().String())
}

// EnsureEnvelope normalizes any error into a gofulmen ErrorEnvelope.
// Plain errors keep their text as the envelope message so diagnostics stay readable.
func EnsureEnvelope(err error) *errors.ErrorEnvelope {
	if err == nil {
		env := errors.NewErrorEnvelope(CodeInternal, "unexpected nil error")
		env, _ = env.WithSeverity(errors.SeverityCritical)
		return env
	}

	if envelope, ok := err.(*errors.ErrorEnvelope); ok && envelope != nil {
		return envelope
	}

	env, _ := newEnvelope(CodeInternal, err.Error()).WithSeverity(errors.SeverityHigh)
	return withWrappedError(env, err)
}

// Message returns the human-readable diagnostic for err.
func Message(err error) string {
	return EnsureEnvelope(err).Message
}

// ExitCode resolves the process exit code for err.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return ExitNoMatch
}

// HasCode reports whether err is an envelope carrying code.
func HasCode(err error, code string) bool {
	envelope, ok := err.(*errors.ErrorEnvelope)
	return ok && envelope != nil && envelope.Code == code
}

func withWrappedError(envelope *errors.ErrorEnvelope, err error) *errors.ErrorEnvelope {
	if envelope == nil || err == nil {
		return envelope
	}

	updated, updateErr := envelope.WithContext(map[string]interface{}{
		"wrapped_error": err.Error(),
	})
	if updateErr != nil {
		return envelope
	}
	return updated
}
