package errors

import (
	"fmt"
	"testing"

	gferrors "github.com/fulmenhq/gofulmen/errors"
	"github.com/stretchr/testify/require"
)

func TestConstructorsSetCodes(t *testing.T) {
	cases := []struct {
		envelope *gferrors.ErrorEnvelope
		code     string
	}{
		{NewInvalidInputError("bad"), CodeInvalidInput},
		{NewExternalServiceError("bad"), CodeExternalService},
		{NewValidationError("bad"), CodeValidation},
		{NewNotFoundError("bad"), CodeNotFound},
		{NewConfigInvalidError("bad"), CodeConfigInvalid},
	}

	for _, tc := range cases {
		require.Equal(t, tc.code, tc.envelope.Code)
		require.Equal(t, "bad", tc.envelope.Message)
		require.NotEmpty(t, tc.envelope.CorrelationID)
		require.True(t, HasCode(tc.envelope, tc.code))
		require.Equal(t, ExitNoMatch, ExitCode(tc.envelope))
	}
}

func TestWrapRecordsCause(t *testing.T) {
	envelope := WrapInvalidInput(fmt.Errorf("unexpected end of JSON input"), "Failed to parse JSON from stdin")
	require.Equal(t, CodeInvalidInput, envelope.Code)
	require.Equal(t, "unexpected end of JSON input", envelope.Context["wrapped_error"])

	require.Nil(t, withWrappedError(nil, fmt.Errorf("x")))
}

func TestEnsureEnvelope(t *testing.T) {
	envelope := EnsureEnvelope(nil)
	require.Equal(t, CodeInternal, envelope.Code)

	original := NewNotFoundError("none")
	require.Same(t, original, EnsureEnvelope(original))

	envelope = EnsureEnvelope(fmt.Errorf("unknown flag: --bogus"))
	require.Equal(t, CodeInternal, envelope.Code)
	require.Equal(t, "unknown flag: --bogus", envelope.Message)
	require.Equal(t, "unknown flag: --bogus", Message(fmt.Errorf("unknown flag: --bogus")))
}

func TestExitCode(t *testing.T) {
	require.Equal(t, 0, ExitCode(nil))
	require.Equal(t, ExitNoMatch, ExitCode(fmt.Errorf("plain")))
	require.False(t, HasCode(fmt.Errorf("plain"), CodeInternal))
}
