package cmd

import (
	"fmt"
	"io"

	"github.com/fulmenhq/gofulmen/foundry"
	"go.uber.org/zap"

	apperrors "github.com/namelens/gh-whenreset/internal/errors"
	"github.com/namelens/gh-whenreset/internal/observability"
)

// ReportError writes the diagnostic for err to w and returns the exit code
// the process should terminate with.
//
// The diagnostic is always a single line holding the envelope message. When
// the CLI logger runs at debug level the envelope metadata is logged as well.
func ReportError(w io.Writer, err error) int {
	if err == nil {
		return 0
	}

	envelope := apperrors.EnsureEnvelope(err)
	code := apperrors.ExitCode(err)

	fields := []zap.Field{
		zap.Int("exit_code", code),
		zap.String("error_code", envelope.Code),
		zap.String("correlation_id", envelope.CorrelationID),
	}
	if envelope.Severity != "" {
		fields = append(fields, zap.String("severity", string(envelope.Severity)))
	}
	if info, ok := foundry.GetExitCodeInfo(foundry.ExitCode(code)); ok {
		fields = append(fields,
			zap.String("exit_name", info.Name),
			zap.String("exit_category", info.Category),
		)
	}
	if envelope.Context != nil {
		fields = append(fields, zap.Any("error_context", envelope.Context))
	}
	observability.Debug(envelope.Message, fields...)

	_, _ = fmt.Fprintln(w, envelope.Message)
	return code
}
