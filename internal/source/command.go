package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	apperrors "github.com/namelens/gh-whenreset/internal/errors"
	"github.com/namelens/gh-whenreset/internal/ratelimit"
)

// DefaultGHBinary is the gh executable looked up on PATH.
const DefaultGHBinary = "gh"

var ghArgs = []string{"api", "rate_limit"}

// CommandRunner executes an external command and returns its output streams.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (stdout []byte, stderr []byte, err error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// Run implements CommandRunner.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

// CommandSource loads the payload from `gh api rate_limit`.
type CommandSource struct {
	Binary string
	Runner CommandRunner
}

// Load runs gh and parses its stdout.
func (s *CommandSource) Load(ctx context.Context) (ratelimit.Payload, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	runner := s.Runner
	if runner == nil {
		runner = ExecRunner{}
	}

	binary := s.binary()
	stdout, stderr, err := runner.Run(ctx, binary, ghArgs...)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return ratelimit.Payload{}, apperrors.WrapExternalService(err, fmt.Sprintf("Failed to run %s: executable not found", binary))
		}
		detail := firstLine(stderr)
		if detail == "" {
			detail = err.Error()
		}
		return ratelimit.Payload{}, apperrors.WrapExternalService(err, fmt.Sprintf("%s failed: %s", s.Describe(), detail))
	}

	return ratelimit.ParsePayload(stdout, s.Describe())
}

// Describe implements PayloadSource.
func (s *CommandSource) Describe() string {
	return s.binary() + " " + strings.Join(ghArgs, " ")
}

func (s *CommandSource) binary() string {
	if strings.TrimSpace(s.Binary) == "" {
		return DefaultGHBinary
	}
	return s.Binary
}

// firstLine keeps diagnostics to a single line.
func firstLine(output []byte) string {
	text := strings.TrimSpace(string(output))
	if i := strings.IndexAny(text, "\r\n"); i >= 0 {
		text = strings.TrimSpace(text[:i])
	}
	return text
}
