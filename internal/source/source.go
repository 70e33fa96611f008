// Package source obtains rate-limit payloads from stdin, the gh CLI, or the
// GitHub REST API.
package source

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	apperrors "github.com/namelens/gh-whenreset/internal/errors"
	"github.com/namelens/gh-whenreset/internal/ratelimit"
)

// PayloadSource produces a rate-limit payload.
type PayloadSource interface {
	Load(ctx context.Context) (ratelimit.Payload, error)
	// Describe names the source for logs.
	Describe() string
}

// Kind selects a payload source.
type Kind string

const (
	KindAuto  Kind = "auto"
	KindStdin Kind = "stdin"
	KindGH    Kind = "gh"
	KindAPI   Kind = "api"
)

// ParseKind validates and normalizes a source kind.
func ParseKind(value string) (Kind, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	switch normalized {
	case "", string(KindAuto):
		return KindAuto, nil
	case string(KindStdin):
		return KindStdin, nil
	case string(KindGH):
		return KindGH, nil
	case string(KindAPI):
		return KindAPI, nil
	default:
		return "", apperrors.NewConfigInvalidError(fmt.Sprintf("unsupported source: %s", value))
	}
}

// Options carries everything Resolve needs to build a source.
type Options struct {
	Stdin      io.Reader
	IsTerminal func() bool

	GHBinary string
	Runner   CommandRunner

	APIURL   string
	APIToken string
}

// Resolve returns the source for kind. KindAuto reads stdin when data is
// piped in and falls back to the gh CLI on an interactive terminal.
func Resolve(kind Kind, opts Options) (PayloadSource, error) {
	if kind == KindAuto {
		kind = KindStdin
		if opts.IsTerminal != nil && opts.IsTerminal() {
			kind = KindGH
		}
	}

	switch kind {
	case KindStdin:
		stdin := opts.Stdin
		if stdin == nil {
			stdin = os.Stdin
		}
		return &ReaderSource{Reader: stdin, Origin: "stdin"}, nil
	case KindGH:
		return &CommandSource{Binary: opts.GHBinary, Runner: opts.Runner}, nil
	case KindAPI:
		return &APISource{BaseURL: opts.APIURL, Token: opts.APIToken}, nil
	default:
		return nil, apperrors.NewConfigInvalidError(fmt.Sprintf("unsupported source: %s", kind))
	}
}

// FileIsTerminal reports whether f is attached to a terminal.
func FileIsTerminal(f *os.File) func() bool {
	return func() bool {
		if f == nil {
			return false
		}
		return term.IsTerminal(int(f.Fd()))
	}
}

// ReaderSource parses a payload from a reader such as stdin.
type ReaderSource struct {
	Reader io.Reader
	Origin string
}

// Load reads the whole reader and parses it.
func (s *ReaderSource) Load(ctx context.Context) (ratelimit.Payload, error) {
	data, err := io.ReadAll(s.Reader)
	if err != nil {
		return ratelimit.Payload{}, apperrors.WrapInvalidInput(err, fmt.Sprintf("Failed to read %s: %v", s.origin(), err))
	}
	return ratelimit.ParsePayload(data, s.origin())
}

// Describe implements PayloadSource.
func (s *ReaderSource) Describe() string {
	return s.origin()
}

func (s *ReaderSource) origin() string {
	if strings.TrimSpace(s.Origin) == "" {
		return "stdin"
	}
	return s.Origin
}
