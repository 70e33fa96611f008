package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/namelens/gh-whenreset/internal/ratelimit"
	"github.com/namelens/gh-whenreset/internal/timefmt"
)

// Format represents an output format.
type Format string

const (
	FormatTSV   Format = "tsv"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatTable Format = "table"
)

// Row is a bucket with its reset rendered for display.
type Row struct {
	ratelimit.Bucket `yaml:",inline"`
	ResetAt          string `json:"reset_at" yaml:"reset_at"`
	Relative         string `json:"relative" yaml:"relative"`
}

// Report is the result of one selection.
type Report struct {
	Selected   Row
	Considered []Row
}

// Formatter renders reports.
type Formatter interface {
	Format(report *Report) (string, error)
}

// ParseFormat validates and normalizes a format string.
func ParseFormat(value string) (Format, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	switch normalized {
	case "", string(FormatTSV):
		return FormatTSV, nil
	case string(FormatJSON):
		return FormatJSON, nil
	case string(FormatYAML), "yml":
		return FormatYAML, nil
	case string(FormatTable):
		return FormatTable, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", value)
	}
}

// NewFormatter returns a formatter for the requested format.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: true}
	case FormatYAML:
		return &YAMLFormatter{}
	case FormatTable:
		return &TableFormatter{}
	default:
		return &TSVFormatter{}
	}
}

// NewRow renders bucket relative to now in loc.
func NewRow(bucket ratelimit.Bucket, now time.Time, loc *time.Location) Row {
	return Row{
		Bucket:   bucket,
		ResetAt:  timefmt.FormatAbsolute(bucket.Reset, loc),
		Relative: timefmt.FormatUntil(bucket.Reset, now.Unix()),
	}
}

// NewReport builds a report for selected out of considered.
func NewReport(selected ratelimit.Bucket, considered []ratelimit.Bucket, now time.Time, loc *time.Location) *Report {
	rows := make([]Row, 0, len(considered))
	for _, bucket := range considered {
		rows = append(rows, NewRow(bucket, now, loc))
	}
	return &Report{
		Selected:   NewRow(selected, now, loc),
		Considered: rows,
	}
}
