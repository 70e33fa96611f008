// Package timefmt renders rate-limit reset times as absolute ISO-8601
// timestamps and short relative descriptions.
package timefmt

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/namelens/gh-whenreset/internal/errors"
)

// ISO8601 always carries a numeric offset, including for UTC.
const ISO8601 = "2006-01-02T15:04:05-07:00"

type unit struct {
	limit  uint64
	size   uint64
	suffix string
}

// Units are ordered by size; a magnitude belongs to the first unit whose
// limit it stays under.
var units = []unit{
	{limit: 60, size: 1, suffix: "s"},
	{limit: 3600, size: 60, suffix: "min"},
	{limit: 86400, size: 3600, suffix: "h"},
}

var dayUnit = unit{size: 86400, suffix: "d"}

// FormatRelative describes an offset in seconds relative to now, e.g.
// "in 5min" or "2h ago". Values are truncated, never rounded.
func FormatRelative(seconds int64) string {
	return FormatUntil(seconds, 0)
}

// FormatUntil describes target relative to now in epoch seconds. The
// distance is taken as an unsigned magnitude so it stays exact across the
// whole int64 range.
func FormatUntil(target, now int64) string {
	if target >= now {
		return "in " + describe(uint64(target)-uint64(now))
	}
	return describe(uint64(now)-uint64(target)) + " ago"
}

func describe(magnitude uint64) string {
	selected := dayUnit
	for _, u := range units {
		if magnitude < u.limit {
			selected = u
			break
		}
	}
	return fmt.Sprintf("%d%s", magnitude/selected.size, selected.suffix)
}

// ResolveTimezone maps an IANA zone name to a location. An empty name
// resolves to the local system zone. "Local" and blank names are not zone
// names and are rejected.
func ResolveTimezone(name string) (*time.Location, error) {
	if name == "" {
		return time.Local, nil
	}
	invalid := fmt.Sprintf("Invalid timezone: %s", name)
	if name == "Local" || strings.TrimSpace(name) == "" {
		return nil, apperrors.NewConfigInvalidError(invalid)
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, apperrors.WrapConfigInvalid(err, invalid)
	}
	return loc, nil
}

// FormatAbsolute renders epoch seconds in loc as an ISO-8601 timestamp with
// an explicit offset.
func FormatAbsolute(epoch int64, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return time.Unix(epoch, 0).In(loc).Format(ISO8601)
}
