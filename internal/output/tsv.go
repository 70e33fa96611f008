package output

import "strings"

// TSVFormatter renders the selected bucket as a single tab-separated line:
// timestamp, bucket name, relative time.
type TSVFormatter struct{}

// Format implements Formatter.
func (f *TSVFormatter) Format(report *Report) (string, error) {
	if report == nil {
		return "", nil
	}
	row := report.Selected
	return strings.Join([]string{row.ResetAt, row.Name, row.Relative}, "\t"), nil
}
