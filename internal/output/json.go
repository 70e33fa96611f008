package output

import (
	"encoding/json"
	"strings"

	"gopkg.in/yaml.v3"
)

// JSONFormatter renders the selected bucket as JSON.
type JSONFormatter struct {
	Indent bool
}

// Format implements Formatter.
func (f *JSONFormatter) Format(report *Report) (string, error) {
	if report == nil {
		return "", nil
	}

	var (
		data []byte
		err  error
	)

	if f.Indent {
		data, err = json.MarshalIndent(report.Selected, "", "  ")
	} else {
		data, err = json.Marshal(report.Selected)
	}
	if err != nil {
		return "", err
	}

	return string(data), nil
}

// YAMLFormatter renders the selected bucket as YAML.
type YAMLFormatter struct{}

// Format implements Formatter.
func (f *YAMLFormatter) Format(report *Report) (string, error) {
	if report == nil {
		return "", nil
	}
	data, err := yaml.Marshal(report.Selected)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(data), "\n"), nil
}
