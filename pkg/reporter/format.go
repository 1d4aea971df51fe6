package reporter

import (
	"fmt"

	"github.com/yaklabco/docstyle/pkg/config"
)

// Format selects a reporter. Its values mirror config.OutputFormat.
type Format string

// Output formats supported by the reporter.
const (
	FormatText = Format(config.FormatText)
	FormatJSON = Format(config.FormatJSON)
	FormatDiff = Format(config.FormatDiff)
)

// ParseFormat parses a format name. The empty string means text.
func ParseFormat(name string) (Format, error) {
	format := Format(name)
	if format == "" {
		return FormatText, nil
	}
	if !format.IsValid() {
		return "", fmt.Errorf("unknown format %q; valid formats: text, json, diff", name)
	}
	return format, nil
}

func (f Format) String() string {
	return string(f)
}

// IsValid reports whether f names a reporter.
func (f Format) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatDiff:
		return true
	default:
		return false
	}
}
