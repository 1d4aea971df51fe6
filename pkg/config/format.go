package config

import "slices"

// RuleFormat controls how rule identifiers appear in output.
type RuleFormat string

const (
	RuleFormatName     RuleFormat = "name"     // "admonition-indent"
	RuleFormatID       RuleFormat = "id"       // "DS001"
	RuleFormatCombined RuleFormat = "combined" // "DS001/admonition-indent"
)

// RuleFormats lists the accepted rule formats.
func RuleFormats() []RuleFormat {
	return []RuleFormat{RuleFormatName, RuleFormatID, RuleFormatCombined}
}

// IsValid reports whether f is a known rule format. The empty format is
// valid and means RuleFormatName.
func (f RuleFormat) IsValid() bool {
	return f == "" || slices.Contains(RuleFormats(), f)
}

// FormatRuleID renders a rule as its ID, its name, or "ID/name". Rules
// without a name always render as their ID.
func FormatRuleID(format RuleFormat, ruleID, ruleName string) string {
	switch {
	case ruleName == "", format == RuleFormatID:
		return ruleID
	case format == RuleFormatCombined:
		return ruleID + "/" + ruleName
	default:
		return ruleName
	}
}
