package config

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// TemplateHeader opens every generated configuration file.
const TemplateHeader = `# docstyle configuration
# Rule keys may be IDs (DS001) or names (admonition-indent).`

// RuleInfo describes a rule for template generation. It is filled in by the
// caller so this package stays independent of the rule engine.
type RuleInfo struct {
	ID          string
	Name        string
	Description string
	Enabled     bool
	Severity    Severity
	CanFix      bool
	Options     map[string]any
}

// GenerateTemplate writes a commented .docstyle.yml that lists the given
// rules with their defaults. Everything except flavor is commented out.
func GenerateTemplate(rules []RuleInfo) []byte {
	var buf bytes.Buffer

	buf.WriteString(TemplateHeader)
	buf.WriteString(`

# Markdown flavor used to check code fences after fixing: commonmark or gfm
flavor: commonmark

# Default severity for rules: error, warning, or info
# severity_default: warning

# Hold back fixes that would change fenced code block structure
# verify_fences: true

# File patterns to ignore (glob patterns)
# ignore:
#   - "site/**"
#   - "node_modules/**"

# Backups written next to fixed files (mode: sidecar or none)
# backups:
#   enabled: true
#   mode: sidecar

# Rule-specific configuration
# rules:
`)

	sorted := slices.Clone(rules)
	slices.SortFunc(sorted, func(a, b RuleInfo) int { return strings.Compare(a.ID, b.ID) })

	for _, rule := range sorted {
		fmt.Fprintf(&buf, "#\n#   # %s: %s\n", rule.ID, rule.Name)
		fmt.Fprintf(&buf, "#   # %s\n", wrapComment(rule.Description, commentWrapWidth))
		if rule.CanFix {
			buf.WriteString("#   # Auto-fix: yes\n")
		}
		fmt.Fprintf(&buf, "#   %s:\n", rule.ID)
		fmt.Fprintf(&buf, "#     enabled: %t\n", rule.Enabled)
		fmt.Fprintf(&buf, "#     severity: %s\n", rule.Severity)
		if len(rule.Options) == 0 {
			continue
		}
		buf.WriteString("#     options:\n")
		keys := make([]string, 0, len(rule.Options))
		for key := range rule.Options {
			keys = append(keys, key)
		}
		slices.Sort(keys)
		for _, key := range keys {
			fmt.Fprintf(&buf, "#       %s: %s\n", key, yamlScalar(rule.Options[key]))
		}
	}

	return buf.Bytes()
}

func yamlScalar(value any) string {
	if s, ok := value.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprint(value)
}

// wrapComment wraps a comment to fit within maxWidth characters.
func wrapComment(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	current := ""
	for _, word := range strings.Fields(text) {
		switch {
		case current == "":
			current = word
		case len(current)+1+len(word) <= maxWidth:
			current += " " + word
		default:
			lines = append(lines, current)
			current = word
		}
	}
	if current != "" {
		lines = append(lines, current)
	}

	return strings.Join(lines, "\n#   # ")
}
