// Package config defines the configuration types for docstyle.
// These are plain data structures; discovery and merging live in
// internal/configloader.
package config

// Severity represents the severity level of a lint diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// IsValid returns true for a known severity.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityError, SeverityWarning, SeverityInfo:
		return true
	default:
		return false
	}
}

// RuleConfig holds per-rule configuration options.
// Pointer fields distinguish "unset" from the zero value during merging.
type RuleConfig struct {
	Enabled  *bool          `yaml:"enabled,omitempty"`
	Severity *string        `yaml:"severity,omitempty"`
	AutoFix  *bool          `yaml:"auto_fix,omitempty"`
	Options  map[string]any `yaml:"options,omitempty"`
}

// Backup modes.
const (
	BackupModeSidecar = "sidecar" // file.md.bak next to the file
	BackupModeNone    = "none"
)

// BackupsConfig controls backup behavior when fixing files.
type BackupsConfig struct {
	// Enabled is nil when unset so a config layer can turn backups off
	// without a later layer silently turning them back on.
	Enabled *bool  `yaml:"enabled,omitempty"`
	Mode    string `yaml:"mode,omitempty"`
}

// OutputFormat specifies the output format for diagnostics.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatDiff OutputFormat = "diff"
)

// Flavor specifies the Markdown flavor used when outlining code fences.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// Config is the root configuration structure.
type Config struct {
	// Flavor is the Markdown flavor ("commonmark" or "gfm").
	Flavor Flavor `yaml:"flavor,omitempty"`

	// SeverityDefault is the severity for rules that don't specify one.
	SeverityDefault string `yaml:"severity_default,omitempty"`

	// Rules contains per-rule configuration keyed by rule ID.
	Rules map[string]RuleConfig `yaml:"rules,omitempty"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `yaml:"ignore,omitempty"`

	// Backups configures backup behavior when fixing.
	Backups BackupsConfig `yaml:"backups,omitempty"`

	// VerifyFences re-parses fixed content and holds back fixes that would
	// change the shape of fenced code blocks. Nil means enabled.
	VerifyFences *bool `yaml:"verify_fences,omitempty"`

	// CLI-level options (not persisted to config files).

	Fix          bool         `yaml:"-"`
	DryRun       bool         `yaml:"-"`
	Format       OutputFormat `yaml:"-"`
	RuleFormat   RuleFormat   `yaml:"-"`
	Jobs         int          `yaml:"-"`
	EnableRules  []string     `yaml:"-"`
	DisableRules []string     `yaml:"-"`
	FixRules     []string     `yaml:"-"`
	NoBackups    bool         `yaml:"-"`
	Strict       bool         `yaml:"-"`
	NoContext    bool         `yaml:"-"`
}

// NewConfig returns a Config with defaults applied.
func NewConfig() *Config {
	return &Config{
		Flavor:          FlavorCommonMark,
		SeverityDefault: string(SeverityWarning),
		Rules:           make(map[string]RuleConfig),
		Backups: BackupsConfig{
			Mode: BackupModeSidecar,
		},
		Format:     FormatText,
		RuleFormat: RuleFormatName,
	}
}

// FenceVerification reports whether fixed content must keep its fenced
// code block structure before being written.
func (c *Config) FenceVerification() bool {
	return c == nil || c.VerifyFences == nil || *c.VerifyFences
}

// BackupsEnabled reports whether fixes should leave a backup behind.
func (c *Config) BackupsEnabled() bool {
	if c == nil {
		return false
	}
	enabled := c.Backups.Enabled == nil || *c.Backups.Enabled
	return enabled && !c.NoBackups && c.Backups.Mode != BackupModeNone
}
