package runner

import "testing"

func TestMatchGlob(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path    string
		pattern string
		want    bool
	}{
		{"readme.md", "*.md", true},
		{"docs/readme.md", "*.md", true},
		{"docs/readme.md", "docs/*.md", true},
		{"docs/a/readme.md", "docs/*.md", false},
		{"docs/a/readme.md", "docs/**", true},
		{"docs", "docs/**", true},
		{"docs/a/readme.md", "docs/**/*.md", true},
		{"docs/readme.md", "docs/**/*.md", true},
		{"a/b/node_modules", "**/node_modules", true},
		{"node_modules", "**/node_modules", true},
		{"a/node_modules/x.md", "**/node_modules/**", true},
		{"vendor/x.md", "./vendor/**", true},
		{"vendors/x.md", "vendor/**", false},
		{"anything/at/all.md", "**", true},
		{"a.md", "", false},
		{"a.md", "[", false},
	}

	for _, tc := range tests {
		if got := matchGlob(tc.path, tc.pattern); got != tc.want {
			t.Errorf("matchGlob(%q, %q) = %v, want %v", tc.path, tc.pattern, got, tc.want)
		}
	}
}
