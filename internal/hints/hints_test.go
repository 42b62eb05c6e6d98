package hints

// Notes:
// - ForBrowserConnect tests cannot use t.Parallel() because they use
//   t.Setenv() and replace the package-level IsInContainer variable.

import (
	"path/filepath"
	"strings"
	"testing"
)

func stubContainer(t *testing.T, in bool) {
	t.Helper()
	orig := IsInContainer
	t.Cleanup(func() { IsInContainer = orig })
	IsInContainer = func() bool { return in }
}

// ---------------------------------------------------------------------------
// TestForBrowserConnect - Environment-aware browser hints
// ---------------------------------------------------------------------------

func TestForBrowserConnect(t *testing.T) {
	tests := []struct {
		name         string
		container    bool
		ci           string
		browserBin   string
		wantContains []string
		wantExcludes []string
	}{
		{
			name:         "container without sandbox override",
			container:    true,
			wantContains: []string{"in containers", "ROD_BROWSER_BIN", "--preview"},
		},
		{
			name:         "container with CI=true",
			container:    true,
			ci:           "true",
			wantContains: []string{"installed Chrome"},
			wantExcludes: []string{"in containers"},
		},
		{
			name:         "browser binary already set",
			container:    true,
			browserBin:   "/usr/bin/chromium",
			wantContains: []string{"--preview"},
			wantExcludes: []string{"ROD_BROWSER_BIN"},
		},
		{
			name:         "plain desktop",
			wantContains: []string{"installed Chrome", "--preview"},
			wantExcludes: []string{"in containers"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubContainer(t, tt.container)
			t.Setenv("CI", tt.ci)
			t.Setenv("ROD_BROWSER_BIN", tt.browserBin)

			hint := ForBrowserConnect()
			if !strings.HasPrefix(hint, "\n  hint: ") {
				t.Errorf("hint %q missing prefix", hint)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(hint, want) {
					t.Errorf("hint %q missing %q", hint, want)
				}
			}
			for _, exclude := range tt.wantExcludes {
				if strings.Contains(hint, exclude) {
					t.Errorf("hint %q should not contain %q", hint, exclude)
				}
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestForConfigNotFound - Config location hints
// ---------------------------------------------------------------------------

func TestForConfigNotFound(t *testing.T) {
	t.Parallel()

	userPath := filepath.Join("home", "me", ".config", "go-mdconv", "team.yaml")

	tests := []struct {
		name     string
		paths    []string
		wantPart string
		wantNot  string
	}{
		{"no paths", nil, "--config", "create"},
		{"local paths only", []string{"team.yaml", "team.yml"}, "--config", "create"},
		{"user config path suggested", []string{"team.yaml", userPath}, "create " + userPath, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			hint := ForConfigNotFound(tt.paths)
			if !strings.Contains(hint, tt.wantPart) {
				t.Errorf("hint %q missing %q", hint, tt.wantPart)
			}
			if tt.wantNot != "" && strings.Contains(hint, tt.wantNot) {
				t.Errorf("hint %q should not contain %q", hint, tt.wantNot)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestForStyleNotFound - Available style listing
// ---------------------------------------------------------------------------

func TestForStyleNotFound(t *testing.T) {
	t.Parallel()

	if got := ForStyleNotFound(nil); got != "" {
		t.Errorf("ForStyleNotFound(nil) = %q, want empty", got)
	}
	if got := ForStyleNotFound([]string{"default", "plain"}); !strings.Contains(got, "available: default, plain") {
		t.Errorf("ForStyleNotFound() = %q", got)
	}
}

// ---------------------------------------------------------------------------
// TestFormat_Consistency - Shared prefix
// ---------------------------------------------------------------------------

func TestFormat_Consistency(t *testing.T) {
	t.Parallel()

	for _, hint := range []string{ForTimeout(), ForOutputDirectory(), ForDirection()} {
		if !strings.HasPrefix(hint, "\n  hint: ") {
			t.Errorf("hint %q missing prefix", hint)
		}
	}
	if format("") != "" || formatHints(nil) != "" {
		t.Error("empty hints should format to empty string")
	}
}
