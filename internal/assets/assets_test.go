package assets

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestEmbeddedLoader - Built-in styles
// ---------------------------------------------------------------------------

func TestEmbeddedLoader_LoadStyle(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	tests := []struct {
		name    string
		style   string
		wantErr error
	}{
		{name: "default style", style: DefaultStyleName},
		{name: "plain style", style: "plain"},
		{name: "unknown style", style: "solarized", wantErr: ErrStyleNotFound},
		{name: "extension rejected", style: "default.css", wantErr: ErrInvalidStyleName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := loader.LoadStyle(tt.style)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("LoadStyle(%q) error = %v, want %v", tt.style, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadStyle(%q) error = %v", tt.style, err)
			}
			if !strings.Contains(got, "{") {
				t.Errorf("LoadStyle(%q) = %q, want CSS rules", tt.style, got)
			}
		})
	}
}

func TestEmbeddedLoader_StyleNames(t *testing.T) {
	t.Parallel()

	names := NewEmbeddedLoader().StyleNames()
	if !slices.Equal(names, []string{"default", "plain"}) {
		t.Errorf("StyleNames() = %v, want [default plain]", names)
	}
}

// ---------------------------------------------------------------------------
// TestAssetResolver - User directory first, embedded fallback
// ---------------------------------------------------------------------------

func TestAssetResolver_LoadStyle(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeStyle(t, dir, "mystyle", "/* custom */")
	writeStyle(t, dir, "default", "/* overridden default */")

	resolver, err := NewAssetResolver(dir)
	if err != nil {
		t.Fatalf("NewAssetResolver() error = %v", err)
	}
	if !resolver.HasCustomLoader() {
		t.Fatal("expected custom loader for valid path")
	}

	tests := []struct {
		name    string
		style   string
		want    string
		wantErr error
	}{
		{name: "custom style", style: "mystyle", want: "/* custom */"},
		{name: "custom overrides embedded", style: "default", want: "/* overridden default */"},
		{name: "falls back to embedded", style: "plain"},
		{name: "missing everywhere", style: "solarized", wantErr: ErrStyleNotFound},
		{name: "invalid name not retried", style: "../x", wantErr: ErrInvalidStyleName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := resolver.LoadStyle(tt.style)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("LoadStyle(%q) error = %v, want %v", tt.style, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadStyle(%q) error = %v", tt.style, err)
			}
			if tt.want != "" && got != tt.want {
				t.Errorf("LoadStyle(%q) = %q, want %q", tt.style, got, tt.want)
			}
			if got == "" {
				t.Errorf("LoadStyle(%q) returned empty content", tt.style)
			}
		})
	}
}

func TestNewAssetResolver(t *testing.T) {
	t.Parallel()

	resolver, err := NewAssetResolver("")
	if err != nil {
		t.Fatalf("NewAssetResolver(\"\") error = %v", err)
	}
	if resolver.HasCustomLoader() {
		t.Error("expected no custom loader for empty path")
	}
	if len(resolver.StyleNames()) == 0 {
		t.Error("StyleNames() returned nothing")
	}

	if _, err := NewAssetResolver("/nonexistent/path/abc123xyz"); !errors.Is(err, ErrInvalidStyleDir) {
		t.Errorf("NewAssetResolver() error = %v, want ErrInvalidStyleDir", err)
	}
}
