package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestGoldmarkConverter_ToHTML - Markdown to HTML fragments
// ---------------------------------------------------------------------------

func TestGoldmarkConverter_ToHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		opts         GoldmarkOptions
		markdown     string
		wantContains []string
		wantExcludes []string
	}{
		{
			name:         "heading gets an id",
			markdown:     "# Test Header",
			wantContains: []string{`<h1 id="test-header">Test Header</h1>`},
			wantExcludes: []string{"<html", "<body"},
		},
		{
			name:         "emphasis and inline code",
			markdown:     "This is a **bold** and *italic* text with `inline code`.",
			wantContains: []string{"<strong>bold</strong>", "<em>italic</em>", "<code>inline code</code>"},
		},
		{
			name:         "GFM table",
			markdown:     "| A | B |\n| --- | --- |\n| 1 | 2 |",
			wantContains: []string{"<table>", "<th>A</th>", "<td>2</td>"},
		},
		{
			name:         "footnote",
			markdown:     "Text[^1]\n\n[^1]: Note",
			wantContains: []string{"footnote"},
		},
		{
			name:         "raw HTML omitted by default",
			markdown:     "<div class=\"x\">raw</div>",
			wantExcludes: []string{`<div class="x">`},
		},
		{
			name:         "raw HTML allowed",
			opts:         GoldmarkOptions{AllowRawHTML: true},
			markdown:     "<div class=\"x\">raw</div>",
			wantContains: []string{`<div class="x">raw</div>`},
		},
		{
			name:         "soft breaks by default",
			markdown:     "line one\nline two",
			wantExcludes: []string{"<br"},
		},
		{
			name:         "hard wraps",
			opts:         GoldmarkOptions{HardWraps: true},
			markdown:     "line one\nline two",
			wantContains: []string{"<br"},
		},
		{
			name:         "highlighting uses chroma classes",
			opts:         GoldmarkOptions{Highlight: true},
			markdown:     "```go\nfunc main() {}\n```",
			wantContains: []string{`class="chroma"`},
		},
		{
			name:         "no highlighting keeps language class",
			markdown:     "```javascript\nconst hello = 'world';\n```",
			wantContains: []string{`class="language-javascript"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			conv := NewGoldmarkConverter(tt.opts)
			got, err := conv.ToHTML(context.Background(), tt.markdown)
			if err != nil {
				t.Fatalf("ToHTML() error = %v", err)
			}

			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("ToHTML() missing %q in:\n%s", want, got)
				}
			}
			for _, exclude := range tt.wantExcludes {
				if strings.Contains(got, exclude) {
					t.Errorf("ToHTML() should not contain %q in:\n%s", exclude, got)
				}
			}
		})
	}
}

func TestGoldmarkConverter_ContextCancellation(t *testing.T) {
	t.Parallel()

	conv := NewGoldmarkConverter(GoldmarkOptions{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := conv.ToHTML(ctx, "# Title")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ToHTML() error = %v, want context.Canceled", err)
	}
}

func TestHighlight(t *testing.T) {
	t.Parallel()

	if !IsHighlightStyle(DefaultHighlightStyle) {
		t.Errorf("IsHighlightStyle(%q) = false, want true", DefaultHighlightStyle)
	}
	if IsHighlightStyle("no-such-style") {
		t.Error("IsHighlightStyle(no-such-style) = true, want false")
	}

	css, err := HighlightCSS("")
	if err != nil {
		t.Fatalf("HighlightCSS() error = %v", err)
	}
	if !strings.Contains(css, ".chroma") {
		t.Errorf("HighlightCSS() missing .chroma selector:\n%s", css)
	}
}
