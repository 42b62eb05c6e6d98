package pipeline

import (
	"context"
	"strings"
	"testing"
)

func TestWrapDocument(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		fragment  string
		wantTitle string
	}{
		{
			name:      "title from first h1",
			fragment:  `<h1 id="x">Main <em>Title</em></h1><h1>Second</h1>`,
			wantTitle: "<title>Main Title</title>",
		},
		{
			name:      "default title",
			fragment:  "<p>no heading</p>",
			wantTitle: "<title>Document</title>",
		},
		{
			name:      "title is escaped",
			fragment:  "<h1>A &amp; B</h1>",
			wantTitle: "<title>A &amp; B</title>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := WrapDocument(tt.fragment)
			if !strings.HasPrefix(got, "<!DOCTYPE html>") {
				t.Errorf("WrapDocument() missing doctype:\n%s", got)
			}
			if !strings.Contains(got, tt.wantTitle) {
				t.Errorf("WrapDocument() missing %q:\n%s", tt.wantTitle, got)
			}
			if !strings.Contains(got, tt.fragment) {
				t.Errorf("WrapDocument() lost the fragment:\n%s", got)
			}
		})
	}
}

func TestSanitizeCSS(t *testing.T) {
	t.Parallel()

	got := sanitizeCSS("body{}</style><script>x</script>")
	if strings.Contains(got, "</") {
		t.Errorf("sanitizeCSS() = %q, closing sequence left", got)
	}
}

func TestInjectCSS(t *testing.T) {
	t.Parallel()

	injector := &CSSInjection{}
	css := "body { color: red; }"

	tests := []struct {
		name string
		html string
		css  string
		want string
	}{
		{
			name: "before closing head",
			html: "<html><head><title>T</title></head><body></body></html>",
			css:  css,
			want: "<html><head><title>T</title><style>" + css + "</style></head><body></body></html>",
		},
		{
			name: "uppercase head",
			html: "<HTML><HEAD></HEAD></HTML>",
			css:  css,
			want: "<HTML><HEAD><style>" + css + "</style></HEAD></HTML>",
		},
		{
			name: "after body when no head",
			html: `<body class="x"><p>a</p></body>`,
			css:  css,
			want: `<body class="x"><style>` + css + `</style><p>a</p></body>`,
		},
		{
			name: "prepended to a bare fragment",
			html: "<p>a</p>",
			css:  css,
			want: "<style>" + css + "</style><p>a</p>",
		},
		{
			name: "empty CSS is a no-op",
			html: "<p>a</p>",
			css:  "",
			want: "<p>a</p>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := injector.InjectCSS(context.Background(), tt.html, tt.css)
			if got != tt.want {
				t.Errorf("InjectCSS() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInjectCSS_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	in := "<head></head>"
	if got := (&CSSInjection{}).InjectCSS(ctx, in, "p{}"); got != in {
		t.Errorf("InjectCSS() = %q, want input unchanged", got)
	}
}
