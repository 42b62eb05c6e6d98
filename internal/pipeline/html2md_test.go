package pipeline

// Notes:
// - Assertions use Contains/Excludes: html-to-markdown normalizes surrounding
//   whitespace, and only the content our rules produce is under test here.
// - Exact table bytes are covered in internal/table.
// - TestRuleConverter_ExactOutput pins the bytes where whitespace and
//   escaping are the behavior under test: code text, spaces between
//   inline elements and hard breaks.

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestRuleConverter_ToMarkdown - HTML to Markdown with the custom rule table
// ---------------------------------------------------------------------------

func TestRuleConverter_ToMarkdown(t *testing.T) {
	t.Parallel()

	conv := NewRuleConverter(DefaultRuleOptions())

	tests := []struct {
		name         string
		html         string
		wantContains []string
		wantExcludes []string
	}{
		{
			name:         "headings keep atx markers",
			html:         `<div><h1 class="title">Main Document Title</h1><h2>Section 1</h2><h3>Subsection 1.1</h3></div>`,
			wantContains: []string{"# Main Document Title", "## Section 1", "### Subsection 1.1"},
			wantExcludes: []string{"class", "<div"},
		},
		{
			name:         "paragraph with link",
			html:         `<p>This is the first section with a <a href="https://example.com">link</a>.</p>`,
			wantContains: []string{"[link](https://example.com)"},
		},
		{
			name:         "list uses dash marker",
			html:         `<ul><li>List item 1</li><li>List item 2</li></ul>`,
			wantContains: []string{"- List item 1", "- List item 2"},
		},
		{
			name:         "inline formatting is stripped to text",
			html:         `<p>Some <strong>bold</strong> and <em>italic</em> text.</p>`,
			wantContains: []string{"Some bold and italic text."},
			wantExcludes: []string{"**", "*italic*"},
		},
		{
			name:         "spans and divs drop attributes",
			html:         `<div style="color:red"><span class="x">plain</span></div>`,
			wantContains: []string{"plain"},
			wantExcludes: []string{"style", "class", "<span"},
		},
		{
			name:         "pre is fenced",
			html:         `<pre>return value;</pre>`,
			wantContains: []string{"```", "return value;"},
		},
		{
			name:         "style and script are dropped",
			html:         `<style>body { color: red; }</style><script>alert(1)</script><p>visible</p>`,
			wantContains: []string{"visible"},
			wantExcludes: []string{"color", "alert"},
		},
		{
			name: "table becomes a pipe table",
			html: `<table>
				<tr><th>Name</th><th>Age</th></tr>
				<tr><td>Sam</td><td>5</td></tr>
			</table>`,
			wantContains: []string{"| Name | Age |", "| ---- | --- |", "| Sam | 5 |"},
		},
		{
			name:         "table pipes are not escaped",
			html:         `<table><tr><th>Col</th></tr><tr><td>a|b</td></tr></table>`,
			wantContains: []string{"| a|b |"},
		},
		{
			name:         "table without rows keeps its content",
			html:         `<table><caption>Empty</caption></table>`,
			wantContains: []string{"Empty"},
			wantExcludes: []string{"|"},
		},
		{
			name:         "image keeps markdown form",
			html:         `<img src="logo.png" alt="Logo">`,
			wantContains: []string{"![Logo](logo.png)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := conv.ToMarkdown(context.Background(), tt.html)
			if err != nil {
				t.Fatalf("ToMarkdown() error = %v", err)
			}

			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("ToMarkdown() missing %q in:\n%s", want, got)
				}
			}
			for _, exclude := range tt.wantExcludes {
				if strings.Contains(got, exclude) {
					t.Errorf("ToMarkdown() should not contain %q in:\n%s", exclude, got)
				}
			}
		})
	}
}

func TestRuleConverter_PreserveOverride(t *testing.T) {
	t.Parallel()

	opts := DefaultRuleOptions()
	opts.Preserve = []string{"P", "strong"}
	conv := NewRuleConverter(opts)

	got, err := conv.ToMarkdown(context.Background(), `<h1>Title</h1><p><strong>bold</strong></p>`)
	if err != nil {
		t.Fatalf("ToMarkdown() error = %v", err)
	}

	if strings.Contains(got, "# Title") {
		t.Errorf("unpreserved heading kept its marker:\n%s", got)
	}
	if !strings.Contains(got, "**bold**") {
		t.Errorf("preserved <strong> lost its delimiter:\n%s", got)
	}
}

// ---------------------------------------------------------------------------
// TestRuleConverter_ExactOutput - Code text, inline spacing and hard breaks
// ---------------------------------------------------------------------------

func TestRuleConverter_ExactOutput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		preserve []string // nil = defaults
		html     string
		want     string
	}{
		{
			name: "code block text is not escaped",
			html: "<pre><code>x := a*b_c\nif x < 1 {}</code></pre>",
			want: "```\nx := a*b_c\nif x < 1 {}\n```",
		},
		{
			name: "code block containing a fence gets a longer fence",
			html: "<pre>```go\nx\n```</pre>",
			want: "````\n```go\nx\n```\n````",
		},
		{
			name: "inline code text is not escaped",
			html: "<p>Use <code>a*b</code> here</p>",
			want: "Use a*b here",
		},
		{
			name: "space between stripped elements is kept",
			html: "<p>Hello <strong>bold</strong> <em>it</em> end</p>",
			want: "Hello bold it end",
		},
		{
			name: "adjacent stripped elements stay joined",
			html: "<p>foo<span>bar</span><span>baz</span></p>",
			want: "foobarbaz",
		},
		{
			name:     "stripped element before a preserved one",
			preserve: []string{"p", "em"},
			html:     "<p><span>x</span> <em>it</em></p>",
			want:     "x *it*",
		},
		{
			name:     "preserved element before a stripped one",
			preserve: []string{"p", "em"},
			html:     "<p><em>it</em> <span>x</span></p>",
			want:     "*it* x",
		},
		{
			name: "default line break is a hard break",
			html: "<p>a<br>b</p>",
			want: "a  \nb",
		},
		{
			name: "line break closing a paragraph is dropped",
			html: "<p>a<br></p><p>b</p>",
			want: "a\n\nb",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := DefaultRuleOptions()
			if tt.preserve != nil {
				opts.Preserve = tt.preserve
			}
			got, err := NewRuleConverter(opts).ToMarkdown(context.Background(), tt.html)
			if err != nil {
				t.Fatalf("ToMarkdown() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ToMarkdown() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRuleConverter_LineBreak(t *testing.T) {
	t.Parallel()

	opts := DefaultRuleOptions()
	opts.LineBreak = "\\\n"
	conv := NewRuleConverter(opts)

	got, err := conv.ToMarkdown(context.Background(), `<p>first<br>second</p>`)
	if err != nil {
		t.Fatalf("ToMarkdown() error = %v", err)
	}
	if got != "first\\\nsecond" {
		t.Errorf("ToMarkdown() = %q, want custom line break", got)
	}
	if strings.Contains(got, brMarker) {
		t.Errorf("ToMarkdown() leaked the break marker: %q", got)
	}
}

func TestRuleConverter_ContextCancellation(t *testing.T) {
	t.Parallel()

	conv := NewRuleConverter(DefaultRuleOptions())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := conv.ToMarkdown(ctx, "<p>x</p>")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ToMarkdown() error = %v, want context.Canceled", err)
	}
}

func TestWithRuleDefaults(t *testing.T) {
	t.Parallel()

	got := withRuleDefaults(RuleOptions{EmDelimiter: "_", Preserve: []string{" H1 ", "P"}})

	if got.EmDelimiter != "_" {
		t.Errorf("EmDelimiter = %q, want %q", got.EmDelimiter, "_")
	}
	if got.HeadingStyle != "atx" || got.BulletListMarker != "-" || got.LineBreak != "  \n" {
		t.Errorf("defaults not applied: %+v", got)
	}
	if len(got.Preserve) != 2 || got.Preserve[0] != "h1" || got.Preserve[1] != "p" {
		t.Errorf("Preserve = %q, want [h1 p]", got.Preserve)
	}
}
