package mdconv

import (
	"fmt"
	"slices"
	"strings"

	"github.com/alnah/go-mdconv/internal/pipeline"
)

// Direction selects which way a conversion runs.
type Direction string

// Conversion directions.
const (
	HTMLToMarkdown Direction = "html2md"
	MarkdownToHTML Direction = "md2html"
)

// ParseDirection converts a user-supplied name to a Direction.
// Accepts "html2md" and "md2html", case-insensitive.
func ParseDirection(s string) (Direction, error) {
	d := Direction(strings.ToLower(strings.TrimSpace(s)))
	if err := d.Validate(); err != nil {
		return "", err
	}
	return d, nil
}

// Validate reports whether d is a known direction.
func (d Direction) Validate() error {
	switch d {
	case HTMLToMarkdown, MarkdownToHTML:
		return nil
	}
	return fmt.Errorf("%w: %q (must be %s or %s)", ErrInvalidDirection, string(d), HTMLToMarkdown, MarkdownToHTML)
}

// Input contains conversion parameters.
type Input struct {
	Content    string    // Source HTML or Markdown
	Direction  Direction // Required
	SourceDir  string    // md2html: base for relative image and link paths
	Standalone bool      // md2html: emit a full HTML document with styles
	CSS        string    // md2html: extra CSS appended after the stylesheet
	Preview    bool      // md2html: also render a PNG screenshot
}

// ConvertResult holds the output of a conversion.
type ConvertResult struct {
	Output  []byte // Markdown or HTML, depending on direction
	Preview []byte // PNG, only when Input.Preview was set for md2html
}

// Heading styles.
const (
	HeadingATX    = "atx"
	HeadingSetext = "setext"
)

// Code block styles.
const (
	CodeBlockFenced   = "fenced"
	CodeBlockIndented = "indented"
)

// Link styles.
const (
	LinkInlined    = "inlined"
	LinkReferenced = "referenced"

	LinkReferenceFull      = "full"
	LinkReferenceCollapsed = "collapsed"
	LinkReferenceShortcut  = "shortcut"
)

// HTMLOptions configures HTML to Markdown conversion.
// Empty fields take the defaults from DefaultHTMLOptions.
type HTMLOptions struct {
	HeadingStyle       string   // "atx", "setext"
	CodeBlockStyle     string   // "fenced", "indented"
	EmDelimiter        string   // "*", "_"
	StrongDelimiter    string   // "**", "__"
	BulletListMarker   string   // "-", "*", "+"
	LinkStyle          string   // "inlined", "referenced"
	LinkReferenceStyle string   // "full", "collapsed", "shortcut"
	LineBreak          string   // emitted for <br>
	Preserve           []string // tags left to the standard rules; the rest are stripped to text
}

// DefaultHTMLOptions returns the HTML to Markdown defaults.
func DefaultHTMLOptions() *HTMLOptions {
	o := pipeline.DefaultRuleOptions()
	return &HTMLOptions{
		HeadingStyle:       o.HeadingStyle,
		CodeBlockStyle:     o.CodeBlockStyle,
		EmDelimiter:        o.EmDelimiter,
		StrongDelimiter:    o.StrongDelimiter,
		BulletListMarker:   o.BulletListMarker,
		LinkStyle:          o.LinkStyle,
		LinkReferenceStyle: o.LinkReferenceStyle,
		LineBreak:          o.LineBreak,
		Preserve:           o.Preserve,
	}
}

// Validate checks that HTML options are valid.
// Returns nil if o is nil (nil means use defaults).
func (o *HTMLOptions) Validate() error {
	if o == nil {
		return nil
	}

	if !oneOf(o.HeadingStyle, HeadingATX, HeadingSetext) {
		return fmt.Errorf("%w: %q", ErrInvalidHeadingStyle, o.HeadingStyle)
	}
	if !oneOf(o.CodeBlockStyle, CodeBlockFenced, CodeBlockIndented) {
		return fmt.Errorf("%w: %q", ErrInvalidCodeBlockStyle, o.CodeBlockStyle)
	}
	if !oneOf(o.EmDelimiter, "*", "_") {
		return fmt.Errorf("%w: em %q", ErrInvalidDelimiter, o.EmDelimiter)
	}
	if !oneOf(o.StrongDelimiter, "**", "__") {
		return fmt.Errorf("%w: strong %q", ErrInvalidDelimiter, o.StrongDelimiter)
	}
	if !oneOf(o.BulletListMarker, "-", "*", "+") {
		return fmt.Errorf("%w: %q", ErrInvalidBulletMarker, o.BulletListMarker)
	}
	if !oneOf(o.LinkStyle, LinkInlined, LinkReferenced) {
		return fmt.Errorf("%w: %q", ErrInvalidLinkStyle, o.LinkStyle)
	}
	if !oneOf(o.LinkReferenceStyle, LinkReferenceFull, LinkReferenceCollapsed, LinkReferenceShortcut) {
		return fmt.Errorf("%w: reference %q", ErrInvalidLinkStyle, o.LinkReferenceStyle)
	}
	for _, tag := range o.Preserve {
		if !pipeline.IsKnownElement(tag) {
			return fmt.Errorf("%w: %q cannot be preserved", ErrUnknownElement, tag)
		}
	}

	return nil
}

// ruleOptions converts o to the pipeline representation.
func (o *HTMLOptions) ruleOptions() pipeline.RuleOptions {
	if o == nil {
		return pipeline.DefaultRuleOptions()
	}
	return pipeline.RuleOptions{
		HeadingStyle:       strings.ToLower(o.HeadingStyle),
		CodeBlockStyle:     strings.ToLower(o.CodeBlockStyle),
		EmDelimiter:        o.EmDelimiter,
		StrongDelimiter:    o.StrongDelimiter,
		BulletListMarker:   o.BulletListMarker,
		LinkStyle:          strings.ToLower(o.LinkStyle),
		LinkReferenceStyle: strings.ToLower(o.LinkReferenceStyle),
		LineBreak:          o.LineBreak,
		Preserve:           slices.Clone(o.Preserve),
	}
}

// MarkdownOptions configures Markdown to HTML conversion.
type MarkdownOptions struct {
	HardWraps      bool   // newlines inside paragraphs become <br>
	Highlight      bool   // chroma syntax highlighting with CSS classes
	HighlightStyle string // chroma style for the class stylesheet
	SpecialBlocks  bool   // mermaid and math fences become marker elements
	AllowRawHTML   bool   // pass raw HTML in Markdown through
}

// DefaultMarkdownOptions returns the Markdown to HTML defaults.
func DefaultMarkdownOptions() *MarkdownOptions {
	return &MarkdownOptions{
		Highlight:      true,
		HighlightStyle: pipeline.DefaultHighlightStyle,
		SpecialBlocks:  true,
	}
}

// Validate checks that Markdown options are valid.
// Returns nil if o is nil (nil means use defaults).
func (o *MarkdownOptions) Validate() error {
	if o == nil {
		return nil
	}
	if o.HighlightStyle != "" && !pipeline.IsHighlightStyle(o.HighlightStyle) {
		return fmt.Errorf("%w: %q", ErrInvalidHighlightStyle, o.HighlightStyle)
	}
	return nil
}

// Preview viewport bounds in CSS pixels.
const (
	MinViewport           = 200
	MaxViewport           = 8192
	DefaultViewportWidth  = 1280
	DefaultViewportHeight = 800
)

// PreviewSettings configures preview screenshots.
type PreviewSettings struct {
	Width    int  // viewport width in pixels
	Height   int  // viewport height in pixels
	FullPage bool // capture the whole page instead of the viewport
}

// DefaultPreviewSettings returns preview settings with default values.
func DefaultPreviewSettings() *PreviewSettings {
	return &PreviewSettings{
		Width:  DefaultViewportWidth,
		Height: DefaultViewportHeight,
	}
}

// Validate checks that preview settings are valid.
// Returns nil if p is nil (nil means use defaults).
func (p *PreviewSettings) Validate() error {
	if p == nil {
		return nil
	}
	if p.Width < MinViewport || p.Width > MaxViewport {
		return fmt.Errorf("%w: width %d (must be between %d and %d)", ErrInvalidViewport, p.Width, MinViewport, MaxViewport)
	}
	if p.Height < MinViewport || p.Height > MaxViewport {
		return fmt.Errorf("%w: height %d (must be between %d and %d)", ErrInvalidViewport, p.Height, MinViewport, MaxViewport)
	}
	return nil
}

// oneOf reports whether value matches one of allowed, case-insensitive.
// The empty string selects the default and always matches.
func oneOf(value string, allowed ...string) bool {
	if value == "" {
		return true
	}
	for _, a := range allowed {
		if strings.EqualFold(value, a) {
			return true
		}
	}
	return false
}
