package pipeline

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
)

// ErrMarkdownConversion indicates HTML to Markdown conversion failed.
var ErrMarkdownConversion = errors.New("markdown conversion failed")

// MarkdownConverter abstracts HTML to Markdown conversion.
type MarkdownConverter interface {
	ToMarkdown(ctx context.Context, content string) (string, error)
}

// RuleOptions configures a RuleConverter. Values mirror turndown's options.
type RuleOptions struct {
	HeadingStyle       string // "atx" or "setext"
	CodeBlockStyle     string // "fenced" or "indented"
	EmDelimiter        string // "*" or "_"
	StrongDelimiter    string // "**" or "__"
	BulletListMarker   string // "-", "*" or "+"
	LinkStyle          string // "inlined" or "referenced"
	LinkReferenceStyle string // "full", "collapsed" or "shortcut"
	LineBreak          string // emitted for <br>
	Preserve           []string
}

// DefaultRuleOptions returns the options the converter ships with.
func DefaultRuleOptions() RuleOptions {
	return RuleOptions{
		HeadingStyle:       "atx",
		CodeBlockStyle:     "fenced",
		EmDelimiter:        "*",
		StrongDelimiter:    "**",
		BulletListMarker:   "-",
		LinkStyle:          "inlined",
		LinkReferenceStyle: "full",
		LineBreak:          "  \n",
		Preserve:           slices.Clone(DefaultPreserve),
	}
}

// RuleConverter converts HTML to Markdown with html-to-markdown and the
// custom rule table from buildRules. Safe for concurrent use.
type RuleConverter struct {
	conv *md.Converter
}

// NewRuleConverter builds a converter from opts. Empty fields take defaults.
func NewRuleConverter(opts RuleOptions) *RuleConverter {
	opts = withRuleDefaults(opts)

	conv := md.NewConverter("", true, &md.Options{
		HeadingStyle:       opts.HeadingStyle,
		CodeBlockStyle:     opts.CodeBlockStyle,
		EmDelimiter:        opts.EmDelimiter,
		StrongDelimiter:    opts.StrongDelimiter,
		BulletListMarker:   opts.BulletListMarker,
		LinkStyle:          opts.LinkStyle,
		LinkReferenceStyle: opts.LinkReferenceStyle,
		EscapeMode:         "basic",
	})
	conv.Remove(removedElements...)
	conv.AddRules(buildRules(opts)...)
	if slices.Contains(opts.Preserve, "br") {
		conv.After(restoreLineBreaks(opts.LineBreak))
	}

	return &RuleConverter{conv: conv}
}

// ToMarkdown converts an HTML document or fragment to Markdown.
// html-to-markdown does not take a context, so the conversion runs in a
// goroutine and is abandoned on cancellation.
func (c *RuleConverter) ToMarkdown(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		markdown string
		err      error
	}

	done := make(chan result, 1)

	go func() {
		out, err := c.conv.ConvertString(content)
		if err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrMarkdownConversion, err)}
			return
		}
		done <- result{markdown: out}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.markdown, r.err
	}
}

// withRuleDefaults fills empty fields from DefaultRuleOptions and
// lower-cases the preserve list.
func withRuleDefaults(opts RuleOptions) RuleOptions {
	def := DefaultRuleOptions()
	if opts.HeadingStyle == "" {
		opts.HeadingStyle = def.HeadingStyle
	}
	if opts.CodeBlockStyle == "" {
		opts.CodeBlockStyle = def.CodeBlockStyle
	}
	if opts.EmDelimiter == "" {
		opts.EmDelimiter = def.EmDelimiter
	}
	if opts.StrongDelimiter == "" {
		opts.StrongDelimiter = def.StrongDelimiter
	}
	if opts.BulletListMarker == "" {
		opts.BulletListMarker = def.BulletListMarker
	}
	if opts.LinkStyle == "" {
		opts.LinkStyle = def.LinkStyle
	}
	if opts.LinkReferenceStyle == "" {
		opts.LinkReferenceStyle = def.LinkReferenceStyle
	}
	if opts.LineBreak == "" {
		opts.LineBreak = def.LineBreak
	}
	if opts.Preserve == nil {
		opts.Preserve = def.Preserve
	}

	preserve := make([]string, len(opts.Preserve))
	for i, tag := range opts.Preserve {
		preserve[i] = strings.ToLower(strings.TrimSpace(tag))
	}
	opts.Preserve = preserve
	return opts
}
