package mdconv

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/alnah/go-mdconv/internal/assets"
	"github.com/alnah/go-mdconv/internal/fileutil"
	"github.com/alnah/go-mdconv/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownConverter    = (*pipeline.RuleConverter)(nil)
	_ pipeline.MarkdownPreprocessor = (*pipeline.BlockPreprocessor)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.GoldmarkConverter)(nil)
	_ pipeline.CSSInjector          = (*pipeline.CSSInjection)(nil)
	_ previewer                     = (*rodPreviewer)(nil)
	_ pageRenderer                  = (*rodRenderer)(nil)
)

// Converter runs HTML to Markdown and Markdown to HTML conversions.
// Create with NewConverter, use Convert for conversion, and Close when done.
// Convert is safe for concurrent use; the preview browser is shared.
type Converter struct {
	cfg           converterConfig
	assetLoader   assets.StyleLoader
	mdConverter   pipeline.MarkdownConverter
	preprocessor  pipeline.MarkdownPreprocessor
	htmlConverter pipeline.HTMLConverter
	cssInjector   pipeline.CSSInjector
	previewer     previewer
	highlightCSS  string
}

// NewConverter creates a Converter with default configuration.
// Use options to customize behavior (e.g., WithHTMLOptions, WithStyle).
// Returns error if an option is invalid or the style cannot be loaded.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg:         converterConfig{timeout: defaultTimeout},
		cssInjector: &pipeline.CSSInjection{},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.cfg.html == nil {
		c.cfg.html = DefaultHTMLOptions()
	}
	if c.cfg.markdown == nil {
		c.cfg.markdown = DefaultMarkdownOptions()
	}
	if c.cfg.preview == nil {
		c.cfg.preview = DefaultPreviewSettings()
	}
	if err := c.validateOptions(); err != nil {
		return nil, err
	}

	resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
	if err != nil {
		return nil, convertAssetError(err)
	}
	c.assetLoader = resolver

	if err := c.resolveStyle(); err != nil {
		return nil, err
	}

	mdOpts := c.cfg.markdown
	if mdOpts.Highlight {
		c.highlightCSS, err = pipeline.HighlightCSS(mdOpts.HighlightStyle)
		if err != nil {
			return nil, err
		}
	}

	// Components already set by internal options are kept.
	if c.mdConverter == nil {
		c.mdConverter = pipeline.NewRuleConverter(c.cfg.html.ruleOptions())
	}
	if c.preprocessor == nil {
		c.preprocessor = &pipeline.BlockPreprocessor{SpecialBlocks: mdOpts.SpecialBlocks}
	}
	if c.htmlConverter == nil {
		c.htmlConverter = pipeline.NewGoldmarkConverter(pipeline.GoldmarkOptions{
			HardWraps:      mdOpts.HardWraps,
			Highlight:      mdOpts.Highlight,
			HighlightStyle: mdOpts.HighlightStyle,
			AllowRawHTML:   mdOpts.AllowRawHTML,
		})
	}
	if c.previewer == nil {
		c.previewer = newRodPreviewer(c.cfg.timeout, *c.cfg.preview)
	}

	return c, nil
}

// Convert runs the pipeline for input.Direction and returns the result.
// Empty or whitespace-only content yields an empty Output and no error.
// The context is used for cancellation and timeout.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := input.Direction.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if strings.TrimSpace(input.Content) == "" {
		return &ConvertResult{Output: []byte{}}, nil
	}

	switch input.Direction {
	case HTMLToMarkdown:
		return c.toMarkdown(ctx, input.Content)
	default:
		return c.toHTML(ctx, input.Content, input)
	}
}

// toMarkdown converts HTML to Markdown. No preview is produced in this
// direction.
func (c *Converter) toMarkdown(ctx context.Context, content string) (*ConvertResult, error) {
	markdown, err := c.mdConverter.ToMarkdown(ctx, content)
	if err != nil {
		return nil, fmt.Errorf("converting to Markdown: %w", err)
	}
	return &ConvertResult{Output: []byte(markdown)}, nil
}

// toHTML converts Markdown to an HTML fragment or standalone document and
// renders the optional preview.
func (c *Converter) toHTML(ctx context.Context, content string, input Input) (*ConvertResult, error) {
	mdContent, blocks := c.preprocessor.PreprocessMarkdown(ctx, content)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	fragment, err := c.htmlConverter.ToHTML(ctx, mdContent)
	if err != nil {
		return nil, fmt.Errorf("converting to HTML: %w", err)
	}

	// Placeholders survive Goldmark as text, so markers are restored here
	// without enabling raw HTML.
	fragment = blocks.Restore(fragment)

	if input.SourceDir != "" {
		fragment, err = pipeline.ResolveRelativeURLs(fragment, input.SourceDir)
		if err != nil {
			return nil, fmt.Errorf("resolving relative paths: %w", err)
		}
	}

	res := &ConvertResult{Output: []byte(fragment)}
	if !input.Standalone && !input.Preview {
		return res, nil
	}

	document := pipeline.WrapDocument(fragment)
	document = c.cssInjector.InjectCSS(ctx, document, c.documentCSS(input.CSS))
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	if input.Standalone {
		res.Output = []byte(document)
	}

	if input.Preview {
		png, err := c.previewer.Capture(ctx, document)
		if err != nil {
			return nil, fmt.Errorf("rendering preview: %w", err)
		}
		res.Preview = png
	}

	return res, nil
}

// documentCSS combines the stylesheet, highlight classes and user CSS.
// Order matters: user CSS last so it can override.
func (c *Converter) documentCSS(userCSS string) string {
	parts := make([]string, 0, 3)
	for _, css := range []string{c.cfg.resolvedStyle, c.highlightCSS, userCSS} {
		if css != "" {
			parts = append(parts, css)
		}
	}
	return strings.Join(parts, "\n")
}

// Close releases resources (headless Chrome browser).
func (c *Converter) Close() error {
	if c.previewer != nil {
		return c.previewer.Close()
	}
	return nil
}

// validateOptions checks the configured option values.
func (c *Converter) validateOptions() error {
	if err := c.cfg.html.Validate(); err != nil {
		return err
	}
	if err := c.cfg.markdown.Validate(); err != nil {
		return err
	}
	return c.cfg.preview.Validate()
}

// resolveStyle resolves the style input (name, path, or CSS content) to CSS
// content. An empty input selects the built-in default style.
func (c *Converter) resolveStyle() error {
	input := c.cfg.styleInput
	if input == "" {
		input = DefaultStyle
	}

	switch fileutil.ClassifyStyle(input) {
	case fileutil.StyleInline:
		c.cfg.resolvedStyle = input
		return nil
	case fileutil.StyleFile:
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("loading style file %q: %w", input, err)
		}
		c.cfg.resolvedStyle = string(content)
		return nil
	}

	css, err := c.assetLoader.LoadStyle(input)
	if err != nil {
		return fmt.Errorf("loading style %q: %w", input, convertAssetError(err))
	}
	c.cfg.resolvedStyle = css
	return nil
}
