package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared by every invocation.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
	version bool
	help    bool
}

// htmlFlags holds html2md formatting flags.
type htmlFlags struct {
	headingStyle   string
	codeBlockStyle string
	bulletMarker   string
	linkStyle      string
	preserve       []string
}

// markdownFlags holds md2html rendering flags.
type markdownFlags struct {
	standalone     bool
	hardWraps      bool
	noHighlight    bool
	highlightStyle string
	noSpecial      bool
	rawHTML        bool
}

// assetFlags holds stylesheet flags.
type assetFlags struct {
	style     string // Name, path or CSS for standalone output
	css       string // Extra CSS file appended after the stylesheet
	assetPath string // Override style directory
}

// previewFlags holds PNG preview flags.
type previewFlags struct {
	enabled  bool
	width    int
	height   int
	fullPage bool
}

// convertFlags holds all CLI flags.
type convertFlags struct {
	common    commonFlags
	output    string
	direction string
	workers   int
	timeout   string
	html      htmlFlags
	markdown  markdownFlags
	assets    assetFlags
	preview   previewFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
	fs.BoolVar(&f.version, "version", false, "show version information")
	fs.BoolVarP(&f.help, "help", "h", false, "show help")
}

// addHTMLFlags adds html2md flags to a FlagSet.
func addHTMLFlags(fs *flag.FlagSet, f *htmlFlags) {
	fs.StringVar(&f.headingStyle, "heading-style", "", "heading style: atx, setext")
	fs.StringVar(&f.codeBlockStyle, "code-style", "", "code block style: fenced, indented")
	fs.StringVar(&f.bulletMarker, "bullet", "", "bullet list marker: -, *, +")
	fs.StringVar(&f.linkStyle, "link-style", "", "link style: inlined, referenced")
	fs.StringSliceVar(&f.preserve, "preserve", nil, "elements whose formatting is kept (comma-separated)")
}

// addMarkdownFlags adds md2html flags to a FlagSet.
func addMarkdownFlags(fs *flag.FlagSet, f *markdownFlags) {
	fs.BoolVar(&f.standalone, "standalone", false, "emit a full HTML document")
	fs.BoolVar(&f.hardWraps, "hard-wraps", false, "render newlines as <br>")
	fs.BoolVar(&f.noHighlight, "no-highlight", false, "disable syntax highlighting")
	fs.StringVar(&f.highlightStyle, "highlight-style", "", "chroma style for highlighted code")
	fs.BoolVar(&f.noSpecial, "no-special-blocks", false, "render mermaid and math fences as code")
	fs.BoolVar(&f.rawHTML, "raw-html", false, "pass raw HTML in Markdown through")
}

// addAssetFlags adds stylesheet flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.style, "style", "", "stylesheet name or file path")
	fs.StringVar(&f.css, "css", "", "extra CSS file")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom style directory")
}

// addPreviewFlags adds preview flags to a FlagSet.
func addPreviewFlags(fs *flag.FlagSet, f *previewFlags) {
	fs.BoolVar(&f.enabled, "preview", false, "also write a PNG preview next to the output")
	fs.IntVar(&f.width, "preview-width", 0, "preview viewport width in pixels")
	fs.IntVar(&f.height, "preview-height", 0, "preview viewport height in pixels")
	fs.BoolVar(&f.fullPage, "full-page", false, "capture the whole page, not just the viewport")
}

// parseConvertFlags parses flags and returns positional args.
// Errors are returned, not printed.
func parseConvertFlags(args []string) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("mdconv", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	f := &convertFlags{}

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.StringVarP(&f.direction, "direction", "d", "", "html2md or md2html (default: from extension)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "per-file timeout (e.g., 30s, 2m)")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addHTMLFlags(fs, &f.html)
	addMarkdownFlags(fs, &f.markdown)
	addAssetFlags(fs, &f.assets)
	addPreviewFlags(fs, &f.preview)

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
