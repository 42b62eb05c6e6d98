package main

import (
	"fmt"
	"io"
)

// printUsage prints the CLI usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdconv [flags] <input>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert HTML to Markdown or Markdown to HTML.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    File, directory, or - for stdin (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  .html/.htm files convert to .md, .md/.markdown files convert to .html.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>        Output file or directory")
	fmt.Fprintln(w, "  -d, --direction <dir>      html2md or md2html (required for stdin)")
	fmt.Fprintln(w, "  -c, --config <name>        Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>          Parallel workers (0 = auto)")
	fmt.Fprintln(w, "  -t, --timeout <d>          Per-file timeout (default 30s)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "HTML to Markdown:")
	fmt.Fprintln(w, "      --heading-style <s>    atx, setext")
	fmt.Fprintln(w, "      --code-style <s>       fenced, indented")
	fmt.Fprintln(w, "      --bullet <s>           -, *, +")
	fmt.Fprintln(w, "      --link-style <s>       inlined, referenced")
	fmt.Fprintln(w, "      --preserve <tags>      Keep formatting of these elements (h1,em,...)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Markdown to HTML:")
	fmt.Fprintln(w, "      --standalone           Full HTML document with stylesheet")
	fmt.Fprintln(w, "      --hard-wraps           Newlines become <br>")
	fmt.Fprintln(w, "      --no-highlight         Disable syntax highlighting")
	fmt.Fprintln(w, "      --highlight-style <s>  Chroma style (e.g. github, monokai)")
	fmt.Fprintln(w, "      --no-special-blocks    Render mermaid and math fences as code")
	fmt.Fprintln(w, "      --raw-html             Pass raw HTML through")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Styling:")
	fmt.Fprintln(w, "      --style <name|path>    Stylesheet: default, plain, or a CSS file")
	fmt.Fprintln(w, "      --css <path>           Extra CSS file")
	fmt.Fprintln(w, "      --asset-path <dir>     Custom style directory ({dir}/styles/{name}.css)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Preview (Markdown to HTML, needs Chrome):")
	fmt.Fprintln(w, "      --preview              Also write <output>.png")
	fmt.Fprintln(w, "      --preview-width <n>    Viewport width")
	fmt.Fprintln(w, "      --preview-height <n>   Viewport height")
	fmt.Fprintln(w, "      --full-page            Capture the whole page")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet                Only show errors")
	fmt.Fprintln(w, "  -v, --verbose              Show detailed timing")
	fmt.Fprintln(w, "      --version              Show version information")
	fmt.Fprintln(w, "  -h, --help                 Show this help")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MDCONV_CONFIG, MDCONV_DIRECTION, MDCONV_STYLE, MDCONV_TIMEOUT,")
	fmt.Fprintln(w, "  MDCONV_INPUT_DIR, MDCONV_OUTPUT_DIR, MDCONV_ASSET_PATH, MDCONV_WORKERS")
}

// printVersion prints version information.
func printVersion(w io.Writer) {
	fmt.Fprintf(w, "mdconv %s\n", Version)
}
