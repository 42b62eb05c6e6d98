// Package mdconv converts HTML to Markdown and Markdown to HTML.
//
// # Quick Start
//
// Create a converter, convert, and close when done:
//
//	conv, err := mdconv.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, mdconv.Input{
//	    Content:   "<h1>Hello</h1><p><strong>World</strong></p>",
//	    Direction: mdconv.HTMLToMarkdown,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(string(result.Output))
//
// # HTML to Markdown
//
// Elements are converted by a fixed rule table. Tables become GFM pipe
// tables, one line per row, with a dash separator after each header row.
// Cell text is not padded or escaped and spans are ignored. Elements
// outside HTMLOptions.Preserve lose their markup and keep their text;
// <pre> is fenced. <style> and <script> are dropped.
//
// # Markdown to HTML
//
// Markdown is rendered with Goldmark (GFM tables, strikethrough, task lists,
// footnotes) and optional chroma highlighting. Fenced mermaid and math
// blocks become marker elements for client-side renderers:
//
//	```mermaid          ->  <pre class="mermaid">...</pre>
//	```math             ->  <div class="math-block">$$...$$</div>
//
// Set Input.Standalone for a full HTML document with the stylesheet
// injected, and Input.Preview for a PNG screenshot rendered by headless
// Chrome:
//
//	result, err := conv.Convert(ctx, mdconv.Input{
//	    Content:    markdown,
//	    Direction:  mdconv.MarkdownToHTML,
//	    SourceDir:  "/path/to/markdown", // for relative image paths
//	    Standalone: true,
//	    Preview:    true,
//	})
//	os.WriteFile("out.png", result.Preview, 0o644)
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	conv, err := mdconv.NewConverter(
//	    mdconv.WithStyle("plain"),
//	    mdconv.WithHTMLOptions(mdconv.HTMLOptions{HeadingStyle: mdconv.HeadingSetext}),
//	    mdconv.WithMarkdownOptions(mdconv.MarkdownOptions{HardWraps: true}),
//	    mdconv.WithPreviewSettings(mdconv.PreviewSettings{Width: 800, Height: 600}),
//	)
//
// Custom stylesheets are read from {assetPath}/styles/{name}.css with
// WithAssetPath and take precedence over the built-in ones.
//
// # Parallel Processing
//
// For batch conversion, use ConverterPool:
//
//	pool, err := mdconv.NewConverterPool(mdconv.ResolvePoolSize(0))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer pool.Close()
//
//	conv, err := pool.Acquire(ctx)
//	if err != nil {
//	    return err
//	}
//	defer pool.Release(conv)
//	result, err := conv.Convert(ctx, input)
//
// # Browser Requirements
//
// Previews require Chrome/Chromium. go-rod downloads a managed Chromium on
// first use (~/.cache/rod/browser/). Set ROD_BROWSER_BIN to use an installed
// binary; the sandbox is disabled when it is set or when CI=true.
package mdconv
