// Package pipeline implements both conversion directions.
//
// HTML to Markdown:
//   - RuleConverter drives html-to-markdown with a fixed rule table keyed by
//     element tag (table linearization, attribute stripping, fenced <pre>,
//     dropped <style>/<script>).
//
// Markdown to HTML:
//   - BlockPreprocessor normalizes line endings and lifts mermaid and math
//     fenced blocks out of the source before Goldmark sees them.
//   - GoldmarkConverter renders GFM with optional chroma highlighting.
//   - SpecialBlocks.Restore puts the lifted blocks back as marker elements.
//   - WrapDocument, CSSInjection and ResolveRelativeURLs turn the fragment
//     into a standalone document suitable for a browser preview.
//
// Screenshot rendering of that document lives in the root mdconv package,
// which owns the headless browser.
package pipeline
