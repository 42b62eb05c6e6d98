package pipeline

import (
	"context"
	"fmt"
	"html"
	"strings"
)

// documentTemplate wraps a fragment in a complete HTML5 document.
const documentTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
</head>
<body>
%s
</body>
</html>`

// defaultDocumentTitle is used when the fragment has no <h1>.
const defaultDocumentTitle = "Document"

// WrapDocument returns fragment as a standalone HTML5 document. The title is
// the text of the first <h1>, or "Document".
func WrapDocument(fragment string) string {
	title := firstHeadingText(fragment)
	if title == "" {
		title = defaultDocumentTitle
	}
	return fmt.Sprintf(documentTemplate, html.EscapeString(title), fragment)
}

// firstHeadingText returns the unescaped text of the first <h1> element.
func firstHeadingText(fragment string) string {
	doc, err := parseFragment(fragment)
	if err != nil {
		return ""
	}
	h1 := findElement(doc, "h1")
	if h1 == nil {
		return ""
	}
	return strings.TrimSpace(textContent(h1))
}

// CSSInjector defines the contract for CSS injection into HTML.
type CSSInjector interface {
	InjectCSS(ctx context.Context, htmlContent, cssContent string) string
}

// CSSInjection injects CSS as a <style> block into HTML content.
type CSSInjection struct{}

// InjectCSS inserts a <style> block into HTML content.
// Tries </head> first, then <body>, then prepends to the HTML.
// CSS content is sanitized so it cannot close the style element.
func (s *CSSInjection) InjectCSS(ctx context.Context, htmlContent, cssContent string) string {
	if cssContent == "" {
		return htmlContent
	}

	if ctx.Err() != nil {
		return htmlContent
	}

	styleBlock := "<style>" + sanitizeCSS(cssContent) + "</style>"
	lowerHTML := strings.ToLower(htmlContent)

	if idx := strings.Index(lowerHTML, "</head>"); idx != -1 {
		return htmlContent[:idx] + styleBlock + htmlContent[idx:]
	}

	if idx := strings.Index(lowerHTML, "<body"); idx != -1 {
		if closeIdx := strings.Index(htmlContent[idx:], ">"); closeIdx != -1 {
			insertPos := idx + closeIdx + 1
			return htmlContent[:insertPos] + styleBlock + htmlContent[insertPos:]
		}
	}

	return styleBlock + htmlContent
}

// sanitizeCSS escapes "</" so user CSS cannot break out of the <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
