package pipeline

import (
	"regexp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/alnah/go-mdconv/internal/table"
)

// DefaultPreserve lists the elements converted by the engine's own
// CommonMark rules. Every other known element is reduced to its content.
var DefaultPreserve = []string{
	"a", "img", "ul", "ol", "li", "br", "p",
	"h1", "h2", "h3", "h4", "h5", "h6",
}

// removedElements are dropped together with their content.
var removedElements = []string{"style", "script"}

// knownElements is the closed set of tags the strip rule can target.
// Tags outside this set fall through to the engine's defaults.
var knownElements = []string{
	"a", "abbr", "address", "article", "aside",
	"b", "bdi", "bdo", "big", "blockquote", "br", "button",
	"caption", "center", "cite", "code", "col", "colgroup",
	"data", "dd", "del", "details", "dfn", "dialog", "div", "dl", "dt",
	"em", "fieldset", "figcaption", "figure", "font", "footer", "form",
	"h1", "h2", "h3", "h4", "h5", "h6", "header", "hgroup", "hr",
	"i", "img", "ins", "kbd", "label", "legend", "li",
	"main", "mark", "nav", "ol", "p", "pre", "q",
	"s", "samp", "section", "small", "span", "strike", "strong", "sub", "summary", "sup",
	"tbody", "td", "tfoot", "th", "thead", "time", "tr", "tt",
	"u", "ul", "var",
}

// IsKnownElement reports whether tag can be listed in a preserve set.
func IsKnownElement(tag string) bool {
	return slices.Contains(knownElements, strings.ToLower(tag))
}

// stripFilter returns the known elements that are not preserved.
func stripFilter(preserve []string) []string {
	keep := make(map[string]bool, len(preserve))
	for _, tag := range preserve {
		keep[strings.ToLower(tag)] = true
	}

	filter := make([]string, 0, len(knownElements))
	for _, tag := range knownElements {
		if keep[tag] {
			continue
		}
		filter = append(filter, tag)
	}
	return filter
}

// brMarker stands in for a line break until the engine has trimmed trailing
// spaces, which would otherwise eat the default "  \n" hard break.
const brMarker = "\uE010"

// danglingBreak matches a break that opens the document or ends a block or
// the document.
var danglingBreak = regexp.MustCompile(`^` + brMarker + `\n?|` + brMarker + `(\n\n|\n?$)`)

// selfSpacedElements are the inline elements whose engine rules pad
// themselves with a space when a neighbour needs one.
var selfSpacedElements = []string{"a", "strong", "b", "i", "em", "code", "kbd", "samp", "tt"}

// engineTrimmedElements are the elements the engine trims when it looks at a
// neighbour's text.
var engineTrimmedElements = []string{"a", "strong", "b", "i", "em", "del", "s", "strike", "code"}

// buildRules returns the custom rule table. html-to-markdown gives later
// rules precedence, so the table rule comes last.
func buildRules(opts RuleOptions) []md.Rule {
	filter := stripFilter(opts.Preserve)
	rules := []md.Rule{
		{
			Filter:      filter,
			Replacement: stripRule{stripped: filter}.replace,
		},
	}

	if slices.Contains(opts.Preserve, "br") {
		replacement := brMarker
		if strings.HasSuffix(opts.LineBreak, "\n") {
			replacement += "\n"
		}
		rules = append(rules, md.Rule{
			Filter: []string{"br"},
			Replacement: func(string, *goquery.Selection, *md.Options) *string {
				return md.String(replacement)
			},
		})
	}

	rules = append(rules, md.Rule{
		Filter:      []string{"table"},
		Replacement: tableReplacement,
	})
	return rules
}

// restoreLineBreaks returns the after-hook that swaps markers for lineBreak.
// A break at either end of the document or closing a block is dropped.
func restoreLineBreaks(lineBreak string) md.Afterhook {
	head := strings.TrimSuffix(lineBreak, "\n")
	return func(markdown string) string {
		if !strings.Contains(markdown, brMarker) {
			return markdown
		}
		markdown = danglingBreak.ReplaceAllString(markdown, "$1")
		return strings.ReplaceAll(markdown, brMarker, head)
	}
}

// stripRule reduces an element to its content and drops its attributes.
type stripRule struct {
	stripped []string
}

// replace keeps the converted content. Code is emitted as raw text:
// <pre> as a fenced block, a lone <code> as plain text.
func (r stripRule) replace(content string, selec *goquery.Selection, _ *md.Options) *string {
	switch goquery.NodeName(selec) {
	case "pre":
		code := strings.TrimSuffix(selec.Text(), "\n")
		fence := md.CalculateCodeFence('`', code)
		return md.String("\n\n" + fence + "\n" + code + "\n" + fence + "\n\n")
	case "code":
		content = selec.Text()
	}

	if md.IsInlineElement(goquery.NodeName(selec)) {
		content = r.keepSpaces(selec, content)
	}
	return md.String(content)
}

// keepSpaces restores the whitespace-only text nodes around an inline
// element, which the engine drops. A side is left alone when the neighbour
// pads itself or is a stripped element that pads toward this one.
func (r stripRule) keepSpaces(selec *goquery.Selection, content string) string {
	if content == "" || len(selec.Nodes) == 0 {
		return content
	}
	node := selec.Nodes[0]
	name := goquery.NodeName(selec)
	first, _ := utf8.DecodeRuneInString(content)
	last, _ := utf8.DecodeLastRuneInString(content)

	if prev, ok := acrossSpace(node.PrevSibling, false); ok && !unicode.IsSpace(first) {
		// A self-spaced neighbour adds its own trailing space unless this
		// element counts as trimmed or starts with punctuation.
		padsItself := r.selfSpaced(prev) &&
			!slices.Contains(engineTrimmedElements, name) && !unicode.IsPunct(first)
		if !padsItself {
			content = " " + content
		}
	}

	if next, ok := acrossSpace(node.NextSibling, true); ok && !unicode.IsSpace(last) {
		// A stripped neighbour pads its own leading side; a self-spaced one
		// does so whenever this element's text does not end in a space.
		if !slices.Contains(r.stripped, next.Data) && !r.selfSpaced(next) {
			content += " "
		}
	}
	return content
}

// selfSpaced reports whether n is converted by an engine rule that pads itself.
func (r stripRule) selfSpaced(n *html.Node) bool {
	if slices.Contains(r.stripped, n.Data) || !slices.Contains(selfSpacedElements, n.Data) {
		return false
	}
	if n.Data == "a" {
		for _, attr := range n.Attr {
			if attr.Key == "href" {
				href := strings.TrimSpace(attr.Val)
				return href != "" && href != "#"
			}
		}
		return false
	}
	return true
}

// acrossSpace returns the inline element on the far side of n when n is a
// whitespace-only text node. forward selects the walking direction.
func acrossSpace(n *html.Node, forward bool) (*html.Node, bool) {
	if n == nil || n.Type != html.TextNode || strings.TrimSpace(n.Data) != "" {
		return nil, false
	}
	far := n.PrevSibling
	if forward {
		far = n.NextSibling
	}
	if far == nil || far.Type != html.ElementNode || far.Data == "br" || !md.IsInlineElement(far.Data) {
		return nil, false
	}
	return far, true
}

// tableReplacement linearizes a <table> into a pipe table. A table without
// rows keeps its converted content.
func tableReplacement(content string, selec *goquery.Selection, _ *md.Options) *string {
	t := table.FromSelection(selec)
	if len(t.Rows) == 0 {
		return md.String(content)
	}
	return md.String(table.Render(t))
}
