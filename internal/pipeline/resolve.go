package pipeline

import (
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// urlAttrs maps elements to the attribute holding a resource reference.
var urlAttrs = map[atom.Atom]string{
	atom.A:      "href",
	atom.Img:    "src",
	atom.Source: "src",
	atom.Video:  "poster",
}

// ResolveRelativeURLs rewrites relative references in an HTML fragment to
// absolute file:// URLs under sourceDir, so the fragment renders the same
// from a temporary file. References that would leave sourceDir, anchors,
// absolute paths and URLs with a scheme are left alone.
// An empty sourceDir returns the fragment unchanged.
func ResolveRelativeURLs(fragment, sourceDir string) (string, error) {
	if sourceDir == "" {
		return fragment, nil
	}

	base, err := filepath.Abs(sourceDir)
	if err != nil {
		return "", err
	}

	doc, err := parseFragment(fragment)
	if err != nil {
		return "", err
	}

	walk(doc, func(n *html.Node) {
		key, ok := urlAttrs[n.DataAtom]
		if !ok {
			return
		}
		for i := range n.Attr {
			if n.Attr[i].Key != key {
				continue
			}
			if resolved, ok := resolveReference(n.Attr[i].Val, base); ok {
				n.Attr[i].Val = resolved
			}
		}
	})

	return renderChildren(doc)
}

// resolveReference returns the file:// URL for ref when ref is a relative
// path that stays inside base.
func resolveReference(ref, base string) (string, bool) {
	if ref == "" || strings.HasPrefix(ref, "#") || strings.HasPrefix(ref, "//") {
		return "", false
	}
	if u, err := url.Parse(ref); err != nil || u.Scheme != "" {
		return "", false
	}
	if filepath.IsAbs(ref) || strings.HasPrefix(ref, "/") {
		return "", false
	}

	abs := filepath.Join(base, filepath.FromSlash(ref))
	rel, err := filepath.Rel(base, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}

	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return u.String(), true
}

// parseFragment parses HTML in a <body> context and hangs the resulting
// nodes under a document node.
func parseFragment(content string) (*html.Node, error) {
	body := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	nodes, err := html.ParseFragment(strings.NewReader(content), body)
	if err != nil {
		return nil, err
	}

	root := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	return root, nil
}

// renderChildren renders the children of n without a wrapper.
func renderChildren(n *html.Node) (string, error) {
	var buf strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// walk calls fn for every element node in document order.
func walk(n *html.Node, fn func(*html.Node)) {
	if n.Type == html.ElementNode {
		fn(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

// findElement returns the first element named tag, or nil.
func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// textContent concatenates all text below n.
func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(textContent(c))
	}
	return b.String()
}
