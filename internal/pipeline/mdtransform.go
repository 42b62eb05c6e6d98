package pipeline

import (
	"context"
	"html"
	"regexp"
	"strconv"
	"strings"
)

// Special block placeholders use Unicode Private Use Area characters.
// They pass through Goldmark unchanged, so the marker elements can be
// restored afterwards without enabling raw HTML.
const (
	BlockStartPlaceholder = "\uE002" // U+E002: Private Use Area
	BlockEndPlaceholder   = "\uE003" // U+E003: Private Use Area
)

// Special block kinds.
const (
	BlockMermaid = "mermaid"
	BlockMath    = "math"
)

// Precompiled regex patterns for performance.
var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// Opening line of a ```mermaid or ```math fence
	specialOpen = regexp.MustCompile("^```(mermaid|math)[ \\t]*$")

	// Any fence line: up to three spaces, then a run of ` or ~
	fenceLine = regexp.MustCompile("^ {0,3}(`{3,}|~{3,})(.*)$")

	// A placeholder Goldmark wrapped in its own paragraph, or left inline
	paragraphPlaceholder = regexp.MustCompile(`<p>` + BlockStartPlaceholder + `(\d+)` + BlockEndPlaceholder + `</p>`)
	inlinePlaceholder    = regexp.MustCompile(BlockStartPlaceholder + `(\d+)` + BlockEndPlaceholder)
)

// SpecialBlock is a fenced block lifted out of Markdown before conversion.
type SpecialBlock struct {
	Kind    string // BlockMermaid or BlockMath
	Content string
}

// SpecialBlocks holds lifted blocks in placeholder order.
type SpecialBlocks []SpecialBlock

// MarkdownPreprocessor defines the contract for markdown preprocessing.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) (string, SpecialBlocks)
}

// BlockPreprocessor normalizes line endings and, when SpecialBlocks is set,
// replaces mermaid and math fences with placeholders.
type BlockPreprocessor struct {
	SpecialBlocks bool
}

// PreprocessMarkdown applies all transformations to prepare Markdown for conversion.
func (p *BlockPreprocessor) PreprocessMarkdown(ctx context.Context, content string) (string, SpecialBlocks) {
	if ctx.Err() != nil {
		return content, nil
	}

	content = normalizeLineEndings(content)
	if !p.SpecialBlocks {
		return content, nil
	}
	return extractSpecialBlocks(content)
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// extractSpecialBlocks swaps each special fence for a numbered placeholder
// paragraph and returns the lifted blocks. Fences nested inside another
// fenced block are left as code.
func extractSpecialBlocks(content string) (string, SpecialBlocks) {
	var (
		blocks SpecialBlocks
		out    strings.Builder
		outer  string // open ordinary fence, "" when outside code
	)

	lines := strings.SplitAfter(content, "\n")
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		text := strings.TrimRight(line, "\n")

		if outer != "" {
			if closesFence(text, outer) {
				outer = ""
			}
			out.WriteString(line)
			continue
		}

		if m := specialOpen.FindStringSubmatch(text); m != nil {
			if end := specialClose(lines, i+1); end >= 0 {
				body := strings.TrimSuffix(strings.Join(lines[i+1:end], ""), "\n")
				blocks = append(blocks, SpecialBlock{Kind: m[1], Content: body})
				out.WriteString("\n\n" + BlockStartPlaceholder + strconv.Itoa(len(blocks)-1) + BlockEndPlaceholder + "\n\n")
				i = end
				continue
			}
		}

		if m := fenceLine.FindStringSubmatch(text); m != nil {
			outer = m[1]
		}
		out.WriteString(line)
	}
	return out.String(), blocks
}

// specialClose returns the index of the first bare ``` line from start, or -1.
func specialClose(lines []string, start int) int {
	for j := start; j < len(lines); j++ {
		if strings.TrimRight(lines[j], " \t\n") == "```" {
			return j
		}
	}
	return -1
}

// closesFence reports whether line closes a fence opened with marker: the
// same character, at least as many times, and nothing else.
func closesFence(line, marker string) bool {
	m := fenceLine.FindStringSubmatch(line)
	if m == nil || strings.TrimSpace(m[2]) != "" {
		return false
	}
	return m[1][0] == marker[0] && len(m[1]) >= len(marker)
}

// Restore replaces placeholders in Goldmark output with marker elements:
// <pre class="mermaid"> for diagrams and <div class="math-block">$$..$$</div>
// for display math. Placeholders with unknown indexes are removed.
func (b SpecialBlocks) Restore(htmlContent string) string {
	if len(b) == 0 {
		return htmlContent
	}

	replace := func(pattern *regexp.Regexp) {
		htmlContent = pattern.ReplaceAllStringFunc(htmlContent, func(match string) string {
			idx, err := strconv.Atoi(pattern.FindStringSubmatch(match)[1])
			if err != nil || idx < 0 || idx >= len(b) {
				return ""
			}
			return b[idx].render()
		})
	}
	replace(paragraphPlaceholder)
	replace(inlinePlaceholder)
	return htmlContent
}

func (s SpecialBlock) render() string {
	switch s.Kind {
	case BlockMath:
		return `<div class="math-block">$$` + html.EscapeString(strings.TrimSpace(s.Content)) + `$$</div>`
	default:
		return `<pre class="mermaid">` + html.EscapeString(s.Content) + `</pre>`
	}
}
