package table

import "strings"

// minSeparatorDashes is the shortest dash run in a separator field.
const minSeparatorDashes = 3

// Render converts t into a GFM pipe table framed by one blank line on each side.
// A table with no rows renders to "".
//
// Output is deterministic and t is never modified.
func Render(t Table) string {
	if len(t.Rows) == 0 {
		return ""
	}

	lines := make([]string, 0, len(t.Rows)+1)
	var separator []string

	for i, row := range t.Rows {
		header := t.IsHeaderRow(i)

		var b strings.Builder
		b.WriteString("| ")
		for j, cell := range row.Cells {
			text := strings.TrimSpace(cell.Text)
			b.WriteString(text)
			b.WriteString(" | ")

			if header {
				dashes := strings.Repeat("-", max(minSeparatorDashes, textLength(text)))
				if j < len(separator) {
					separator[j] = dashes
				} else {
					separator = append(separator, dashes)
				}
			}
		}
		lines = append(lines, b.String())

		if header && len(separator) > 0 {
			lines = append(lines, separatorLine(separator))
		}
	}

	return "\n\n" + strings.Join(lines, "\n") + "\n\n"
}

// separatorLine joins dash runs as "| --- | --- |".
func separatorLine(dashes []string) string {
	fields := make([]string, len(dashes))
	for i, d := range dashes {
		fields[i] = d + " "
	}
	return "| " + strings.Join(fields, "| ") + "|"
}

// textLength counts UTF-16 code units, so characters outside the BMP
// (emoji, rare CJK) count twice.
func textLength(s string) int {
	n := 0
	for _, r := range s {
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
	}
	return n
}
