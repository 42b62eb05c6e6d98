package table

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Cell is a single <th> or <td>.
type Cell struct {
	Text   string // trimmed text content
	Header bool   // true for <th>

	// Declared spans. Recorded for callers, ignored by Render.
	ColSpan int
	RowSpan int
}

// Row is an ordered list of cells.
type Row struct {
	Cells  []Cell
	InHead bool // direct parent is <thead>
}

// HasHeaderCell reports whether the row holds at least one header cell.
func (r Row) HasHeaderCell() bool {
	for _, c := range r.Cells {
		if c.Header {
			return true
		}
	}
	return false
}

// Table is an ordered list of rows. A zero Table renders to "".
type Table struct {
	Rows []Row
}

// IsHeaderRow reports whether row i is rendered as a header row.
// Only a <thead> row or the first row can qualify; later rows holding
// <th> cells stay body rows.
func (t Table) IsHeaderRow(i int) bool {
	if i < 0 || i >= len(t.Rows) {
		return false
	}
	row := t.Rows[i]
	return row.InHead || (i == 0 && row.HasHeaderCell())
}

// FromSelection builds a Table from a <table> selection.
// Rows are every descendant <tr> in document order and cells every
// descendant <th>/<td> of that row, so rows of nested tables are included.
func FromSelection(sel *goquery.Selection) Table {
	var t Table
	sel.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		row := Row{InHead: goquery.NodeName(tr.Parent()) == "thead"}
		tr.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
			row.Cells = append(row.Cells, Cell{
				Text:    strings.TrimSpace(cell.Text()),
				Header:  goquery.NodeName(cell) == "th",
				ColSpan: spanAttr(cell, "colspan"),
				RowSpan: spanAttr(cell, "rowspan"),
			})
		})
		t.Rows = append(t.Rows, row)
	})
	return t
}

// spanAttr returns the integer value of a span attribute, 1 when absent or invalid.
func spanAttr(sel *goquery.Selection, name string) int {
	v, ok := sel.Attr(name)
	if !ok {
		return 1
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 1 {
		return 1
	}
	return n
}
