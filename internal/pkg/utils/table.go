//nolint:revive,nolintlint // I like this package name, leave me alone
package utils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	TagTable = "table"
	TagTr    = "tr"
	TagTh    = "th"
	TagTd    = "td"
	TagA     = "a"
)

var ErrTableNotFound = errors.New("table not found")

// Table holds the rows of one HTML table, nested tables excluded.
type Table struct {
	Rows []Row
}

// Row is a table row. Cells only contains the <td> cells; header cells only flag the row.
type Row struct {
	Header bool
	Cells  []Cell
}

type Cell struct {
	Text    string // whitespace-normalized
	RawText string // as found in the document, entities decoded
	Anchor  *Anchor
}

// Anchor is the first link within a cell.
type Anchor struct {
	Text string
	Href string
}

// FindTableByClass parses rawHTML and returns the last table whose class attribute contains
// marker, case-insensitively. Markup nests its tables, the last match is the innermost one.
func FindTableByClass(rawHTML, marker string) (Table, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return Table{}, fmt.Errorf("failed parsing html: %w", err)
	}

	table, ok := lastTableByClass(doc.Selection, marker)
	if !ok {
		return Table{}, fmt.Errorf("%w: class containing %q", ErrTableNotFound, marker)
	}

	return ParseTable(table), nil
}

func lastTableByClass(sel *goquery.Selection, marker string) (*goquery.Selection, bool) {
	marker = strings.ToLower(marker)
	matches := sel.Find(TagTable).FilterFunction(func(_ int, s *goquery.Selection) bool {
		return strings.Contains(strings.ToLower(s.AttrOr("class", "")), marker)
	})
	if matches.Length() == 0 {
		return nil, false
	}
	return matches.Last(), true
}

// ParseTable collects the rows of table in document order, skipping rows of nested tables.
func ParseTable(table *goquery.Selection) Table {
	var t Table

	table.Find(TagTr).Each(func(_ int, tr *goquery.Selection) {
		if !tr.Closest(TagTable).IsSelection(table) {
			return
		}
		t.Rows = append(t.Rows, parseTableRow(tr))
	})

	return t
}

func parseTableRow(tr *goquery.Selection) Row {
	row := Row{Header: tr.ChildrenFiltered(TagTh).Length() > 0}

	tr.ChildrenFiltered(TagTd).Each(func(_ int, td *goquery.Selection) {
		raw := td.Text()
		cell := Cell{Text: NormalizeSpaces(raw), RawText: raw}

		if a := td.Find(TagA).First(); a.Length() > 0 {
			cell.Anchor = &Anchor{Text: NormalizeSpaces(a.Text()), Href: a.AttrOr("href", "")}
		}

		row.Cells = append(row.Cells, cell)
	})

	return row
}

// CellText returns the normalized text of cell i, or "" when the row is shorter.
func (r Row) CellText(i int) string {
	if i < 0 || i >= len(r.Cells) {
		return ""
	}
	return r.Cells[i].Text
}
