//nolint:revive,nolintlint // package name matches the package being tested
package utils

import (
	"errors"
	"testing"
)

func TestFindTableByClass(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		html        string
		marker      string
		wantErr     error
		wantRows    int
		wantFirstTd string
	}{
		{
			name: "single matching table",
			html: `<table class="history"><tr><th>Datum</th></tr>
				<tr><td>18-7-2014</td><td>Arena</td></tr></table>`,
			marker:      "history",
			wantRows:    2,
			wantFirstTd: "18-7-2014",
		},
		{
			name: "class match is case-insensitive substring",
			html: `<table class="grid tblHistoryCard"><tr><td>one</td></tr></table>`,
			marker:      "historycard",
			wantRows:    1,
			wantFirstTd: "one",
		},
		{
			name: "last matching table wins and nested rows are excluded",
			html: `<table class="history-outer"><tr><td>outer</td></tr><tr><td>
					<table class="history-inner"><tr><td>inner 1</td></tr><tr><td>inner 2</td></tr></table>
				</td></tr></table>`,
			marker:      "history",
			wantRows:    2,
			wantFirstTd: "inner 1",
		},
		{
			name: "outer table rows skip nested table rows",
			html: `<table class="history"><tr><td>outer 1</td></tr><tr><td>
					<table class="layout"><tr><td>inner</td></tr></table>
				</td></tr><tr><td>outer 3</td></tr></table>`,
			marker:      "history",
			wantRows:    3,
			wantFirstTd: "outer 1",
		},
		{
			name:    "no matching table",
			html:    `<table class="other"><tr><td>x</td></tr></table>`,
			marker:  "history",
			wantErr: ErrTableNotFound,
		},
		{
			name:    "no table at all",
			html:    `<p>nothing here</p>`,
			marker:  "history",
			wantErr: ErrTableNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			table, err := FindTableByClass(tt.html, tt.marker)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("FindTableByClass() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("FindTableByClass() error = %v", err)
			}
			if len(table.Rows) != tt.wantRows {
				t.Fatalf("got %d rows, want %d", len(table.Rows), tt.wantRows)
			}
			first := table.Rows[0]
			if first.Header {
				first = table.Rows[1]
			}
			if got := first.CellText(0); got != tt.wantFirstTd {
				t.Errorf("first cell = %q, want %q", got, tt.wantFirstTd)
			}
		})
	}
}

func TestParseTable_RowShape(t *testing.T) {
	t.Parallel()

	html := `<table class="history">
		<tr><th>Datum</th><th>Film</th></tr>
		<tr>
			<td> 18-7-2014&nbsp;21:30 </td>
			<td>Pathé <b>Arena</b></td>
			<td><a href="javascript:GetReservationDetails('25','26','27','x')"> Opgehaald </a></td>
		</tr>
	</table>`

	table, err := FindTableByClass(html, "history")
	if err != nil {
		t.Fatalf("FindTableByClass() error = %v", err)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(table.Rows))
	}

	header := table.Rows[0]
	if !header.Header || len(header.Cells) != 0 {
		t.Errorf("header row = %+v, want Header with no td cells", header)
	}

	row := table.Rows[1]
	if row.Header {
		t.Error("data row flagged as header")
	}
	if len(row.Cells) != 3 {
		t.Fatalf("got %d cells, want 3", len(row.Cells))
	}
	if row.CellText(0) != "18-7-2014 21:30" {
		t.Errorf("cell 0 = %q", row.CellText(0))
	}
	if row.Cells[0].RawText != " 18-7-2014\u00A021:30 " {
		t.Errorf("raw cell 0 = %q", row.Cells[0].RawText)
	}
	if row.CellText(1) != "Pathé Arena" {
		t.Errorf("cell 1 = %q", row.CellText(1))
	}
	anchor := row.Cells[2].Anchor
	if anchor == nil {
		t.Fatal("expected anchor in cell 2")
	}
	if anchor.Text != "Opgehaald" {
		t.Errorf("anchor text = %q", anchor.Text)
	}
	if anchor.Href != "javascript:GetReservationDetails('25','26','27','x')" {
		t.Errorf("anchor href = %q", anchor.Href)
	}
	if row.Cells[0].Anchor != nil {
		t.Error("cell without link must have nil anchor")
	}
	if row.CellText(7) != "" {
		t.Error("out of range cell must be empty")
	}
}
