package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestParser_ParseExport_Golden(t *testing.T) {
	t.Parallel()

	text := loadGoldenFile(t, "testdata/export.txt")

	got := views(newTestParser().ParseExport(text))
	want := []itemView{
		{ShowTime: at(2014, 7, 18, 21, 30, 0), Theater: "Pathé Arena", Room: "Zaal 9", Title: "Movie A"},
		{ShowTime: at(2014, 7, 20, 19, 0, 0), Theater: "Pathé Tuschinski", Room: "Zaal 1", Title: "Fast & Furious"},
		{ShowTime: at(2014, 12, 25, 14, 15, 0), Theater: "Pathé De Kuip", Room: "Zaal  2", Title: `Movie "C"`},
	}

	if diff := cmp.Diff(want, got, cmpopts.EquateApproxTime(0)); diff != "" {
		t.Errorf("ParseExport() mismatch (-want +got):\n%s", diff)
	}
}

func TestParser_ParseExport(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		text      string
		wantCount int
	}{
		{name: "empty input", text: "", wantCount: 0},
		{name: "unparseable date is dropped", text: "abcd|efgh|ijkl", wantCount: 0},
		{name: "too few fields", text: "18-7-2014 21:30|Pathé Arena Zaal 9", wantCount: 0},
		{name: "separator at position zero", text: "|18-7-2014 21:30|Pathé Arena Zaal 9|Movie A", wantCount: 0},
		{name: "no separator", text: "18-7-2014 21:30 Pathé Arena Zaal 9 Movie A", wantCount: 0},
		{name: "date with seconds is not a show time", text: "18-7-2014 21:30:15|Pathé Arena Zaal 9|Movie A", wantCount: 0},
		{name: "single valid row without line break", text: "18-7-2014 21:30|Pathé Arena Zaal 9|Movie A", wantCount: 1},
		{name: "no-break spaces inside the date are removed", text: "18-7-2014&nbsp; 21:30|Pathé Arena Zaal 9|Movie A", wantCount: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := newTestParser().ParseExport(tt.text); len(got) != tt.wantCount {
				t.Errorf("ParseExport() returned %d items, want %d", len(got), tt.wantCount)
			}
		})
	}
}

func TestParser_ParseExport_LinesAreIndependent(t *testing.T) {
	t.Parallel()

	p := newTestParser()
	first := "18-7-2014 21:30|Pathé Arena Zaal 9|Movie A"
	second := "20-7-2014 19:00|Pathé Tuschinski Zaal 1|Movie B"
	want := append(views(p.ParseExport(first)), views(p.ParseExport(second))...)

	for _, sep := range []string{"\n", "\r\n", "\n\r", "\r"} {
		got := views(p.ParseExport(first + sep + second))
		if diff := cmp.Diff(want, got, cmpopts.EquateApproxTime(0)); diff != "" {
			t.Errorf("ParseExport() with separator %q mismatch (-want +got):\n%s", sep, diff)
		}
	}
}
