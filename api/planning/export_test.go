package planning

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestBuildExportTableFromExpandedEntry(t *testing.T) {
	dir := NewAccountDirectory(testAccounts())
	entry := testEntry()

	rows, err := ExpandEntries([]PlanningEntry{entry}, dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	table, err := BuildExportTable(rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(table) != 1 {
		t.Fatalf("expected one row per transaction, got %d", len(table))
	}

	want := []string{"1", "01-08-2025", "POSTED", "Sewa armada Agustus", "11100 - Cash & Bank", "300000", "41000 - Rental Income", "300000"}
	for i, col := range want {
		if table[0][i] != col {
			t.Fatalf("column %d: got %q want %q", i, table[0][i], col)
		}
	}
}

func TestBuildExportTableEmpty(t *testing.T) {
	_, err := BuildExportTable(nil)
	if err == nil {
		t.Fatalf("expected error for empty journal")
	}
	var empty *EmptyExportError
	if !errors.As(err, &empty) {
		t.Fatalf("expected EmptyExportError, got %T", err)
	}
}

func TestBuildExportTableNumbersSequentially(t *testing.T) {
	dir := NewAccountDirectory(testAccounts())
	first := testEntry()
	second := testEntry()
	second.EntryID = 43

	rows, err := ExpandEntries([]PlanningEntry{first, second}, dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	table, err := BuildExportTable(rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(table) != 2 || table[0][0] != "1" || table[1][0] != "2" {
		t.Fatalf("row numbering wrong: %+v", table)
	}
}

func TestWriteCSVEscapesNotes(t *testing.T) {
	dir := NewAccountDirectory(testAccounts())
	entry := testEntry()
	note := `Bayar sewa, "unit B"`
	entry.Note = &note

	rows, err := ExpandEntries([]PlanningEntry{entry}, dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	table, err := BuildExportTable(rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, table); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header plus one row, got %d lines", len(lines))
	}
	if lines[0] != strings.Join(ExportHeader, ",") {
		t.Fatalf("header: %q", lines[0])
	}
	if !strings.Contains(lines[1], `"Bayar sewa, ""unit B"""`) {
		t.Fatalf("note not quoted and escaped: %q", lines[1])
	}
}

func TestSanitizePlanningName(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Test Plan #1 (2025)", "Test_Plan_1_2025"},
		{"  Anggaran   Armada  ", "Anggaran_Armada"},
		{"Rencana/Q3*?", "RencanaQ3"},
		{"", ""},
	}
	for _, c := range cases {
		if got := SanitizePlanningName(c.in); got != c.want {
			t.Fatalf("%q: got %q want %q", c.in, got, c.want)
		}
	}
}

func TestExportFilename(t *testing.T) {
	now := time.Date(2025, 8, 15, 10, 0, 0, 0, time.UTC)
	from := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)

	got := ExportFilename("Test Plan #1 (2025)", &from, nil, now, "csv")
	want := "Test_Plan_1_2025_01-08-2025_all_15-08-2025.csv"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}

	got = ExportFilename("Anggaran Armada", nil, nil, now, "xlsx")
	want = "Anggaran_Armada_all_all_15-08-2025.xlsx"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestBuildXLSXSheet(t *testing.T) {
	dir := NewAccountDirectory(testAccounts())
	entry := testEntry()
	rows, err := ExpandEntries([]PlanningEntry{entry}, dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	table, err := BuildExportTable(rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, err := BuildXLSX(table)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer f.Close()

	got, err := f.GetCellValue("Planning Entries", "A1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "No" {
		t.Fatalf("header cell: %q", got)
	}
	got, err = f.GetCellValue("Planning Entries", "E2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "11100 - Cash & Bank" {
		t.Fatalf("debit account cell: %q", got)
	}
}
