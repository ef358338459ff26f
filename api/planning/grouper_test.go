package planning

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func testEntry() PlanningEntry {
	note := "Sewa armada Agustus"
	return PlanningEntry{
		EntryID:         42,
		PlanningID:      7,
		EntryDate:       time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
		AccountDebitID:  1,
		AccountCreditID: 2,
		Amount:          decimal.NewFromInt(300000),
		Status:          "POSTED",
		Note:            &note,
		Version:         1,
	}
}

func TestExpandEntryPair(t *testing.T) {
	dir := NewAccountDirectory(testAccounts())
	entry := testEntry()

	rows, err := ExpandEntry(&entry, dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].GroupKey != "group_42" || rows[1].GroupKey != rows[0].GroupKey {
		t.Fatalf("rows do not share group key: %q vs %q", rows[0].GroupKey, rows[1].GroupKey)
	}
	if !rows[0].IsFirstInGroup || rows[1].IsFirstInGroup {
		t.Fatalf("exactly the first row must carry the group marker")
	}
	if rows[0].CompositeID != "42_0" || rows[1].CompositeID != "42_1" {
		t.Fatalf("unexpected composite ids: %q, %q", rows[0].CompositeID, rows[1].CompositeID)
	}

	if !rows[0].Debit.Equal(entry.Amount) || !rows[0].Credit.IsZero() {
		t.Fatalf("debit leg wrong: debit=%s credit=%s", rows[0].Debit, rows[0].Credit)
	}
	if !rows[1].Credit.Equal(entry.Amount) || !rows[1].Debit.IsZero() {
		t.Fatalf("credit leg wrong: debit=%s credit=%s", rows[1].Debit, rows[1].Credit)
	}
	if rows[0].AccountLabel != "11100 - Cash & Bank" {
		t.Fatalf("debit label: %q", rows[0].AccountLabel)
	}
	if rows[1].AccountLabel != "41000 - Rental Income" {
		t.Fatalf("credit label: %q", rows[1].AccountLabel)
	}
}

func TestExpandEntryNil(t *testing.T) {
	dir := NewAccountDirectory(nil)
	_, err := ExpandEntry(nil, dir)
	if err == nil {
		t.Fatalf("expected error for nil entry")
	}
	var missing *MissingEntryError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingEntryError, got %T", err)
	}
}

func TestExpandEntriesKeepsSourceOrder(t *testing.T) {
	dir := NewAccountDirectory(testAccounts())
	first := testEntry()
	second := testEntry()
	second.EntryID = 43

	rows, err := ExpandEntries([]PlanningEntry{first, second}, dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ids := []string{rows[0].CompositeID, rows[1].CompositeID, rows[2].CompositeID, rows[3].CompositeID}
	want := []string{"42_0", "42_1", "43_0", "43_1"}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("row %d out of order: got %q want %q", i, ids[i], want[i])
		}
	}
}

func TestCanonicalEntryID(t *testing.T) {
	id, err := CanonicalEntryID("42_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 42 {
		t.Fatalf("expected 42, got %d", id)
	}

	for _, bad := range []string{"", "42", "_0", "abc_0"} {
		if _, err := CanonicalEntryID(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}
