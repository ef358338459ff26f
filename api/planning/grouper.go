package planning

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// MissingEntryError reports a nil entry handed to the grouper. The row
// expansion refuses to emit placeholder rows for it; the caller gets a
// typed failure instead.
type MissingEntryError struct{}

func (e *MissingEntryError) Error() string {
	return "planning entry is missing"
}

// ExpandEntry turns one entry into its two journal display rows: the
// debit leg first, then the credit leg, sharing one group key. Exactly
// one row per group carries IsFirstInGroup so merged-cell rendering
// knows where to put the shared date/status/note.
func ExpandEntry(e *PlanningEntry, dir *AccountDirectory) ([]DisplayRow, error) {
	if e == nil {
		return nil, &MissingEntryError{}
	}

	groupKey := fmt.Sprintf("group_%d", e.EntryID)
	note := ""
	if e.Note != nil {
		note = *e.Note
	}

	rows := []DisplayRow{
		{
			CompositeID:    fmt.Sprintf("%d_0", e.EntryID),
			GroupKey:       groupKey,
			IsFirstInGroup: true,
			EntryDate:      e.EntryDate,
			Status:         e.Status,
			Note:           note,
			AccountLabel:   dir.Label(e.AccountDebitID),
			Debit:          e.Amount,
			Credit:         decimal.Zero,
		},
		{
			CompositeID:    fmt.Sprintf("%d_1", e.EntryID),
			GroupKey:       groupKey,
			IsFirstInGroup: false,
			EntryDate:      e.EntryDate,
			Status:         e.Status,
			Note:           note,
			AccountLabel:   dir.Label(e.AccountCreditID),
			Debit:          decimal.Zero,
			Credit:         e.Amount,
		},
	}
	return rows, nil
}

// ExpandEntries expands a fetched page in source order.
func ExpandEntries(entries []PlanningEntry, dir *AccountDirectory) ([]DisplayRow, error) {
	rows := make([]DisplayRow, 0, len(entries)*2)
	for i := range entries {
		pair, err := ExpandEntry(&entries[i], dir)
		if err != nil {
			return nil, err
		}
		rows = append(rows, pair...)
	}
	return rows, nil
}

// CanonicalEntryID recovers the entry id from a composite row id by
// stripping the trailing row-index suffix.
func CanonicalEntryID(compositeID string) (int64, error) {
	idx := strings.LastIndex(compositeID, "_")
	if idx <= 0 {
		return 0, fmt.Errorf("malformed composite row id %q", compositeID)
	}
	id, err := strconv.ParseInt(compositeID[:idx], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed composite row id %q: %w", compositeID, err)
	}
	return id, nil
}
