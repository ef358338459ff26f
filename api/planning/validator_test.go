package planning

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func validInput() EntryInput {
	return EntryInput{
		Date:            "2025-08-01",
		AccountDebitID:  11100,
		AccountCreditID: 41000,
		Debit:           decimal.NewFromInt(300000),
		Credit:          decimal.NewFromInt(300000),
	}
}

func assertKind(t *testing.T, err error, kind string) {
	t.Helper()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %T (%v)", err, err)
	}
	if verr.Kind != kind {
		t.Fatalf("expected kind %q, got %q", kind, verr.Kind)
	}
}

func TestValidateEntryAccepts(t *testing.T) {
	in := validInput()
	in.Debit = decimal.NewFromInt(500000)
	in.Credit = decimal.NewFromInt(500000)
	payload, err := ValidateEntry(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !payload.Amount.Equal(decimal.NewFromInt(500000)) {
		t.Fatalf("unexpected amount %s", payload.Amount)
	}
}

func TestValidateEntryMismatch(t *testing.T) {
	in := validInput()
	in.Debit = decimal.NewFromInt(100)
	in.Credit = decimal.NewFromInt(50)
	_, err := ValidateEntry(in)
	assertKind(t, err, ErrKindDebitCreditMismatch)
}

func TestValidateEntryMissingAccounts(t *testing.T) {
	in := validInput()
	in.AccountCreditID = 0
	_, err := ValidateEntry(in)
	assertKind(t, err, ErrKindAccountsNotSelected)
}

func TestValidateEntrySameAccount(t *testing.T) {
	in := validInput()
	in.AccountCreditID = in.AccountDebitID
	_, err := ValidateEntry(in)
	assertKind(t, err, ErrKindSameAccount)
}

func TestValidateEntryNonPositive(t *testing.T) {
	in := validInput()
	in.Debit = decimal.Zero
	in.Credit = decimal.Zero
	_, err := ValidateEntry(in)
	assertKind(t, err, ErrKindNonPositiveAmount)

	in = validInput()
	in.Debit = decimal.NewFromInt(-10)
	in.Credit = decimal.NewFromInt(-10)
	_, err = ValidateEntry(in)
	assertKind(t, err, ErrKindNonPositiveAmount)
}

func TestValidateEntryNormalizesPayload(t *testing.T) {
	payload, err := ValidateEntry(validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload.Date != "2025-08-01" {
		t.Fatalf("date not normalized: %q", payload.Date)
	}
	if payload.AccountDebitID != 11100 || payload.AccountCreditID != 41000 {
		t.Fatalf("accounts wrong: %d / %d", payload.AccountDebitID, payload.AccountCreditID)
	}
	if !payload.Amount.Equal(decimal.NewFromInt(300000)) {
		t.Fatalf("amount wrong: %s", payload.Amount)
	}
	if payload.Note != nil {
		t.Fatalf("blank note must normalize to nil, got %q", *payload.Note)
	}
}

func TestValidateEntryKeepsNote(t *testing.T) {
	in := validInput()
	in.Note = "  DP unit baru  "
	payload, err := ValidateEntry(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload.Note == nil || *payload.Note != "DP unit baru" {
		t.Fatalf("note not trimmed: %v", payload.Note)
	}
}
