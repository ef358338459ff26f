package planning

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Validation error kinds. These block submission before any write; the
// same checks run at the service boundary so a client bypass has a
// backstop.
const (
	ErrKindAccountsNotSelected = "accounts_not_selected"
	ErrKindNonPositiveAmount   = "non_positive_amount"
	ErrKindDebitCreditMismatch = "debit_credit_mismatch"
	ErrKindSameAccount         = "same_account"
)

type ValidationError struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Kind + ": " + e.Message
}

// EntryInput is the raw form state of one journal transaction before
// validation.
type EntryInput struct {
	Date            string          `json:"date"`
	AccountDebitID  int64           `json:"account_debit_id"`
	AccountCreditID int64           `json:"account_credit_id"`
	Debit           decimal.Decimal `json:"debit"`
	Credit          decimal.Decimal `json:"credit"`
	Note            string          `json:"note"`
}

// WritePayload is the normalized payload handed to the persistence layer.
type WritePayload struct {
	Date            string          `json:"date"`
	AccountDebitID  int64           `json:"account_debit_id"`
	AccountCreditID int64           `json:"account_credit_id"`
	Amount          decimal.Decimal `json:"amount"`
	Note            *string         `json:"note"`
}

// ValidateEntry enforces the double-entry invariant on a submission:
// both accounts selected and distinct, both legs positive, debit equal
// to credit. On success the input collapses into the normalized write
// payload with an ISO-8601 date and a null note for blank input.
func ValidateEntry(in EntryInput) (WritePayload, error) {
	if in.AccountDebitID == 0 || in.AccountCreditID == 0 {
		return WritePayload{}, &ValidationError{
			Kind:    ErrKindAccountsNotSelected,
			Message: "debit and credit accounts must both be selected",
		}
	}
	if in.AccountDebitID == in.AccountCreditID {
		return WritePayload{}, &ValidationError{
			Kind:    ErrKindSameAccount,
			Message: "debit and credit accounts must differ",
		}
	}
	if in.Debit.LessThanOrEqual(decimal.Zero) || in.Credit.LessThanOrEqual(decimal.Zero) {
		return WritePayload{}, &ValidationError{
			Kind:    ErrKindNonPositiveAmount,
			Message: "debit and credit amounts must be greater than zero",
		}
	}
	if !in.Debit.Equal(in.Credit) {
		return WritePayload{}, &ValidationError{
			Kind:    ErrKindDebitCreditMismatch,
			Message: "debit amount must equal credit amount",
		}
	}

	date := normalizeISODate(in.Date)
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	var note *string
	if trimmed := strings.TrimSpace(in.Note); trimmed != "" {
		note = &trimmed
	}

	return WritePayload{
		Date:            date,
		AccountDebitID:  in.AccountDebitID,
		AccountCreditID: in.AccountCreditID,
		Amount:          in.Debit,
		Note:            note,
	}, nil
}

func normalizeISODate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05", "02-01-2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return ""
}
