package planning

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is one row of the chart of accounts. Codes are hierarchical
// numeric strings; the leading digit conventionally carries the top-level
// type (1=asset .. 5=expense) for consumers lacking the explicit type.
type Account struct {
	AccountID       int64  `json:"account_id"`
	AccountCode     string `json:"account_code"`
	AccountName     string `json:"account_name"`
	AccountType     string `json:"account_type"`
	ParentAccountID *int64 `json:"parent_account_id,omitempty"`
}

const (
	AccountTypeAsset     = "ASSET"
	AccountTypeLiability = "LIABILITY"
	AccountTypeEquity    = "EQUITY"
	AccountTypeRevenue   = "REVENUE"
	AccountTypeExpense   = "EXPENSE"
)

// PlanningEntry is one double-entry transaction inside a financial plan:
// one debit leg and one credit leg of equal amount.
type PlanningEntry struct {
	EntryID         int64           `json:"id"`
	PlanningID      int64           `json:"planning_id"`
	EntryDate       time.Time       `json:"date"`
	AccountDebitID  int64           `json:"account_debit_id"`
	AccountCreditID int64           `json:"account_credit_id"`
	Amount          decimal.Decimal `json:"amount"`
	Status          string          `json:"status"`
	Note            *string         `json:"note"`
	Version         int             `json:"version"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// DisplayRow is the ephemeral decomposition of a PlanningEntry into one
// row per ledger leg, for merged-cell journal rendering. Shared fields
// (date, status, note) are rendered once per group, on the first row.
type DisplayRow struct {
	CompositeID    string          `json:"id"`
	GroupKey       string          `json:"group_key"`
	IsFirstInGroup bool            `json:"is_first_in_group"`
	EntryDate      time.Time       `json:"date"`
	Status         string          `json:"status"`
	Note           string          `json:"note"`
	AccountLabel   string          `json:"account_label"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
}

// Category groups accounts into a report section.
type Category struct {
	CategoryID   int64   `json:"category_id"`
	PlanningID   int64   `json:"planning_id"`
	CategoryName string  `json:"category_name"`
	CategoryType string  `json:"category_type"`
	AccountIDs   []int64 `json:"account_ids,omitempty"`
}

const (
	CategoryOperasi    = "OPERASI"
	CategoryInvestasi  = "INVESTASI"
	CategoryPendanaan  = "PENDANAAN"
	CategoryPendapatan = "PENDAPATAN"
	CategoryBeban      = "BEBAN"
	CategoryLainnya    = "LAINNYA"
)
