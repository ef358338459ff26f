package planning

import (
	"strings"

	"github.com/shopspring/decimal"
)

// UnavailableMarker is what cash-flow lines show for amounts the backend
// did not supply. Income-statement lines show empty text instead; the
// two report families intentionally disagree here.
const UnavailableMarker = "Data tidak tersedia"

// Fixed placeholder lines for report sections with no data.
const (
	PlaceholderOperating = "Belum ada data aktivitas operasi"
	PlaceholderInvesting = "Belum ada data aktivitas investasi"
	PlaceholderFinancing = "Belum ada data aktivitas pendanaan"
	PlaceholderRevenue   = "Belum ada data pendapatan"
	PlaceholderExpense   = "Belum ada data beban"
)

// ActivityLine is one pre-aggregated bucket line from the report query.
type ActivityLine struct {
	Label  string           `json:"label"`
	Amount *decimal.Decimal `json:"amount"`
}

type ReportPeriod struct {
	DateFrom string `json:"date_from"`
	DateTo   string `json:"date_to"`
}

// CashFlowSummary carries the nets the backend already computed. The
// aggregator surfaces them as-is and never recomputes. Opening and
// closing balances are not computed upstream and stay nil.
type CashFlowSummary struct {
	NetOperatingCashflow *decimal.Decimal `json:"net_operating_cashflow"`
	NetInvestingCashflow *decimal.Decimal `json:"net_investing_cashflow"`
	NetFinancingCashflow *decimal.Decimal `json:"net_financing_cashflow"`
	NetCashflow          *decimal.Decimal `json:"net_cashflow"`
	OpeningBalance       *decimal.Decimal `json:"opening_balance"`
	ClosingBalance       *decimal.Decimal `json:"closing_balance"`
}

type CashFlowPayload struct {
	OperatingActivities []ActivityLine  `json:"operating_activities"`
	InvestingActivities []ActivityLine  `json:"investing_activities"`
	FinancingActivities []ActivityLine  `json:"financing_activities"`
	Summary             CashFlowSummary `json:"summary"`
	Period              ReportPeriod    `json:"period"`
}

type IncomeSummary struct {
	TotalIncome  *decimal.Decimal `json:"total_income"`
	TotalExpense *decimal.Decimal `json:"total_expense"`
	NetIncome    *decimal.Decimal `json:"net_income"`
}

// IncomeLine is one flat income-statement row, already bucketed.
type IncomeLine struct {
	Label  string           `json:"label"`
	Bucket ReportBucket     `json:"bucket"`
	Amount *decimal.Decimal `json:"amount"`
}

type ProfitLossPayload struct {
	Data    []IncomeLine  `json:"data"`
	Summary IncomeSummary `json:"summary"`
	Period  ReportPeriod  `json:"period"`
}

// RenderedLine is a display-ready statement line.
type RenderedLine struct {
	Label  string `json:"label"`
	Amount string `json:"amount"`
}

type RenderedCashFlow struct {
	Operating      []RenderedLine `json:"operating"`
	Investing      []RenderedLine `json:"investing"`
	Financing      []RenderedLine `json:"financing"`
	NetOperating   string         `json:"net_operating_cashflow"`
	NetInvesting   string         `json:"net_investing_cashflow"`
	NetFinancing   string         `json:"net_financing_cashflow"`
	NetCashflow    string         `json:"net_cashflow"`
	OpeningBalance string         `json:"opening_balance"`
	ClosingBalance string         `json:"closing_balance"`
}

type RenderedIncomeStatement struct {
	Revenue      []RenderedLine `json:"revenue"`
	Expense      []RenderedLine `json:"expense"`
	TotalIncome  string         `json:"total_income"`
	TotalExpense string         `json:"total_expense"`
	NetIncome    string         `json:"net_income"`
}

// RenderCashFlow formats a pre-partitioned cash-flow payload. Missing
// amounts render as the unavailable marker, empty buckets as their fixed
// placeholder line.
func RenderCashFlow(p CashFlowPayload) RenderedCashFlow {
	return RenderedCashFlow{
		Operating:      renderActivityBucket(p.OperatingActivities, PlaceholderOperating),
		Investing:      renderActivityBucket(p.InvestingActivities, PlaceholderInvesting),
		Financing:      renderActivityBucket(p.FinancingActivities, PlaceholderFinancing),
		NetOperating:   formatOrUnavailable(p.Summary.NetOperatingCashflow),
		NetInvesting:   formatOrUnavailable(p.Summary.NetInvestingCashflow),
		NetFinancing:   formatOrUnavailable(p.Summary.NetFinancingCashflow),
		NetCashflow:    formatOrUnavailable(p.Summary.NetCashflow),
		OpeningBalance: formatOrUnavailable(p.Summary.OpeningBalance),
		ClosingBalance: formatOrUnavailable(p.Summary.ClosingBalance),
	}
}

// RenderIncomeStatement formats the flat income-statement rows into the
// revenue and expense sections. Missing amounts render as empty text and
// net income falls back to total_income - total_expense when the backend
// left it out.
func RenderIncomeStatement(p ProfitLossPayload) RenderedIncomeStatement {
	revenue := []RenderedLine{}
	expense := []RenderedLine{}
	for _, line := range p.Data {
		rendered := RenderedLine{Label: line.Label, Amount: formatOrEmpty(line.Amount)}
		switch line.Bucket {
		case BucketRevenue:
			revenue = append(revenue, rendered)
		case BucketExpense:
			expense = append(expense, rendered)
		}
	}
	if len(revenue) == 0 {
		revenue = append(revenue, RenderedLine{Label: PlaceholderRevenue})
	}
	if len(expense) == 0 {
		expense = append(expense, RenderedLine{Label: PlaceholderExpense})
	}

	netIncome := p.Summary.NetIncome
	if netIncome == nil && p.Summary.TotalIncome != nil && p.Summary.TotalExpense != nil {
		d := p.Summary.TotalIncome.Sub(*p.Summary.TotalExpense)
		netIncome = &d
	}

	return RenderedIncomeStatement{
		Revenue:      revenue,
		Expense:      expense,
		TotalIncome:  formatOrEmpty(p.Summary.TotalIncome),
		TotalExpense: formatOrEmpty(p.Summary.TotalExpense),
		NetIncome:    formatOrEmpty(netIncome),
	}
}

func renderActivityBucket(lines []ActivityLine, placeholder string) []RenderedLine {
	if len(lines) == 0 {
		return []RenderedLine{{Label: placeholder}}
	}
	rendered := make([]RenderedLine, 0, len(lines))
	for _, line := range lines {
		rendered = append(rendered, RenderedLine{
			Label:  line.Label,
			Amount: formatOrUnavailable(line.Amount),
		})
	}
	return rendered
}

func formatOrUnavailable(d *decimal.Decimal) string {
	if d == nil {
		return UnavailableMarker
	}
	return FormatCurrency(*d)
}

func formatOrEmpty(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return FormatCurrency(*d)
}

// FormatCurrency renders an amount as a grouped-thousands rupiah string,
// e.g. 1234567.5 -> "Rp 1.234.567,50".
func FormatCurrency(d decimal.Decimal) string {
	negative := d.IsNegative()
	abs := d.Abs()

	intPart := abs.Truncate(0)
	fracPart := abs.Sub(intPart)

	grouped := groupThousands(intPart.StringFixed(0))
	out := "Rp " + grouped
	if !fracPart.IsZero() {
		frac := fracPart.StringFixed(2)
		out += "," + strings.TrimPrefix(frac, "0.")
	}
	if negative {
		out = "-" + out
	}
	return out
}

func groupThousands(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	var b strings.Builder
	head := n % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
