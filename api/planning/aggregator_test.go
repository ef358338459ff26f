package planning

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dptr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func TestFormatCurrency(t *testing.T) {
	cases := []struct {
		in   decimal.Decimal
		want string
	}{
		{decimal.NewFromInt(0), "Rp 0"},
		{decimal.NewFromInt(300000), "Rp 300.000"},
		{decimal.NewFromInt(1234567), "Rp 1.234.567"},
		{decimal.NewFromInt(-50000), "-Rp 50.000"},
		{decimal.NewFromFloat(1234567.5), "Rp 1.234.567,50"},
	}
	for _, c := range cases {
		if got := FormatCurrency(c.in); got != c.want {
			t.Fatalf("%s: got %q want %q", c.in, got, c.want)
		}
	}
}

func TestRenderCashFlowNetRoundTrip(t *testing.T) {
	payload := CashFlowPayload{
		OperatingActivities: []ActivityLine{{Label: "Sewa harian", Amount: dptr(900000)}},
		InvestingActivities: []ActivityLine{{Label: "Pembelian unit", Amount: dptr(-400000)}},
		FinancingActivities: []ActivityLine{{Label: "Pinjaman bank", Amount: dptr(250000)}},
		Summary: CashFlowSummary{
			NetOperatingCashflow: dptr(900000),
			NetInvestingCashflow: dptr(-400000),
			NetFinancingCashflow: dptr(250000),
			NetCashflow:          dptr(750000),
		},
	}
	rendered := RenderCashFlow(payload)

	if rendered.NetOperating != "Rp 900.000" {
		t.Fatalf("net operating: %q", rendered.NetOperating)
	}
	if rendered.NetInvesting != "-Rp 400.000" {
		t.Fatalf("net investing: %q", rendered.NetInvesting)
	}
	if rendered.NetFinancing != "Rp 250.000" {
		t.Fatalf("net financing: %q", rendered.NetFinancing)
	}

	// the rendered total must equal the sum of the three activity nets
	sum := payload.Summary.NetOperatingCashflow.
		Add(*payload.Summary.NetInvestingCashflow).
		Add(*payload.Summary.NetFinancingCashflow)
	if rendered.NetCashflow != FormatCurrency(sum) {
		t.Fatalf("net cashflow %q does not equal activity sum %q", rendered.NetCashflow, FormatCurrency(sum))
	}
}

func TestRenderCashFlowEmptyBucketsAndBalances(t *testing.T) {
	rendered := RenderCashFlow(CashFlowPayload{})

	if len(rendered.Operating) != 1 || rendered.Operating[0].Label != PlaceholderOperating {
		t.Fatalf("operating placeholder missing: %+v", rendered.Operating)
	}
	if len(rendered.Investing) != 1 || rendered.Investing[0].Label != PlaceholderInvesting {
		t.Fatalf("investing placeholder missing: %+v", rendered.Investing)
	}
	if len(rendered.Financing) != 1 || rendered.Financing[0].Label != PlaceholderFinancing {
		t.Fatalf("financing placeholder missing: %+v", rendered.Financing)
	}

	// nothing upstream computes these, the marker must show
	if rendered.OpeningBalance != UnavailableMarker || rendered.ClosingBalance != UnavailableMarker {
		t.Fatalf("balances must render unavailable: %q / %q", rendered.OpeningBalance, rendered.ClosingBalance)
	}
	if rendered.NetCashflow != UnavailableMarker {
		t.Fatalf("missing net must render unavailable: %q", rendered.NetCashflow)
	}
}

func TestRenderCashFlowMissingLineAmount(t *testing.T) {
	payload := CashFlowPayload{
		OperatingActivities: []ActivityLine{{Label: "Sewa harian"}},
	}
	rendered := RenderCashFlow(payload)
	if rendered.Operating[0].Amount != UnavailableMarker {
		t.Fatalf("cash-flow lines render missing amounts as the marker, got %q", rendered.Operating[0].Amount)
	}
}

func TestRenderIncomeStatement(t *testing.T) {
	payload := ProfitLossPayload{
		Data: []IncomeLine{
			{Label: "41000 - Rental Income", Bucket: BucketRevenue, Amount: dptr(900000)},
			{Label: "51000 - Fleet Maintenance", Bucket: BucketExpense, Amount: dptr(350000)},
			{Label: "51200 - Fuel", Bucket: BucketExpense, Amount: nil},
		},
		Summary: IncomeSummary{
			TotalIncome:  dptr(900000),
			TotalExpense: dptr(350000),
		},
	}
	rendered := RenderIncomeStatement(payload)

	if len(rendered.Revenue) != 1 || len(rendered.Expense) != 2 {
		t.Fatalf("bucket sizes wrong: %d revenue, %d expense", len(rendered.Revenue), len(rendered.Expense))
	}
	// income-statement lines render missing amounts as empty text, not the marker
	if rendered.Expense[1].Amount != "" {
		t.Fatalf("expected empty amount, got %q", rendered.Expense[1].Amount)
	}
	// net income derives from the trusted totals
	if rendered.NetIncome != "Rp 550.000" {
		t.Fatalf("net income: %q", rendered.NetIncome)
	}
}

func TestRenderIncomeStatementEmpty(t *testing.T) {
	rendered := RenderIncomeStatement(ProfitLossPayload{})
	if rendered.Revenue[0].Label != PlaceholderRevenue || rendered.Expense[0].Label != PlaceholderExpense {
		t.Fatalf("placeholders missing: %+v / %+v", rendered.Revenue, rendered.Expense)
	}
	if rendered.TotalIncome != "" || rendered.NetIncome != "" {
		t.Fatalf("missing summary figures must render empty, got %q / %q", rendered.TotalIncome, rendered.NetIncome)
	}
}
