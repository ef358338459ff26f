package planning

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"FleetPlanOffice/api"
)

// aggregateActivity computes one cash-flow activity bucket: per member
// category, debits to member accounts count as inflow and credits as
// outflow. This query is the pre-aggregation the statement renderer
// trusts without recomputing.
func aggregateActivity(ctx context.Context, pool *pgxpool.Pool, planningID int64, categoryType string, conds []string, args []interface{}) ([]ActivityLine, decimal.Decimal, error) {
	q := `
		SELECT c.category_name,
		       COALESCE(SUM(CASE
		           WHEN e.entry_id IS NULL THEN 0
		           WHEN e.account_debit_id = ca.account_id THEN e.amount
		           ELSE -e.amount
		       END), 0) AS net_amount
		FROM planning_categories c
		JOIN planning_category_accounts ca ON ca.category_id = c.category_id
		LEFT JOIN planning_entries e ON e.planning_id = c.planning_id
		  AND (e.account_debit_id = ca.account_id OR e.account_credit_id = ca.account_id)`
	if len(conds) > 0 {
		q += " AND " + strings.Join(conds, " AND ")
	}
	q += fmt.Sprintf(`
		WHERE c.planning_id = $%d AND c.category_type = $%d
		GROUP BY c.category_id, c.category_name
		ORDER BY c.category_name`, len(args)+1, len(args)+2)
	args = append(args, planningID, categoryType)

	rows, err := pool.Query(ctx, q, args...)
	if err != nil {
		return nil, decimal.Zero, err
	}
	defer rows.Close()

	lines := []ActivityLine{}
	net := decimal.Zero
	for rows.Next() {
		var label string
		var amount decimal.Decimal
		if err := rows.Scan(&label, &amount); err != nil {
			return nil, decimal.Zero, err
		}
		amt := amount
		lines = append(lines, ActivityLine{Label: label, Amount: &amt})
		net = net.Add(amount)
	}
	return lines, net, rows.Err()
}

func reportDateFilters(r *http.Request) (conds []string, args []interface{}, period ReportPeriod) {
	if from := api.NormalizeDate(r.URL.Query().Get("date_from")); from != "" {
		args = append(args, from)
		conds = append(conds, fmt.Sprintf("e.entry_date >= $%d", len(args)))
		period.DateFrom = from
	}
	if to := api.NormalizeDate(r.URL.Query().Get("date_to")); to != "" {
		args = append(args, to)
		conds = append(conds, fmt.Sprintf("e.entry_date <= $%d", len(args)))
		period.DateTo = to
	}
	return conds, args, period
}

// GetCashFlowReport serves the partitioned activity buckets, their
// summary nets, and the rendered statement lines.
func GetCashFlowReport(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		planningID, err := planningIDFromRequest(r)
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		conds, args, period := reportDateFilters(r)
		ctx := r.Context()

		operating, netOperating, err := aggregateActivity(ctx, pool, planningID, CategoryOperasi, conds, args)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		investing, netInvesting, err := aggregateActivity(ctx, pool, planningID, CategoryInvestasi, conds, args)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		financing, netFinancing, err := aggregateActivity(ctx, pool, planningID, CategoryPendanaan, conds, args)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		netCashflow := netOperating.Add(netInvesting).Add(netFinancing)
		payload := CashFlowPayload{
			OperatingActivities: operating,
			InvestingActivities: investing,
			FinancingActivities: financing,
			Summary: CashFlowSummary{
				NetOperatingCashflow: &netOperating,
				NetInvestingCashflow: &netInvesting,
				NetFinancingCashflow: &netFinancing,
				NetCashflow:          &netCashflow,
				// opening/closing balances are not computed here and
				// render as the unavailable marker
			},
			Period: period,
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success":  true,
			"report":   payload,
			"rendered": RenderCashFlow(payload),
		})
	}
}

// GetProfitLossReport serves the flat income-statement rows bucketed
// through the classifier together with totals and the rendered lines.
func GetProfitLossReport(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		planningID, err := planningIDFromRequest(r)
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		conds, args, period := reportDateFilters(r)
		ctx := r.Context()

		categories, err := loadCategories(ctx, pool, planningID, "")
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		classifier := NewCategoryClassifier(categories)

		q := `
			SELECT a.account_id, a.account_code, a.account_name, a.account_type,
			       COALESCE(SUM(CASE WHEN e.account_debit_id = a.account_id THEN e.amount ELSE 0 END), 0) AS debit_total,
			       COALESCE(SUM(CASE WHEN e.account_credit_id = a.account_id THEN e.amount ELSE 0 END), 0) AS credit_total
			FROM planning_accounts a
			LEFT JOIN planning_entries e ON (e.account_debit_id = a.account_id OR e.account_credit_id = a.account_id)`
		planningArg := len(args) + 1
		q += fmt.Sprintf(" AND e.planning_id = $%d", planningArg)
		if len(conds) > 0 {
			q += " AND " + strings.Join(conds, " AND ")
		}
		q += " GROUP BY a.account_id, a.account_code, a.account_name, a.account_type ORDER BY a.account_code"
		args = append(args, planningID)

		rows, err := pool.Query(ctx, q, args...)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		defer rows.Close()

		data := []IncomeLine{}
		totalIncome := decimal.Zero
		totalExpense := decimal.Zero
		for rows.Next() {
			var account Account
			var debitTotal, creditTotal decimal.Decimal
			if err := rows.Scan(&account.AccountID, &account.AccountCode, &account.AccountName, &account.AccountType, &debitTotal, &creditTotal); err != nil {
				api.RespondWithError(w, http.StatusInternalServerError, err.Error())
				return
			}

			switch classifier.ReportBucket(account) {
			case BucketRevenue:
				amount := creditTotal.Sub(debitTotal)
				data = append(data, IncomeLine{
					Label:  account.AccountCode + " - " + account.AccountName,
					Bucket: BucketRevenue,
					Amount: &amount,
				})
				totalIncome = totalIncome.Add(amount)
			case BucketExpense:
				amount := debitTotal.Sub(creditTotal)
				data = append(data, IncomeLine{
					Label:  account.AccountCode + " - " + account.AccountName,
					Bucket: BucketExpense,
					Amount: &amount,
				})
				totalExpense = totalExpense.Add(amount)
			}
		}
		if err := rows.Err(); err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		netIncome := totalIncome.Sub(totalExpense)
		payload := ProfitLossPayload{
			Data: data,
			Summary: IncomeSummary{
				TotalIncome:  &totalIncome,
				TotalExpense: &totalExpense,
				NetIncome:    &netIncome,
			},
			Period: period,
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success":  true,
			"report":   payload,
			"rendered": RenderIncomeStatement(payload),
		})
	}
}
