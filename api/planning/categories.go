package planning

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"FleetPlanOffice/api"
)

// loadCategories fetches a planning's categories with their member
// account ids, optionally filtered by category type.
func loadCategories(ctx context.Context, pool *pgxpool.Pool, planningID int64, typeFilter string) ([]Category, error) {
	q := `
		SELECT c.category_id, c.planning_id, c.category_name, c.category_type,
		       COALESCE(array_agg(ca.account_id) FILTER (WHERE ca.account_id IS NOT NULL), '{}')
		FROM planning_categories c
		LEFT JOIN planning_category_accounts ca ON ca.category_id = c.category_id
		WHERE c.planning_id = $1`
	args := []interface{}{planningID}
	if typeFilter != "" {
		q += " AND c.category_type = $2"
		args = append(args, strings.ToUpper(typeFilter))
	}
	q += " GROUP BY c.category_id, c.planning_id, c.category_name, c.category_type ORDER BY c.category_name"

	rows, err := pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []Category{}
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.CategoryID, &c.PlanningID, &c.CategoryName, &c.CategoryType, &c.AccountIDs); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// GetCategoriesForSelect serves the category picker, filterable by type.
func GetCategoriesForSelect(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		planningID, err := planningIDFromRequest(r)
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		categories, err := loadCategories(r.Context(), pool, planningID, r.URL.Query().Get("type"))
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		api.RespondWithPayload(w, true, "", categories)
	}
}

// RemoveAccountsFromCategory unlinks accounts from category membership.
// With a category_id the unlink is scoped to that category, without one
// it clears the accounts from every category of the planning.
func RemoveAccountsFromCategory(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		planningID, err := planningIDFromRequest(r)
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		var req struct {
			CategoryID int64   `json:"category_id"`
			AccountIDs []int64 `json:"account_ids"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.RespondWithError(w, http.StatusBadRequest, "Invalid JSON")
			return
		}
		if len(req.AccountIDs) == 0 {
			api.RespondWithError(w, http.StatusBadRequest, "account_ids required")
			return
		}

		q := `
			DELETE FROM planning_category_accounts ca
			USING planning_categories c
			WHERE ca.category_id = c.category_id
			  AND c.planning_id = $1
			  AND ca.account_id = ANY($2)`
		args := []interface{}{planningID, req.AccountIDs}
		if req.CategoryID != 0 {
			q += " AND ca.category_id = $3"
			args = append(args, req.CategoryID)
		}

		tag, err := pool.Exec(r.Context(), q, args...)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		api.LogInfo("planning %d: unlinked %d category-account rows", planningID, tag.RowsAffected())
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"removed": tag.RowsAffected(),
		})
	}
}
