package planning

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/xuri/excelize/v2"

	"FleetPlanOffice/api"
	"FleetPlanOffice/api/utils"
)

var validAccountTypes = map[string]bool{
	AccountTypeAsset:     true,
	AccountTypeLiability: true,
	AccountTypeEquity:    true,
	AccountTypeRevenue:   true,
	AccountTypeExpense:   true,
}

// GetAccounts lists the chart of accounts, paginated.
func GetAccounts(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pagination, err := utils.ExtractPagination(r)
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		ctx := r.Context()
		total, err := utils.CountTotal(ctx, pool, "SELECT COUNT(*) FROM planning_accounts")
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		pagination.SetPaginationStats(total)

		rows, err := pool.Query(ctx, `
			SELECT account_id, account_code, account_name, account_type, parent_account_id
			FROM planning_accounts
			ORDER BY account_code
			LIMIT $1 OFFSET $2`, pagination.Limit, pagination.Offset)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		defer rows.Close()

		accounts := []Account{}
		for rows.Next() {
			var a Account
			if err := rows.Scan(&a.AccountID, &a.AccountCode, &a.AccountName, &a.AccountType, &a.ParentAccountID); err != nil {
				api.RespondWithError(w, http.StatusInternalServerError, err.Error())
				return
			}
			accounts = append(accounts, a)
		}
		if err := rows.Err(); err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success":    true,
			"items":      accounts,
			"pagination": pagination,
		})
	}
}

// parseAccountFile reads an uploaded chart-of-accounts workbook into raw
// rows. Legacy .xls books go through the OLE2 reader, .xlsx through
// excelize, .csv through encoding/csv.
func parseAccountFile(file multipart.File, ext string) ([][]string, error) {
	switch ext {
	case ".csv":
		return csv.NewReader(file).ReadAll()
	case ".xlsx":
		f, err := excelize.OpenReader(file)
		if err != nil {
			return nil, err
		}
		return f.GetRows(f.GetSheetName(0))
	case ".xls":
		wb, err := xls.OpenReader(file, "utf-8")
		if err != nil {
			return nil, err
		}
		rows := wb.ReadAllCells(10000)
		return rows, nil
	}
	return nil, errors.New("unsupported file type: " + ext)
}

// UploadAccounts bulk-creates accounts from an uploaded file with the
// columns code, name, type, parent_code. Rows succeed or fail
// individually; parent links resolve in a second pass so child rows may
// precede their parents in the file.
func UploadAccounts(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(16 << 20); err != nil {
			api.RespondWithError(w, http.StatusBadRequest, "invalid multipart form: "+err.Error())
			return
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, "file is required")
			return
		}
		defer file.Close()

		ext := strings.ToLower(filepath.Ext(header.Filename))
		rawRows, err := parseAccountFile(file, ext)
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		if len(rawRows) < 2 {
			api.RespondWithError(w, http.StatusBadRequest, "file has no data rows")
			return
		}

		ctx := r.Context()
		tx, err := pool.Begin(ctx)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, "failed to start transaction: "+err.Error())
			return
		}
		defer tx.Rollback(ctx)

		type insertedAccount struct {
			ID         int64
			ParentCode string
		}
		results := make([]map[string]interface{}, 0, len(rawRows)-1)
		codeToID := map[string]int64{}
		inserted := []insertedAccount{}

		for i, raw := range rawRows[1:] {
			cell := func(idx int) string {
				if idx < len(raw) {
					return strings.TrimSpace(raw[idx])
				}
				return ""
			}
			code, name := cell(0), cell(1)
			accType := strings.ToUpper(cell(2))
			parentCode := cell(3)

			if code == "" || name == "" {
				results = append(results, map[string]interface{}{"success": false, "row": i + 2, "error": "missing code or name"})
				continue
			}
			if !validAccountTypes[accType] {
				results = append(results, map[string]interface{}{"success": false, "row": i + 2, "account_code": code, "error": "invalid account type: " + accType})
				continue
			}

			var id int64
			err := tx.QueryRow(ctx, `
				INSERT INTO planning_accounts (account_code, account_name, account_type)
				VALUES ($1, $2, $3)
				ON CONFLICT (account_code) DO UPDATE SET account_name = EXCLUDED.account_name, account_type = EXCLUDED.account_type
				RETURNING account_id`, code, name, accType).Scan(&id)
			if err != nil {
				results = append(results, map[string]interface{}{"success": false, "row": i + 2, "account_code": code, "error": err.Error()})
				continue
			}
			codeToID[code] = id
			inserted = append(inserted, insertedAccount{ID: id, ParentCode: parentCode})
			results = append(results, map[string]interface{}{"success": true, "row": i + 2, "account_id": id, "account_code": code})
		}

		for _, acc := range inserted {
			if acc.ParentCode == "" {
				continue
			}
			parentID, ok := codeToID[acc.ParentCode]
			if !ok {
				if err := tx.QueryRow(ctx, "SELECT account_id FROM planning_accounts WHERE account_code = $1", acc.ParentCode).Scan(&parentID); err != nil {
					continue
				}
			}
			_, _ = tx.Exec(ctx, "UPDATE planning_accounts SET parent_account_id = $1 WHERE account_id = $2", parentID, acc.ID)
		}

		if err := tx.Commit(ctx); err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, "commit failed: "+err.Error())
			return
		}

		api.LogInfo("account upload processed %d rows from %s", len(rawRows)-1, header.Filename)
		api.RespondWithPayload(w, api.IsBulkSuccess(results), "", results)
	}
}
