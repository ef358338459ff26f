package planning

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"FleetPlanOffice/api"
	"FleetPlanOffice/api/utils"
)

const entryColumns = `entry_id, planning_id, entry_date, account_debit_id, account_credit_id, amount, status, COALESCE(note, ''), note IS NULL, version, created_at, updated_at`

func scanEntry(row pgx.Row) (PlanningEntry, error) {
	var e PlanningEntry
	var note string
	var noteNull bool
	err := row.Scan(&e.EntryID, &e.PlanningID, &e.EntryDate, &e.AccountDebitID, &e.AccountCreditID,
		&e.Amount, &e.Status, &note, &noteNull, &e.Version, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return PlanningEntry{}, err
	}
	if !noteNull {
		e.Note = &note
	}
	return e, nil
}

func planningIDFromRequest(r *http.Request) (int64, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid planning id %q", raw)
	}
	return id, nil
}

// entryDateFilters appends optional date_from/date_to conditions the way
// the list, export and report queries all share them.
func entryDateFilters(r *http.Request, conds []string, args []interface{}) ([]string, []interface{}) {
	if from := api.NormalizeDate(r.URL.Query().Get("date_from")); from != "" {
		args = append(args, from)
		conds = append(conds, fmt.Sprintf("e.entry_date >= $%d", len(args)))
	}
	if to := api.NormalizeDate(r.URL.Query().Get("date_to")); to != "" {
		args = append(args, to)
		conds = append(conds, fmt.Sprintf("e.entry_date <= $%d", len(args)))
	}
	return conds, args
}

// GetPlanningEntries lists a page of entries together with their
// expanded journal rows. Responses are cached per planning and query
// until the next mutation.
func GetPlanningEntries(pool *pgxpool.Pool, cache *listCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		planningID, err := planningIDFromRequest(r)
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		pagination, err := utils.ExtractPagination(r)
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		cacheKey := r.URL.RawQuery
		if payload, ok := cache.GetEntries(planningID, cacheKey); ok {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(payload)
			return
		}

		ctx := r.Context()

		conds := []string{"e.planning_id = $1"}
		args := []interface{}{planningID}
		if q := strings.TrimSpace(r.URL.Query().Get("q")); q != "" {
			args = append(args, "%"+q+"%")
			conds = append(conds, fmt.Sprintf("e.note ILIKE $%d", len(args)))
		}
		conds, args = entryDateFilters(r, conds, args)
		where := strings.Join(conds, " AND ")

		total, err := utils.CountTotal(ctx, pool, "SELECT COUNT(*) FROM planning_entries e WHERE "+where, args...)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		pagination.SetPaginationStats(total)

		listQ := "SELECT " + entryColumns + " FROM planning_entries e WHERE " + where +
			fmt.Sprintf(" ORDER BY e.entry_date, e.entry_id LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
		args = append(args, pagination.Limit, pagination.Offset)

		rows, err := pool.Query(ctx, listQ, args...)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		defer rows.Close()

		entries := []PlanningEntry{}
		for rows.Next() {
			e, err := scanEntry(rows)
			if err != nil {
				api.RespondWithError(w, http.StatusInternalServerError, err.Error())
				return
			}
			entries = append(entries, e)
		}
		if err := rows.Err(); err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		dir, err := LoadAccountDirectory(ctx, pool)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		displayRows, err := ExpandEntries(entries, dir)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		payload := map[string]interface{}{
			"success":    true,
			"items":      entries,
			"rows":       displayRows,
			"meta":       map[string]interface{}{"planning_id": planningID},
			"pagination": pagination,
		}
		cache.SetEntries(planningID, cacheKey, payload)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(payload)
	}
}

type entryWriteRequest struct {
	Date            string           `json:"date"`
	AccountDebitID  int64            `json:"account_debit_id"`
	AccountCreditID int64            `json:"account_credit_id"`
	Amount          decimal.Decimal  `json:"amount"`
	Debit           *decimal.Decimal `json:"debit"`
	Credit          *decimal.Decimal `json:"credit"`
	Note            string           `json:"note"`
}

func (req entryWriteRequest) toInput() EntryInput {
	debit, credit := req.Amount, req.Amount
	if req.Debit != nil {
		debit = *req.Debit
	}
	if req.Credit != nil {
		credit = *req.Credit
	}
	return EntryInput{
		Date:            req.Date,
		AccountDebitID:  req.AccountDebitID,
		AccountCreditID: req.AccountCreditID,
		Debit:           debit,
		Credit:          credit,
		Note:            req.Note,
	}
}

func respondValidationError(w http.ResponseWriter, err error) bool {
	var verr *ValidationError
	if errors.As(err, &verr) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"error":   verr.Message,
			"kind":    verr.Kind,
		})
		return true
	}
	return false
}

// CreatePlanningEntry validates and inserts one transaction. The
// balance checks run here regardless of what the client already did.
func CreatePlanningEntry(pool *pgxpool.Pool, cache *listCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		planningID, err := planningIDFromRequest(r)
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		var req entryWriteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.RespondWithError(w, http.StatusBadRequest, "Invalid JSON")
			return
		}

		payload, err := ValidateEntry(req.toInput())
		if err != nil {
			if respondValidationError(w, err) {
				return
			}
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		insQ := `INSERT INTO planning_entries (planning_id, entry_date, account_debit_id, account_credit_id, amount, status, note, version, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, 'POSTED', $6, 1, now(), now())
			RETURNING ` + entryColumns
		entry, err := scanEntry(pool.QueryRow(r.Context(), insQ,
			planningID, payload.Date, payload.AccountDebitID, payload.AccountCreditID, payload.Amount, payload.Note))
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, "insert failed: "+err.Error())
			return
		}

		cache.Invalidate(planningID)
		api.LogInfo("planning %d: entry %d created", planningID, entry.EntryID)
		api.RespondWithPayload(w, true, "", entry)
	}
}

type entryPatchRequest struct {
	Date            *string          `json:"date"`
	AccountDebitID  *int64           `json:"account_debit_id"`
	AccountCreditID *int64           `json:"account_credit_id"`
	Amount          *decimal.Decimal `json:"amount"`
	Note            *string          `json:"note"`
	Version         int              `json:"version"`
}

// UpdatePlanningEntry applies a partial update. The request carries the
// version the editor loaded; a mismatch means someone else wrote in
// between and the update is refused with a conflict instead of silently
// overwriting.
func UpdatePlanningEntry(pool *pgxpool.Pool, cache *listCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		planningID, err := planningIDFromRequest(r)
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		entryID, err := strconv.ParseInt(mux.Vars(r)["entryId"], 10, 64)
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, "invalid entry id")
			return
		}
		var req entryPatchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.RespondWithError(w, http.StatusBadRequest, "Invalid JSON")
			return
		}

		ctx := r.Context()
		tx, err := pool.Begin(ctx)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, "failed to start transaction: "+err.Error())
			return
		}
		defer tx.Rollback(ctx)

		current, err := scanEntry(tx.QueryRow(ctx,
			"SELECT "+entryColumns+" FROM planning_entries WHERE entry_id = $1 AND planning_id = $2 FOR UPDATE",
			entryID, planningID))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				api.RespondWithError(w, http.StatusNotFound, "entry not found")
				return
			}
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		if req.Version != 0 && req.Version != current.Version {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusConflict)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"success":         false,
				"error":           "entry was modified by another user, reload and retry",
				"current_version": current.Version,
			})
			return
		}

		merged := EntryInput{
			Date:            current.EntryDate.Format("2006-01-02"),
			AccountDebitID:  current.AccountDebitID,
			AccountCreditID: current.AccountCreditID,
			Debit:           current.Amount,
			Credit:          current.Amount,
		}
		if current.Note != nil {
			merged.Note = *current.Note
		}
		if req.Date != nil {
			merged.Date = *req.Date
		}
		if req.AccountDebitID != nil {
			merged.AccountDebitID = *req.AccountDebitID
		}
		if req.AccountCreditID != nil {
			merged.AccountCreditID = *req.AccountCreditID
		}
		if req.Amount != nil {
			merged.Debit = *req.Amount
			merged.Credit = *req.Amount
		}
		if req.Note != nil {
			merged.Note = *req.Note
		}

		payload, err := ValidateEntry(merged)
		if err != nil {
			if respondValidationError(w, err) {
				return
			}
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		updQ := `UPDATE planning_entries
			SET entry_date = $1, account_debit_id = $2, account_credit_id = $3, amount = $4, note = $5,
			    version = version + 1, updated_at = now()
			WHERE entry_id = $6 AND planning_id = $7
			RETURNING ` + entryColumns
		entry, err := scanEntry(tx.QueryRow(ctx, updQ,
			payload.Date, payload.AccountDebitID, payload.AccountCreditID, payload.Amount, payload.Note,
			entryID, planningID))
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, "update failed: "+err.Error())
			return
		}
		if err := tx.Commit(ctx); err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, "commit failed: "+err.Error())
			return
		}

		cache.Invalidate(planningID)
		api.LogInfo("planning %d: entry %d updated to version %d", planningID, entryID, entry.Version)
		api.RespondWithPayload(w, true, "", entry)
	}
}

// DeletePlanningEntry removes one transaction. Confirmation is the
// caller's responsibility.
func DeletePlanningEntry(pool *pgxpool.Pool, cache *listCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		planningID, err := planningIDFromRequest(r)
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		entryID, err := strconv.ParseInt(mux.Vars(r)["entryId"], 10, 64)
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, "invalid entry id")
			return
		}

		tag, err := pool.Exec(r.Context(),
			"DELETE FROM planning_entries WHERE entry_id = $1 AND planning_id = $2", entryID, planningID)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if tag.RowsAffected() == 0 {
			api.RespondWithError(w, http.StatusNotFound, "entry not found")
			return
		}

		cache.Invalidate(planningID)
		api.LogInfo("planning %d: entry %d deleted", planningID, entryID)
		api.RespondWithResult(w, true, "")
	}
}

// GetEntryByRow resolves a composite journal row id back to its entry
// and both display rows, for repopulating the edit form.
func GetEntryByRow(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		planningID, err := planningIDFromRequest(r)
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		entryID, err := CanonicalEntryID(mux.Vars(r)["compositeId"])
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		ctx := r.Context()
		entry, err := scanEntry(pool.QueryRow(ctx,
			"SELECT "+entryColumns+" FROM planning_entries WHERE entry_id = $1 AND planning_id = $2",
			entryID, planningID))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				api.RespondWithError(w, http.StatusNotFound, "entry not found")
				return
			}
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		dir, err := LoadAccountDirectory(ctx, pool)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		displayRows, err := ExpandEntry(&entry, dir)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"item":    entry,
			"rows":    displayRows,
		})
	}
}

// GetPlanningStatistics serves the cached entry count and amount total
// for one planning.
func GetPlanningStatistics(pool *pgxpool.Pool, cache *listCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		planningID, err := planningIDFromRequest(r)
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		if payload, ok := cache.GetStatistics(planningID); ok {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(payload)
			return
		}

		var entryCount int64
		var totalAmount decimal.Decimal
		err = pool.QueryRow(r.Context(),
			"SELECT COUNT(*), COALESCE(SUM(amount), 0) FROM planning_entries WHERE planning_id = $1",
			planningID).Scan(&entryCount, &totalAmount)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		payload := map[string]interface{}{
			"success":      true,
			"entry_count":  entryCount,
			"total_amount": totalAmount,
		}
		cache.SetStatistics(planningID, payload)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(payload)
	}
}

// ExportPlanningEntries streams the journal as a CSV or XLSX download.
// An empty row set aborts before any bytes are written.
func ExportPlanningEntries(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		planningID, err := planningIDFromRequest(r)
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		format := r.URL.Query().Get("format")
		if format == "" {
			format = "csv"
		}
		if format != "csv" && format != "xlsx" {
			api.RespondWithError(w, http.StatusBadRequest, "unsupported export format: "+format)
			return
		}

		ctx := r.Context()

		var planningName string
		if err := pool.QueryRow(ctx, "SELECT planning_name FROM plannings WHERE planning_id = $1", planningID).Scan(&planningName); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				api.RespondWithError(w, http.StatusNotFound, "planning not found")
				return
			}
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		conds := []string{"e.planning_id = $1"}
		args := []interface{}{planningID}
		conds, args = entryDateFilters(r, conds, args)

		listQ := "SELECT " + entryColumns + " FROM planning_entries e WHERE " +
			strings.Join(conds, " AND ") + " ORDER BY e.entry_date, e.entry_id"
		rows, err := pool.Query(ctx, listQ, args...)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		defer rows.Close()

		entries := []PlanningEntry{}
		for rows.Next() {
			e, err := scanEntry(rows)
			if err != nil {
				api.RespondWithError(w, http.StatusInternalServerError, err.Error())
				return
			}
			entries = append(entries, e)
		}
		if err := rows.Err(); err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		dir, err := LoadAccountDirectory(ctx, pool)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		displayRows, err := ExpandEntries(entries, dir)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		table, err := BuildExportTable(displayRows)
		if err != nil {
			var emptyErr *EmptyExportError
			if errors.As(err, &emptyErr) {
				api.RespondWithError(w, http.StatusNotFound, emptyErr.Error())
				return
			}
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		dateFrom := parseDateParam(r, "date_from")
		dateTo := parseDateParam(r, "date_to")
		filename := ExportFilename(planningName, dateFrom, dateTo, time.Now(), format)
		w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

		if format == "csv" {
			w.Header().Set("Content-Type", "text/csv; charset=utf-8")
			if err := WriteCSV(w, table); err != nil {
				api.LogError("csv export write failed: %v", err)
			}
			return
		}

		f, err := BuildXLSX(table)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		if err := f.Write(w); err != nil {
			api.LogError("xlsx export write failed: %v", err)
		}
	}
}

func parseDateParam(r *http.Request, key string) *time.Time {
	norm := api.NormalizeDate(r.URL.Query().Get(key))
	if norm == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", norm)
	if err != nil {
		return nil
	}
	return &t
}
