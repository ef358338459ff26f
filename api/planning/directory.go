package planning

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AccountInfo is the name/code pair the journal needs per account.
type AccountInfo struct {
	Code string
	Name string
}

// AccountDirectory resolves an account id to its code and name. Built
// once per account fetch; lookups never rebuild the map and never fail,
// a miss degrades to a synthesized placeholder label.
type AccountDirectory struct {
	byID map[int64]AccountInfo
}

func NewAccountDirectory(accounts []Account) *AccountDirectory {
	byID := make(map[int64]AccountInfo, len(accounts))
	for _, a := range accounts {
		byID[a.AccountID] = AccountInfo{Code: a.AccountCode, Name: a.AccountName}
	}
	return &AccountDirectory{byID: byID}
}

func (d *AccountDirectory) Lookup(id int64) (AccountInfo, bool) {
	info, ok := d.byID[id]
	return info, ok
}

// Label returns "<code> - <name>" for known accounts and "ID: <id>" for
// unknown ones.
func (d *AccountDirectory) Label(id int64) string {
	if info, ok := d.byID[id]; ok {
		return info.Code + " - " + info.Name
	}
	return fmt.Sprintf("ID: %d", id)
}

func (d *AccountDirectory) Len() int {
	return len(d.byID)
}

// LoadAccountDirectory builds the directory straight from the accounts table.
func LoadAccountDirectory(ctx context.Context, pool *pgxpool.Pool) (*AccountDirectory, error) {
	rows, err := pool.Query(ctx, `SELECT account_id, account_code, account_name, account_type FROM planning_accounts ORDER BY account_code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	accounts := []Account{}
	for rows.Next() {
		var a Account
		if err := rows.Scan(&a.AccountID, &a.AccountCode, &a.AccountName, &a.AccountType); err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return NewAccountDirectory(accounts), rows.Err()
}
