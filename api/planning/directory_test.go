package planning

import "testing"

func testAccounts() []Account {
	return []Account{
		{AccountID: 1, AccountCode: "11100", AccountName: "Cash & Bank", AccountType: AccountTypeAsset},
		{AccountID: 2, AccountCode: "41000", AccountName: "Rental Income", AccountType: AccountTypeRevenue},
		{AccountID: 3, AccountCode: "51000", AccountName: "Fleet Maintenance", AccountType: AccountTypeExpense},
	}
}

func TestDirectoryLabel(t *testing.T) {
	dir := NewAccountDirectory(testAccounts())
	if got := dir.Label(1); got != "11100 - Cash & Bank" {
		t.Fatalf("unexpected label: %q", got)
	}
}

func TestDirectoryMissFallsBackToPlaceholder(t *testing.T) {
	dir := NewAccountDirectory(testAccounts())
	if got := dir.Label(999); got != "ID: 999" {
		t.Fatalf("expected placeholder label, got %q", got)
	}
	if _, ok := dir.Lookup(999); ok {
		t.Fatalf("lookup of unknown id reported ok")
	}
}

func TestDirectoryLookupIdempotent(t *testing.T) {
	dir := NewAccountDirectory(testAccounts())
	first, ok1 := dir.Lookup(2)
	second, ok2 := dir.Lookup(2)
	if !ok1 || !ok2 {
		t.Fatalf("expected both lookups to succeed")
	}
	if first != second {
		t.Fatalf("repeated lookups differ: %+v vs %+v", first, second)
	}
	if dir.Len() != 3 {
		t.Fatalf("directory size changed to %d", dir.Len())
	}
}
