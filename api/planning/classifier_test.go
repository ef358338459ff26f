package planning

import "testing"

func TestHeuristicIncomeBucket(t *testing.T) {
	cases := []struct {
		code string
		want ReportBucket
	}{
		{"41000", BucketRevenue},
		{"51000", BucketExpense},
		{"11100", BucketNone},
		{"21000", BucketNone},
		{"", BucketNone},
	}
	for _, c := range cases {
		if got := HeuristicIncomeBucket(c.code); got != c.want {
			t.Fatalf("code %q: got %q want %q", c.code, got, c.want)
		}
	}
}

func TestClassifierHeuristicFallback(t *testing.T) {
	classifier := NewCategoryClassifier(nil)
	account := Account{AccountID: 9, AccountCode: "41000", AccountName: "Rental Income"}
	if got := classifier.ReportBucket(account); got != BucketRevenue {
		t.Fatalf("expected revenue fallback, got %q", got)
	}
}

func TestClassifierExplicitWins(t *testing.T) {
	categories := []Category{
		{CategoryID: 1, CategoryType: CategoryOperasi, AccountIDs: []int64{9}},
	}
	classifier := NewCategoryClassifier(categories)

	// 41000 would be revenue by prefix, but explicit membership decides
	account := Account{AccountID: 9, AccountCode: "41000", AccountName: "Rental Income"}
	if got := classifier.ReportBucket(account); got != BucketOperating {
		t.Fatalf("explicit membership must win, got %q", got)
	}
}

func TestClassifierCategoryTypeMapping(t *testing.T) {
	categories := []Category{
		{CategoryID: 1, CategoryType: CategoryInvestasi, AccountIDs: []int64{1}},
		{CategoryID: 2, CategoryType: CategoryPendanaan, AccountIDs: []int64{2}},
		{CategoryID: 3, CategoryType: CategoryLainnya, AccountIDs: []int64{3}},
	}
	classifier := NewCategoryClassifier(categories)

	cases := []struct {
		id   int64
		want ReportBucket
	}{
		{1, BucketInvesting},
		{2, BucketFinancing},
		{3, BucketOther},
	}
	for _, c := range cases {
		account := Account{AccountID: c.id, AccountCode: "11100"}
		if got := classifier.ReportBucket(account); got != c.want {
			t.Fatalf("account %d: got %q want %q", c.id, got, c.want)
		}
	}
}
