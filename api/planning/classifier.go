package planning

import (
	"strings"

	"FleetPlanOffice/internal/config"
)

// ReportBucket is the single classification an account gets for report
// rendering, resolved once from either explicit category membership or
// the code-prefix fallback.
type ReportBucket string

const (
	BucketOperating ReportBucket = "operating"
	BucketInvesting ReportBucket = "investing"
	BucketFinancing ReportBucket = "financing"
	BucketRevenue   ReportBucket = "revenue"
	BucketExpense   ReportBucket = "expense"
	BucketOther     ReportBucket = "other"
	BucketNone      ReportBucket = ""
)

var categoryTypeBuckets = map[string]ReportBucket{
	CategoryOperasi:    BucketOperating,
	CategoryInvestasi:  BucketInvesting,
	CategoryPendanaan:  BucketFinancing,
	CategoryPendapatan: BucketRevenue,
	CategoryBeban:      BucketExpense,
	CategoryLainnya:    BucketOther,
}

// CategoryClassifier buckets accounts into report sections. Explicit
// membership always wins; accounts without one fall back to the
// code-prefix heuristic kept for compatibility with legacy charts whose
// income-statement placement was inferred from the code alone.
type CategoryClassifier struct {
	explicit map[int64]ReportBucket
}

func NewCategoryClassifier(categories []Category) *CategoryClassifier {
	explicit := make(map[int64]ReportBucket)
	for _, cat := range categories {
		bucket, ok := categoryTypeBuckets[strings.ToUpper(cat.CategoryType)]
		if !ok {
			continue
		}
		for _, accountID := range cat.AccountIDs {
			explicit[accountID] = bucket
		}
	}
	return &CategoryClassifier{explicit: explicit}
}

// ReportBucket resolves the bucket for one account.
func (c *CategoryClassifier) ReportBucket(a Account) ReportBucket {
	if bucket, ok := c.explicit[a.AccountID]; ok {
		return bucket
	}
	return HeuristicIncomeBucket(a.AccountCode)
}

// HeuristicIncomeBucket infers income-statement placement from the
// leading digit of the account code: 4xxxx revenue, 5xxxx expense,
// everything else stays out of the income statement.
func HeuristicIncomeBucket(code string) ReportBucket {
	switch {
	case strings.HasPrefix(code, config.RevenueCodePrefix):
		return BucketRevenue
	case strings.HasPrefix(code, config.ExpenseCodePrefix):
		return BucketExpense
	default:
		return BucketNone
	}
}
