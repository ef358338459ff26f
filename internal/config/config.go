package config

const (
	DefaultTimeZone = "Asia/Jakarta"

	// Pagination defaults for list endpoints
	DefaultPageLimit = 10
	MaxPageLimit     = 100

	// Statistics refresher
	DefaultStatisticsSchedule = "*/30 * * * *"

	// Account code prefixes used by the income-statement fallback
	// when an account has no explicit category membership.
	RevenueCodePrefix = "4"
	ExpenseCodePrefix = "5"

	// Export formatting
	ExportDateFormat = "02-01-2006"
	ExportSheetName  = "Planning Entries"
)
