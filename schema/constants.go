package schema

// Custom string types for type safety.
type (
	// Category represents the classified lifecycle stage of a proposal.
	Category string

	// State represents the raw open/closed state of a proposal.
	State string

	// BreakdownKey represents keys used in performance score breakdowns.
	BreakdownKey string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for persistence.
	DatabaseBackend string
)

// All lifecycle categories supported.
const (
	CategoryApproved    Category = "APPROVED"
	CategoryRejected    Category = "REJECTED"
	CategoryStale       Category = "STALE"
	CategoryPending     Category = "PENDING"
	CategoryAdminReview Category = "ADMIN_REVIEW"
)

// Proposal states as reported by the source.
const (
	StateOpen   State = "open"
	StateClosed State = "closed"
)

// Breakdown keys used in the performance scoring logic.
const (
	BreakdownApproved   BreakdownKey = "approved"      // flat bonus for approval
	BreakdownFast       BreakdownKey = "fast_approval" // flat bonus for quick decisions
	BreakdownEngagement BreakdownKey = "engagement"    // comments + review comments
	BreakdownActivity   BreakdownKey = "activity"      // commits + code churn
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All store backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// AllCategories returns every category in a fixed report order.
var AllCategories = []Category{
	CategoryApproved,
	CategoryRejected,
	CategoryPending,
	CategoryStale,
	CategoryAdminReview,
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid store backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
