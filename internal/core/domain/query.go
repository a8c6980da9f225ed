package domain

import (
	"context"
	"time"
)

// SortField names a sortable dimension of the transaction listing.
type SortField string

// SortByCreatedAt is the only supported sort field: the grouping composite
// built on top of entry creation time.
const SortByCreatedAt SortField = "CREATED_AT"

// SortDirection is the direction applied uniformly to every key of the
// composite sort.
type SortDirection string

const (
	SortAsc  SortDirection = "ASC"
	SortDesc SortDirection = "DESC"
)

// OrderBy selects the sort field and direction for a transaction query.
type OrderBy struct {
	Field     SortField
	Direction SortDirection
}

// TransactionQuery is the immutable input of the ledger query engine.
// Every field is optional; zero values mean "no filter" except for the
// Include* flags, whose defaults are set by DefaultTransactionQuery.
// Limit and Offset are pointers because an explicit limit of 0 (count-only)
// means something different from an absent limit (default page size).
type TransactionQuery struct {
	Limit  *int
	Offset *int

	Type               *EntryType
	Kinds              []EntryKind
	Group              string
	MinAmount          *int64
	MaxAmount          *int64
	DateFrom           *time.Time
	DateTo             *time.Time
	SearchTerm         string
	PaymentMethodTypes []*PaymentMethodType // nil element matches "no payment method"

	FromAccount *AccountRef
	Accounts    []AccountRef
	Host        *AccountRef

	HasExpense   *bool
	Expense      *int64
	ExpenseTypes []ExpenseType
	HasOrder     *bool
	Order        *int64
	VirtualCards []string

	IncludeHost      bool
	IncludeRegular   bool
	IncludeIncognito bool
	IncludeChildren  bool
	IncludeGiftCards bool
	IncludeDebts     bool

	OrderBy OrderBy
}

// DefaultTransactionQuery returns a query with the documented defaults:
// everything unfiltered, host and regular entries included, debts and the
// privacy-sensitive expansions excluded, newest first.
func DefaultTransactionQuery() TransactionQuery {
	return TransactionQuery{
		IncludeHost:    true,
		IncludeRegular: true,
		OrderBy:        OrderBy{Field: SortByCreatedAt, Direction: SortDesc},
	}
}

// KindsFacet and PaymentMethodTypesFacet are lazily-evaluated result fields.
// They are only executed when called, so a caller that does not ask for a
// facet never pays for it.
type (
	KindsFacet              func(ctx context.Context) ([]EntryKind, error)
	PaymentMethodTypesFacet func(ctx context.Context) ([]*PaymentMethodType, error)
)

// ResultPage is one page of ledger entries plus the total count under the
// same filters and the two lazy facets.
type ResultPage struct {
	Nodes      []LedgerEntry
	TotalCount int64
	Limit      int
	Offset     int

	// Facets are computed against the structural filter set (everything
	// except the free-text search narrowing), so filter chips in a UI do not
	// flicker while the user types a search term.
	Kinds              KindsFacet
	PaymentMethodTypes PaymentMethodTypesFacet
}
