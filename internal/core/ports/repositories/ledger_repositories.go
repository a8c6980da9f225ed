package repositories

import (
	"context"

	"github.com/commonsfund/ledger_backend/internal/core/domain"
	"github.com/commonsfund/ledger_backend/internal/core/query"
)

// LedgerEntryReader executes compiled queries against the ledger store.
// All operations are read-only; entries are written by the payment-processing
// subsystem outside this service.
type LedgerEntryReader interface {
	// ListEntries returns one page of entries plus the total count under the
	// same filters. Backends should obtain both in a single round trip where
	// the store allows it.
	ListEntries(ctx context.Context, q query.Compiled) ([]domain.LedgerEntry, int64, error)

	// CountEntries returns only the total count for the given filters,
	// serving the limit=0 count-only path.
	CountEntries(ctx context.Context, where []query.Predicate, joins []query.Join) (int64, error)

	// DistinctKinds returns the distinct non-null kinds present under the
	// structural filter snapshot.
	DistinctKinds(ctx context.Context, s query.Snapshot) ([]domain.EntryKind, error)

	// DistinctPaymentMethodTypes returns the distinct payment method types
	// present under the structural filter snapshot. A nil element stands for
	// entries with no payment method.
	DistinctPaymentMethodTypes(ctx context.Context, s query.Snapshot) ([]*domain.PaymentMethodType, error)

	// FindEntryByID fetches a single entry.
	FindEntryByID(ctx context.Context, id int64) (*domain.LedgerEntry, error)
}

// AccountReader resolves account references and relationships for the access
// scoper.
type AccountReader interface {
	// FindAccountByRef resolves an id-or-slug reference to an account,
	// returning apperrors.ErrNotFound when it does not resolve.
	FindAccountByRef(ctx context.Context, ref domain.AccountRef) (*domain.Account, error)

	// FindChildAccounts lists the direct children of an account, excluding
	// the given types.
	FindChildAccounts(ctx context.Context, parentID int64, excludeTypes []domain.AccountType) ([]domain.Account, error)

	// FindIncognitoAccount returns the incognito proxy linked to the given
	// account, or nil when the account has none.
	FindIncognitoAccount(ctx context.Context, ownerAccountID int64) (*domain.Account, error)
}

// ExpenseResolver resolves an expense reference to its internal id, checking
// existence.
type ExpenseResolver interface {
	ResolveExpenseID(ctx context.Context, ref int64) (int64, error)
}

// OrderResolver resolves an order reference to its internal id, checking
// existence.
type OrderResolver interface {
	ResolveOrderID(ctx context.Context, ref int64) (int64, error)
}
