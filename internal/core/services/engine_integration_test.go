package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/commonsfund/ledger_backend/internal/core/domain"
	portssvc "github.com/commonsfund/ledger_backend/internal/core/ports/services"
	"github.com/commonsfund/ledger_backend/internal/core/services"
	"github.com/commonsfund/ledger_backend/internal/repositories/database/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The engine tests below run the full query pipeline against the in-memory
// store, exercising the same compiled representation the SQL backend receives.

func int64Ptr(v int64) *int64 { return &v }

func seedLedger(t *testing.T) (*memory.Store, portssvc.TransactionQuerySvc) {
	t.Helper()
	store := memory.New()

	// Collective A (id 1) with child event C (id 2) and a vendor (id 3),
	// hosted by host H (id 10). Contributor (id 20).
	host := int64(10)
	store.AddAccount(domain.Account{ID: 1, Slug: "collective-a", Type: domain.AccountCollective, HostID: &host})
	store.AddAccount(domain.Account{ID: 2, Slug: "event-c", Type: domain.AccountEvent, ParentID: int64Ptr(1), HostID: &host})
	store.AddAccount(domain.Account{ID: 3, Slug: "vendor-x", Type: domain.AccountVendor, ParentID: int64Ptr(1)})
	store.AddAccount(domain.Account{ID: 10, Slug: "host-h", Type: domain.AccountOrganization})
	store.AddAccount(domain.Account{ID: 20, Slug: "jdoe", Type: domain.AccountIndividual})

	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	pm := domain.PaymentMethodCreditCard

	// A contribution to the collective with its host fee legs.
	store.AddEntry(domain.LedgerEntry{
		ID: 1, GroupID: "g1", Type: domain.Credit, Kind: domain.KindContribution,
		OwnerAccountID: 1, CounterpartyAccountID: 20, HostAccountID: &host,
		Amount: 10_000, Currency: "USD", PaymentMethodID: int64Ptr(100), PaymentMethodType: &pm,
		LinkedOrderID: int64Ptr(500), Description: "Contribution from jdoe", CreatedAt: base,
	})
	store.AddEntry(domain.LedgerEntry{
		ID: 2, GroupID: "g1", Type: domain.Debit, Kind: domain.KindContribution,
		OwnerAccountID: 20, CounterpartyAccountID: 1,
		Amount: -10_000, Currency: "USD", PaymentMethodID: int64Ptr(100), PaymentMethodType: &pm,
		LinkedOrderID: int64Ptr(500), Description: "Contribution from jdoe", CreatedAt: base,
	})
	store.AddEntry(domain.LedgerEntry{
		ID: 3, GroupID: "g1", Type: domain.Debit, Kind: domain.KindHostFee,
		OwnerAccountID: 1, CounterpartyAccountID: 10, HostAccountID: &host,
		Amount: -500, Currency: "USD", Description: "Host fee", CreatedAt: base.Add(time.Second),
	})

	// A host fee on the child event.
	store.AddEntry(domain.LedgerEntry{
		ID: 4, GroupID: "g2", Type: domain.Debit, Kind: domain.KindHostFee,
		OwnerAccountID: 2, CounterpartyAccountID: 10, HostAccountID: &host,
		Amount: -300, Currency: "USD", Description: "Host fee", CreatedAt: base.Add(time.Hour),
	})

	// A debt-flagged settlement on the collective.
	store.AddEntry(domain.LedgerEntry{
		ID: 5, GroupID: "g3", Type: domain.Credit, Kind: domain.KindHostFeeShareDebt,
		OwnerAccountID: 1, CounterpartyAccountID: 10, HostAccountID: &host, IsDebt: true,
		Amount: 150, Currency: "USD", Description: "Host fee share debt", CreatedAt: base.Add(2 * time.Hour),
	})

	// A vendor entry that must never surface through children expansion.
	store.AddEntry(domain.LedgerEntry{
		ID: 6, GroupID: "g4", Type: domain.Debit, Kind: domain.KindExpense,
		OwnerAccountID: 3, CounterpartyAccountID: 1,
		Amount: -2000, Currency: "USD", Description: "Vendor payout", CreatedAt: base.Add(3 * time.Hour),
	})

	store.AddOrder(500)

	svc := services.NewTransactionQueryService(store, store, store, store, services.TransactionQueryConfig{})
	return store, svc
}

func TestEngineAccountScopeWithChildren(t *testing.T) {
	_, svc := seedLedger(t)

	q := domain.DefaultTransactionQuery()
	q.Accounts = []domain.AccountRef{{Slug: "collective-a"}}
	q.IncludeChildren = true
	q.Kinds = []domain.EntryKind{domain.KindHostFee}

	page, err := svc.QueryTransactions(context.Background(), nil, q)
	require.NoError(t, err)

	// The collective's own host fee plus the child event's, never the vendor.
	require.Equal(t, int64(2), page.TotalCount)
	ids := []int64{page.Nodes[0].ID, page.Nodes[1].ID}
	assert.ElementsMatch(t, []int64{3, 4}, ids)
}

func TestEngineDebtsExcludedUnlessRequested(t *testing.T) {
	_, svc := seedLedger(t)

	q := domain.DefaultTransactionQuery()
	q.Accounts = []domain.AccountRef{{ID: 1}}

	page, err := svc.QueryTransactions(context.Background(), nil, q)
	require.NoError(t, err)
	for _, node := range page.Nodes {
		assert.False(t, node.IsDebt)
	}
	withoutDebts := page.TotalCount

	q.IncludeDebts = true
	page, err = svc.QueryTransactions(context.Background(), nil, q)
	require.NoError(t, err)
	assert.Equal(t, withoutDebts+1, page.TotalCount)
}

func TestEngineCountOnlyMatchesFullCount(t *testing.T) {
	_, svc := seedLedger(t)

	q := domain.DefaultTransactionQuery()
	q.Accounts = []domain.AccountRef{{ID: 1}}

	full, err := svc.QueryTransactions(context.Background(), nil, q)
	require.NoError(t, err)

	q.Limit = intPtr(0)
	countOnly, err := svc.QueryTransactions(context.Background(), nil, q)
	require.NoError(t, err)

	assert.Empty(t, countOnly.Nodes)
	assert.Equal(t, full.TotalCount, countOnly.TotalCount)
}

func TestEngineOrderingGroupsLegsTogether(t *testing.T) {
	_, svc := seedLedger(t)

	q := domain.DefaultTransactionQuery()
	q.OrderBy.Direction = domain.SortAsc

	page, err := svc.QueryTransactions(context.Background(), nil, q)
	require.NoError(t, err)
	require.Equal(t, int64(5), page.TotalCount)

	// Within g1's bucket: debit contribution, credit contribution, host fee.
	ids := make([]int64, len(page.Nodes))
	for i, node := range page.Nodes {
		ids[i] = node.ID
	}
	assert.Equal(t, []int64{2, 1, 3, 4, 6}, ids)
}

func TestEngineFacetsIgnoreSearchNarrowing(t *testing.T) {
	_, svc := seedLedger(t)

	q := domain.DefaultTransactionQuery()
	q.Accounts = []domain.AccountRef{{ID: 1}}
	q.SearchTerm = "host fee"

	page, err := svc.QueryTransactions(context.Background(), nil, q)
	require.NoError(t, err)
	require.Equal(t, int64(1), page.TotalCount, "search narrows the page to the host fee leg")

	kinds, err := page.Kinds(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.EntryKind{domain.KindContribution, domain.KindHostFee}, kinds,
		"facets reflect the structural filters, not the search term")
}

func TestEnginePaymentMethodFacetAndFilter(t *testing.T) {
	_, svc := seedLedger(t)

	q := domain.DefaultTransactionQuery()
	q.Accounts = []domain.AccountRef{{ID: 1}}

	page, err := svc.QueryTransactions(context.Background(), nil, q)
	require.NoError(t, err)

	types, err := page.PaymentMethodTypes(context.Background())
	require.NoError(t, err)
	require.Len(t, types, 2)
	assert.Nil(t, types[0])
	assert.Equal(t, domain.PaymentMethodCreditCard, *types[1])

	// The nil sentinel selects the entries with no payment method.
	q.PaymentMethodTypes = []*domain.PaymentMethodType{nil}
	page, err = svc.QueryTransactions(context.Background(), nil, q)
	require.NoError(t, err)
	require.Equal(t, int64(1), page.TotalCount)
	assert.Equal(t, domain.KindHostFee, page.Nodes[0].Kind)
}

func TestEngineHostScopeSuppressesHostBookkeeping(t *testing.T) {
	_, svc := seedLedger(t)

	q := domain.DefaultTransactionQuery()
	q.Host = &domain.AccountRef{ID: 10}

	page, err := svc.QueryTransactions(context.Background(), nil, q)
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.TotalCount, "every hosted, non-debt entry carries the host id")

	q.IncludeHost = false
	page, err = svc.QueryTransactions(context.Background(), nil, q)
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.TotalCount, "the host account owns no entries here, nothing extra is suppressed")
}

func TestEngineOrderReferenceFilter(t *testing.T) {
	_, svc := seedLedger(t)

	q := domain.DefaultTransactionQuery()
	q.Order = int64Ptr(500)

	page, err := svc.QueryTransactions(context.Background(), nil, q)
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.TotalCount)

	q.Order = int64Ptr(999)
	_, err = svc.QueryTransactions(context.Background(), nil, q)
	assert.Error(t, err, "an unresolvable order reference fails the query")
}

func TestEngineGiftCardExpansion(t *testing.T) {
	store, svc := seedLedger(t)

	issuer := int64(1)
	pm := domain.PaymentMethodGiftCard
	store.AddEntry(domain.LedgerEntry{
		ID: 7, GroupID: "g5", Type: domain.Debit, Kind: domain.KindContribution,
		OwnerAccountID: 20, CounterpartyAccountID: 2, GiftCardIssuerAccountID: &issuer,
		Amount: -400, Currency: "USD", PaymentMethodType: &pm,
		Description: "Gift card spend", CreatedAt: time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
	})

	q := domain.DefaultTransactionQuery()
	q.Accounts = []domain.AccountRef{{ID: 1}}
	q.Group = "g5"

	page, err := svc.QueryTransactions(context.Background(), nil, q)
	require.NoError(t, err)
	assert.Zero(t, page.TotalCount, "without the flag, issued gift card spends stay invisible")

	q.IncludeGiftCards = true
	page, err = svc.QueryTransactions(context.Background(), nil, q)
	require.NoError(t, err)
	require.Equal(t, int64(1), page.TotalCount)
	assert.Equal(t, int64(7), page.Nodes[0].ID)
}
