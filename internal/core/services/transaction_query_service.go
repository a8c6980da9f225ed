package services

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/commonsfund/ledger_backend/internal/core/domain"
	portsrepo "github.com/commonsfund/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/commonsfund/ledger_backend/internal/core/ports/services"
	"github.com/commonsfund/ledger_backend/internal/core/query"
	"github.com/commonsfund/ledger_backend/internal/utils/pagination"
	"github.com/commonsfund/ledger_backend/internal/utils/search"
)

// TransactionQueryConfig tunes the engine. Zero values fall back to the
// documented defaults.
type TransactionQueryConfig struct {
	DefaultLimit int
	MaxLimit     int
	GroupWindow  time.Duration
}

func (c TransactionQueryConfig) withDefaults() TransactionQueryConfig {
	if c.DefaultLimit <= 0 {
		c.DefaultLimit = pagination.DefaultLimit
	}
	if c.MaxLimit <= 0 {
		c.MaxLimit = pagination.MaxLimit
	}
	if c.GroupWindow <= 0 {
		c.GroupWindow = query.DefaultGroupWindow
	}
	return c
}

// transactionQueryService is the ledger query engine: it turns a
// TransactionQuery into a compiled predicate set, executes it against the
// ledger store and wires up the lazy facets.
type transactionQueryService struct {
	ledger   portsrepo.LedgerEntryReader
	accounts portsrepo.AccountReader
	expenses portsrepo.ExpenseResolver
	orders   portsrepo.OrderResolver
	cfg      TransactionQueryConfig
}

// NewTransactionQueryService creates the ledger query engine.
func NewTransactionQueryService(
	ledger portsrepo.LedgerEntryReader,
	accounts portsrepo.AccountReader,
	expenses portsrepo.ExpenseResolver,
	orders portsrepo.OrderResolver,
	cfg TransactionQueryConfig,
) portssvc.TransactionQuerySvc {
	return &transactionQueryService{
		ledger:   ledger,
		accounts: accounts,
		expenses: expenses,
		orders:   orders,
		cfg:      cfg.withDefaults(),
	}
}

var _ portssvc.TransactionQuerySvc = (*transactionQueryService)(nil)

// QueryTransactions runs the full pipeline:
//
//	normalize pagination -> resolve references & scopes (concurrently) ->
//	compile filter clauses -> snapshot the structural filter set ->
//	append search clauses -> execute -> attach lazy facets.
func (s *transactionQueryService) QueryTransactions(ctx context.Context, actor *domain.Actor, q domain.TransactionQuery) (*domain.ResultPage, error) {
	limit, offset := pagination.Normalize(q.Limit, q.Offset, s.cfg.DefaultLimit)
	if err := pagination.CheckCeiling(limit, s.cfg.MaxLimit, actor.IsRoot()); err != nil {
		return nil, err
	}

	// The reference resolutions are independent of each other; run them
	// concurrently before the rest of the pipeline proceeds.
	var (
		ownerPred query.Predicate
		fromPred  query.Predicate
		hostPreds []query.Predicate
		expenseID *int64
		orderID   *int64
	)
	g, gctx := errgroup.WithContext(ctx)
	if len(q.Accounts) > 0 {
		g.Go(func() error {
			pred, err := s.expandAccountScope(gctx, actor, q.Accounts, scopeFlagsFromQuery(q), sideOwner)
			ownerPred = pred
			return err
		})
	}
	if q.FromAccount != nil {
		g.Go(func() error {
			pred, err := s.expandAccountScope(gctx, actor, []domain.AccountRef{*q.FromAccount}, scopeFlagsFromQuery(q), sideCounterparty)
			fromPred = pred
			return err
		})
	}
	if q.Host != nil {
		g.Go(func() error {
			preds, err := s.expandHostScope(gctx, q)
			hostPreds = preds
			return err
		})
	}
	if q.Expense != nil {
		g.Go(func() error {
			id, err := s.expenses.ResolveExpenseID(gctx, *q.Expense)
			if err != nil {
				return err
			}
			expenseID = &id
			return nil
		})
	}
	if q.Order != nil {
		g.Go(func() error {
			id, err := s.orders.ResolveOrderID(gctx, *q.Order)
			if err != nil {
				return err
			}
			orderID = &id
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var where []query.Predicate
	var joins []query.Join
	if ownerPred != nil {
		where = append(where, ownerPred)
	}
	if fromPred != nil {
		where = append(where, fromPred)
	}
	where = append(where, hostPreds...)

	resolved := resolvedQuery{TransactionQuery: q, ExpenseID: expenseID, OrderID: orderID}
	where, joins = compileFilters(resolved, where, joins)

	// Facets see the filter state as of this point, untouched by the search
	// narrowing appended below.
	structural := query.TakeSnapshot(where, joins)

	if searchPreds, searchJoins := search.TermClauses(q.SearchTerm); len(searchPreds) > 0 {
		where = append(where, searchPreds...)
		for _, j := range searchJoins {
			joins = query.MergeJoin(joins, j)
		}
	}

	compiled := query.Compiled{
		Where:      where,
		Joins:      joins,
		Order:      s.buildOrder(q),
		Limit:      limit,
		Offset:     offset,
		Structural: structural,
	}

	page := &domain.ResultPage{
		Nodes:  []domain.LedgerEntry{},
		Limit:  limit,
		Offset: offset,
	}

	if limit == 0 {
		// Count-only: skip the row fetch entirely.
		total, err := s.ledger.CountEntries(ctx, compiled.Where, compiled.Joins)
		if err != nil {
			return nil, err
		}
		page.TotalCount = total
	} else {
		nodes, total, err := s.ledger.ListEntries(ctx, compiled)
		if err != nil {
			return nil, err
		}
		page.Nodes = nodes
		page.TotalCount = total
	}

	page.Kinds = s.kindsFacet(structural)
	page.PaymentMethodTypes = s.paymentMethodTypesFacet(structural)
	return page, nil
}

// GetTransaction fetches a single ledger entry by id.
func (s *transactionQueryService) GetTransaction(ctx context.Context, id int64) (*domain.LedgerEntry, error) {
	return s.ledger.FindEntryByID(ctx, id)
}

// kindsFacet defers the distinct-kind query until (and unless) the caller
// invokes it; the result is memoized for the lifetime of the page.
func (s *transactionQueryService) kindsFacet(snapshot query.Snapshot) domain.KindsFacet {
	var (
		once  sync.Once
		kinds []domain.EntryKind
		err   error
	)
	return func(ctx context.Context) ([]domain.EntryKind, error) {
		once.Do(func() {
			kinds, err = s.ledger.DistinctKinds(ctx, snapshot)
		})
		return kinds, err
	}
}

func (s *transactionQueryService) paymentMethodTypesFacet(snapshot query.Snapshot) domain.PaymentMethodTypesFacet {
	var (
		once  sync.Once
		types []*domain.PaymentMethodType
		err   error
	)
	return func(ctx context.Context) ([]*domain.PaymentMethodType, error) {
		once.Do(func() {
			types, err = s.ledger.DistinctPaymentMethodTypes(ctx, snapshot)
		})
		return types, err
	}
}
