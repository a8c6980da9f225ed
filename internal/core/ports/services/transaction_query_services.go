package services

import (
	"context"

	"github.com/commonsfund/ledger_backend/internal/core/domain"
)

// TransactionQuerySvc is the ledger query engine facade.
type TransactionQuerySvc interface {
	// QueryTransactions runs the full pipeline: pagination normalization,
	// access scoping, filter compilation, ordered page fetch and lazy facet
	// wiring. The actor may be nil for anonymous requests.
	QueryTransactions(ctx context.Context, actor *domain.Actor, q domain.TransactionQuery) (*domain.ResultPage, error)

	// GetTransaction fetches a single ledger entry by id.
	GetTransaction(ctx context.Context, id int64) (*domain.LedgerEntry, error)
}
