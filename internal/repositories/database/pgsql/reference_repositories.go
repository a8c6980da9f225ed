package pgsql

import (
	"context"
	"errors"
	"strconv"

	"github.com/commonsfund/ledger_backend/internal/apperrors"
	portsrepo "github.com/commonsfund/ledger_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxExpenseRepository resolves expense references for the filter compiler.
type PgxExpenseRepository struct {
	BaseRepository
}

// NewExpenseRepository creates a read-only expense reference resolver.
func NewExpenseRepository(pool *pgxpool.Pool) portsrepo.ExpenseResolver {
	return &PgxExpenseRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ExpenseResolver = (*PgxExpenseRepository)(nil)

// ResolveExpenseID checks that the referenced expense exists and returns its
// internal id.
func (r *PgxExpenseRepository) ResolveExpenseID(ctx context.Context, ref int64) (int64, error) {
	var id int64
	err := r.Pool.QueryRow(ctx, "SELECT id FROM expenses WHERE id = $1", ref).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.NewNotFoundError("expense " + strconv.FormatInt(ref, 10) + " not found")
		}
		return 0, apperrors.NewAppError(500, "failed to resolve expense reference", err)
	}
	return id, nil
}

// PgxOrderRepository resolves order references for the filter compiler.
type PgxOrderRepository struct {
	BaseRepository
}

// NewOrderRepository creates a read-only order reference resolver.
func NewOrderRepository(pool *pgxpool.Pool) portsrepo.OrderResolver {
	return &PgxOrderRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.OrderResolver = (*PgxOrderRepository)(nil)

// ResolveOrderID checks that the referenced order exists and returns its
// internal id.
func (r *PgxOrderRepository) ResolveOrderID(ctx context.Context, ref int64) (int64, error) {
	var id int64
	err := r.Pool.QueryRow(ctx, "SELECT id FROM orders WHERE id = $1", ref).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.NewNotFoundError("order " + strconv.FormatInt(ref, 10) + " not found")
		}
		return 0, apperrors.NewAppError(500, "failed to resolve order reference", err)
	}
	return id, nil
}
