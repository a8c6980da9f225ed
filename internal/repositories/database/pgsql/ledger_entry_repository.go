package pgsql

import (
	"context"
	"errors"
	"strconv"

	"github.com/commonsfund/ledger_backend/internal/apperrors"
	"github.com/commonsfund/ledger_backend/internal/core/domain"
	portsrepo "github.com/commonsfund/ledger_backend/internal/core/ports/repositories"
	"github.com/commonsfund/ledger_backend/internal/core/query"
	"github.com/commonsfund/ledger_backend/internal/models"
	"github.com/commonsfund/ledger_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const entryColumns = `t.id, t.group_id, t.type, t.kind, t.owner_account_id, t.counterparty_account_id,
	       t.host_account_id, t.amount, t.currency, t.is_debt, t.payment_method_id, pm.type,
	       t.linked_expense_id, t.linked_order_id, t.gift_card_issuer_account_id, t.description, t.created_at`

// PgxLedgerEntryRepository executes compiled ledger queries against Postgres.
type PgxLedgerEntryRepository struct {
	BaseRepository
}

// NewLedgerEntryRepository creates a read-only repository over ledger_entries.
func NewLedgerEntryRepository(pool *pgxpool.Pool) portsrepo.LedgerEntryReader {
	return &PgxLedgerEntryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerEntryReader = (*PgxLedgerEntryRepository)(nil)

// ListEntries fetches one ordered page plus the total count in a single
// statement via a window count. When the page lands past the last row the
// window count is unavailable, so it falls back to the count-only statement.
func (r *PgxLedgerEntryRepository) ListEntries(ctx context.Context, q query.Compiled) ([]domain.LedgerEntry, int64, error) {
	b := &sqlBuilder{}
	sql := "SELECT " + entryColumns + ", COUNT(*) OVER() AS total_count" +
		" FROM ledger_entries t" +
		joinClauses(q.Joins, true) +
		b.whereClause(q.Where) +
		orderByClause(q.Order) +
		" LIMIT " + b.bind(q.Limit) +
		" OFFSET " + b.bind(q.Offset)

	rows, err := r.Pool.Query(ctx, sql, b.args...)
	if err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to query ledger entries", err)
	}
	defer rows.Close()

	var total int64
	entries := []models.LedgerEntry{}
	for rows.Next() {
		var m models.LedgerEntry
		if err := scanEntry(rows, &m, &total); err != nil {
			return nil, 0, apperrors.NewAppError(500, "failed to scan ledger entry row", err)
		}
		entries = append(entries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.NewAppError(500, "error iterating ledger entry rows", err)
	}

	if len(entries) == 0 {
		// Offset past the end of the set; the total still matters.
		total, err = r.CountEntries(ctx, q.Where, q.Joins)
		if err != nil {
			return nil, 0, err
		}
	}

	return mapping.ToDomainLedgerEntrySlice(entries), total, nil
}

// CountEntries runs the count-only statement for the given filter set.
func (r *PgxLedgerEntryRepository) CountEntries(ctx context.Context, where []query.Predicate, joins []query.Join) (int64, error) {
	b := &sqlBuilder{}
	sql := "SELECT COUNT(*) FROM ledger_entries t" +
		joinClauses(joins, false) +
		b.whereClause(where)

	var total int64
	if err := r.Pool.QueryRow(ctx, sql, b.args...).Scan(&total); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count ledger entries", err)
	}
	return total, nil
}

// DistinctKinds lists the distinct non-null kinds under the structural
// filter snapshot.
func (r *PgxLedgerEntryRepository) DistinctKinds(ctx context.Context, s query.Snapshot) ([]domain.EntryKind, error) {
	b := &sqlBuilder{}
	where := b.whereClause(s.Where)
	kindNotNull := " t.kind IS NOT NULL"
	if where == "" {
		where = " WHERE" + kindNotNull
	} else {
		where += " AND" + kindNotNull
	}
	sql := "SELECT DISTINCT t.kind FROM ledger_entries t" +
		joinClauses(s.Joins, false) +
		where +
		" ORDER BY t.kind"

	rows, err := r.Pool.Query(ctx, sql, b.args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query distinct kinds", err)
	}
	defer rows.Close()

	kinds := []domain.EntryKind{}
	for rows.Next() {
		var kind string
		if err := rows.Scan(&kind); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan kind row", err)
		}
		kinds = append(kinds, domain.EntryKind(kind))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating kind rows", err)
	}
	return kinds, nil
}

// DistinctPaymentMethodTypes lists the distinct payment method types under
// the structural filter snapshot, including the null sentinel for entries
// with no payment method.
func (r *PgxLedgerEntryRepository) DistinctPaymentMethodTypes(ctx context.Context, s query.Snapshot) ([]*domain.PaymentMethodType, error) {
	b := &sqlBuilder{}
	sql := "SELECT DISTINCT pm.type FROM ledger_entries t" +
		joinClauses(s.Joins, true) +
		b.whereClause(s.Where) +
		" ORDER BY pm.type NULLS FIRST"

	rows, err := r.Pool.Query(ctx, sql, b.args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query distinct payment method types", err)
	}
	defer rows.Close()

	types := []*domain.PaymentMethodType{}
	for rows.Next() {
		var raw *string
		if err := rows.Scan(&raw); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan payment method type row", err)
		}
		if raw == nil {
			types = append(types, nil)
			continue
		}
		pmType := domain.PaymentMethodType(*raw)
		types = append(types, &pmType)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating payment method type rows", err)
	}
	return types, nil
}

// FindEntryByID fetches a single ledger entry.
func (r *PgxLedgerEntryRepository) FindEntryByID(ctx context.Context, id int64) (*domain.LedgerEntry, error) {
	sql := "SELECT " + entryColumns +
		" FROM ledger_entries t" +
		" LEFT JOIN payment_methods pm ON pm.id = t.payment_method_id" +
		" WHERE t.id = $1"

	var m models.LedgerEntry
	err := r.Pool.QueryRow(ctx, sql, id).Scan(
		&m.ID,
		&m.GroupID,
		&m.Type,
		&m.Kind,
		&m.OwnerAccountID,
		&m.CounterpartyAccountID,
		&m.HostAccountID,
		&m.Amount,
		&m.Currency,
		&m.IsDebt,
		&m.PaymentMethodID,
		&m.PaymentMethodType,
		&m.LinkedExpenseID,
		&m.LinkedOrderID,
		&m.GiftCardIssuerAccountID,
		&m.Description,
		&m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("ledger entry " + strconv.FormatInt(id, 10) + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find ledger entry "+strconv.FormatInt(id, 10), err)
	}

	entry := mapping.ToDomainLedgerEntry(m)
	return &entry, nil
}

func scanEntry(rows pgx.Rows, m *models.LedgerEntry, total *int64) error {
	return rows.Scan(
		&m.ID,
		&m.GroupID,
		&m.Type,
		&m.Kind,
		&m.OwnerAccountID,
		&m.CounterpartyAccountID,
		&m.HostAccountID,
		&m.Amount,
		&m.Currency,
		&m.IsDebt,
		&m.PaymentMethodID,
		&m.PaymentMethodType,
		&m.LinkedExpenseID,
		&m.LinkedOrderID,
		&m.GiftCardIssuerAccountID,
		&m.Description,
		&m.CreatedAt,
		total,
	)
}
