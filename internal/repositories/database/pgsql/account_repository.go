package pgsql

import (
	"context"
	"errors"
	"strings"

	"github.com/commonsfund/ledger_backend/internal/apperrors"
	"github.com/commonsfund/ledger_backend/internal/core/domain"
	portsrepo "github.com/commonsfund/ledger_backend/internal/core/ports/repositories"
	"github.com/commonsfund/ledger_backend/internal/models"
	"github.com/commonsfund/ledger_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const accountColumns = `id, slug, name, type, parent_id, host_id, is_incognito, linked_account_id`

// PgxAccountRepository resolves account references and relationships.
type PgxAccountRepository struct {
	BaseRepository
}

// NewAccountRepository creates a read-only repository over accounts.
func NewAccountRepository(pool *pgxpool.Pool) portsrepo.AccountReader {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountReader = (*PgxAccountRepository)(nil)

// FindAccountByRef resolves an id-or-slug reference.
func (r *PgxAccountRepository) FindAccountByRef(ctx context.Context, ref domain.AccountRef) (*domain.Account, error) {
	var (
		row pgx.Row
	)
	switch {
	case ref.ID != 0:
		row = r.Pool.QueryRow(ctx, "SELECT "+accountColumns+" FROM accounts WHERE id = $1", ref.ID)
	case ref.Slug != "":
		row = r.Pool.QueryRow(ctx, "SELECT "+accountColumns+" FROM accounts WHERE slug = $1", strings.ToLower(ref.Slug))
	default:
		return nil, apperrors.NewNotFoundError("account reference is empty")
	}

	m, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("account not found")
		}
		return nil, apperrors.NewAppError(500, "failed to resolve account reference", err)
	}

	account := mapping.ToDomainAccount(*m)
	return &account, nil
}

// FindChildAccounts lists the direct children of an account, excluding the
// given types.
func (r *PgxAccountRepository) FindChildAccounts(ctx context.Context, parentID int64, excludeTypes []domain.AccountType) ([]domain.Account, error) {
	sql := "SELECT " + accountColumns + " FROM accounts WHERE parent_id = $1"
	args := []any{parentID}
	if len(excludeTypes) > 0 {
		excluded := make([]string, len(excludeTypes))
		for i, t := range excludeTypes {
			excluded[i] = string(t)
		}
		sql += " AND type <> ALL($2)"
		args = append(args, excluded)
	}

	rows, err := r.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query child accounts", err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		accounts = append(accounts, mapping.ToDomainAccount(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account rows", err)
	}
	return accounts, nil
}

// FindIncognitoAccount returns the incognito proxy linked to an account, or
// nil when there is none.
func (r *PgxAccountRepository) FindIncognitoAccount(ctx context.Context, ownerAccountID int64) (*domain.Account, error) {
	row := r.Pool.QueryRow(ctx,
		"SELECT "+accountColumns+" FROM accounts WHERE is_incognito AND linked_account_id = $1",
		ownerAccountID,
	)
	m, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperrors.NewAppError(500, "failed to find incognito account", err)
	}
	account := mapping.ToDomainAccount(*m)
	return &account, nil
}

func scanAccount(row pgx.Row) (*models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.ID,
		&m.Slug,
		&m.Name,
		&m.Type,
		&m.ParentID,
		&m.HostID,
		&m.IsIncognito,
		&m.LinkedAccountID,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
