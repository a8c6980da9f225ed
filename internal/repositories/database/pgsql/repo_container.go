package pgsql

import (
	portsrepo "github.com/commonsfund/ledger_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories bundles every pgsql-backed repository for wiring in main.
type Repositories struct {
	Ledger   portsrepo.LedgerEntryReader
	Accounts portsrepo.AccountReader
	Expenses portsrepo.ExpenseResolver
	Orders   portsrepo.OrderResolver
}

// NewRepositories constructs the full repository set over one pool.
func NewRepositories(pool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Ledger:   NewLedgerEntryRepository(pool),
		Accounts: NewAccountRepository(pool),
		Expenses: NewExpenseRepository(pool),
		Orders:   NewOrderRepository(pool),
	}
}
