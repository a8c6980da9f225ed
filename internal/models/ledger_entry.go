package models

import "time"

// LedgerEntry mirrors one row of the ledger_entries table, with the payment
// method type pulled in from the joined payment_methods row.
type LedgerEntry struct {
	ID                      int64
	GroupID                 string
	Type                    string
	Kind                    string
	OwnerAccountID          int64
	CounterpartyAccountID   int64
	HostAccountID           *int64
	Amount                  int64
	Currency                string
	IsDebt                  bool
	PaymentMethodID         *int64
	PaymentMethodType       *string
	LinkedExpenseID         *int64
	LinkedOrderID           *int64
	GiftCardIssuerAccountID *int64
	Description             string
	CreatedAt               time.Time
}
