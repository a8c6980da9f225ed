package mapping

import (
	"github.com/commonsfund/ledger_backend/internal/core/domain"
	"github.com/commonsfund/ledger_backend/internal/models"
)

// ToDomainLedgerEntry converts a database row into the domain entry.
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	entry := domain.LedgerEntry{
		ID:                      m.ID,
		GroupID:                 m.GroupID,
		Type:                    domain.EntryType(m.Type),
		Kind:                    domain.EntryKind(m.Kind),
		OwnerAccountID:          m.OwnerAccountID,
		CounterpartyAccountID:   m.CounterpartyAccountID,
		HostAccountID:           m.HostAccountID,
		Amount:                  m.Amount,
		Currency:                m.Currency,
		IsDebt:                  m.IsDebt,
		PaymentMethodID:         m.PaymentMethodID,
		LinkedExpenseID:         m.LinkedExpenseID,
		LinkedOrderID:           m.LinkedOrderID,
		GiftCardIssuerAccountID: m.GiftCardIssuerAccountID,
		Description:             m.Description,
		CreatedAt:               m.CreatedAt,
	}
	if m.PaymentMethodType != nil {
		pmType := domain.PaymentMethodType(*m.PaymentMethodType)
		entry.PaymentMethodType = &pmType
	}
	return entry
}

// ToDomainLedgerEntrySlice converts a slice of rows.
func ToDomainLedgerEntrySlice(ms []models.LedgerEntry) []domain.LedgerEntry {
	entries := make([]domain.LedgerEntry, len(ms))
	for i, m := range ms {
		entries[i] = ToDomainLedgerEntry(m)
	}
	return entries
}

// ToDomainAccount converts an account row into the domain account.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		ID:          m.ID,
		Slug:        m.Slug,
		Name:        m.Name,
		Type:        domain.AccountType(m.Type),
		ParentID:    m.ParentID,
		HostID:      m.HostID,
		IsIncognito: m.IsIncognito,
	}
}
