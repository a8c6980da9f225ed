package dto

import (
	"time"

	"github.com/commonsfund/ledger_backend/internal/core/domain"
	"github.com/commonsfund/ledger_backend/internal/utils"
)

// LedgerEntryResponse is the wire form of one ledger entry.
type LedgerEntryResponse struct {
	ID                      int64      `json:"id"`
	GroupID                 string     `json:"groupID"`
	Type                    string     `json:"type"`
	Kind                    string     `json:"kind"`
	OwnerAccountID          int64      `json:"ownerAccountID"`
	CounterpartyAccountID   int64      `json:"counterpartyAccountID"`
	HostAccountID           *int64     `json:"hostAccountID,omitempty"`
	Amount                  int64      `json:"amount"`
	AmountDisplay           string     `json:"amountDisplay"`
	Currency                string     `json:"currency"`
	IsDebt                  bool       `json:"isDebt"`
	PaymentMethodType       *string    `json:"paymentMethodType"`
	LinkedExpenseID         *int64     `json:"linkedExpenseID,omitempty"`
	LinkedOrderID           *int64     `json:"linkedOrderID,omitempty"`
	GiftCardIssuerAccountID *int64     `json:"giftCardIssuerAccountID,omitempty"`
	Description             string     `json:"description"`
	CreatedAt               time.Time  `json:"createdAt"`
}

// QueryTransactionsResponse is one page plus total count and any requested
// facets. Facet fields are omitted entirely when not requested.
type QueryTransactionsResponse struct {
	Nodes              []LedgerEntryResponse `json:"nodes"`
	TotalCount         int64                 `json:"totalCount"`
	Limit              int                   `json:"limit"`
	Offset             int                   `json:"offset"`
	Kinds              []string              `json:"kinds,omitempty"`
	PaymentMethodTypes []*string             `json:"paymentMethodTypes,omitempty"`
}

// ToLedgerEntryResponse maps a domain entry to its wire form.
func ToLedgerEntryResponse(e domain.LedgerEntry) LedgerEntryResponse {
	resp := LedgerEntryResponse{
		ID:                      e.ID,
		GroupID:                 e.GroupID,
		Type:                    string(e.Type),
		Kind:                    string(e.Kind),
		OwnerAccountID:          e.OwnerAccountID,
		CounterpartyAccountID:   e.CounterpartyAccountID,
		HostAccountID:           e.HostAccountID,
		Amount:                  e.Amount,
		AmountDisplay:           utils.FormatMinorUnits(e.Amount, e.Currency),
		Currency:                e.Currency,
		IsDebt:                  e.IsDebt,
		LinkedExpenseID:         e.LinkedExpenseID,
		LinkedOrderID:           e.LinkedOrderID,
		GiftCardIssuerAccountID: e.GiftCardIssuerAccountID,
		Description:             e.Description,
		CreatedAt:               e.CreatedAt,
	}
	if e.PaymentMethodType != nil {
		pmType := string(*e.PaymentMethodType)
		resp.PaymentMethodType = &pmType
	}
	return resp
}

// ToQueryTransactionsResponse maps a result page; facet slices may be nil.
func ToQueryTransactionsResponse(page *domain.ResultPage, kinds []domain.EntryKind, pmTypes []*domain.PaymentMethodType) QueryTransactionsResponse {
	resp := QueryTransactionsResponse{
		Nodes:      make([]LedgerEntryResponse, len(page.Nodes)),
		TotalCount: page.TotalCount,
		Limit:      page.Limit,
		Offset:     page.Offset,
	}
	for i, e := range page.Nodes {
		resp.Nodes[i] = ToLedgerEntryResponse(e)
	}
	for _, kind := range kinds {
		resp.Kinds = append(resp.Kinds, string(kind))
	}
	for _, pmType := range pmTypes {
		if pmType == nil {
			resp.PaymentMethodTypes = append(resp.PaymentMethodTypes, nil)
			continue
		}
		t := string(*pmType)
		resp.PaymentMethodTypes = append(resp.PaymentMethodTypes, &t)
	}
	return resp
}
