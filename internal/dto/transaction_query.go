package dto

import (
	"time"

	"github.com/commonsfund/ledger_backend/internal/core/domain"
)

// AccountRefDTO references an account by internal id or slug.
type AccountRefDTO struct {
	ID   int64  `json:"id" binding:"omitempty,gt=0"`
	Slug string `json:"slug" binding:"omitempty,max=255"`
}

// OrderByDTO selects sort field and direction.
type OrderByDTO struct {
	Field     string `json:"field" binding:"omitempty,oneof=CREATED_AT"`
	Direction string `json:"direction" binding:"omitempty,oneof=ASC DESC"`
}

// QueryTransactionsRequest is the JSON body of POST /transactions/query.
// Everything is optional; defaults mirror the engine's documented defaults.
type QueryTransactionsRequest struct {
	Limit  *int `json:"limit"`
	Offset *int `json:"offset"`

	Type               *string   `json:"type" binding:"omitempty,oneof=DEBIT CREDIT"`
	Kinds              []string  `json:"kind" binding:"omitempty,dive,min=1"`
	Group              string    `json:"group"`
	MinAmount          *int64    `json:"minAmount"`
	MaxAmount          *int64    `json:"maxAmount"`
	DateFrom           *time.Time `json:"dateFrom"`
	DateTo             *time.Time `json:"dateTo"`
	SearchTerm         string    `json:"searchTerm" binding:"omitempty,max=255"`
	PaymentMethodTypes []*string `json:"paymentMethodType"`

	FromAccount *AccountRefDTO  `json:"fromAccount"`
	Accounts    []AccountRefDTO `json:"account"`
	Host        *AccountRefDTO  `json:"host"`

	HasExpense   *bool    `json:"hasExpense"`
	Expense      *int64   `json:"expense" binding:"omitempty,gt=0"`
	ExpenseTypes []string `json:"expenseType" binding:"omitempty,dive,oneof=INVOICE RECEIPT GRANT CHARGE SETTLEMENT FUNDING_REQUEST UNCLASSIFIED"`
	HasOrder     *bool    `json:"hasOrder"`
	Order        *int64   `json:"order" binding:"omitempty,gt=0"`
	VirtualCards []string `json:"virtualCard"`

	IncludeHost      *bool `json:"includeHost"`
	IncludeRegular   *bool `json:"includeRegularTransactions"`
	IncludeIncognito *bool `json:"includeIncognitoTransactions"`
	IncludeChildren  *bool `json:"includeChildrenTransactions"`
	IncludeGiftCards *bool `json:"includeGiftCardTransactions"`
	IncludeDebts     *bool `json:"includeDebts"`

	OrderBy *OrderByDTO `json:"orderBy"`

	// Facet selection: facets are only computed when asked for.
	WithKinds              bool `json:"withKinds"`
	WithPaymentMethodTypes bool `json:"withPaymentMethodTypes"`
}

// ToDomain maps the request onto the engine's query type, applying the
// documented defaults for absent flags.
func (r QueryTransactionsRequest) ToDomain() domain.TransactionQuery {
	q := domain.DefaultTransactionQuery()
	q.Limit = r.Limit
	q.Offset = r.Offset
	q.Group = r.Group
	q.MinAmount = r.MinAmount
	q.MaxAmount = r.MaxAmount
	q.DateFrom = r.DateFrom
	q.DateTo = r.DateTo
	q.SearchTerm = r.SearchTerm
	q.HasExpense = r.HasExpense
	q.Expense = r.Expense
	q.HasOrder = r.HasOrder
	q.Order = r.Order
	q.VirtualCards = r.VirtualCards

	if r.Type != nil {
		entryType := domain.EntryType(*r.Type)
		q.Type = &entryType
	}
	for _, kind := range r.Kinds {
		q.Kinds = append(q.Kinds, domain.EntryKind(kind))
	}
	for _, pmType := range r.PaymentMethodTypes {
		if pmType == nil {
			q.PaymentMethodTypes = append(q.PaymentMethodTypes, nil)
			continue
		}
		t := domain.PaymentMethodType(*pmType)
		q.PaymentMethodTypes = append(q.PaymentMethodTypes, &t)
	}
	for _, expenseType := range r.ExpenseTypes {
		q.ExpenseTypes = append(q.ExpenseTypes, domain.ExpenseType(expenseType))
	}

	if r.FromAccount != nil {
		ref := toAccountRef(*r.FromAccount)
		q.FromAccount = &ref
	}
	for _, a := range r.Accounts {
		q.Accounts = append(q.Accounts, toAccountRef(a))
	}
	if r.Host != nil {
		ref := toAccountRef(*r.Host)
		q.Host = &ref
	}

	if r.IncludeHost != nil {
		q.IncludeHost = *r.IncludeHost
	}
	if r.IncludeRegular != nil {
		q.IncludeRegular = *r.IncludeRegular
	}
	if r.IncludeIncognito != nil {
		q.IncludeIncognito = *r.IncludeIncognito
	}
	if r.IncludeChildren != nil {
		q.IncludeChildren = *r.IncludeChildren
	}
	if r.IncludeGiftCards != nil {
		q.IncludeGiftCards = *r.IncludeGiftCards
	}
	if r.IncludeDebts != nil {
		q.IncludeDebts = *r.IncludeDebts
	}

	if r.OrderBy != nil {
		if r.OrderBy.Field != "" {
			q.OrderBy.Field = domain.SortField(r.OrderBy.Field)
		}
		if r.OrderBy.Direction != "" {
			q.OrderBy.Direction = domain.SortDirection(r.OrderBy.Direction)
		}
	}

	return q
}

func toAccountRef(d AccountRefDTO) domain.AccountRef {
	return domain.AccountRef{ID: d.ID, Slug: d.Slug}
}
