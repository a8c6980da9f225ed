package services

import (
	"testing"
	"time"

	"github.com/commonsfund/ledger_backend/internal/core/domain"
	"github.com/commonsfund/ledger_backend/internal/core/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolved(q domain.TransactionQuery) resolvedQuery {
	return resolvedQuery{TransactionQuery: q}
}

func TestCompileFiltersEmptyRequest(t *testing.T) {
	q := domain.DefaultTransactionQuery()
	q.IncludeDebts = true

	where, joins := compileFilters(resolved(q), nil, nil)
	assert.Empty(t, where)
	assert.Empty(t, joins)
}

func TestCompileFiltersDebtExclusionIsDefault(t *testing.T) {
	where, joins := compileFilters(resolved(domain.DefaultTransactionQuery()), nil, nil)
	require.Len(t, where, 1)
	assert.Empty(t, joins)
	assert.Equal(t, query.Compare{Field: query.FieldIsDebt, Op: query.OpEq, Value: false}, where[0])
}

func TestAmountClauseUsesMagnitudeBounds(t *testing.T) {
	minAmount := int64(500)
	maxAmount := int64(10_000)
	q := domain.DefaultTransactionQuery()
	q.IncludeDebts = true
	q.MinAmount = &minAmount
	q.MaxAmount = &maxAmount

	where, _ := compileFilters(resolved(q), nil, nil)
	require.Len(t, where, 2)
	assert.Equal(t, query.Compare{Field: query.FieldAbsAmount, Op: query.OpGte, Value: int64(500)}, where[0])
	assert.Equal(t, query.Compare{Field: query.FieldAbsAmount, Op: query.OpLte, Value: int64(10_000)}, where[1])
}

func TestDateClauseBounds(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC)
	q := domain.DefaultTransactionQuery()
	q.IncludeDebts = true
	q.DateFrom = &from
	q.DateTo = &to

	where, _ := compileFilters(resolved(q), nil, nil)
	require.Len(t, where, 2)
	assert.Equal(t, query.Compare{Field: query.FieldCreatedAt, Op: query.OpGte, Value: from}, where[0])
	assert.Equal(t, query.Compare{Field: query.FieldCreatedAt, Op: query.OpLte, Value: to}, where[1])
}

func TestHasExpenseClauseIsTriState(t *testing.T) {
	tests := []struct {
		name       string
		hasExpense *bool
		want       []query.Predicate
	}{
		{name: "unset means no clause", hasExpense: nil, want: nil},
		{name: "true requires a linked expense", hasExpense: boolPtr(true), want: []query.Predicate{query.Null{Field: query.FieldLinkedExpenseID, Not: true}}},
		{name: "false requires no linked expense", hasExpense: boolPtr(false), want: []query.Predicate{query.Null{Field: query.FieldLinkedExpenseID, Not: false}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := domain.DefaultTransactionQuery()
			q.HasExpense = tt.hasExpense
			preds, joins := hasExpenseClause(resolved(q))
			assert.Equal(t, tt.want, preds)
			assert.Empty(t, joins)
		})
	}
}

func TestPaymentMethodClauseNilSentinel(t *testing.T) {
	card := domain.PaymentMethodCreditCard
	q := domain.DefaultTransactionQuery()
	q.PaymentMethodTypes = []*domain.PaymentMethodType{&card, nil}

	preds, joins := paymentMethodClause(resolved(q))
	require.Len(t, preds, 1)
	or, ok := preds[0].(query.Or)
	require.True(t, ok)
	require.Len(t, or, 2)
	assert.Equal(t, query.Compare{Field: query.FieldPaymentMethodType, Op: query.OpEq, Value: "CREDIT_CARD"}, or[0])
	assert.Equal(t, query.Null{Field: query.FieldPaymentMethodID}, or[1])

	// The join must stay optional so the nil alternative can still match.
	require.Len(t, joins, 1)
	assert.Equal(t, query.Join{Relation: query.RelationPaymentMethod, Required: false}, joins[0])
}

func TestExpenseTypeClauseForcesExpenseJoin(t *testing.T) {
	q := domain.DefaultTransactionQuery()
	q.ExpenseTypes = []domain.ExpenseType{domain.ExpenseReceipt, domain.ExpenseInvoice}

	preds, joins := expenseTypeClause(resolved(q))
	require.Len(t, preds, 1)
	assert.Equal(t, query.In{Field: query.FieldExpenseType, Values: []any{"RECEIPT", "INVOICE"}}, preds[0])
	require.Len(t, joins, 1)
	assert.True(t, joins[0].Required)
}

func TestVirtualCardClauseForcesExpenseJoin(t *testing.T) {
	q := domain.DefaultTransactionQuery()
	q.VirtualCards = []string{"vc_123"}

	preds, joins := virtualCardClause(resolved(q))
	require.Len(t, preds, 1)
	assert.Equal(t, query.In{Field: query.FieldExpenseVirtualCardID, Values: []any{"vc_123"}}, preds[0])
	require.Len(t, joins, 1)
	assert.Equal(t, query.Join{Relation: query.RelationExpense, Required: true}, joins[0])
}

func TestCompileFiltersMergesDuplicateJoins(t *testing.T) {
	q := domain.DefaultTransactionQuery()
	q.IncludeDebts = true
	q.ExpenseTypes = []domain.ExpenseType{domain.ExpenseReceipt}
	q.VirtualCards = []string{"vc_123"}

	_, joins := compileFilters(resolved(q), nil, nil)
	require.Len(t, joins, 1)
	assert.Equal(t, query.Join{Relation: query.RelationExpense, Required: true}, joins[0])
}

func boolPtr(v bool) *bool { return &v }
