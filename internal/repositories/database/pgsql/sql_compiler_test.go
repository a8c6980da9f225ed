package pgsql

import (
	"testing"
	"time"

	"github.com/commonsfund/ledger_backend/internal/core/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWhereClauseBindsArgsInOrder(t *testing.T) {
	b := &sqlBuilder{}
	sql := b.whereClause([]query.Predicate{
		query.Compare{Field: query.FieldIsDebt, Op: query.OpEq, Value: false},
		query.Compare{Field: query.FieldAbsAmount, Op: query.OpGte, Value: int64(500)},
		query.In{Field: query.FieldKind, Values: []any{"HOST_FEE", "CONTRIBUTION"}},
	})

	assert.Equal(t, " WHERE t.is_debt = $1 AND abs(t.amount) >= $2 AND t.kind IN ($3, $4)", sql)
	assert.Equal(t, []any{false, int64(500), "HOST_FEE", "CONTRIBUTION"}, b.args)
}

func TestWhereClauseEmpty(t *testing.T) {
	b := &sqlBuilder{}
	assert.Equal(t, "", b.whereClause(nil))
	assert.Empty(t, b.args)
}

func TestPredicateEmptySets(t *testing.T) {
	b := &sqlBuilder{}
	assert.Equal(t, "FALSE", b.predicate(query.In{Field: query.FieldKind}))
	assert.Equal(t, "TRUE", b.predicate(query.NotIn{Field: query.FieldKind}))
	assert.Empty(t, b.args, "empty sets render as constants, not binds")
}

func TestPredicateNull(t *testing.T) {
	b := &sqlBuilder{}
	assert.Equal(t, "t.payment_method_id IS NULL", b.predicate(query.Null{Field: query.FieldPaymentMethodID}))
	assert.Equal(t, "t.linked_expense_id IS NOT NULL", b.predicate(query.Null{Field: query.FieldLinkedExpenseID, Not: true}))
}

func TestPredicateContainsEscapesLikeMetacharacters(t *testing.T) {
	b := &sqlBuilder{}
	sql := b.predicate(query.Contains{Field: query.FieldDescription, Term: `50%_off\deal`})
	assert.Equal(t, "t.description ILIKE $1", sql)
	require.Len(t, b.args, 1)
	assert.Equal(t, `%50\%\_off\\deal%`, b.args[0])
}

func TestPredicateNestedOrAnd(t *testing.T) {
	b := &sqlBuilder{}
	sql := b.predicate(query.Or{
		query.And{
			query.In{Field: query.FieldGiftCardIssuerAccountID, Values: []any{int64(7)}},
			query.Compare{Field: query.FieldType, Op: query.OpEq, Value: "DEBIT"},
		},
		query.In{Field: query.FieldOwnerAccountID, Values: []any{int64(7), int64(8)}},
	})

	assert.Equal(t, "((t.gift_card_issuer_account_id IN ($1) AND t.type = $2) OR t.owner_account_id IN ($3, $4))", sql)
	assert.Equal(t, []any{int64(7), "DEBIT", int64(7), int64(8)}, b.args)
}

func TestJoinClauses(t *testing.T) {
	sql := joinClauses([]query.Join{
		{Relation: query.RelationExpense, Required: true},
		{Relation: query.RelationPaymentMethod, Required: false},
		{Relation: query.RelationOwnerAccount, Required: true},
		{Relation: query.RelationCounterpartyAccount, Required: true},
	}, false)

	assert.Equal(t,
		" JOIN expenses e ON e.id = t.linked_expense_id"+
			" LEFT JOIN payment_methods pm ON pm.id = t.payment_method_id"+
			" JOIN accounts oa ON oa.id = t.owner_account_id"+
			" JOIN accounts ca ON ca.id = t.counterparty_account_id",
		sql)
}

func TestJoinClausesForcesPaymentMethodForSelect(t *testing.T) {
	assert.Equal(t, " LEFT JOIN payment_methods pm ON pm.id = t.payment_method_id", joinClauses(nil, true))

	// No duplicate when a filter already joined it.
	sql := joinClauses([]query.Join{{Relation: query.RelationPaymentMethod}}, true)
	assert.Equal(t, " LEFT JOIN payment_methods pm ON pm.id = t.payment_method_id", sql)
}

func TestOrderByClause(t *testing.T) {
	sql := orderByClause(query.Order{Direction: query.Desc, GroupWindow: 10 * time.Second})

	assert.Contains(t, sql, "round(extract(epoch from t.created_at) / 10) DESC")
	assert.Contains(t, sql, "t.group_id DESC")
	assert.Contains(t, sql, "CASE t.kind WHEN 'CONTRIBUTION' THEN 1")
	assert.Contains(t, sql, "WHEN 'HOST_FEE' THEN 6")
	assert.Contains(t, sql, "ELSE 9 END DESC")
	assert.Contains(t, sql, "CASE t.type WHEN 'DEBIT' THEN 1 ELSE 2 END DESC")
}

func TestOrderByClauseDefaultsAscAndWindow(t *testing.T) {
	sql := orderByClause(query.Order{})
	assert.Contains(t, sql, "round(extract(epoch from t.created_at) / 10) ASC")
}

func TestColumnForCoversJoinedFields(t *testing.T) {
	assert.Equal(t, "pm.type", columnFor(query.FieldPaymentMethodType))
	assert.Equal(t, "e.type", columnFor(query.FieldExpenseType))
	assert.Equal(t, "e.virtual_card_id", columnFor(query.FieldExpenseVirtualCardID))
	assert.Equal(t, "oa.slug", columnFor(query.FieldOwnerSlug))
	assert.Equal(t, "ca.slug", columnFor(query.FieldCounterpartySlug))
	assert.Equal(t, "NULL", columnFor(query.Field("bogus")))
}
