package pgsql

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/commonsfund/ledger_backend/internal/core/domain"
	"github.com/commonsfund/ledger_backend/internal/core/query"
)

// columnFor maps neutral fields onto SQL expressions over the aliased tables:
// t = ledger_entries, e = expenses, pm = payment_methods,
// oa/ca = owner/counterparty accounts.
func columnFor(f query.Field) string {
	switch f {
	case query.FieldID:
		return "t.id"
	case query.FieldGroupID:
		return "t.group_id"
	case query.FieldType:
		return "t.type"
	case query.FieldKind:
		return "t.kind"
	case query.FieldOwnerAccountID:
		return "t.owner_account_id"
	case query.FieldCounterpartyAccountID:
		return "t.counterparty_account_id"
	case query.FieldHostAccountID:
		return "t.host_account_id"
	case query.FieldAmount:
		return "t.amount"
	case query.FieldAbsAmount:
		return "abs(t.amount)"
	case query.FieldCurrency:
		return "t.currency"
	case query.FieldIsDebt:
		return "t.is_debt"
	case query.FieldPaymentMethodID:
		return "t.payment_method_id"
	case query.FieldLinkedExpenseID:
		return "t.linked_expense_id"
	case query.FieldLinkedOrderID:
		return "t.linked_order_id"
	case query.FieldGiftCardIssuerAccountID:
		return "t.gift_card_issuer_account_id"
	case query.FieldDescription:
		return "t.description"
	case query.FieldCreatedAt:
		return "t.created_at"
	case query.FieldPaymentMethodType:
		return "pm.type"
	case query.FieldExpenseType:
		return "e.type"
	case query.FieldExpenseVirtualCardID:
		return "e.virtual_card_id"
	case query.FieldOwnerSlug:
		return "oa.slug"
	case query.FieldCounterpartySlug:
		return "ca.slug"
	}
	// Unknown fields would be a programming error in the compiler layer.
	return "NULL"
}

// sqlBuilder accumulates bind arguments while rendering a predicate tree.
type sqlBuilder struct {
	args []any
}

func (b *sqlBuilder) bind(v any) string {
	b.args = append(b.args, v)
	return "$" + strconv.Itoa(len(b.args))
}

// predicate renders one predicate node to SQL.
func (b *sqlBuilder) predicate(p query.Predicate) string {
	switch pred := p.(type) {
	case query.Compare:
		return columnFor(pred.Field) + " " + string(pred.Op) + " " + b.bind(pred.Value)
	case query.In:
		if len(pred.Values) == 0 {
			return "FALSE"
		}
		return columnFor(pred.Field) + " IN (" + b.bindList(pred.Values) + ")"
	case query.NotIn:
		if len(pred.Values) == 0 {
			return "TRUE"
		}
		return columnFor(pred.Field) + " NOT IN (" + b.bindList(pred.Values) + ")"
	case query.Null:
		if pred.Not {
			return columnFor(pred.Field) + " IS NOT NULL"
		}
		return columnFor(pred.Field) + " IS NULL"
	case query.Contains:
		return columnFor(pred.Field) + " ILIKE " + b.bind("%"+escapeLike(pred.Term)+"%")
	case query.Or:
		return b.junction([]query.Predicate(pred), " OR ")
	case query.And:
		return b.junction([]query.Predicate(pred), " AND ")
	}
	return "FALSE"
}

func (b *sqlBuilder) junction(preds []query.Predicate, sep string) string {
	if len(preds) == 0 {
		return "TRUE"
	}
	parts := make([]string, len(preds))
	for i, p := range preds {
		parts[i] = b.predicate(p)
	}
	return "(" + strings.Join(parts, sep) + ")"
}

func (b *sqlBuilder) bindList(values []any) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = b.bind(v)
	}
	return strings.Join(parts, ", ")
}

// whereClause renders the conjunctive predicate list, or an empty string when
// there is nothing to filter on.
func (b *sqlBuilder) whereClause(preds []query.Predicate) string {
	if len(preds) == 0 {
		return ""
	}
	parts := make([]string, len(preds))
	for i, p := range preds {
		parts[i] = b.predicate(p)
	}
	return " WHERE " + strings.Join(parts, " AND ")
}

func escapeLike(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(term)
}

// joinClauses renders the join set. forcePaymentMethod adds the payment
// method relation even when no filter asked for it, because the select list
// reads pm.type.
func joinClauses(joins []query.Join, forcePaymentMethod bool) string {
	var sb strings.Builder
	havePM := false
	for _, j := range joins {
		kind := "LEFT JOIN"
		if j.Required {
			kind = "JOIN"
		}
		switch j.Relation {
		case query.RelationExpense:
			sb.WriteString(" " + kind + " expenses e ON e.id = t.linked_expense_id")
		case query.RelationPaymentMethod:
			sb.WriteString(" " + kind + " payment_methods pm ON pm.id = t.payment_method_id")
			havePM = true
		case query.RelationOwnerAccount:
			sb.WriteString(" " + kind + " accounts oa ON oa.id = t.owner_account_id")
		case query.RelationCounterpartyAccount:
			sb.WriteString(" " + kind + " accounts ca ON ca.id = t.counterparty_account_id")
		}
	}
	if forcePaymentMethod && !havePM {
		sb.WriteString(" LEFT JOIN payment_methods pm ON pm.id = t.payment_method_id")
	}
	return sb.String()
}

// orderByClause renders the four-key grouping sort. The bucket width is a
// trusted configuration value, never user input, so it is interpolated
// directly. Postgres round() on positive epochs matches the comparator's
// round-half-up bucketing.
func orderByClause(o query.Order) string {
	dir := "ASC"
	if o.Direction == query.Desc {
		dir = "DESC"
	}
	window := o.GroupWindow
	if window <= 0 {
		window = query.DefaultGroupWindow
	}
	seconds := int64(window / time.Second)

	bucket := fmt.Sprintf("round(extract(epoch from t.created_at) / %d)", seconds)

	var kindRank strings.Builder
	kindRank.WriteString("CASE t.kind")
	for _, kind := range domain.EntryKinds {
		fmt.Fprintf(&kindRank, " WHEN '%s' THEN %d", kind, query.KindRank(kind))
	}
	kindRank.WriteString(" ELSE 9 END")

	typeRank := "CASE t.type WHEN 'DEBIT' THEN 1 ELSE 2 END"

	return " ORDER BY " + bucket + " " + dir +
		", t.group_id " + dir +
		", " + kindRank.String() + " " + dir +
		", " + typeRank + " " + dir
}
