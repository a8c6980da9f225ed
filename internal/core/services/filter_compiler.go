package services

import (
	"github.com/commonsfund/ledger_backend/internal/core/domain"
	"github.com/commonsfund/ledger_backend/internal/core/query"
)

// resolvedQuery is a TransactionQuery whose entity references have already
// been resolved to internal ids, so every clause builder below can stay pure.
type resolvedQuery struct {
	domain.TransactionQuery
	ExpenseID *int64
	OrderID   *int64
}

// clauseFunc is one independent filter rule: it inspects the request and
// contributes zero or more predicate clauses plus the joins they need.
// An absent filter contributes nothing at all, never a wildcard clause.
type clauseFunc func(q resolvedQuery) ([]query.Predicate, []query.Join)

// clauseFuncs is the ordered set of filter rules; their outputs are combined
// conjunctively.
var clauseFuncs = []clauseFunc{
	typeClause,
	groupClause,
	amountClause,
	dateClause,
	expenseRefClause,
	hasExpenseClause,
	expenseTypeClause,
	orderRefClause,
	hasOrderClause,
	debtClause,
	kindClause,
	paymentMethodClause,
	virtualCardClause,
}

// compileFilters runs every clause rule over the resolved request and merges
// the results into one conjunctive predicate list plus a deduplicated join set.
func compileFilters(q resolvedQuery, where []query.Predicate, joins []query.Join) ([]query.Predicate, []query.Join) {
	for _, rule := range clauseFuncs {
		preds, ruleJoins := rule(q)
		where = append(where, preds...)
		for _, j := range ruleJoins {
			joins = query.MergeJoin(joins, j)
		}
	}
	return where, joins
}

func typeClause(q resolvedQuery) ([]query.Predicate, []query.Join) {
	if q.Type == nil {
		return nil, nil
	}
	return []query.Predicate{
		query.Compare{Field: query.FieldType, Op: query.OpEq, Value: string(*q.Type)},
	}, nil
}

func groupClause(q resolvedQuery) ([]query.Predicate, []query.Join) {
	if q.Group == "" {
		return nil, nil
	}
	return []query.Predicate{
		query.Compare{Field: query.FieldGroupID, Op: query.OpEq, Value: q.Group},
	}, nil
}

// amountClause filters on the magnitude of the amount, so a debit of -500
// and its credit twin both match minAmount=500.
func amountClause(q resolvedQuery) ([]query.Predicate, []query.Join) {
	var preds []query.Predicate
	if q.MinAmount != nil {
		preds = append(preds, query.Compare{Field: query.FieldAbsAmount, Op: query.OpGte, Value: *q.MinAmount})
	}
	if q.MaxAmount != nil {
		preds = append(preds, query.Compare{Field: query.FieldAbsAmount, Op: query.OpLte, Value: *q.MaxAmount})
	}
	return preds, nil
}

func dateClause(q resolvedQuery) ([]query.Predicate, []query.Join) {
	var preds []query.Predicate
	if q.DateFrom != nil {
		preds = append(preds, query.Compare{Field: query.FieldCreatedAt, Op: query.OpGte, Value: *q.DateFrom})
	}
	if q.DateTo != nil {
		preds = append(preds, query.Compare{Field: query.FieldCreatedAt, Op: query.OpLte, Value: *q.DateTo})
	}
	return preds, nil
}

func expenseRefClause(q resolvedQuery) ([]query.Predicate, []query.Join) {
	if q.ExpenseID == nil {
		return nil, nil
	}
	return []query.Predicate{
		query.Compare{Field: query.FieldLinkedExpenseID, Op: query.OpEq, Value: *q.ExpenseID},
	}, nil
}

// hasExpenseClause is tri-state: only an explicitly set flag produces a
// null-vs-non-null predicate.
func hasExpenseClause(q resolvedQuery) ([]query.Predicate, []query.Join) {
	if q.HasExpense == nil {
		return nil, nil
	}
	return []query.Predicate{
		query.Null{Field: query.FieldLinkedExpenseID, Not: *q.HasExpense},
	}, nil
}

func expenseTypeClause(q resolvedQuery) ([]query.Predicate, []query.Join) {
	if len(q.ExpenseTypes) == 0 {
		return nil, nil
	}
	return []query.Predicate{
			query.In{Field: query.FieldExpenseType, Values: query.StringValues(q.ExpenseTypes)},
		}, []query.Join{
			// Required join: entries without a linked expense cannot match.
			{Relation: query.RelationExpense, Required: true},
		}
}

func orderRefClause(q resolvedQuery) ([]query.Predicate, []query.Join) {
	if q.OrderID == nil {
		return nil, nil
	}
	return []query.Predicate{
		query.Compare{Field: query.FieldLinkedOrderID, Op: query.OpEq, Value: *q.OrderID},
	}, nil
}

func hasOrderClause(q resolvedQuery) ([]query.Predicate, []query.Join) {
	if q.HasOrder == nil {
		return nil, nil
	}
	return []query.Predicate{
		query.Null{Field: query.FieldLinkedOrderID, Not: *q.HasOrder},
	}, nil
}

// debtClause excludes debt-flagged entries unless the caller opted in.
func debtClause(q resolvedQuery) ([]query.Predicate, []query.Join) {
	if q.IncludeDebts {
		return nil, nil
	}
	return []query.Predicate{
		query.Compare{Field: query.FieldIsDebt, Op: query.OpEq, Value: false},
	}, nil
}

func kindClause(q resolvedQuery) ([]query.Predicate, []query.Join) {
	if len(q.Kinds) == 0 {
		return nil, nil
	}
	return []query.Predicate{
		query.In{Field: query.FieldKind, Values: query.StringValues(q.Kinds)},
	}, nil
}

// paymentMethodClause matches each requested type against the joined payment
// method relation; the nil sentinel matches entries with no payment method at
// all, which is why the join must stay optional.
func paymentMethodClause(q resolvedQuery) ([]query.Predicate, []query.Join) {
	if len(q.PaymentMethodTypes) == 0 {
		return nil, nil
	}
	var alternatives query.Or
	for _, pmType := range q.PaymentMethodTypes {
		if pmType == nil {
			alternatives = append(alternatives, query.Null{Field: query.FieldPaymentMethodID})
			continue
		}
		alternatives = append(alternatives, query.Compare{
			Field: query.FieldPaymentMethodType,
			Op:    query.OpEq,
			Value: string(*pmType),
		})
	}
	return []query.Predicate{alternatives}, []query.Join{
		{Relation: query.RelationPaymentMethod, Required: false},
	}
}

func virtualCardClause(q resolvedQuery) ([]query.Predicate, []query.Join) {
	if len(q.VirtualCards) == 0 {
		return nil, nil
	}
	return []query.Predicate{
			query.In{Field: query.FieldExpenseVirtualCardID, Values: query.StringValues(q.VirtualCards)},
		}, []query.Join{
			{Relation: query.RelationExpense, Required: true},
		}
}
