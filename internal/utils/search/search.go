// Package search builds the free-text clause extension of a ledger query: one
// OR'd predicate spanning id fields (exact numeric match), the joined account
// slugs, the description text and the entry amount.
package search

import (
	"strconv"
	"strings"

	"github.com/commonsfund/ledger_backend/internal/core/query"
	"github.com/shopspring/decimal"
)

// minorUnitFactor converts a decimal amount term into minor currency units.
// Amount search assumes two-decimal currencies; other precisions simply miss.
var minorUnitFactor = decimal.NewFromInt(100)

// TermClauses translates a raw search term into predicate clauses and the
// joins they require. An empty or blank term yields nothing: absence of a
// filter, not a permissive wildcard.
func TermClauses(term string) ([]query.Predicate, []query.Join) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, nil
	}

	var conditions query.Or

	if id, err := strconv.ParseInt(term, 10, 64); err == nil && id > 0 {
		conditions = append(conditions,
			query.Compare{Field: query.FieldID, Op: query.OpEq, Value: id},
			query.Compare{Field: query.FieldLinkedExpenseID, Op: query.OpEq, Value: id},
			query.Compare{Field: query.FieldLinkedOrderID, Op: query.OpEq, Value: id},
		)
	}

	if amount, err := decimal.NewFromString(term); err == nil && amount.IsPositive() {
		minor := amount.Mul(minorUnitFactor)
		if minor.IsInteger() {
			conditions = append(conditions,
				query.Compare{Field: query.FieldAbsAmount, Op: query.OpEq, Value: minor.IntPart()})
		}
	}

	conditions = append(conditions,
		query.Contains{Field: query.FieldDescription, Term: term},
		query.Contains{Field: query.FieldOwnerSlug, Term: term},
		query.Contains{Field: query.FieldCounterpartySlug, Term: term},
	)

	// The slug fields live on the two account relations; join them
	// existence-only so they become addressable.
	joins := []query.Join{
		{Relation: query.RelationOwnerAccount, Required: true},
		{Relation: query.RelationCounterpartyAccount, Required: true},
	}

	return []query.Predicate{conditions}, joins
}
