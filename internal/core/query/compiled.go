package query

// Relation names a joinable related entity of the ledger entry.
type Relation string

const (
	RelationExpense             Relation = "expense"
	RelationPaymentMethod       Relation = "payment_method"
	RelationOwnerAccount        Relation = "owner_account"
	RelationCounterpartyAccount Relation = "counterparty_account"
)

// Join requests that a relation be made addressable while evaluating the
// predicate tree. A Required join also acts as an existence filter: rows
// without the related entity are dropped.
type Join struct {
	Relation Relation
	Required bool
}

// MergeJoin adds a join to the set, deduplicating by relation. A required
// join wins over an optional one for the same relation.
func MergeJoin(joins []Join, j Join) []Join {
	for i, existing := range joins {
		if existing.Relation == j.Relation {
			if j.Required && !existing.Required {
				joins[i].Required = true
			}
			return joins
		}
	}
	return append(joins, j)
}

// Snapshot is an immutable copy of the filter state at a defined pipeline
// stage. Facets are computed against the snapshot taken before the free-text
// search clauses were appended.
type Snapshot struct {
	Where []Predicate
	Joins []Join
}

// TakeSnapshot copies the current predicate and join lists so later appends
// cannot leak into facet evaluation.
func TakeSnapshot(where []Predicate, joins []Join) Snapshot {
	s := Snapshot{
		Where: make([]Predicate, len(where)),
		Joins: make([]Join, len(joins)),
	}
	copy(s.Where, where)
	copy(s.Joins, joins)
	return s
}

// Compiled is a fully composed ledger query, ready for a backend to execute.
// Where clauses are conjunctive.
type Compiled struct {
	Where      []Predicate
	Joins      []Join
	Order      Order
	Limit      int
	Offset     int
	Structural Snapshot
}
