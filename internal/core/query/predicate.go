// Package query defines the backend-neutral representation of a compiled
// ledger query: a conjunctive predicate tree, the joins needed to evaluate
// it, the composite grouping order and the pagination window. Storage
// backends (pgsql, memory) interpret this representation; nothing in here
// touches a database.
package query

// Field names an addressable attribute of a ledger entry, including
// attributes only reachable through a join to a related entity.
type Field string

const (
	FieldID                      Field = "id"
	FieldGroupID                 Field = "group_id"
	FieldType                    Field = "type"
	FieldKind                    Field = "kind"
	FieldOwnerAccountID          Field = "owner_account_id"
	FieldCounterpartyAccountID   Field = "counterparty_account_id"
	FieldHostAccountID           Field = "host_account_id"
	FieldAmount                  Field = "amount"
	FieldAbsAmount               Field = "abs_amount"
	FieldCurrency                Field = "currency"
	FieldIsDebt                  Field = "is_debt"
	FieldPaymentMethodID         Field = "payment_method_id"
	FieldLinkedExpenseID         Field = "linked_expense_id"
	FieldLinkedOrderID           Field = "linked_order_id"
	FieldGiftCardIssuerAccountID Field = "gift_card_issuer_account_id"
	FieldDescription             Field = "description"
	FieldCreatedAt               Field = "created_at"

	// Joined fields.
	FieldPaymentMethodType    Field = "payment_method.type"
	FieldExpenseType          Field = "expense.type"
	FieldExpenseVirtualCardID Field = "expense.virtual_card_id"
	FieldOwnerSlug            Field = "owner_account.slug"
	FieldCounterpartySlug     Field = "counterparty_account.slug"
)

// Predicate is one node of the filter tree. The variant set is closed:
// backends type-switch over it.
type Predicate interface {
	isPredicate()
}

// Op is a comparison operator for Compare predicates.
type Op string

const (
	OpEq  Op = "="
	OpGte Op = ">="
	OpLte Op = "<="
)

// Compare matches rows where Field Op Value holds.
type Compare struct {
	Field Field
	Op    Op
	Value any
}

// In matches rows whose field value is a member of Values.
type In struct {
	Field  Field
	Values []any
}

// NotIn matches rows whose field value is not a member of Values.
type NotIn struct {
	Field  Field
	Values []any
}

// Null matches rows where the field is (or, with Not, is not) null.
type Null struct {
	Field Field
	Not   bool
}

// Contains matches rows whose textual field contains Term, case-insensitively.
type Contains struct {
	Field Field
	Term  string
}

// Or matches rows satisfying at least one child predicate.
type Or []Predicate

// And matches rows satisfying every child predicate.
type And []Predicate

func (Compare) isPredicate()  {}
func (In) isPredicate()       {}
func (NotIn) isPredicate()    {}
func (Null) isPredicate()     {}
func (Contains) isPredicate() {}
func (Or) isPredicate()       {}
func (And) isPredicate()      {}

// Int64Values boxes a slice of int64 for In/NotIn predicates.
func Int64Values(ids []int64) []any {
	vals := make([]any, len(ids))
	for i, id := range ids {
		vals[i] = id
	}
	return vals
}

// StringValues boxes a slice of strings for In/NotIn predicates.
func StringValues[S ~string](ss []S) []any {
	vals := make([]any, len(ss))
	for i, s := range ss {
		vals[i] = string(s)
	}
	return vals
}
