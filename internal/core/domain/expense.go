package domain

// ExpenseType classifies an expense submitted against a collective.
type ExpenseType string

const (
	ExpenseInvoice        ExpenseType = "INVOICE"
	ExpenseReceipt        ExpenseType = "RECEIPT"
	ExpenseGrant          ExpenseType = "GRANT"
	ExpenseCharge         ExpenseType = "CHARGE"
	ExpenseSettlement     ExpenseType = "SETTLEMENT"
	ExpenseFundingRequest ExpenseType = "FUNDING_REQUEST"
	ExpenseUnclassified   ExpenseType = "UNCLASSIFIED"
)

// Expense carries the fields of the expense entity this engine can filter on.
type Expense struct {
	ID            int64       `json:"id"`
	Type          ExpenseType `json:"type"`
	VirtualCardID *string     `json:"virtualCardID,omitempty"`
}
