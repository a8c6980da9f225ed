package models

// Account mirrors one row of the accounts table. LinkedAccountID is set on
// incognito proxy accounts and points at the real account they belong to.
type Account struct {
	ID              int64
	Slug            string
	Name            string
	Type            string
	ParentID        *int64
	HostID          *int64
	IsIncognito     bool
	LinkedAccountID *int64
}
