package domain

// Authorization scopes that can be delegated to an API token.
const (
	ScopeIncognito    = "incognito"
	ScopeTransactions = "transactions"
)

// Actor is the authenticated requester, as established by the auth middleware.
// A nil *Actor means the request is anonymous.
type Actor struct {
	AccountID int64
	AdminOf   []int64
	Scopes    []string
	Root      bool
}

// IsAdminOf reports whether the actor administers the given account.
func (a *Actor) IsAdminOf(accountID int64) bool {
	if a == nil {
		return false
	}
	for _, id := range a.AdminOf {
		if id == accountID {
			return true
		}
	}
	return a.AccountID == accountID
}

// HasScope reports whether the actor's credential carries the given scope.
// Session credentials (no explicit scope list) carry every scope.
func (a *Actor) HasScope(scope string) bool {
	if a == nil {
		return false
	}
	if len(a.Scopes) == 0 {
		return true
	}
	for _, s := range a.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}

// IsRoot reports whether the actor holds platform-root privilege.
func (a *Actor) IsRoot() bool {
	return a != nil && a.Root
}
