package domain

// AccountType categorises an account in the platform hierarchy.
type AccountType string

const (
	AccountCollective   AccountType = "COLLECTIVE"
	AccountEvent        AccountType = "EVENT"
	AccountProject      AccountType = "PROJECT"
	AccountFund         AccountType = "FUND"
	AccountOrganization AccountType = "ORGANIZATION"
	AccountIndividual   AccountType = "INDIVIDUAL"
	AccountVendor       AccountType = "VENDOR"
)

// Account is a ledger participant: a collective, its children (events,
// projects), an individual, a fiscal host or a vendor.
type Account struct {
	ID       int64       `json:"id"`
	Slug     string      `json:"slug"`
	Name     string      `json:"name"`
	Type     AccountType `json:"type"`
	ParentID *int64      `json:"parentID,omitempty"`
	HostID   *int64      `json:"hostID,omitempty"`
	// IsIncognito marks a privacy-preserving proxy account. Incognito accounts
	// are linked to a real account and are only ever surfaced to that account's
	// own authenticated session.
	IsIncognito bool `json:"isIncognito,omitempty"`
}

// AccountRef identifies an account by internal id or by slug. Exactly one of
// the two should be set.
type AccountRef struct {
	ID   int64  `json:"id,omitempty"`
	Slug string `json:"slug,omitempty"`
}

// IsZero reports whether the reference is empty.
func (r AccountRef) IsZero() bool {
	return r.ID == 0 && r.Slug == ""
}

// AccountScope is the resolved, flattened identity set for one side of a
// query: the referenced account plus whichever related identities (children,
// incognito proxy) the request flags asked for and the actor may see.
// Derived per request, never persisted.
type AccountScope struct {
	Account          *Account
	IdentityIDs      []int64
	IncludeGiftCards bool
}
