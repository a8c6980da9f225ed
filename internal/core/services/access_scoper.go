package services

import (
	"context"

	"github.com/commonsfund/ledger_backend/internal/core/domain"
	"github.com/commonsfund/ledger_backend/internal/core/query"
)

// scopeSide selects which identity column of the ledger entry a resolved
// account scope constrains.
type scopeSide int

const (
	sideOwner scopeSide = iota
	sideCounterparty
)

func (side scopeSide) identityField() query.Field {
	if side == sideOwner {
		return query.FieldOwnerAccountID
	}
	return query.FieldCounterpartyAccountID
}

// giftCardEntryType is the entry direction that gift-card-funded entries take
// on each side: spends from an issued card show up as debits on the issuer's
// own book and as credits on the receiving side.
func (side scopeSide) giftCardEntryType() domain.EntryType {
	if side == sideOwner {
		return domain.Debit
	}
	return domain.Credit
}

type scopeFlags struct {
	regular   bool
	children  bool
	incognito bool
	giftCards bool
}

func scopeFlagsFromQuery(q domain.TransactionQuery) scopeFlags {
	return scopeFlags{
		regular:   q.IncludeRegular,
		children:  q.IncludeChildren,
		incognito: q.IncludeIncognito,
		giftCards: q.IncludeGiftCards,
	}
}

// expandAccountScope resolves one or more account references into a single
// predicate over the side's identity column. Each reference is resolved to a
// concrete account (NotFound surfaces to the caller), then expanded into the
// candidate identity set per the request flags.
func (s *transactionQueryService) expandAccountScope(ctx context.Context, actor *domain.Actor, refs []domain.AccountRef, flags scopeFlags, side scopeSide) (query.Predicate, error) {
	var identityIDs []int64
	var resolvedIDs []int64

	for _, ref := range refs {
		account, err := s.accounts.FindAccountByRef(ctx, ref)
		if err != nil {
			return nil, err
		}
		resolvedIDs = append(resolvedIDs, account.ID)

		if flags.regular {
			identityIDs = append(identityIDs, account.ID)
		}

		if flags.children {
			// Vendors hang off a parent account for bookkeeping but are
			// never part of its financial scope.
			children, err := s.accounts.FindChildAccounts(ctx, account.ID, []domain.AccountType{domain.AccountVendor})
			if err != nil {
				return nil, err
			}
			for _, child := range children {
				identityIDs = append(identityIDs, child.ID)
			}
		}

		// Incognito entries are only ever exposed to the account's own
		// authenticated identity. All four conditions are required: an admin
		// of someone else's account must not see their incognito ledger.
		if flags.incognito &&
			actor != nil &&
			actor.IsAdminOf(account.ID) &&
			actor.AccountID == account.ID &&
			actor.HasScope(domain.ScopeIncognito) {
			incognito, err := s.accounts.FindIncognitoAccount(ctx, account.ID)
			if err != nil {
				return nil, err
			}
			if incognito != nil {
				identityIDs = append(identityIDs, incognito.ID)
			}
		}
	}

	base := query.In{Field: side.identityField(), Values: query.Int64Values(identityIDs)}
	if !flags.giftCards {
		return base, nil
	}

	// Entries paid through a gift card carry the issuer account, not the
	// spender, in the identity columns; match them by issuer and direction.
	return query.Or{
		query.And{
			query.In{Field: query.FieldGiftCardIssuerAccountID, Values: query.Int64Values(resolvedIDs)},
			query.Compare{Field: query.FieldType, Op: query.OpEq, Value: string(side.giftCardEntryType())},
		},
		base,
	}, nil
}

// expandHostScope constrains the query to one fiscal host. When the caller
// opts out of host entries, the host's own bookkeeping (its id and its
// children's ids on the owner column) is suppressed as well.
func (s *transactionQueryService) expandHostScope(ctx context.Context, q domain.TransactionQuery) ([]query.Predicate, error) {
	host, err := s.accounts.FindAccountByRef(ctx, *q.Host)
	if err != nil {
		return nil, err
	}

	preds := []query.Predicate{
		query.Compare{Field: query.FieldHostAccountID, Op: query.OpEq, Value: host.ID},
	}

	if !q.IncludeHost {
		excluded := []int64{host.ID}
		children, err := s.accounts.FindChildAccounts(ctx, host.ID, nil)
		if err != nil {
			return nil, err
		}
		for _, child := range children {
			excluded = append(excluded, child.ID)
		}
		preds = append(preds, query.NotIn{Field: query.FieldOwnerAccountID, Values: query.Int64Values(excluded)})
	}

	return preds, nil
}
