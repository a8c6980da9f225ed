// Package memory provides an in-memory implementation of the ledger
// repositories, used for tests and local development. It interprets the same
// compiled query representation the pgsql backend compiles to SQL, so the two
// backends stay behaviourally interchangeable.
package memory

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/commonsfund/ledger_backend/internal/apperrors"
	"github.com/commonsfund/ledger_backend/internal/core/domain"
	portsrepo "github.com/commonsfund/ledger_backend/internal/core/ports/repositories"
	"github.com/commonsfund/ledger_backend/internal/core/query"
)

// Compile-time interface assertions documenting which ports Store satisfies.
var (
	_ portsrepo.LedgerEntryReader = (*Store)(nil)
	_ portsrepo.AccountReader     = (*Store)(nil)
	_ portsrepo.ExpenseResolver   = (*Store)(nil)
	_ portsrepo.OrderResolver     = (*Store)(nil)
)

// Store holds ledger data in memory behind an RWMutex.
type Store struct {
	mu        sync.RWMutex
	entries   []domain.LedgerEntry
	accounts  map[int64]domain.Account
	incognito map[int64]int64 // real account id -> incognito proxy id
	expenses  map[int64]domain.Expense
	orders    map[int64]struct{}
}

// New constructs an empty in-memory store.
func New() *Store {
	return &Store{
		accounts:  make(map[int64]domain.Account),
		incognito: make(map[int64]int64),
		expenses:  make(map[int64]domain.Expense),
		orders:    make(map[int64]struct{}),
	}
}

// AddEntry seeds a ledger entry.
func (s *Store) AddEntry(e domain.LedgerEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, e)
}

// AddAccount seeds an account.
func (s *Store) AddAccount(a domain.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[a.ID] = a
}

// LinkIncognito registers an incognito proxy for a real account.
func (s *Store) LinkIncognito(realAccountID, incognitoAccountID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.incognito[realAccountID] = incognitoAccountID
}

// AddExpense seeds an expense.
func (s *Store) AddExpense(e domain.Expense) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expenses[e.ID] = e
}

// AddOrder seeds an order id.
func (s *Store) AddOrder(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[id] = struct{}{}
}

// fieldReader resolves entry fields, following joins into the related maps.
func (s *Store) fieldReader(e domain.LedgerEntry) query.FieldReader {
	return func(f query.Field) (any, bool) {
		switch f {
		case query.FieldID:
			return e.ID, true
		case query.FieldGroupID:
			return e.GroupID, true
		case query.FieldType:
			return string(e.Type), true
		case query.FieldKind:
			return string(e.Kind), true
		case query.FieldOwnerAccountID:
			return e.OwnerAccountID, true
		case query.FieldCounterpartyAccountID:
			return e.CounterpartyAccountID, true
		case query.FieldHostAccountID:
			return nilable(e.HostAccountID), true
		case query.FieldAmount:
			return e.Amount, true
		case query.FieldAbsAmount:
			if e.Amount < 0 {
				return -e.Amount, true
			}
			return e.Amount, true
		case query.FieldCurrency:
			return e.Currency, true
		case query.FieldIsDebt:
			return e.IsDebt, true
		case query.FieldPaymentMethodID:
			return nilable(e.PaymentMethodID), true
		case query.FieldPaymentMethodType:
			if e.PaymentMethodType == nil {
				return nil, true
			}
			return string(*e.PaymentMethodType), true
		case query.FieldLinkedExpenseID:
			return nilable(e.LinkedExpenseID), true
		case query.FieldLinkedOrderID:
			return nilable(e.LinkedOrderID), true
		case query.FieldGiftCardIssuerAccountID:
			return nilable(e.GiftCardIssuerAccountID), true
		case query.FieldDescription:
			return e.Description, true
		case query.FieldCreatedAt:
			return e.CreatedAt, true
		case query.FieldExpenseType:
			if exp, ok := s.linkedExpense(e); ok {
				return string(exp.Type), true
			}
			return nil, false
		case query.FieldExpenseVirtualCardID:
			if exp, ok := s.linkedExpense(e); ok {
				if exp.VirtualCardID == nil {
					return nil, true
				}
				return *exp.VirtualCardID, true
			}
			return nil, false
		case query.FieldOwnerSlug:
			if a, ok := s.accounts[e.OwnerAccountID]; ok {
				return a.Slug, true
			}
			return nil, false
		case query.FieldCounterpartySlug:
			if a, ok := s.accounts[e.CounterpartyAccountID]; ok {
				return a.Slug, true
			}
			return nil, false
		}
		return nil, false
	}
}

func (s *Store) linkedExpense(e domain.LedgerEntry) (domain.Expense, bool) {
	if e.LinkedExpenseID == nil {
		return domain.Expense{}, false
	}
	exp, ok := s.expenses[*e.LinkedExpenseID]
	return exp, ok
}

func nilable(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}

// matches applies required joins as existence filters, then the predicates.
func (s *Store) matches(e domain.LedgerEntry, where []query.Predicate, joins []query.Join) bool {
	for _, j := range joins {
		if !j.Required {
			continue
		}
		switch j.Relation {
		case query.RelationExpense:
			if _, ok := s.linkedExpense(e); !ok {
				return false
			}
		case query.RelationPaymentMethod:
			if e.PaymentMethodID == nil {
				return false
			}
		case query.RelationOwnerAccount:
			if _, ok := s.accounts[e.OwnerAccountID]; !ok {
				return false
			}
		case query.RelationCounterpartyAccount:
			if _, ok := s.accounts[e.CounterpartyAccountID]; !ok {
				return false
			}
		}
	}
	return query.EvalAll(where, s.fieldReader(e))
}

func (s *Store) filtered(where []query.Predicate, joins []query.Join) []domain.LedgerEntry {
	matched := []domain.LedgerEntry{}
	for _, e := range s.entries {
		if s.matches(e, where, joins) {
			matched = append(matched, e)
		}
	}
	return matched
}

// ListEntries filters, sorts with the canonical comparator and pages.
func (s *Store) ListEntries(_ context.Context, q query.Compiled) ([]domain.LedgerEntry, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := s.filtered(q.Where, q.Joins)
	sort.SliceStable(matched, func(i, j int) bool {
		return q.Order.Less(matched[i], matched[j])
	})

	total := int64(len(matched))
	if q.Offset >= len(matched) {
		return []domain.LedgerEntry{}, total, nil
	}
	end := q.Offset + q.Limit
	if end > len(matched) {
		end = len(matched)
	}
	page := make([]domain.LedgerEntry, end-q.Offset)
	copy(page, matched[q.Offset:end])
	return page, total, nil
}

// CountEntries returns only the match count.
func (s *Store) CountEntries(_ context.Context, where []query.Predicate, joins []query.Join) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.filtered(where, joins))), nil
}

// DistinctKinds returns the sorted distinct kinds under the snapshot.
func (s *Store) DistinctKinds(_ context.Context, snap query.Snapshot) ([]domain.EntryKind, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := map[domain.EntryKind]struct{}{}
	for _, e := range s.filtered(snap.Where, snap.Joins) {
		if e.Kind != "" {
			seen[e.Kind] = struct{}{}
		}
	}
	kinds := make([]domain.EntryKind, 0, len(seen))
	for k := range seen {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds, nil
}

// DistinctPaymentMethodTypes returns the distinct payment method types under
// the snapshot, nil sentinel first.
func (s *Store) DistinctPaymentMethodTypes(_ context.Context, snap query.Snapshot) ([]*domain.PaymentMethodType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := map[domain.PaymentMethodType]struct{}{}
	hasNull := false
	for _, e := range s.filtered(snap.Where, snap.Joins) {
		if e.PaymentMethodType == nil {
			hasNull = true
			continue
		}
		seen[*e.PaymentMethodType] = struct{}{}
	}
	ordered := make([]domain.PaymentMethodType, 0, len(seen))
	for t := range seen {
		ordered = append(ordered, t)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i] < ordered[j] })

	types := []*domain.PaymentMethodType{}
	if hasNull {
		types = append(types, nil)
	}
	for i := range ordered {
		types = append(types, &ordered[i])
	}
	return types, nil
}

// FindEntryByID fetches a single entry.
func (s *Store) FindEntryByID(_ context.Context, id int64) (*domain.LedgerEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.entries {
		if e.ID == id {
			entry := e
			return &entry, nil
		}
	}
	return nil, apperrors.NewNotFoundError("ledger entry " + strconv.FormatInt(id, 10) + " not found")
}

// FindAccountByRef resolves an id-or-slug reference.
func (s *Store) FindAccountByRef(_ context.Context, ref domain.AccountRef) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if ref.ID != 0 {
		if a, ok := s.accounts[ref.ID]; ok {
			return &a, nil
		}
		return nil, apperrors.NewNotFoundError("account not found")
	}
	if ref.Slug != "" {
		for _, a := range s.accounts {
			if strings.EqualFold(a.Slug, ref.Slug) {
				account := a
				return &account, nil
			}
		}
	}
	return nil, apperrors.NewNotFoundError("account not found")
}

// FindChildAccounts lists direct children, excluding the given types.
func (s *Store) FindChildAccounts(_ context.Context, parentID int64, excludeTypes []domain.AccountType) ([]domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	children := []domain.Account{}
	for _, a := range s.accounts {
		if a.ParentID == nil || *a.ParentID != parentID {
			continue
		}
		excluded := false
		for _, t := range excludeTypes {
			if a.Type == t {
				excluded = true
				break
			}
		}
		if !excluded {
			children = append(children, a)
		}
	}
	sort.Slice(children, func(i, j int) bool { return children[i].ID < children[j].ID })
	return children, nil
}

// FindIncognitoAccount returns the linked incognito proxy, or nil.
func (s *Store) FindIncognitoAccount(_ context.Context, ownerAccountID int64) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.incognito[ownerAccountID]
	if !ok {
		return nil, nil
	}
	a, ok := s.accounts[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

// ResolveExpenseID checks existence of an expense reference.
func (s *Store) ResolveExpenseID(_ context.Context, ref int64) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.expenses[ref]; !ok {
		return 0, apperrors.NewNotFoundError("expense " + strconv.FormatInt(ref, 10) + " not found")
	}
	return ref, nil
}

// ResolveOrderID checks existence of an order reference.
func (s *Store) ResolveOrderID(_ context.Context, ref int64) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.orders[ref]; !ok {
		return 0, apperrors.NewNotFoundError("order " + strconv.FormatInt(ref, 10) + " not found")
	}
	return ref, nil
}
