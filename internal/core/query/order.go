package query

import (
	"time"

	"github.com/commonsfund/ledger_backend/internal/core/domain"
)

// DefaultGroupWindow is the bucket width used to collapse near-simultaneous
// legs of one economic event onto the same primary sort key. A group whose
// legs straddle a bucket boundary can be split across buckets; that is an
// accepted limitation in exchange for a fully deterministic order.
const DefaultGroupWindow = 10 * time.Second

// Direction of the composite sort, applied uniformly to every key.
type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// Order is the deterministic four-key grouping sort:
//  1. CreatedAt rounded to the nearest GroupWindow bucket
//  2. GroupID, keeping all legs of one event contiguous within a bucket
//  3. kind priority rank, ordering the main leg before derived fee/tip legs
//  4. entry type, DEBIT before CREDIT
//
// No further tie-break is added: the composite is already total for
// well-formed data, and determinism matters more than strict event order.
type Order struct {
	Direction   Direction
	GroupWindow time.Duration
}

// KindRank returns the fixed presentation priority of a kind. Main
// transaction kinds rank first, then platform tips, then processor fees and
// host fees; unknown kinds sink to the bottom.
func KindRank(kind domain.EntryKind) int {
	switch kind {
	case domain.KindContribution,
		domain.KindExpense,
		domain.KindAddedFunds,
		domain.KindBalanceTransfer,
		domain.KindPrepaidPaymentMethod:
		return 1
	case domain.KindPlatformTip:
		return 2
	case domain.KindPlatformTipDebt:
		return 3
	case domain.KindPaymentProcessorFee:
		return 4
	case domain.KindPaymentProcessorCover:
		return 5
	case domain.KindHostFee:
		return 6
	case domain.KindHostFeeShare:
		return 7
	case domain.KindHostFeeShareDebt:
		return 8
	default:
		return 9
	}
}

// TypeRank orders DEBIT legs before CREDIT legs so symmetric pairs show the
// paying side first.
func TypeRank(t domain.EntryType) int {
	if t == domain.Debit {
		return 1
	}
	return 2
}

// Bucket rounds a timestamp to the nearest GroupWindow boundary.
func (o Order) Bucket(t time.Time) int64 {
	window := o.GroupWindow
	if window <= 0 {
		window = DefaultGroupWindow
	}
	w := int64(window / time.Second)
	secs := t.Unix()
	// round half up, mirroring SQL round()
	return (secs + w/2) / w * w
}

// Less is the canonical comparator for the composite sort. It must match the
// ORDER BY emitted by the SQL backend exactly; the memory backend and the
// tests both rely on it.
func (o Order) Less(a, b domain.LedgerEntry) bool {
	asc := o.Direction != Desc

	ab, bb := o.Bucket(a.CreatedAt), o.Bucket(b.CreatedAt)
	if ab != bb {
		if asc {
			return ab < bb
		}
		return ab > bb
	}

	if a.GroupID != b.GroupID {
		if asc {
			return a.GroupID < b.GroupID
		}
		return a.GroupID > b.GroupID
	}

	ar, br := KindRank(a.Kind), KindRank(b.Kind)
	if ar != br {
		if asc {
			return ar < br
		}
		return ar > br
	}

	at, bt := TypeRank(a.Type), TypeRank(b.Type)
	if at != bt {
		if asc {
			return at < bt
		}
		return at > bt
	}

	return false
}
