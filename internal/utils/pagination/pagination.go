package pagination

import (
	"fmt"

	"github.com/commonsfund/ledger_backend/internal/apperrors"
)

const (
	// DefaultLimit is the page size used when the caller does not specify one.
	DefaultLimit = 100
	// MaxLimit is the hard page-size ceiling for non-root requesters.
	MaxLimit = 10000
)

// Normalize maps possibly-absent or out-of-range pagination inputs to their
// effective values: a nil or negative limit becomes defaultLimit, a nil or
// negative offset becomes 0. An explicit limit of 0 is preserved (count-only).
func Normalize(limit, offset *int, defaultLimit int) (int, int) {
	if defaultLimit <= 0 {
		defaultLimit = DefaultLimit
	}
	l := defaultLimit
	if limit != nil && *limit >= 0 {
		l = *limit
	}
	o := 0
	if offset != nil && *offset > 0 {
		o = *offset
	}
	return l, o
}

// CheckCeiling rejects page sizes above maxLimit unless the requester holds
// root privilege. It must run before any query executes.
func CheckCeiling(limit, maxLimit int, isRoot bool) error {
	if maxLimit <= 0 {
		maxLimit = MaxLimit
	}
	if limit > maxLimit && !isRoot {
		return apperrors.NewAppError(403, fmt.Sprintf("cannot fetch more than %d transactions at the same time, please adjust the limit", maxLimit), apperrors.ErrLimitExceeded)
	}
	return nil
}
