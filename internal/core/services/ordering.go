package services

import (
	"github.com/commonsfund/ledger_backend/internal/core/domain"
	"github.com/commonsfund/ledger_backend/internal/core/query"
)

// buildOrder maps the request's orderBy onto the grouping order spec.
// Unknown fields and directions normalize to the default (createdAt DESC)
// rather than erroring; the bucket width comes from service configuration.
func (s *transactionQueryService) buildOrder(q domain.TransactionQuery) query.Order {
	direction := query.Desc
	if q.OrderBy.Direction == domain.SortAsc {
		direction = query.Asc
	}
	return query.Order{
		Direction:   direction,
		GroupWindow: s.cfg.GroupWindow,
	}
}
