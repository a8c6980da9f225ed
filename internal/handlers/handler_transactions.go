package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/commonsfund/ledger_backend/internal/apperrors"
	"github.com/commonsfund/ledger_backend/internal/core/domain"
	portssvc "github.com/commonsfund/ledger_backend/internal/core/ports/services"
	"github.com/commonsfund/ledger_backend/internal/dto"
	"github.com/commonsfund/ledger_backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

// transactionsHandler handles HTTP requests for the ledger query engine.
type transactionsHandler struct {
	querySvc portssvc.TransactionQuerySvc
}

func newTransactionsHandler(querySvc portssvc.TransactionQuerySvc) *transactionsHandler {
	return &transactionsHandler{querySvc: querySvc}
}

// queryTransactions godoc
// @Summary Query ledger transactions
// @Description Runs a filtered, paginated, deterministically ordered query over the ledger
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   query body dto.QueryTransactionsRequest true "Filters, pagination and facet selection"
// @Success 200 {object} dto.QueryTransactionsResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 403 {object} map[string]string "Limit above ceiling"
// @Failure 404 {object} map[string]string "Referenced account, expense or order not found"
// @Router /transactions/query [post]
func (h *transactionsHandler) queryTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	req := dto.QueryTransactionsRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind transaction query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor := middleware.GetActorFromCtx(c.Request.Context())

	page, err := h.querySvc.QueryTransactions(c.Request.Context(), actor, req.ToDomain())
	if err != nil {
		respondQueryError(c, logger, err)
		return
	}

	// Only the requested facets are resolved; they are independent of each
	// other and of the page itself, so run them concurrently.
	var kinds []domain.EntryKind
	var pmTypes []*domain.PaymentMethodType
	g, gctx := errgroup.WithContext(c.Request.Context())
	if req.WithKinds {
		g.Go(func() error {
			var ferr error
			kinds, ferr = page.Kinds(gctx)
			return ferr
		})
	}
	if req.WithPaymentMethodTypes {
		g.Go(func() error {
			var ferr error
			pmTypes, ferr = page.PaymentMethodTypes(gctx)
			return ferr
		})
	}
	if err := g.Wait(); err != nil {
		respondQueryError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToQueryTransactionsResponse(page, kinds, pmTypes))
}

// getTransaction godoc
// @Summary Get a single ledger transaction
// @Tags transactions
// @Produce  json
// @Param   transactionID path int true "Transaction ID"
// @Success 200 {object} dto.LedgerEntryResponse
// @Failure 404 {object} map[string]string "Transaction not found"
// @Router /transactions/{transactionID} [get]
func (h *transactionsHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	id, err := strconv.ParseInt(c.Param("transactionID"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid transaction id"})
		return
	}

	entry, err := h.querySvc.GetTransaction(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
			return
		}
		logger.Error("Failed to get transaction", slog.Int64("id", id), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve transaction"})
		return
	}

	c.JSON(http.StatusOK, dto.ToLedgerEntryResponse(*entry))
}

func respondQueryError(c *gin.Context, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Query referenced a missing entity", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrLimitExceeded), errors.Is(err, apperrors.ErrForbidden):
		logger.Warn("Query rejected", slog.String("error", err.Error()))
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Query validation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error("Transaction query failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query transactions"})
	}
}
