package handlers

import (
	portssvc "github.com/commonsfund/ledger_backend/internal/core/ports/services"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RegisterTransactionRoutes mounts the ledger query API on the given group.
func RegisterTransactionRoutes(group *gin.RouterGroup, querySvc portssvc.TransactionQuerySvc) {
	h := newTransactionsHandler(querySvc)
	transactions := group.Group("/transactions")
	{
		transactions.POST("/query", h.queryTransactions)
		transactions.GET("/:transactionID", h.getTransaction)
	}
}

// RegisterHealthRoutes mounts the liveness endpoint at the router root.
func RegisterHealthRoutes(r *gin.Engine, pool *pgxpool.Pool, dbCheck bool) {
	h := newHealthHandler(pool, dbCheck)
	r.GET("/healthz", h.health)
}
