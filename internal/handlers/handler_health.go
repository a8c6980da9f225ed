package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// healthHandler reports service liveness, optionally checking the database.
type healthHandler struct {
	pool    *pgxpool.Pool
	dbCheck bool
}

func newHealthHandler(pool *pgxpool.Pool, dbCheck bool) *healthHandler {
	return &healthHandler{pool: pool, dbCheck: dbCheck}
}

// health godoc
// @Summary Health check
// @Produce  json
// @Success 200 {object} map[string]string
// @Router /healthz [get]
func (h *healthHandler) health(c *gin.Context) {
	if h.dbCheck && h.pool != nil {
		if err := h.pool.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
