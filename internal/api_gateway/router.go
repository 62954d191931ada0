package api_gateway

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pettycash-ledger/internal/api_gateway/handler"
	"github.com/pettycash-ledger/internal/api_gateway/middleware"
)

const healthCheckTimeout = 2 * time.Second

// HealthChecker reports whether a backing store is reachable
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// setupRouter configures API routes and middleware for the application
func setupRouter(
	logger *slog.Logger,
	r *gin.Engine,
	ledgerHandler *handler.LedgerHandler,
	snapshotHandler *handler.SnapshotHandler,
	reportHandler *handler.ReportHandler,
	checks map[string]HealthChecker,
) {
	// Correlation runs before the logger so request logs carry the ID
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.CorrelationID())
	r.Use(middleware.Logger(logger))

	v1 := r.Group("/api/v1")
	{
		ledgers := v1.Group("/ledgers/:month")
		{
			ledgers.GET("", ledgerHandler.GetLedger)
			ledgers.GET("/opening-balance", ledgerHandler.GetOpeningBalance)
			ledgers.PUT("/opening-balance", ledgerHandler.SetOpeningBalance)
			ledgers.POST("/transactions", ledgerHandler.AddTransaction)
			ledgers.PUT("/transactions/:id", ledgerHandler.UpdateTransaction)
			ledgers.POST("/export", ledgerHandler.ExportLedger)
			ledgers.GET("/report", reportHandler.GetByMonth)
		}

		v1.DELETE("/transactions/:id", ledgerHandler.DeleteTransaction)

		snapshots := v1.Group("/snapshots")
		{
			snapshots.GET("", snapshotHandler.List)
			snapshots.GET("/:id", snapshotHandler.GetByID)
			snapshots.POST("/:id/reopen", snapshotHandler.Reopen)
			snapshots.DELETE("/:id", snapshotHandler.Delete)
		}

		reports := v1.Group("/reports")
		{
			reports.GET("", reportHandler.List)
			reports.GET("/:snapshot_id", reportHandler.GetBySnapshotID)
		}
	}

	r.GET("/health", healthHandler(checks))
}

// healthHandler pings every dependency and answers 503 if any is down
func healthHandler(checks map[string]HealthChecker) gin.HandlerFunc {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
		defer cancel()

		status := http.StatusOK
		deps := gin.H{}
		for _, name := range names {
			if err := checks[name].Ping(ctx); err != nil {
				status = http.StatusServiceUnavailable
				deps[name] = "down"
				continue
			}
			deps[name] = "up"
		}

		overall := "ok"
		if status != http.StatusOK {
			overall = "degraded"
		}
		c.JSON(status, gin.H{"status": overall, "dependencies": deps, "timestamp": time.Now().UTC()})
	}
}
