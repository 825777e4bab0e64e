package handlers

import (
	"github.com/gin-gonic/gin"

	portssvc "github.com/openbooks/bookkeeping_engine/internal/core/ports/services"
	"github.com/openbooks/bookkeeping_engine/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	RegisterCustomValidators()

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1")

	// Delegate route registration to specific handlers, passing required services
	RegisterAccountRoutes(v1, services.Account)
	registerPeriodRoutes(v1, services.Period)
	RegisterJournalRoutes(v1, services.Journal)
	registerReportingRoutes(v1, services.TrialBalance, services.Statement)
	registerAdjustingRoutes(v1, services.Adjusting)
	registerClosingRoutes(v1, services.Closing)
	registerReversingRoutes(v1, services.Reversing)
	registerCycleRoutes(v1, services.Cycle)
}
