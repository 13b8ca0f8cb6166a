package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"reseller-backend/internal/auth"
	"reseller-backend/internal/clock"
	"reseller-backend/internal/config"
	handler "reseller-backend/internal/handlers"
	"reseller-backend/internal/metrics"
	"reseller-backend/internal/middleware"
	"reseller-backend/internal/repository"
	"reseller-backend/internal/services/records"
	"reseller-backend/internal/services/reporting"
	"reseller-backend/internal/services/transfer"
)

// Deps are the process-wide collaborators the routes are built from.
type Deps struct {
	Config      *config.Config
	Clock       clock.Clock
	Metrics     *metrics.Metrics
	Revocations auth.RevocationList
}

func RegisterRoutes(r *gin.Engine, db *gorm.DB, deps Deps) {
	if deps.Clock == nil {
		deps.Clock = clock.System{}
	}
	if deps.Revocations == nil {
		deps.Revocations = auth.NewMemoryRevocations(deps.Clock)
	}
	cfg := deps.Config

	store := repository.NewStore(db)
	recordService := records.NewService(store,
		records.WithClock(deps.Clock),
		records.WithMetrics(deps.Metrics),
	)
	reportService := reporting.NewService(store,
		reporting.WithClock(deps.Clock),
		reporting.WithWindowDays(cfg.Reporting.ExpiringWindowDays),
	)
	transferService := transfer.NewService(store, recordService)
	authService := auth.NewService(cfg.Auth.AdminUser, cfg.Auth.AdminPasswordHash,
		auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, deps.Clock),
		deps.Revocations,
		auth.WithMetrics(deps.Metrics),
	)

	customers := handler.NewCustomerHandler(recordService, reportService)
	domains := handler.NewDomainHandler(recordService, reportService)
	hosting := handler.NewHostingHandler(recordService, reportService)
	ssl := handler.NewSSLHandler(recordService, reportService)
	invoices := handler.NewInvoiceHandler(recordService, reportService, transferService)
	reports := handler.NewReportHandler(reportService)
	exports := handler.NewExportHandler(transferService)
	audit := handler.NewAuditHandler(recordService)
	authHandler := handler.NewAuthHandler(authService)

	if deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	api := r.Group("/api")

	// Health check
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api.POST("/auth/login", authHandler.Login)

	private := api.Group("")
	private.Use(middleware.RequireAuth(authService))
	private.POST("/auth/logout", authHandler.Logout)

	private.GET("/dashboard", reports.Dashboard)
	private.GET("/renewals", reports.Renewals)
	private.GET("/export/:table", exports.Export)
	private.GET("/audit", audit.List)

	cust := private.Group("/customers")
	{
		cust.GET("", customers.List)
		cust.POST("", customers.Create)
		cust.GET("/:id", customers.Get)
		cust.GET("/:id/detail", customers.Detail)
		cust.PUT("/:id", customers.Update)
		cust.DELETE("/:id", customers.Delete)
	}

	dom := private.Group("/domains")
	{
		dom.GET("", domains.List)
		dom.POST("", domains.Create)
		dom.GET("/:id", domains.Get)
		dom.PUT("/:id", domains.Update)
		dom.DELETE("/:id", domains.Delete)
	}

	host := private.Group("/hosting")
	{
		host.GET("", hosting.List)
		host.POST("", hosting.Create)
		host.GET("/:id", hosting.Get)
		host.PUT("/:id", hosting.Update)
		host.POST("/:id/renew", hosting.Renew)
		host.DELETE("/:id", hosting.Delete)
	}

	certs := private.Group("/ssl")
	{
		certs.GET("", ssl.List)
		certs.POST("", ssl.Create)
		certs.GET("/:id", ssl.Get)
		certs.PUT("/:id", ssl.Update)
		certs.DELETE("/:id", ssl.Delete)
	}

	inv := private.Group("/invoices")
	{
		inv.GET("", invoices.List)
		inv.POST("", invoices.Create)
		inv.POST("/import", invoices.Import)
		inv.GET("/:id", invoices.Get)
		inv.PUT("/:id", invoices.Update)
		inv.DELETE("/:id", invoices.Delete)
	}
}
