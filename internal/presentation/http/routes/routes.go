package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/sangkips/backoffice-api/internal/config"
	domainRepo "github.com/sangkips/backoffice-api/internal/domain/repository"
	"github.com/sangkips/backoffice-api/internal/presentation/http/handler"
	"github.com/sangkips/backoffice-api/internal/presentation/http/middleware"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Bill    *handler.BillHandler
	Debt    *handler.DebtHandler
	Draft   *handler.DraftHandler
	Printer *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	RateLimiter     *middleware.CallerRateLimiter
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	health := func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	}
	router.GET("/health", health)

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.GET("/health", health)
	{
		api := v1.Group("")
		api.Use(middleware.CallerMiddleware())
		if deps.RateLimiter != nil {
			api.Use(deps.RateLimiter.Middleware())
		}

		idem := middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo}

		registerBillRoutes(api, h, idem)
		registerDebtRoutes(api, h, idem)
		registerDraftRoutes(api, h, idem)
		registerPrinterRoutes(api, h)
	}

	return router
}

func registerBillRoutes(api *gin.RouterGroup, h *Handlers, idem middleware.IdempotencyConfig) {
	api.POST("/bills/preview", h.Bill.Preview)

	bills := api.Group("/bills/:kind")
	{
		bills.GET("", h.Bill.List)
		bills.POST("", middleware.Idempotency(idem), h.Bill.Create)
		bills.GET("/:id", h.Bill.Get)
		bills.PUT("/:id", middleware.Idempotency(idem), h.Bill.Update)
		bills.POST("/:id/payments", middleware.IdempotencyRequired(idem), h.Bill.RecordPayment)
		bills.GET("/:id/print", h.Printer.RenderBill)
		bills.POST("/:id/print", h.Printer.PrintBill)
	}
}

func registerDebtRoutes(api *gin.RouterGroup, h *Handlers, idem middleware.IdempotencyConfig) {
	debts := api.Group("/debts")
	{
		debts.GET("", h.Debt.List)
		debts.GET("/:id", h.Debt.Get)
		debts.POST("/:id/payments", middleware.IdempotencyRequired(idem), h.Debt.RecordPayment)
		debts.GET("/:id/print", h.Printer.RenderDebt)
	}
}

func registerDraftRoutes(api *gin.RouterGroup, h *Handlers, idem middleware.IdempotencyConfig) {
	drafts := api.Group("/drafts")
	{
		drafts.GET("", h.Draft.List)
		drafts.GET("/:id", h.Draft.Get)
		drafts.POST("/:id/retry", middleware.Idempotency(idem), h.Draft.Retry)
		drafts.DELETE("/:id", h.Draft.Delete)
	}
}

func registerPrinterRoutes(api *gin.RouterGroup, h *Handlers) {
	p := api.Group("/printer")
	{
		p.GET("/status", h.Printer.GetStatus)
		p.POST("/test", h.Printer.TestPrint)
	}
}
