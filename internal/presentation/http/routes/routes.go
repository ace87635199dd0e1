package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/restopos-api/internal/config"
	domainRepo "github.com/sangkips/restopos-api/internal/domain/repository"
	"github.com/sangkips/restopos-api/internal/observability/metrics"
	"github.com/sangkips/restopos-api/internal/presentation/http/handler"
	"github.com/sangkips/restopos-api/internal/presentation/http/middleware"
	"github.com/sangkips/restopos-api/pkg/utils"
	"go.uber.org/zap"
)

// Roles carried in cashier tokens
const (
	RoleCashier = "cashier"
	RoleManager = "manager"
	RoleAdmin   = "admin"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Health   *handler.HealthHandler
	Product  *handler.ProductHandler
	Register *handler.RegisterHandler
	Invoice  *handler.InvoiceHandler
	Report   *handler.ReportHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	Metrics         *metrics.Metrics
	Logger          *zap.Logger
	RateLimiter     *middleware.BranchRateLimiter
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.MetricsMiddleware(deps.Metrics))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", h.Health.Check)
	router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		protected.Use(middleware.RequireBranch())

		rateLimiter := deps.RateLimiter
		if rateLimiter == nil {
			rateLimiter = middleware.NewBranchRateLimiter(middleware.RateLimiterConfigFrom(deps.Cfg.RateLimit), deps.Metrics)
		}
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	idempotent := middleware.IdempotencyRequired(middleware.IdempotencyConfig{
		Repo:   deps.IdempotencyRepo,
		TTL:    deps.Cfg.POS.IdempotencyTTL,
		Logger: deps.Logger,
	})

	registerProductRoutes(protected, h)
	registerRegisterRoutes(protected, h, idempotent)
	registerInvoiceRoutes(protected, h, idempotent)
	registerReportRoutes(protected, h)
}

func registerProductRoutes(protected *gin.RouterGroup, h *Handlers) {
	products := protected.Group("/products")
	{
		products.GET("", h.Product.List)
		products.GET("/:id", h.Product.Get)
	}
}

func registerRegisterRoutes(protected *gin.RouterGroup, h *Handlers, idempotent gin.HandlerFunc) {
	registers := protected.Group("/registers/:id")
	registers.Use(middleware.RequireRole(RoleCashier, RoleManager, RoleAdmin))
	{
		registers.GET("/cart", h.Register.GetCart)
		registers.POST("/cart/items", h.Register.AddItem)
		registers.POST("/cart/products", h.Register.AddProduct)
		registers.PUT("/cart/items/:line_id", h.Register.SetQuantity)
		registers.PATCH("/cart/items/:line_id", h.Register.ChangeQuantity)
		registers.DELETE("/cart/items/:line_id", h.Register.RemoveItem)
		registers.PUT("/cart/discount", h.Register.SetDiscount)
		registers.PUT("/cart/order", h.Register.SetOrderType)
		registers.DELETE("/cart", h.Register.Clear)

		registers.POST("/payment", h.Register.BeginPayment)
		registers.POST("/payment/method", h.Register.SelectMethod)
		registers.POST("/payment/paid-amount", h.Register.ConfirmPaidAmount)
		registers.POST("/payment/receipt", h.Register.ConfirmTransferReceipt)
		registers.PUT("/payment/customer", h.Register.SetCustomer)
		registers.DELETE("/payment", h.Register.CancelPayment)

		// Checkout uses idempotency middleware so a retried request never issues a second invoice
		registers.POST("/checkout", idempotent, h.Register.Checkout)
	}
}

func registerInvoiceRoutes(protected *gin.RouterGroup, h *Handlers, idempotent gin.HandlerFunc) {
	invoices := protected.Group("/invoices")
	{
		invoices.GET("", h.Invoice.List)
		invoices.GET("/number/:number", h.Invoice.GetByNumber)
		invoices.GET("/:id", h.Invoice.Get)
		invoices.POST("/:id/refund",
			middleware.RequireRole(RoleManager, RoleAdmin),
			idempotent,
			h.Invoice.Refund)
	}
}

func registerReportRoutes(protected *gin.RouterGroup, h *Handlers) {
	reports := protected.Group("/reports")
	reports.Use(middleware.RequireRole(RoleManager, RoleAdmin))
	{
		reports.GET("/sales", h.Report.Sales)
	}
}
