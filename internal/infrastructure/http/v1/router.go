// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"storeroom/internal/domain/auth"
	"storeroom/internal/domain/catalogs/customer"
	"storeroom/internal/domain/catalogs/product"
	"storeroom/internal/domain/expense"
	"storeroom/internal/domain/ledger"
	"storeroom/internal/domain/orders"
	"storeroom/internal/domain/returns"
	"storeroom/internal/domain/transactions"
	"storeroom/internal/infrastructure/http/v1/handlers"
	"storeroom/internal/infrastructure/http/v1/middleware"
	"storeroom/internal/infrastructure/storage/postgres"
	"storeroom/pkg/logger"
)

// RouterConfig holds the router's collaborators.
type RouterConfig struct {
	Pool   *postgres.Pool
	Logger *logger.Logger

	// TokenValidator validates bearer tokens on the protected group.
	TokenValidator middleware.TokenValidator

	AuthService     *auth.Service
	OrderService    *orders.Service
	ReturnService   *returns.Service
	ProductService  *product.Service
	CustomerService *customer.Service
	LedgerService   *ledger.Service

	ExpenseRepo     expense.Repository
	TransactionRepo transactions.Repository
	AuditStore      *postgres.AuditStore
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no auth required)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	base := handlers.NewBaseHandler()

	apiV1 := router.Group("/api/v1")
	{
		authHandler := handlers.NewAuthHandler(base, cfg.AuthService)
		apiV1.POST("/auth/login", authHandler.Login)

		protected := apiV1.Group("")
		protected.Use(middleware.Identity(cfg.TokenValidator))

		registerOrderRoutes(protected, base, cfg)
		registerCatalogRoutes(protected, base, cfg)
		registerFinanceRoutes(protected, base, cfg)
	}

	return router
}

// registerOrderRoutes registers sales, pre-order and return endpoints. Sales
// and pre-orders share the handler; the route binds the kind.
func registerOrderRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	orderHandler := handlers.NewOrderHandler(base, cfg.OrderService)

	sales := rg.Group("/sales")
	{
		sales.POST("", orderHandler.Place(orders.KindSales))
		sales.GET("", orderHandler.List(orders.KindSales))
		sales.GET("/:id", orderHandler.Get)
		sales.PATCH("/:id/status", orderHandler.UpdateStatus)
	}

	preorders := rg.Group("/preorders")
	{
		preorders.POST("", orderHandler.Place(orders.KindPreOrder))
		preorders.GET("", orderHandler.List(orders.KindPreOrder))
		preorders.GET("/:id", orderHandler.Get)
		preorders.PATCH("/:id/status", orderHandler.UpdateStatus)
	}

	returnHandler := handlers.NewReturnHandler(base, cfg.ReturnService)
	returnsGroup := rg.Group("/returns")
	{
		returnsGroup.POST("", returnHandler.File)
		returnsGroup.GET("", returnHandler.List)
		returnsGroup.GET("/:id", returnHandler.Get)
	}
}

// registerCatalogRoutes registers product and customer endpoints plus the
// stock trail.
func registerCatalogRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	productHandler := handlers.NewProductHandler(base, cfg.ProductService)
	products := rg.Group("/products")
	{
		products.POST("", productHandler.Create)
		products.GET("", productHandler.List)
		products.GET("/:id", productHandler.Get)
		products.PUT("/:id", productHandler.Update)
		products.DELETE("/:id", productHandler.Delete)
	}

	customerHandler := handlers.NewCustomerHandler(base, cfg.CustomerService)
	customers := rg.Group("/customers")
	{
		customers.POST("", customerHandler.Create)
		customers.GET("", customerHandler.List)
		customers.GET("/:id", customerHandler.Get)
		customers.PUT("/:id", customerHandler.Update)
		customers.DELETE("/:id", customerHandler.Delete)
	}

	ledgerHandler := handlers.NewLedgerHandler(base, cfg.LedgerService)
	rg.GET("/stock-entries", ledgerHandler.List)

	if cfg.AuditStore != nil {
		auditHandler := handlers.NewAuditHandler(base, cfg.AuditStore)
		rg.GET("/audit/:entity/:id", auditHandler.History)
	}
}

// registerFinanceRoutes registers expense and vendor transaction endpoints.
func registerFinanceRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	expenseHandler := handlers.NewExpenseHandler(base, cfg.ExpenseRepo)
	expenses := rg.Group("/expenses")
	{
		expenses.POST("", expenseHandler.Create)
		expenses.GET("", expenseHandler.List)
		expenses.GET("/:id", expenseHandler.Get)
		expenses.DELETE("/:id", expenseHandler.Delete)
	}

	transactionHandler := handlers.NewTransactionHandler(base, cfg.TransactionRepo)
	txns := rg.Group("/transactions")
	{
		txns.POST("", transactionHandler.Create)
		txns.GET("", transactionHandler.List)
		txns.GET("/:id", transactionHandler.Get)
	}
}
