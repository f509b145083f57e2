package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kmoo25z/ameriduka/internal/http/handlers"
	"github.com/kmoo25z/ameriduka/internal/http/middleware"
	"github.com/kmoo25z/ameriduka/internal/modules/admin"
	"github.com/kmoo25z/ameriduka/internal/modules/cart"
	"github.com/kmoo25z/ameriduka/internal/modules/catalog"
	"github.com/kmoo25z/ameriduka/internal/modules/orders"
	"github.com/kmoo25z/ameriduka/internal/modules/payments"
	"github.com/kmoo25z/ameriduka/internal/modules/promos"
	"github.com/kmoo25z/ameriduka/internal/modules/reviews"
	"github.com/kmoo25z/ameriduka/internal/modules/users"
)

type Deps struct {
	Logger   *slog.Logger
	DB       *gorm.DB
	Users    *users.Service
	Provider payments.Provider
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Recovery(d.Logger),
		middleware.Logger(d.Logger),
		middleware.Authenticate(d.Users),
		middleware.ErrorHandler(d.Logger),
	)

	catalogRepo := catalog.NewRepo(d.DB)
	cartSvc := cart.NewService(d.DB, catalogRepo)
	orderSvc := orders.NewService(d.DB, catalogRepo)
	checkoutSvc := payments.NewCheckoutService(d.DB, d.Provider)
	settlementSvc := payments.NewSettlementService(d.DB, d.Provider, d.Logger)
	reviewSvc := reviews.NewService(d.DB)
	promoSvc := promos.NewService(d.DB)
	adminSvc := admin.NewService(d.DB, catalogRepo)

	authH := handlers.NewAuthHandler(d.Users)
	productsH := handlers.NewProductsHandler(catalogRepo)
	cartH := handlers.NewCartHandler(cartSvc)
	ordersH := handlers.NewOrdersHandler(orderSvc)
	paymentsH := handlers.NewPaymentsHandler(checkoutSvc, settlementSvc)
	webhookH := handlers.NewWebhookHandler(d.Logger, settlementSvc)
	reviewsH := handlers.NewReviewsHandler(reviewSvc)
	promosH := handlers.NewPromosHandler(promoSvc)
	adminH := handlers.NewAdminHandler(adminSvc, catalogRepo)
	healthH := handlers.NewHealthHandler(d.DB)

	api := r.Group("/api")

	api.GET("/", healthH.Root)
	api.GET("/health", healthH.Health)

	auth := api.Group("/auth")
	{
		auth.POST("/register", authH.Register)
		auth.POST("/login", authH.Login)
		auth.GET("/me", middleware.RequireAuth(), authH.Me)
		auth.POST("/logout", middleware.RequireAuth(), authH.Logout)
	}

	api.GET("/products", productsH.List)
	api.GET("/products/featured", productsH.Featured)
	api.GET("/products/categories", productsH.Categories)
	api.GET("/products/brands", productsH.Brands)
	api.GET("/products/:id", productsH.Get)
	api.GET("/recommendations/:id", productsH.Recommendations)

	catalogWrite := api.Group("/products", middleware.RequireRoles(users.RoleAdmin, users.RoleManager))
	{
		catalogWrite.POST("", productsH.Create)
		catalogWrite.PUT("/:id", productsH.Update)
		catalogWrite.DELETE("/:id", productsH.Delete)
	}

	cartG := api.Group("/cart", middleware.RequireAuth())
	{
		cartG.GET("", cartH.Get)
		cartG.POST("/add", cartH.Add)
		cartG.PUT("/update", cartH.Update)
		cartG.DELETE("/clear", cartH.Clear)
	}

	ordersG := api.Group("/orders", middleware.RequireAuth())
	{
		ordersG.POST("", ordersH.Create)
		ordersG.GET("", ordersH.List)
		ordersG.GET("/:id", ordersH.Get)
		ordersG.PUT("/:id/status", ordersH.UpdateStatus)
	}

	payG := api.Group("/payments", middleware.RequireAuth())
	{
		payG.POST("/checkout", paymentsH.CreateSession)
		payG.GET("/status/:session_id", paymentsH.SessionStatus)
		payG.POST("/mpesa/initiate", paymentsH.InitiateMpesa)
	}

	// unauthenticated: the processor signs, it doesn't log in
	api.POST("/webhook/payment", webhookH.Payment)

	api.POST("/reviews", middleware.RequireAuth(), reviewsH.Create)
	api.GET("/reviews/:product_id", reviewsH.ListByProduct)

	api.GET("/promos/validate/:code", middleware.RequireAuth(), promosH.Validate)

	adminG := api.Group("/admin", middleware.RequireRoles(users.RoleAdmin, users.RoleManager))
	{
		adminG.GET("/stats", adminH.Stats)
		adminG.GET("/inventory", adminH.Inventory)
		adminG.PUT("/inventory/:id/stock", adminH.SetStock)
		adminG.GET("/employees", adminH.ListEmployees)
		adminG.POST("/employees", adminH.CreateEmployee)
		adminG.GET("/customers", adminH.ListCustomers)
		adminG.GET("/customers/:id/notes", adminH.ListCustomerNotes)
		adminG.POST("/customers/:id/notes", adminH.AddCustomerNote)
		adminG.POST("/promos", promosH.Create)
		adminG.GET("/promos", promosH.List)
	}

	return r
}
