package router

import (
	"github.com/Antieqkers/antieq-wisma-bill/internal/database"
	"github.com/Antieqkers/antieq-wisma-bill/internal/handlers"
	"github.com/Antieqkers/antieq-wisma-bill/internal/middleware"
	"github.com/Antieqkers/antieq-wisma-bill/internal/services"
	"github.com/Antieqkers/antieq-wisma-bill/pkg/config"

	"github.com/gin-gonic/gin"
)

// SetupRouter builds the gin engine with all routes registered. The balance
// service is shared with the scheduler, so it comes in from the caller.
func SetupRouter(balanceService *services.BalanceService) *gin.Engine {
	router := gin.New()

	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.SetupCORS())

	registerRoutes(router, balanceService)
	return router
}

func registerRoutes(router *gin.Engine, balanceService *services.BalanceService) {
	cfg := config.GetConfig()
	db := database.GetDB()

	userService := services.NewUserService(db)
	tenantService := services.NewTenantService(db)
	calculator := services.NewPaymentCalculator(cfg.Receipt.Prefix)
	paymentService := services.NewPaymentService(db, calculator, balanceService)
	receiptService := services.NewReceiptService(db, cfg.Receipt.KostName)
	expenseService := services.NewExpenseService(db)
	reportService := services.NewReportService(db)
	whatsappService := services.NewWhatsAppService(db, cfg.WhatsApp)

	auth := middleware.NewAuthMiddleware(userService)

	api := router.Group("/api/v1")
	{
		api.GET("/health", handlers.HealthCheck)
		api.GET("/ping", handlers.Ping)

		authHandler := handlers.NewAuthHandler(userService)
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.RefreshToken)
			authGroup.GET("/me", auth.RequireLogin(), authHandler.Me)
			authGroup.POST("/users", auth.RequireLogin(), auth.RequireAdmin(), authHandler.CreateUser)
		}

		tenantHandler := handlers.NewTenantHandler(tenantService, balanceService)
		tenants := api.Group("/tenants", auth.RequireLogin())
		{
			tenants.POST("", tenantHandler.Create)
			tenants.GET("", tenantHandler.GetAll)
			tenants.GET("/:id", tenantHandler.GetByID)
			tenants.PUT("/:id", tenantHandler.Update)
			tenants.DELETE("/:id", auth.RequireAdmin(), tenantHandler.Delete)

			// fresh arrears computation for the payment form
			tenants.GET("/:id/outstanding", tenantHandler.Outstanding)
			// cached summary for dashboards
			tenants.GET("/:id/balance", tenantHandler.Balance)
		}

		paymentHandler := handlers.NewPaymentHandler(paymentService, receiptService)
		payments := api.Group("/payments", auth.RequireLogin())
		{
			payments.POST("", paymentHandler.Create)
			payments.GET("", paymentHandler.GetAll)
			payments.GET("/:id", paymentHandler.GetByID)
			payments.PUT("/:id", paymentHandler.Update)
			payments.DELETE("/:id", auth.RequireAdmin(), paymentHandler.Delete)
			payments.GET("/:id/receipt", paymentHandler.Receipt)
		}

		expenseHandler := handlers.NewExpenseHandler(expenseService)
		expenses := api.Group("/expenses", auth.RequireLogin())
		{
			expenses.POST("", expenseHandler.Create)
			expenses.GET("", expenseHandler.GetAll)
			expenses.GET("/:id", expenseHandler.GetByID)
			expenses.PUT("/:id", expenseHandler.Update)
			expenses.DELETE("/:id", expenseHandler.Delete)
		}

		reportHandler := handlers.NewReportHandler(reportService)
		reports := api.Group("/reports", auth.RequireLogin())
		{
			reports.GET("/monthly", reportHandler.Monthly)
			reports.GET("/financial", reportHandler.Financial)
			reports.GET("/arrears", reportHandler.Arrears)
		}

		whatsappHandler := handlers.NewWhatsAppHandler(whatsappService, tenantService, paymentService, balanceService)
		whatsapp := api.Group("/whatsapp", auth.RequireLogin())
		{
			whatsapp.GET("/settings", whatsappHandler.GetSettings)
			whatsapp.PUT("/settings", whatsappHandler.UpdateSettings)
			whatsapp.GET("/payments/:id/confirmation", whatsappHandler.PaymentConfirmation)
			whatsapp.GET("/tenants/:id/arrears-reminder", whatsappHandler.ArrearsReminder)
			whatsapp.POST("/tenants/:id/billing-reminder", whatsappHandler.BillingReminder)
		}
	}
}
