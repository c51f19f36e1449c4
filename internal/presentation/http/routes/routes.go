package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/afyacare/hms-api/internal/config"
	domainRepo "github.com/afyacare/hms-api/internal/domain/repository"
	"github.com/afyacare/hms-api/internal/presentation/http/handler"
	"github.com/afyacare/hms-api/internal/presentation/http/middleware"
	"github.com/afyacare/hms-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth          *handler.AuthHandler
	Patient       *handler.PatientHandler
	Queue         *handler.QueueHandler
	Visit         *handler.VisitHandler
	Lab           *handler.LabHandler
	Billing       *handler.BillingHandler
	Shift         *handler.ShiftHandler
	Ledger        *handler.LedgerHandler
	Pharmacy      *handler.PharmacyHandler
	Supplier      *handler.SupplierHandler
	PurchaseOrder *handler.PurchaseOrderHandler
	Finance       *handler.FinanceHandler
	Report        *handler.ReportHandler
	Printer       *handler.PrinterHandler
	Clinic        *handler.ClinicHandler
	User          *handler.UserHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	Logger          zerolog.Logger
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		protected.Use(middleware.RequireClinic())

		// Per-clinic rate limiter
		rateLimiter := middleware.NewClinicRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Profile routes
	protected.GET("/profile", h.Auth.Me)
	protected.PUT("/profile", h.Auth.UpdateProfile)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	registerPatientRoutes(protected, h)
	registerQueueRoutes(protected, h)
	registerVisitRoutes(protected, h)
	registerLabRoutes(protected, h)
	registerBillingRoutes(protected, h, deps)
	registerShiftRoutes(protected, h)
	registerLedgerRoutes(protected, h)
	registerFinanceRoutes(protected, h)
	registerPharmacyRoutes(protected, h)
	registerSupplierRoutes(protected, h)
	registerPurchaseOrderRoutes(protected, h)
	registerReportRoutes(protected, h)
	registerPrinterRoutes(protected, h)
	registerClinicRoutes(protected, h)
	registerUserRoutes(protected, h)
}

func registerPatientRoutes(protected *gin.RouterGroup, h *Handlers) {
	patients := protected.Group("/patients")
	patients.Use(middleware.RequirePermission("manage-patients"))
	{
		patients.GET("", h.Patient.List)
		patients.POST("", h.Patient.Register)
		patients.GET("/mrn/:mrn", h.Patient.GetByMRN)
		patients.GET("/:id", h.Patient.Get)
		patients.PUT("/:id", h.Patient.Update)
		patients.DELETE("/:id", h.Patient.Delete)
		patients.GET("/:id/visits", h.Visit.PatientVisits)
		patients.GET("/:id/active-bill", h.Billing.ActiveBill)
	}
}

func registerQueueRoutes(protected *gin.RouterGroup, h *Handlers) {
	queue := protected.Group("/queue")
	{
		queue.GET("", h.Queue.List)
		queue.POST("", h.Queue.Join)
		queue.POST("/:id/call", h.Queue.Call)
		queue.POST("/:id/complete", h.Queue.Complete)
		queue.POST("/:id/cancel", h.Queue.Cancel)
	}
}

func registerVisitRoutes(protected *gin.RouterGroup, h *Handlers) {
	visits := protected.Group("/visits")
	visits.Use(middleware.RequireRole("super-admin", "admin", "doctor"))
	{
		visits.GET("", h.Visit.List)
		visits.POST("", h.Visit.Start)
		visits.GET("/:id", h.Visit.Get)
		visits.PUT("/:id", h.Visit.Update)
		visits.POST("/:id/close", h.Visit.Close)
	}
}

func registerLabRoutes(protected *gin.RouterGroup, h *Handlers) {
	lab := protected.Group("/lab-orders")
	{
		lab.GET("", h.Lab.List)
		lab.POST("", h.Lab.Create)
		lab.GET("/:id", h.Lab.Get)
		lab.POST("/:id/cancel", h.Lab.Cancel)
		lab.PUT("/tests/:testId/result", h.Lab.RecordResult)
	}
}

func registerBillingRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	bills := protected.Group("/bills")
	{
		bills.GET("", h.Billing.ListBills)
		bills.POST("", h.Billing.CreateBill)
		bills.GET("/:id", h.Billing.GetBill)
		bills.POST("/:id/services", h.Billing.AddServices)
		// Payment recording uses idempotency middleware to prevent duplicates
		bills.POST("/:id/payments", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Billing.RecordPayment)
	}

	receipts := protected.Group("/receipts")
	{
		receipts.GET("", h.Billing.ListReceipts)
		receipts.GET("/:id", h.Billing.GetReceipt)
		receipts.PUT("/:id/status", middleware.RequireRole("super-admin", "admin"), h.Billing.VoidReceipt)
	}
}

func registerShiftRoutes(protected *gin.RouterGroup, h *Handlers) {
	shifts := protected.Group("/shifts")
	{
		shifts.GET("", h.Shift.List)
		shifts.POST("", h.Shift.Start)
		shifts.GET("/current", h.Shift.Current)
		shifts.GET("/:id", h.Shift.Get)
		shifts.POST("/:id/close", h.Shift.Close)
	}
}

func registerLedgerRoutes(protected *gin.RouterGroup, h *Handlers) {
	accounts := protected.Group("/accounts")
	accounts.Use(middleware.RequirePermission("manage-finance"))
	{
		accounts.GET("", h.Ledger.List)
		accounts.POST("", h.Ledger.Create)
		accounts.GET("/:id", h.Ledger.Get)
		accounts.PUT("/:id", h.Ledger.Update)
		accounts.DELETE("/:id", h.Ledger.Delete)
	}
}

func registerFinanceRoutes(protected *gin.RouterGroup, h *Handlers) {
	finance := protected.Group("")
	finance.Use(middleware.RequirePermission("manage-finance"))
	{
		finance.GET("/expenses", h.Finance.ListExpenses)
		finance.POST("/expenses", h.Finance.RecordExpense)
		finance.GET("/transfers", h.Finance.ListTransfers)
		finance.POST("/transfers", h.Finance.Transfer)
	}
}

func registerPharmacyRoutes(protected *gin.RouterGroup, h *Handlers) {
	medications := protected.Group("/medications")
	medications.Use(middleware.RequirePermission("manage-pharmacy"))
	{
		medications.GET("", h.Pharmacy.ListMedications)
		medications.POST("", h.Pharmacy.CreateMedication)
		medications.GET("/low-stock", h.Pharmacy.LowStock)
		medications.GET("/:id", h.Pharmacy.GetMedication)
		medications.PUT("/:id", h.Pharmacy.UpdateMedication)
		medications.DELETE("/:id", h.Pharmacy.DeleteMedication)
	}

	protected.POST("/dispense", middleware.RequirePermission("manage-pharmacy"), h.Pharmacy.Dispense)
}

func registerSupplierRoutes(protected *gin.RouterGroup, h *Handlers) {
	suppliers := protected.Group("/suppliers")
	suppliers.Use(middleware.RequirePermission("manage-pharmacy"))
	{
		suppliers.GET("", h.Supplier.List)
		suppliers.POST("", h.Supplier.Create)
		suppliers.GET("/:id", h.Supplier.Get)
		suppliers.PUT("/:id", h.Supplier.Update)
		suppliers.DELETE("/:id", h.Supplier.Delete)
	}
}

func registerPurchaseOrderRoutes(protected *gin.RouterGroup, h *Handlers) {
	orders := protected.Group("/purchase-orders")
	orders.Use(middleware.RequirePermission("manage-pharmacy"))
	{
		orders.GET("", h.PurchaseOrder.List)
		orders.POST("", h.PurchaseOrder.Create)
		orders.GET("/:id", h.PurchaseOrder.Get)
		orders.POST("/:id/submit", h.PurchaseOrder.Submit)
		orders.POST("/:id/approve", middleware.RequireRole("super-admin", "admin"), h.PurchaseOrder.Approve)
		orders.POST("/:id/receive", h.PurchaseOrder.Receive)
		orders.POST("/:id/cancel", h.PurchaseOrder.Cancel)
	}
}

func registerReportRoutes(protected *gin.RouterGroup, h *Handlers) {
	reports := protected.Group("/reports")
	reports.Use(middleware.RequirePermission("view-reports"))
	{
		reports.GET("/dashboard", h.Report.Dashboard)
		reports.GET("/receipts", h.Report.ReceiptStats)
		reports.GET("/financial-summary", h.Report.FinancialSummary)
		reports.GET("/demographics", h.Report.Demographics)
		reports.GET("/top-diagnoses", h.Report.TopDiagnoses)
		reports.GET("/top-medications", h.Report.TopMedications)
		reports.GET("/daily-collections", h.Report.DailyCollections)
		reports.GET("/receipts/export", h.Report.ExportReceipts)
	}
}

func registerPrinterRoutes(protected *gin.RouterGroup, h *Handlers) {
	printer := protected.Group("/printer")
	{
		printer.GET("/status", h.Printer.Status)
		printer.POST("/test", h.Printer.TestPrint)
		printer.POST("/receipts/:id", h.Printer.PrintReceipt)
		printer.POST("/shifts/:id", h.Printer.PrintShiftSummary)
	}
}

func registerClinicRoutes(protected *gin.RouterGroup, h *Handlers) {
	clinics := protected.Group("/clinics")
	clinics.Use(middleware.RequireRole("super-admin"))
	{
		clinics.GET("", h.Clinic.List)
		clinics.POST("", h.Clinic.Create)
		clinics.GET("/:id", h.Clinic.Get)
		clinics.PUT("/:id", h.Clinic.Update)
		clinics.DELETE("/:id", h.Clinic.Delete)
	}
}

func registerUserRoutes(protected *gin.RouterGroup, h *Handlers) {
	users := protected.Group("/users")
	users.Use(middleware.RequireRole("super-admin", "admin"))
	{
		users.GET("", h.User.List)
		users.POST("", h.User.Create)
		users.GET("/:id", h.User.Get)
		users.PUT("/:id", h.User.Update)
		users.DELETE("/:id", h.User.Delete)
		users.POST("/:id/roles", h.User.AssignRole)
		users.DELETE("/:id/roles", h.User.RemoveRole)
	}

	protected.GET("/roles", middleware.RequireRole("super-admin", "admin"), h.User.Roles)
}
