package main

import (
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/afyacare/hms-api/internal/application/service"
	"github.com/afyacare/hms-api/internal/config"
	"github.com/afyacare/hms-api/internal/infrastructure/database"
	"github.com/afyacare/hms-api/internal/infrastructure/repository"
	"github.com/afyacare/hms-api/internal/presentation/http/handler"
	"github.com/afyacare/hms-api/internal/presentation/http/routes"
	"github.com/afyacare/hms-api/pkg/printer"
	"github.com/afyacare/hms-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set up structured logging
	zerolog.TimeFieldFormat = time.RFC3339
	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", cfg.App.Name).Logger()
	if cfg.App.Debug {
		logger = logger.Level(zerolog.DebugLevel).Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		logger.Warn().Err(err).Msg("failed to seed default data")
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	clinicRepo := repository.NewClinicRepository(db)
	patientRepo := repository.NewPatientRepository(db)
	queueRepo := repository.NewQueueRepository(db)
	visitRepo := repository.NewVisitRepository(db)
	labOrderRepo := repository.NewLabOrderRepository(db)
	labTestRepo := repository.NewLabTestRepository(db)
	billRepo := repository.NewBillRepository(db)
	billServiceRepo := repository.NewBillServiceRepository(db)
	receiptRepo := repository.NewReceiptRepository(db)
	shiftRepo := repository.NewShiftRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	transferRepo := repository.NewCashTransferRepository(db)
	medicationRepo := repository.NewMedicationRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	purchaseOrderRepo := repository.NewPurchaseOrderRepository(db)
	purchaseOrderItemRepo := repository.NewPurchaseOrderItemRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	txManager := repository.NewTxManager(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	userService := service.NewUserService(userRepo, roleRepo)
	clinicService := service.NewClinicService(clinicRepo, db)
	patientService := service.NewPatientService(patientRepo)
	queueService := service.NewQueueService(queueRepo, patientRepo)
	billingService := service.NewBillingService(billRepo, billServiceRepo, receiptRepo, shiftRepo, ledgerRepo, patientRepo, txManager, logger)
	visitService := service.NewVisitService(visitRepo, patientRepo, queueRepo, billingService, logger)
	labService := service.NewLabService(labOrderRepo, labTestRepo, patientRepo, billingService, txManager)
	shiftService := service.NewShiftService(shiftRepo, receiptRepo)
	ledgerService := service.NewLedgerService(ledgerRepo, txManager)
	financeService := service.NewFinanceService(expenseRepo, transferRepo, ledgerRepo, txManager)
	pharmacyService := service.NewPharmacyService(medicationRepo, billingService)
	supplierService := service.NewSupplierService(supplierRepo)
	purchaseOrderService := service.NewPurchaseOrderService(purchaseOrderRepo, purchaseOrderItemRepo, supplierRepo, medicationRepo, txManager)
	reportService := service.NewReportService(analyticsRepo)
	exportService := service.NewExportService(receiptRepo)

	// Initialize thermal printer
	thermalPrinter, err := printer.NewPrinterFromConfig(
		cfg.Printer.Type,
		cfg.Printer.USBPath,
		cfg.Printer.Address,
	)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to initialize printer")
		thermalPrinter = printer.NewNullPrinter()
	}
	printerService := service.NewPrinterService(thermalPrinter, receiptRepo, shiftRepo, clinicRepo, cfg.Printer.Type, logger)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:          handler.NewAuthHandler(authService),
		Patient:       handler.NewPatientHandler(patientService),
		Queue:         handler.NewQueueHandler(queueService),
		Visit:         handler.NewVisitHandler(visitService),
		Lab:           handler.NewLabHandler(labService),
		Billing:       handler.NewBillingHandler(billingService),
		Shift:         handler.NewShiftHandler(shiftService),
		Ledger:        handler.NewLedgerHandler(ledgerService),
		Pharmacy:      handler.NewPharmacyHandler(pharmacyService),
		Supplier:      handler.NewSupplierHandler(supplierService),
		PurchaseOrder: handler.NewPurchaseOrderHandler(purchaseOrderService),
		Finance:       handler.NewFinanceHandler(financeService),
		Report:        handler.NewReportHandler(reportService, exportService),
		Printer:       handler.NewPrinterHandler(printerService),
		Clinic:        handler.NewClinicHandler(clinicService),
		User:          handler.NewUserHandler(userService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		Logger:          logger,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	logger.Info().Str("port", port).Str("env", cfg.App.Env).Msg("starting server")

	if err := router.Run(":" + port); err != nil {
		logger.Fatal().Err(err).Msg("failed to start server")
	}
}
