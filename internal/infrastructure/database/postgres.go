package database

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/afyacare/hms-api/internal/config"
	"github.com/afyacare/hms-api/internal/domain/entity"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Warn

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Info().Msg("connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Info().Msg("running database migrations")

	err := db.AutoMigrate(
		// Identity entities
		&entity.Clinic{},
		&entity.User{},
		&entity.Role{},
		&entity.Permission{},

		// Patient flow entities
		&entity.Patient{},
		&entity.QueueEntry{},
		&entity.Visit{},
		&entity.LabOrder{},
		&entity.LabTest{},

		// Billing entities
		&entity.PatientBill{},
		&entity.BillService{},
		&entity.Receipt{},
		&entity.CashierShift{},

		// Finance entities
		&entity.LedgerAccount{},
		&entity.Expense{},
		&entity.CashTransfer{},

		// Pharmacy entities
		&entity.Medication{},
		&entity.Supplier{},
		&entity.PurchaseOrder{},
		&entity.PurchaseOrderItem{},

		// System entities
		&entity.IdempotencyKey{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info().Msg("database migrations completed")
	return nil
}

// SeedDefaultData seeds the database with default data (roles, permissions, admin user)
func SeedDefaultData(db *gorm.DB) error {
	log.Info().Msg("seeding default data")

	// Create default permissions
	permissions := []entity.Permission{
		{Name: "view-dashboard", GuardName: "web"},
		{Name: "manage-patients", GuardName: "web"},
		{Name: "manage-queue", GuardName: "web"},
		{Name: "manage-visits", GuardName: "web"},
		{Name: "manage-lab", GuardName: "web"},
		{Name: "manage-billing", GuardName: "web"},
		{Name: "record-payments", GuardName: "web"},
		{Name: "void-receipts", GuardName: "web"},
		{Name: "manage-shifts", GuardName: "web"},
		{Name: "manage-ledger", GuardName: "web"},
		{Name: "manage-expenses", GuardName: "web"},
		{Name: "manage-pharmacy", GuardName: "web"},
		{Name: "manage-purchases", GuardName: "web"},
		{Name: "approve-purchases", GuardName: "web"},
		{Name: "manage-users", GuardName: "web"},
		{Name: "view-reports", GuardName: "web"},
	}

	for i := range permissions {
		var existing entity.Permission
		if err := db.Where("name = ?", permissions[i].Name).First(&existing).Error; err != nil {
			if err := db.Create(&permissions[i]).Error; err != nil {
				log.Warn().Err(err).Str("permission", permissions[i].Name).Msg("failed to create permission")
			}
		}
	}

	// Reload permissions with IDs
	var allPermissions []entity.Permission
	db.Find(&allPermissions)

	pickPermissions := func(names []string) []entity.Permission {
		var picked []entity.Permission
		for _, name := range names {
			for _, p := range allPermissions {
				if p.Name == name {
					picked = append(picked, p)
					break
				}
			}
		}
		return picked
	}

	ensureRole := func(name string, perms []entity.Permission) {
		var role entity.Role
		if err := db.Where("name = ?", name).First(&role).Error; err != nil {
			role = entity.Role{
				Name:        name,
				GuardName:   "web",
				Permissions: perms,
			}
			if err := db.Create(&role).Error; err != nil {
				log.Warn().Err(err).Str("role", name).Msg("failed to create role")
			}
		}
	}

	ensureRole("super-admin", allPermissions)
	ensureRole("admin", allPermissions)
	ensureRole("doctor", pickPermissions([]string{
		"view-dashboard",
		"manage-patients",
		"manage-queue",
		"manage-visits",
		"manage-lab",
	}))
	ensureRole("cashier", pickPermissions([]string{
		"view-dashboard",
		"manage-billing",
		"record-payments",
		"manage-shifts",
	}))
	ensureRole("pharmacist", pickPermissions([]string{
		"view-dashboard",
		"manage-pharmacy",
		"manage-purchases",
	}))
	ensureRole("receptionist", pickPermissions([]string{
		"view-dashboard",
		"manage-patients",
		"manage-queue",
	}))

	// Create super admin user if configured via environment variables
	adminEmail := viper.GetString("ADMIN_EMAIL")
	adminPassword := viper.GetString("ADMIN_PASSWORD")
	adminName := viper.GetString("ADMIN_NAME")

	if adminEmail != "" && adminPassword != "" {
		var existingAdmin entity.User
		if err := db.Where("email = ?", adminEmail).First(&existingAdmin).Error; err != nil {
			hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
			if err != nil {
				log.Warn().Err(err).Msg("failed to hash admin password")
			} else {
				var saRole entity.Role
				if err := db.Where("name = ?", "super-admin").First(&saRole).Error; err == nil {
					if adminName == "" {
						adminName = "Super Admin"
					}
					firstName := adminName
					lastName := ""
					for i, c := range adminName {
						if c == ' ' {
							firstName = adminName[:i]
							lastName = adminName[i+1:]
							break
						}
					}
					adminUser := entity.User{
						ID:        uuid.New(),
						FirstName: firstName,
						LastName:  lastName,
						Email:     adminEmail,
						Password:  string(hashedPassword),
						Roles:     []entity.Role{saRole},
					}
					if err := db.Create(&adminUser).Error; err != nil {
						log.Warn().Err(err).Msg("failed to create super admin user")
					} else {
						log.Info().Str("email", adminEmail).Msg("super admin user created")
					}
				}
			}
		} else {
			log.Info().Str("email", adminEmail).Msg("super admin user already exists")
		}
	}

	log.Info().Msg("default data seeding completed")
	return nil
}

// SeedChartOfAccounts creates the default ledger accounts for a clinic if
// they do not exist yet. Code "01" is the top-level Cash account and code
// "3" is the Cash at Hand sub-account payments post into.
func SeedChartOfAccounts(db *gorm.DB, clinicID uuid.UUID) error {
	var cash entity.LedgerAccount
	err := db.Where("clinic_id = ? AND account_code = ?", clinicID, "01").
		Order("created_at ASC").
		First(&cash).Error
	if err != nil {
		cash = entity.LedgerAccount{
			ClinicID:    clinicID,
			AccountCode: "01",
			AccountName: "Cash",
			AccountType: "asset",
			IsActive:    true,
		}
		if err := db.Create(&cash).Error; err != nil {
			return fmt.Errorf("failed to seed cash account: %w", err)
		}
	}

	var cashAtHand entity.LedgerAccount
	err = db.Where("clinic_id = ? AND account_code = ?", clinicID, "3").
		Order("created_at ASC").
		First(&cashAtHand).Error
	if err != nil {
		cashAtHand = entity.LedgerAccount{
			ClinicID:    clinicID,
			AccountCode: "3",
			AccountName: "Cash at Hand",
			AccountType: "asset",
			ParentID:    &cash.ID,
			IsActive:    true,
		}
		if err := db.Create(&cashAtHand).Error; err != nil {
			return fmt.Errorf("failed to seed cash at hand account: %w", err)
		}
	}

	return nil
}
