package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// MethodTotalResult aggregates receipts by payment method
type MethodTotalResult struct {
	PaymentMethod string
	Total         decimal.Decimal
	Count         int64
}

// StatusTotalResult aggregates receipts by status
type StatusTotalResult struct {
	Status string
	Total  decimal.Decimal
	Count  int64
}

// DailyCollectionResult represents money collected on a single day
type DailyCollectionResult struct {
	Date  time.Time
	Total decimal.Decimal
	Count int64
}

// GenderCountResult aggregates patients by gender
type GenderCountResult struct {
	Gender string
	Count  int64
}

// AgeBandCountResult aggregates patients into age bands
type AgeBandCountResult struct {
	Band  string
	Count int64
}

// TopDiagnosisResult represents a diagnosis frequency rollup from closed visits
type TopDiagnosisResult struct {
	Diagnosis string
	Count     int64
}

// TopMedicationResult represents a medication's dispensing volume, taken
// from pharmacy lines on patient bills
type TopMedicationResult struct {
	MedicationName string
	QuantitySold   int64
	Revenue        decimal.Decimal
}

// DashboardCounts carries the headline numbers for the dashboard
type DashboardCounts struct {
	PatientsTotal       int64
	PatientsToday       int64
	QueueWaiting        int64
	VisitsOpen          int64
	BillsPending        int64
	BillsPartial        int64
	OutstandingBalance  decimal.Decimal
	CollectedToday      decimal.Decimal
	ReceiptsToday       int64
	LowStockMedications int64
}

// AnalyticsRepository defines interface for reporting/aggregation queries
type AnalyticsRepository interface {
	// GetDashboardCounts returns the headline dashboard numbers for a clinic
	GetDashboardCounts(ctx context.Context, now time.Time) (*DashboardCounts, error)

	// GetReceiptTotalsByMethod aggregates active receipts by payment method in a window
	GetReceiptTotalsByMethod(ctx context.Context, from, to time.Time) ([]MethodTotalResult, error)

	// GetReceiptTotalsByStatus aggregates receipts by status in a window
	GetReceiptTotalsByStatus(ctx context.Context, from, to time.Time) ([]StatusTotalResult, error)

	// GetDailyCollections returns per-day collection totals for the last N days
	GetDailyCollections(ctx context.Context, days int) ([]DailyCollectionResult, error)

	// GetPatientsByGender returns patient counts grouped by gender
	GetPatientsByGender(ctx context.Context) ([]GenderCountResult, error)

	// GetPatientsByAgeBand returns patient counts grouped into age bands
	GetPatientsByAgeBand(ctx context.Context, now time.Time) ([]AgeBandCountResult, error)

	// GetTopDiagnoses returns the most frequent diagnoses from closed visits
	GetTopDiagnoses(ctx context.Context, limit int) ([]TopDiagnosisResult, error)

	// GetTopMedications returns the most dispensed medications by quantity
	GetTopMedications(ctx context.Context, limit int) ([]TopMedicationResult, error)

	// GetTotalCollected returns the sum of active receipts in a window
	GetTotalCollected(ctx context.Context, from, to time.Time) (decimal.Decimal, error)

	// GetTotalExpenses returns the sum of expenses in a window
	GetTotalExpenses(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
}
