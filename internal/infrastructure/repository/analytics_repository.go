package repository

import (
	"context"
	"time"

	"github.com/afyacare/hms-api/internal/domain/enum"
	domainRepo "github.com/afyacare/hms-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) domainRepo.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).WithContext(ctx)
}

func (r *analyticsRepository) GetDashboardCounts(ctx context.Context, now time.Time) (*domainRepo.DashboardCounts, error) {
	clinicID, _ := GetClinicID(ctx)
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	endOfDay := startOfDay.Add(24 * time.Hour)

	var counts domainRepo.DashboardCounts

	err := r.conn(ctx).Raw(`
		SELECT
			(SELECT COUNT(*) FROM patients WHERE clinic_id = ? AND deleted_at IS NULL) AS patients_total,
			(SELECT COUNT(*) FROM patients WHERE clinic_id = ? AND deleted_at IS NULL AND created_at >= ? AND created_at < ?) AS patients_today,
			(SELECT COUNT(*) FROM queue_entries WHERE clinic_id = ? AND status = ? AND queue_date = ?) AS queue_waiting,
			(SELECT COUNT(*) FROM visits WHERE clinic_id = ? AND deleted_at IS NULL AND status = ?) AS visits_open,
			(SELECT COUNT(*) FROM patient_bills WHERE clinic_id = ? AND deleted_at IS NULL AND status = ?) AS bills_pending,
			(SELECT COUNT(*) FROM patient_bills WHERE clinic_id = ? AND deleted_at IS NULL AND status = ?) AS bills_partial,
			(SELECT COALESCE(SUM(balance_amount), 0) FROM patient_bills WHERE clinic_id = ? AND deleted_at IS NULL) AS outstanding_balance,
			(SELECT COALESCE(SUM(payment_amount), 0) FROM receipts WHERE clinic_id = ? AND deleted_at IS NULL AND status = ? AND payment_date >= ? AND payment_date < ?) AS collected_today,
			(SELECT COUNT(*) FROM receipts WHERE clinic_id = ? AND deleted_at IS NULL AND status = ? AND payment_date >= ? AND payment_date < ?) AS receipts_today,
			(SELECT COUNT(*) FROM medications WHERE clinic_id = ? AND deleted_at IS NULL AND quantity <= quantity_alert) AS low_stock_medications
	`,
		clinicID,
		clinicID, startOfDay, endOfDay,
		clinicID, enum.QueueStatusWaiting, startOfDay,
		clinicID, enum.VisitStatusOpen,
		clinicID, enum.BillStatusPending,
		clinicID, enum.BillStatusPartial,
		clinicID,
		clinicID, enum.ReceiptStatusActive, startOfDay, endOfDay,
		clinicID, enum.ReceiptStatusActive, startOfDay, endOfDay,
		clinicID,
	).Scan(&counts).Error

	if err != nil {
		return nil, err
	}
	return &counts, nil
}

func (r *analyticsRepository) GetReceiptTotalsByMethod(ctx context.Context, from, to time.Time) ([]domainRepo.MethodTotalResult, error) {
	clinicID, _ := GetClinicID(ctx)
	var results []domainRepo.MethodTotalResult

	err := r.conn(ctx).Raw(`
		SELECT
			payment_method,
			COALESCE(SUM(payment_amount), 0) AS total,
			COUNT(*) AS count
		FROM receipts
		WHERE clinic_id = ? AND deleted_at IS NULL AND status = ?
		AND payment_date >= ? AND payment_date < ?
		GROUP BY payment_method
		ORDER BY total DESC
	`, clinicID, enum.ReceiptStatusActive, from, to).Scan(&results).Error

	return results, err
}

func (r *analyticsRepository) GetReceiptTotalsByStatus(ctx context.Context, from, to time.Time) ([]domainRepo.StatusTotalResult, error) {
	clinicID, _ := GetClinicID(ctx)

	var rows []struct {
		Status enum.ReceiptStatus
		Total  decimal.Decimal
		Count  int64
	}

	err := r.conn(ctx).Raw(`
		SELECT
			status,
			COALESCE(SUM(payment_amount), 0) AS total,
			COUNT(*) AS count
		FROM receipts
		WHERE clinic_id = ? AND deleted_at IS NULL
		AND payment_date >= ? AND payment_date < ?
		GROUP BY status
	`, clinicID, from, to).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	results := make([]domainRepo.StatusTotalResult, 0, len(rows))
	for _, row := range rows {
		results = append(results, domainRepo.StatusTotalResult{
			Status: row.Status.String(),
			Total:  row.Total,
			Count:  row.Count,
		})
	}
	return results, nil
}

func (r *analyticsRepository) GetDailyCollections(ctx context.Context, days int) ([]domainRepo.DailyCollectionResult, error) {
	clinicID, _ := GetClinicID(ctx)
	results := make([]domainRepo.DailyCollectionResult, 0, days)
	now := time.Now()

	for i := days - 1; i >= 0; i-- {
		date := now.AddDate(0, 0, -i)
		startOfDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
		endOfDay := startOfDay.Add(24 * time.Hour)

		var row struct {
			Total decimal.Decimal
			Count int64
		}
		err := r.conn(ctx).Raw(`
			SELECT COALESCE(SUM(payment_amount), 0) AS total, COUNT(*) AS count
			FROM receipts
			WHERE clinic_id = ? AND deleted_at IS NULL AND status = ?
			AND payment_date >= ? AND payment_date < ?
		`, clinicID, enum.ReceiptStatusActive, startOfDay, endOfDay).Scan(&row).Error
		if err != nil {
			return nil, err
		}

		results = append(results, domainRepo.DailyCollectionResult{
			Date:  startOfDay,
			Total: row.Total,
			Count: row.Count,
		})
	}

	return results, nil
}

func (r *analyticsRepository) GetPatientsByGender(ctx context.Context) ([]domainRepo.GenderCountResult, error) {
	clinicID, _ := GetClinicID(ctx)
	var results []domainRepo.GenderCountResult

	err := r.conn(ctx).Raw(`
		SELECT COALESCE(gender, 'unknown') AS gender, COUNT(*) AS count
		FROM patients
		WHERE clinic_id = ? AND deleted_at IS NULL
		GROUP BY gender
		ORDER BY count DESC
	`, clinicID).Scan(&results).Error

	return results, err
}

func (r *analyticsRepository) GetPatientsByAgeBand(ctx context.Context, now time.Time) ([]domainRepo.AgeBandCountResult, error) {
	clinicID, _ := GetClinicID(ctx)
	var results []domainRepo.AgeBandCountResult

	err := r.conn(ctx).Raw(`
		SELECT band, COUNT(*) AS count FROM (
			SELECT CASE
				WHEN date_of_birth > ? THEN '0-17'
				WHEN date_of_birth > ? THEN '18-35'
				WHEN date_of_birth > ? THEN '36-55'
				ELSE '56+'
			END AS band
			FROM patients
			WHERE clinic_id = ? AND deleted_at IS NULL AND date_of_birth IS NOT NULL
		) banded
		GROUP BY band
		ORDER BY band ASC
	`,
		now.AddDate(-18, 0, 0),
		now.AddDate(-36, 0, 0),
		now.AddDate(-56, 0, 0),
		clinicID,
	).Scan(&results).Error

	return results, err
}

func (r *analyticsRepository) GetTopDiagnoses(ctx context.Context, limit int) ([]domainRepo.TopDiagnosisResult, error) {
	clinicID, _ := GetClinicID(ctx)
	var results []domainRepo.TopDiagnosisResult

	err := r.conn(ctx).Raw(`
		SELECT diagnosis, COUNT(*) AS count
		FROM visits
		WHERE clinic_id = ? AND deleted_at IS NULL AND status = ?
		AND diagnosis IS NOT NULL AND diagnosis != ''
		GROUP BY diagnosis
		ORDER BY count DESC
		LIMIT ?
	`, clinicID, enum.VisitStatusClosed, limit).Scan(&results).Error

	return results, err
}

// GetTopMedications aggregates pharmacy lines on patient bills.
func (r *analyticsRepository) GetTopMedications(ctx context.Context, limit int) ([]domainRepo.TopMedicationResult, error) {
	clinicID, _ := GetClinicID(ctx)
	var results []domainRepo.TopMedicationResult

	err := r.conn(ctx).Raw(`
		SELECT
			bs.service_name AS medication_name,
			COALESCE(SUM(bs.quantity), 0) AS quantity_sold,
			COALESCE(SUM(bs.total_price), 0) AS revenue
		FROM bill_services bs
		JOIN patient_bills pb ON pb.id = bs.bill_id
		WHERE pb.clinic_id = ? AND pb.deleted_at IS NULL AND bs.department = 'pharmacy'
		GROUP BY bs.service_name
		ORDER BY quantity_sold DESC
		LIMIT ?
	`, clinicID, limit).Scan(&results).Error

	return results, err
}

func (r *analyticsRepository) GetTotalCollected(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	clinicID, _ := GetClinicID(ctx)
	var total decimal.Decimal

	err := r.conn(ctx).Raw(`
		SELECT COALESCE(SUM(payment_amount), 0)
		FROM receipts
		WHERE clinic_id = ? AND deleted_at IS NULL AND status = ?
		AND payment_date >= ? AND payment_date < ?
	`, clinicID, enum.ReceiptStatusActive, from, to).Scan(&total).Error

	return total, err
}

func (r *analyticsRepository) GetTotalExpenses(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	clinicID, _ := GetClinicID(ctx)
	var total decimal.Decimal

	err := r.conn(ctx).Raw(`
		SELECT COALESCE(SUM(amount), 0)
		FROM expenses
		WHERE clinic_id = ? AND deleted_at IS NULL
		AND expense_date >= ? AND expense_date < ?
	`, clinicID, from, to).Scan(&total).Error

	return total, err
}
