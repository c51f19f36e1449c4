package service

import (
	"context"
	"time"

	"github.com/afyacare/hms-api/internal/domain/repository"
	"github.com/afyacare/hms-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// ReportService provides dashboard and reporting rollups
type ReportService struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewReportService creates a new report service
func NewReportService(analyticsRepo repository.AnalyticsRepository) *ReportService {
	return &ReportService{analyticsRepo: analyticsRepo}
}

// DashboardStats represents headline statistics for the dashboard
type DashboardStats struct {
	TotalPatients       int64           `json:"total_patients"`
	PatientsToday       int64           `json:"patients_today"`
	QueueWaiting        int64           `json:"queue_waiting"`
	OpenVisits          int64           `json:"open_visits"`
	PendingBills        int64           `json:"pending_bills"`
	PartialBills        int64           `json:"partial_bills"`
	OutstandingBalance  decimal.Decimal `json:"outstanding_balance"`
	CollectedToday      decimal.Decimal `json:"collected_today"`
	ReceiptsToday       int64           `json:"receipts_today"`
	LowStockMedications int64           `json:"low_stock_medications"`
	DailyCollections    []DailyPoint    `json:"daily_collections"`
}

// DailyPoint represents one day's collections
type DailyPoint struct {
	Date   string          `json:"date"`
	Amount decimal.Decimal `json:"amount"`
	Count  int64           `json:"count"`
}

// MethodBreakdown represents collections for a single payment method
type MethodBreakdown struct {
	Method string          `json:"method"`
	Total  decimal.Decimal `json:"total"`
	Count  int64           `json:"count"`
}

// StatusBreakdown represents receipt totals for a single status
type StatusBreakdown struct {
	Status string          `json:"status"`
	Total  decimal.Decimal `json:"total"`
	Count  int64           `json:"count"`
}

// ReceiptStats represents receipt totals for a reporting period
type ReceiptStats struct {
	Period   string            `json:"period"`
	From     time.Time         `json:"from"`
	To       time.Time         `json:"to"`
	Total    decimal.Decimal   `json:"total"`
	ByMethod []MethodBreakdown `json:"by_method"`
	ByStatus []StatusBreakdown `json:"by_status"`
}

// FinancialSummary represents collections versus expenses for a window
type FinancialSummary struct {
	From      time.Time       `json:"from"`
	To        time.Time       `json:"to"`
	Collected decimal.Decimal `json:"collected"`
	Expenses  decimal.Decimal `json:"expenses"`
	Net       decimal.Decimal `json:"net"`
}

// GenderPoint represents patient counts for one gender
type GenderPoint struct {
	Gender string `json:"gender"`
	Count  int64  `json:"count"`
}

// AgeBandPoint represents patient counts for one age band
type AgeBandPoint struct {
	Band  string `json:"band"`
	Count int64  `json:"count"`
}

// Demographics represents the patient demographics rollup
type Demographics struct {
	ByGender  []GenderPoint  `json:"by_gender"`
	ByAgeBand []AgeBandPoint `json:"by_age_band"`
}

// DiagnosisPoint represents one diagnosis and its frequency
type DiagnosisPoint struct {
	Diagnosis string `json:"diagnosis"`
	Count     int64  `json:"count"`
}

// MedicationPoint represents one medication's dispensing volume
type MedicationPoint struct {
	Name         string          `json:"name"`
	QuantitySold int64           `json:"quantity_sold"`
	Revenue      decimal.Decimal `json:"revenue"`
}

// GetDashboardStats returns headline numbers plus the last 7 days of collections
func (s *ReportService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	now := time.Now()

	counts, err := s.analyticsRepo.GetDashboardCounts(ctx, now)
	if err != nil {
		return nil, err
	}

	daily, err := s.analyticsRepo.GetDailyCollections(ctx, 7)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		TotalPatients:       counts.PatientsTotal,
		PatientsToday:       counts.PatientsToday,
		QueueWaiting:        counts.QueueWaiting,
		OpenVisits:          counts.VisitsOpen,
		PendingBills:        counts.BillsPending,
		PartialBills:        counts.BillsPartial,
		OutstandingBalance:  counts.OutstandingBalance,
		CollectedToday:      counts.CollectedToday,
		ReceiptsToday:       counts.ReceiptsToday,
		LowStockMedications: counts.LowStockMedications,
		DailyCollections:    make([]DailyPoint, 0, len(daily)),
	}

	for _, d := range daily {
		stats.DailyCollections = append(stats.DailyCollections, DailyPoint{
			Date:   d.Date.Format("2006-01-02"),
			Amount: d.Total,
			Count:  d.Count,
		})
	}

	return stats, nil
}

// periodWindow resolves a named reporting period to a concrete time window
func periodWindow(period string, now time.Time) (time.Time, time.Time, error) {
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch period {
	case "", "today":
		return startOfDay, now, nil
	case "week":
		return startOfDay.AddDate(0, 0, -6), now, nil
	case "month":
		return startOfDay.AddDate(0, -1, 0), now, nil
	default:
		return time.Time{}, time.Time{}, apperror.NewBadRequestError("Invalid period: must be today, week or month")
	}
}

// GetReceiptStats returns receipt totals for a named period, broken down
// by payment method and by status.
func (s *ReportService) GetReceiptStats(ctx context.Context, period string) (*ReceiptStats, error) {
	now := time.Now()
	from, to, err := periodWindow(period, now)
	if err != nil {
		return nil, err
	}
	if period == "" {
		period = "today"
	}

	total, err := s.analyticsRepo.GetTotalCollected(ctx, from, to)
	if err != nil {
		return nil, err
	}

	byMethod, err := s.analyticsRepo.GetReceiptTotalsByMethod(ctx, from, to)
	if err != nil {
		return nil, err
	}

	byStatus, err := s.analyticsRepo.GetReceiptTotalsByStatus(ctx, from, to)
	if err != nil {
		return nil, err
	}

	stats := &ReceiptStats{
		Period:   period,
		From:     from,
		To:       to,
		Total:    total,
		ByMethod: make([]MethodBreakdown, 0, len(byMethod)),
		ByStatus: make([]StatusBreakdown, 0, len(byStatus)),
	}
	for _, m := range byMethod {
		stats.ByMethod = append(stats.ByMethod, MethodBreakdown{
			Method: m.PaymentMethod,
			Total:  m.Total,
			Count:  m.Count,
		})
	}
	for _, st := range byStatus {
		stats.ByStatus = append(stats.ByStatus, StatusBreakdown{
			Status: st.Status,
			Total:  st.Total,
			Count:  st.Count,
		})
	}

	return stats, nil
}

// GetFinancialSummary returns collections versus expenses for a window
func (s *ReportService) GetFinancialSummary(ctx context.Context, from, to time.Time) (*FinancialSummary, error) {
	if to.IsZero() {
		to = time.Now()
	}
	if from.IsZero() {
		from = to.AddDate(0, -1, 0)
	}
	if from.After(to) {
		return nil, apperror.NewBadRequestError("Start date must be before end date")
	}

	collected, err := s.analyticsRepo.GetTotalCollected(ctx, from, to)
	if err != nil {
		return nil, err
	}

	expenses, err := s.analyticsRepo.GetTotalExpenses(ctx, from, to)
	if err != nil {
		return nil, err
	}

	return &FinancialSummary{
		From:      from,
		To:        to,
		Collected: collected,
		Expenses:  expenses,
		Net:       collected.Sub(expenses),
	}, nil
}

// GetDemographics returns patient counts by gender and age band
func (s *ReportService) GetDemographics(ctx context.Context) (*Demographics, error) {
	byGender, err := s.analyticsRepo.GetPatientsByGender(ctx)
	if err != nil {
		return nil, err
	}

	byAge, err := s.analyticsRepo.GetPatientsByAgeBand(ctx, time.Now())
	if err != nil {
		return nil, err
	}

	demo := &Demographics{
		ByGender:  make([]GenderPoint, 0, len(byGender)),
		ByAgeBand: make([]AgeBandPoint, 0, len(byAge)),
	}
	for _, g := range byGender {
		demo.ByGender = append(demo.ByGender, GenderPoint{Gender: g.Gender, Count: g.Count})
	}
	for _, a := range byAge {
		demo.ByAgeBand = append(demo.ByAgeBand, AgeBandPoint{Band: a.Band, Count: a.Count})
	}

	return demo, nil
}

// GetTopDiagnoses returns the most frequent diagnoses from closed visits
func (s *ReportService) GetTopDiagnoses(ctx context.Context, limit int) ([]DiagnosisPoint, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	results, err := s.analyticsRepo.GetTopDiagnoses(ctx, limit)
	if err != nil {
		return nil, err
	}

	points := make([]DiagnosisPoint, 0, len(results))
	for _, r := range results {
		points = append(points, DiagnosisPoint{Diagnosis: r.Diagnosis, Count: r.Count})
	}
	return points, nil
}

// GetTopMedications returns the most dispensed medications by quantity
func (s *ReportService) GetTopMedications(ctx context.Context, limit int) ([]MedicationPoint, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	results, err := s.analyticsRepo.GetTopMedications(ctx, limit)
	if err != nil {
		return nil, err
	}

	points := make([]MedicationPoint, 0, len(results))
	for _, r := range results {
		points = append(points, MedicationPoint{
			Name:         r.MedicationName,
			QuantitySold: r.QuantitySold,
			Revenue:      r.Revenue,
		})
	}
	return points, nil
}

// GetDailyCollections returns per-day collection totals for the last N days
func (s *ReportService) GetDailyCollections(ctx context.Context, days int) ([]DailyPoint, error) {
	if days <= 0 || days > 90 {
		days = 30
	}

	results, err := s.analyticsRepo.GetDailyCollections(ctx, days)
	if err != nil {
		return nil, err
	}

	points := make([]DailyPoint, 0, len(results))
	for _, r := range results {
		points = append(points, DailyPoint{
			Date:   r.Date.Format("2006-01-02"),
			Amount: r.Total,
			Count:  r.Count,
		})
	}
	return points, nil
}
