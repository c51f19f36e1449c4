package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afyacare/hms-api/internal/domain/entity"
	"github.com/afyacare/hms-api/internal/domain/enum"
)

type visitFixture struct {
	svc       *VisitService
	billing   *BillingService
	queueRepo *fakeQueueRepo
	actor     entity.Actor
	patient   *entity.Patient
}

func setupVisitTest(t *testing.T) *visitFixture {
	t.Helper()
	serviceRepo := newFakeBillServiceRepo()
	billRepo := newFakeBillRepo(serviceRepo)
	patientRepo := newFakePatientRepo()
	queueRepo := newFakeQueueRepo()
	billing := NewBillingService(billRepo, serviceRepo, newFakeReceiptRepo(), newFakeShiftRepo(), newFakeLedgerRepo(), patientRepo, fakeTxManager{}, zerolog.Nop())
	svc := NewVisitService(newFakeVisitRepo(), patientRepo, queueRepo, billing, zerolog.Nop())

	actor := entity.Actor{ID: uuid.New(), Name: "Dr. Amina Hassan", ClinicID: uuid.New(), Roles: []string{"doctor"}}
	patient := &entity.Patient{
		ID:        uuid.New(),
		ClinicID:  actor.ClinicID,
		MRN:       "PT-2026-00011",
		FirstName: "John",
		LastName:  "Otieno",
		Gender:    "male",
	}
	require.NoError(t, patientRepo.Create(context.Background(), patient))

	return &visitFixture{svc: svc, billing: billing, queueRepo: queueRepo, actor: actor, patient: patient}
}

func TestStartVisit(t *testing.T) {
	f := setupVisitTest(t)
	ctx := context.Background()

	visit, err := f.svc.StartVisit(ctx, f.actor, &StartVisitInput{
		PatientID: f.patient.ID,
		Complaint: "persistent headache",
	})
	require.NoError(t, err)
	assert.Equal(t, enum.VisitStatusOpen, visit.Status)
	assert.Equal(t, f.actor.ID, visit.DoctorID)
	assert.Equal(t, "persistent headache", visit.Complaint)

	t.Run("one open visit per patient", func(t *testing.T) {
		_, err := f.svc.StartVisit(ctx, f.actor, &StartVisitInput{PatientID: f.patient.ID})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already has an open visit")
	})

	t.Run("unknown patient", func(t *testing.T) {
		_, err := f.svc.StartVisit(ctx, f.actor, &StartVisitInput{PatientID: uuid.New()})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Patient")
	})
}

func TestStartVisitFromQueue(t *testing.T) {
	f := setupVisitTest(t)
	ctx := context.Background()

	entry := &entity.QueueEntry{
		ClinicID:  f.actor.ClinicID,
		PatientID: f.patient.ID,
		Status:    enum.QueueStatusWaiting,
	}
	require.NoError(t, f.queueRepo.Create(ctx, entry))

	_, err := f.svc.StartVisit(ctx, f.actor, &StartVisitInput{
		PatientID: f.patient.ID,
		QueueID:   &entry.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, enum.QueueStatusInProgress, entry.Status)
}

func TestCloseVisit(t *testing.T) {
	f := setupVisitTest(t)
	ctx := context.Background()

	visit, err := f.svc.StartVisit(ctx, f.actor, &StartVisitInput{PatientID: f.patient.ID})
	require.NoError(t, err)

	closed, err := f.svc.CloseVisit(ctx, f.actor, visit.ID, []ServiceInput{
		{ServiceName: "Consultation", Department: "opd", Quantity: 1, UnitPrice: decimal.NewFromInt(60)},
	})
	require.NoError(t, err)
	assert.Equal(t, enum.VisitStatusClosed, closed.Status)
	require.NotNil(t, closed.ClosedAt)

	// Charges landed on a fresh bill
	bill, err := f.billing.FindActiveBill(ctx, f.patient.ID)
	require.NoError(t, err)
	assert.True(t, bill.TotalAmount.Equal(decimal.NewFromInt(60)))

	t.Run("already closed", func(t *testing.T) {
		_, err := f.svc.CloseVisit(ctx, f.actor, visit.ID, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already closed")
	})
}

func TestCloseVisitAppendsToExistingBill(t *testing.T) {
	f := setupVisitTest(t)
	ctx := context.Background()

	existing, err := f.billing.CreateBill(ctx, f.actor, &CreateBillInput{
		PatientID: f.patient.ID,
		Services:  []ServiceInput{{ServiceName: "Registration", Quantity: 1, UnitPrice: decimal.NewFromInt(10)}},
	})
	require.NoError(t, err)

	visit, err := f.svc.StartVisit(ctx, f.actor, &StartVisitInput{PatientID: f.patient.ID})
	require.NoError(t, err)

	_, err = f.svc.CloseVisit(ctx, f.actor, visit.ID, []ServiceInput{
		{ServiceName: "Consultation", Quantity: 1, UnitPrice: decimal.NewFromInt(60)},
	})
	require.NoError(t, err)

	bill, err := f.billing.GetBill(ctx, existing.ID)
	require.NoError(t, err)
	assert.True(t, bill.TotalAmount.Equal(decimal.NewFromInt(70)))
	require.Len(t, bill.Services, 2)
}

func TestCloseVisitSurvivesQueueFailure(t *testing.T) {
	f := setupVisitTest(t)
	ctx := context.Background()

	entry := &entity.QueueEntry{
		ClinicID:  f.actor.ClinicID,
		PatientID: f.patient.ID,
		Status:    enum.QueueStatusWaiting,
	}
	require.NoError(t, f.queueRepo.Create(ctx, entry))

	visit, err := f.svc.StartVisit(ctx, f.actor, &StartVisitInput{
		PatientID: f.patient.ID,
		QueueID:   &entry.ID,
	})
	require.NoError(t, err)

	f.queueRepo.updateStatusErr = fmt.Errorf("connection reset")
	closed, err := f.svc.CloseVisit(ctx, f.actor, visit.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, enum.VisitStatusClosed, closed.Status)
}

func TestUpdateVisit(t *testing.T) {
	f := setupVisitTest(t)
	ctx := context.Background()

	visit, err := f.svc.StartVisit(ctx, f.actor, &StartVisitInput{PatientID: f.patient.ID})
	require.NoError(t, err)

	diagnosis := "malaria"
	updated, err := f.svc.UpdateVisit(ctx, visit.ID, &UpdateVisitInput{Diagnosis: &diagnosis})
	require.NoError(t, err)
	require.NotNil(t, updated.Diagnosis)
	assert.Equal(t, "malaria", *updated.Diagnosis)

	_, err = f.svc.CloseVisit(ctx, f.actor, visit.ID, nil)
	require.NoError(t, err)

	_, err = f.svc.UpdateVisit(ctx, visit.ID, &UpdateVisitInput{Diagnosis: &diagnosis})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "closed")
}
