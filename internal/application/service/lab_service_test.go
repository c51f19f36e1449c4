package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afyacare/hms-api/internal/domain/entity"
	"github.com/afyacare/hms-api/internal/domain/enum"
)

type labFixture struct {
	svc      *LabService
	billing  *BillingService
	testRepo *fakeLabTestRepo
	actor    entity.Actor
	patient  *entity.Patient
}

func setupLabTest(t *testing.T) *labFixture {
	t.Helper()
	serviceRepo := newFakeBillServiceRepo()
	billRepo := newFakeBillRepo(serviceRepo)
	patientRepo := newFakePatientRepo()
	billing := NewBillingService(billRepo, serviceRepo, newFakeReceiptRepo(), newFakeShiftRepo(), newFakeLedgerRepo(), patientRepo, fakeTxManager{}, zerolog.Nop())

	testRepo := newFakeLabTestRepo()
	orderRepo := newFakeLabOrderRepo(testRepo)
	svc := NewLabService(orderRepo, testRepo, patientRepo, billing, fakeTxManager{})

	actor := entity.Actor{ID: uuid.New(), Name: "Dr. Amina Hassan", ClinicID: uuid.New(), Roles: []string{"doctor"}}
	patient := &entity.Patient{
		ID:        uuid.New(),
		ClinicID:  actor.ClinicID,
		MRN:       "PT-2026-00023",
		FirstName: "John",
		LastName:  "Otieno",
		Gender:    "male",
	}
	require.NoError(t, patientRepo.Create(context.Background(), patient))

	return &labFixture{svc: svc, billing: billing, testRepo: testRepo, actor: actor, patient: patient}
}

func TestCreateLabOrder(t *testing.T) {
	f := setupLabTest(t)
	ctx := context.Background()

	order, err := f.svc.CreateLabOrder(ctx, f.actor, &CreateLabOrderInput{
		PatientID: f.patient.ID,
		Tests: []LabTestInput{
			{TestName: "Malaria Smear", Price: decimal.NewFromInt(20)},
			{TestName: "Full Hemogram", Price: decimal.NewFromInt(45)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("LAB-%d-00001", time.Now().Year()), order.OrderNumber)
	assert.Equal(t, enum.LabOrderStatusOrdered, order.Status)
	assert.Equal(t, f.actor.ID, order.OrderedBy)
	require.Len(t, order.Tests, 2)

	// Test charges landed on the patient's bill under laboratory
	bill, err := f.billing.FindActiveBill(ctx, f.patient.ID)
	require.NoError(t, err)
	assert.True(t, bill.TotalAmount.Equal(decimal.NewFromInt(65)))
	require.Len(t, bill.Services, 2)
	assert.Equal(t, "laboratory", bill.Services[0].Department)

	t.Run("no tests", func(t *testing.T) {
		_, err := f.svc.CreateLabOrder(ctx, f.actor, &CreateLabOrderInput{PatientID: f.patient.ID})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "At least one test")
	})

	t.Run("unknown patient", func(t *testing.T) {
		_, err := f.svc.CreateLabOrder(ctx, f.actor, &CreateLabOrderInput{
			PatientID: uuid.New(),
			Tests:     []LabTestInput{{TestName: "Malaria Smear", Price: decimal.NewFromInt(20)}},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Patient")
	})
}

func TestRecordResult(t *testing.T) {
	f := setupLabTest(t)
	ctx := context.Background()

	order, err := f.svc.CreateLabOrder(ctx, f.actor, &CreateLabOrderInput{
		PatientID: f.patient.ID,
		Tests: []LabTestInput{
			{TestName: "Malaria Smear", Price: decimal.NewFromInt(20)},
			{TestName: "Full Hemogram", Price: decimal.NewFromInt(45)},
		},
	})
	require.NoError(t, err)

	// First result moves the order to in-progress
	test, err := f.svc.RecordResult(ctx, f.actor, order.Tests[0].ID, "negative")
	require.NoError(t, err)
	require.NotNil(t, test.Result)
	assert.Equal(t, "negative", *test.Result)
	require.NotNil(t, test.ResultedBy)
	assert.Equal(t, f.actor.ID, *test.ResultedBy)

	updated, err := f.svc.GetLabOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.LabOrderStatusInProgress, updated.Status)

	// Resulting the last test completes the order
	_, err = f.svc.RecordResult(ctx, f.actor, order.Tests[1].ID, "normal")
	require.NoError(t, err)
	updated, err = f.svc.GetLabOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.LabOrderStatusCompleted, updated.Status)

	t.Run("empty result", func(t *testing.T) {
		_, err := f.svc.RecordResult(ctx, f.actor, order.Tests[0].ID, "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Result is required")
	})
}

func TestCancelLabOrder(t *testing.T) {
	f := setupLabTest(t)
	ctx := context.Background()

	order, err := f.svc.CreateLabOrder(ctx, f.actor, &CreateLabOrderInput{
		PatientID: f.patient.ID,
		Tests:     []LabTestInput{{TestName: "Malaria Smear", Price: decimal.NewFromInt(20)}},
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.CancelLabOrder(ctx, order.ID))
	cancelled, err := f.svc.GetLabOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.LabOrderStatusCancelled, cancelled.Status)

	t.Run("completed orders stay completed", func(t *testing.T) {
		order, err := f.svc.CreateLabOrder(ctx, f.actor, &CreateLabOrderInput{
			PatientID: f.patient.ID,
			Tests:     []LabTestInput{{TestName: "Urinalysis", Price: decimal.NewFromInt(15)}},
		})
		require.NoError(t, err)
		_, err = f.svc.RecordResult(ctx, f.actor, order.Tests[0].ID, "clear")
		require.NoError(t, err)

		err = f.svc.CancelLabOrder(ctx, order.ID)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be cancelled")
	})
}
