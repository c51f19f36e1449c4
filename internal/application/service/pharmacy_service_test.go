package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afyacare/hms-api/internal/domain/entity"
)

type pharmacyFixture struct {
	svc            *PharmacyService
	billing        *BillingService
	medicationRepo *fakeMedicationRepo
	actor          entity.Actor
	patient        *entity.Patient
	paracetamol    *entity.Medication
	amoxicillin    *entity.Medication
}

func setupPharmacyTest(t *testing.T) *pharmacyFixture {
	t.Helper()
	serviceRepo := newFakeBillServiceRepo()
	billRepo := newFakeBillRepo(serviceRepo)
	patientRepo := newFakePatientRepo()
	billing := NewBillingService(billRepo, serviceRepo, newFakeReceiptRepo(), newFakeShiftRepo(), newFakeLedgerRepo(), patientRepo, fakeTxManager{}, zerolog.Nop())

	medicationRepo := newFakeMedicationRepo()
	svc := NewPharmacyService(medicationRepo, billing)

	actor := entity.Actor{ID: uuid.New(), Name: "Grace Njeri", ClinicID: uuid.New(), Roles: []string{"pharmacist"}}
	patient := &entity.Patient{
		ID:        uuid.New(),
		ClinicID:  actor.ClinicID,
		MRN:       "PT-2026-00042",
		FirstName: "Mary",
		LastName:  "Achieng",
		Gender:    "female",
	}
	require.NoError(t, patientRepo.Create(context.Background(), patient))

	paracetamol := &entity.Medication{ClinicID: actor.ClinicID, Name: "Paracetamol 500mg", Code: "PARA500", Quantity: 100, SellingPrice: decimal.NewFromInt(5)}
	amoxicillin := &entity.Medication{ClinicID: actor.ClinicID, Name: "Amoxicillin 250mg", Code: "AMOX250", Quantity: 3, SellingPrice: decimal.NewFromInt(20)}
	require.NoError(t, medicationRepo.Create(context.Background(), paracetamol))
	require.NoError(t, medicationRepo.Create(context.Background(), amoxicillin))

	return &pharmacyFixture{
		svc:            svc,
		billing:        billing,
		medicationRepo: medicationRepo,
		actor:          actor,
		patient:        patient,
		paracetamol:    paracetamol,
		amoxicillin:    amoxicillin,
	}
}

func TestDispenseCreatesBill(t *testing.T) {
	f := setupPharmacyTest(t)

	bill, err := f.svc.Dispense(context.Background(), f.actor, f.patient.ID, []DispenseItemInput{
		{MedicationID: f.paracetamol.ID, Quantity: 10},
	})
	require.NoError(t, err)

	assert.True(t, bill.TotalAmount.Equal(decimal.NewFromInt(50)))
	require.Len(t, bill.Services, 1)
	assert.Equal(t, "Paracetamol 500mg", bill.Services[0].ServiceName)
	assert.Equal(t, "pharmacy", bill.Services[0].Department)
	assert.Equal(t, 90, f.paracetamol.Quantity)
}

func TestDispenseAppendsToActiveBill(t *testing.T) {
	f := setupPharmacyTest(t)
	ctx := context.Background()

	existing, err := f.billing.CreateBill(ctx, f.actor, &CreateBillInput{
		PatientID: f.patient.ID,
		Services:  []ServiceInput{{ServiceName: "Consultation", Quantity: 1, UnitPrice: decimal.NewFromInt(60)}},
	})
	require.NoError(t, err)

	bill, err := f.svc.Dispense(ctx, f.actor, f.patient.ID, []DispenseItemInput{
		{MedicationID: f.paracetamol.ID, Quantity: 2},
	})
	require.NoError(t, err)

	assert.Equal(t, existing.ID, bill.ID)
	assert.True(t, bill.TotalAmount.Equal(decimal.NewFromInt(70)))
	require.Len(t, bill.Services, 2)
	assert.Equal(t, 1, bill.Services[1].Position)
}

func TestDispenseInsufficientStock(t *testing.T) {
	f := setupPharmacyTest(t)

	_, err := f.svc.Dispense(context.Background(), f.actor, f.patient.ID, []DispenseItemInput{
		{MedicationID: f.paracetamol.ID, Quantity: 10},
		{MedicationID: f.amoxicillin.ID, Quantity: 5},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Insufficient stock")
	assert.Contains(t, err.Error(), "Amoxicillin 250mg")

	// Nothing was taken and no bill was raised
	assert.Equal(t, 100, f.paracetamol.Quantity)
	assert.Equal(t, 3, f.amoxicillin.Quantity)
	_, err = f.billing.FindActiveBill(context.Background(), f.patient.ID)
	require.Error(t, err)
}

func TestDispenseRestocksWhenBillingFails(t *testing.T) {
	f := setupPharmacyTest(t)

	// An unknown patient fails billing after the stock decrement
	_, err := f.svc.Dispense(context.Background(), f.actor, uuid.New(), []DispenseItemInput{
		{MedicationID: f.paracetamol.ID, Quantity: 10},
	})
	require.Error(t, err)
	assert.Equal(t, 100, f.paracetamol.Quantity)
}

func TestDispenseValidation(t *testing.T) {
	f := setupPharmacyTest(t)
	ctx := context.Background()

	_, err := f.svc.Dispense(ctx, f.actor, f.patient.ID, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "At least one item")

	_, err = f.svc.Dispense(ctx, f.actor, f.patient.ID, []DispenseItemInput{
		{MedicationID: f.paracetamol.ID, Quantity: 0},
	})
	require.Error(t, err)

	_, err = f.svc.Dispense(ctx, f.actor, f.patient.ID, []DispenseItemInput{
		{MedicationID: uuid.New(), Quantity: 1},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Medication")
}

func TestLowStock(t *testing.T) {
	f := setupPharmacyTest(t)

	f.amoxicillin.QuantityAlert = 5
	low, err := f.svc.GetLowStock(context.Background())
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "Amoxicillin 250mg", low[0].Name)
}

func TestCreateMedicationValidation(t *testing.T) {
	f := setupPharmacyTest(t)
	ctx := context.Background()

	_, err := f.svc.CreateMedication(ctx, f.actor, &entity.Medication{Code: "X"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")

	_, err = f.svc.CreateMedication(ctx, f.actor, &entity.Medication{Name: "Ibuprofen 400mg"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "code is required")

	created, err := f.svc.CreateMedication(ctx, f.actor, &entity.Medication{Name: "Ibuprofen 400mg", Code: "IBU400"})
	require.NoError(t, err)
	assert.Equal(t, f.actor.ClinicID, created.ClinicID)
}
