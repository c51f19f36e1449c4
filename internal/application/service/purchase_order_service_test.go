package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afyacare/hms-api/internal/domain/entity"
	"github.com/afyacare/hms-api/internal/domain/enum"
)

type purchaseOrderFixture struct {
	svc            *PurchaseOrderService
	medicationRepo *fakeMedicationRepo
	actor          entity.Actor
	supplier       *entity.Supplier
	paracetamol    *entity.Medication
	amoxicillin    *entity.Medication
}

func setupPurchaseOrderTest(t *testing.T) *purchaseOrderFixture {
	t.Helper()
	itemRepo := newFakePurchaseOrderItemRepo()
	orderRepo := newFakePurchaseOrderRepo(itemRepo)
	supplierRepo := newFakeSupplierRepo()
	medicationRepo := newFakeMedicationRepo()

	svc := NewPurchaseOrderService(orderRepo, itemRepo, supplierRepo, medicationRepo, fakeTxManager{})

	actor := entity.Actor{ID: uuid.New(), Name: "Grace Njeri", ClinicID: uuid.New(), Roles: []string{"pharmacist"}}
	ctx := context.Background()

	supplier := &entity.Supplier{ClinicID: actor.ClinicID, Name: "Dawa Distributors"}
	require.NoError(t, supplierRepo.Create(ctx, supplier))

	paracetamol := &entity.Medication{ClinicID: actor.ClinicID, Name: "Paracetamol 500mg", Code: "PARA500", Quantity: 100}
	amoxicillin := &entity.Medication{ClinicID: actor.ClinicID, Name: "Amoxicillin 250mg", Code: "AMOX250", Quantity: 20}
	require.NoError(t, medicationRepo.Create(ctx, paracetamol))
	require.NoError(t, medicationRepo.Create(ctx, amoxicillin))

	return &purchaseOrderFixture{
		svc:            svc,
		medicationRepo: medicationRepo,
		actor:          actor,
		supplier:       supplier,
		paracetamol:    paracetamol,
		amoxicillin:    amoxicillin,
	}
}

func (f *purchaseOrderFixture) createDraft(t *testing.T) *entity.PurchaseOrder {
	t.Helper()
	order, err := f.svc.CreateDraft(context.Background(), f.actor, &CreatePurchaseOrderInput{
		SupplierID: f.supplier.ID,
		Items: []PurchaseItemInput{
			{MedicationID: f.paracetamol.ID, Quantity: 500, UnitCost: decimal.NewFromFloat(0.5)},
			{MedicationID: f.amoxicillin.ID, Quantity: 200, UnitCost: decimal.NewFromInt(2)},
		},
	})
	require.NoError(t, err)
	return order
}

func TestCreateDraft(t *testing.T) {
	f := setupPurchaseOrderTest(t)

	order := f.createDraft(t)
	assert.Equal(t, fmt.Sprintf("PO-%d-00001", time.Now().Year()), order.OrderNumber)
	assert.Equal(t, enum.PurchaseOrderStatusDraft, order.Status)
	assert.True(t, order.TotalAmount.Equal(decimal.NewFromInt(650)))
	require.Len(t, order.Items, 2)
	assert.Equal(t, "Paracetamol 500mg", order.Items[0].MedicationName)
	assert.True(t, order.Items[0].TotalCost.Equal(decimal.NewFromInt(250)))

	t.Run("unknown supplier", func(t *testing.T) {
		_, err := f.svc.CreateDraft(context.Background(), f.actor, &CreatePurchaseOrderInput{
			SupplierID: uuid.New(),
			Items:      []PurchaseItemInput{{MedicationID: f.paracetamol.ID, Quantity: 1, UnitCost: decimal.NewFromInt(1)}},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Supplier")
	})

	t.Run("no items", func(t *testing.T) {
		_, err := f.svc.CreateDraft(context.Background(), f.actor, &CreatePurchaseOrderInput{SupplierID: f.supplier.ID})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "At least one item")
	})
}

func TestPurchaseOrderWorkflow(t *testing.T) {
	f := setupPurchaseOrderTest(t)
	ctx := context.Background()

	order := f.createDraft(t)

	submitted, err := f.svc.Submit(ctx, f.actor, order.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.PurchaseOrderStatusSubmitted, submitted.Status)
	require.NotNil(t, submitted.SubmittedBy)
	assert.Equal(t, f.actor.ID, *submitted.SubmittedBy)

	admin := entity.Actor{ID: uuid.New(), Name: "Alice Admin", ClinicID: f.actor.ClinicID, Roles: []string{"admin"}}
	approved, err := f.svc.Approve(ctx, admin, order.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.PurchaseOrderStatusApproved, approved.Status)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, admin.ID, *approved.ApprovedBy)

	received, err := f.svc.Receive(ctx, f.actor, order.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.PurchaseOrderStatusReceived, received.Status)

	// Receiving restocks every line
	assert.Equal(t, 600, f.paracetamol.Quantity)
	assert.Equal(t, 220, f.amoxicillin.Quantity)
}

func TestPurchaseOrderInvalidTransitions(t *testing.T) {
	f := setupPurchaseOrderTest(t)
	ctx := context.Background()

	order := f.createDraft(t)

	// A draft cannot jump straight to approved or received
	_, err := f.svc.Approve(ctx, f.actor, order.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot move from draft to approved")

	_, err = f.svc.Receive(ctx, f.actor, order.ID)
	require.Error(t, err)

	_, err = f.svc.Submit(ctx, f.actor, order.ID)
	require.NoError(t, err)
	_, err = f.svc.Submit(ctx, f.actor, order.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot move from submitted to submitted")
}

func TestCancelPurchaseOrder(t *testing.T) {
	f := setupPurchaseOrderTest(t)
	ctx := context.Background()

	order := f.createDraft(t)
	cancelled, err := f.svc.Cancel(ctx, f.actor, order.ID, "duplicate order")
	require.NoError(t, err)
	assert.Equal(t, enum.PurchaseOrderStatusCancelled, cancelled.Status)
	assert.Equal(t, "duplicate order", cancelled.CancelReason)

	// Stock is untouched on cancel
	assert.Equal(t, 100, f.paracetamol.Quantity)

	t.Run("received orders cannot be cancelled", func(t *testing.T) {
		order := f.createDraft(t)
		_, err := f.svc.Submit(ctx, f.actor, order.ID)
		require.NoError(t, err)
		_, err = f.svc.Approve(ctx, f.actor, order.ID)
		require.NoError(t, err)
		_, err = f.svc.Receive(ctx, f.actor, order.ID)
		require.NoError(t, err)

		_, err = f.svc.Cancel(ctx, f.actor, order.ID, "too late")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot move from received to cancelled")
	})
}
