package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/afyacare/hms-api/internal/domain/entity"
	"github.com/afyacare/hms-api/internal/domain/enum"
	"github.com/afyacare/hms-api/internal/domain/repository"
	"github.com/afyacare/hms-api/pkg/apperror"
	"github.com/afyacare/hms-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// PurchaseOrderService handles the purchase order approval workflow
type PurchaseOrderService struct {
	orderRepo      repository.PurchaseOrderRepository
	itemRepo       repository.PurchaseOrderItemRepository
	supplierRepo   repository.SupplierRepository
	medicationRepo repository.MedicationRepository
	txManager      repository.TxManager
}

// NewPurchaseOrderService creates a new purchase order service
func NewPurchaseOrderService(
	orderRepo repository.PurchaseOrderRepository,
	itemRepo repository.PurchaseOrderItemRepository,
	supplierRepo repository.SupplierRepository,
	medicationRepo repository.MedicationRepository,
	txManager repository.TxManager,
) *PurchaseOrderService {
	return &PurchaseOrderService{
		orderRepo:      orderRepo,
		itemRepo:       itemRepo,
		supplierRepo:   supplierRepo,
		medicationRepo: medicationRepo,
		txManager:      txManager,
	}
}

// PurchaseItemInput is one medication line on a purchase order
type PurchaseItemInput struct {
	MedicationID uuid.UUID
	Quantity     int
	UnitCost     decimal.Decimal
}

// CreatePurchaseOrderInput represents the create purchase order input
type CreatePurchaseOrderInput struct {
	SupplierID uuid.UUID
	Items      []PurchaseItemInput
	Notes      string
}

// CreateDraft creates a purchase order in draft state
func (s *PurchaseOrderService) CreateDraft(ctx context.Context, actor entity.Actor, input *CreatePurchaseOrderInput) (*entity.PurchaseOrder, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("At least one item is required")
	}

	supplier, err := s.supplierRepo.GetByID(ctx, input.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, apperror.NewNotFoundError("Supplier")
	}

	ids := make([]uuid.UUID, len(input.Items))
	for i, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, apperror.NewValidationError([]apperror.FieldError{{
				Field:   fmt.Sprintf("items[%d].quantity", i),
				Message: "quantity must be positive",
			}})
		}
		ids[i] = item.MedicationID
	}
	medications, err := s.medicationRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	medMap := make(map[uuid.UUID]*entity.Medication, len(medications))
	for i := range medications {
		medMap[medications[i].ID] = &medications[i]
	}

	now := time.Now()
	count, err := s.orderRepo.CountCreatedInYear(ctx, now.Year())
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	items := make([]entity.PurchaseOrderItem, 0, len(input.Items))
	for _, item := range input.Items {
		med, exists := medMap[item.MedicationID]
		if !exists {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Medication %s", item.MedicationID))
		}
		lineTotal := item.UnitCost.Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(lineTotal)
		items = append(items, entity.PurchaseOrderItem{
			MedicationID:   med.ID,
			MedicationName: med.Name,
			Quantity:       item.Quantity,
			UnitCost:       item.UnitCost,
			TotalCost:      lineTotal,
		})
	}

	order := &entity.PurchaseOrder{
		ClinicID:    actor.ClinicID,
		OrderNumber: fmt.Sprintf("PO-%d-%05d", now.Year(), count+1),
		SupplierID:  input.SupplierID,
		Status:      enum.PurchaseOrderStatusDraft,
		TotalAmount: total,
		Notes:       input.Notes,
		CreatedBy:   actor.ID,
	}

	err = s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.orderRepo.Create(ctx, order); err != nil {
			return err
		}
		for i := range items {
			items[i].PurchaseOrderID = order.ID
		}
		return s.itemRepo.CreateBatch(ctx, items)
	})
	if err != nil {
		return nil, err
	}

	return s.orderRepo.GetWithItems(ctx, order.ID)
}

func (s *PurchaseOrderService) transition(ctx context.Context, id uuid.UUID, to enum.PurchaseOrderStatus) (*entity.PurchaseOrder, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Purchase order")
	}
	if !order.Status.CanTransitionTo(to) {
		return nil, apperror.NewConflictError(fmt.Sprintf(
			"Purchase order cannot move from %s to %s", order.Status, to))
	}
	return order, nil
}

// Submit moves a draft order to submitted
func (s *PurchaseOrderService) Submit(ctx context.Context, actor entity.Actor, id uuid.UUID) (*entity.PurchaseOrder, error) {
	order, err := s.transition(ctx, id, enum.PurchaseOrderStatusSubmitted)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	order.Status = enum.PurchaseOrderStatusSubmitted
	order.SubmittedBy = &actor.ID
	order.SubmittedAt = &now
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// Approve records the approver's identity and timestamp on a submitted order
func (s *PurchaseOrderService) Approve(ctx context.Context, actor entity.Actor, id uuid.UUID) (*entity.PurchaseOrder, error) {
	order, err := s.transition(ctx, id, enum.PurchaseOrderStatusApproved)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	order.Status = enum.PurchaseOrderStatusApproved
	order.ApprovedBy = &actor.ID
	order.ApprovedAt = &now
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// Receive marks an approved order received and increments medication stock
// for every line in one transaction.
func (s *PurchaseOrderService) Receive(ctx context.Context, actor entity.Actor, id uuid.UUID) (*entity.PurchaseOrder, error) {
	order, err := s.transition(ctx, id, enum.PurchaseOrderStatusReceived)
	if err != nil {
		return nil, err
	}

	items, err := s.itemRepo.GetByOrderID(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	increments := make(map[uuid.UUID]int, len(items))
	for _, item := range items {
		increments[item.MedicationID] = item.Quantity
	}

	now := time.Now()
	order.Status = enum.PurchaseOrderStatusReceived
	order.ReceivedBy = &actor.ID
	order.ReceivedAt = &now

	err = s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.orderRepo.Update(ctx, order); err != nil {
			return err
		}
		return s.medicationRepo.AtomicIncrementBatch(ctx, increments)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// Cancel cancels an order that has not been received
func (s *PurchaseOrderService) Cancel(ctx context.Context, actor entity.Actor, id uuid.UUID, reason string) (*entity.PurchaseOrder, error) {
	order, err := s.transition(ctx, id, enum.PurchaseOrderStatusCancelled)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	order.Status = enum.PurchaseOrderStatusCancelled
	order.CancelledBy = &actor.ID
	order.CancelledAt = &now
	order.CancelReason = reason
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// GetPurchaseOrder retrieves a purchase order with its items
func (s *PurchaseOrderService) GetPurchaseOrder(ctx context.Context, id uuid.UUID) (*entity.PurchaseOrder, error) {
	order, err := s.orderRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Purchase order")
	}
	return order, nil
}

// ListPurchaseOrders lists purchase orders with filtering
func (s *PurchaseOrderService) ListPurchaseOrders(ctx context.Context, params *repository.PurchaseOrderFilterParams) (*pagination.PaginatedResult[entity.PurchaseOrder], error) {
	orders, total, err := s.orderRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(orders, pag), nil
}
