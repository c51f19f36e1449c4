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

// LabService handles lab orders and results
type LabService struct {
	labOrderRepo repository.LabOrderRepository
	labTestRepo  repository.LabTestRepository
	patientRepo  repository.PatientRepository
	billing      *BillingService
	txManager    repository.TxManager
}

// NewLabService creates a new lab service
func NewLabService(
	labOrderRepo repository.LabOrderRepository,
	labTestRepo repository.LabTestRepository,
	patientRepo repository.PatientRepository,
	billing *BillingService,
	txManager repository.TxManager,
) *LabService {
	return &LabService{
		labOrderRepo: labOrderRepo,
		labTestRepo:  labTestRepo,
		patientRepo:  patientRepo,
		billing:      billing,
		txManager:    txManager,
	}
}

// LabTestInput is one test on a lab order
type LabTestInput struct {
	TestName string
	Price    decimal.Decimal
}

// CreateLabOrderInput represents the create lab order input
type CreateLabOrderInput struct {
	PatientID uuid.UUID
	VisitID   *uuid.UUID
	Tests     []LabTestInput
}

// CreateLabOrder creates a lab order and appends the test charges to the
// patient's active bill.
func (s *LabService) CreateLabOrder(ctx context.Context, actor entity.Actor, input *CreateLabOrderInput) (*entity.LabOrder, error) {
	if len(input.Tests) == 0 {
		return nil, apperror.NewBadRequestError("At least one test is required")
	}
	for i, test := range input.Tests {
		if test.TestName == "" {
			return nil, apperror.NewValidationError([]apperror.FieldError{{
				Field:   fmt.Sprintf("tests[%d].test_name", i),
				Message: "test name is required",
			}})
		}
	}

	patient, err := s.patientRepo.GetByID(ctx, input.PatientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, apperror.NewNotFoundError("Patient")
	}

	now := time.Now()
	count, err := s.labOrderRepo.CountCreatedInYear(ctx, now.Year())
	if err != nil {
		return nil, err
	}

	order := &entity.LabOrder{
		ClinicID:    actor.ClinicID,
		PatientID:   input.PatientID,
		VisitID:     input.VisitID,
		OrderNumber: fmt.Sprintf("LAB-%d-%05d", now.Year(), count+1),
		OrderedBy:   actor.ID,
		Status:      enum.LabOrderStatusOrdered,
	}

	tests := make([]entity.LabTest, 0, len(input.Tests))
	for _, t := range input.Tests {
		tests = append(tests, entity.LabTest{
			TestName: t.TestName,
			Price:    t.Price,
		})
	}

	err = s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.labOrderRepo.Create(ctx, order); err != nil {
			return err
		}
		for i := range tests {
			tests[i].LabOrderID = order.ID
		}
		return s.labTestRepo.CreateBatch(ctx, tests)
	})
	if err != nil {
		return nil, err
	}

	// Lab charges land on the patient's active bill
	services := make([]ServiceInput, 0, len(input.Tests))
	for _, t := range input.Tests {
		services = append(services, ServiceInput{
			ServiceName: t.TestName,
			Department:  "laboratory",
			Quantity:    1,
			UnitPrice:   t.Price,
		})
	}
	if _, err := s.billing.AppendToActiveBill(ctx, actor, input.PatientID, services); err != nil {
		return nil, err
	}

	return s.labOrderRepo.GetWithTests(ctx, order.ID)
}

// RecordResult records the result for one test. Resulting the last pending
// test completes the order.
func (s *LabService) RecordResult(ctx context.Context, actor entity.Actor, testID uuid.UUID, result string) (*entity.LabTest, error) {
	if result == "" {
		return nil, apperror.NewBadRequestError("Result is required")
	}

	test, err := s.labTestRepo.GetByID(ctx, testID)
	if err != nil {
		return nil, err
	}
	if test == nil {
		return nil, apperror.NewNotFoundError("Lab test")
	}

	now := time.Now()
	test.Result = &result
	test.ResultedBy = &actor.ID
	test.ResultedAt = &now
	if err := s.labTestRepo.Update(ctx, test); err != nil {
		return nil, err
	}

	order, err := s.labOrderRepo.GetByID(ctx, test.LabOrderID)
	if err != nil {
		return nil, err
	}
	if order != nil && order.Status != enum.LabOrderStatusCompleted {
		tests, err := s.labTestRepo.GetByOrderID(ctx, order.ID)
		if err != nil {
			return nil, err
		}
		allDone := true
		for _, t := range tests {
			if t.Result == nil {
				allDone = false
				break
			}
		}
		if allDone {
			order.Status = enum.LabOrderStatusCompleted
		} else {
			order.Status = enum.LabOrderStatusInProgress
		}
		if err := s.labOrderRepo.Update(ctx, order); err != nil {
			return nil, err
		}
	}

	return test, nil
}

// GetLabOrder retrieves a lab order with its tests
func (s *LabService) GetLabOrder(ctx context.Context, id uuid.UUID) (*entity.LabOrder, error) {
	order, err := s.labOrderRepo.GetWithTests(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Lab order")
	}
	return order, nil
}

// CancelLabOrder cancels a lab order that has not completed
func (s *LabService) CancelLabOrder(ctx context.Context, id uuid.UUID) error {
	order, err := s.labOrderRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if order == nil {
		return apperror.NewNotFoundError("Lab order")
	}
	if order.Status == enum.LabOrderStatusCompleted {
		return apperror.NewConflictError("Completed lab orders cannot be cancelled")
	}
	order.Status = enum.LabOrderStatusCancelled
	return s.labOrderRepo.Update(ctx, order)
}

// ListLabOrders lists lab orders with filtering
func (s *LabService) ListLabOrders(ctx context.Context, params *repository.LabOrderFilterParams) (*pagination.PaginatedResult[entity.LabOrder], error) {
	orders, total, err := s.labOrderRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(orders, pag), nil
}
