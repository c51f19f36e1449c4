package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LabTestRequest is one test on a lab order
type LabTestRequest struct {
	TestName string          `json:"test_name" binding:"required,max=255"`
	Price    decimal.Decimal `json:"price" binding:"required"`
}

// CreateLabOrderRequest orders lab tests for a patient
type CreateLabOrderRequest struct {
	PatientID uuid.UUID        `json:"patient_id" binding:"required"`
	VisitID   *uuid.UUID       `json:"visit_id"`
	Tests     []LabTestRequest `json:"tests" binding:"required,min=1,dive"`
}

// RecordResultRequest records a single test result
type RecordResultRequest struct {
	Result string `json:"result" binding:"required"`
}
