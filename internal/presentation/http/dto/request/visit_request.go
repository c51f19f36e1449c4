package request

import "github.com/google/uuid"

// StartVisitRequest opens a clinical visit
type StartVisitRequest struct {
	PatientID uuid.UUID  `json:"patient_id" binding:"required"`
	QueueID   *uuid.UUID `json:"queue_id"`
	Complaint string     `json:"complaint"`
}

// UpdateVisitRequest updates an open visit's clinical notes
type UpdateVisitRequest struct {
	Complaint *string `json:"complaint"`
	Diagnosis *string `json:"diagnosis"`
	Notes     *string `json:"notes"`
}

// CloseVisitRequest closes a visit, billing any listed services
type CloseVisitRequest struct {
	Services []BillServiceRequest `json:"services" binding:"dive"`
}
