package request

import "github.com/google/uuid"

// JoinQueueRequest puts a patient on today's queue
type JoinQueueRequest struct {
	PatientID  uuid.UUID `json:"patient_id" binding:"required"`
	Department string    `json:"department" binding:"omitempty,max=100"`
}
