package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/afyacare/hms-api/internal/domain/enum"
	"gorm.io/gorm"
)

// QueueEntry represents a patient waiting to be seen.
// Queue numbers restart from 1 each day per clinic and department.
type QueueEntry struct {
	ID          uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	ClinicID    uuid.UUID        `gorm:"type:uuid;not null;index" json:"clinic_id"`
	PatientID   uuid.UUID        `gorm:"type:uuid;not null;index" json:"patient_id"`
	QueueDate   time.Time        `gorm:"type:date;not null;index" json:"queue_date"`
	QueueNumber int              `gorm:"not null" json:"queue_number"`
	Department  string           `gorm:"size:100;default:'general'" json:"department"`
	Status      enum.QueueStatus `gorm:"default:0" json:"status"`
	CalledAt    *time.Time       `json:"called_at,omitempty"`
	CompletedAt *time.Time       `json:"completed_at,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	DeletedAt   gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relationships
	Patient Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}

// BeforeCreate generates a UUID before creating a new queue entry
func (q *QueueEntry) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the QueueEntry model
func (QueueEntry) TableName() string {
	return "queue_entries"
}
